package confit

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/thoreinstein/confit/internal/errors"
	"github.com/thoreinstein/confit/internal/paths"
	"github.com/thoreinstein/confit/pkg/fileutil"
	"github.com/thoreinstein/confit/pkg/format"
)

// Defaulter is implemented by config types whose default is not the zero
// value. LoadOrInit calls SetDefaults on a fresh *T before writing it.
type Defaulter interface {
	SetDefaults()
}

// LoadOrInit returns the configuration stored at <root>/<app>/<file>.<ext>.
//
// If the file exists its contents are decoded into a new T. Otherwise the
// default T is encoded, written to the path (creating the app directory as
// needed) and returned. A second call after a successful first call reads
// the file back and writes nothing.
//
// The codec is resolved before the file system is touched, so an
// unsupported format or a missing config root never writes anything.
func LoadOrInit[T any](app, file string, f format.Format, opts ...Option) (T, error) {
	var zero T
	o := newOptions(opts)

	path, err := o.path(app, file, f)
	if err != nil {
		return zero, err
	}

	exists, err := paths.Exists(path)
	if err != nil {
		return zero, &PathError{Op: OpRead, Path: path, Err: err}
	}

	if exists {
		v, err := load[T](path, f, o)
		if err != nil {
			return zero, err
		}
		o.logger.Debug("loaded config", "path", path, "format", f)
		return v, nil
	}

	v := defaultValue[T]()
	if err := o.write(path, f, v); err != nil {
		return zero, err
	}
	o.logger.Debug("initialized config", "path", path, "format", f)
	return v, nil
}

// Store serializes v and replaces the file at <root>/<app>/<file>.<ext> with
// it, creating the app directory if it is missing. There is no locking;
// the last writer wins.
func Store[T any](app, file string, f format.Format, v T, opts ...Option) error {
	o := newOptions(opts)

	path, err := o.path(app, file, f)
	if err != nil {
		return err
	}
	if err := o.write(path, f, v); err != nil {
		return err
	}
	o.logger.Debug("stored config", "path", path, "format", f)
	return nil
}

// Path returns the file LoadOrInit and Store use for app, file and f.
func Path(app, file string, f format.Format, opts ...Option) (string, error) {
	return newOptions(opts).path(app, file, f)
}

// Dir returns the directory holding app's config files.
func Dir(app string, opts ...Option) (string, error) {
	if err := checkName("app", app); err != nil {
		return "", err
	}
	root, ok := newOptions(opts).resolver()
	if !ok || root == "" {
		return "", ErrMissingConfigDir
	}
	return paths.AppDir(root, app), nil
}

// Exists reports whether the config file is present.
func Exists(app, file string, f format.Format, opts ...Option) (bool, error) {
	path, err := newOptions(opts).path(app, file, f)
	if err != nil {
		return false, err
	}
	ok, err := paths.Exists(path)
	if err != nil {
		return false, &PathError{Op: OpRead, Path: path, Err: err}
	}
	return ok, nil
}

// Remove deletes the config file so the next LoadOrInit writes defaults
// again. A file that does not exist is not an error.
func Remove(app, file string, f format.Format, opts ...Option) error {
	o := newOptions(opts)

	path, err := o.path(app, file, f)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return &PathError{Op: OpRemove, Path: path, Err: err}
	}
	o.logger.Debug("removed config", "path", path)
	return nil
}

// path checks the codec and names, then joins them under the config root.
func (o *options) path(app, file string, f format.Format) (string, error) {
	if _, err := format.Lookup(f); err != nil {
		return "", err
	}
	if err := checkName("app", app); err != nil {
		return "", err
	}
	if err := checkName("file", file); err != nil {
		return "", err
	}
	root, ok := o.resolver()
	if !ok || root == "" {
		return "", ErrMissingConfigDir
	}
	return paths.ConfigFile(root, app, file, f.Extension()), nil
}

func checkName(kind, name string) error {
	switch {
	case name == "":
		return errors.Wrapf(ErrInvalidName, "empty %s name", kind)
	case name == "." || name == "..":
		return errors.Wrapf(ErrInvalidName, "%s name %q", kind, name)
	case strings.ContainsAny(name, `/\`):
		return errors.Wrapf(ErrInvalidName, "%s name %q contains a path separator", kind, name)
	}
	return nil
}

func load[T any](path string, f format.Format, o *options) (T, error) {
	var zero T
	data, err := fileutil.ReadFile(path)
	if err != nil {
		return zero, &PathError{Op: OpRead, Path: path, Err: err}
	}

	v := newValue[T]()
	if err := format.Unmarshal(data, f, &v); err != nil {
		return zero, err
	}
	if o.validate {
		if err := validateValue(v); err != nil {
			return zero, errors.Wrapf(err, "validating %s", path)
		}
	}
	return v, nil
}

// write encodes v before touching the file system, then creates the parent
// directory and replaces the file.
func (o *options) write(path string, f format.Format, v any) error {
	if o.validate {
		if err := validateValue(v); err != nil {
			return err
		}
	}

	data, err := format.Marshal(v, f)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := paths.EnsureDir(dir, o.dirMode); err != nil {
		return &PathError{Op: OpCreateDir, Path: dir, Err: err}
	}
	if err := fileutil.AtomicWriteFile(path, data, o.fileMode); err != nil {
		return &PathError{Op: OpWrite, Path: path, Err: err}
	}
	return nil
}

// newValue returns the zero T, or a pointer to a zero element when T is a
// pointer type, so decoders and SetDefaults always have somewhere to write.
func newValue[T any]() T {
	var v T
	rt := reflect.TypeOf((*T)(nil)).Elem()
	if rt.Kind() == reflect.Pointer {
		v = reflect.New(rt.Elem()).Interface().(T)
	}
	return v
}

func defaultValue[T any]() T {
	v := newValue[T]()
	if d, ok := any(v).(Defaulter); ok {
		d.SetDefaults()
		return v
	}
	if d, ok := any(&v).(Defaulter); ok {
		d.SetDefaults()
	}
	return v
}
