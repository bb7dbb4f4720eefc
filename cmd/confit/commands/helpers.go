package commands

import (
	"fmt"
	"io"
	"io/fs"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/confit/internal/errors"
	"github.com/thoreinstein/confit/internal/logging"
	"github.com/thoreinstein/confit/internal/translate"
	"github.com/thoreinstein/confit/pkg/confit"
	"github.com/thoreinstein/confit/pkg/fileutil"
	"github.com/thoreinstein/confit/pkg/format"
)

// readDocument loads an existing config file as a generic document.
// Unlike confit.LoadOrInit it never creates the file.
func readDocument(cmd *cobra.Command, app, file string, f format.Format) (any, string, error) {
	path, err := confit.Path(app, file, f, storeOptions(cmd)...)
	if err != nil {
		return nil, "", userError(err, app, file)
	}
	data, err := fileutil.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, path, errors.NewUserError(
				errors.Wrapf(errors.ErrNotFound, "%s", path),
				fmt.Sprintf("Run: confit init %s %s -f %s", app, file, f))
		}
		return nil, path, errors.NewSystemError(errors.Wrapf(err, "reading %s", path), "")
	}
	doc, err := translate.Decode(data, f)
	if err != nil {
		return nil, path, userError(err, app, file)
	}
	return doc, path, nil
}

// parseOutputFormat resolves an --output style flag, falling back to def.
func parseOutputFormat(s string, def format.Format) (format.Format, error) {
	if s == "" {
		return def, nil
	}
	f, err := format.Parse(s)
	if err != nil {
		return 0, errors.NewUserError(err, "")
	}
	return f, nil
}

// writeValue prints a scalar as plain text and anything else encoded as f.
func writeValue(w io.Writer, v any, f format.Format) error {
	switch t := v.(type) {
	case nil:
		_, err := fmt.Fprintln(w, "null")
		return err
	case string, bool, int64, float64:
		_, err := fmt.Fprintln(w, t)
		return err
	}
	if _, isTable := v.(map[string]any); !isTable && f == format.TOML {
		f = format.JSON
	}
	data, err := translate.Encode(v, f)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// isTerminal reports whether r is an interactive terminal.
func isTerminal(r io.Reader) bool {
	return logging.IsTerminal(r)
}
