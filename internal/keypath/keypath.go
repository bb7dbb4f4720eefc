// Package keypath reads and writes values in generic documents using dotted
// keys such as "server.port" or "plugins.0".
package keypath

import (
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/confit/internal/errors"
	"github.com/thoreinstein/confit/internal/translate"
)

const keyHint = "keys use dot notation, e.g. server.port or plugins.0"

// Split breaks a dotted key into segments. Empty segments are rejected.
func Split(key string) ([]string, error) {
	if key == "" {
		return nil, errors.WithHint(errors.Wrap(errors.ErrInvalidKey, "empty key"), keyHint)
	}
	parts := strings.Split(key, ".")
	for _, p := range parts {
		if p == "" {
			return nil, errors.WithHint(
				errors.Wrapf(errors.ErrInvalidKey, "%q has an empty segment", key), keyHint)
		}
	}
	return parts, nil
}

// Get returns the value at key. Numeric segments index into lists.
func Get(doc any, key string) (any, error) {
	parts, err := Split(key)
	if err != nil {
		return nil, err
	}

	cur := doc
	for i, p := range parts {
		switch node := cur.(type) {
		case map[string]any:
			v, ok := node[p]
			if !ok {
				return nil, errors.Wrapf(errors.ErrNotFound, "key %q", strings.Join(parts[:i+1], "."))
			}
			cur = v
		case []any:
			idx, err := index(p, len(node))
			if err != nil {
				return nil, errors.Wrapf(err, "key %q", strings.Join(parts[:i+1], "."))
			}
			cur = node[idx]
		default:
			return nil, errors.Wrapf(errors.ErrInvalidKey, "%q is a %s, not a table or list",
				strings.Join(parts[:i], "."), translate.Kind(cur))
		}
	}
	return cur, nil
}

// Set stores value at key and returns the updated document. Missing
// tables along the way are created; a list index may address an existing
// item or append one past the end.
func Set(doc any, key string, value any) (any, error) {
	parts, err := Split(key)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		doc = map[string]any{}
	}
	return set(doc, parts, value, "")
}

func set(node any, parts []string, value any, prefix string) (any, error) {
	head := parts[0]
	path := head
	if prefix != "" {
		path = prefix + "." + head
	}

	switch n := node.(type) {
	case map[string]any:
		if len(parts) == 1 {
			n[head] = value
			return n, nil
		}
		child, ok := n[head]
		if !ok || child == nil {
			child = map[string]any{}
		}
		updated, err := set(child, parts[1:], value, path)
		if err != nil {
			return nil, err
		}
		n[head] = updated
		return n, nil
	case []any:
		idx, err := index(head, len(n)+1)
		if err != nil {
			return nil, errors.Wrapf(err, "key %q", path)
		}
		if idx == len(n) {
			n = append(n, nil)
		}
		if len(parts) == 1 {
			n[idx] = value
			return n, nil
		}
		child := n[idx]
		if child == nil {
			child = map[string]any{}
		}
		updated, err := set(child, parts[1:], value, path)
		if err != nil {
			return nil, err
		}
		n[idx] = updated
		return n, nil
	default:
		return nil, errors.Wrapf(errors.ErrInvalidKey, "%q is a %s, not a table or list",
			prefix, translate.Kind(node))
	}
}

func index(seg string, n int) (int, error) {
	idx, err := strconv.Atoi(seg)
	if err != nil {
		return 0, errors.Wrapf(errors.ErrInvalidKey, "list index %q is not a number", seg)
	}
	if idx < 0 || idx >= n {
		return 0, errors.Wrapf(errors.ErrNotFound, "list index %d out of range", idx)
	}
	return idx, nil
}

// ParseValue interprets a command-line value the way a YAML scalar would be
// read: "42" is an integer, "true" a bool, "[a, b]" a list. Anything that
// does not parse is kept as a plain string.
func ParseValue(s string) any {
	if strings.TrimSpace(s) == "" {
		return s
	}
	var v any
	if err := yaml.Unmarshal([]byte(s), &v); err != nil {
		return s
	}
	n, err := translate.Normalize(v)
	if err != nil {
		return s
	}
	return n
}
