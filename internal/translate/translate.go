// Package translate converts documents between the supported formats.
package translate

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/thoreinstein/confit/internal/errors"
	"github.com/thoreinstein/confit/pkg/format"
)

// ErrNotTable is returned when a document whose root is not a map is
// encoded as TOML, which only allows tables at the top level.
var ErrNotTable = errors.New("toml documents must have a table at the root")

// Document is an untyped config file whose root is a table. Its default
// is an empty table, so confit.LoadOrInit[Document] initializes files as
// "{}" rather than null.
type Document map[string]any

// SetDefaults implements confit.Defaulter.
func (d *Document) SetDefaults() {
	*d = Document{}
}

// Decode parses data into a generic document built from map[string]any,
// []any, string, bool, int64, float64 and nil.
//
// Whole floats (42.0) decode as int64, because JSON and RON do not
// distinguish them from integers.
func Decode(data []byte, f format.Format) (any, error) {
	var doc any
	if err := format.Unmarshal(data, f, &doc); err != nil {
		return nil, err
	}
	return Normalize(doc)
}

// Encode renders a generic document in format f. TOML has no null, so null
// map members and list items are dropped when encoding TOML.
func Encode(doc any, f format.Format) ([]byte, error) {
	doc, err := Prepare(doc, f)
	if err != nil {
		return nil, err
	}
	return format.Marshal(doc, f)
}

// Prepare normalizes doc and fits it to what f can represent, as Encode
// does, without serializing it.
func Prepare(doc any, f format.Format) (any, error) {
	doc, err := Normalize(doc)
	if err != nil {
		return nil, err
	}
	if f == format.TOML {
		if _, ok := doc.(map[string]any); !ok {
			return nil, errors.Wrapf(ErrNotTable, "root is %s", Kind(doc))
		}
		doc = dropNulls(doc)
	}
	return doc, nil
}

// Convert re-encodes data from one format to another.
func Convert(data []byte, from, to format.Format) ([]byte, error) {
	doc, err := Decode(data, from)
	if err != nil {
		return nil, err
	}
	out, err := Encode(doc, to)
	if err != nil {
		return nil, errors.Wrapf(err, "converting %s to %s", from, to)
	}
	return out, nil
}

// Normalize rewrites decoder-specific shapes into the generic document
// types: map[any]any keys become strings, sized integers and integral
// json.Number values become int64, and whole float64 values become int64.
func Normalize(v any) (any, error) {
	switch t := v.(type) {
	case nil, string, bool, int64:
		return t, nil
	case Document:
		return Normalize(map[string]any(t))
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			n, err := Normalize(val)
			if err != nil {
				return nil, err
			}
			out[k] = n
		}
		return out, nil
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			n, err := Normalize(val)
			if err != nil {
				return nil, err
			}
			out[fmt.Sprint(k)] = n
		}
		return out, nil
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			n, err := Normalize(val)
			if err != nil {
				return nil, err
			}
			out[i] = n
		}
		return out, nil
	case int:
		return int64(t), nil
	case int32:
		return int64(t), nil
	case uint64:
		if t > math.MaxInt64 {
			return float64(t), nil
		}
		return int64(t), nil
	case float32:
		return normalizeFloat(float64(t)), nil
	case float64:
		return normalizeFloat(t), nil
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return n, nil
		}
		f, err := t.Float64()
		if err != nil {
			return nil, errors.Wrapf(err, "number %s", t)
		}
		return normalizeFloat(f), nil
	case time.Time:
		return t.Format(time.RFC3339Nano), nil
	case fmt.Stringer:
		// toml.LocalDate, toml.LocalDateTime and similar.
		return t.String(), nil
	default:
		return nil, errors.Newf("unsupported value of type %T", v)
	}
}

func normalizeFloat(f float64) any {
	if f == math.Trunc(f) && f >= -(1<<63) && f < 1<<63 {
		return int64(f)
	}
	return f
}

func dropNulls(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, val := range t {
			if val == nil {
				delete(t, k)
				continue
			}
			t[k] = dropNulls(val)
		}
		return t
	case []any:
		out := t[:0]
		for _, val := range t {
			if val != nil {
				out = append(out, dropNulls(val))
			}
		}
		return out
	}
	return v
}

// Kind names the generic type of a document node for messages.
func Kind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "table"
	case []any:
		return "list"
	case string:
		return "string"
	case bool:
		return "bool"
	case int64:
		return "integer"
	case float64:
		return "float"
	}
	return fmt.Sprintf("%T", v)
}

// Keys returns the sorted keys of a table.
func Keys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
