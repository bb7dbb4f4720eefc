//go:build !confit_no_ron

package format

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/thoreinstein/confit/internal/errors"
)

func init() {
	Register(ronCodec{})
}

// ronIndent matches the indentation the Rust ron crate uses for pretty output.
const ronIndent = "    "

// ronCodec implements Rusty Object Notation. Values are mapped through
// encoding/json, so `json` struct tags and json.Marshaler apply.
//
// Objects whose keys are all identifiers are written as structs
// `(key: value,)`; any other object becomes a map `{"key": value,}`. null is
// written as None.
type ronCodec struct{}

func (ronCodec) Format() Format { return RON }

func (ronCodec) Marshal(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	tree, err := readJSONNode(dec)
	if err != nil {
		return nil, errors.Wrap(err, "reading intermediate json")
	}

	var buf bytes.Buffer
	writeRON(&buf, tree, 0)
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

func (ronCodec) Unmarshal(data []byte, v any) error {
	tree, err := parseRON(data)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := writeJSON(&buf, tree); err != nil {
		return err
	}
	return decodeJSON(buf.Bytes(), v)
}

// node is the ordered, format-neutral tree both RON directions go through.
// Scalars are string, json.Number, bool or nil.
type node any

type member struct {
	key string
	val node
}

// object keeps members in document order.
type object []member

type list []node

func readJSONNode(dec *json.Decoder) (node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			obj := object{}
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, errors.Newf("unexpected object key %v", keyTok)
				}
				val, err := readJSONNode(dec)
				if err != nil {
					return nil, err
				}
				obj = append(obj, member{key: key, val: val})
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return obj, nil
		case '[':
			items := list{}
			for dec.More() {
				val, err := readJSONNode(dec)
				if err != nil {
					return nil, err
				}
				items = append(items, val)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return items, nil
		}
		return nil, errors.Newf("unexpected delimiter %v", t)
	default:
		return t, nil
	}
}

func writeRON(w *bytes.Buffer, n node, depth int) {
	switch v := n.(type) {
	case nil:
		w.WriteString("None")
	case bool:
		if v {
			w.WriteString("true")
		} else {
			w.WriteString("false")
		}
	case json.Number:
		w.WriteString(v.String())
	case string:
		writeRONString(w, v)
	case list:
		if len(v) == 0 {
			w.WriteString("[]")
			return
		}
		w.WriteString("[\n")
		for _, item := range v {
			writeIndent(w, depth+1)
			writeRON(w, item, depth+1)
			w.WriteString(",\n")
		}
		writeIndent(w, depth)
		w.WriteByte(']')
	case object:
		if len(v) == 0 {
			w.WriteString("()")
			return
		}
		asStruct := true
		for _, m := range v {
			if !isIdent(m.key) {
				asStruct = false
				break
			}
		}
		open, closing := "{", "}"
		if asStruct {
			open, closing = "(", ")"
		}
		w.WriteString(open)
		w.WriteByte('\n')
		for _, m := range v {
			writeIndent(w, depth+1)
			if asStruct {
				w.WriteString(m.key)
			} else {
				writeRONString(w, m.key)
			}
			w.WriteString(": ")
			writeRON(w, m.val, depth+1)
			w.WriteString(",\n")
		}
		writeIndent(w, depth)
		w.WriteString(closing)
	}
}

func writeIndent(w *bytes.Buffer, depth int) {
	w.WriteString(strings.Repeat(ronIndent, depth))
}

func writeRONString(w *bytes.Buffer, s string) {
	const hex = "0123456789ABCDEF"
	w.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			w.WriteString(`\"`)
		case '\\':
			w.WriteString(`\\`)
		case '\n':
			w.WriteString(`\n`)
		case '\r':
			w.WriteString(`\r`)
		case '\t':
			w.WriteString(`\t`)
		case 0:
			w.WriteString(`\0`)
		default:
			if r < 0x20 || r == 0x7f {
				w.WriteString(`\x`)
				w.WriteByte(hex[r>>4])
				w.WriteByte(hex[r&0xf])
				continue
			}
			if r == utf8.RuneError {
				w.WriteString(`\u{FFFD}`)
				continue
			}
			w.WriteRune(r)
		}
	}
	w.WriteByte('"')
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}

// writeJSON renders a parsed RON tree as JSON for encoding/json to decode.
func writeJSON(w io.Writer, n node) error {
	var buf bytes.Buffer
	if err := appendJSON(&buf, n); err != nil {
		return err
	}
	_, err := w.Write(buf.Bytes())
	return err
}

func appendJSON(buf *bytes.Buffer, n node) error {
	switch v := n.(type) {
	case nil:
		buf.WriteString("null")
	case bool, string:
		b, err := json.Marshal(v)
		if err != nil {
			return err
		}
		buf.Write(b)
	case json.Number:
		buf.WriteString(v.String())
	case list:
		buf.WriteByte('[')
		for i, item := range v {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := appendJSON(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case object:
		buf.WriteByte('{')
		for i, m := range v {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(m.key)
			if err != nil {
				return err
			}
			buf.Write(key)
			buf.WriteByte(':')
			if err := appendJSON(buf, m.val); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	default:
		return errors.Newf("unexpected node %T", n)
	}
	return nil
}
