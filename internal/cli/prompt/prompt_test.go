package prompt

import (
	"bytes"
	"strings"
	"testing"

	"github.com/thoreinstein/confit/internal/errors"
)

func TestSelect_Empty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	_, err := New(strings.NewReader(""), &buf).Select("Pick", nil)
	if !errors.Is(err, ErrNoChoices) {
		t.Errorf("expected ErrNoChoices, got %v", err)
	}
}

func TestSelect_SingleChoice(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	idx, err := New(strings.NewReader(""), &buf).Select("Pick", []string{"settings.json"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if idx != 0 {
		t.Errorf("expected 0, got %d", idx)
	}
	if buf.Len() > 0 {
		t.Errorf("expected no output for a single choice, got: %s", buf.String())
	}
}

func TestSelect_Valid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"explicit first", "1\n", 0},
		{"explicit second", "2\n", 1},
		{"default on empty", "\n", 0},
		{"whitespace trimmed", "  2  \n", 1},
		{"no trailing newline", "2", 1},
	}

	choices := []string{"a.toml", "b.yaml"}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			idx, err := New(strings.NewReader(tt.input), &buf).Select("Pick a file", choices)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if idx != tt.want {
				t.Errorf("expected %d, got %d", tt.want, idx)
			}
			if !strings.Contains(buf.String(), "[2] b.yaml") {
				t.Errorf("expected the list to be printed, got: %s", buf.String())
			}
		})
	}
}

func TestSelect_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{"too low", "0\n", "out of range"},
		{"too high", "3\n", "out of range"},
		{"negative", "-1\n", "out of range"},
		{"not a number", "abc\n", "not a number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			_, err := New(strings.NewReader(tt.input), &buf).Select("Pick", []string{"a", "b"})
			if !errors.Is(err, ErrInvalidSelection) {
				t.Fatalf("expected ErrInvalidSelection, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected %q in %q", tt.wantErr, err.Error())
			}
		})
	}
}

func TestSelect_EOF(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	_, err := New(strings.NewReader(""), &buf).Select("Pick", []string{"a", "b"})
	if !errors.Is(err, ErrCancelled) {
		t.Errorf("expected ErrCancelled, got %v", err)
	}
}

func TestConfirm(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		def   bool
		want  bool
	}{
		{"y\n", false, true},
		{"YES\n", false, true},
		{"n\n", true, false},
		{"\n", true, true},
		{"\n", false, false},
	}

	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.input), func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			got, err := New(strings.NewReader(tt.input), &buf).Confirm("Remove?", tt.def)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Confirm(%q, %v) = %v, want %v", tt.input, tt.def, got, tt.want)
			}
		})
	}
}

func TestConfirm_Errors(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if _, err := New(strings.NewReader("maybe\n"), &buf).Confirm("Remove?", false); !errors.Is(err, ErrInvalidSelection) {
		t.Errorf("expected ErrInvalidSelection, got %v", err)
	}
	if _, err := New(strings.NewReader(""), &buf).Confirm("Remove?", false); !errors.Is(err, ErrCancelled) {
		t.Errorf("expected ErrCancelled, got %v", err)
	}
}
