// Package prompt provides line-based interactive prompts for terminals
// where a full-screen picker is not available.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/thoreinstein/confit/internal/errors"
)

// Sentinel errors for selection.
var (
	ErrNoChoices        = errors.New("nothing to select from")
	ErrInvalidSelection = errors.New("invalid selection")
	ErrCancelled        = errors.New("selection cancelled")
)

// Prompter reads answers from r and writes questions to w.
type Prompter struct {
	reader *bufio.Reader
	writer io.Writer
}

// New creates a Prompter.
func New(r io.Reader, w io.Writer) *Prompter {
	return &Prompter{
		reader: bufio.NewReader(r),
		writer: w,
	}
}

// Select prints a numbered list under title and returns the chosen index.
//
// A single choice is returned without prompting and an empty answer picks
// the first one. EOF (Ctrl+D) yields ErrCancelled.
func (p *Prompter) Select(title string, choices []string) (int, error) {
	if len(choices) == 0 {
		return 0, ErrNoChoices
	}
	if len(choices) == 1 {
		return 0, nil
	}

	fmt.Fprintf(p.writer, "%s:\n", title)
	for i, c := range choices {
		fmt.Fprintf(p.writer, "  [%d] %s\n", i+1, c)
	}
	fmt.Fprint(p.writer, "Select [1]: ")

	input, err := p.readLine()
	if err != nil {
		return 0, err
	}
	if input == "" {
		return 0, nil
	}

	n, err := strconv.Atoi(input)
	if err != nil {
		return 0, errors.Wrapf(ErrInvalidSelection, "%q is not a number", input)
	}
	if n < 1 || n > len(choices) {
		return 0, errors.Wrapf(ErrInvalidSelection, "%d is out of range [1-%d]", n, len(choices))
	}
	return n - 1, nil
}

// Confirm asks a yes/no question. An empty answer returns def.
func (p *Prompter) Confirm(question string, def bool) (bool, error) {
	hint := "[y/N]"
	if def {
		hint = "[Y/n]"
	}
	fmt.Fprintf(p.writer, "%s %s ", question, hint)

	input, err := p.readLine()
	if err != nil {
		return false, err
	}
	switch strings.ToLower(input) {
	case "":
		return def, nil
	case "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	}
	return false, errors.Wrapf(ErrInvalidSelection, "answer %q", input)
}

func (p *Prompter) readLine() (string, error) {
	line, err := p.reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line == "" {
			return "", ErrCancelled
		}
		if !errors.Is(err, io.EOF) {
			return "", errors.Wrap(err, "reading answer")
		}
	}
	return strings.TrimSpace(line), nil
}
