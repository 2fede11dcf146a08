// Package input contains readers used for getting grammar text from the CLI
// or other sources of input.
package input

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
)

// LineReader is the common surface of the two reader types: one grammar line
// per call, io.EOF at end of input.
type LineReader interface {
	ReadLine() (string, error)
	Close() error
}

// DirectReader reads grammar lines from any generic input stream directly.
// It can be used generically with any io.Reader but does not sanitize the
// input of control and escape sequences.
//
// DirectReader should not be used directly; instead, create one with
// [NewDirectReader].
type DirectReader struct {
	r *bufio.Reader
}

// InteractiveReader reads grammar lines from stdin using a go implementation
// of the GNU Readline library. This keeps input clear of all typing and
// editing escape sequences and enables the use of line history. This should
// in general probably only be used when directly connecting to a TTY for
// input.
//
// InteractiveReader should not be used directly; instead, create one with
// [NewInteractiveReader].
type InteractiveReader struct {
	rl *readline.Instance
}

// NewDirectReader creates a DirectReader and initializes a buffered reader
// on the provided reader. The returned reader must have Close() called on it
// before disposal.
func NewDirectReader(r io.Reader) *DirectReader {
	return &DirectReader{
		r: bufio.NewReader(r),
	}
}

// NewInteractiveReader creates an InteractiveReader and initializes
// readline. The returned reader must have Close() called on it before
// disposal to properly teardown readline resources.
func NewInteractiveReader() (*InteractiveReader, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt: "> ",
	})
	if err != nil {
		return nil, fmt.Errorf("create readline config: %w", err)
	}

	return &InteractiveReader{
		rl: rl,
	}, nil
}

// Close cleans up resources associated with the DirectReader.
//
// It currently does not do anything but callers should treat the reader as
// though it must have Close called on it.
func (dr *DirectReader) Close() error {
	return nil
}

// Close cleans up readline resources associated with the InteractiveReader.
func (ir *InteractiveReader) Close() error {
	return ir.rl.Close()
}

// ReadLine reads the next line from the stream. Blank lines are returned
// as-is; the grammar parser skips them. At end of input the returned string
// is empty and error is io.EOF.
func (dr *DirectReader) ReadLine() (string, error) {
	line, err := dr.r.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}

	return strings.TrimRight(line, "\r\n"), nil
}

// ReadLine reads the next line typed at the prompt. Ending input (Ctrl-D on
// an empty line, or Ctrl-C) ends the grammar; the returned error is io.EOF.
func (ir *InteractiveReader) ReadLine() (string, error) {
	line, err := ir.rl.Readline()
	if err != nil {
		if err == readline.ErrInterrupt || err == io.EOF {
			return "", io.EOF
		}
		return "", err
	}

	return line, nil
}

// ReadAll drains a reader into a single grammar text, one line per ReadLine
// call, stopping at io.EOF.
func ReadAll(r LineReader) (string, error) {
	var sb strings.Builder

	for {
		line, err := r.ReadLine()
		if err == io.EOF {
			return sb.String(), nil
		}
		if err != nil {
			return "", err
		}
		sb.WriteString(line)
		sb.WriteRune('\n')
	}
}
