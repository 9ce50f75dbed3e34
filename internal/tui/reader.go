// Package tui reads console lines for the contact book, using a Bubble Tea
// input field on a terminal and plain buffered reads otherwise.
package tui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
)

// ErrInterrupted indicates the user aborted input (Ctrl+C).
var ErrInterrupted = errors.New("tui: input interrupted")

// Reader reads one line of console input after showing label.
type Reader interface {
	ReadLine(label string) (string, error)
}

// Verify at compile time that both readers implement Reader.
var (
	_ Reader = (*PlainReader)(nil)
	_ Reader = (*TUIReader)(nil)
)

// ReaderOptions configures reader creation.
type ReaderOptions struct {
	In         io.Reader // Input source (default: os.Stdin).
	Out        io.Writer // Output destination (default: os.Stdout).
	ForcePlain bool      // Force plain reads even if both ends are a TTY.
	ForceTUI   bool      // Force the TUI reader even without a TTY.
}

// NewReader returns a TUI reader when input and output are both terminals,
// or a plain line reader otherwise. ForcePlain and ForceTUI override TTY
// detection; ForcePlain wins if both are set.
func NewReader(opts ReaderOptions) Reader {
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}

	plain := NewPlainReader(opts.In, opts.Out)
	if opts.ForcePlain {
		return plain
	}
	if !opts.ForceTUI && (!isTTY(opts.In) || !isTTY(opts.Out)) {
		return plain
	}
	return &TUIReader{in: opts.In, out: opts.Out, fallback: plain}
}

// isTTY reports whether v is an *os.File connected to a terminal.
func isTTY(v any) bool {
	f, ok := v.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// PlainReader prints "<label>: " and reads a newline-terminated line.
type PlainReader struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPlainReader creates a PlainReader over in and out.
func NewPlainReader(in io.Reader, out io.Writer) *PlainReader {
	return &PlainReader{in: bufio.NewReader(in), out: out}
}

// ReadLine returns the next line without its line terminator.
// A final unterminated line is returned as-is; io.EOF is returned only when
// no text remains.
func (r *PlainReader) ReadLine(label string) (string, error) {
	_, _ = fmt.Fprintf(r.out, "%s: ", label)

	line, err := r.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return line, nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// TUIReader reads each line with a one-shot Bubble Tea program.
// Falls back to plain reads if the program fails to start.
type TUIReader struct {
	in       io.Reader
	out      io.Writer
	fallback *PlainReader
}

// ReadLine runs an input field labelled label until Enter or abort.
func (r *TUIReader) ReadLine(label string) (string, error) {
	p := tea.NewProgram(NewInputModel(label), tea.WithInput(r.in), tea.WithOutput(r.out))

	final, err := p.Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) {
			return "", ErrInterrupted
		}
		return r.fallback.ReadLine(label)
	}

	m, ok := final.(InputModel)
	if !ok {
		return r.fallback.ReadLine(label)
	}
	if m.Aborted() {
		return "", ErrInterrupted
	}
	return m.Value(), nil
}
