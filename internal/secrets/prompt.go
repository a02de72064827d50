package secrets

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// ErrNotInteractive is returned when input is needed but stdin is not a
// terminal.
var ErrNotInteractive = errors.New("stdin is not a terminal; use --set NAME=VALUE instead")

// Prompter asks the user questions during key setup.
type Prompter interface {
	// Confirm asks a yes/no question. def is returned on an empty answer.
	Confirm(question string, def bool) (bool, error)
	// Secret reads a value without echoing it when possible.
	Secret(prompt string) (string, error)
}

// TermPrompter prompts on a terminal. Secrets are read with echo disabled when
// In is a TTY; otherwise a plain line is read.
type TermPrompter struct {
	In     *os.File
	Out    io.Writer
	reader *bufio.Reader
}

// NewTermPrompter returns a prompter over in and out.
func NewTermPrompter(in *os.File, out io.Writer) *TermPrompter {
	return &TermPrompter{In: in, Out: out, reader: bufio.NewReader(in)}
}

// Interactive reports whether In is a terminal.
func (p *TermPrompter) Interactive() bool {
	fd := p.In.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func (p *TermPrompter) Confirm(question string, def bool) (bool, error) {
	hint := "[y/N]"
	if def {
		hint = "[Y/n]"
	}
	fmt.Fprintf(p.Out, "%s %s ", question, hint)
	line, err := p.readLine()
	if err != nil {
		return false, err
	}
	switch strings.ToLower(line) {
	case "":
		return def, nil
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

func (p *TermPrompter) Secret(prompt string) (string, error) {
	fmt.Fprint(p.Out, prompt)
	if p.Interactive() {
		b, err := term.ReadPassword(int(p.In.Fd()))
		fmt.Fprintln(p.Out)
		if err != nil {
			return "", fmt.Errorf("reading input: %w", err)
		}
		return strings.TrimSpace(string(b)), nil
	}
	return p.readLine()
}

func (p *TermPrompter) readLine() (string, error) {
	if p.reader == nil {
		p.reader = bufio.NewReader(p.In)
	}
	line, err := p.reader.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("reading input: %w", err)
	}
	return strings.TrimSpace(line), nil
}
