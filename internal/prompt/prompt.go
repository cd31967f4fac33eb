// Package prompt reads interactive answers from the terminal.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

type Prompter struct {
	in  *bufio.Reader
	out io.Writer
	fd  int // terminal fd for no-echo reads, -1 when in is not a terminal
}

// New reads answers from in and writes prompts to out. When in is a terminal
// passwords are read without echo.
func New(in io.Reader, out io.Writer) *Prompter {
	fd := -1
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fd = int(f.Fd())
	}
	return &Prompter{in: bufio.NewReader(in), out: out, fd: fd}
}

// Text prints prompt and returns one line without its line ending. End of
// input counts as an empty answer.
func (p *Prompter) Text(prompt string) (string, error) {
	if _, err := fmt.Fprint(p.out, prompt); err != nil {
		return "", err
	}
	return p.readLine()
}

func (p *Prompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Password is Text without echo when reading from a terminal.
func (p *Prompter) Password(prompt string) (string, error) {
	if p.fd < 0 {
		return p.Text(prompt)
	}
	if _, err := fmt.Fprint(p.out, prompt); err != nil {
		return "", err
	}
	pw, err := readPassword(p.fd)
	fmt.Fprintln(p.out)
	if err != nil {
		return "", err
	}
	return string(pw), nil
}

// Confirm asks a yes/no question. Only "yes" and "y" (any case) confirm.
func (p *Prompter) Confirm(prompt string) (bool, error) {
	ans, err := p.Text(prompt)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(ans)) {
	case "yes", "y":
		return true, nil
	default:
		return false, nil
	}
}
