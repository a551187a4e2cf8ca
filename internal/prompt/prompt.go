// Package prompt asks the user for a line of text or a yes/no answer.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Prompter is the interactive input the commands rely on.
type Prompter interface {
	// Line writes label without a newline and returns the next input line
	// without its line terminator.
	Line(label string) (string, error)
	// Confirm asks a yes/no question; only answers starting with y count.
	Confirm(question string) (bool, error)
}

// Stdio prompts on out and reads answers from in.
type Stdio struct {
	in  *bufio.Reader
	out io.Writer
}

func NewStdio(in io.Reader, out io.Writer) *Stdio {
	return &Stdio{in: bufio.NewReader(in), out: out}
}

// Reader returns the buffered input, so another consumer of the same
// stream continues where the prompts stopped.
func (p *Stdio) Reader() io.Reader { return p.in }

func (p *Stdio) Line(label string) (string, error) {
	if _, err := fmt.Fprint(p.out, label); err != nil {
		return "", err
	}
	s, err := p.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimRight(s, "\r\n"), nil
}

func (p *Stdio) Confirm(question string) (bool, error) {
	answer, err := p.Line(question + " [yN] ")
	if err != nil {
		return false, err
	}
	return Affirmative(answer), nil
}

// Affirmative reports whether answer, once trimmed, starts with y or Y.
func Affirmative(answer string) bool {
	answer = strings.TrimSpace(answer)
	return answer != "" && (answer[0] == 'y' || answer[0] == 'Y')
}
