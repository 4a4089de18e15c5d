// Package prompt is the interactive surface consumed by pipeline stages.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Prompter asks the operator a question and returns the raw answer.
type Prompter interface {
	Prompt(question string) (string, error)
}

// Stdin reads answers line by line from an input stream.
type Stdin struct {
	r *bufio.Reader
	w io.Writer
}

func NewStdin() *Stdin {
	return &Stdin{r: bufio.NewReader(os.Stdin), w: os.Stdout}
}

func NewReader(r io.Reader, w io.Writer) *Stdin {
	return &Stdin{r: bufio.NewReader(r), w: w}
}

func (s *Stdin) Prompt(question string) (string, error) {
	fmt.Fprintf(s.w, "%s ", question)
	line, err := s.r.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Confirm asks a yes/no question. Only literal affirmative answers count as
// consent; anything else, including a read error, is a decline.
func Confirm(p Prompter, question string) bool {
	answer, err := p.Prompt(question + " [y/N]")
	if err != nil {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
