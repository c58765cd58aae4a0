package app

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// ConsoleConfirmer prompts on Out and reads answers from In until it gets
// Y or N. End of input counts as N.
type ConsoleConfirmer struct {
	in  *bufio.Reader
	out io.Writer
}

func NewConsoleConfirmer(in io.Reader, out io.Writer) *ConsoleConfirmer {
	return &ConsoleConfirmer{in: bufio.NewReader(in), out: out}
}

func (c *ConsoleConfirmer) Confirm(prompt string) (bool, error) {
	for {
		fmt.Fprintln(c.out, prompt)
		line, err := c.in.ReadString('\n')
		answer := strings.TrimSpace(line)
		switch {
		case strings.EqualFold(answer, "y"):
			return true, nil
		case strings.EqualFold(answer, "n"):
			return false, nil
		}
		if err == io.EOF {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		fmt.Fprintln(c.out, "Invalid input. Please enter 'Y' or 'N'.")
	}
}
