// Package console handles the interactive terminal: prompts, the live
// progress line and the final report.
package console

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/eliaswen/goat/core/dsl"
	apperrors "github.com/eliaswen/goat/core/errors"
)

// Prompter asks for missing run parameters on an interactive stream.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// Count prints label and reads a count of at least min, re-prompting until
// the input is valid. Count expressions such as "5m" are accepted.
func (p *Prompter) Count(label string, min int64) (int64, error) {
	fmt.Fprint(p.out, label)
	for {
		line, err := p.in.ReadString('\n')
		if strings.TrimSpace(line) != "" {
			n, perr := dsl.ParseCount(line)
			if perr == nil && n >= min {
				return n, nil
			}
		}
		if err != nil {
			return 0, apperrors.WithCode(apperrors.CodeInvalidArgument, fmt.Errorf("reading input: %w", err))
		}

		if min > 0 {
			fmt.Fprint(p.out, "Invalid input. Please enter a positive integer: ")
		} else {
			fmt.Fprint(p.out, "Invalid input. Please enter a non-negative integer: ")
		}
	}
}

// Threads prints label and reads a worker count: a plain positive integer
// no greater than max. It re-prompts until the input is valid; scale
// suffixes such as "5k" are rejected.
func (p *Prompter) Threads(label string, max int) (int, error) {
	fmt.Fprint(p.out, label)
	for {
		line, err := p.in.ReadString('\n')
		n, perr := strconv.Atoi(strings.TrimSpace(line))
		if perr == nil && n > 0 && n <= max {
			return n, nil
		}
		if err != nil {
			return 0, apperrors.WithCode(apperrors.CodeInvalidArgument, fmt.Errorf("reading input: %w", err))
		}
		if perr == nil && n > max {
			fmt.Fprintf(p.out, "Invalid input. Please enter a positive integer no greater than %d: ", max)
		} else {
			fmt.Fprint(p.out, "Invalid input. Please enter a positive integer: ")
		}
	}
}

// Confirm waits for the user to press Enter.
func (p *Prompter) Confirm() error {
	fmt.Fprint(p.out, "Press Enter to confirm and start...")
	_, err := p.in.ReadString('\n')
	if err == io.EOF {
		return apperrors.New(apperrors.CodeInvalidArgument, "confirmation aborted: input closed")
	}
	return apperrors.Wrap(err, "reading confirmation")
}
