package shell

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ErrInputClosed is returned once the input stream has no more lines
var ErrInputClosed = errors.New("input closed")

// Result is the outcome of parsing one line of input
type Result[T any] struct {
	Value T
	Err   error
}

// Ok reports whether parsing succeeded
func (r Result[T]) Ok() bool {
	return r.Err == nil
}

// ParseInt parses a whole line as a base 10 integer
func ParseInt(text string) Result[int] {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return Result[int]{Err: errors.Errorf("not an integer: %q", text)}
	}
	return Result[int]{Value: n}
}

// Prompter reads answers to prompts, one line at a time
type Prompter struct {
	reader *bufio.Reader
	out    io.Writer
}

// NewPrompter creates a prompter reading from in and prompting on out
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		reader: bufio.NewReader(in),
		out:    out,
	}
}

// readLine returns the next line without its terminator. Lines have no length
// limit; a last line without a newline is still returned.
func (p *Prompter) readLine() (string, error) {
	line, err := p.reader.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", errors.Wrap(err, "can't read input")
		}
		if line == "" {
			return "", ErrInputClosed
		}
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// ReadInt prompts until the answer is an integer
func (p *Prompter) ReadInt(prompt string) (int, error) {
	fmt.Fprint(p.out, prompt)
	for {
		line, err := p.readLine()
		if err != nil {
			return 0, err
		}
		if r := ParseInt(line); r.Ok() {
			return r.Value, nil
		}
		fmt.Fprint(p.out, "Invalid. "+prompt)
	}
}

// ReadString prompts once and returns the trimmed answer
func (p *Prompter) ReadString(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	line, err := p.readLine()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Pause waits for the user to press Enter
func (p *Prompter) Pause() error {
	fmt.Fprintln(p.out, "\nPress Enter to continue...")
	_, err := p.readLine()
	return err
}
