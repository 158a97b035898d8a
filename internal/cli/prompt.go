package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// lineReader reads answers from the person at the prompt. Reads happen in a
// goroutine so a cancelled context ends a session blocked on input.
type lineReader struct {
	in  *bufio.Reader
	out io.Writer
}

type readResult struct {
	line string
	err  error
}

func newLineReader(in io.Reader, out io.Writer) *lineReader {
	return &lineReader{in: bufio.NewReader(in), out: out}
}

// ask prints prompt and returns the trimmed answer. A final line without a
// newline is still returned; io.EOF is only reported once nothing is left.
func (r *lineReader) ask(ctx context.Context, prompt string) (string, error) {
	fmt.Fprint(r.out, prompt)

	results := make(chan readResult, 1)
	go func() {
		line, err := r.in.ReadString('\n')
		results <- readResult{line: line, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-results:
		if res.err != nil && !(errors.Is(res.err, io.EOF) && res.line != "") {
			return "", res.err
		}
		return strings.TrimSpace(res.line), nil
	}
}
