package cmd

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

// stdinReader reads newline-terminated lines. A final unterminated line is
// returned before io.EOF.
type stdinReader struct {
	r *bufio.Reader
}

func newStdinReader(r io.Reader) *stdinReader {
	return &stdinReader{r: bufio.NewReader(r)}
}

// ReadLine implements shell.LineReader
func (s *stdinReader) ReadLine() (string, error) {
	line, err := s.r.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
