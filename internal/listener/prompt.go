package listener

import (
	"fmt"
	"io"
	"strings"
)

const (
	maxPromptTries   = 5
	maxHandleLineLen = 256
)

// promptHandle asks a client without transport-level identity (telnet) for a
// handle to register under.
func promptHandle(rw io.ReadWriter) (string, error) {
	for tries := 0; tries < maxPromptTries; tries++ {
		if _, err := rw.Write([]byte("Handle: ")); err != nil {
			return "", err
		}

		line, err := readLine(rw)
		if err != nil {
			return "", err
		}

		handle := strings.TrimSpace(line)
		if handle == "" {
			continue
		}
		if strings.ContainsAny(handle, " \t") {
			if _, err := rw.Write([]byte("A handle cannot contain spaces.\n")); err != nil {
				return "", err
			}
			continue
		}
		return handle, nil
	}

	return "", fmt.Errorf("too many tries")
}

// readLine reads up to a newline one byte at a time, so type-ahead past the
// line stays unread for whoever owns the conn next.
func readLine(r io.Reader) (string, error) {
	var b strings.Builder
	buf := make([]byte, 1)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			if buf[0] == '\n' {
				return b.String(), nil
			}
			if b.Len() >= maxHandleLineLen {
				return "", fmt.Errorf("line too long")
			}
			b.WriteByte(buf[0])
		}
		if err != nil {
			return "", err
		}
	}
}
