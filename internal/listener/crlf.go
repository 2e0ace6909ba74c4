package listener

import (
	"bytes"
	"io"
)

// crlfWriter wraps an io.ReadWriter and normalizes outbound line endings to
// CRLF. Reads pass through untouched: the gateway owns terminator handling
// and needs the raw bytes.
type crlfWriter struct {
	rw io.ReadWriter
}

func newCRLFReadWriter(rw io.ReadWriter) io.ReadWriter {
	return &crlfWriter{rw: rw}
}

func (c *crlfWriter) Read(p []byte) (int, error) {
	return c.rw.Read(p)
}

func (c *crlfWriter) Write(p []byte) (int, error) {
	// Normalize first so already-CRLF input doesn't double up.
	normalized := bytes.ReplaceAll(p, []byte("\r\n"), []byte("\n"))
	converted := bytes.ReplaceAll(normalized, []byte("\n"), []byte("\r\n"))
	_, err := c.rw.Write(converted)
	// Return the original length so callers aren't confused by the size change
	return len(p), err
}
