package gateway

import (
	"bytes"
	"context"
	"io"
	"log/slog"

	"github.com/gridmud/gridmud/internal/engine"
)

// Session is the per-connection protocol handler. It owns the line-editing
// input buffer and the local echo flag; its only effects are writing back to
// its own client and enqueuing messages for the engine. It never touches
// world state.
type Session struct {
	id   engine.ConnID
	user string
	conn io.ReadWriter

	echo   bool
	buf    []byte
	skipLF bool

	handle   engine.ReplyHandle
	commands chan<- engine.Command
	data     chan<- engine.DataMessage
}

func NewSession(id engine.ConnID, user string, conn io.ReadWriter, handle engine.ReplyHandle,
	commands chan<- engine.Command, data chan<- engine.DataMessage) *Session {
	return &Session{
		id:       id,
		user:     user,
		conn:     conn,
		handle:   handle,
		commands: commands,
		data:     data,
	}
}

// Run registers the session with the engine and pumps inbound bytes until
// the transport closes. Register is enqueued before the first read, so the
// engine always processes it ahead of any data from this connection.
func (s *Session) Run(ctx context.Context) error {
	select {
	case s.commands <- engine.Command{Kind: engine.CommandRegister, Conn: s.id, User: s.user, Handle: s.handle}:
	case <-ctx.Done():
		return ctx.Err()
	}

	if _, err := s.conn.Write([]byte("\x1b[36mWelcome.\x1b[0m\n")); err != nil {
		s.hangup(ctx)
		return err
	}

	chunk := make([]byte, 512)
	for {
		select {
		case <-ctx.Done():
			s.hangup(ctx)
			return ctx.Err()
		default:
		}

		n, err := s.conn.Read(chunk)
		if n > 0 {
			if herr := s.HandleData(ctx, chunk[:n]); herr != nil {
				s.hangup(ctx)
				return herr
			}
		}
		if err != nil {
			s.hangup(ctx)
			if err == io.EOF {
				slog.DebugContext(ctx, "connection closed", "conn", s.id)
				return nil
			}
			return err
		}
	}
}

// HandleData consumes one inbound chunk. Either CR or LF completes the
// buffered line (an LF directly following a CR is swallowed); when echo is
// on, bytes are echoed verbatim except that a terminator echoes as CRLF so
// client and server cursor state stay in sync.
func (s *Session) HandleData(ctx context.Context, data []byte) error {
	var echoed []byte

	for _, b := range data {
		if s.skipLF {
			s.skipLF = false
			if b == '\n' {
				continue
			}
		}

		terminator := b == '\r' || b == '\n'
		if s.echo {
			if terminator {
				echoed = append(echoed, '\r', '\n')
			} else {
				echoed = append(echoed, b)
			}
		}

		if !terminator {
			s.buf = append(s.buf, b)
			continue
		}

		s.skipLF = b == '\r'
		if err := s.finishLine(ctx); err != nil {
			return err
		}
	}

	if len(echoed) > 0 {
		if _, err := s.conn.Write(echoed); err != nil {
			return err
		}
	}
	return nil
}

// finishLine handles a completed line: local server commands update the echo
// flag and are never forwarded; everything else goes to the engine.
func (s *Session) finishLine(ctx context.Context) error {
	line := s.buf
	s.buf = nil

	switch {
	case bytes.EqualFold(line, []byte("echo on")):
		s.echo = true
	case bytes.EqualFold(line, []byte("echo off")):
		s.echo = false
	case bytes.EqualFold(line, []byte("echo")):
		s.echo = !s.echo
	default:
		select {
		case s.data <- engine.DataMessage{Conn: s.id, Data: line}:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

func (s *Session) hangup(ctx context.Context) {
	select {
	case s.commands <- engine.Command{Kind: engine.CommandHangup, Conn: s.id}:
	case <-ctx.Done():
	}
}
