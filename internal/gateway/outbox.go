package gateway

import (
	"errors"
	"io"
	"sync"
)

// ErrHandleClosed is returned by Send once the outbox is closed or its
// buffer has been exhausted by a stalled client.
var ErrHandleClosed = errors.New("reply handle closed")

const outboxDepth = 64

// Outbox is the retained reply handle for one connection. Sends queue to a
// writer goroutine so a stalled client can never block the engine loop; a
// write failure shuts the outbox down and surfaces on the next Send.
//
// Close flushes messages queued before it, then closes the underlying
// connection, so a final screen sent right before Close still reaches the
// client and the transport is torn down with the handle.
type Outbox struct {
	msgs chan []byte
	done chan struct{}
	once sync.Once
	conn io.Closer
}

// NewOutbox starts a writer goroutine over w. conn, when non-nil, is closed
// once the writer exits.
func NewOutbox(w io.Writer, conn io.Closer) *Outbox {
	o := &Outbox{
		msgs: make(chan []byte, outboxDepth),
		done: make(chan struct{}),
		conn: conn,
	}
	go o.pump(w)
	return o
}

func (o *Outbox) pump(w io.Writer) {
	defer func() {
		if o.conn != nil {
			o.conn.Close()
		}
	}()

	for {
		select {
		case msg := <-o.msgs:
			if _, err := w.Write(msg); err != nil {
				o.Close()
				return
			}
		case <-o.done:
			o.drain(w)
			return
		}
	}
}

// drain writes out everything queued before the close.
func (o *Outbox) drain(w io.Writer) {
	for {
		select {
		case msg := <-o.msgs:
			if _, err := w.Write(msg); err != nil {
				return
			}
		default:
			return
		}
	}
}

// Send queues data for delivery. It never blocks: a closed outbox or a full
// buffer fails with ErrHandleClosed.
func (o *Outbox) Send(data []byte) error {
	select {
	case <-o.done:
		return ErrHandleClosed
	default:
	}

	select {
	case o.msgs <- data:
		return nil
	default:
		// Buffer full: the client has stalled. Give up rather than block.
		return ErrHandleClosed
	}
}

// Close shuts the outbox down. Queued messages are still delivered before the
// connection is closed. Idempotent.
func (o *Outbox) Close() error {
	o.once.Do(func() { close(o.done) })
	return nil
}
