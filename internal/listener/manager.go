package listener

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"

	"github.com/gridmud/gridmud/internal/engine"
	"github.com/gridmud/gridmud/internal/gateway"
)

// ConnectionManager hands accepted transport connections to gateway
// sessions, allocating each a process-unique connection id.
type ConnectionManager struct {
	nextID   atomic.Uint64
	commands chan<- engine.Command
	data     chan<- engine.DataMessage
}

func NewConnectionManager(commands chan<- engine.Command, data chan<- engine.DataMessage) *ConnectionManager {
	return &ConnectionManager{
		commands: commands,
		data:     data,
	}
}

// AcceptConnection runs a gateway session over conn until the client is
// gone. Line endings are normalized here; the outbox owns closing conn, so a
// handle Close from the engine also tears down the transport.
func (m *ConnectionManager) AcceptConnection(ctx context.Context, user string, conn io.ReadWriteCloser) {
	id := engine.ConnID(m.nextID.Add(1))
	wrapped := newCRLFReadWriter(conn)

	handle := gateway.NewOutbox(wrapped, conn)
	defer handle.Close()

	session := gateway.NewSession(id, user, wrapped, handle, m.commands, m.data)
	if err := session.Run(ctx); err != nil && ctx.Err() == nil {
		slog.WarnContext(ctx, "gateway session ended", "conn", id, "user", user, "error", err)
	}
}
