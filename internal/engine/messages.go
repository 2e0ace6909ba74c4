package engine

// ConnID identifies one accepted connection for its lifetime. Ids are issued
// by the connection manager and never reused within a process.
type ConnID uint64

// QueueCapacity bounds both engine queues. Producers block on a full queue;
// that backpressure is the admission control for burst traffic.
const QueueCapacity = 1024

// ReplyHandle is the retained capability for pushing bytes to one client,
// independent of the request that produced them. Send must never block:
// implementations queue to a writer goroutine and report a stalled or gone
// client as an error, which the engine treats as an implicit hangup.
type ReplyHandle interface {
	Send(data []byte) error
	Close() error
}

type CommandKind int

const (
	// CommandRegister introduces a new connection and its reply handle.
	CommandRegister CommandKind = iota
	// CommandHangup reports that a connection is gone. Transport-side
	// cleanup is the gateway's job; the engine only releases the player.
	CommandHangup
)

// Command is a session lifecycle event sent from a gateway to the engine.
// User and Handle are only set for CommandRegister.
type Command struct {
	Kind   CommandKind
	Conn   ConnID
	User   string
	Handle ReplyHandle
}

// DataMessage carries one raw input line from a connection to the engine.
type DataMessage struct {
	Conn ConnID
	Data []byte
}
