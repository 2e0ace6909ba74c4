package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/gridmud/gridmud/internal/display"
	"github.com/gridmud/gridmud/internal/screens"
	"github.com/gridmud/gridmud/internal/world"
)

// Player is the engine-side record of one connected client: its name, the
// retained reply handle, and its location in the node arena.
type Player struct {
	Name   string
	handle ReplyHandle

	location world.Index
	located  bool

	unsubscribe func()
}

// SetSpawnPoint places the player at a node index. Called back by
// GameWorld.Spawn.
func (p *Player) SetSpawnPoint(idx world.Index) {
	p.location = idx
	p.located = true
}

// Location returns the player's current node index, false when the player is
// nowhere.
func (p *Player) Location() (world.Index, bool) {
	return p.location, p.located
}

// ScreenSource renders client-facing screens.
type ScreenSource interface {
	Render(screens.ScreenType, any) ([]byte, error)
}

// Broadcaster is the out-of-band announcement plane. May be absent.
type Broadcaster interface {
	Announce(kind, player, text string) error
	SubscribeAnnouncements(fn func(data []byte)) (func(), error)
}

// screenData is what screen templates can reference.
type screenData struct {
	Name  string
	World string
}

// Engine owns the game world and the player table. It is the single consumer
// of both queues and the only goroutine that ever touches world state;
// gateways communicate with it exclusively through the queues.
type Engine struct {
	world   *world.GameWorld
	players map[ConnID]*Player

	commands chan Command
	data     chan DataMessage

	screens ScreenSource
	events  Broadcaster
}

func New(w *world.GameWorld, sc ScreenSource, events Broadcaster) *Engine {
	return &Engine{
		world:    w,
		players:  map[ConnID]*Player{},
		commands: make(chan Command, QueueCapacity),
		data:     make(chan DataMessage, QueueCapacity),
		screens:  sc,
		events:   events,
	}
}

// CommandQueue returns the send side of the lifecycle command queue.
func (e *Engine) CommandQueue() chan<- Command {
	return e.commands
}

// DataQueue returns the send side of the player input queue.
func (e *Engine) DataQueue() chan<- DataMessage {
	return e.data
}

// Start runs the dispatch loop until the context is canceled. Per-message
// errors are isolated to the affected player; the only fatal condition is
// both queues being closed.
func (e *Engine) Start(ctx context.Context) error {
	slog.InfoContext(ctx, "world engine running", "world", e.world.Name())

	commands, data := e.commands, e.data
	for {
		// Lifecycle commands are drained first. A gateway enqueues Register
		// before its first line of data, so taking pending commands ahead of
		// the data queue keeps that ordering across the two queues.
		if commands != nil {
			select {
			case cmd, ok := <-commands:
				if !ok {
					commands = nil
					if data == nil {
						return errors.New("both engine queues closed")
					}
					continue
				}
				e.handleCommand(ctx, cmd)
				continue
			default:
			}
		}

		select {
		case <-ctx.Done():
			return nil

		case cmd, ok := <-commands:
			if !ok {
				commands = nil
				if data == nil {
					return errors.New("both engine queues closed")
				}
				continue
			}
			e.handleCommand(ctx, cmd)

		case msg, ok := <-data:
			if !ok {
				data = nil
				if commands == nil {
					return errors.New("both engine queues closed")
				}
				continue
			}
			e.handleData(ctx, msg)
		}
	}
}

func (e *Engine) handleCommand(ctx context.Context, cmd Command) {
	switch cmd.Kind {
	case CommandRegister:
		e.register(ctx, cmd)
	case CommandHangup:
		e.release(ctx, cmd.Conn, "hangup")
	default:
		slog.WarnContext(ctx, "unknown engine command", "kind", cmd.Kind)
	}
}

func (e *Engine) register(ctx context.Context, cmd Command) {
	if _, exists := e.players[cmd.Conn]; exists {
		// The transport reused a connection id; the old session is dead.
		e.release(ctx, cmd.Conn, "superseded")
	}

	player := &Player{Name: cmd.User, handle: cmd.Handle}
	data := screenData{Name: cmd.User, World: e.world.Name()}

	if _, err := e.world.Spawn(player); err != nil {
		// No spawn point is a rejection, not a crash: show the error screen
		// and close the connection.
		slog.WarnContext(ctx, "spawning player", "player", cmd.User, "error", err)
		if buf, rerr := e.screens.Render(screens.ScreenError, data); rerr != nil {
			slog.ErrorContext(ctx, "loading error screen", "error", rerr)
		} else if serr := cmd.Handle.Send(buf); serr != nil {
			slog.WarnContext(ctx, "sending error screen", "player", cmd.User, "error", serr)
		}
		cmd.Handle.Close()
		return
	}

	e.players[cmd.Conn] = player
	slog.InfoContext(ctx, "registered player", "player", cmd.User, "conn", cmd.Conn)

	if buf, err := e.screens.Render(screens.ScreenWelcome, data); err != nil {
		slog.ErrorContext(ctx, "loading welcome screen", "error", err)
	} else if err := player.handle.Send(buf); err != nil {
		slog.WarnContext(ctx, "sending welcome screen", "player", cmd.User, "error", err)
		e.release(ctx, cmd.Conn, "send failure")
		return
	}

	if e.events != nil {
		// The forwarder only touches the handle, never world state, so it is
		// safe to run on the broker's callback goroutine.
		unsub, err := e.events.SubscribeAnnouncements(func(text []byte) {
			_ = player.handle.Send(append(text, '\n'))
		})
		if err != nil {
			slog.WarnContext(ctx, "subscribing player to announcements", "player", cmd.User, "error", err)
		} else {
			player.unsubscribe = unsub
		}

		if err := e.events.Announce("player.registered", cmd.User, fmt.Sprintf("%s has jacked in.", cmd.User)); err != nil {
			slog.DebugContext(ctx, "announcing registration", "error", err)
		}
	}
}

// release removes a player and its resources. Safe to call for unknown ids.
func (e *Engine) release(ctx context.Context, id ConnID, reason string) {
	player, ok := e.players[id]
	if !ok {
		return
	}
	delete(e.players, id)

	if player.unsubscribe != nil {
		player.unsubscribe()
	}
	player.handle.Close()

	if e.events != nil {
		if err := e.events.Announce("player.departed", player.Name, fmt.Sprintf("%s has jacked out.", player.Name)); err != nil {
			slog.DebugContext(ctx, "announcing departure", "error", err)
		}
	}

	slog.InfoContext(ctx, "released player", "player", player.Name, "conn", id, "reason", reason)
}

func (e *Engine) handleData(ctx context.Context, msg DataMessage) {
	player, ok := e.players[msg.Conn]
	if !ok {
		// Expected race between a hangup and in-flight input; drop it.
		slog.WarnContext(ctx, "data for unknown connection", "conn", msg.Conn)
		return
	}

	action, err := world.ParseAction(msg.Data)
	if err != nil {
		slog.DebugContext(ctx, "unparseable input", "player", player.Name, "error", err)
		e.send(ctx, msg.Conn, player, "Error 23: Command not found.\n")
		return
	}

	slog.DebugContext(ctx, "player action", "player", player.Name, "action", action.String())

	location, located := player.Location()
	if !located {
		e.send(ctx, msg.Conn, player, "In limbo everything is possible. And nothing. Makes you wonder...\n")
		return
	}

	node, ok := e.world.Node(location)
	if !ok {
		// The arena lost a node a player still points at.
		slog.ErrorContext(ctx, "location does not resolve to a node", "player", player.Name)
		e.send(ctx, msg.Conn, player, "A glitch in the matrix occurred.\n")
		return
	}

	e.send(ctx, msg.Conn, player, display.Wrap(node.ReactTo(action))+"\n")
}

// send pushes text to a player. A failed send means the client is stalled or
// gone and is treated as an implicit hangup.
func (e *Engine) send(ctx context.Context, id ConnID, player *Player, text string) {
	if err := player.handle.Send([]byte(text)); err != nil {
		slog.WarnContext(ctx, "sending to player", "player", player.Name, "error", err)
		e.release(ctx, id, "send failure")
	}
}
