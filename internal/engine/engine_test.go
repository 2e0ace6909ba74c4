package engine

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gridmud/gridmud/internal/screens"
	"github.com/gridmud/gridmud/internal/world"
	"github.com/pixil98/go-testutil"
)

// fakeHandle records sends and can be told to start failing.
type fakeHandle struct {
	mu     sync.Mutex
	sent   []string
	fail   bool
	closed bool
}

func (h *fakeHandle) Send(data []byte) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.fail || h.closed {
		return fmt.Errorf("handle gone")
	}
	h.sent = append(h.sent, string(data))
	return nil
}

func (h *fakeHandle) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	return nil
}

func (h *fakeHandle) snapshot() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.sent...)
}

func (h *fakeHandle) isClosed() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.closed
}

// fakeScreens renders fixed markers instead of reading files.
type fakeScreens struct{}

func (fakeScreens) Render(t screens.ScreenType, data any) ([]byte, error) {
	switch t {
	case screens.ScreenWelcome:
		return []byte("WELCOME\n"), nil
	case screens.ScreenError:
		return []byte("NO ROOM\n"), nil
	default:
		return nil, fmt.Errorf("unknown screen %d", t)
	}
}

// fakeBroadcaster records announcements; subscriptions are never invoked.
type fakeBroadcaster struct {
	mu    sync.Mutex
	texts []string
}

func (b *fakeBroadcaster) Announce(kind, player, text string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.texts = append(b.texts, text)
	return nil
}

func (b *fakeBroadcaster) SubscribeAnnouncements(fn func(data []byte)) (func(), error) {
	return func() {}, nil
}

func (b *fakeBroadcaster) snapshot() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.texts...)
}

func testWorld(t *testing.T) *world.GameWorld {
	t.Helper()

	specs := map[string]*world.NodeSpec{
		"entry": {
			Name:        "entry",
			Description: "A dark entry node.",
			Spawn:       true,
			Ports: []world.PortSpec{
				{Description: "A plain port.", Open: true},
			},
		},
	}
	w, err := world.BuildWorld("grid", specs)
	if err != nil {
		t.Fatalf("building world: %v", err)
	}
	return w
}

func register(e *Engine, ctx context.Context, id ConnID, user string, h ReplyHandle) {
	e.handleCommand(ctx, Command{Kind: CommandRegister, Conn: id, User: user, Handle: h})
}

func input(e *Engine, ctx context.Context, id ConnID, line string) {
	e.handleData(ctx, DataMessage{Conn: id, Data: []byte(line)})
}

func TestEngine_RegisterSendsWelcome(t *testing.T) {
	e := New(testWorld(t), fakeScreens{}, nil)
	ctx := context.Background()

	h := &fakeHandle{}
	register(e, ctx, 1, "case", h)

	sent := h.snapshot()
	testutil.AssertEqual(t, "send count", len(sent), 1)
	testutil.AssertEqual(t, "welcome", sent[0], "WELCOME\n")
}

func TestEngine_RegisterWithoutSpawnpoint(t *testing.T) {
	// A world with no spawn candidates rejects every registration.
	w := world.NewGameWorld("grid")
	e := New(w, fakeScreens{}, nil)
	ctx := context.Background()

	h := &fakeHandle{}
	register(e, ctx, 1, "case", h)

	sent := h.snapshot()
	testutil.AssertEqual(t, "send count", len(sent), 1)
	testutil.AssertEqual(t, "error screen", sent[0], "NO ROOM\n")
	testutil.AssertEqual(t, "handle closed", h.isClosed(), true)
	testutil.AssertEqual(t, "player not stored", len(e.players), 0)
}

func TestEngine_Look(t *testing.T) {
	e := New(testWorld(t), fakeScreens{}, nil)
	ctx := context.Background()

	h := &fakeHandle{}
	register(e, ctx, 1, "case", h)
	input(e, ctx, 1, "look")

	sent := h.snapshot()
	testutil.AssertEqual(t, "send count", len(sent), 2)
	testutil.AssertEqual(t, "look response", sent[1], "A dark entry node.\nA plain port. The port is open.\n")
}

func TestEngine_TargetedLook(t *testing.T) {
	e := New(testWorld(t), fakeScreens{}, nil)
	ctx := context.Background()

	h := &fakeHandle{}
	register(e, ctx, 1, "case", h)
	input(e, ctx, 1, "look at port")

	sent := h.snapshot()
	testutil.AssertEqual(t, "send count", len(sent), 2)
	testutil.AssertEqual(t, "port response", sent[1], "A plain port. The port is open.\n")
}

func TestEngine_UnparseableInput(t *testing.T) {
	tests := map[string]string{
		"unknown verb": "xyzzy",
		"invalid utf8": string([]byte{0x6c, 0xff, 0xfe}),
		"broken look":  "look at ,,",
	}

	for name, line := range tests {
		t.Run(name, func(t *testing.T) {
			e := New(testWorld(t), fakeScreens{}, nil)
			ctx := context.Background()

			h := &fakeHandle{}
			register(e, ctx, 1, "case", h)
			input(e, ctx, 1, line)

			sent := h.snapshot()
			testutil.AssertEqual(t, "send count", len(sent), 2)
			testutil.AssertEqual(t, "error line", sent[1], "Error 23: Command not found.\n")
		})
	}
}

func TestEngine_InputForUnknownConnIsDropped(t *testing.T) {
	e := New(testWorld(t), fakeScreens{}, nil)

	// Must not panic or send anything.
	input(e, context.Background(), 42, "look")
}

func TestEngine_Hangup(t *testing.T) {
	e := New(testWorld(t), fakeScreens{}, nil)
	ctx := context.Background()

	h := &fakeHandle{}
	register(e, ctx, 1, "case", h)
	e.handleCommand(ctx, Command{Kind: CommandHangup, Conn: 1})

	testutil.AssertEqual(t, "player removed", len(e.players), 0)
	testutil.AssertEqual(t, "handle closed", h.isClosed(), true)

	// A second hangup for the same conn is harmless.
	e.handleCommand(ctx, Command{Kind: CommandHangup, Conn: 1})
}

func TestEngine_SendFailureReleasesPlayer(t *testing.T) {
	e := New(testWorld(t), fakeScreens{}, nil)
	ctx := context.Background()

	h := &fakeHandle{}
	register(e, ctx, 1, "case", h)

	h.mu.Lock()
	h.fail = true
	h.mu.Unlock()

	input(e, ctx, 1, "look")

	testutil.AssertEqual(t, "player removed", len(e.players), 0)
}

func TestEngine_RegisterSupersedesExistingConn(t *testing.T) {
	e := New(testWorld(t), fakeScreens{}, nil)
	ctx := context.Background()

	old := &fakeHandle{}
	register(e, ctx, 1, "case", old)

	fresh := &fakeHandle{}
	register(e, ctx, 1, "case", fresh)

	testutil.AssertEqual(t, "one player", len(e.players), 1)
	testutil.AssertEqual(t, "old handle closed", old.isClosed(), true)
	testutil.AssertEqual(t, "fresh handle open", fresh.isClosed(), false)
}

func TestEngine_Announcements(t *testing.T) {
	b := &fakeBroadcaster{}
	e := New(testWorld(t), fakeScreens{}, b)
	ctx := context.Background()

	register(e, ctx, 1, "case", &fakeHandle{})
	e.handleCommand(ctx, Command{Kind: CommandHangup, Conn: 1})

	texts := b.snapshot()
	testutil.AssertEqual(t, "announcement count", len(texts), 2)
	testutil.AssertEqual(t, "arrival", texts[0], "case has jacked in.")
	testutil.AssertEqual(t, "departure", texts[1], "case has jacked out.")
}

func TestEngine_Start(t *testing.T) {
	e := New(testWorld(t), fakeScreens{}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- e.Start(ctx) }()

	const n = 5
	handles := make([]*fakeHandle, n)
	for i := 0; i < n; i++ {
		handles[i] = &fakeHandle{}
		e.CommandQueue() <- Command{Kind: CommandRegister, Conn: ConnID(i), User: fmt.Sprintf("u%d", i), Handle: handles[i]}
		e.DataQueue() <- DataMessage{Conn: ConnID(i), Data: []byte("look")}
	}

	for i, h := range handles {
		waitFor(t, func() bool { return len(h.snapshot()) == 2 })
		sent := h.snapshot()
		testutil.AssertEqual(t, "welcome", sent[0], "WELCOME\n")
		if !strings.HasPrefix(sent[1], "A dark entry node.") {
			t.Errorf("handle %d: unexpected look response %q", i, sent[1])
		}
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("engine did not stop")
	}
}

func TestEngine_RegisterHandledBeforeQueuedData(t *testing.T) {
	// A gateway enqueues Register before its first line, but the two live on
	// different queues. Pre-filling both before the loop starts is the worst
	// case: the data message must never win the race and be dropped.
	for i := 0; i < 100; i++ {
		e := New(testWorld(t), fakeScreens{}, nil)

		h := &fakeHandle{}
		e.CommandQueue() <- Command{Kind: CommandRegister, Conn: 1, User: "case", Handle: h}
		e.DataQueue() <- DataMessage{Conn: 1, Data: []byte("look")}

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- e.Start(ctx) }()

		waitFor(t, func() bool { return len(h.snapshot()) == 2 })
		sent := h.snapshot()
		testutil.AssertEqual(t, "welcome", sent[0], "WELCOME\n")
		if !strings.HasPrefix(sent[1], "A dark entry node.") {
			t.Fatalf("round %d: look response missing, got %q", i, sent[1])
		}

		cancel()
		if err := <-done; err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
}

// waitFor polls until cond holds or the deadline passes.
func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("condition never held")
}
