package messaging

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	// SubjectEvents carries structured world event records.
	SubjectEvents = "world.events"
	// SubjectAnnounce carries the player-visible announcement text.
	SubjectAnnounce = "world.announce"
)

// Event is a structured record of something that happened in the world.
type Event struct {
	ID     uuid.UUID `json:"id"`
	Kind   string    `json:"kind"`
	Player string    `json:"player,omitempty"`
	Text   string    `json:"text,omitempty"`
	At     time.Time `json:"at"`
}

// Publisher fans world events out over the embedded broker. The engine is
// the only publisher.
type Publisher struct {
	server *NatsServer
}

func NewPublisher(server *NatsServer) *Publisher {
	return &Publisher{server: server}
}

// Announce publishes a player-visible announcement along with its structured
// event record.
func (p *Publisher) Announce(kind, player, text string) error {
	ev := Event{
		ID:     uuid.New(),
		Kind:   kind,
		Player: player,
		Text:   text,
		At:     time.Now().UTC(),
	}

	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshalling event: %w", err)
	}
	if err := p.server.Publish(SubjectEvents, data); err != nil {
		return err
	}

	return p.server.Publish(SubjectAnnounce, []byte(text))
}

// SubscribeAnnouncements registers fn for every announcement and returns an
// unsubscribe function.
func (p *Publisher) SubscribeAnnouncements(fn func(data []byte)) (func(), error) {
	return p.server.Subscribe(SubjectAnnounce, fn)
}
