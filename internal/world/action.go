package world

import "strings"

// Verb is one of the fixed action words players can use.
type Verb int

const (
	VerbLook Verb = iota
	VerbRead
	VerbEnter
	VerbConnect
	VerbAccess
	VerbOpen
)

func (v Verb) String() string {
	switch v {
	case VerbLook:
		return "look"
	case VerbRead:
		return "read"
	case VerbEnter:
		return "enter"
	case VerbConnect:
		return "connect"
	case VerbAccess:
		return "access"
	case VerbOpen:
		return "open"
	default:
		return "unknown"
	}
}

// Action is a parsed player command. Actions are built per input line,
// consumed immediately by dispatch, and never stored.
//
// Target, Preposition and Properties are only populated for the complex look
// form; an empty Target marks the bare "look".
type Action struct {
	Verb        Verb
	Target      string
	Preposition string
	Properties  []Property
}

// HasTarget reports whether the action names a specific object.
func (a Action) HasTarget() bool {
	return a.Target != ""
}

func (a Action) String() string {
	if !a.HasTarget() {
		return a.Verb.String()
	}
	parts := []string{a.Verb.String()}
	if a.Preposition != "" {
		parts = append(parts, a.Preposition)
	}
	for _, p := range a.Properties {
		parts = append(parts, p.String())
	}
	parts = append(parts, a.Target)
	return strings.Join(parts, " ")
}
