package world

import (
	"testing"

	"github.com/pixil98/go-testutil"
)

func TestNode_AddAsset(t *testing.T) {
	n := NewNode(1)

	p1 := NewPort(2)
	p2 := NewPort(3)
	n.AddAsset(p1)
	n.AddAsset(p2)

	testutil.AssertEqual(t, "count", len(n.SubAssets()), 2)

	// Duplicate ids are a silent no-op, not a replacement.
	dup := NewPort(2)
	dup.SetDescription("imposter")
	n.AddAsset(dup)

	testutil.AssertEqual(t, "count after dup", len(n.SubAssets()), 2)
	got, ok := n.Asset(2)
	testutil.AssertEqual(t, "found", ok, true)
	if got != GameAsset(p1) {
		t.Errorf("duplicate insert replaced the original asset")
	}
}

func TestNode_RemoveAsset(t *testing.T) {
	n := NewNode(1)

	p1 := NewPort(2)
	p2 := NewPort(3)
	p3 := NewPort(4)
	n.AddAsset(p1)
	n.AddAsset(p2)
	n.AddAsset(p3)

	n.RemoveAsset(3)

	testutil.AssertEqual(t, "count", len(n.SubAssets()), 2)
	_, ok := n.Asset(3)
	testutil.AssertEqual(t, "removed gone", ok, false)

	// The others survive and stay addressable.
	got, ok := n.Asset(2)
	testutil.AssertEqual(t, "first kept", ok, true)
	if got != GameAsset(p1) {
		t.Errorf("first surviving asset is not the original")
	}
	got, ok = n.Asset(4)
	testutil.AssertEqual(t, "last kept", ok, true)
	if got != GameAsset(p3) {
		t.Errorf("last surviving asset is not the original")
	}
}

func TestNode_ReactTo(t *testing.T) {
	build := func() *Node {
		n := NewNode(1)
		n.SetDescription("A hall of humming racks.")

		plain := NewPort(2)
		plain.SetDescription("A plain port.")
		plain.SetOpen(true)
		n.AddAsset(plain)

		purple := NewPort(3)
		purple.SetDescription("A purple port.")
		purple.SetProperties([]Property{ParseProperty("purple")})
		n.AddAsset(purple)

		return n
	}

	tests := map[string]struct {
		action Action
		exp    string
	}{
		"bare look lists sub-assets in order": {
			action: Action{Verb: VerbLook},
			exp:    "A hall of humming racks.\nA plain port. The port is open.\nA purple port. The port is closed.",
		},
		"targeted look with ambiguity": {
			action: Action{Verb: VerbLook, Target: "port", Preposition: "at"},
			exp:    "Which port do you mean?",
		},
		"targeted look narrowed by property": {
			action: Action{
				Verb:        VerbLook,
				Target:      "port",
				Preposition: "at",
				Properties:  []Property{ParseProperty("purple")},
			},
			exp: "A purple port. The port is closed.",
		},
		"target name is case-insensitive": {
			action: Action{
				Verb:        VerbLook,
				Target:      "PORT",
				Preposition: "at",
				Properties:  []Property{ParseProperty("purple")},
			},
			exp: "A purple port. The port is closed.",
		},
		"no such target": {
			action: Action{Verb: VerbLook, Target: "terminal", Preposition: "at"},
			exp:    "You see no terminal here.",
		},
		"property rules out all candidates": {
			action: Action{
				Verb:        VerbLook,
				Target:      "port",
				Preposition: "at",
				Properties:  []Property{ParseProperty("red")},
			},
			exp: "You see no port here.",
		},
		"connect prompts for a target": {
			action: Action{Verb: VerbConnect},
			exp:    "Connect to what?",
		},
		"read prompts for a target": {
			action: Action{Verb: VerbRead},
			exp:    "Read what?",
		},
		"open prompts for a target": {
			action: Action{Verb: VerbOpen},
			exp:    "Open what?",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			testutil.AssertEqual(t, "response", build().ReactTo(tt.action), tt.exp)
		})
	}
}

func TestPort_Describe(t *testing.T) {
	p := NewPort(1)
	p.SetDescription("A rusty port.")

	testutil.AssertEqual(t, "closed", p.Describe(), "A rusty port. The port is closed.")

	p.SetOpen(true)
	testutil.AssertEqual(t, "open", p.Describe(), "A rusty port. The port is open.")
}

func TestPort_ReactTo(t *testing.T) {
	p := NewPort(1)
	p.SetDescription("A rusty port.")

	tests := map[string]struct {
		action Action
		exp    string
	}{
		"bare look describes": {
			action: Action{Verb: VerbLook},
			exp:    "A rusty port. The port is closed.",
		},
		"targeted look finds nothing": {
			action: Action{Verb: VerbLook, Target: "label", Preposition: "at"},
			exp:    "You see nothing like that on the port.",
		},
		"other verbs prompt": {
			action: Action{Verb: VerbAccess},
			exp:    "Access what?",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			testutil.AssertEqual(t, "response", p.ReactTo(tt.action), tt.exp)
		})
	}
}

func TestPort_Destination(t *testing.T) {
	p := NewPort(1)

	_, ok := p.Destination()
	testutil.AssertEqual(t, "no destination", ok, false)

	first := Index{slot: 1}
	second := Index{slot: 2}
	p.AddDestination(first)
	p.AddDestination(second)

	dest, ok := p.Destination()
	testutil.AssertEqual(t, "has destination", ok, true)
	if dest != first {
		t.Errorf("Destination did not return the first listed index")
	}
}
