package world

import (
	"fmt"
	"strings"

	"github.com/gridmud/gridmud/internal/display"
)

// AssetID uniquely identifies an asset. Ids are issued by the owning
// GameWorld (see GameWorld.NextAssetID) so they never collide.
type AssetID uint64

// GameAsset is the capability set shared by every addressable object in the
// world graph. A Node exclusively owns its sub-assets; references between
// assets go through arena indices, never through shared ownership.
type GameAsset interface {
	// ID returns the unique id of the asset.
	ID() AssetID

	// Name returns the noun players use to refer to the asset.
	Name() string

	// Properties returns the descriptive tags of the asset, nil when none.
	Properties() []Property

	// Describe returns the human-readable description of the asset. For
	// containers this recursively includes the contained children.
	Describe() string

	// ReactTo produces the textual response to an action directed at the
	// asset.
	ReactTo(Action) string
}

// Node is a location in the world. It owns an ordered collection of
// sub-assets; insertion order is preserved and duplicate ids are rejected.
type Node struct {
	id          AssetID
	name        string
	properties  []Property
	description string
	subAssets   []GameAsset
	subIndex    map[AssetID]int
}

func NewNode(id AssetID) *Node {
	return &Node{
		id:       id,
		subIndex: map[AssetID]int{},
	}
}

func (n *Node) ID() AssetID {
	return n.id
}

func (n *Node) Name() string {
	return n.name
}

func (n *Node) SetName(name string) {
	n.name = name
}

func (n *Node) Properties() []Property {
	return n.properties
}

func (n *Node) SetProperties(properties []Property) {
	n.properties = properties
}

func (n *Node) SetDescription(description string) {
	n.description = description
}

// Describe returns the node's own description. Contained assets are included
// by ReactTo on a bare look, not here.
func (n *Node) Describe() string {
	return n.description
}

// SubAssets returns the owned sub-assets in insertion order.
func (n *Node) SubAssets() []GameAsset {
	return n.subAssets
}

// AddAsset inserts asset unless a sub-asset with the same id is already
// present. Duplicates are a silent no-op, never a replacement.
func (n *Node) AddAsset(asset GameAsset) {
	if _, exists := n.subIndex[asset.ID()]; exists {
		return
	}
	n.subIndex[asset.ID()] = len(n.subAssets)
	n.subAssets = append(n.subAssets, asset)
}

// RemoveAsset removes every sub-asset with the given id and keeps all others.
func (n *Node) RemoveAsset(id AssetID) {
	kept := n.subAssets[:0]
	for _, asset := range n.subAssets {
		if asset.ID() != id {
			kept = append(kept, asset)
		}
	}
	n.subAssets = kept

	n.subIndex = make(map[AssetID]int, len(n.subAssets))
	for i, asset := range n.subAssets {
		n.subIndex[asset.ID()] = i
	}
}

// Asset returns the sub-asset with the given id.
func (n *Node) Asset(id AssetID) (GameAsset, bool) {
	i, ok := n.subIndex[id]
	if !ok {
		return nil, false
	}
	return n.subAssets[i], true
}

// ReactTo relays an action to the node. A bare look describes the node and
// every sub-asset, one per line, in insertion order. A targeted look is
// delegated to the matching sub-asset. Other verbs have no default object on
// a node and prompt for one.
func (n *Node) ReactTo(a Action) string {
	switch {
	case a.Verb == VerbLook && !a.HasTarget():
		var b strings.Builder
		b.WriteString(n.description)
		for _, asset := range n.subAssets {
			b.WriteString("\n")
			b.WriteString(asset.Describe())
		}
		return b.String()

	case a.Verb == VerbLook:
		matches := n.findAssets(a.Target, a.Properties)
		switch len(matches) {
		case 0:
			return fmt.Sprintf("You see no %s here.", a.Target)
		case 1:
			return matches[0].ReactTo(Action{Verb: VerbLook})
		default:
			return fmt.Sprintf("Which %s do you mean?", a.Target)
		}

	default:
		return verbPrompt(a.Verb)
	}
}

// findAssets returns the sub-assets identified by the target noun and every
// requested property. A sub-asset matches when its name equals the target
// (ignoring case) and its property set covers all wanted properties.
func (n *Node) findAssets(target string, wanted []Property) []GameAsset {
	var matches []GameAsset
	for _, asset := range n.subAssets {
		if !strings.EqualFold(asset.Name(), target) {
			continue
		}
		if hasProperties(asset, wanted) {
			matches = append(matches, asset)
		}
	}
	return matches
}

func hasProperties(asset GameAsset, wanted []Property) bool {
	for _, w := range wanted {
		found := false
		for _, p := range asset.Properties() {
			if p.Matches(w) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func verbPrompt(v Verb) string {
	if v == VerbConnect {
		return "Connect to what?"
	}
	return fmt.Sprintf("%s what?", display.Capitalize(v.String()))
}

// Port is a sub-asset representing an exit. A port connects to zero, one or
// many destination nodes; destinations are non-owning arena indices, ordered,
// with the first listed destination being the canonical one.
type Port struct {
	id           AssetID
	properties   []Property
	open         bool
	description  string
	destinations []Index
}

func NewPort(id AssetID) *Port {
	return &Port{id: id}
}

func (p *Port) ID() AssetID {
	return p.id
}

func (p *Port) Name() string {
	return "port"
}

func (p *Port) Properties() []Property {
	return p.properties
}

func (p *Port) SetProperties(properties []Property) {
	p.properties = properties
}

func (p *Port) SetDescription(description string) {
	p.description = description
}

func (p *Port) SetOpen(open bool) {
	p.open = open
}

func (p *Port) IsOpen() bool {
	return p.open
}

// AddDestination appends a destination node index.
func (p *Port) AddDestination(idx Index) {
	p.destinations = append(p.destinations, idx)
}

// Destination returns the canonical (first listed) destination.
func (p *Port) Destination() (Index, bool) {
	if len(p.destinations) == 0 {
		return Index{}, false
	}
	return p.destinations[0], true
}

func (p *Port) Describe() string {
	if p.open {
		return fmt.Sprintf("%s The port is open.", p.description)
	}
	return fmt.Sprintf("%s The port is closed.", p.description)
}

// ReactTo relays an action to the port. Ports have no children, so a
// targeted look finds nothing to delegate to.
func (p *Port) ReactTo(a Action) string {
	switch {
	case a.Verb == VerbLook && !a.HasTarget():
		return p.Describe()
	case a.Verb == VerbLook:
		return "You see nothing like that on the port."
	default:
		return verbPrompt(a.Verb)
	}
}
