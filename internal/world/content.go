package world

import (
	"fmt"
	"maps"
	"slices"

	"github.com/pixil98/go-errors"
)

// NodeSpec is the on-disk form of a node, loaded from JSON content assets.
// Ports are declared inline since a node owns its ports; destinations refer
// to other nodes by their asset identifier.
type NodeSpec struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Properties  []string   `json:"properties,omitempty"`
	Spawn       bool       `json:"spawn,omitempty"`
	Ports       []PortSpec `json:"ports,omitempty"`
}

type PortSpec struct {
	Description  string   `json:"description"`
	Open         bool     `json:"open,omitempty"`
	Properties   []string `json:"properties,omitempty"`
	Destinations []string `json:"destinations,omitempty"`
}

func (s *NodeSpec) Validate() error {
	el := errors.NewErrorList()

	if s.Description == "" {
		el.Add(fmt.Errorf("description is required"))
	}

	for i, p := range s.Ports {
		if p.Description == "" {
			el.Add(fmt.Errorf("port %d: description is required", i))
		}
	}

	return el.Err()
}

// BuildWorld assembles a GameWorld from loaded node specs. Nodes are inserted
// first so port destinations can be resolved to arena indices in a second
// pass; a destination naming an unknown node is a build error.
func BuildWorld(name string, specs map[string]*NodeSpec) (*GameWorld, error) {
	w := NewGameWorld(name)

	ids := slices.Sorted(maps.Keys(specs))

	nodes := make(map[string]*Node, len(specs))
	indices := make(map[string]Index, len(specs))
	for _, id := range ids {
		spec := specs[id]
		node := NewNode(w.NextAssetID())
		node.SetName(spec.Name)
		node.SetDescription(spec.Description)
		node.SetProperties(parseProperties(spec.Properties))

		if spec.Spawn {
			indices[id] = w.AddSpawnNode(node)
		} else {
			indices[id] = w.AddNode(node)
		}
		nodes[id] = node
	}

	for _, id := range ids {
		for i, portSpec := range specs[id].Ports {
			port := NewPort(w.NextAssetID())
			port.SetDescription(portSpec.Description)
			port.SetOpen(portSpec.Open)
			port.SetProperties(parseProperties(portSpec.Properties))

			for _, dest := range portSpec.Destinations {
				destIdx, ok := indices[dest]
				if !ok {
					return nil, fmt.Errorf("node %q port %d: unknown destination %q", id, i, dest)
				}
				port.AddDestination(destIdx)
			}

			nodes[id].AddAsset(port)
		}
	}

	return w, nil
}

func parseProperties(words []string) []Property {
	if len(words) == 0 {
		return nil
	}
	properties := make([]Property, 0, len(words))
	for _, word := range words {
		properties = append(properties, ParseProperty(word))
	}
	return properties
}

// DefaultWorld builds the minimal world used when no content path is
// configured: a single dark spawn node holding two ports.
func DefaultWorld(name string) *GameWorld {
	w := NewGameWorld(name)

	node := NewNode(w.NextAssetID())
	node.SetDescription("Around you its dark. You feel more than you see a pulsing ultraviolet light.")

	port := NewPort(w.NextAssetID())
	port.SetDescription("A simple port that looks absolutely normal.")
	node.AddAsset(port)

	port = NewPort(w.NextAssetID())
	port.SetDescription("A port that has a slight purple shimmering edge.")
	port.SetProperties([]Property{ParseProperty("purple")})
	node.AddAsset(port)

	w.AddSpawnNode(node)
	return w
}
