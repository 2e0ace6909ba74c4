package command

import (
	"fmt"
	"os"

	"github.com/gridmud/gridmud/internal/storage"
	"github.com/gridmud/gridmud/internal/world"
	"github.com/pixil98/go-errors"
)

type WorldConfig struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`

	// NodesPath points at a directory of node assets. When empty the
	// built-in single-node world is used.
	NodesPath string `json:"nodes_path,omitempty"`
}

func (c *WorldConfig) validate() error {
	el := errors.NewErrorList()

	if c.Name == "" {
		el.Add(fmt.Errorf("name is required"))
	}

	if c.NodesPath != "" {
		if _, err := os.Stat(c.NodesPath); err != nil {
			el.Add(fmt.Errorf("invalid nodes_path %q: %w", c.NodesPath, err))
		}
	}

	return el.Err()
}

func (c *WorldConfig) BuildWorld() (*world.GameWorld, error) {
	if c.NodesPath == "" {
		w := world.DefaultWorld(c.Name)
		if c.Description != "" {
			w.SetDescription(c.Description)
		}
		return w, nil
	}

	store, err := storage.NewFileStore[*world.NodeSpec](c.NodesPath)
	if err != nil {
		return nil, fmt.Errorf("creating node store: %w", err)
	}

	w, err := world.BuildWorld(c.Name, store.GetAll())
	if err != nil {
		return nil, fmt.Errorf("building world: %w", err)
	}
	if c.Description != "" {
		w.SetDescription(c.Description)
	}
	return w, nil
}
