package command

import (
	"fmt"
	"os"

	"github.com/gridmud/gridmud/internal/screens"
	"github.com/pixil98/go-errors"
)

type ScreensConfig struct {
	Path string `json:"path"`
}

func (c *ScreensConfig) validate() error {
	el := errors.NewErrorList()

	if c.Path == "" {
		el.Add(fmt.Errorf("path is required"))
	} else if _, err := os.Stat(c.Path); err != nil {
		el.Add(fmt.Errorf("invalid path %q: %w", c.Path, err))
	}

	return el.Err()
}

func (c *ScreensConfig) BuildLoader() *screens.Loader {
	return screens.NewLoader(c.Path)
}
