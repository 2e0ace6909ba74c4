package screens

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// ScreenType identifies a static client-facing screen.
type ScreenType int

const (
	ScreenWelcome ScreenType = iota
	ScreenError
)

func (t ScreenType) filename() string {
	switch t {
	case ScreenWelcome:
		return "00_welcome.ans"
	case ScreenError:
		return "01_error.ans"
	default:
		return ""
	}
}

// templateFuncs provides utility functions for screen templates.
var templateFuncs = sprig.TxtFuncMap()

// Loader reads screen files from a directory and expands any template
// directives they contain.
type Loader struct {
	dir string
}

func NewLoader(dir string) *Loader {
	return &Loader{dir: dir}
}

// Load returns the raw bytes of a screen file.
func (l *Loader) Load(t ScreenType) ([]byte, error) {
	name := t.filename()
	if name == "" {
		return nil, fmt.Errorf("unknown screen type %d", t)
	}

	data, err := os.ReadFile(filepath.Join(l.dir, name))
	if err != nil {
		return nil, fmt.Errorf("loading screen %s: %w", name, err)
	}

	return data, nil
}

// Render loads a screen and expands template directives against data.
// Screens without template markers pass through untouched.
func (l *Loader) Render(t ScreenType, data any) ([]byte, error) {
	raw, err := l.Load(t)
	if err != nil {
		return nil, err
	}

	if !bytes.Contains(raw, []byte("{{")) {
		return raw, nil
	}

	tmpl, err := template.New(t.filename()).Funcs(templateFuncs).Parse(string(raw))
	if err != nil {
		return nil, fmt.Errorf("parsing screen %s: %w", t.filename(), err)
	}

	var buf bytes.Buffer
	err = tmpl.Execute(&buf, data)
	if err != nil {
		return nil, fmt.Errorf("executing screen %s: %w", t.filename(), err)
	}

	return buf.Bytes(), nil
}
