package display

import (
	"strings"
	"testing"

	"github.com/pixil98/go-testutil"
)

func TestWrap(t *testing.T) {
	short := "fits on one line"
	testutil.AssertEqual(t, "short text untouched", Wrap(short), short)

	long := strings.Repeat("word ", 30)
	for i, line := range strings.Split(Wrap(long), "\n") {
		if len(line) > DefaultWidth {
			t.Errorf("line %d exceeds width: %d", i, len(line))
		}
	}
}

func TestCapitalize(t *testing.T) {
	tests := map[string]struct {
		word string
		exp  string
	}{
		"lowercase word": {word: "read", exp: "Read"},
		"already capitalized": {word: "Read", exp: "Read"},
		"empty": {word: "", exp: ""},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			testutil.AssertEqual(t, "capitalized", Capitalize(tt.word), tt.exp)
		})
	}
}
