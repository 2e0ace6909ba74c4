package world

import "errors"

var (
	// ErrVerbUnknown means the line did not start with a recognized verb.
	ErrVerbUnknown = errors.New("unknown verb")

	// ErrVerbEncoding means the line was not valid UTF-8 or a complex look
	// command did not match the grammar.
	ErrVerbEncoding = errors.New("malformed verb encoding")

	// ErrNoSpawnpoint means the world has no spawn candidates configured.
	ErrNoSpawnpoint = errors.New("no spawn point configured")
)
