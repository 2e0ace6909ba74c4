package world

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// The grammar accepted from players:
//
//	<sentence>   ::= <verb> ("." | E) | "look" <blank> <complex>
//	<complex>    ::= <preposition> <blank> <adjectives> <target> ("." | E)
//	<adjectives> ::= <adjective> (","+ <blank>* | <blank>+) <adjectives> | E
//	<verb>       ::= "look" | "read" | "enter" | "connect" | "access" | "open"
//	<blank>      ::= " "+
//
// Verb matching is case-insensitive and the trailing period is optional.
// Verbs other than look ignore everything after the verb word.
var (
	verbPattern        = regexp.MustCompile(`^[\w\-]+`)
	bareLookPattern    = regexp.MustCompile(`^\s*\.?\s*$`)
	complexLookPattern = regexp.MustCompile(`^\s*(\p{L}+)\s+((?:\p{L}+(?:\s*,\s*|\s+))*)(\p{L}+)\s*\.?\s*$`)
	adjectiveSplitter  = regexp.MustCompile(`[\s,]+`)
)

// ParseAction decodes one input line into an Action.
//
// Lines that are not valid UTF-8 fail with ErrVerbEncoding. Lines whose first
// word token is not a known verb fail with ErrVerbUnknown. A look command
// with trailing text that does not match the complex form fails with
// ErrVerbEncoding rather than being silently dropped.
func ParseAction(data []byte) (Action, error) {
	if !utf8.Valid(data) {
		return Action{}, ErrVerbEncoding
	}
	line := string(data)

	verb := verbPattern.FindString(line)
	if verb == "" {
		return Action{}, ErrVerbUnknown
	}
	rest := line[len(verb):]

	switch strings.ToLower(verb) {
	case "look":
		return parseLook(rest)
	case "read":
		return Action{Verb: VerbRead}, nil
	case "enter":
		return Action{Verb: VerbEnter}, nil
	case "connect":
		return Action{Verb: VerbConnect}, nil
	case "access":
		return Action{Verb: VerbAccess}, nil
	case "open":
		return Action{Verb: VerbOpen}, nil
	default:
		return Action{}, ErrVerbUnknown
	}
}

func parseLook(rest string) (Action, error) {
	if bareLookPattern.MatchString(rest) {
		return Action{Verb: VerbLook}, nil
	}

	caps := complexLookPattern.FindStringSubmatch(rest)
	if caps == nil {
		return Action{}, ErrVerbEncoding
	}

	var properties []Property
	for _, word := range adjectiveSplitter.Split(caps[2], -1) {
		if word == "" {
			continue
		}
		properties = append(properties, ParseProperty(word))
	}

	return Action{
		Verb:        VerbLook,
		Target:      caps[3],
		Preposition: caps[1],
		Properties:  properties,
	}, nil
}
