package world

import "strings"

// PropertyKind enumerates the closed descriptive categories. Words that fall
// outside every closed vocabulary are carried as PropertyCustom.
type PropertyKind int

const (
	PropertyColor PropertyKind = iota
	PropertyRigidity
	PropertyTemperature
	PropertyLighting
	PropertyCustom
)

func (k PropertyKind) String() string {
	switch k {
	case PropertyColor:
		return "color"
	case PropertyRigidity:
		return "rigidity"
	case PropertyTemperature:
		return "temperature"
	case PropertyLighting:
		return "lighting"
	case PropertyCustom:
		return "custom"
	default:
		return "unknown"
	}
}

// Property is a descriptive tag on an asset. It is a plain value; attaching
// it to an asset carries no ownership implications.
type Property struct {
	Kind  PropertyKind
	Value string
}

func (p Property) String() string {
	return p.Value
}

// Matches reports whether p describes the same tag as other, ignoring case.
func (p Property) Matches(other Property) bool {
	return p.Kind == other.Kind && strings.EqualFold(p.Value, other.Value)
}

// The closed vocabularies, tried in this order. First match wins.
var propertyVocabularies = []struct {
	kind  PropertyKind
	words []string
}{
	{PropertyColor, []string{"red", "blue", "green", "yellow", "cyan", "magenta", "black", "white", "violet", "purple"}},
	{PropertyRigidity, []string{"rigid", "solid", "liquid", "aerially", "frozen", "molten"}},
	{PropertyTemperature, []string{"cold", "cool", "warm", "hot"}},
	{PropertyLighting, []string{"pulsing", "radiating", "shining", "bright", "dark", "glowing"}},
}

// ParseProperty classifies a word against the closed vocabularies. It is
// total: anything unrecognized becomes a custom property holding the original
// text. Closed matches store the canonical lowercase word.
func ParseProperty(text string) Property {
	lower := strings.ToLower(text)
	for _, vocab := range propertyVocabularies {
		for _, word := range vocab.words {
			if word == lower {
				return Property{Kind: vocab.kind, Value: word}
			}
		}
	}
	return Property{Kind: PropertyCustom, Value: text}
}
