package analytics

import (
	"maps"
	"unicode/utf8"
)

// InvalidInput is returned by Name for terminals too short to carry a prefix.
const InvalidInput = "Invalid input"

// venuePrefixLen is the length of the terminal code looked up in the directory.
const venuePrefixLen = 5

// defaultVenues maps terminal code prefixes to campus venue names.
var defaultVenues = map[string]string{
	"00001": "WatCard Office",
	"00043": "REVelation",
	"00044": "Mudie's",
	"00051": "Mudie's",
	"00052": "Liquid Assets Cafe",
	"00060": "Tim Hortons (SLC)",
	"00061": "Tim Hortons (DC)",
	"00070": "Starbucks (DP Library)",
	"00075": "Williams Fresh Cafe",
	"00080": "The Market (CMH)",
	"00088": "DC Vending",
}

var defaultDirectory = NewDirectory(nil)

// Directory resolves terminal identifiers to friendly venue names.
type Directory struct {
	names map[string]string
}

// NewDirectory returns the built-in venue table with overrides applied on top.
func NewDirectory(overrides map[string]string) *Directory {
	names := maps.Clone(defaultVenues)
	maps.Copy(names, overrides)
	return &Directory{names: names}
}

// Name returns the venue for terminal's 5-character prefix. Terminals shorter
// than the prefix yield InvalidInput; unknown prefixes return terminal as is.
func (d *Directory) Name(terminal string) string {
	if utf8.RuneCountInString(terminal) < venuePrefixLen {
		return InvalidInput
	}
	prefix := string([]rune(terminal)[:venuePrefixLen])
	if name, ok := d.names[prefix]; ok {
		return name
	}
	return terminal
}

// TerminalToName resolves terminal against the built-in venue table.
func TerminalToName(terminal string) string {
	return defaultDirectory.Name(terminal)
}
