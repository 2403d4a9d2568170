// Package inspect converts arbitrary values to short human-readable text.
package inspect

import (
	"strconv"

	"github.com/davecgh/go-spew/spew"
)

var config = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
	MaxDepth:                4,
}

// Value renders v the way a debugger would show it inline: strings quoted,
// numbers bare, composite values with their fields.
func Value(v any) string {
	switch x := v.(type) {
	case string:
		return strconv.Quote(x)
	case nil:
		return "nil"
	}
	return config.Sprintf("%+v", v)
}
