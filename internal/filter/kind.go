package filter

import (
	"fmt"
	"slices"
	"strings"

	"github.com/rm-hull/photo-filters/internal/pixbuf"
)

type Kind int

const (
	ReflectFlip Kind = iota
	Shear
	Rotate90
	Composite
)

// Kinds lists every filter in menu order.
var Kinds = []Kind{ReflectFlip, Shear, Rotate90, Composite}

var kindNames = map[Kind]string{
	ReflectFlip: "reflect-flip",
	Shear:       "shear",
	Rotate90:    "rotate-90",
	Composite:   "composite",
}

var kindAliases = map[string]Kind{
	"reflect-flip":        ReflectFlip,
	"rotate-180-and-flip": ReflectFlip,
	"shear":               Shear,
	"rotate-90":           Rotate90,
	"composite":           Composite,
	"combine":             Composite,
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Operands is the number of input images the filter needs.
func (k Kind) Operands() int {
	if k == Composite {
		return 2
	}
	return 1
}

// ParseKind accepts a filter name or one of its aliases, ignoring case and
// treating spaces and underscores as hyphens.
func ParseKind(name string) (Kind, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.NewReplacer(" ", "-", "_", "-").Replace(key)
	if k, ok := kindAliases[key]; ok {
		return k, nil
	}
	return 0, fmt.Errorf("%w: unknown filter %q", pixbuf.ErrInvalidArgument, name)
}

// Aliases returns the alternative names accepted for k.
func (k Kind) Aliases() []string {
	var out []string
	for alias, kind := range kindAliases {
		if kind == k && alias != k.String() {
			out = append(out, alias)
		}
	}
	slices.Sort(out)
	return out
}
