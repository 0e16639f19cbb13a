package feed

import (
	"nebula/backend/types"

	"golang.org/x/exp/rand"
)

// Source produces the next delta of a feed from the current content.
type Source[T any] interface {
	Next(mode types.Mode, existing []T) types.Delta[T]
}

const letters = "abcdefghijklmnopqrstuvwxyz"

// Generator produces random edits over string items. Each batch makes size
// draws: 60% add a fresh word, 20% remove an existing item and 20% change an
// existing item.
//
// - implements feed.Source
type Generator struct {
	rnd  *rand.Rand
	size int
}

// NewGenerator creates a generator. The same seed produces the same feed.
func NewGenerator(seed uint64, size int) *Generator {
	if size <= 0 {
		size = 10
	}
	return &Generator{
		rnd:  rand.New(rand.NewSource(seed)),
		size: size,
	}
}

// Next implements feed.Source. Changes are only kept in ElementMode; an
// initial delta only carries additions.
func (g *Generator) Next(mode types.Mode, existing []string) types.Delta[string] {
	var added, removed, changed []string

	for i := 0; i < g.size; i++ {
		switch draw := g.rnd.Intn(100); {
		case draw < 60:
			added = append(added, g.Word())
		case draw < 80:
			if len(existing) > 0 {
				removed = append(removed, existing[g.rnd.Intn(len(existing))])
			}
		default:
			if len(existing) > 0 {
				changed = append(changed, existing[g.rnd.Intn(len(existing))])
			}
		}
	}

	switch mode {
	case types.InitialMode:
		return types.NewInitialDelta(added)
	case types.ListMode:
		return types.NewListDelta(added, removed)
	default:
		return types.NewElementDelta(added, removed, changed, nil)
	}
}

// Word returns a random lowercase word of 3 to 8 letters.
func (g *Generator) Word() string {
	n := 3 + g.rnd.Intn(6)
	b := make([]byte, n)
	for i := range b {
		b[i] = letters[g.rnd.Intn(len(letters))]
	}
	return string(b)
}
