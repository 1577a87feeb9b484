// Package memory is a headless platform layer. It keeps screens, windows,
// modal presenters and navigation stacks in memory so router trees can be
// driven and inspected without a display, in tests and in the navsim tool.
//
// Animated transitions settle on a clockwork.Clock. Production code uses the
// real clock; tests inject clockwork.NewFakeClock and call Tick after
// advancing it, or Settle to finish everything at once.
package memory

import (
	"github.com/BrandonKowalski/ribs/pkg/ribs/router"
	"github.com/google/uuid"
)

// Screen is a named in-memory screen. Each Screen has a unique ID, so two
// screens with the same name are still different screens.
type Screen struct {
	id   uuid.UUID
	name string
}

func NewScreen(name string) *Screen {
	return &Screen{id: uuid.New(), name: name}
}

func (s *Screen) ScreenID() string { return s.id.String() }

func (s *Screen) Name() string { return s.name }

func (s *Screen) String() string { return s.name }

// Names returns the display names of screens. Screens that are not memory
// screens are shown by ID.
func Names(screens []router.Screen) []string {
	out := make([]string, 0, len(screens))
	for _, screen := range screens {
		out = append(out, NameOf(screen))
	}
	return out
}

// NameOf returns the display name of screen.
func NameOf(screen router.Screen) string {
	switch s := screen.(type) {
	case nil:
		return ""
	case interface{ Name() string }:
		return s.Name()
	default:
		return s.ScreenID()
	}
}
