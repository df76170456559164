// Package theme holds the light/dark display preference.
package theme

import (
	"context"
	"errors"
	"strings"
	"sync"
)

// Theme selects the page palette.
type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

// ErrNoProvider signals the theme store was read from a context without one.
var ErrNoProvider = errors.New("theme: theme store accessed outside its provider")

// Parse accepts "light" or "dark" in any case.
func Parse(s string) (Theme, bool) {
	switch Theme(strings.ToLower(strings.TrimSpace(s))) {
	case Light:
		return Light, true
	case Dark:
		return Dark, true
	}
	return "", false
}

// Other returns the opposite theme.
func (t Theme) Other() Theme {
	if t == Dark {
		return Light
	}
	return Dark
}

// Class is the class placed on the root element.
func (t Theme) Class() string {
	if t == Dark {
		return "dark"
	}
	return ""
}

func (t Theme) String() string { return string(t) }

// Store holds the active theme; it starts light.
type Store struct {
	mu    sync.RWMutex
	theme Theme
}

// NewStore returns a store set to t, or Light when t is not a valid theme.
func NewStore(t Theme) *Store {
	if t != Dark {
		t = Light
	}
	return &Store{theme: t}
}

// Theme returns the active theme.
func (s *Store) Theme() Theme {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.theme
}

// Toggle flips the theme and returns the new value.
func (s *Store) Toggle() Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.theme = s.theme.Other()
	return s.theme
}

type ctxKey struct{}

// WithStore attaches s to ctx.
func WithStore(ctx context.Context, s *Store) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext returns the attached store or ErrNoProvider.
func FromContext(ctx context.Context) (*Store, error) {
	if s, ok := ctx.Value(ctxKey{}).(*Store); ok && s != nil {
		return s, nil
	}
	return nil, ErrNoProvider
}

// MustFromContext panics when no store is attached.
func MustFromContext(ctx context.Context) *Store {
	s, err := FromContext(ctx)
	if err != nil {
		panic(err)
	}
	return s
}
