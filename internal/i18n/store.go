package i18n

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrNoProvider signals a wiring bug: the localization store was looked up
// in a context that never received one.
var ErrNoProvider = errors.New("i18n: localization store accessed outside its provider")

// Store holds the active locale. It is the single source of truth for the
// locale; views receive a Translator snapshot rather than the store itself.
type Store struct {
	mu     sync.RWMutex
	bundle *Bundle
	locale Locale
}

// NewStore returns a store on the primary locale.
func NewStore(b *Bundle) *Store {
	return &Store{bundle: b, locale: Primary}
}

// Locale returns the active locale.
func (s *Store) Locale() Locale {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.locale
}

// SetLocale switches the active locale. Subsequent T calls use it at once.
func (s *Store) SetLocale(l Locale) error {
	if !l.Valid() {
		return fmt.Errorf("%w: %q", ErrUnsupportedLocale, string(l))
	}
	s.mu.Lock()
	s.locale = l
	s.mu.Unlock()
	return nil
}

// Toggle flips between the primary and secondary locale and returns the new one.
func (s *Store) Toggle() Locale {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.locale = s.locale.Other()
	return s.locale
}

// T translates key under the active locale.
func (s *Store) T(key string) string {
	return s.bundle.T(s.Locale(), key)
}

// Bundle returns the underlying tables.
func (s *Store) Bundle() *Bundle { return s.bundle }

// Translator returns a translator pinned to the active locale.
func (s *Store) Translator() Translator {
	return Translator{bundle: s.bundle, locale: s.Locale()}
}

// Translator is an immutable (bundle, locale) pair handed to views.
type Translator struct {
	bundle *Bundle
	locale Locale
}

// NewTranslator pins b to locale.
func NewTranslator(b *Bundle, locale Locale) Translator {
	return Translator{bundle: b, locale: locale}
}

// T translates key; see Bundle.T.
func (t Translator) T(key string) string { return t.bundle.T(t.locale, key) }

// Locale returns the pinned locale.
func (t Translator) Locale() Locale { return t.locale }

type ctxKey struct{}

// WithStore attaches s to ctx.
func WithStore(ctx context.Context, s *Store) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext returns the store attached by WithStore, or ErrNoProvider.
func FromContext(ctx context.Context) (*Store, error) {
	if s, ok := ctx.Value(ctxKey{}).(*Store); ok && s != nil {
		return s, nil
	}
	return nil, ErrNoProvider
}

// MustFromContext is FromContext for call sites where a missing provider is
// a programming error.
func MustFromContext(ctx context.Context) *Store {
	s, err := FromContext(ctx)
	if err != nil {
		panic(err)
	}
	return s
}
