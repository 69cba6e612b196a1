package preferences

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// KeyDarkTheme holds "true" or "false".
const KeyDarkTheme = "darkTheme"

// Backend is the key-value storage preferences are kept in.
type Backend interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Theme reads and writes the dark theme flag.
type Theme struct {
	backend Backend
}

// NewTheme returns a Theme backed by backend.
func NewTheme(backend Backend) *Theme {
	return &Theme{backend: backend}
}

// Dark reports whether the dark theme is enabled. Unset or unparsable
// values mean light.
func (t *Theme) Dark(ctx context.Context) (bool, error) {
	raw, ok, err := t.backend.Get(ctx, KeyDarkTheme)
	if err != nil {
		return false, fmt.Errorf("read theme: %w", err)
	}
	if !ok {
		return false, nil
	}
	dark, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		return false, nil
	}
	return dark, nil
}

// SetDark stores the flag as "true" or "false".
func (t *Theme) SetDark(ctx context.Context, dark bool) error {
	if err := t.backend.Set(ctx, KeyDarkTheme, strconv.FormatBool(dark)); err != nil {
		return fmt.Errorf("save theme: %w", err)
	}
	return nil
}

// Toggle flips the flag and returns the new value.
func (t *Theme) Toggle(ctx context.Context) (bool, error) {
	dark, err := t.Dark(ctx)
	if err != nil {
		return false, err
	}
	if err := t.SetDark(ctx, !dark); err != nil {
		return dark, err
	}
	return !dark, nil
}

// Reset forgets the stored flag so the default light theme applies.
func (t *Theme) Reset(ctx context.Context) error {
	if err := t.backend.Delete(ctx, KeyDarkTheme); err != nil {
		return fmt.Errorf("reset theme: %w", err)
	}
	return nil
}
