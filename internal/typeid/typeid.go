// Package typeid generates the prefixed, sortable ids used for elements,
// boards, snapshots, sessions and assets.
package typeid

import (
	"fmt"

	"go.jetify.com/typeid/v2"
)

const (
	PrefixElement  = "el"
	PrefixBoard    = "board"
	PrefixSnapshot = "snap"
	PrefixSession  = "sess"
	PrefixAsset    = "asset"
)

func New(prefix string) string {
	return typeid.MustGenerate(prefix).String()
}

// NewElementID is the engine's default id generator.
func NewElementID() string  { return New(PrefixElement) }
func NewBoardID() string    { return New(PrefixBoard) }
func NewSnapshotID() string { return New(PrefixSnapshot) }
func NewSessionID() string  { return New(PrefixSession) }
func NewAssetID() string    { return New(PrefixAsset) }

// Validate reports whether id parses as a typeid carrying prefix.
func Validate(id, prefix string) error {
	parsed, err := typeid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid id %q: %w", id, err)
	}
	if got := parsed.Prefix(); got != prefix {
		return fmt.Errorf("id %q has prefix %q, want %q", id, got, prefix)
	}
	return nil
}
