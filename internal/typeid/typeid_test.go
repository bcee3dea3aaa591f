package typeid

import (
	"strings"
	"testing"
)

func TestNewIDsCarryPrefix(t *testing.T) {
	tests := []struct {
		gen    func() string
		prefix string
	}{
		{NewElementID, PrefixElement},
		{NewBoardID, PrefixBoard},
		{NewSnapshotID, PrefixSnapshot},
		{NewSessionID, PrefixSession},
		{NewAssetID, PrefixAsset},
	}

	for _, tt := range tests {
		id := tt.gen()
		if !strings.HasPrefix(id, tt.prefix+"_") {
			t.Errorf("expected %s_ prefix, got %q", tt.prefix, id)
		}
		if err := Validate(id, tt.prefix); err != nil {
			t.Errorf("Validate(%q): %v", id, err)
		}
	}
}

func TestNewIDsAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for range 100 {
		id := NewElementID()
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
	}
}

func TestValidateRejects(t *testing.T) {
	if err := Validate(NewBoardID(), PrefixElement); err == nil {
		t.Error("expected prefix mismatch error")
	}
	if err := Validate("not-an-id", PrefixBoard); err == nil {
		t.Error("expected parse error")
	}
}
