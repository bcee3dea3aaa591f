package document

import (
	"errors"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validateOnce sync.Once
	structs      *validator.Validate
)

func structValidator() *validator.Validate {
	validateOnce.Do(func() {
		structs = validator.New()
	})
	return structs
}

// Validate checks field constraints and the parent/children topology of an
// envelope. All topology violations are reported together.
func Validate(env *Envelope) error {
	if err := structValidator().Struct(env); err != nil {
		return fmt.Errorf("invalid envelope: %w", err)
	}
	if env.Version > CurrentVersion {
		return fmt.Errorf("unsupported envelope version %d", env.Version)
	}
	return CheckTopology(env.Elements)
}

// CheckTopology verifies that parentId back-references and children lists
// agree, that parents are frames, that no element is owned twice and that
// the parent chain has no cycles.
func CheckTopology(elements []Element) error {
	var errs []error

	byID := make(map[string]*Element, len(elements))
	for i := range elements {
		el := &elements[i]
		if _, dup := byID[el.ID]; dup {
			errs = append(errs, fmt.Errorf("duplicate element id %s", el.ID))
			continue
		}
		byID[el.ID] = el
	}

	owner := make(map[string]string)
	for _, el := range byID {
		if len(el.Children) > 0 && !el.IsFrame() {
			errs = append(errs, fmt.Errorf("element %s of type %s has children", el.ID, el.Type))
		}
		for _, childID := range el.Children {
			child, ok := byID[childID]
			if !ok {
				errs = append(errs, fmt.Errorf("frame %s lists missing child %s", el.ID, childID))
				continue
			}
			if prev, taken := owner[childID]; taken {
				errs = append(errs, fmt.Errorf("element %s is a child of both %s and %s", childID, prev, el.ID))
				continue
			}
			owner[childID] = el.ID
			if child.ParentID != el.ID {
				errs = append(errs, fmt.Errorf("frame %s lists child %s whose parent is %q", el.ID, childID, child.ParentID))
			}
		}
	}

	for _, el := range byID {
		if el.ParentID == "" {
			continue
		}
		parent, ok := byID[el.ParentID]
		if !ok {
			errs = append(errs, fmt.Errorf("element %s references missing parent %s", el.ID, el.ParentID))
			continue
		}
		if !parent.IsFrame() {
			errs = append(errs, fmt.Errorf("element %s has non-frame parent %s", el.ID, parent.ID))
		}
		if owner[el.ID] != el.ParentID {
			errs = append(errs, fmt.Errorf("element %s is not listed in children of %s", el.ID, el.ParentID))
		}
		if hasCycle(byID, el.ID) {
			errs = append(errs, fmt.Errorf("element %s is part of a parent cycle", el.ID))
		}
	}

	return errors.Join(errs...)
}

func hasCycle(byID map[string]*Element, id string) bool {
	seen := map[string]bool{id: true}
	cur := byID[id]
	for cur != nil && cur.ParentID != "" {
		if seen[cur.ParentID] {
			return true
		}
		seen[cur.ParentID] = true
		cur = byID[cur.ParentID]
	}
	return false
}
