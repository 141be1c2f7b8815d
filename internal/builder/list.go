// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package builder

import "fmt"

// SectionList is the ordered collection of a page's sections. The slice
// index is authoritative; every mutating operation re-sequences Order to
// stay unique and contiguous from zero, because the public renderer never
// re-sorts.
type SectionList []Section

// resequence rewrites Order to match slice position.
func (l SectionList) resequence() {
	for i := range l {
		l[i].Order = i
	}
}

// Append adds a section at the end with the next order value.
func (l SectionList) Append(s Section) SectionList {
	s.Order = len(l)
	return append(l, s)
}

// indexOf returns the position of the section with the given ID, or -1.
func (l SectionList) indexOf(id string) int {
	for i := range l {
		if l[i].ID == id {
			return i
		}
	}
	return -1
}

// MoveUp swaps the identified section with its predecessor. Moving the
// first section is a no-op.
func (l SectionList) MoveUp(id string) error {
	i := l.indexOf(id)
	if i < 0 {
		return fmt.Errorf("section %s not found", id)
	}
	if i > 0 {
		l[i-1], l[i] = l[i], l[i-1]
		l.resequence()
	}
	return nil
}

// MoveDown swaps the identified section with its successor. Moving the
// last section is a no-op.
func (l SectionList) MoveDown(id string) error {
	i := l.indexOf(id)
	if i < 0 {
		return fmt.Errorf("section %s not found", id)
	}
	if i < len(l)-1 {
		l[i], l[i+1] = l[i+1], l[i]
		l.resequence()
	}
	return nil
}

// Remove deletes the identified section and closes the order gap.
func (l SectionList) Remove(id string) (SectionList, error) {
	i := l.indexOf(id)
	if i < 0 {
		return l, fmt.Errorf("section %s not found", id)
	}
	out := append(l[:i], l[i+1:]...)
	out.resequence()
	return out, nil
}

// Replace swaps the settings of an existing section in place, keeping its
// ID, type, and order. The editor always sends a full replacement.
func (l SectionList) Replace(s Section) error {
	i := l.indexOf(s.ID)
	if i < 0 {
		return fmt.Errorf("section %s not found", s.ID)
	}
	if l[i].Type != s.Type {
		return fmt.Errorf("section %s type mismatch: have %s, got %s", s.ID, l[i].Type, s.Type)
	}
	s.Order = l[i].Order
	l[i] = s
	return nil
}

// Normalize sorts out inconsistent stored order values (duplicates, gaps)
// by re-sequencing in current slice order. Called after loading from the
// database so editor operations can rely on the invariant.
func (l SectionList) Normalize() {
	l.resequence()
}

// CheckOrder verifies the order invariant: values unique and contiguous
// from zero. Returns nil when the list is well-formed.
func (l SectionList) CheckOrder() error {
	for i := range l {
		if l[i].Order != i {
			return fmt.Errorf("section %d has order %d", i, l[i].Order)
		}
	}
	return nil
}
