// Package store holds the in-memory, insertion-ordered contact collection.
package store

import (
	"errors"
	"fmt"
	"strings"

	"github.com/smileynet/contactbook/internal/contact"
)

// ErrOutOfRange indicates an index outside the collection.
var ErrOutOfRange = errors.New("store: index out of range")

// Store is an ordered sequence of contacts. Insertion order is display order.
// The zero value is an empty store ready for use.
type Store struct {
	contacts []contact.Contact
}

// New returns a Store seeded with contacts, preserving their order.
func New(contacts []contact.Contact) *Store {
	s := &Store{contacts: make([]contact.Contact, len(contacts))}
	copy(s.contacts, contacts)
	return s
}

// Len returns the number of contacts.
func (s *Store) Len() int {
	return len(s.contacts)
}

// All returns a copy of every contact in store order. Never nil.
func (s *Store) All() []contact.Contact {
	out := make([]contact.Contact, len(s.contacts))
	copy(out, s.contacts)
	return out
}

// Append adds c to the end.
func (s *Store) Append(c contact.Contact) {
	s.contacts = append(s.contacts, c)
}

// FilterOut removes every contact whose phone number equals phone
// and returns how many were removed.
func (s *Store) FilterOut(phone string) int {
	kept := s.contacts[:0]
	for _, c := range s.contacts {
		if c.PhoneNumber != phone {
			kept = append(kept, c)
		}
	}
	removed := len(s.contacts) - len(kept)
	// Clear the tail so dropped records are not retained by the backing array.
	clear(s.contacts[len(kept):])
	s.contacts = kept
	return removed
}

// Count returns how many contacts have the given phone number.
func (s *Store) Count(phone string) int {
	n := 0
	for _, c := range s.contacts {
		if c.PhoneNumber == phone {
			n++
		}
	}
	return n
}

// FindFirst returns the index and value of the first contact with the given
// phone number.
func (s *Store) FindFirst(phone string) (int, contact.Contact, bool) {
	for i, c := range s.contacts {
		if c.PhoneNumber == phone {
			return i, c, true
		}
	}
	return -1, contact.Contact{}, false
}

// FindAll returns every contact whose name equals name ignoring case,
// in store order.
func (s *Store) FindAll(name string) []contact.Contact {
	var out []contact.Contact
	for _, c := range s.contacts {
		if strings.EqualFold(c.Name, name) {
			out = append(out, c)
		}
	}
	return out
}

// Replace overwrites the contact at index i in place.
func (s *Store) Replace(i int, c contact.Contact) error {
	if i < 0 || i >= len(s.contacts) {
		return fmt.Errorf("%w: %d (len %d)", ErrOutOfRange, i, len(s.contacts))
	}
	s.contacts[i] = c
	return nil
}
