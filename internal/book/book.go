// Package book implements the contact book operations: add, delete, search,
// update, and list. Each operation reads validated input, mutates the store,
// and persists the whole collection after every successful mutation.
package book

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/smileynet/contactbook/internal/contact"
	"github.com/smileynet/contactbook/internal/store"
	"github.com/smileynet/contactbook/internal/tui"
)

// Console texts shown by the operations.
const (
	MsgAdded        = "Contact added successfully!"
	MsgDeleted      = "Contact deleted successfully!"
	MsgUpdated      = "Contact updated successfully!"
	MsgNotFound     = "No contact found with that phone number."
	MsgNoResults    = "No results found."
	MsgEmpty        = "Your contact list is empty."
	MsgDeleteCancel = "Deletion cancelled."
)

const (
	separator = "--------------------"
	closer    = "===================="
)

// Validator returns console input that fully matches rule.
type Validator interface {
	Validate(label string, rule contact.Rule) (string, error)
}

// Persister saves the entire contact collection.
type Persister interface {
	Save(contacts []contact.Contact) error
}

// Book runs contact operations against an owned store.
type Book struct {
	store         *store.Store
	persist       Persister
	input         Validator
	w             io.Writer
	styles        tui.Styles
	logger        *zap.Logger
	confirmDelete bool
}

// Option configures a Book.
type Option func(*Book)

// WithStyles sets the console styles.
func WithStyles(s tui.Styles) Option {
	return func(b *Book) {
		b.styles = s
	}
}

// WithLogger sets the logger used to record mutations.
func WithLogger(l *zap.Logger) Option {
	return func(b *Book) {
		b.logger = l
	}
}

// WithConfirmDelete makes Delete ask for confirmation before removing matches.
func WithConfirmDelete(confirm bool) Option {
	return func(b *Book) {
		b.confirmDelete = confirm
	}
}

// New creates a Book over s that persists through p, reads through v,
// and writes results to w.
func New(s *store.Store, p Persister, v Validator, w io.Writer, opts ...Option) *Book {
	b := &Book{
		store:   s,
		persist: p,
		input:   v,
		w:       w,
		styles:  tui.NewStyles(false),
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Add reads all five fields in order, appends the new contact, and saves.
func (b *Book) Add() error {
	b.header("--- Add a New Contact ---")

	var c contact.Contact
	for _, f := range contact.Fields() {
		v, err := b.input.Validate("Enter "+string(f), f.Rule())
		if err != nil {
			return fmt.Errorf("book: add: %w", err)
		}
		c.Set(f, v)
	}
	if err := c.Validate(); err != nil {
		return fmt.Errorf("book: add: %w", err)
	}

	b.store.Append(c)
	if err := b.save("add"); err != nil {
		return err
	}
	b.logger.Info("contact added", zap.Int("contacts", b.store.Len()))
	b.success(MsgAdded)
	return nil
}

// Delete removes every contact with the entered phone number.
// Nothing is saved when no contact matches or the deletion is cancelled.
func (b *Book) Delete() error {
	b.header("--- Delete a Contact ---")

	phone, err := b.input.Validate("Enter the Phone Number of the contact to delete", contact.RulePhoneNumber)
	if err != nil {
		return fmt.Errorf("book: delete: %w", err)
	}

	if b.confirmDelete {
		n := b.store.Count(phone)
		if n == 0 {
			b.notice(MsgNotFound)
			return nil
		}
		ok, err := b.confirm(n)
		if err != nil {
			return fmt.Errorf("book: delete: %w", err)
		}
		if !ok {
			b.notice(MsgDeleteCancel)
			return nil
		}
	}

	removed := b.store.FilterOut(phone)
	if removed == 0 {
		b.notice(MsgNotFound)
		return nil
	}

	if err := b.save("delete"); err != nil {
		return err
	}
	b.logger.Info("contact deleted", zap.Int("removed", removed), zap.Int("contacts", b.store.Len()))
	b.success(MsgDeleted)
	return nil
}

// confirm asks whether n matching contacts should be deleted.
func (b *Book) confirm(n int) (bool, error) {
	_, _ = fmt.Fprintf(b.w, "Found %d contact(s) with that phone number. Delete?\n", n)
	_, _ = fmt.Fprintln(b.w, "1. Yes")
	_, _ = fmt.Fprintln(b.w, "2. No")

	choice, err := b.input.Validate("Choose an option", contact.RuleDeleteChoice)
	if err != nil {
		return false, err
	}
	return choice == "1", nil
}

// Search prints every contact whose name equals the entered name, ignoring case.
func (b *Book) Search() error {
	b.header("--- Search for a Contact ---")

	name, err := b.input.Validate("Enter Name to search for", contact.RuleName)
	if err != nil {
		return fmt.Errorf("book: search: %w", err)
	}

	results := b.store.FindAll(name)
	if len(results) == 0 {
		b.notice(MsgNoResults)
		return nil
	}

	_, _ = fmt.Fprintf(b.w, "Found %d contact(s):\n", len(results))
	for _, c := range results {
		b.rule(separator)
		b.printContact(c)
	}
	b.rule(separator)
	return nil
}

// Update re-reads every field of the first contact with the entered phone
// number and replaces it in place.
func (b *Book) Update() error {
	b.header("--- Update a Contact ---")

	phone, err := b.input.Validate("Enter Phone Number of the contact to update", contact.RulePhoneNumber)
	if err != nil {
		return fmt.Errorf("book: update: %w", err)
	}

	idx, current, ok := b.store.FindFirst(phone)
	if !ok {
		b.notice(MsgNotFound)
		return nil
	}

	_, _ = fmt.Fprintln(b.w)
	_, _ = fmt.Fprintln(b.w, "Found Contact:")
	b.printContact(current)
	b.rule(separator)

	b.header("--- Enter New Contact Details ---")
	updated := current
	for _, f := range contact.Fields() {
		v, err := b.input.Validate("Enter "+string(f), f.Rule())
		if err != nil {
			return fmt.Errorf("book: update: %w", err)
		}
		updated.Set(f, v)
	}
	if err := updated.Validate(); err != nil {
		return fmt.Errorf("book: update: %w", err)
	}

	if err := b.store.Replace(idx, updated); err != nil {
		return fmt.Errorf("book: update: %w", err)
	}
	if err := b.save("update"); err != nil {
		return err
	}
	b.logger.Info("contact updated", zap.Int("index", idx), zap.Int("contacts", b.store.Len()))
	b.success(MsgUpdated)
	return nil
}

// List prints every contact numbered from 1.
func (b *Book) List() error {
	b.header("--- All Contacts ---")

	all := b.store.All()
	if len(all) == 0 {
		b.notice(MsgEmpty)
		return nil
	}

	for i, c := range all {
		_, _ = fmt.Fprintln(b.w, b.styles.Label.Render(fmt.Sprintf("--- Contact %d ---", i+1)))
		b.printContact(c)
	}
	_, _ = fmt.Fprintln(b.w)
	b.rule(closer)
	return nil
}

func (b *Book) save(op string) error {
	if err := b.persist.Save(b.store.All()); err != nil {
		return fmt.Errorf("book: saving after %s: %w", op, err)
	}
	return nil
}

// printContact writes one "Field: value" line per field in stored key order.
// Values are written unstyled so they appear exactly as stored.
func (b *Book) printContact(c contact.Contact) {
	for _, f := range contact.Fields() {
		_, _ = fmt.Fprintf(b.w, "%s %s\n", b.styles.Label.Render(string(f)+":"), c.Get(f))
	}
}

func (b *Book) header(text string) {
	_, _ = fmt.Fprintln(b.w)
	_, _ = fmt.Fprintln(b.w, b.styles.Header.Render(text))
}

func (b *Book) rule(line string) {
	_, _ = fmt.Fprintln(b.w, b.styles.Rule.Render(line))
}

func (b *Book) success(msg string) {
	_, _ = fmt.Fprintln(b.w, b.styles.Success.Render(msg))
}

func (b *Book) notice(msg string) {
	_, _ = fmt.Fprintln(b.w, b.styles.Notice.Render(msg))
}
