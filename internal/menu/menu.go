// Package menu runs the interactive main menu: it reads a validated choice,
// dispatches to the matching contact operation, and repeats until Exit.
package menu

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/smileynet/contactbook/internal/contact"
	"github.com/smileynet/contactbook/internal/tui"
)

// ErrUnknownChoice indicates menu text that names no menu item.
var ErrUnknownChoice = errors.New("menu: unknown choice")

// Choice is one menu item.
type Choice int

const (
	ChoiceAdd Choice = iota + 1
	ChoiceDelete
	ChoiceSearch
	ChoiceUpdate
	ChoiceList
	ChoiceExit
)

// Choices returns every menu item in display order.
func Choices() []Choice {
	return []Choice{ChoiceAdd, ChoiceDelete, ChoiceSearch, ChoiceUpdate, ChoiceList, ChoiceExit}
}

// String returns the menu label for c.
func (c Choice) String() string {
	switch c {
	case ChoiceAdd:
		return "Add contact"
	case ChoiceDelete:
		return "Delete contact"
	case ChoiceSearch:
		return "Search contact"
	case ChoiceUpdate:
		return "Update contact"
	case ChoiceList:
		return "Show all contacts"
	case ChoiceExit:
		return "Exit"
	}
	return fmt.Sprintf("Choice(%d)", int(c))
}

// ParseChoice converts validated menu text ("1".."6") to a Choice.
func ParseChoice(s string) (Choice, error) {
	switch s {
	case "1":
		return ChoiceAdd, nil
	case "2":
		return ChoiceDelete, nil
	case "3":
		return ChoiceSearch, nil
	case "4":
		return ChoiceUpdate, nil
	case "5":
		return ChoiceList, nil
	case "6":
		return ChoiceExit, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownChoice, s)
}

// Operations are the contact operations the menu dispatches to.
type Operations interface {
	Add() error
	Delete() error
	Search() error
	Update() error
	List() error
}

// Validator returns console input that fully matches rule.
type Validator interface {
	Validate(label string, rule contact.Rule) (string, error)
}

// Loop is the main menu state machine. It has a single state, awaiting a
// choice, and leaves only through ChoiceExit or an error.
type Loop struct {
	ops    Operations
	input  Validator
	w      io.Writer
	styles tui.Styles
	logger *zap.Logger
}

// Option configures a Loop.
type Option func(*Loop)

// WithStyles sets the console styles.
func WithStyles(s tui.Styles) Option {
	return func(l *Loop) {
		l.styles = s
	}
}

// WithLogger sets the logger used to trace dispatches.
func WithLogger(lg *zap.Logger) Option {
	return func(l *Loop) {
		l.logger = lg
	}
}

// New creates a Loop dispatching to ops.
func New(ops Operations, v Validator, w io.Writer, opts ...Option) *Loop {
	l := &Loop{
		ops:    ops,
		input:  v,
		w:      w,
		styles: tui.NewStyles(false),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Run shows the menu and dispatches choices until Exit, which prints a
// farewell and returns nil. Any operation or input error ends the loop.
func (l *Loop) Run() error {
	for {
		l.render()

		text, err := l.input.Validate("Choose an option", contact.RuleMenu)
		if err != nil {
			return fmt.Errorf("menu: %w", err)
		}
		choice, err := ParseChoice(text)
		if err != nil {
			return err
		}

		l.logger.Debug("menu choice", zap.String("choice", choice.String()))
		exit, err := l.dispatch(choice)
		if err != nil {
			return err
		}
		if exit {
			return nil
		}
	}
}

// dispatch runs the operation for c and reports whether the loop should end.
func (l *Loop) dispatch(c Choice) (bool, error) {
	switch c {
	case ChoiceAdd:
		return false, l.ops.Add()
	case ChoiceDelete:
		return false, l.ops.Delete()
	case ChoiceSearch:
		return false, l.ops.Search()
	case ChoiceUpdate:
		return false, l.ops.Update()
	case ChoiceList:
		return false, l.ops.List()
	case ChoiceExit:
		_, _ = fmt.Fprintln(l.w)
		_, _ = fmt.Fprintln(l.w, l.styles.Header.Render("Goodbye!"))
		return true, nil
	}
	return false, fmt.Errorf("%w: %d", ErrUnknownChoice, int(c))
}

// render writes the menu: header, six numbered items, footer.
func (l *Loop) render() {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(l.styles.Header.Render("===== Contact Manager ====="))
	b.WriteString("\n")
	for _, c := range Choices() {
		fmt.Fprintf(&b, "%d. %s\n", int(c), c)
	}
	b.WriteString(l.styles.Rule.Render(strings.Repeat("=", 30)))
	b.WriteString("\n")
	_, _ = io.WriteString(l.w, b.String())
}
