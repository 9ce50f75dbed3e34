// Package prompt requests console input until it matches a named rule.
package prompt

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/smileynet/contactbook/internal/contact"
	"github.com/smileynet/contactbook/internal/tui"
)

// ErrUnknownRule indicates Validate was called with a rule that has no pattern.
var ErrUnknownRule = errors.New("prompt: unknown rule")

// RejectMessage is printed after each input that fails its rule.
const RejectMessage = "Invalid entry, please try again."

// LineReader reads one line of console input after showing label.
type LineReader interface {
	ReadLine(label string) (string, error)
}

// Validator prompts until input matches a rule.
type Validator struct {
	r      LineReader
	w      io.Writer
	styles tui.Styles
	logger *zap.Logger
}

// Option configures a Validator.
type Option func(*Validator)

// WithStyles sets the styles used for the rejection notice.
func WithStyles(s tui.Styles) Option {
	return func(v *Validator) {
		v.styles = s
	}
}

// WithLogger sets the logger used to record rejections.
func WithLogger(l *zap.Logger) Option {
	return func(v *Validator) {
		v.logger = l
	}
}

// New creates a Validator reading from r and writing notices to w.
func New(r LineReader, w io.Writer, opts ...Option) *Validator {
	v := &Validator{
		r:      r,
		w:      w,
		styles: tui.NewStyles(false),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate reads lines labelled label, trimming surrounding whitespace,
// until one fully matches rule, and returns it. There is no retry limit.
// The only errors are an unknown rule and console read failures.
func (v *Validator) Validate(label string, rule contact.Rule) (string, error) {
	if !rule.Known() {
		return "", fmt.Errorf("%w: %q", ErrUnknownRule, rule)
	}

	for attempt := 1; ; attempt++ {
		line, err := v.r.ReadLine(label)
		if err != nil {
			return "", fmt.Errorf("prompt: reading %s: %w", rule, err)
		}

		text := strings.TrimSpace(line)
		if rule.Match(text) {
			return text, nil
		}

		v.logger.Debug("input rejected", zap.String("rule", string(rule)), zap.Int("attempt", attempt))
		_, _ = fmt.Fprintln(v.w, v.styles.Failure.Render(RejectMessage))
	}
}
