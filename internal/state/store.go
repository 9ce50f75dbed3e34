// Package state implements contact book persistence to the filesystem.
package state

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"go.uber.org/zap"

	"github.com/smileynet/contactbook"
	"github.com/smileynet/contactbook/internal/contact"
)

// ErrInvalidPath indicates the backing file path is empty or names a directory.
var ErrInvalidPath = errors.New("state: invalid file path")

// FileStore persists the whole contact collection as one indented JSON array.
type FileStore struct {
	path   string
	schema *gojsonschema.Schema
	logger *zap.Logger
}

// Option configures a FileStore.
type Option func(*FileStore)

// WithLogger sets the logger used to report ignored files.
func WithLogger(l *zap.Logger) Option {
	return func(s *FileStore) {
		s.logger = l
	}
}

// NewFileStore creates a FileStore backed by the file at path.
func NewFileStore(path string, opts ...Option) (*FileStore, error) {
	if path == "" || strings.HasSuffix(path, "/") || strings.HasSuffix(path, string(filepath.Separator)) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPath, path)
	}

	raw, err := fs.ReadFile(contactbook.Schemas, contactbook.ContactsSchema)
	if err != nil {
		return nil, fmt.Errorf("state: reading schema: %w", err)
	}
	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return nil, fmt.Errorf("state: compiling schema: %w", err)
	}

	s := &FileStore{path: path, schema: schema, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the contact collection.
// A missing, empty, undecodable, or wrongly shaped file yields an empty
// collection and no error. Other read failures are returned.
func (s *FileStore) Load() ([]contact.Contact, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.logger.Debug("contacts file not found, starting empty", zap.String("path", s.path))
			return []contact.Contact{}, nil
		}
		return nil, fmt.Errorf("state: reading %s: %w", s.path, err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return []contact.Contact{}, nil
	}

	var contacts []contact.Contact
	if err := json.Unmarshal(data, &contacts); err != nil {
		s.logger.Warn("contacts file unreadable, starting empty",
			zap.String("path", s.path), zap.Error(err))
		return []contact.Contact{}, nil
	}

	res, err := s.schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		s.logger.Warn("contacts file unreadable, starting empty",
			zap.String("path", s.path), zap.Error(err))
		return []contact.Contact{}, nil
	}
	if !res.Valid() {
		fields := make([]string, 0, len(res.Errors()))
		for _, e := range res.Errors() {
			fields = append(fields, e.String())
		}
		s.logger.Warn("contacts file has unexpected structure, starting empty",
			zap.String("path", s.path), zap.Strings("violations", fields))
		return []contact.Contact{}, nil
	}

	if contacts == nil {
		contacts = []contact.Contact{}
	}
	s.logger.Debug("contacts loaded", zap.String("path", s.path), zap.Int("count", len(contacts)))
	return contacts, nil
}

// Save overwrites the backing file with the entire collection.
func (s *FileStore) Save(contacts []contact.Contact) error {
	if contacts == nil {
		contacts = []contact.Contact{}
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("state: creating directory: %w", err)
		}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(contacts); err != nil {
		return fmt.Errorf("state: marshaling: %w", err)
	}

	if err := os.WriteFile(s.path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("state: writing %s: %w", s.path, err)
	}
	s.logger.Debug("contacts saved", zap.String("path", s.path), zap.Int("count", len(contacts)))
	return nil
}
