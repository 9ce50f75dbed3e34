package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"

	"github.com/smileynet/contactbook/internal/book"
	"github.com/smileynet/contactbook/internal/config"
	"github.com/smileynet/contactbook/internal/logging"
	"github.com/smileynet/contactbook/internal/menu"
	"github.com/smileynet/contactbook/internal/prompt"
	"github.com/smileynet/contactbook/internal/state"
	"github.com/smileynet/contactbook/internal/store"
	"github.com/smileynet/contactbook/internal/tui"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Exit codes.
const (
	exitSuccess     = 0
	exitFailure     = 1
	exitInterrupted = 130
)

// CLI is the top-level command structure for contacts. Every flag is
// optional; with none the interactive session uses the layered config.
type CLI struct {
	Version       kong.VersionFlag `help:"Show version." short:"V"`
	Config        string           `help:"Extra config file, applied after the user and project layers." type:"path"`
	File          string           `help:"Contacts file (overrides storage.file)." type:"path"`
	Plain         bool             `help:"Force plain line input even on a terminal."`
	NoColor       bool             `help:"Disable styled output."`
	ConfirmDelete bool             `help:"Ask before deleting contacts."`
	Debug         bool             `help:"Log at debug level."`
	LogFile       string           `help:"Append JSON logs to this file (overrides log.file)." type:"path"`
}

// loadConfig loads layered config from user and project paths with env overrides.
func loadConfig(extra string) (*config.Config, error) {
	paths := []string{
		os.ExpandEnv("$HOME/.config/contacts/config.yaml"),
		".contacts/config.yaml",
	}
	if extra != "" {
		paths = append(paths, extra)
	}

	cfg, err := config.LoadLayered(paths...)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Run starts the interactive contact book session.
func (c *CLI) Run() error {
	cfg, err := loadConfig(c.Config)
	if err != nil {
		return fmt.Errorf("contacts: %w", err)
	}

	c.applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("contacts: %w", err)
	}

	return c.run(os.Stdin, os.Stdout, cfg)
}

// applyFlags applies CLI flag overrides on top of file and env config.
func (c *CLI) applyFlags(cfg *config.Config) {
	if c.File != "" {
		cfg.Storage.File = c.File
	}
	if c.Plain {
		cfg.Display.Mode = config.ModePlain
	}
	if c.NoColor {
		cfg.Display.Color = false
	}
	if c.ConfirmDelete {
		cfg.Book.ConfirmDelete = true
	}
	if c.LogFile != "" {
		cfg.Log.File = c.LogFile
	}
	if c.Debug {
		cfg.Log.Level = "debug"
	}
}

// run wires the session over in and out, enabling testable wiring.
func (c *CLI) run(in io.Reader, out io.Writer, cfg *config.Config) error {
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("contacts: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	fileStore, err := state.NewFileStore(cfg.Storage.File, state.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("contacts: %w", err)
	}
	contacts, err := fileStore.Load()
	if err != nil {
		return fmt.Errorf("contacts: %w", err)
	}

	styles := tui.NewStyles(cfg.Display.Color)
	reader := tui.NewReader(tui.ReaderOptions{
		In:         in,
		Out:        out,
		ForcePlain: cfg.Display.Mode == config.ModePlain,
		ForceTUI:   cfg.Display.Mode == config.ModeTUI,
	})
	validator := prompt.New(reader, out,
		prompt.WithStyles(styles),
		prompt.WithLogger(logger),
	)

	contactBook := book.New(store.New(contacts), fileStore, validator, out,
		book.WithStyles(styles),
		book.WithLogger(logger),
		book.WithConfirmDelete(cfg.Book.ConfirmDelete),
	)
	loop := menu.New(contactBook, validator, out,
		menu.WithStyles(styles),
		menu.WithLogger(logger),
	)

	logger.Info("session started",
		zap.String("version", version),
		zap.String("file", fileStore.Path()),
		zap.Int("contacts", len(contacts)),
	)

	err = loop.Run()
	switch {
	case err == nil:
		logger.Info("session ended")
	case errors.Is(err, io.EOF):
		logger.Info("session ended at end of input")
	case errors.Is(err, tui.ErrInterrupted):
		logger.Info("session interrupted")
	default:
		logger.Error("session failed", zap.Error(err))
	}
	return err
}

// exitCode maps a session error to a process exit code.
// End of input is a normal end of session.
func exitCode(err error) int {
	if err == nil || errors.Is(err, io.EOF) {
		return exitSuccess
	}
	if errors.Is(err, tui.ErrInterrupted) {
		return exitInterrupted
	}
	return exitFailure
}

func main() {
	var cli CLI
	kong.Parse(&cli,
		kong.Name("contacts"),
		kong.Description("Interactive contact book persisted to a local JSON file."),
		kong.Vars{"version": version + " " + commit + " " + date},
	)

	err := cli.Run()
	code := exitCode(err)
	if code == exitFailure {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
	}
	os.Exit(code)
}
