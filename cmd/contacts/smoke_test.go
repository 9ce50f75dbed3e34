//go:build smoke

package main

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/creack/pty"
)

// TestSmoke_Binary builds the contacts binary and drives it end-to-end.
//
// Subtests run sequentially and depend on the first subtest building the binary.
func TestSmoke_Binary(t *testing.T) {
	projectRoot := findProjectRoot(t)
	binary := filepath.Join(t.TempDir(), "contacts")

	t.Run("go build produces a contacts binary", func(t *testing.T) {
		cmd := exec.Command("go", "build",
			"-ldflags", "-X main.version=smoke-test -X main.commit=abc1234 -X main.date=2026-01-01",
			"-o", binary, "./cmd/contacts")
		cmd.Dir = projectRoot
		if out, err := cmd.CombinedOutput(); err != nil {
			t.Fatalf("go build failed: %v\n%s", err, out)
		}
	})

	t.Run("version prints version commit and date", func(t *testing.T) {
		requireBinary(t, binary)

		out, _ := exec.Command(binary, "--version").CombinedOutput()
		for _, want := range []string{"smoke-test", "abc1234", "2026-01-01"} {
			if !strings.Contains(string(out), want) {
				t.Errorf("version output = %q, want to contain %q", out, want)
			}
		}
	})

	t.Run("piped session adds and lists a contact", func(t *testing.T) {
		requireBinary(t, binary)
		dir := t.TempDir()

		// Given: a fresh working directory and scripted stdin
		cmd := exec.Command(binary, "--no-color")
		cmd.Dir = dir
		cmd.Env = append(os.Environ(), "HOME="+dir)
		cmd.Stdin = strings.NewReader("1\nAnna\n30\n01012345678\na@b.com\n1 St, Cairo, Egypt\n5\n6\n")

		// When: the session runs to Exit
		out, err := cmd.CombinedOutput()
		if err != nil {
			t.Fatalf("session failed: %v\n%s", err, out)
		}

		// Then: the contact is listed and persisted
		if !strings.Contains(string(out), "Name: Anna") {
			t.Errorf("output missing listed contact:\n%s", out)
		}
		assertContactsFile(t, filepath.Join(dir, "contacts.json"), 1)
	})

	t.Run("end of input exits zero", func(t *testing.T) {
		requireBinary(t, binary)
		dir := t.TempDir()

		cmd := exec.Command(binary, "--plain")
		cmd.Dir = dir
		cmd.Env = append(os.Environ(), "HOME="+dir)
		cmd.Stdin = strings.NewReader("5\n")

		if out, err := cmd.CombinedOutput(); err != nil {
			t.Fatalf("EOF should end the session cleanly: %v\n%s", err, out)
		}
	})

	t.Run("terminal session uses the input field", func(t *testing.T) {
		requireBinary(t, binary)
		dir := t.TempDir()

		// Given: the binary attached to a pseudo-terminal
		cmd := exec.Command(binary)
		cmd.Dir = dir
		cmd.Env = append(os.Environ(), "HOME="+dir, "TERM=xterm-256color")
		ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{Rows: 24, Cols: 80})
		if err != nil {
			t.Fatalf("pty start: %v", err)
		}
		defer func() { _ = ptmx.Close() }()

		// When: a contact is added through the input field
		steps := []struct{ wait, send string }{
			{"Choose an option", "1"},
			{"Enter Name", "Anna"},
			{"Enter Age", "30"},
			{"Enter Phone Number", "01012345678"},
			{"Enter Email", "a@b.com"},
			{"Enter Address", "1 St, Cairo, Egypt"},
		}
		for _, s := range steps {
			readPTYUntil(t, ptmx, s.wait, 5*time.Second)
			_, _ = ptmx.Write([]byte(s.send + "\r"))
		}

		// Then: the success message appears
		out := readPTYUntil(t, ptmx, "Contact added successfully!", 5*time.Second)
		if !strings.Contains(stripANSI(out), "Contact added successfully!") {
			t.Errorf("add not confirmed on terminal:\n%s", stripANSI(out))
		}

		// And: ctrl+c at the menu ends the session
		readPTYUntil(t, ptmx, "Choose an option", 5*time.Second)
		_, _ = ptmx.Write([]byte{0x03})
		waitForExit(t, cmd, 5*time.Second)

		assertContactsFile(t, filepath.Join(dir, "contacts.json"), 1)
	})
}

func requireBinary(t *testing.T, binary string) {
	t.Helper()
	if _, err := os.Stat(binary); err != nil {
		t.Fatal("binary not available -- the build subtest must run first and succeed")
	}
}

func assertContactsFile(t *testing.T, path string, want int) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading contacts file: %v", err)
	}
	var got []map[string]string
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("contacts file is not a JSON array: %v\n%s", err, data)
	}
	if len(got) != want {
		t.Errorf("contacts file has %d records, want %d", len(got), want)
	}
}

// findProjectRoot walks up from the working directory to the go.mod.
func findProjectRoot(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find project root (go.mod)")
		}
		dir = parent
	}
}

// readPTYUntil reads from the pty until target appears in the ANSI-stripped
// output or the timeout elapses.
func readPTYUntil(t *testing.T, ptmx *os.File, target string, timeout time.Duration) string {
	t.Helper()
	var buf bytes.Buffer
	deadline := time.After(timeout)
	tmp := make([]byte, 4096)

	for {
		_ = ptmx.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
		n, err := ptmx.Read(tmp)
		if n > 0 {
			buf.Write(tmp[:n])
			if strings.Contains(stripANSI(buf.String()), target) {
				return buf.String()
			}
		}
		select {
		case <-deadline:
			t.Logf("timeout waiting for %q, got so far:\n%s", target, stripANSI(buf.String()))
			return buf.String()
		default:
		}
		if err != nil && !os.IsTimeout(err) && err != io.EOF {
			return buf.String()
		}
	}
}

// waitForExit waits for the command to exit within the timeout.
func waitForExit(t *testing.T, cmd *exec.Cmd, timeout time.Duration) {
	t.Helper()
	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	select {
	case err := <-done:
		if err != nil {
			t.Logf("contacts exited with: %v", err)
		}
	case <-time.After(timeout):
		_ = cmd.Process.Kill()
		t.Errorf("contacts did not exit within %s, killed", timeout)
	}
}
