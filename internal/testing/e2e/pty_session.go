package e2e

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/creack/pty"
)

// PTYSession runs a binary attached to a pseudo terminal so raw-mode
// keyboard handling behaves as it does for a user.
type PTYSession struct {
	cmd    *exec.Cmd
	ptmx   *os.File
	cancel context.CancelFunc

	mu     sync.RWMutex
	output bytes.Buffer
	done   chan struct{}
}

// PTYConfig describes the process to start.
type PTYConfig struct {
	Binary  string
	Args    []string
	Env     []string
	Rows    uint16
	Cols    uint16
	Timeout time.Duration
}

// StartPTY launches cfg.Binary and starts capturing its output.
func StartPTY(cfg PTYConfig) (*PTYSession, error) {
	if cfg.Timeout == 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.Rows == 0 {
		cfg.Rows = 40
	}
	if cfg.Cols == 0 {
		cfg.Cols = 100
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	cmd := exec.CommandContext(ctx, cfg.Binary, cfg.Args...)
	cmd.Env = append(os.Environ(), cfg.Env...)

	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{Rows: cfg.Rows, Cols: cfg.Cols})
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to start PTY: %w", err)
	}

	s := &PTYSession{
		cmd:    cmd,
		ptmx:   ptmx,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	go s.capture()
	return s, nil
}

func (s *PTYSession) capture() {
	defer close(s.done)
	buf := make([]byte, 4096)
	for {
		n, err := s.ptmx.Read(buf)
		if n > 0 {
			s.mu.Lock()
			s.output.Write(buf[:n])
			s.mu.Unlock()
		}
		if err != nil {
			// EIO once the child exits
			return
		}
	}
}

// Send types keys into the terminal.
func (s *PTYSession) Send(keys string) error {
	_, err := io.WriteString(s.ptmx, keys)
	return err
}

// Output returns everything written so far.
func (s *PTYSession) Output() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.output.String()
}

// Frame returns the most recently drawn screen.
func (s *PTYSession) Frame() string {
	return LastFrame(s.Output())
}

// WaitForFrame polls until the latest frame contains text.
func (s *PTYSession) WaitForFrame(text string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if strings.Contains(s.Frame(), text) {
			return nil
		}
		time.Sleep(50 * time.Millisecond)
	}
	return fmt.Errorf("timeout waiting for %q, last frame:\n%s", text, s.Frame())
}

// Wait blocks until the process exits.
func (s *PTYSession) Wait() error {
	err := s.cmd.Wait()
	s.ptmx.Close()
	<-s.done
	s.cancel()
	return err
}

// Kill terminates the process and releases the terminal.
func (s *PTYSession) Kill() {
	s.cancel()
	if s.cmd.Process != nil {
		s.cmd.Process.Kill()
	}
	s.ptmx.Close()
}
