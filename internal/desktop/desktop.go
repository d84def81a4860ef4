// Package desktop reaches outside the terminal: it opens URLs in the user's
// browser and places text on the system clipboard.
package desktop

import (
	"errors"
	"fmt"
	"os/exec"

	"github.com/atotto/clipboard"
)

// ErrNoURL is returned when Open is called with an empty URL.
var ErrNoURL = errors.New("desktop: empty url")

// Opener opens a URL outside the overlay.
type Opener interface {
	Open(url string) error
}

// Copier places text on a clipboard.
type Copier interface {
	Copy(text string) error
}

// Browser opens URLs with the platform's default handler. The handler runs
// in its own session so it cannot grab the overlay's terminal.
type Browser struct {
	// Start launches cmd. Nil means (*exec.Cmd).Start.
	Start func(cmd *exec.Cmd) error
	// Exited, when set, receives the handler's exit status once it is reaped.
	Exited func(url string, err error)
}

// Open launches the handler for url without waiting for it to exit.
func (b Browser) Open(url string) error {
	if url == "" {
		return ErrNoURL
	}
	name, args := openCommand(url)
	cmd := exec.Command(name, args...)
	cmd.SysProcAttr = sessionAttr()

	start := b.Start
	if start == nil {
		start = (*exec.Cmd).Start
	}
	if err := start(cmd); err != nil {
		return fmt.Errorf("desktop: open %s: %w", url, err)
	}
	if cmd.Process != nil {
		go func() {
			err := cmd.Wait()
			if b.Exited != nil {
				b.Exited(url, err)
			}
		}()
	}
	return nil
}

// Clipboard writes to the system clipboard.
type Clipboard struct{}

// Copy replaces the clipboard contents with text.
func (Clipboard) Copy(text string) error {
	if clipboard.Unsupported {
		return errors.New("desktop: clipboard unsupported on this system")
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("desktop: copy: %w", err)
	}
	return nil
}
