// Package clipboard copies export snippets to the system clipboard, falling
// back to an OSC 52 terminal escape when no clipboard tool is installed.
package clipboard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/atotto/clipboard"
	osc52 "github.com/aymanbagabas/go-osc52/v2"

	"github.com/bnema/glyphs/internal/application/port"
	"github.com/bnema/glyphs/internal/logging"
)

// ErrUnavailable is returned by ReadText when only the terminal fallback exists.
var ErrUnavailable = errors.New("no clipboard tool available (install wl-clipboard, xclip or xsel)")

// Adapter implements port.Clipboard.
type Adapter struct {
	system   bool
	terminal io.Writer
}

var _ port.Clipboard = (*Adapter)(nil)

// New creates an adapter. Without a system tool, writes go to the terminal on
// stderr as OSC 52, which most emulators (and tmux) forward to the clipboard.
func New() *Adapter {
	return &Adapter{system: !clipboard.Unsupported, terminal: os.Stderr}
}

// NewTerminal creates an adapter that only emits OSC 52 to w.
func NewTerminal(w io.Writer) *Adapter {
	return &Adapter{terminal: w}
}

// WriteText implements port.Clipboard.
func (a *Adapter) WriteText(ctx context.Context, text string) error {
	log := logging.FromContext(ctx)

	if a.system {
		err := clipboard.WriteAll(text)
		if err == nil {
			log.Debug().Int("len", len(text)).Msg("copied to system clipboard")
			return nil
		}
		log.Debug().Err(err).Msg("system clipboard failed, trying terminal")
	}

	if a.terminal == nil {
		return ErrUnavailable
	}
	seq := osc52.New(text)
	if os.Getenv("TMUX") != "" {
		seq = seq.Tmux()
	}
	if _, err := seq.WriteTo(a.terminal); err != nil {
		return fmt.Errorf("failed to write OSC 52 sequence: %w", err)
	}
	log.Debug().Int("len", len(text)).Msg("copied through terminal escape")
	return nil
}

// ReadText implements port.Clipboard. OSC 52 is write-only here.
func (a *Adapter) ReadText(ctx context.Context) (string, error) {
	if !a.system {
		return "", ErrUnavailable
	}
	text, err := clipboard.ReadAll()
	if err != nil {
		logging.FromContext(ctx).Debug().Err(err).Msg("clipboard read failed (may be empty)")
		return "", err
	}
	return text, nil
}
