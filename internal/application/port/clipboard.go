package port

import "context"

//go:generate mockgen -source=clipboard.go -destination=mocks/mock_clipboard.go -package=mocks

// Clipboard defines the port interface for clipboard operations.
// The core never writes to it; the UI layer hands export snippets to it.
type Clipboard interface {
	// WriteText copies text to the clipboard.
	WriteText(ctx context.Context, text string) error

	// ReadText reads text from the clipboard.
	// Returns empty string if the clipboard is empty or holds non-text data.
	ReadText(ctx context.Context) (string, error)
}
