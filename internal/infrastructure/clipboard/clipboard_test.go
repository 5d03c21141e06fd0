package clipboard

import (
	"bytes"
	"context"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTerminalAdapter_WritesOSC52(t *testing.T) {
	t.Setenv("TMUX", "")
	var buf bytes.Buffer
	a := NewTerminal(&buf)

	require.NoError(t, a.WriteText(context.Background(), `<i class="bi bi-alarm"></i>`))

	out := buf.String()
	assert.Contains(t, out, "\x1b]52;c;")
	assert.Contains(t, out, base64.StdEncoding.EncodeToString([]byte(`<i class="bi bi-alarm"></i>`)))
}

func TestTerminalAdapter_ReadUnavailable(t *testing.T) {
	_, err := NewTerminal(&bytes.Buffer{}).ReadText(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestAdapter_NoBackend(t *testing.T) {
	err := (&Adapter{}).WriteText(context.Background(), "x")
	assert.ErrorIs(t, err, ErrUnavailable)
}
