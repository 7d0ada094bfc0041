package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/finance-pro/internal/service"
)

func TestPrompter_ConfirmContext(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantErr     error
		wantPrompts int
		want        bool
	}{
		{name: "yes", input: "y\n", want: true, wantPrompts: 1},
		{name: "yes in russian", input: "да\n", want: true, wantPrompts: 1},
		{name: "uppercase yes", input: "  YES \n", want: true, wantPrompts: 1},
		{name: "no", input: "n\n", want: false, wantPrompts: 1},
		{name: "empty means no", input: "\n", want: false, wantPrompts: 1},
		{name: "retry after invalid", input: "maybe\ny\n", want: true, wantPrompts: 2},
		{name: "answer without newline", input: "y", want: true, wantPrompts: 1},
		{name: "eof", input: "", wantErr: ErrInputTerminated, wantPrompts: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			p := NewCLIPrompter(strings.NewReader(tt.input), &out)

			got, err := p.ConfirmContext(context.Background(), "Удалить операцию?")
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
			assert.Equal(t, tt.wantPrompts, strings.Count(out.String(), "Удалить операцию?"))
		})
	}
}

func TestPrompter_ConfirmFailureMeansNo(t *testing.T) {
	p := NewCLIPrompter(strings.NewReader(""), io.Discard)
	assert.False(t, p.Confirm("Удалить операцию?"))
}

func TestPrompter_AssumeYes(t *testing.T) {
	var out bytes.Buffer
	p := NewCLIPrompter(strings.NewReader(""), &out)
	p.AssumeYes(true)

	assert.True(t, p.Confirm("Удалить операцию?"))
	assert.Empty(t, out.String())
}

func TestPrompter_ContextCancellation(t *testing.T) {
	pr, pw := io.Pipe()
	defer func() { _ = pw.Close() }()

	p := NewCLIPrompter(pr, io.Discard)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := p.ConfirmContext(ctx, "Удалить операцию?")
	require.ErrorIs(t, err, ErrInputCancelled)
}

func TestPrompter_Vibrate(t *testing.T) {
	tests := []struct {
		intensity service.HapticIntensity
		want      string
	}{
		{intensity: service.HapticError, want: "\a"},
		{intensity: service.HapticSuccess, want: ""},
		{intensity: service.HapticLight, want: ""},
	}

	for _, tt := range tests {
		t.Run(string(tt.intensity), func(t *testing.T) {
			var out bytes.Buffer
			p := NewCLIPrompter(strings.NewReader(""), &out)
			p.Vibrate(tt.intensity)
			assert.Equal(t, tt.want, out.String())
		})
	}
}

func TestNewProgressBar(t *testing.T) {
	var out bytes.Buffer
	bar := NewProgressBar(&out, 3, "Importing")
	for i := 0; i < 3; i++ {
		require.NoError(t, bar.Add(1))
	}
	assert.True(t, bar.IsFinished())
	assert.Contains(t, out.String(), "Importing")
}
