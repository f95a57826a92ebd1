package status

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/lexview/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/lexview/internal/adapters/driving/tui/styles"
)

func TestNewBar(t *testing.T) {
	bar := NewBar(styles.DefaultStyles(), keymap.DefaultKeyMap())

	require.NotNil(t, bar)
	assert.Equal(t, StateLoading, bar.State())
	assert.Equal(t, "", bar.Message())
	assert.Equal(t, 0, bar.Diagnostics())
	assert.Equal(t, 80, bar.Width())
}

func TestNewBar_NilStyles(t *testing.T) {
	bar := NewBar(nil, nil)

	require.NotNil(t, bar)
	assert.NotNil(t, bar.styles)
	assert.NotNil(t, bar.keymap)
}

func TestStatusBar_InitAndUpdate(t *testing.T) {
	bar := NewBar(nil, nil)

	assert.Nil(t, bar.Init())

	updated, cmd := bar.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, bar, updated)
	assert.Nil(t, cmd)
}

func TestStatusBar_View(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(b *Bar)
		contains []string
	}{
		{
			name:     "loading",
			setup:    func(_ *Bar) {},
			contains: []string{"Rendering..."},
		},
		{
			name: "error with message",
			setup: func(b *Bar) {
				b.SetState(StateError)
				b.SetMessage("model unavailable")
			},
			contains: []string{"Error: model unavailable"},
		},
		{
			name:     "error without message",
			setup:    func(b *Bar) { b.SetState(StateError) },
			contains: []string{"Error"},
		},
		{
			name: "ready with one diagnostic",
			setup: func(b *Bar) {
				b.SetState(StateReady)
				b.SetDiagnostics(1)
			},
			contains: []string{"0%", "1 diagnostic"},
		},
		{
			name: "ready with several diagnostics",
			setup: func(b *Bar) {
				b.SetState(StateReady)
				b.SetDiagnostics(3)
				b.SetScrollPercent(0.5)
			},
			contains: []string{"50%", "3 diagnostics"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := NewBar(nil, nil)
			tt.setup(bar)

			view := ansi.Strip(bar.View())

			for _, s := range tt.contains {
				assert.Contains(t, view, s)
			}
			assert.Contains(t, view, "q: quit")
		})
	}
}

func TestStatusBar_SetWidth(t *testing.T) {
	bar := NewBar(nil, nil)

	bar.SetWidth(120)

	assert.Equal(t, 120, bar.Width())
}
