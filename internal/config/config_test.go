package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Config
	}{
		{
			name: "full config",
			input: `
server:
  addr: ":9090"
log:
  development: true
fleet: [3, 2, 1]
placement:
  max_attempts: 500
opponent:
  move_delay: 250ms
  seed: 7
`,
			expected: Config{
				Server:    ServerConfig{Addr: ":9090"},
				Log:       LogConfig{Development: true},
				Fleet:     []int{3, 2, 1},
				Placement: PlacementConfig{MaxAttempts: 500},
				Opponent:  OpponentConfig{MoveDelay: 250 * time.Millisecond, Seed: 7},
			},
		},
		{
			name:  "empty document",
			input: "",
			expected: Config{
				Server:    ServerConfig{Addr: defaultAddr},
				Fleet:     defaultFleet,
				Placement: PlacementConfig{MaxAttempts: defaultMaxAttempts},
				Opponent:  OpponentConfig{MoveDelay: defaultMoveDelay},
			},
		},
		{
			name: "negative delay disables pacing",
			input: `
opponent:
  move_delay: -1s
`,
			expected: Config{
				Server:    ServerConfig{Addr: defaultAddr},
				Fleet:     defaultFleet,
				Placement: PlacementConfig{MaxAttempts: defaultMaxAttempts},
			},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cfg, err := Decode(strings.NewReader(test.input))
			require.NoError(t, err)
			assert.Equal(t, test.expected, cfg)
		})
	}
}

func TestDecodeRejectsInvalidFleet(t *testing.T) {
	for _, fleet := range []string{"[4, 0]", "[11]", "[-2]"} {
		_, err := Decode(strings.NewReader("fleet: " + fleet))
		assert.ErrorIs(t, err, ErrInvalidFleet, fleet)
	}
}

func TestDecodeRejectsMalformedYaml(t *testing.T) {
	_, err := Decode(strings.NewReader("fleet: [1, 2"))
	assert.Error(t, err)
}

func TestNew(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  addr: \":7070\"\n"), 0o600))

	cfg, err := New(path)
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.Server.Addr)

	t.Setenv(AddrEnv, ":6060")
	cfg, err = New(path)
	require.NoError(t, err)
	assert.Equal(t, ":6060", cfg.Server.Addr)
}

func TestNewMissingFile(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing.yml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
