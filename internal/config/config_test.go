package config

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("XDG_DATA_HOME", tmp)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(tmp, AppName), cfg.DataDir)
	assert.Equal(t, 8, cfg.FOVRadius)
	assert.Equal(t, 50*time.Millisecond, cfg.TurnDelay)
	assert.Equal(t, "sqlite", cfg.LeaderboardDriver)
	assert.Equal(t, filepath.Join(tmp, AppName, "leaderboard.db"), cfg.LeaderboardDSN)
	assert.Equal(t, 2222, cfg.SSHPort)
	assert.Empty(t, cfg.SpectateAddr)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("CYBER_ROGUE_DATA_DIR", "/srv/rogue")
	t.Setenv("CYBER_ROGUE_FOV_RADIUS", "5")
	t.Setenv("CYBER_ROGUE_TURN_DELAY", "0s")
	t.Setenv("CYBER_ROGUE_LEADERBOARD_DRIVER", "postgres")
	t.Setenv("CYBER_ROGUE_LEADERBOARD_DSN", "postgres://rogue@db/rogue")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/srv/rogue", cfg.DataDir)
	assert.Equal(t, 5, cfg.FOVRadius)
	assert.Zero(t, cfg.TurnDelay)
	assert.Equal(t, "postgres://rogue@db/rogue", cfg.LeaderboardDSN)
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name, key, value, want string
	}{
		{"unparseable radius", "CYBER_ROGUE_FOV_RADIUS", "wide", "parse env"},
		{"zero radius", "CYBER_ROGUE_FOV_RADIUS", "0", "fov radius"},
		{"driver", "CYBER_ROGUE_LEADERBOARD_DRIVER", "mysql", "leaderboard driver"},
		{"port", "CYBER_ROGUE_SSH_PORT", "70000", "ssh port"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("CYBER_ROGUE_DATA_DIR", t.TempDir())
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			require.Error(t, err)
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestDefaultDataDirFallback(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "")
	dir, err := DefaultDataDir()
	if err != nil {
		t.Skip("no user home directory available")
	}
	assert.True(t, strings.HasSuffix(dir, filepath.Join(".local", "share", AppName)), dir)
}
