package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	v, err := NewViper(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	s, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, Default(), s)
	assert.Equal(t, 5<<20, s.MaxImageBytes())
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
mode: cloud
user:
  id: alice
database:
  dsn: postgres://localhost/kanban
llm:
  provider: gemini
  history: 3
`), 0644))
	t.Setenv("KANBAN_LLM_API_KEY", "from-env")
	t.Setenv("KANBAN_LOG_LEVEL", "debug")

	v, err := NewViper(path)
	require.NoError(t, err)
	s, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, ModeCloud, s.Mode)
	assert.Equal(t, "alice", s.User.ID)
	assert.Equal(t, "postgres://localhost/kanban", s.Database.DSN)
	assert.Equal(t, "gemini", s.LLM.Provider)
	assert.Equal(t, 3, s.LLM.History)
	assert.Equal(t, "from-env", s.LLM.APIKey)
	assert.Equal(t, "debug", s.Log.Level)
	assert.Equal(t, 60, s.LLM.TimeoutSeconds, "unset keys keep defaults")
}

func TestLoad_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("mode: cloud\nlog:\n  format: xml\n"), 0644))

	v, err := NewViper(path)
	require.NoError(t, err)
	_, err = Load(v)
	require.Error(t, err)

	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	fields := make([]string, len(verrs))
	for i, e := range verrs {
		fields[i] = e.Field
	}
	assert.ElementsMatch(t, []string{"database.dsn", "log.format"}, fields)
}

func TestNewViper_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("mode: [unclosed"), 0644))

	_, err := NewViper(path)
	assert.Error(t, err)
}

func TestSettings_DatabasePath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	s := Default()
	assert.Equal(t, filepath.Join("/tmp/xdg", "kanban", "kanban.db"), s.DatabasePath())

	s.Database.Path = "/data/board.db"
	assert.Equal(t, "/data/board.db", s.DatabasePath())
}
