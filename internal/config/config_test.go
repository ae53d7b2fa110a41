package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ".", cfg.Theme.Path)
	assert.Equal(t, "", cfg.Cache.StateDir)
	assert.Equal(t, "localhost", cfg.Server.Host)
	assert.Equal(t, 8090, cfg.Server.Port)
	assert.False(t, cfg.Development.ThemeDevMode)
	assert.False(t, cfg.Development.Debug)
	assert.False(t, cfg.Development.Multisite)
}

func TestLoadFromFile(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	dir := t.TempDir()
	path := filepath.Join(dir, "blockpress.yml")
	content := `
theme:
  path: /srv/themes/twentytwentysix
cache:
  state_dir: /var/lib/blockpress
development:
  theme_dev_mode: true
  multisite: true
server:
  host: 0.0.0.0
  port: 9000
  allowed_origins:
    - https://example.test
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	viper.SetConfigFile(path)
	require.NoError(t, viper.ReadInConfig())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/srv/themes/twentytwentysix", cfg.Theme.Path)
	assert.Equal(t, "/var/lib/blockpress", cfg.Cache.StateDir)
	assert.True(t, cfg.Development.ThemeDevMode)
	assert.True(t, cfg.Development.Multisite)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, []string{"https://example.test"}, cfg.Server.AllowedOrigins)
}

func TestLoadEnvironmentOverride(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	viper.SetEnvPrefix("BLOCKPRESS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	t.Setenv("BLOCKPRESS_DEVELOPMENT_DEBUG", "true")
	t.Setenv("BLOCKPRESS_THEME_PATH", "/srv/themes/other")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.Development.Debug)
	assert.Equal(t, "/srv/themes/other", cfg.Theme.Path)
}

func TestLoadRejectsInvalidPort(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	viper.Set("server.port", 70000)

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "port")
}

func TestLoadRejectsDangerousHost(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	viper.Set("server.host", "localhost;rm -rf /")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dangerous character")
}

func TestLoadRejectsPathTraversal(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	viper.Set("theme.path", "../../etc")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "traversal")
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{name: "relative", path: "themes/active", wantErr: false},
		{name: "absolute", path: "/srv/themes/active", wantErr: false},
		{name: "dot", path: ".", wantErr: false},
		{name: "empty", path: "", wantErr: true},
		{name: "traversal", path: "../themes", wantErr: true},
		{name: "shell metacharacter", path: "themes;echo", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validatePath(tt.path)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
