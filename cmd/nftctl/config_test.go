package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDeployConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nft.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
name: Cats
symbol: CAT
base_uri: https://example.com/cats/
approvals: false
`), 0o600))

	cfg, err := loadDeployConfig(path)
	require.NoError(t, err)
	require.Equal(t, "Cats", cfg.Name)
	require.Equal(t, "CAT", cfg.Symbol)
	require.Equal(t, "https://example.com/cats/", cfg.BaseURI)
	require.Empty(t, cfg.Authority)
	require.False(t, cfg.approvalsEnabled())

	require.NoError(t, cfg.merge(map[string]string{
		"symbol":    "DOG",
		"approvals": "true",
		"rpc":       "http://localhost:30333",
	}))
	require.Equal(t, "DOG", cfg.Symbol)
	require.Equal(t, "Cats", cfg.Name)
	require.True(t, cfg.approvalsEnabled())

	require.Error(t, cfg.merge(map[string]string{"approvals": "yes"}))

	_, err = loadDeployConfig(filepath.Join(t.TempDir(), "missing.yml"))
	require.Error(t, err)

	require.NoError(t, os.WriteFile(path, []byte("name: [unclosed"), 0o600))
	_, err = loadDeployConfig(path)
	require.Error(t, err)
}

func TestDeployConfigDefaults(t *testing.T) {
	var cfg deployConfig
	require.True(t, cfg.approvalsEnabled())
}
