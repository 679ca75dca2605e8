package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	conf, err := Load(filepath.Join(t.TempDir(), "folio.yaml"))
	require.NoError(t, err)
	require.Equal(t, Default(), conf)
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "folio.yaml")

	conf := &Node{
		Identity:  "Org2MSP",
		StoreType: "inmem",
		StorePath: "/tmp/folio",
		Wishlist:  []string{"D1", "D2"},
	}
	require.NoError(t, conf.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, conf, loaded)
}

func TestIdentityEnvOverride(t *testing.T) {
	t.Setenv("FOLIO_IDENTITY", "Org9MSP")

	conf, err := Load(filepath.Join(t.TempDir(), "folio.yaml"))
	require.NoError(t, err)
	require.Equal(t, "Org9MSP", conf.Identity)
}

func TestPartialConfigFilled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "folio.yaml")
	conf := &Node{Identity: "Org2MSP"}
	require.NoError(t, conf.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "Org2MSP", loaded.Identity)
	require.Equal(t, "badgerdb", loaded.StoreType)
	require.Equal(t, "./data", loaded.StorePath)
}
