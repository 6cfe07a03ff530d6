package main

import (
	"os"
	"path"
	"testing"

	"github.com/fine-structures/hess/hess"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	require.Equal(t, DefaultConfig.Sizes, cfg.Sizes)

	opts, err := cfg.RunOpts()
	require.NoError(t, err)
	require.Equal(t, []hess.TableKind{hess.LeftTable, hess.RightTable, hess.QChromatic}, opts.Kinds)
	require.True(t, opts.SkipExisting)
}

func TestConfigLayers(t *testing.T) {
	pathname := path.Join(t.TempDir(), "hess.yaml")
	yamlSrc := "sizes: [3, 4]\nkinds: [right]\nworkers: 2\ncatalog: /tmp/hess.db\n"
	require.NoError(t, os.WriteFile(pathname, []byte(yamlSrc), 0600))

	cfg, err := LoadConfig(pathname)
	require.NoError(t, err)
	require.Equal(t, []int{3, 4}, cfg.Sizes)
	require.Equal(t, []string{"right"}, cfg.Kinds)
	require.Equal(t, 2, cfg.Workers)
	require.Equal(t, "/tmp/hess.db", cfg.Catalog)

	t.Setenv("HESS_SIZES", "5,6")
	t.Setenv("HESS_SKIP_EXISTING", "false")
	cfg, err = LoadConfig(pathname)
	require.NoError(t, err)
	require.Equal(t, []int{5, 6}, cfg.Sizes)
	require.False(t, cfg.SkipExisting)
	require.Equal(t, 2, cfg.Workers)

	// the defaults are never modified
	require.Equal(t, []int{1, 2, 3, 4, 5}, DefaultConfig.Sizes)
}

func TestConfigErrors(t *testing.T) {
	_, err := LoadConfig(path.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	cfg := DefaultConfig
	cfg.Kinds = []string{"sideways"}
	_, err = cfg.RunOpts()
	require.ErrorIs(t, err, hess.ErrBadKind)

	cfg = DefaultConfig
	cfg.Sizes = []int{hess.MaxSize + 1}
	_, err = cfg.RunOpts()
	require.ErrorIs(t, err, hess.ErrBadSize)
}

func TestRunCommand(t *testing.T) {
	dbPath := path.Join(t.TempDir(), "catalog")

	root := newRootCmd()
	root.SetArgs([]string{"run", "--sizes", "1,2,3", "--kinds", "right,csf", "--catalog", dbPath})
	require.NoError(t, root.Execute())

	root = newRootCmd()
	root.SetArgs([]string{"check", "1", "2", "3", "4"})
	require.NoError(t, root.Execute())

	root = newRootCmd()
	root.SetArgs([]string{"show", "right", "(0, 0, 1)", "--catalog", dbPath})
	require.NoError(t, root.Execute())
}
