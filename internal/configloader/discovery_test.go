package configloader

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindProjectConfig_StopsAtVCSRoot(t *testing.T) {
	t.Parallel()

	outer := t.TempDir()
	writeConfig(t, filepath.Join(outer, ".wikitok.yml"), "jobs: 1\n")

	repo := filepath.Join(outer, "repo")
	require.NoError(t, os.MkdirAll(filepath.Join(repo, ".git"), 0o755))
	sub := filepath.Join(repo, "pages")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	path, err := FindProjectConfig(context.Background(), sub)
	require.NoError(t, err)
	assert.Empty(t, path, "search must not climb past the repository root")
}

func TestFindProjectConfig_PrefersYML(t *testing.T) {
	t.Parallel()

	dir := projectDir(t)
	writeConfig(t, filepath.Join(dir, ".wikitok.yaml"), "")
	writeConfig(t, filepath.Join(dir, ".wikitok.yml"), "")

	path, err := FindProjectConfig(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, ".wikitok.yml"), path)
}

func TestFindProjectConfig_IgnoresDirectories(t *testing.T) {
	t.Parallel()

	dir := projectDir(t)
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".wikitok.yml"), 0o755))

	path, err := FindProjectConfig(context.Background(), dir)
	require.NoError(t, err)
	assert.Empty(t, path)
}

func TestUserConfigDir_XDG(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)

	assert.Equal(t, filepath.Join(xdg, "wikitok"), UserConfigDir())

	require.NoError(t, os.MkdirAll(filepath.Join(xdg, "wikitok"), 0o755))
	writeConfig(t, filepath.Join(xdg, "wikitok", "config.yaml"), "")

	paths, err := DiscoverPaths(context.Background(), projectDir(t))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(xdg, "wikitok", "config.yaml"), paths.User)
}

func TestParseSliceValue(t *testing.T) {
	t.Parallel()

	assert.Nil(t, parseSliceValue(""))
	assert.Equal(t, []string{"a", "b"}, parseSliceValue(" a , ,b "))
}

func TestListEnvVars(t *testing.T) {
	t.Parallel()

	vars := ListEnvVars()
	for _, name := range []string{"WIKITOK_JOBS", "WIKITOK_FORMAT", "WIKITOK_IGNORE", "WIKITOK_TOKENS_MAX", "WIKITOK_INTERWIKI_TARGET"} {
		assert.Contains(t, vars, name)
	}
}
