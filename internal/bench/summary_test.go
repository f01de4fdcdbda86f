package bench_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/theflywheel/chainmap/internal/bench"
)

func TestSummarySaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history", "latest.json")
	s := bench.NewSummary("deadbeef", "main")
	s.Results = []bench.Result{{Name: "A", Category: "scale", Metrics: map[string]float64{"insertion_rate": 1.5}}}
	require.NoError(t, s.Save(path))

	loaded, err := bench.LoadSummary(path)
	require.NoError(t, err)
	require.Equal(t, s, loaded)

	require.NoError(t, os.WriteFile(path, []byte("{"), 0644))
	_, err = bench.LoadSummary(path)
	require.Error(t, err)
}

func TestDetectGit(t *testing.T) {
	t.Run("NoRepository", func(t *testing.T) {
		commit, branch := bench.DetectGit(t.TempDir())
		require.Equal(t, "local", commit)
		require.Equal(t, "dev", branch)
	})

	t.Run("Branch", func(t *testing.T) {
		root := t.TempDir()
		refs := filepath.Join(root, ".git", "refs", "heads")
		require.NoError(t, os.MkdirAll(refs, 0755))
		require.NoError(t, os.WriteFile(filepath.Join(root, ".git", "HEAD"), []byte("ref: refs/heads/main\n"), 0644))
		require.NoError(t, os.WriteFile(filepath.Join(refs, "main"), []byte("0123456789abcdef\n"), 0644))

		commit, branch := bench.DetectGit(root)
		require.Equal(t, "01234567", commit)
		require.Equal(t, "main", branch)
	})

	t.Run("DetachedHead", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(root, ".git"), 0755))
		require.NoError(t, os.WriteFile(filepath.Join(root, ".git", "HEAD"), []byte("fedcba9876543210\n"), 0644))

		commit, branch := bench.DetectGit(root)
		require.Equal(t, "fedcba98", commit)
		require.Equal(t, "dev", branch)
	})
}
