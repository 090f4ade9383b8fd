package avatar

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileLocator_Locate(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "7.png"), []byte("png"), 0o600))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "8.png"), 0o700))

	l := NewFileLocator(dir, ".png")

	got := l.Locate(7)
	require.NotNil(t, got)
	assert.Equal(t, "/perfil/imagens/7.png", *got)

	assert.Nil(t, l.Locate(8), "directories are ignored")
	assert.Nil(t, l.Locate(9), "missing file")
	assert.Nil(t, l.Locate(0))
	assert.Nil(t, FileLocator{}.Locate(7), "no directory configured")
}
