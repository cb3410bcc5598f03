package lessons

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCatalog(t *testing.T) {
	dir := t.TempDir()
	mm := `module: mm
title: "Modulo MM"
levels:
  - level: beginner
    name: "Fondamentali"
    sql: |
      SELECT "EBELN" FROM "EKKO" LIMIT 10;
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "mm.yaml"), []byte(mm), 0o644))
	// имя модуля берётся из имени файла, если поле module пустое
	require.NoError(t, os.WriteFile(filepath.Join(dir, "fi.yml"), []byte(`title: "Modulo FI"`), 0o644))
	// не-yaml игнорируется
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("skip me"), 0o644))

	catalog, err := LoadCatalog(dir)
	require.NoError(t, err)
	require.Len(t, catalog, 2)

	assert.Equal(t, "Modulo MM", catalog["mm"].Title)
	require.Len(t, catalog["mm"].Levels, 1)
	assert.Equal(t, "beginner", catalog["mm"].Levels[0].Level)
	assert.Contains(t, catalog["mm"].Levels[0].SQL, `"EKKO"`)

	assert.Equal(t, "fi", catalog["fi"].Module)
}

func TestLoadCatalogBadYaml(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte("{{nope"), 0o644))
	_, err := LoadCatalog(dir)
	require.Error(t, err)
}

func TestLoadCatalogMissingDir(t *testing.T) {
	_, err := LoadCatalog(filepath.Join(t.TempDir(), "absent"))
	require.Error(t, err)
}
