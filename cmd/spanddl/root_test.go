package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadFileOrEmpty_MissingPath(t *testing.T) {
	got, err := readFileOrEmpty("")
	require.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestReadFileOrEmpty_ReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.sql")
	require.NoError(t, os.WriteFile(path, []byte("CREATE TABLE T (id INT64) PRIMARY KEY (id);"), 0o644))

	got, err := readFileOrEmpty(path)
	require.NoError(t, err)
	assert.Equal(t, "CREATE TABLE T (id INT64) PRIMARY KEY (id);", got)
}

func TestReadFileOrEmpty_MissingFile(t *testing.T) {
	_, err := readFileOrEmpty(filepath.Join(t.TempDir(), "does-not-exist.sql"))
	assert.Error(t, err)
}

func TestRootFlags_Defaults(t *testing.T) {
	assert.Equal(t, "", rootFlags[originalDdlFileFlag].GetString())
	assert.Equal(t, "", rootFlags[newDdlFileFlag].GetString())
	assert.Equal(t, "", rootFlags[outputDdlFileFlag].GetString())
	assert.False(t, rootFlags[allowDropStatementsFlag].GetBool())
	assert.False(t, rootFlags[allowRecreateIndexesFlag].GetBool())
	assert.False(t, rootFlags[allowRecreateConstraintsFlag].GetBool())
	assert.False(t, rootFlags[verboseFlag].GetBool())
}

func TestRunRoot_RequiresOriginalAndNewPaths(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetArgs([]string{})
	cmd.SetOut(&bytes.Buffer{})

	err := runRoot(cmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), originalDdlFileFlag)
	assert.Contains(t, err.Error(), newDdlFileFlag)
}
