package validation_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"fjacquet/camt-recon/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInputFile(t *testing.T) {
	tmpDir := t.TempDir()
	file := filepath.Join(tmpDir, "statement.xml")
	require.NoError(t, os.WriteFile(file, []byte("<Document/>"), 0o600))
	empty := filepath.Join(tmpDir, "empty.csv")
	require.NoError(t, os.WriteFile(empty, nil, 0o600))

	tests := []struct {
		name        string
		path        string
		errContains string
	}{
		{name: "regular file", path: file},
		{name: "empty file is allowed", path: empty},
		{name: "relative path is allowed", path: "validation_test.go"},
		{name: "empty path", path: "", errContains: "path is empty"},
		{name: "directory", path: tmpDir, errContains: "is a directory"},
		{name: "missing", path: filepath.Join(tmpDir, "absent.xml"), errContains: "cannot access"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validation.InputFile(tt.path)
			if tt.errContains == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}
}

func TestInputFile_WrapsNotExist(t *testing.T) {
	err := validation.InputFile(filepath.Join(t.TempDir(), "absent.xml"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestOutputFile(t *testing.T) {
	tmpDir := t.TempDir()
	file := filepath.Join(tmpDir, "report.csv")
	require.NoError(t, os.WriteFile(file, []byte("old"), 0o600))

	tests := []struct {
		name        string
		path        string
		errContains string
	}{
		{name: "new file in existing dir", path: filepath.Join(tmpDir, "new.csv")},
		{name: "overwrite existing file", path: file},
		{name: "missing parents", path: filepath.Join(tmpDir, "a", "b", "report.csv")},
		{name: "empty path", path: "", errContains: "path is empty"},
		{name: "target is a directory", path: tmpDir, errContains: "is a directory"},
		{name: "parent is a file", path: filepath.Join(file, "nested.csv"), errContains: "is not a directory"},
		{name: "ancestor is a file", path: filepath.Join(file, "a", "nested.csv"), errContains: "is not a directory"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validation.OutputFile(tt.path)
			if tt.errContains == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}
}
