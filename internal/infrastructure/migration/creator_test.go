package migration

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"add owners table", "add_owners_table"},
		{"Add-Owners-Table", "add_owners_table"},
		{"add__owners__table", "add_owners_table"},
		{"Index Period 2025", "index_period_2025"},
		{"   spaces   ", "spaces"},
		{"special!@#$chars", "specialchars"},
		{"_leading_and_trailing_", "leading_and_trailing"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizeName(tt.input))
		})
	}
}

func TestCreateMigration(t *testing.T) {
	now := time.Date(2025, 8, 20, 10, 0, 0, 0, time.UTC)

	t.Run("numbers the first pair 000001", func(t *testing.T) {
		dir := t.TempDir()

		mf, err := CreateMigration(dir, "add owners table", "", now)
		require.NoError(t, err)

		assert.Equal(t, "000001", mf.Version)
		assert.Equal(t, filepath.Join(dir, "000001_add_owners_table.up.sql"), mf.UpPath)
		assert.Equal(t, filepath.Join(dir, "000001_add_owners_table.down.sql"), mf.DownPath)

		up, err := os.ReadFile(mf.UpPath)
		require.NoError(t, err)
		assert.Contains(t, string(up), "-- add owners table")
		assert.Contains(t, string(up), "2025-08-20T10:00:00Z")

		down, err := os.ReadFile(mf.DownPath)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(down), "-- Rollback: add owners table"))
	})

	t.Run("continues after the highest existing version", func(t *testing.T) {
		dir := t.TempDir()
		for _, name := range []string{"000001_a.up.sql", "000007_b.up.sql", "README.md"} {
			require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
		}

		mf, err := CreateMigration(dir, "widen concept", "Widen the concept column", now)
		require.NoError(t, err)
		assert.Equal(t, "000008", mf.Version)
	})

	t.Run("rejects a name with no usable characters", func(t *testing.T) {
		_, err := CreateMigration(t.TempDir(), "!!!", "", now)
		assert.Error(t, err)
	})
}

func TestListMigrations(t *testing.T) {
	t.Run("missing directory", func(t *testing.T) {
		names, err := ListMigrations(filepath.Join(t.TempDir(), "nope"))
		require.NoError(t, err)
		assert.Empty(t, names)
	})

	t.Run("sorted up migrations only", func(t *testing.T) {
		dir := t.TempDir()
		for _, name := range []string{
			"000002_b.up.sql", "000002_b.down.sql",
			"000001_a.up.sql", "000001_a.down.sql",
		} {
			require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
		}
		require.NoError(t, os.Mkdir(filepath.Join(dir, "archive.up.sql"), 0o755))

		names, err := ListMigrations(dir)
		require.NoError(t, err)
		assert.Equal(t, []string{"000001_a", "000002_b"}, names)
	})
}

func TestEmbedded(t *testing.T) {
	names, err := Embedded()
	require.NoError(t, err)
	assert.Equal(t, []string{"000001_create_directory", "000002_create_fiscal_records"}, names)

	up, err := embedded.ReadFile("sql/000002_create_fiscal_records.up.sql")
	require.NoError(t, err)
	assert.Contains(t, string(up), "idx_fiscal_records_period_slot")
	assert.Contains(t, string(up), "fiscal_record_sequences")
}
