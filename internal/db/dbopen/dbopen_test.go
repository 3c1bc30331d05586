package dbopen

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/jusunglee/kirill/internal/db/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	repo, err := Open(context.Background(), "sqlite://"+path)
	require.NoError(t, err)
	defer repo.Close()

	assert.IsType(t, &sqlite.Repository{}, repo)
}

func TestOpenRejects(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{"empty", ""},
		{"unknown scheme", "mysql://localhost/kirill"},
		{"bare path", "kirill.db"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Open(context.Background(), tt.url)
			assert.Error(t, err)
		})
	}
}
