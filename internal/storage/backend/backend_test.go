package backend_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cory-johannsen/avrellant/internal/config"
	"github.com/cory-johannsen/avrellant/internal/storage/backend"
	"github.com/cory-johannsen/avrellant/internal/storage/file"
)

func TestOpen_File(t *testing.T) {
	cfg := config.Config{Storage: config.StorageConfig{
		Backend: config.BackendFile,
		Path:    filepath.Join(t.TempDir(), "store.json"),
	}}

	s, err := backend.Open(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	defer s.Close()

	assert.IsType(t, &file.Store{}, s)
}

func TestOpen_Unknown(t *testing.T) {
	cfg := config.Config{Storage: config.StorageConfig{Backend: "tape"}}
	_, err := backend.Open(context.Background(), cfg, zap.NewNop())
	assert.Error(t, err)
}
