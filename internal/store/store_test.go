package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlm272/maggiemayer-portfolio/internal/models"
)

func TestSaveAndList(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	ctx := context.Background()
	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	for i, name := range []string{"first", "second", "third"} {
		require.NoError(t, s.SaveMessage(ctx, &models.ContactMessage{
			ID:        name,
			Name:      name,
			Email:     name + "@example.com",
			Message:   "hello",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	msgs, err := s.ListMessages(ctx, 2)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "third", msgs[0].ID)
	assert.Equal(t, "second", msgs[1].ID)
	assert.True(t, msgs[0].CreatedAt.Equal(base.Add(2*time.Minute)))

	err = s.SaveMessage(ctx, &models.ContactMessage{ID: "first", Name: "x", Email: "x", Message: "x", CreatedAt: base})
	assert.ErrorContains(t, err, "failed to save contact message")
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	msgs, err := s.ListMessages(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, msgs)
}
