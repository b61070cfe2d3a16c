package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/NeuralTrust/AuthShield/pkg/domain/loginevent"
	"github.com/NeuralTrust/AuthShield/pkg/infra/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLoginEventRepository(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryLoginEventRepository()
	base := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		ev := loginevent.New("a@example.com", "10.0.0.1", "Mozilla/5.0", base.Add(time.Duration(i)*time.Hour))
		require.NoError(t, repo.Record(ctx, ev))
	}
	require.NoError(t, repo.Record(ctx, loginevent.New("b@example.com", "10.0.0.2", "curl/8.0", base)))

	events, err := repo.ListSince(ctx, "a@example.com", base.Add(2*time.Hour), 2)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, base.Add(4*time.Hour), events[0].OccurredAt)
	assert.Equal(t, base.Add(3*time.Hour), events[1].OccurredAt)

	deleted, err := repo.DeleteBefore(ctx, base.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	remaining, err := repo.ListSince(ctx, "b@example.com", time.Time{}, 0)
	require.NoError(t, err)
	assert.Empty(t, remaining)
}
