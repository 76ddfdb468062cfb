package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/swetha21032k7/AI-Agent-StudyMate-AI/pkg/errors"
)

func TestCacheRepositoryWithoutClient(t *testing.T) {
	repo := NewCacheRepository(nil, nil)
	ctx := context.Background()

	var dest map[string]string
	err := repo.Get(ctx, "timetable:u1", &dest)
	assert.ErrorIs(t, err, appErrors.ErrCacheMiss)

	require.NoError(t, repo.Set(ctx, "timetable:u1", map[string]string{"a": "b"}, time.Minute))
	require.NoError(t, repo.Delete(ctx, "timetable:u1"))
	require.NoError(t, repo.Ping(ctx))
	require.NoError(t, repo.Close())
}
