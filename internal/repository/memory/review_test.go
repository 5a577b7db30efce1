package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/reviewcarousel/internal/domain"
	"github.com/utafrali/reviewcarousel/internal/repository"
)

var _ repository.ReviewRepository = (*ReviewRepository)(nil)

func TestReviewRepository_CreateAndList(t *testing.T) {
	ctx := context.Background()
	repo := NewReviewRepository()

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)

	require.NoError(t, repo.Create(ctx, &domain.Review{ID: "1", Name: "A", Rating: 3}))
	require.NoError(t, repo.Create(ctx, &domain.Review{ID: "2", Name: "B", Rating: 4}))

	list, err = repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "A", list[0].Name)
	assert.Equal(t, "B", list[1].Name)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestReviewRepository_DuplicateID(t *testing.T) {
	ctx := context.Background()
	repo := NewReviewRepository(domain.Review{ID: "seed", Name: "S"})

	err := repo.Create(ctx, &domain.Review{ID: "seed"})
	assert.Error(t, err)

	n, _ := repo.Count(ctx)
	assert.Equal(t, 1, n)
}

func TestReviewRepository_ListIsACopy(t *testing.T) {
	ctx := context.Background()
	repo := NewReviewRepository(domain.Review{ID: "1", Name: "A"})

	list, _ := repo.List(ctx)
	list[0].Name = "changed"

	again, _ := repo.List(ctx)
	assert.Equal(t, "A", again[0].Name)
}

func TestReviewRepository_ConcurrentCreate(t *testing.T) {
	ctx := context.Background()
	repo := NewReviewRepository()

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = repo.Create(ctx, &domain.Review{ID: fmt.Sprint(i), Rating: 1})
		}()
	}
	wg.Wait()

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 50, n)
}
