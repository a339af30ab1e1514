package databases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linesmerrill/municipal-services-api/models"
)

func TestCategoryDatabase_SeedIfEmptyPopulatedOnlyReads(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	categoryDB := NewCategoryDatabase(store)

	_, err := categoryDB.SeedIfEmpty(ctx, models.DefaultCategories())
	require.NoError(t, err)

	// a held read lock blocks writers but not other readers
	store.mu.RLock()
	defer store.mu.RUnlock()

	done := make(chan int, 1)
	go func() {
		seeded, err := categoryDB.SeedIfEmpty(ctx, models.DefaultCategories())
		assert.NoError(t, err)
		done <- seeded
	}()

	select {
	case seeded := <-done:
		assert.Equal(t, 0, seeded)
	case <-time.After(2 * time.Second):
		t.Fatal("SeedIfEmpty waited for the write lock on a populated store")
	}
}
