package databases_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/linesmerrill/municipal-services-api/databases"
	"github.com/linesmerrill/municipal-services-api/databases/collection"
	"github.com/linesmerrill/municipal-services-api/models"
)

func TestCategoryDatabase_SeedIfEmpty(t *testing.T) {
	ctx := context.Background()
	categoryDB := databases.NewCategoryDatabase(databases.NewStore())

	seeded, err := categoryDB.SeedIfEmpty(ctx, models.DefaultCategories())
	assert.NoError(t, err)
	assert.Equal(t, 8, seeded)

	seeded, err = categoryDB.SeedIfEmpty(ctx, models.DefaultCategories())
	assert.NoError(t, err)
	assert.Equal(t, 0, seeded)

	count, err := categoryDB.CountDocuments(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 8, count)

	all, err := categoryDB.FindAll(ctx)
	assert.NoError(t, err)
	for i, category := range all {
		assert.Equal(t, i+1, category.CategoryID)
	}
}

func TestCategoryDatabase_InsertOne(t *testing.T) {
	ctx := context.Background()
	categoryDB := databases.NewCategoryDatabase(databases.NewStore())

	first, err := categoryDB.InsertOne(ctx, models.IssueCategory{CategoryID: 99, Name: "Noise", IsActive: true})
	assert.NoError(t, err)
	assert.Equal(t, 1, first.CategoryID)

	second, err := categoryDB.InsertOne(ctx, models.IssueCategory{Name: "Graffiti"})
	assert.NoError(t, err)
	assert.Equal(t, 2, second.CategoryID)
}

func TestCategoryDatabase_Lookups(t *testing.T) {
	ctx := context.Background()
	categoryDB := databases.NewCategoryDatabase(databases.NewStore())
	_, _ = categoryDB.SeedIfEmpty(ctx, []models.IssueCategory{
		{Name: "Road Maintenance", ResponsibleDepartment: "Public Works", IsActive: true},
		{Name: "Old Category", ResponsibleDepartment: "Public Works", IsActive: false},
		{Name: "Water Supply", ResponsibleDepartment: "Water Services", IsActive: true},
	})

	category, err := categoryDB.FindOne(ctx, 3)
	assert.NoError(t, err)
	assert.Equal(t, "Water Supply", category.Name)

	_, err = categoryDB.FindOne(ctx, 9)
	assert.ErrorIs(t, err, databases.ErrNoDocuments)

	category, err = categoryDB.FindByName(ctx, "road maintenance")
	assert.NoError(t, err)
	assert.Equal(t, 1, category.CategoryID)

	_, err = categoryDB.FindByName(ctx, "Parks")
	assert.ErrorIs(t, err, databases.ErrNoDocuments)

	active, err := categoryDB.FindActive(ctx)
	assert.NoError(t, err)
	assert.Len(t, active, 2)

	works, err := categoryDB.FindByDepartment(ctx, "public works")
	assert.NoError(t, err)
	assert.Len(t, works, 2)
}

func TestCategoryDatabase_GetAt(t *testing.T) {
	ctx := context.Background()
	categoryDB := databases.NewCategoryDatabase(databases.NewStore())
	_, _ = categoryDB.SeedIfEmpty(ctx, models.DefaultCategories())

	category, err := categoryDB.GetAt(ctx, 0)
	assert.NoError(t, err)
	assert.Equal(t, "Roads and Transport", category.Name)

	_, err = categoryDB.GetAt(ctx, 8)
	assert.ErrorIs(t, err, collection.ErrIndexOutOfRange)
}
