package databases

import (
	"context"

	"github.com/linesmerrill/municipal-services-api/databases/collection"
	"github.com/linesmerrill/municipal-services-api/models"
)

// CategoryDatabase contains the methods to use with the category collection
type CategoryDatabase interface {
	SeedIfEmpty(ctx context.Context, categories []models.IssueCategory) (int, error)
	InsertOne(ctx context.Context, category models.IssueCategory) (*models.IssueCategory, error)
	FindOne(ctx context.Context, categoryID int) (*models.IssueCategory, error)
	FindByName(ctx context.Context, name string) (*models.IssueCategory, error)
	FindActive(ctx context.Context) ([]*models.IssueCategory, error)
	FindByDepartment(ctx context.Context, department string) ([]*models.IssueCategory, error)
	FindAll(ctx context.Context) ([]*models.IssueCategory, error)
	GetAt(ctx context.Context, index int) (*models.IssueCategory, error)
	CountDocuments(ctx context.Context) (int, error)
}

type categoryDatabase struct {
	db *Store
}

// NewCategoryDatabase initializes a new instance of category database over the given store
func NewCategoryDatabase(db *Store) CategoryDatabase {
	return &categoryDatabase{
		db: db,
	}
}

// SeedIfEmpty inserts categories, in order and with fresh ids, only when the
// collection is empty. It returns how many were inserted; 0 means the
// collection was already populated.
func (c *categoryDatabase) SeedIfEmpty(ctx context.Context, categories []models.IssueCategory) (int, error) {
	populated := false
	if err := c.db.read(ctx, func() {
		populated = !c.db.categories.IsEmpty()
	}); err != nil || populated {
		return 0, err
	}

	seeded := 0
	err := c.db.write(ctx, func() {
		if !c.db.categories.IsEmpty() {
			return
		}
		for _, category := range categories {
			c.insert(category)
			seeded++
		}
	})
	return seeded, err
}

func (c *categoryDatabase) InsertOne(ctx context.Context, category models.IssueCategory) (*models.IssueCategory, error) {
	var stored *models.IssueCategory
	err := c.db.write(ctx, func() {
		stored = c.insert(category)
	})
	return stored, err
}

// insert must be called with the write lock held
func (c *categoryDatabase) insert(category models.IssueCategory) *models.IssueCategory {
	category.CategoryID = c.db.categorySeq.Next()
	stored := &category
	c.db.categories.Add(stored)
	return stored
}

func (c *categoryDatabase) FindOne(ctx context.Context, categoryID int) (*models.IssueCategory, error) {
	return c.findOne(ctx, func(category *models.IssueCategory) bool {
		return category.CategoryID == categoryID
	})
}

func (c *categoryDatabase) FindByName(ctx context.Context, name string) (*models.IssueCategory, error) {
	var (
		category *models.IssueCategory
		found    bool
	)
	err := c.db.read(ctx, func() {
		category, found = collection.FindByName(c.db.categories, name)
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrNoDocuments
	}
	return category, nil
}

func (c *categoryDatabase) findOne(ctx context.Context, match func(*models.IssueCategory) bool) (*models.IssueCategory, error) {
	var (
		category *models.IssueCategory
		found    bool
	)
	err := c.db.read(ctx, func() {
		category, found = c.db.categories.FindFunc(match)
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrNoDocuments
	}
	return category, nil
}

func (c *categoryDatabase) FindActive(ctx context.Context) ([]*models.IssueCategory, error) {
	var categories []*models.IssueCategory
	err := c.db.read(ctx, func() {
		categories = collection.ActiveCategories(c.db.categories)
	})
	return categories, err
}

func (c *categoryDatabase) FindByDepartment(ctx context.Context, department string) ([]*models.IssueCategory, error) {
	var categories []*models.IssueCategory
	err := c.db.read(ctx, func() {
		categories = collection.CategoriesByDepartment(c.db.categories, department)
	})
	return categories, err
}

func (c *categoryDatabase) FindAll(ctx context.Context) ([]*models.IssueCategory, error) {
	var categories []*models.IssueCategory
	err := c.db.read(ctx, func() {
		categories = c.db.categories.GetAll()
	})
	return categories, err
}

// GetAt returns the category at a 0-based position in seeding order
func (c *categoryDatabase) GetAt(ctx context.Context, index int) (*models.IssueCategory, error) {
	var (
		category *models.IssueCategory
		getErr   error
	)
	err := c.db.read(ctx, func() {
		category, getErr = c.db.categories.GetAt(index)
	})
	if err != nil {
		return nil, err
	}
	if getErr != nil {
		return nil, getErr
	}
	return category, nil
}

func (c *categoryDatabase) CountDocuments(ctx context.Context) (int, error) {
	var count int
	err := c.db.read(ctx, func() {
		count = c.db.categories.Count()
	})
	return count, err
}
