package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/yukikurage/organiz-api/internal/models"
	"github.com/yukikurage/organiz-api/internal/repository"
	"gorm.io/gorm"
)

// CategoryService manages the shared category catalog
type CategoryService struct {
	categoryRepo repository.CategoryRepository
	log          logrus.FieldLogger
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryRepo repository.CategoryRepository, log logrus.FieldLogger) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		log:          log.WithField("component", "category"),
	}
}

// Create adds a category. Names of soft-deleted categories stay taken.
func (s *CategoryService) Create(ctx context.Context, name string) (*models.Category, error) {
	exists, err := s.categoryRepo.ExistsByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to check category name: %w", err)
	}
	if exists {
		return nil, ErrCategoryExists
	}

	category := &models.Category{Name: name}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrCategoryExists
		}
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	s.log.WithField("category_id", category.ID).Debug("Category created")
	return category, nil
}

func (s *CategoryService) FindAll(ctx context.Context) ([]models.Category, error) {
	categories, err := s.categoryRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

func (s *CategoryService) FindOne(ctx context.Context, id uint64) (*models.Category, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrCategoryNotFound, "find category")
	}
	return category, nil
}

// FindMany resolves every id in order, failing on the first unknown one.
func (s *CategoryService) FindMany(ctx context.Context, ids []uint64) ([]models.Category, error) {
	categories := make([]models.Category, 0, len(ids))
	for _, id := range ids {
		category, err := s.FindOne(ctx, id)
		if err != nil {
			return nil, err
		}
		categories = append(categories, *category)
	}
	return categories, nil
}

func (s *CategoryService) Update(ctx context.Context, id uint64, name string) (*models.Category, error) {
	category, err := s.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}

	category.Name = name
	if err := s.categoryRepo.Update(ctx, category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrCategoryExists
		}
		return nil, fmt.Errorf("failed to update category: %w", err)
	}
	return category, nil
}

// Delete soft deletes the category and returns its id
func (s *CategoryService) Delete(ctx context.Context, id uint64) (uint64, error) {
	if _, err := s.FindOne(ctx, id); err != nil {
		return 0, err
	}
	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		return 0, fmt.Errorf("failed to delete category: %w", err)
	}
	return id, nil
}
