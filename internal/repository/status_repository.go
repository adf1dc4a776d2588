package repository

import (
	"context"

	"github.com/samber/lo"
	"github.com/yukikurage/organiz-api/internal/models"
	"gorm.io/gorm"
)

// GormStatusRepository is a GORM implementation of StatusRepository
type GormStatusRepository struct {
	db *gorm.DB
}

// NewStatusRepository creates a new StatusRepository
func NewStatusRepository(db *gorm.DB) StatusRepository {
	return &GormStatusRepository{db: db}
}

func (r *GormStatusRepository) Create(ctx context.Context, status *models.Status) error {
	return r.db.WithContext(ctx).Create(status).Error
}

func (r *GormStatusRepository) FindAll(ctx context.Context) ([]models.Status, error) {
	statuses := []models.Status{}
	if err := r.db.WithContext(ctx).Order("id").Find(&statuses).Error; err != nil {
		return nil, err
	}
	return statuses, nil
}

func (r *GormStatusRepository) FindByID(ctx context.Context, id uint64) (*models.Status, error) {
	var status models.Status
	if err := r.db.WithContext(ctx).First(&status, id).Error; err != nil {
		return nil, err
	}
	return &status, nil
}

func (r *GormStatusRepository) FindByName(ctx context.Context, name string) (*models.Status, error) {
	var status models.Status
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&status).Error; err != nil {
		return nil, err
	}
	return &status, nil
}

func (r *GormStatusRepository) ExistsByName(ctx context.Context, name string, excludeID uint64) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Unscoped().
		Model(&models.Status{}).
		Where("name = ?", name)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.Count(&count).Error
	return count > 0, err
}

// EnsureNames inserts the missing names inside a single transaction. A
// concurrent seeder can still win the race; the unique index then rejects
// this transaction with gorm.ErrDuplicatedKey and the caller decides.
func (r *GormStatusRepository) EnsureNames(ctx context.Context, names []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing []string
		if err := tx.Unscoped().
			Model(&models.Status{}).
			Where("name IN ?", names).
			Pluck("name", &existing).Error; err != nil {
			return err
		}

		for _, name := range lo.Without(names, existing...) {
			if err := tx.Create(&models.Status{Name: name}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *GormStatusRepository) Update(ctx context.Context, status *models.Status) error {
	return r.db.WithContext(ctx).Save(status).Error
}

func (r *GormStatusRepository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Delete(&models.Status{}, id).Error
}
