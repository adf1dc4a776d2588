package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/yukikurage/organiz-api/internal/constants"
	"github.com/yukikurage/organiz-api/internal/models"
	"github.com/yukikurage/organiz-api/internal/repository"
	"gorm.io/gorm"
)

// StatusService manages the shared status catalog and its default seed
type StatusService struct {
	statusRepo repository.StatusRepository
	log        logrus.FieldLogger
}

// NewStatusService creates a new StatusService
func NewStatusService(statusRepo repository.StatusRepository, log logrus.FieldLogger) *StatusService {
	return &StatusService{
		statusRepo: statusRepo,
		log:        log.WithField("component", "status"),
	}
}

// Create adds a status. Names of soft-deleted statuses stay taken.
func (s *StatusService) Create(ctx context.Context, name string) (*models.Status, error) {
	exists, err := s.statusRepo.ExistsByName(ctx, name, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to check status name: %w", err)
	}
	if exists {
		return nil, ErrStatusExists
	}

	status := &models.Status{Name: name}
	if err := s.statusRepo.Create(ctx, status); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrStatusExists
		}
		return nil, fmt.Errorf("failed to create status: %w", err)
	}
	return status, nil
}

func (s *StatusService) FindAll(ctx context.Context) ([]models.Status, error) {
	statuses, err := s.statusRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list statuses: %w", err)
	}
	return statuses, nil
}

func (s *StatusService) FindOne(ctx context.Context, id uint64) (*models.Status, error) {
	status, err := s.statusRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrStatusNotFound, "find status")
	}
	return status, nil
}

// FindByName looks up a status by exact name without seeding anything.
func (s *StatusService) FindByName(ctx context.Context, name string) (*models.Status, error) {
	status, err := s.statusRepo.FindByName(ctx, name)
	if err != nil {
		return nil, notFound(err, ErrStatusNotFound, "find status")
	}
	return status, nil
}

// Update renames a status. Another status, live or deleted, holding the same
// name is a conflict.
func (s *StatusService) Update(ctx context.Context, id uint64, name string) (*models.Status, error) {
	status, err := s.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}

	exists, err := s.statusRepo.ExistsByName(ctx, name, id)
	if err != nil {
		return nil, fmt.Errorf("failed to check status name: %w", err)
	}
	if exists {
		return nil, ErrStatusExists
	}

	status.Name = name
	if err := s.statusRepo.Update(ctx, status); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrStatusExists
		}
		return nil, fmt.Errorf("failed to update status: %w", err)
	}
	return status, nil
}

// Delete soft deletes the status and returns its id
func (s *StatusService) Delete(ctx context.Context, id uint64) (uint64, error) {
	if _, err := s.FindOne(ctx, id); err != nil {
		return 0, err
	}
	if err := s.statusRepo.Delete(ctx, id); err != nil {
		return 0, fmt.Errorf("failed to delete status: %w", err)
	}
	return id, nil
}

// InitialStatus returns the "New" status, seeding the default set first when
// it has never been created. Losing a seeding race to another request is not
// an error: the winner's rows are read back instead.
func (s *StatusService) InitialStatus(ctx context.Context) (*models.Status, error) {
	status, err := s.statusRepo.FindByName(ctx, constants.StatusNew)
	if err == nil {
		return status, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to find status: %w", err)
	}

	if err := s.statusRepo.EnsureNames(ctx, constants.DefaultStatuses); err != nil {
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("failed to seed default statuses: %w", err)
		}
		s.log.Info("Default statuses seeded concurrently, reading them back")
	} else {
		s.log.Info("Default statuses seeded")
	}

	return s.FindByName(ctx, constants.StatusNew)
}
