package services

import (
	"context"
	"time"

	"oceansms/models"
	repository "oceansms/repositories"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefectService owns the QHSE equipment defect list.
type DefectService interface {
	Create(ctx context.Context, defect *models.EquipmentDefect, createdBy string) (*models.EquipmentDefect, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.EquipmentDefect, error)
	GetAll(ctx context.Context) ([]models.EquipmentDefect, error)
	Close(ctx context.Context, id primitive.ObjectID, updatedBy string) (*models.EquipmentDefect, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type defectService struct {
	repo     repository.DefectRepository
	counters repository.CounterRepository
}

func NewDefectService(repo repository.DefectRepository, counters repository.CounterRepository) DefectService {
	return &defectService{
		repo:     repo,
		counters: counters,
	}
}

func (s *defectService) Create(ctx context.Context, defect *models.EquipmentDefect, createdBy string) (*models.EquipmentDefect, error) {
	seq, err := s.counters.Next(ctx, models.CounterEquipmentDefect)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	defect.FormCode = FormCode(PrefixEquipmentDefect, seq)
	defect.Status = models.DefectOpen
	defect.ClosedAt = nil
	defect.Metadata = models.Metadata{
		CreatedBy: createdBy,
		UpdatedBy: createdBy,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, defect); err != nil {
		return nil, err
	}

	return defect, nil
}

func (s *defectService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.EquipmentDefect, error) {
	defect, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound("Defect not found")
	}

	return defect, nil
}

func (s *defectService) GetAll(ctx context.Context) ([]models.EquipmentDefect, error) {
	return s.repo.GetAll(ctx)
}

func (s *defectService) Close(ctx context.Context, id primitive.ObjectID, updatedBy string) (*models.EquipmentDefect, error) {
	defect, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound("Defect not found")
	}

	if defect.Status != models.DefectOpen {
		return nil, forbidden("Only open defects can be closed")
	}

	now := time.Now()
	defect.Status = models.DefectClosed
	defect.ClosedAt = &now
	defect.Metadata.UpdatedBy = updatedBy
	defect.Metadata.UpdatedAt = now

	if err := s.repo.Update(ctx, id, defect); err != nil {
		return nil, err
	}

	return defect, nil
}

func (s *defectService) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return notFound("Defect not found")
	}

	return s.repo.Delete(ctx, id)
}
