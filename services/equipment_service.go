package services

import (
	"context"
	"time"

	"oceansms/models"
	repository "oceansms/repositories"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EquipmentService owns the PMS equipment lifecycle: creation with system
// defaults, assignment to an operation, release with hour accrual, retirement.
type EquipmentService interface {
	Create(ctx context.Context, equipment *models.Equipment, createdBy string) (*models.Equipment, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Equipment, error)
	GetAll(ctx context.Context) ([]models.Equipment, error)
	Assign(ctx context.Context, id, operationID primitive.ObjectID, updatedBy string) (*models.Equipment, error)
	Release(ctx context.Context, id primitive.ObjectID, updatedBy string) (*models.Equipment, error)
	Retire(ctx context.Context, id primitive.ObjectID, updatedBy string) (*models.Equipment, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type equipmentService struct {
	repo       repository.EquipmentRepository
	operations repository.StsOperationRepository
}

func NewEquipmentService(repo repository.EquipmentRepository, operations repository.StsOperationRepository) EquipmentService {
	return &equipmentService{
		repo:       repo,
		operations: operations,
	}
}

func (s *equipmentService) Create(ctx context.Context, equipment *models.Equipment, createdBy string) (*models.Equipment, error) {
	if existing, _ := s.repo.GetByName(ctx, equipment.EquipmentName); existing != nil {
		return nil, invalid("Equipment already exists")
	}

	now := time.Now()
	equipment.AvailabilityStatus = models.EquipmentAvailable
	equipment.CurrentOperation = nil
	equipment.TotalUsedHours = 0
	equipment.Metadata = models.Metadata{
		CreatedBy: createdBy,
		UpdatedBy: createdBy,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, equipment); err != nil {
		return nil, err
	}

	return equipment, nil
}

func (s *equipmentService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Equipment, error) {
	equipment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound("Equipment not found")
	}

	return equipment, nil
}

func (s *equipmentService) GetAll(ctx context.Context) ([]models.Equipment, error) {
	return s.repo.GetAll(ctx)
}

func (s *equipmentService) Assign(ctx context.Context, id, operationID primitive.ObjectID, updatedBy string) (*models.Equipment, error) {
	equipment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound("Equipment not found")
	}

	switch equipment.AvailabilityStatus {
	case models.EquipmentRetired:
		return nil, forbidden("Retired equipment cannot be assigned")
	case models.EquipmentInUse:
		return nil, forbidden("Equipment is already in use")
	}

	op, err := s.operations.GetByID(ctx, operationID)
	if err != nil {
		return nil, notFound("Operation not found")
	}

	now := time.Now()

	// The operation document carries its own usage log.
	usage := append(op.Equipments, models.EquipmentUsage{
		Equipment: id,
		StartTime: now,
		Status:    models.UsageInUse,
	})
	if err := s.operations.UpdateEquipments(ctx, operationID, usage); err != nil {
		return nil, err
	}

	equipment.AvailabilityStatus = models.EquipmentInUse
	equipment.CurrentOperation = &operationID
	equipment.AssignedAt = &now
	equipment.Metadata.UpdatedBy = updatedBy
	equipment.Metadata.UpdatedAt = now

	if err := s.repo.Update(ctx, id, equipment); err != nil {
		return nil, err
	}

	return equipment, nil
}

func (s *equipmentService) Release(ctx context.Context, id primitive.ObjectID, updatedBy string) (*models.Equipment, error) {
	equipment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound("Equipment not found")
	}

	if equipment.AvailabilityStatus != models.EquipmentInUse {
		return nil, forbidden("Equipment is not in use")
	}

	now := time.Now()
	if equipment.AssignedAt != nil {
		equipment.TotalUsedHours += now.Sub(*equipment.AssignedAt).Hours()
	}
	if equipment.CurrentOperation != nil {
		if err := s.closeUsage(ctx, *equipment.CurrentOperation, id, now); err != nil {
			return nil, err
		}
	}
	equipment.AvailabilityStatus = models.EquipmentAvailable
	equipment.CurrentOperation = nil
	equipment.AssignedAt = nil
	equipment.Metadata.UpdatedBy = updatedBy
	equipment.Metadata.UpdatedAt = now

	if err := s.repo.Update(ctx, id, equipment); err != nil {
		return nil, err
	}

	return equipment, nil
}

func (s *equipmentService) Retire(ctx context.Context, id primitive.ObjectID, updatedBy string) (*models.Equipment, error) {
	equipment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound("Equipment not found")
	}

	if equipment.AvailabilityStatus == models.EquipmentInUse {
		return nil, forbidden("Equipment in use cannot be retired")
	}

	equipment.AvailabilityStatus = models.EquipmentRetired
	equipment.Metadata.UpdatedBy = updatedBy
	equipment.Metadata.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, id, equipment); err != nil {
		return nil, err
	}

	return equipment, nil
}

// closeUsage stamps the open usage entry for this equipment on the
// operation document. A missing operation is not an error: the equipment
// still has to come back into rotation.
func (s *equipmentService) closeUsage(ctx context.Context, operationID, equipmentID primitive.ObjectID, endTime time.Time) error {
	op, err := s.operations.GetByID(ctx, operationID)
	if err != nil {
		return nil
	}

	for i := len(op.Equipments) - 1; i >= 0; i-- {
		u := &op.Equipments[i]
		if u.Equipment == equipmentID && u.Status == models.UsageInUse {
			end := endTime
			u.EndTime = &end
			u.UsedHours = endTime.Sub(u.StartTime).Hours()
			u.Status = models.UsageReleased
			return s.operations.UpdateEquipments(ctx, operationID, op.Equipments)
		}
	}

	return nil
}

func (s *equipmentService) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return notFound("Equipment not found")
	}

	return s.repo.Delete(ctx, id)
}
