package services

import (
	"context"
	"time"

	"oceansms/models"
	repository "oceansms/repositories"
	"oceansms/utils"
	"oceansms/workflow"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TrainingService owns training plans and the plan-item-gated creation of
// training records.
type TrainingService interface {
	CreatePlan(ctx context.Context, req *models.CreateTrainingPlanRequest, createdBy string) (*models.TrainingPlan, error)
	GetPlan(ctx context.Context, id primitive.ObjectID) (*models.TrainingPlan, error)
	GetAllPlans(ctx context.Context) ([]models.TrainingPlan, error)
	ApprovePlanItem(ctx context.Context, planID primitive.ObjectID, plannedDate time.Time, approvedBy string) (*models.TrainingPlan, error)

	CreateRecord(ctx context.Context, req *models.CreateTrainingRecordRequest, createdBy string) (*models.TrainingRecord, error)
	GetRecord(ctx context.Context, id primitive.ObjectID) (*models.TrainingRecord, error)
	GetAllRecords(ctx context.Context) ([]models.TrainingRecord, error)
	SubmitRecord(ctx context.Context, id primitive.ObjectID, updatedBy string) (*models.TrainingRecord, error)
	ApproveRecord(ctx context.Context, id primitive.ObjectID, approvedBy string) (*models.TrainingRecord, error)
}

type trainingService struct {
	repo     repository.TrainingRepository
	counters repository.CounterRepository
}

func NewTrainingService(repo repository.TrainingRepository, counters repository.CounterRepository) TrainingService {
	return &trainingService{
		repo:     repo,
		counters: counters,
	}
}

func (s *trainingService) CreatePlan(ctx context.Context, req *models.CreateTrainingPlanRequest, createdBy string) (*models.TrainingPlan, error) {
	seq, err := s.counters.Next(ctx, models.CounterTrainingPlan)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	plan := &models.TrainingPlan{
		FormCode:  FormCode(PrefixTrainingPlan, seq),
		Year:      req.Year,
		PlanItems: make([]models.PlanItem, 0, len(req.PlanItems)),
		Metadata: models.Metadata{
			CreatedBy: createdBy,
			UpdatedBy: createdBy,
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	// Every item starts as Draft no matter what the client sent.
	for _, item := range req.PlanItems {
		plan.PlanItems = append(plan.PlanItems, models.PlanItem{
			PlannedDate: item.PlannedDate,
			Topic:       item.Topic,
			Instructor:  item.Instructor,
			Description: item.Description,
			Status:      workflow.StatusDraft,
		})
	}

	if err := s.repo.CreatePlan(ctx, plan); err != nil {
		return nil, err
	}

	return plan, nil
}

func (s *trainingService) GetPlan(ctx context.Context, id primitive.ObjectID) (*models.TrainingPlan, error) {
	plan, err := s.repo.GetPlan(ctx, id)
	if err != nil {
		return nil, notFound("Training plan not found")
	}

	return plan, nil
}

func (s *trainingService) GetAllPlans(ctx context.Context) ([]models.TrainingPlan, error) {
	return s.repo.GetAllPlans(ctx)
}

func (s *trainingService) ApprovePlanItem(ctx context.Context, planID primitive.ObjectID, plannedDate time.Time, approvedBy string) (*models.TrainingPlan, error) {
	plan, err := s.repo.GetPlan(ctx, planID)
	if err != nil {
		return nil, notFound("Training plan not found")
	}

	idx := findPlanItem(plan.PlanItems, plannedDate)
	if idx < 0 {
		return nil, notFound("Plan item not found for this planned date")
	}

	// Plan items skip the Submitted stage: Draft moves straight to Approved.
	if err := workflow.Guard(plan.PlanItems[idx].Status, workflow.StatusDraft, "plan items", "approved"); err != nil {
		return nil, forbidden(err.Error())
	}

	plan.PlanItems[idx].Status = workflow.StatusApproved
	plan.Metadata.UpdatedBy = approvedBy
	plan.Metadata.UpdatedAt = time.Now()

	if err := s.repo.UpdatePlan(ctx, planID, plan); err != nil {
		return nil, err
	}

	return plan, nil
}

// CreateRecord enforces the four creation gates in order: plan exists,
// plan item exists for the date, item is approved, no record exists yet.
func (s *trainingService) CreateRecord(ctx context.Context, req *models.CreateTrainingRecordRequest, createdBy string) (*models.TrainingRecord, error) {
	planID, err := primitive.ObjectIDFromHex(req.TrainingPlanID)
	if err != nil {
		return nil, invalid("Invalid training plan ID format")
	}

	plan, err := s.repo.GetPlan(ctx, planID)
	if err != nil {
		return nil, notFound("Training plan not found")
	}

	idx := findPlanItem(plan.PlanItems, req.PlannedDate)
	if idx < 0 {
		return nil, notFound("Plan item not found for this planned date")
	}

	if plan.PlanItems[idx].Status != workflow.StatusApproved {
		return nil, forbidden("This plan item is not approved yet")
	}

	if existing, _ := s.repo.FindRecordByPlanDate(ctx, planID, req.PlannedDate); existing != nil {
		return nil, duplicate("Training record already exists")
	}

	now := time.Now()
	record := &models.TrainingRecord{
		TrainingPlanID:     planID,
		PlannedDate:        req.PlannedDate,
		Topic:              req.Topic,
		Instructor:         req.Instructor,
		ActualTrainingDate: req.ActualTrainingDate,
		Attendance:         req.Attendance,
		Status:             workflow.StatusDraft,
		Metadata: models.Metadata{
			CreatedBy: createdBy,
			UpdatedBy: createdBy,
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	if err := s.repo.CreateRecord(ctx, record); err != nil {
		return nil, err
	}

	return record, nil
}

func (s *trainingService) GetRecord(ctx context.Context, id primitive.ObjectID) (*models.TrainingRecord, error) {
	record, err := s.repo.GetRecord(ctx, id)
	if err != nil {
		return nil, notFound("Training record not found")
	}

	return record, nil
}

func (s *trainingService) GetAllRecords(ctx context.Context) ([]models.TrainingRecord, error) {
	return s.repo.GetAllRecords(ctx)
}

func (s *trainingService) SubmitRecord(ctx context.Context, id primitive.ObjectID, updatedBy string) (*models.TrainingRecord, error) {
	record, err := s.repo.GetRecord(ctx, id)
	if err != nil {
		return nil, notFound("Training record not found")
	}

	if !workflow.CanTransition(record.Status, workflow.StatusSubmitted) {
		return nil, forbidden("Only draft records can be submitted")
	}

	record.Status = workflow.StatusSubmitted
	record.Metadata.UpdatedBy = updatedBy
	record.Metadata.UpdatedAt = time.Now()

	if err := s.repo.UpdateRecord(ctx, id, record); err != nil {
		return nil, err
	}

	return record, nil
}

func (s *trainingService) ApproveRecord(ctx context.Context, id primitive.ObjectID, approvedBy string) (*models.TrainingRecord, error) {
	record, err := s.repo.GetRecord(ctx, id)
	if err != nil {
		return nil, notFound("Training record not found")
	}

	if !workflow.CanTransition(record.Status, workflow.StatusApproved) {
		return nil, forbidden("Only submitted records can be approved")
	}

	record.Status = workflow.StatusApproved
	record.Metadata.UpdatedBy = approvedBy
	record.Metadata.UpdatedAt = time.Now()

	if err := s.repo.UpdateRecord(ctx, id, record); err != nil {
		return nil, err
	}

	return record, nil
}

// findPlanItem returns the index of the plan item whose planned date falls
// on the same calendar day, or -1.
func findPlanItem(items []models.PlanItem, plannedDate time.Time) int {
	for i, item := range items {
		if utils.SameDay(item.PlannedDate, plannedDate) {
			return i
		}
	}
	return -1
}
