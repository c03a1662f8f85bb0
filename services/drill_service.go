package services

import (
	"context"
	"strings"
	"time"

	"oceansms/models"
	repository "oceansms/repositories"
	"oceansms/workflow"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DrillService owns drill plans and the plan-item-gated creation of drill
// reports. Same gates as training records.
type DrillService interface {
	CreatePlan(ctx context.Context, req *models.CreateDrillPlanRequest, createdBy string) (*models.DrillPlan, error)
	GetPlan(ctx context.Context, id primitive.ObjectID) (*models.DrillPlan, error)
	GetAllPlans(ctx context.Context) ([]models.DrillPlan, error)
	ApprovePlanItem(ctx context.Context, planID primitive.ObjectID, plannedDate time.Time, approvedBy string) (*models.DrillPlan, error)

	CreateReport(ctx context.Context, req *models.CreateDrillReportRequest, createdBy string) (*models.DrillReport, error)
	GetReport(ctx context.Context, id primitive.ObjectID) (*models.DrillReport, error)
	GetAllReports(ctx context.Context) ([]models.DrillReport, error)
	SubmitReport(ctx context.Context, id primitive.ObjectID, updatedBy string) (*models.DrillReport, error)
	ApproveReport(ctx context.Context, id primitive.ObjectID, approvedBy string) (*models.DrillReport, error)
}

type drillService struct {
	repo     repository.DrillRepository
	counters repository.CounterRepository
}

func NewDrillService(repo repository.DrillRepository, counters repository.CounterRepository) DrillService {
	return &drillService{
		repo:     repo,
		counters: counters,
	}
}

func (s *drillService) CreatePlan(ctx context.Context, req *models.CreateDrillPlanRequest, createdBy string) (*models.DrillPlan, error) {
	seq, err := s.counters.Next(ctx, models.CounterDrillPlan)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	plan := &models.DrillPlan{
		FormCode:  FormCode(PrefixDrillPlan, seq),
		Year:      req.Year,
		PlanItems: make([]models.PlanItem, 0, len(req.PlanItems)),
		Metadata: models.Metadata{
			CreatedBy: createdBy,
			UpdatedBy: createdBy,
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

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

func (s *drillService) GetPlan(ctx context.Context, id primitive.ObjectID) (*models.DrillPlan, error) {
	plan, err := s.repo.GetPlan(ctx, id)
	if err != nil {
		return nil, notFound("Drill plan not found")
	}

	return plan, nil
}

func (s *drillService) GetAllPlans(ctx context.Context) ([]models.DrillPlan, error) {
	return s.repo.GetAllPlans(ctx)
}

func (s *drillService) ApprovePlanItem(ctx context.Context, planID primitive.ObjectID, plannedDate time.Time, approvedBy string) (*models.DrillPlan, error) {
	plan, err := s.repo.GetPlan(ctx, planID)
	if err != nil {
		return nil, notFound("Drill plan not found")
	}

	idx := findPlanItem(plan.PlanItems, plannedDate)
	if idx < 0 {
		return nil, notFound("Plan item not found for this planned date")
	}

	// Plan items skip the Submitted stage, same as training plans.
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

// CreateReport enforces the same four gates as training records: plan
// exists, item exists, item approved, no report yet for the pair.
func (s *drillService) CreateReport(ctx context.Context, req *models.CreateDrillReportRequest, createdBy string) (*models.DrillReport, error) {
	validParticipants := make([]models.Participant, 0, len(req.Participants))
	for _, p := range req.Participants {
		if strings.TrimSpace(p.Name) != "" && strings.TrimSpace(p.Role) != "" {
			validParticipants = append(validParticipants, p)
		}
	}
	if len(validParticipants) == 0 {
		return nil, invalid("At least one participant with name and role is required")
	}

	planID, err := primitive.ObjectIDFromHex(req.DrillPlanID)
	if err != nil {
		return nil, invalid("Invalid drill plan ID format")
	}

	plan, err := s.repo.GetPlan(ctx, planID)
	if err != nil {
		return nil, notFound("Drill plan not found")
	}

	idx := findPlanItem(plan.PlanItems, req.PlannedDate)
	if idx < 0 {
		return nil, notFound("Plan item not found for this planned date")
	}

	if plan.PlanItems[idx].Status != workflow.StatusApproved {
		return nil, forbidden("This plan item is not approved yet")
	}

	if existing, _ := s.repo.FindReportByPlanDate(ctx, planID, req.PlannedDate); existing != nil {
		return nil, duplicate("Drill report already exists")
	}

	year := req.Year
	if year == 0 {
		year = req.DrillDate.Year()
	}

	now := time.Now()
	report := &models.DrillReport{
		DrillPlanID:         planID,
		PlannedDate:         req.PlannedDate,
		DrillNo:             strings.TrimSpace(req.DrillNo),
		DrillDate:           req.DrillDate,
		Location:            strings.TrimSpace(req.Location),
		DrillScenario:       strings.TrimSpace(req.DrillScenario),
		Participants:        validParticipants,
		IncidentProgression: strings.TrimSpace(req.IncidentProgression),
		Year:                year,
		Quarter:             req.Quarter,
		Status:              workflow.StatusDraft,
		Metadata: models.Metadata{
			CreatedBy: createdBy,
			UpdatedBy: createdBy,
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	if err := s.repo.CreateReport(ctx, report); err != nil {
		return nil, err
	}

	return report, nil
}

func (s *drillService) GetReport(ctx context.Context, id primitive.ObjectID) (*models.DrillReport, error) {
	report, err := s.repo.GetReport(ctx, id)
	if err != nil {
		return nil, notFound("Drill report not found")
	}

	return report, nil
}

func (s *drillService) GetAllReports(ctx context.Context) ([]models.DrillReport, error) {
	return s.repo.GetAllReports(ctx)
}

func (s *drillService) SubmitReport(ctx context.Context, id primitive.ObjectID, updatedBy string) (*models.DrillReport, error) {
	report, err := s.repo.GetReport(ctx, id)
	if err != nil {
		return nil, notFound("Drill report not found")
	}

	if !workflow.CanTransition(report.Status, workflow.StatusSubmitted) {
		return nil, forbidden("Only draft reports can be submitted")
	}

	report.Status = workflow.StatusSubmitted
	report.Metadata.UpdatedBy = updatedBy
	report.Metadata.UpdatedAt = time.Now()

	if err := s.repo.UpdateReport(ctx, id, report); err != nil {
		return nil, err
	}

	return report, nil
}

func (s *drillService) ApproveReport(ctx context.Context, id primitive.ObjectID, approvedBy string) (*models.DrillReport, error) {
	report, err := s.repo.GetReport(ctx, id)
	if err != nil {
		return nil, notFound("Drill report not found")
	}

	if !workflow.CanTransition(report.Status, workflow.StatusApproved) {
		return nil, forbidden("Only submitted reports can be approved")
	}

	report.Status = workflow.StatusApproved
	report.Metadata.UpdatedBy = approvedBy
	report.Metadata.UpdatedAt = time.Now()

	if err := s.repo.UpdateReport(ctx, id, report); err != nil {
		return nil, err
	}

	return report, nil
}
