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

// QuestionnaireService owns the supplier due-diligence questionnaire
// lifecycle, same Draft/Submitted/Approved gates as the audit.
type QuestionnaireService interface {
	Create(ctx context.Context, record *models.SupplierDueDiligence, createdBy string) (*models.SupplierDueDiligence, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.SupplierDueDiligence, error)
	GetAll(ctx context.Context) ([]models.SupplierDueDiligence, error)
	GetByStatus(ctx context.Context, status workflow.Status) ([]models.SupplierDueDiligence, error)
	Update(ctx context.Context, id primitive.ObjectID, patch *models.SupplierDueDiligencePatch, updatedBy string) (*models.SupplierDueDiligence, error)
	Submit(ctx context.Context, id primitive.ObjectID, updatedBy string) (*models.SupplierDueDiligence, error)
	Approve(ctx context.Context, id primitive.ObjectID, approvedBy string) (*models.SupplierDueDiligence, error)
}

type questionnaireService struct {
	repo     repository.QuestionnaireRepository
	counters repository.CounterRepository
}

func NewQuestionnaireService(repo repository.QuestionnaireRepository, counters repository.CounterRepository) QuestionnaireService {
	return &questionnaireService{
		repo:     repo,
		counters: counters,
	}
}

func (s *questionnaireService) Create(ctx context.Context, record *models.SupplierDueDiligence, createdBy string) (*models.SupplierDueDiligence, error) {
	seq, err := s.counters.Next(ctx, models.CounterSupplierDDQ)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	record.FormCode = FormCode(PrefixSupplierDDQ, seq)
	record.Status = workflow.StatusDraft
	record.ApprovedBy = ""
	record.ApprovedAt = nil
	record.CreatedBy = createdBy
	if record.Answers == nil {
		record.Answers = map[string]string{}
	}
	record.Metadata = models.Metadata{
		CreatedBy: createdBy,
		UpdatedBy: createdBy,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, record); err != nil {
		return nil, err
	}

	return record, nil
}

func (s *questionnaireService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.SupplierDueDiligence, error) {
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound("Record not found")
	}

	return record, nil
}

func (s *questionnaireService) GetAll(ctx context.Context) ([]models.SupplierDueDiligence, error) {
	return s.repo.GetAll(ctx)
}

func (s *questionnaireService) GetByStatus(ctx context.Context, status workflow.Status) ([]models.SupplierDueDiligence, error) {
	return s.repo.GetByStatus(ctx, status)
}

func (s *questionnaireService) Update(ctx context.Context, id primitive.ObjectID, patch *models.SupplierDueDiligencePatch, updatedBy string) (*models.SupplierDueDiligence, error) {
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound("Record not found")
	}

	if err := workflow.Guard(record.Status, workflow.StatusDraft, "records", "edited"); err != nil {
		return nil, forbidden(err.Error())
	}

	if patch.SupplierDetails != nil {
		record.SupplierDetails = *patch.SupplierDetails
	}
	if patch.Answers != nil {
		record.Answers = *patch.Answers
	}
	if patch.Remarks != nil {
		record.Remarks = *patch.Remarks
	}

	record.Metadata.UpdatedBy = updatedBy
	record.Metadata.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, id, record); err != nil {
		return nil, err
	}

	return record, nil
}

func (s *questionnaireService) Submit(ctx context.Context, id primitive.ObjectID, updatedBy string) (*models.SupplierDueDiligence, error) {
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound("Record not found")
	}

	if !workflow.CanTransition(record.Status, workflow.StatusSubmitted) {
		return nil, forbidden("Only draft forms can be submitted")
	}

	if strings.TrimSpace(record.SupplierDetails.InchargeNameAndCompany) == "" ||
		strings.TrimSpace(record.SupplierDetails.ContactDetails) == "" {
		return nil, invalid("Required supplier details are missing")
	}

	record.Status = workflow.StatusSubmitted
	record.Metadata.UpdatedBy = updatedBy
	record.Metadata.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, id, record); err != nil {
		return nil, err
	}

	return record, nil
}

func (s *questionnaireService) Approve(ctx context.Context, id primitive.ObjectID, approvedBy string) (*models.SupplierDueDiligence, error) {
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound("Record not found")
	}

	if !workflow.CanTransition(record.Status, workflow.StatusApproved) {
		return nil, forbidden("Only submitted forms can be approved")
	}

	now := time.Now()
	record.Status = workflow.StatusApproved
	record.ApprovedBy = approvedBy
	record.ApprovedAt = &now
	record.Metadata.UpdatedBy = approvedBy
	record.Metadata.UpdatedAt = now

	if err := s.repo.Update(ctx, id, record); err != nil {
		return nil, err
	}

	return record, nil
}
