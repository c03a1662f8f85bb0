package services

import (
	"context"
	"strings"
	"time"

	"oceansms/models"
	repository "oceansms/repositories"
	"oceansms/workflow"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AuditService owns the sub-contractor audit lifecycle. Forms always start
// as Draft with a server-assigned form code; only drafts may be edited or
// submitted; only submitted forms may be approved.
type AuditService interface {
	Create(ctx context.Context, audit *models.SubContractorAudit, createdBy string) (*models.SubContractorAudit, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.SubContractorAudit, error)
	GetAll(ctx context.Context) ([]models.SubContractorAudit, error)
	GetByStatus(ctx context.Context, status workflow.Status) ([]models.SubContractorAudit, error)
	Update(ctx context.Context, id primitive.ObjectID, patch *models.SubContractorAuditPatch, updatedBy string) (*models.SubContractorAudit, error)
	Submit(ctx context.Context, id primitive.ObjectID, updatedBy string) (*models.SubContractorAudit, error)
	Approve(ctx context.Context, id primitive.ObjectID, approvedBy string) (*models.SubContractorAudit, error)
	StatusStats(ctx context.Context) ([]bson.M, error)
}

type auditService struct {
	repo     repository.AuditRepository
	counters repository.CounterRepository
}

func NewAuditService(repo repository.AuditRepository, counters repository.CounterRepository) AuditService {
	return &auditService{
		repo:     repo,
		counters: counters,
	}
}

func (s *auditService) Create(ctx context.Context, audit *models.SubContractorAudit, createdBy string) (*models.SubContractorAudit, error) {
	if err := validateAudit(audit); err != nil {
		return nil, err
	}

	seq, err := s.counters.Next(ctx, models.CounterSubContractorAudit)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	// Server decides the workflow fields regardless of client input.
	audit.FormCode = FormCode(PrefixSubContractorAudit, seq)
	audit.Status = workflow.StatusDraft
	audit.ApprovedBy = ""
	audit.ApprovedAt = nil
	audit.CreatedBy = createdBy
	audit.Metadata = models.Metadata{
		CreatedBy: createdBy,
		UpdatedBy: createdBy,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, audit); err != nil {
		return nil, err
	}

	return audit, nil
}

func (s *auditService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.SubContractorAudit, error) {
	audit, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound("Sub contractor audit not found")
	}

	return audit, nil
}

func (s *auditService) GetAll(ctx context.Context) ([]models.SubContractorAudit, error) {
	return s.repo.GetAll(ctx)
}

func (s *auditService) GetByStatus(ctx context.Context, status workflow.Status) ([]models.SubContractorAudit, error) {
	return s.repo.GetByStatus(ctx, status)
}

func (s *auditService) Update(ctx context.Context, id primitive.ObjectID, patch *models.SubContractorAuditPatch, updatedBy string) (*models.SubContractorAudit, error) {
	audit, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound("Sub contractor audit not found")
	}

	if err := workflow.Guard(audit.Status, workflow.StatusDraft, "forms", "updated"); err != nil {
		return nil, forbidden(err.Error())
	}

	// Fields present in the patch are validated; omitted fields are not
	// revalidated here, submit does the full pass.
	if err := applyAuditPatch(audit, patch); err != nil {
		return nil, err
	}

	audit.Metadata.UpdatedBy = updatedBy
	audit.Metadata.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, id, audit); err != nil {
		return nil, err
	}

	return audit, nil
}

func (s *auditService) Submit(ctx context.Context, id primitive.ObjectID, updatedBy string) (*models.SubContractorAudit, error) {
	audit, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound("Sub contractor audit not found")
	}

	if !workflow.CanTransition(audit.Status, workflow.StatusSubmitted) {
		return nil, forbidden("Only draft forms can be submitted")
	}

	if err := validateAudit(audit); err != nil {
		return nil, err
	}

	audit.Status = workflow.StatusSubmitted
	audit.Metadata.UpdatedBy = updatedBy
	audit.Metadata.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, id, audit); err != nil {
		return nil, err
	}

	return audit, nil
}

func (s *auditService) Approve(ctx context.Context, id primitive.ObjectID, approvedBy string) (*models.SubContractorAudit, error) {
	audit, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound("Sub contractor audit not found")
	}

	if !workflow.CanTransition(audit.Status, workflow.StatusApproved) {
		return nil, forbidden("Only submitted forms can be approved")
	}

	now := time.Now()
	audit.Status = workflow.StatusApproved
	audit.ApprovedBy = approvedBy
	audit.ApprovedAt = &now
	audit.Metadata.UpdatedBy = approvedBy
	audit.Metadata.UpdatedAt = now

	if err := s.repo.Update(ctx, id, audit); err != nil {
		return nil, err
	}

	return audit, nil
}

func (s *auditService) StatusStats(ctx context.Context) ([]bson.M, error) {
	return s.repo.StatusStats(ctx)
}

// validateAudit performs the full-document validation required at creation
// and submission time.
func validateAudit(a *models.SubContractorAudit) error {
	if strings.TrimSpace(a.SubcontractorName) == "" ||
		strings.TrimSpace(a.SubcontractorAddress) == "" ||
		strings.TrimSpace(a.ServiceType) == "" ||
		strings.TrimSpace(a.ContactPerson) == "" ||
		strings.TrimSpace(a.EmailOfContactPerson) == "" ||
		strings.TrimSpace(a.PhoneOfContactPerson) == "" {
		return invalid("All required fields must be filled")
	}

	if a.TradeLicenseCopyAvailable == nil ||
		a.HasHSEPolicy == nil ||
		a.AuditsSubcontractors == nil ||
		a.HasInsurance == nil {
		return invalid("All compliance questions must be answered (Yes/No)")
	}

	if *a.HasInsurance && strings.TrimSpace(a.InsuranceDetails) == "" {
		return invalid("Insurance details are required when insurance is selected")
	}

	if len(a.ISOCertifications) == 0 {
		return invalid("At least one ISO certification must be selected")
	}

	if err := validateSigner(a.AuditCompletedBy, "Audit completed by fields are required"); err != nil {
		return err
	}
	if err := validateSigner(a.ContractorApprovedBy, "Contractor approved by fields are required"); err != nil {
		return err
	}

	return nil
}

func validateSigner(signer *models.Signer, msg string) error {
	if signer == nil ||
		strings.TrimSpace(signer.Name) == "" ||
		strings.TrimSpace(signer.Designation) == "" ||
		signer.SignedAt == nil {
		return invalid(msg)
	}
	return nil
}

// applyAuditPatch copies patch fields onto the draft, rejecting any present
// field that would empty a required value.
func applyAuditPatch(audit *models.SubContractorAudit, patch *models.SubContractorAuditPatch) error {
	type requiredText struct {
		value *string
		dst   *string
		msg   string
	}

	required := []requiredText{
		{patch.SubcontractorName, &audit.SubcontractorName, "Sub-contractor name is required"},
		{patch.SubcontractorAddress, &audit.SubcontractorAddress, "Sub-contractor address is required"},
		{patch.ServiceType, &audit.ServiceType, "Service type is required"},
		{patch.ContactPerson, &audit.ContactPerson, "Contact person is required"},
		{patch.EmailOfContactPerson, &audit.EmailOfContactPerson, "Email is required"},
		{patch.PhoneOfContactPerson, &audit.PhoneOfContactPerson, "Phone number is required"},
	}

	for _, f := range required {
		if f.value == nil {
			continue
		}
		if strings.TrimSpace(*f.value) == "" {
			return invalid(f.msg)
		}
		*f.dst = *f.value
	}

	if patch.OperatingAreas != nil {
		audit.OperatingAreas = *patch.OperatingAreas
	}

	if patch.TradeLicenseCopyAvailable != nil {
		audit.TradeLicenseCopyAvailable = patch.TradeLicenseCopyAvailable
	}
	if patch.HasHSEPolicy != nil {
		audit.HasHSEPolicy = patch.HasHSEPolicy
	}
	if patch.AuditsSubcontractors != nil {
		audit.AuditsSubcontractors = patch.AuditsSubcontractors
	}
	if patch.HasInsurance != nil {
		audit.HasInsurance = patch.HasInsurance
	}

	if patch.InsuranceDetails != nil {
		audit.InsuranceDetails = *patch.InsuranceDetails
	}
	if audit.HasInsurance != nil && *audit.HasInsurance &&
		patch.InsuranceDetails != nil && strings.TrimSpace(*patch.InsuranceDetails) == "" {
		return invalid("Insurance details are required when insurance is selected")
	}

	if patch.ISOCertifications != nil {
		if len(*patch.ISOCertifications) == 0 {
			return invalid("At least one ISO certification must be selected")
		}
		audit.ISOCertifications = *patch.ISOCertifications
	}

	if patch.AuditCompletedBy != nil {
		audit.AuditCompletedBy = patch.AuditCompletedBy
	}
	if patch.ContractorApprovedBy != nil {
		audit.ContractorApprovedBy = patch.ContractorApprovedBy
	}

	return nil
}
