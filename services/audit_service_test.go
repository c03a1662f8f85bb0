package services

import (
	"context"
	"testing"
	"time"

	"oceansms/models"
	"oceansms/workflow"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool           { return &b }
func strPtr(s string) *string        { return &s }
func timePtr(t time.Time) *time.Time { return &t }

func validAudit() *models.SubContractorAudit {
	signedAt := time.Date(2025, 2, 10, 9, 0, 0, 0, time.UTC)
	return &models.SubContractorAudit{
		SubcontractorName:         "Gulf Marine Services",
		SubcontractorAddress:      "Port Zone 4, Fujairah",
		ServiceType:               "Fender maintenance",
		ContactPerson:             "A. Rahman",
		EmailOfContactPerson:      "a.rahman@gulfmarine.example",
		PhoneOfContactPerson:      "+971-50-0000000",
		OperatingAreas:            []string{"Fujairah", "Khor Fakkan"},
		TradeLicenseCopyAvailable: boolPtr(true),
		HasHSEPolicy:              boolPtr(true),
		AuditsSubcontractors:      boolPtr(false),
		HasInsurance:              boolPtr(false),
		ISOCertifications:         []string{"ISO 9001"},
		AuditCompletedBy: &models.Signer{
			Name:        "J. Okafor",
			Designation: "QHSE Officer",
			SignedAt:    timePtr(signedAt),
		},
		ContractorApprovedBy: &models.Signer{
			Name:        "M. Haddad",
			Designation: "Operations Manager",
			SignedAt:    timePtr(signedAt),
		},
	}
}

func newAuditService() (AuditService, *fakeAuditRepo) {
	repo := newFakeAuditRepo()
	return NewAuditService(repo, newFakeCounterRepo()), repo
}

func TestCreateAudit(t *testing.T) {
	svc, _ := newAuditService()

	audit := validAudit()
	// Client-sent workflow fields must be ignored.
	audit.Status = workflow.StatusApproved
	audit.ApprovedBy = "self"
	audit.FormCode = "QAF-OFD-999"

	created, err := svc.Create(context.Background(), audit, "qhse.officer")
	require.NoError(t, err)

	assert.Equal(t, "QAF-OFD-001", created.FormCode)
	assert.Equal(t, workflow.StatusDraft, created.Status)
	assert.Empty(t, created.ApprovedBy)
	assert.Nil(t, created.ApprovedAt)
	assert.Equal(t, "qhse.officer", created.CreatedBy)
}

func TestCreateAuditSequentialFormCodes(t *testing.T) {
	svc, _ := newAuditService()

	first, err := svc.Create(context.Background(), validAudit(), "user")
	require.NoError(t, err)
	second, err := svc.Create(context.Background(), validAudit(), "user")
	require.NoError(t, err)

	assert.Equal(t, "QAF-OFD-001", first.FormCode)
	assert.Equal(t, "QAF-OFD-002", second.FormCode)
}

func TestCreateAuditValidation(t *testing.T) {
	svc, _ := newAuditService()
	ctx := context.Background()

	missing := validAudit()
	missing.ContactPerson = ""
	_, err := svc.Create(ctx, missing, "user")
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "All required fields must be filled", ve.Message)

	unanswered := validAudit()
	unanswered.HasHSEPolicy = nil
	_, err = svc.Create(ctx, unanswered, "user")
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "All compliance questions must be answered (Yes/No)", ve.Message)

	noISO := validAudit()
	noISO.ISOCertifications = nil
	_, err = svc.Create(ctx, noISO, "user")
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "At least one ISO certification must be selected", ve.Message)

	noSigner := validAudit()
	noSigner.AuditCompletedBy = nil
	_, err = svc.Create(ctx, noSigner, "user")
	assert.ErrorAs(t, err, &ve)
}

func TestCreateAuditInsuranceConditional(t *testing.T) {
	svc, _ := newAuditService()
	ctx := context.Background()

	insured := validAudit()
	insured.HasInsurance = boolPtr(true)
	insured.InsuranceDetails = ""
	_, err := svc.Create(ctx, insured, "user")
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "Insurance details are required when insurance is selected", ve.Message)

	insured.InsuranceDetails = "Marine liability, policy ML-4471"
	_, err = svc.Create(ctx, insured, "user")
	assert.NoError(t, err)
}

func TestAuditLifecycle(t *testing.T) {
	svc, _ := newAuditService()
	ctx := context.Background()

	created, err := svc.Create(ctx, validAudit(), "creator")
	require.NoError(t, err)

	// Approve before submit is rejected.
	_, err = svc.Approve(ctx, created.ID, "approver")
	var se *StateError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "Only submitted forms can be approved", se.Message)

	submitted, err := svc.Submit(ctx, created.ID, "creator")
	require.NoError(t, err)
	assert.Equal(t, workflow.StatusSubmitted, submitted.Status)

	// Submit is not repeatable.
	_, err = svc.Submit(ctx, created.ID, "creator")
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "Only draft forms can be submitted", se.Message)

	// Edits are locked once submitted.
	_, err = svc.Update(ctx, created.ID, &models.SubContractorAuditPatch{
		ServiceType: strPtr("Hose testing"),
	}, "creator")
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "Only draft forms can be updated", se.Message)

	approved, err := svc.Approve(ctx, created.ID, "approver")
	require.NoError(t, err)
	assert.Equal(t, workflow.StatusApproved, approved.Status)
	assert.Equal(t, "approver", approved.ApprovedBy)
	assert.NotNil(t, approved.ApprovedAt)

	// Approved is terminal.
	_, err = svc.Approve(ctx, created.ID, "approver")
	assert.ErrorAs(t, err, &se)
}

func TestUpdateAuditPatch(t *testing.T) {
	svc, _ := newAuditService()
	ctx := context.Background()

	created, err := svc.Create(ctx, validAudit(), "creator")
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID, &models.SubContractorAuditPatch{
		ContactPerson: strPtr("B. Osei"),
	}, "editor")
	require.NoError(t, err)
	assert.Equal(t, "B. Osei", updated.ContactPerson)
	// Untouched fields are preserved.
	assert.Equal(t, "Gulf Marine Services", updated.SubcontractorName)
	assert.Equal(t, "editor", updated.Metadata.UpdatedBy)

	// A present field may not be blanked.
	_, err = svc.Update(ctx, created.ID, &models.SubContractorAuditPatch{
		ContactPerson: strPtr("  "),
	}, "editor")
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "Contact person is required", ve.Message)

	// Turning insurance on without details is rejected.
	_, err = svc.Update(ctx, created.ID, &models.SubContractorAuditPatch{
		HasInsurance:     boolPtr(true),
		InsuranceDetails: strPtr(""),
	}, "editor")
	assert.ErrorAs(t, err, &ve)
}

func TestAuditNotFound(t *testing.T) {
	svc, _ := newAuditService()

	_, err := svc.GetByID(context.Background(), newObjectID())
	var nf *NotFoundError
	assert.ErrorAs(t, err, &nf)

	_, err = svc.Submit(context.Background(), newObjectID(), "user")
	assert.ErrorAs(t, err, &nf)
}
