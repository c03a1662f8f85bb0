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

var (
	marchDate = time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	aprilDate = time.Date(2025, 4, 15, 0, 0, 0, 0, time.UTC)
)

func newTrainingService() TrainingService {
	return NewTrainingService(newFakeTrainingRepo(), newFakeCounterRepo())
}

func trainingPlanRequest() *models.CreateTrainingPlanRequest {
	return &models.CreateTrainingPlanRequest{
		Year: 2025,
		PlanItems: []models.CreatePlanItem{
			{PlannedDate: marchDate, Topic: "Enclosed space entry", Instructor: "Ch. Officer"},
			{PlannedDate: aprilDate, Topic: "Mooring safety", Instructor: "Bosun"},
		},
	}
}

func trainingRecordRequest(planID string, plannedDate time.Time) *models.CreateTrainingRecordRequest {
	return &models.CreateTrainingRecordRequest{
		TrainingPlanID:     planID,
		PlannedDate:        plannedDate,
		Topic:              "Enclosed space entry",
		Instructor:         "Ch. Officer",
		ActualTrainingDate: plannedDate.Add(48 * time.Hour),
		Attendance:         []models.Attendee{{TraineeName: "D. Silva", Rank: "AB"}},
	}
}

func TestCreateTrainingPlan(t *testing.T) {
	svc := newTrainingService()

	plan, err := svc.CreatePlan(context.Background(), trainingPlanRequest(), "qhse.officer")
	require.NoError(t, err)

	assert.Equal(t, "QAF-TRP-001", plan.FormCode)
	assert.Equal(t, 2025, plan.Year)
	require.Len(t, plan.PlanItems, 2)
	for _, item := range plan.PlanItems {
		assert.Equal(t, workflow.StatusDraft, item.Status)
	}
}

func TestApprovePlanItem(t *testing.T) {
	svc := newTrainingService()
	ctx := context.Background()

	plan, err := svc.CreatePlan(ctx, trainingPlanRequest(), "creator")
	require.NoError(t, err)

	// Time of day is irrelevant, only the calendar date matters.
	updated, err := svc.ApprovePlanItem(ctx, plan.ID, marchDate.Add(14*time.Hour), "approver")
	require.NoError(t, err)
	assert.Equal(t, workflow.StatusApproved, updated.PlanItems[0].Status)
	assert.Equal(t, workflow.StatusDraft, updated.PlanItems[1].Status)

	// Already approved.
	_, err = svc.ApprovePlanItem(ctx, plan.ID, marchDate, "approver")
	var se *StateError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "Only draft plan items can be approved", se.Message)

	// No item on that date.
	_, err = svc.ApprovePlanItem(ctx, plan.ID, marchDate.AddDate(0, 2, 0), "approver")
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "Plan item not found for this planned date", nf.Message)
}

func TestCreateTrainingRecordGates(t *testing.T) {
	svc := newTrainingService()
	ctx := context.Background()

	plan, err := svc.CreatePlan(ctx, trainingPlanRequest(), "creator")
	require.NoError(t, err)

	// Gate 1: plan must exist.
	_, err = svc.CreateRecord(ctx, trainingRecordRequest(newObjectID().Hex(), marchDate), "user")
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "Training plan not found", nf.Message)

	// Gate 2: a plan item must exist on the date.
	_, err = svc.CreateRecord(ctx, trainingRecordRequest(plan.ID.Hex(), marchDate.AddDate(0, 6, 0)), "user")
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "Plan item not found for this planned date", nf.Message)

	// Gate 3: the item must be approved.
	_, err = svc.CreateRecord(ctx, trainingRecordRequest(plan.ID.Hex(), marchDate), "user")
	var se *StateError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "This plan item is not approved yet", se.Message)

	_, err = svc.ApprovePlanItem(ctx, plan.ID, marchDate, "approver")
	require.NoError(t, err)

	record, err := svc.CreateRecord(ctx, trainingRecordRequest(plan.ID.Hex(), marchDate), "user")
	require.NoError(t, err)
	assert.Equal(t, workflow.StatusDraft, record.Status)
	assert.Equal(t, plan.ID, record.TrainingPlanID)

	// Gate 4: one record per (plan, date) pair.
	_, err = svc.CreateRecord(ctx, trainingRecordRequest(plan.ID.Hex(), marchDate), "user")
	var de *DuplicateError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "Training record already exists", de.Message)

	// A different item of the same plan still accepts a record.
	_, err = svc.ApprovePlanItem(ctx, plan.ID, aprilDate, "approver")
	require.NoError(t, err)
	_, err = svc.CreateRecord(ctx, trainingRecordRequest(plan.ID.Hex(), aprilDate), "user")
	assert.NoError(t, err)
}

func TestCreateTrainingRecordBadPlanID(t *testing.T) {
	svc := newTrainingService()

	_, err := svc.CreateRecord(context.Background(), trainingRecordRequest("not-a-hex-id", marchDate), "user")
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "Invalid training plan ID format", ve.Message)
}

func TestTrainingRecordLifecycle(t *testing.T) {
	svc := newTrainingService()
	ctx := context.Background()

	plan, err := svc.CreatePlan(ctx, trainingPlanRequest(), "creator")
	require.NoError(t, err)
	_, err = svc.ApprovePlanItem(ctx, plan.ID, marchDate, "approver")
	require.NoError(t, err)
	record, err := svc.CreateRecord(ctx, trainingRecordRequest(plan.ID.Hex(), marchDate), "creator")
	require.NoError(t, err)

	_, err = svc.ApproveRecord(ctx, record.ID, "approver")
	var se *StateError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "Only submitted records can be approved", se.Message)

	submitted, err := svc.SubmitRecord(ctx, record.ID, "creator")
	require.NoError(t, err)
	assert.Equal(t, workflow.StatusSubmitted, submitted.Status)

	_, err = svc.SubmitRecord(ctx, record.ID, "creator")
	require.ErrorAs(t, err, &se)

	approved, err := svc.ApproveRecord(ctx, record.ID, "approver")
	require.NoError(t, err)
	assert.Equal(t, workflow.StatusApproved, approved.Status)
}
