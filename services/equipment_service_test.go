package services

import (
	"context"
	"testing"
	"time"

	"oceansms/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEquipmentService() (EquipmentService, *fakeStsRepo) {
	ops := &fakeStsRepo{}
	return NewEquipmentService(newFakeEquipmentRepo(), ops), ops
}

func newFender() *models.Equipment {
	return &models.Equipment{
		EquipmentName:  "Yokohama Fender 3.3m #1",
		RetirementDate: time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func seedOperation(t *testing.T, ops *fakeStsRepo) *models.StsOperation {
	t.Helper()
	op := &models.StsOperation{
		ParentOperationID: newObjectID(),
		Version:           1,
		IsLatest:          true,
		OperationRefNo:    "STS-2025-020",
	}
	require.NoError(t, ops.Insert(context.Background(), op))
	return op
}

func TestCreateEquipment(t *testing.T) {
	svc, _ := newEquipmentService()

	fender := newFender()
	// Client-sent state fields are overwritten with defaults.
	fender.AvailabilityStatus = models.EquipmentInUse
	fender.TotalUsedHours = 500

	created, err := svc.Create(context.Background(), fender, "pms.officer")
	require.NoError(t, err)

	assert.Equal(t, models.EquipmentAvailable, created.AvailabilityStatus)
	assert.Nil(t, created.CurrentOperation)
	assert.Zero(t, created.TotalUsedHours)
	assert.Equal(t, "pms.officer", created.Metadata.CreatedBy)
}

func TestCreateEquipmentDuplicateName(t *testing.T) {
	svc, _ := newEquipmentService()
	ctx := context.Background()

	_, err := svc.Create(ctx, newFender(), "user")
	require.NoError(t, err)

	_, err = svc.Create(ctx, newFender(), "user")
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "Equipment already exists", ve.Message)
}

func TestAssignEquipment(t *testing.T) {
	svc, ops := newEquipmentService()
	ctx := context.Background()

	created, err := svc.Create(ctx, newFender(), "user")
	require.NoError(t, err)
	op := seedOperation(t, ops)

	assigned, err := svc.Assign(ctx, created.ID, op.ID, "user")
	require.NoError(t, err)
	assert.Equal(t, models.EquipmentInUse, assigned.AvailabilityStatus)
	require.NotNil(t, assigned.CurrentOperation)
	assert.Equal(t, op.ID, *assigned.CurrentOperation)
	assert.NotNil(t, assigned.AssignedAt)

	// The operation document logs the booking.
	stored, err := ops.GetByID(ctx, op.ID)
	require.NoError(t, err)
	require.Len(t, stored.Equipments, 1)
	assert.Equal(t, created.ID, stored.Equipments[0].Equipment)
	assert.Equal(t, models.UsageInUse, stored.Equipments[0].Status)
	assert.Nil(t, stored.Equipments[0].EndTime)

	// Double assignment is rejected.
	_, err = svc.Assign(ctx, created.ID, op.ID, "user")
	var se *StateError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "Equipment is already in use", se.Message)
}

func TestAssignEquipmentUnknownOperation(t *testing.T) {
	svc, _ := newEquipmentService()
	ctx := context.Background()

	created, err := svc.Create(ctx, newFender(), "user")
	require.NoError(t, err)

	_, err = svc.Assign(ctx, created.ID, newObjectID(), "user")
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "Operation not found", nf.Message)
}

func TestReleaseEquipment(t *testing.T) {
	svc, ops := newEquipmentService()
	ctx := context.Background()

	created, err := svc.Create(ctx, newFender(), "user")
	require.NoError(t, err)

	// Release without assignment is rejected.
	_, err = svc.Release(ctx, created.ID, "user")
	var se *StateError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "Equipment is not in use", se.Message)

	op := seedOperation(t, ops)
	_, err = svc.Assign(ctx, created.ID, op.ID, "user")
	require.NoError(t, err)

	released, err := svc.Release(ctx, created.ID, "user")
	require.NoError(t, err)
	assert.Equal(t, models.EquipmentAvailable, released.AvailabilityStatus)
	assert.Nil(t, released.CurrentOperation)
	assert.Nil(t, released.AssignedAt)
	assert.GreaterOrEqual(t, released.TotalUsedHours, 0.0)

	// The usage entry on the operation is closed out.
	stored, err := ops.GetByID(ctx, op.ID)
	require.NoError(t, err)
	require.Len(t, stored.Equipments, 1)
	assert.Equal(t, models.UsageReleased, stored.Equipments[0].Status)
	assert.NotNil(t, stored.Equipments[0].EndTime)
	assert.GreaterOrEqual(t, stored.Equipments[0].UsedHours, 0.0)
}

func TestRetireEquipment(t *testing.T) {
	svc, ops := newEquipmentService()
	ctx := context.Background()

	created, err := svc.Create(ctx, newFender(), "user")
	require.NoError(t, err)
	op := seedOperation(t, ops)

	_, err = svc.Assign(ctx, created.ID, op.ID, "user")
	require.NoError(t, err)

	// In-use equipment cannot be retired.
	_, err = svc.Retire(ctx, created.ID, "user")
	var se *StateError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "Equipment in use cannot be retired", se.Message)

	_, err = svc.Release(ctx, created.ID, "user")
	require.NoError(t, err)

	retired, err := svc.Retire(ctx, created.ID, "user")
	require.NoError(t, err)
	assert.Equal(t, models.EquipmentRetired, retired.AvailabilityStatus)

	// Retired equipment never goes back into rotation.
	_, err = svc.Assign(ctx, created.ID, op.ID, "user")
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "Retired equipment cannot be assigned", se.Message)
}

func TestDeleteEquipment(t *testing.T) {
	svc, _ := newEquipmentService()
	ctx := context.Background()

	created, err := svc.Create(ctx, newFender(), "user")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))

	err = svc.Delete(ctx, created.ID)
	var nf *NotFoundError
	assert.ErrorAs(t, err, &nf)
}
