package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"oceansms/workflow"
)

// PlanItem is one dated entry inside a training or drill plan. Each item is
// status-gated on its own: records may only be filed against Approved items.
type PlanItem struct {
	PlannedDate time.Time       `json:"plannedDate" bson:"plannedDate"`
	Topic       string          `json:"topic" bson:"topic"`
	Instructor  string          `json:"instructor" bson:"instructor"`
	Description string          `json:"description,omitempty" bson:"description,omitempty"`
	Status      workflow.Status `json:"status" bson:"status"`
}

// TrainingPlan is the annual crew-training matrix, one item per month.
type TrainingPlan struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	FormCode  string             `json:"formCode" bson:"formCode"`
	Year      int                `json:"year" bson:"year"`
	PlanItems []PlanItem         `json:"planItems" bson:"planItems"`
	Metadata  Metadata           `json:"metadata" bson:"metadata"`
}

// Attendee is one crew member logged on a training record.
type Attendee struct {
	TraineeName string `json:"traineeName" bson:"traineeName"`
	Rank        string `json:"rank,omitempty" bson:"rank,omitempty"`
}

// TrainingRecord is the completion record for one approved plan item.
// At most one record exists per (plan, planned date) pair.
type TrainingRecord struct {
	ID                 primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	TrainingPlanID     primitive.ObjectID `json:"trainingPlanId" bson:"trainingPlanId"`
	PlannedDate        time.Time          `json:"plannedDate" bson:"plannedDate"`
	Topic              string             `json:"topic" bson:"topic"`
	Instructor         string             `json:"instructor" bson:"instructor"`
	ActualTrainingDate time.Time          `json:"actualTrainingDate" bson:"actualTrainingDate"`
	Attendance         []Attendee         `json:"attendance" bson:"attendance"`
	Status             workflow.Status    `json:"status" bson:"status"`
	Metadata           Metadata           `json:"metadata" bson:"metadata"`
}

// CreateTrainingPlanRequest is the create payload for a training plan.
type CreateTrainingPlanRequest struct {
	Year      int              `json:"year" validate:"required"`
	PlanItems []CreatePlanItem `json:"planItems" validate:"required,min=1,dive"`
}

// CreatePlanItem is one plan entry in a plan create payload.
type CreatePlanItem struct {
	PlannedDate time.Time `json:"plannedDate" validate:"required"`
	Topic       string    `json:"topic" validate:"required"`
	Instructor  string    `json:"instructor" validate:"required"`
	Description string    `json:"description"`
}

// CreateTrainingRecordRequest is the create payload for a training record.
type CreateTrainingRecordRequest struct {
	TrainingPlanID     string     `json:"trainingPlanId" validate:"required"`
	PlannedDate        time.Time  `json:"plannedDate" validate:"required"`
	Topic              string     `json:"topic" validate:"required"`
	Instructor         string     `json:"instructor" validate:"required"`
	ActualTrainingDate time.Time  `json:"actualTrainingDate" validate:"required"`
	Attendance         []Attendee `json:"attendance" validate:"required,min=1"`
}
