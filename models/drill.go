package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"oceansms/workflow"
)

// DrillPlan is the annual emergency-drill matrix, one item per quarter.
type DrillPlan struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	FormCode  string             `json:"formCode" bson:"formCode"`
	Year      int                `json:"year" bson:"year"`
	PlanItems []PlanItem         `json:"planItems" bson:"planItems"`
	Metadata  Metadata           `json:"metadata" bson:"metadata"`
}

// Participant is one crew member taking part in a drill.
type Participant struct {
	Name string `json:"name" bson:"name"`
	Role string `json:"role" bson:"role"`
}

// DrillReport documents an executed drill against an approved plan item.
// At most one report exists per (plan, planned date) pair.
type DrillReport struct {
	ID                  primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	DrillPlanID         primitive.ObjectID `json:"drillPlanId" bson:"drillPlanId"`
	PlannedDate         time.Time          `json:"plannedDate" bson:"plannedDate"`
	DrillNo             string             `json:"drillNo" bson:"drillNo"`
	DrillDate           time.Time          `json:"drillDate" bson:"drillDate"`
	Location            string             `json:"location" bson:"location"`
	DrillScenario       string             `json:"drillScenario" bson:"drillScenario"`
	Participants        []Participant      `json:"participants" bson:"participants"`
	IncidentProgression string             `json:"incidentProgression" bson:"incidentProgression"`
	Year                int                `json:"year" bson:"year"`
	Quarter             string             `json:"quarter,omitempty" bson:"quarter,omitempty"`
	Status              workflow.Status    `json:"status" bson:"status"`
	Metadata            Metadata           `json:"metadata" bson:"metadata"`
}

// CreateDrillPlanRequest is the create payload for a drill plan.
type CreateDrillPlanRequest struct {
	Year      int              `json:"year" validate:"required"`
	PlanItems []CreatePlanItem `json:"planItems" validate:"required,min=1,dive"`
}

// CreateDrillReportRequest is the create payload for a drill report.
type CreateDrillReportRequest struct {
	DrillPlanID         string        `json:"drillPlanId" validate:"required"`
	PlannedDate         time.Time     `json:"plannedDate" validate:"required"`
	DrillNo             string        `json:"drillNo" validate:"required"`
	DrillDate           time.Time     `json:"drillDate" validate:"required"`
	Location            string        `json:"location"`
	DrillScenario       string        `json:"drillScenario" validate:"required"`
	Participants        []Participant `json:"participants" validate:"required,min=1"`
	IncidentProgression string        `json:"incidentProgression"`
	Year                int           `json:"year"`
	Quarter             string        `json:"quarter"`
}
