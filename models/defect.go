package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Defect states.
const (
	DefectOpen   = "OPEN"
	DefectClosed = "CLOSED"
)

// EquipmentDefect is a QHSE defect-list entry. New defects always open as OPEN.
type EquipmentDefect struct {
	ID              primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	FormCode        string             `json:"formCode" bson:"formCode"`
	EquipmentDefect string             `json:"equipmentDefect" bson:"equipmentDefect" validate:"required"`
	Base            string             `json:"base" bson:"base" validate:"required"`
	ActionRequired  string             `json:"actionRequired" bson:"actionRequired" validate:"required"`
	TargetDate      time.Time          `json:"targetDate" bson:"targetDate" validate:"required"`
	Status          string             `json:"status" bson:"status"`
	ClosedAt        *time.Time         `json:"closedAt,omitempty" bson:"closedAt,omitempty"`
	Metadata        Metadata           `json:"metadata" bson:"metadata"`
}
