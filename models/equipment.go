package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Equipment availability states.
const (
	EquipmentAvailable = "AVAILABLE"
	EquipmentInUse     = "IN_USE"
	EquipmentRetired   = "RETIRED"
)

// Equipment is one PMS-tracked piece of STS equipment (fenders, hoses,
// transfer gear). Names are unique across the fleet.
type Equipment struct {
	ID                 primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	EquipmentName      string              `json:"equipmentName" bson:"equipmentName" validate:"required"`
	RetirementDate     time.Time           `json:"retirementDate" bson:"retirementDate" validate:"required"`
	AvailabilityStatus string              `json:"availabilityStatus" bson:"availabilityStatus"`
	CurrentOperation   *primitive.ObjectID `json:"currentOperation" bson:"currentOperation"`
	AssignedAt         *time.Time          `json:"assignedAt,omitempty" bson:"assignedAt,omitempty"`
	TotalUsedHours     float64             `json:"totalUsedHours" bson:"totalUsedHours"`
	Metadata           Metadata            `json:"metadata" bson:"metadata"`
}
