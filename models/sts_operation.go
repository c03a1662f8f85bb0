package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Operation status values for an STS transfer.
const (
	OperationInProgress = "INPROGRESS"
	OperationCompleted  = "COMPLETED"
	OperationCanceled   = "CANCELED"
	OperationPending    = "PENDING"
)

// Equipment usage status inside an operation.
const (
	UsageInUse    = "IN_USE"
	UsageReleased = "RELEASED"
)

// EquipmentUsage is one equipment booking embedded in an operation document.
type EquipmentUsage struct {
	Equipment primitive.ObjectID `json:"equipment" bson:"equipment"`
	StartTime time.Time          `json:"startTime" bson:"startTime"`
	EndTime   *time.Time         `json:"endTime,omitempty" bson:"endTime,omitempty"`
	UsedHours float64            `json:"usedHours" bson:"usedHours"`
	Status    string             `json:"status" bson:"status"`
}

// OperationFileFields lists every named file attachment accepted by the
// create and update endpoints, in form-field order.
var OperationFileFields = []string{
	"jpo",
	"stblSSQ",
	"ssSSQ",
	"stblIndemnity",
	"ssIndemnity",
	"standingOrder",
	"stsEquipChecklistPriorOps",
	"stsEquipChecklistAfterOps",
	"checklist1",
	"checklist2",
	"checklist3AB",
	"checklist4AF",
	"checklist5AC",
	"checklist6AB",
	"checklist7",
	"stblMasterFeedback",
	"ssMasterFeedback",
	"stsTimesheet",
	"hourlyChecks",
	"incidentReporting",
}

// StsOperation is one version of a ship-to-ship transfer operation.
// All versions of the same logical operation share ParentOperationID;
// exactly one of them carries IsLatest. Old versions are never mutated.
type StsOperation struct {
	ID                primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	ParentOperationID primitive.ObjectID `json:"parentOperationId" bson:"parentOperationId"`
	Version           float64            `json:"version" bson:"version"`
	IsLatest          bool               `json:"isLatest" bson:"isLatest"`

	OperationRefNo  string           `json:"operationRefNo" bson:"operationRefNo"`
	TypeOfOperation string           `json:"typeOfOperation" bson:"typeOfOperation"`
	MooringMaster   string           `json:"mooringMaster" bson:"mooringMaster"`
	Location        string           `json:"location" bson:"location"`
	Client          string           `json:"client" bson:"client"`
	OperationStatus string           `json:"operationStatus" bson:"operationStatus"`
	StartTime       time.Time        `json:"operationStartTime" bson:"operationStartTime"`
	EndTime         *time.Time       `json:"operationEndTime,omitempty" bson:"operationEndTime,omitempty"`
	FlowDirection   string           `json:"flowDirection" bson:"flowDirection"`
	Quantity        float64          `json:"quantity" bson:"quantity"`
	TypeOfCargo     string           `json:"typeOfCargo" bson:"typeOfCargo"`
	Remarks         string           `json:"remarks" bson:"remarks"`
	Equipments      []EquipmentUsage `json:"equipments" bson:"equipments"`

	// Files maps a form field name from OperationFileFields to the
	// download URL of the stored document.
	Files map[string]string `json:"files" bson:"files"`

	CreatedBy string   `json:"createdBy" bson:"createdBy"`
	Metadata  Metadata `json:"metadata" bson:"metadata"`
}
