package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"oceansms/workflow"
)

// SupplierDetails is the identity block of a due-diligence questionnaire.
type SupplierDetails struct {
	InchargeNameAndCompany string `json:"inchargeNameAndCompany" bson:"inchargeNameAndCompany"`
	ContactDetails         string `json:"contactDetails" bson:"contactDetails"`
	Address                string `json:"address" bson:"address"`
}

// SupplierDueDiligence is the supplier due-diligence questionnaire.
// Same Draft -> Submitted -> Approved lifecycle as the sub-contractor audit.
type SupplierDueDiligence struct {
	ID       primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	FormCode string             `json:"formCode" bson:"formCode"`
	Status   workflow.Status    `json:"status" bson:"status"`

	SupplierDetails SupplierDetails   `json:"supplierDetails" bson:"supplierDetails"`
	Answers         map[string]string `json:"answers" bson:"answers"`
	Remarks         string            `json:"remarks" bson:"remarks"`

	ApprovedBy string     `json:"approvedBy,omitempty" bson:"approvedBy,omitempty"`
	ApprovedAt *time.Time `json:"approvedAt,omitempty" bson:"approvedAt,omitempty"`
	CreatedBy  string     `json:"createdBy" bson:"createdBy"`
	Metadata   Metadata   `json:"metadata" bson:"metadata"`
}

// SupplierDueDiligencePatch is the partial update payload for a draft
// questionnaire.
type SupplierDueDiligencePatch struct {
	SupplierDetails *SupplierDetails   `json:"supplierDetails"`
	Answers         *map[string]string `json:"answers"`
	Remarks         *string            `json:"remarks"`
}
