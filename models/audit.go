package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"oceansms/workflow"
)

// Signer is a signed-off party on a due-diligence form.
type Signer struct {
	Name        string     `json:"name" bson:"name"`
	Designation string     `json:"designation" bson:"designation"`
	SignedAt    *time.Time `json:"signedAt" bson:"signedAt"`
}

// SubContractorAudit is the QHSE due-diligence audit of a sub-contractor.
// It moves Draft -> Submitted -> Approved and carries a form code assigned
// once at creation.
type SubContractorAudit struct {
	ID       primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	FormCode string             `json:"formCode" bson:"formCode"`
	Status   workflow.Status    `json:"status" bson:"status"`

	SubcontractorName    string   `json:"subcontractorName" bson:"subcontractorName"`
	SubcontractorAddress string   `json:"subcontractorAddress" bson:"subcontractorAddress"`
	ServiceType          string   `json:"serviceType" bson:"serviceType"`
	ContactPerson        string   `json:"contactPerson" bson:"contactPerson"`
	EmailOfContactPerson string   `json:"emailOfContactPerson" bson:"emailOfContactPerson"`
	PhoneOfContactPerson string   `json:"phoneOfContactPerson" bson:"phoneOfContactPerson"`
	OperatingAreas       []string `json:"operatingAreas" bson:"operatingAreas"`

	// Compliance questions. Pointers distinguish "not answered" from "No".
	TradeLicenseCopyAvailable *bool  `json:"tradeLicenseCopyAvailable" bson:"tradeLicenseCopyAvailable"`
	HasHSEPolicy              *bool  `json:"hasHSEPolicy" bson:"hasHSEPolicy"`
	AuditsSubcontractors      *bool  `json:"auditsSubcontractors" bson:"auditsSubcontractors"`
	HasInsurance              *bool  `json:"hasInsurance" bson:"hasInsurance"`
	InsuranceDetails          string `json:"insuranceDetails" bson:"insuranceDetails"`

	ISOCertifications    []string `json:"isoCertifications" bson:"isoCertifications"`
	AuditCompletedBy     *Signer  `json:"auditCompletedBy" bson:"auditCompletedBy"`
	ContractorApprovedBy *Signer  `json:"contractorApprovedBy" bson:"contractorApprovedBy"`

	ApprovedBy string     `json:"approvedBy,omitempty" bson:"approvedBy,omitempty"`
	ApprovedAt *time.Time `json:"approvedAt,omitempty" bson:"approvedAt,omitempty"`
	CreatedBy  string     `json:"createdBy" bson:"createdBy"`
	Metadata   Metadata   `json:"metadata" bson:"metadata"`
}

// SubContractorAuditPatch is the partial update payload for a draft audit.
// Workflow fields (status, form code, approval) are not accepted here.
type SubContractorAuditPatch struct {
	SubcontractorName    *string   `json:"subcontractorName"`
	SubcontractorAddress *string   `json:"subcontractorAddress"`
	ServiceType          *string   `json:"serviceType"`
	ContactPerson        *string   `json:"contactPerson"`
	EmailOfContactPerson *string   `json:"emailOfContactPerson"`
	PhoneOfContactPerson *string   `json:"phoneOfContactPerson"`
	OperatingAreas       *[]string `json:"operatingAreas"`

	TradeLicenseCopyAvailable *bool   `json:"tradeLicenseCopyAvailable"`
	HasHSEPolicy              *bool   `json:"hasHSEPolicy"`
	AuditsSubcontractors      *bool   `json:"auditsSubcontractors"`
	HasInsurance              *bool   `json:"hasInsurance"`
	InsuranceDetails          *string `json:"insuranceDetails"`

	ISOCertifications    *[]string `json:"isoCertifications"`
	AuditCompletedBy     *Signer   `json:"auditCompletedBy"`
	ContractorApprovedBy *Signer   `json:"contractorApprovedBy"`
}
