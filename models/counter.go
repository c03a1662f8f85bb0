package models

// Counter is a named sequence used for form-code generation. Seq only ever
// moves forward, one atomic increment per issued code.
type Counter struct {
	Key string `json:"key" bson:"key"`
	Seq int64  `json:"seq" bson:"seq"`
}

// Counter keys, one per form family.
const (
	CounterSubContractorAudit = "SUBCONTRACTOR_AUDIT"
	CounterSupplierDDQ        = "SUPPLIER_DDQ"
	CounterTrainingPlan       = "TRAINING_PLAN"
	CounterDrillPlan          = "DRILL_PLAN"
	CounterEquipmentDefect    = "EQUIPMENT_DEFECT"
)
