package services

import "fmt"

// Form-code prefixes per form family.
const (
	PrefixSubContractorAudit = "QAF-OFD"
	PrefixDrillPlan          = "QAF-OFD"
	PrefixSupplierDDQ        = "QAF-SDD"
	PrefixTrainingPlan       = "QAF-TRP"
	PrefixEquipmentDefect    = "QAF-DEF"
)

// FormCode renders a sequence number as a human-readable form code,
// e.g. ("QAF-OFD", 7) -> "QAF-OFD-007".
func FormCode(prefix string, seq int64) string {
	return fmt.Sprintf("%s-%03d", prefix, seq)
}
