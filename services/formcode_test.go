package services

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormCode(t *testing.T) {
	assert.Equal(t, "QAF-OFD-001", FormCode(PrefixSubContractorAudit, 1))
	assert.Equal(t, "QAF-SDD-042", FormCode(PrefixSupplierDDQ, 42))
	assert.Equal(t, "QAF-TRP-007", FormCode(PrefixTrainingPlan, 7))
	assert.Equal(t, "QAF-DEF-100", FormCode(PrefixEquipmentDefect, 100))

	// Padding stops at three digits, the code keeps growing past 999.
	assert.Equal(t, "QAF-OFD-1000", FormCode(PrefixSubContractorAudit, 1000))
}

func TestFormCodePattern(t *testing.T) {
	pattern := regexp.MustCompile(`^QAF-OFD-\d{3}$`)
	for seq := int64(1); seq <= 999; seq += 111 {
		assert.Regexp(t, pattern, FormCode(PrefixDrillPlan, seq))
	}
}
