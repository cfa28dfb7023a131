package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsStudentCategory(t *testing.T) {
	for _, category := range []string{"undergraduate", "continuing_education", "phd_candidate", "international_exchange"} {
		assert.True(t, IsStudentCategory(category), category)
	}
	for _, category := range []string{"", "postdoc", "Undergraduate", "phd"} {
		assert.False(t, IsStudentCategory(category), category)
	}
}

func TestIsIdentifier(t *testing.T) {
	assert.True(t, IsIdentifier("STU202400042"))
	assert.True(t, IsIdentifier("STF202500001"))
	assert.False(t, IsIdentifier("stu202400042"))
	assert.False(t, IsIdentifier("STU2024"))
	assert.False(t, IsIdentifier("42"))
}
