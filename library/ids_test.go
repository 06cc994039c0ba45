package library

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIDFormatting(t *testing.T) {
	assert.Equal(t, "B42", BookID("42"))
	assert.Equal(t, "M7", MemberID("7"))
	assert.Equal(t, "T1", transactionID(1))
	assert.Equal(t, "T120", transactionID(120))
}

func TestValidDigits(t *testing.T) {
	assert.True(t, ValidDigits("0"))
	assert.True(t, ValidDigits("0012"))

	assert.False(t, ValidDigits(""))
	assert.False(t, ValidDigits("B1"))
	assert.False(t, ValidDigits("1 2"))
	assert.False(t, ValidDigits("-3"))
	assert.False(t, ValidDigits("１２")) // full-width digits
}
