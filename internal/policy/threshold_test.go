package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestIsViolation_BelowThreshold verifies usage under the ceiling passes
func TestIsViolation_BelowThreshold(t *testing.T) {
	assert.False(t, IsViolation(100, 200))
}

// TestIsViolation_EqualThreshold verifies the ceiling is inclusive
func TestIsViolation_EqualThreshold(t *testing.T) {
	assert.False(t, IsViolation(1_048_576_000, 1_048_576_000))
}

// TestIsViolation_OneByteOver verifies strict excess triggers a violation
func TestIsViolation_OneByteOver(t *testing.T) {
	assert.True(t, IsViolation(1_048_576_001, 1_048_576_000))
}

// TestIsViolation_ZeroThreshold verifies any nonzero usage violates a zero budget
func TestIsViolation_ZeroThreshold(t *testing.T) {
	assert.True(t, IsViolation(1, 0))
	assert.False(t, IsViolation(0, 0))
}
