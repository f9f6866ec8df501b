// Package policy holds the memory threshold decision logic.
package policy

// IsViolation reports whether usage exceeds the configured threshold.
// The comparison is strictly greater-than: usage equal to the threshold is
// within budget (inclusive ceiling).
func IsViolation(usageBytes, thresholdBytes uint64) bool {
	return usageBytes > thresholdBytes
}
