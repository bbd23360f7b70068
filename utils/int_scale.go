// SPDX-License-Identifier: EPL-2.0

package utils

// IntToFloat32 normalises a signed integer sample of the given bit depth to
// [-1,1). Unknown depths are treated as 16-bit.
func IntToFloat32(v int, bitDepth int) float32 {
	if bitDepth < 8 || bitDepth > 32 {
		bitDepth = 16
	}

	return float32(float64(v) / float64(int64(1)<<(bitDepth-1)))
}
