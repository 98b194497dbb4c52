package utils

// ConvertToFloat32 narrows an embedding returned as float64 by some SDKs.
func ConvertToFloat32(f []float64) []float32 {
	out := make([]float32, len(f))

	for i, v := range f {
		out[i] = float32(v)
	}

	return out
}
