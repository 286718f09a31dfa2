package utils

// Signed covers the numeric types grid and pixel math is done in.
type Signed interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 | ~float32 | ~float64
}

// Abs returns |x|.
func Abs[T Signed](x T) T {
	if x < 0 {
		return -x
	}
	return x
}
