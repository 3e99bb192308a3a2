package layer

import "fmt"

// DimensionError reports stored parameters whose dimension does not match the layer.
type DimensionError struct {
	Layer    string
	Expected int
	Found    int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("%s: dimension mismatch: expected %d, found %d", e.Layer, e.Expected, e.Found)
}
