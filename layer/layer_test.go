package layer

import "testing"

func TestDimensionError(t *testing.T) {
	err := &DimensionError{Layer: "dense 16->1", Expected: 1, Found: 4}
	if err.Error() != "dense 16->1: dimension mismatch: expected 1, found 4" {
		t.Errorf("bad message: %s", err.Error())
	}
}
