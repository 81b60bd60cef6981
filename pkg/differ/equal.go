package differ

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
)

// Equal compares two prop values the way they would be stored. Values
// that serialize to the same JSON are equal, so an integer decoded as
// uint64 from YAML equals the int produced by a normalizer.
func Equal(a, b any) bool {
	if reflect.DeepEqual(a, b) {
		return true
	}
	ja, errA := json.Marshal(a)
	jb, errB := json.Marshal(b)
	if errA != nil || errB != nil {
		return false
	}
	return bytes.Equal(ja, jb)
}

// formatValue renders a value for change reports.
func formatValue(v any) string {
	if v == nil {
		return "<nil>"
	}
	if b, err := json.Marshal(v); err == nil {
		return truncateString(string(b), 50)
	}
	return fmt.Sprintf("%v", v)
}
