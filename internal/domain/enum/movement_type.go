package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// MovementType represents the direction of a cash movement
type MovementType int

const (
	MovementTypeIn  MovementType = 0
	MovementTypeOut MovementType = 1
)

func (t MovementType) String() string {
	names := [...]string{"in", "out"}
	if int(t) < 0 || int(t) >= len(names) {
		return "in"
	}
	return names[t]
}

// IsValid reports whether the value is one of the known directions
func (t MovementType) IsValid() bool {
	return t == MovementTypeIn || t == MovementTypeOut
}

func (t MovementType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *MovementType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*t = MovementType(i)
		return nil
	}
	switch str {
	case "in":
		*t = MovementTypeIn
	case "out":
		*t = MovementTypeOut
	default:
		return fmt.Errorf("unknown movement type %q", str)
	}
	return nil
}

func (t MovementType) Value() (driver.Value, error) {
	return int64(t), nil
}

func (t *MovementType) Scan(value interface{}) error {
	if value == nil {
		*t = MovementTypeIn
		return nil
	}
	switch v := value.(type) {
	case int64:
		*t = MovementType(v)
	case int:
		*t = MovementType(v)
	}
	return nil
}
