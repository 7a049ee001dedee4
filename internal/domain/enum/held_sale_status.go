package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// HeldSaleStatus represents the persisted state of a parked sale.
// "expired" is derived at read time from expires_at; it is stored only
// when an expired hold is touched by a write path.
type HeldSaleStatus int

const (
	HeldSaleStatusHeld     HeldSaleStatus = 0
	HeldSaleStatusRecalled HeldSaleStatus = 1
	HeldSaleStatusExpired  HeldSaleStatus = 2
)

func (s HeldSaleStatus) String() string {
	names := [...]string{"held", "recalled", "expired"}
	if int(s) < 0 || int(s) >= len(names) {
		return "held"
	}
	return names[s]
}

func (s HeldSaleStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *HeldSaleStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = HeldSaleStatus(i)
		return nil
	}
	switch str {
	case "held":
		*s = HeldSaleStatusHeld
	case "recalled":
		*s = HeldSaleStatusRecalled
	case "expired":
		*s = HeldSaleStatusExpired
	default:
		return fmt.Errorf("unknown held sale status %q", str)
	}
	return nil
}

func (s HeldSaleStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *HeldSaleStatus) Scan(value interface{}) error {
	if value == nil {
		*s = HeldSaleStatusHeld
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = HeldSaleStatus(v)
	case int:
		*s = HeldSaleStatus(v)
	}
	return nil
}
