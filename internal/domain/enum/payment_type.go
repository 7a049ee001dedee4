package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// PaymentType represents how a finalized sale was settled
type PaymentType int

const (
	PaymentTypeCash   PaymentType = 0
	PaymentTypeCard   PaymentType = 1
	PaymentTypeCredit PaymentType = 2
)

func (t PaymentType) String() string {
	names := [...]string{"cash", "card", "credit"}
	if int(t) < 0 || int(t) >= len(names) {
		return "cash"
	}
	return names[t]
}

func (t PaymentType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *PaymentType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*t = PaymentType(i)
		return nil
	}
	switch str {
	case "cash":
		*t = PaymentTypeCash
	case "card":
		*t = PaymentTypeCard
	case "credit":
		*t = PaymentTypeCredit
	default:
		return fmt.Errorf("unknown payment type %q", str)
	}
	return nil
}

func (t PaymentType) Value() (driver.Value, error) {
	return int64(t), nil
}

func (t *PaymentType) Scan(value interface{}) error {
	if value == nil {
		*t = PaymentTypeCash
		return nil
	}
	switch v := value.(type) {
	case int64:
		*t = PaymentType(v)
	case int:
		*t = PaymentType(v)
	}
	return nil
}
