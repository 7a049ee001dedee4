package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// DiscountType represents how a scheme's value is interpreted
type DiscountType int

const (
	DiscountTypePercentage DiscountType = 0
	DiscountTypeAmount     DiscountType = 1
)

func (t DiscountType) String() string {
	names := [...]string{"percentage", "amount"}
	if int(t) < 0 || int(t) >= len(names) {
		return "percentage"
	}
	return names[t]
}

func (t DiscountType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *DiscountType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*t = DiscountType(i)
		return nil
	}
	switch str {
	case "percentage":
		*t = DiscountTypePercentage
	case "amount":
		*t = DiscountTypeAmount
	default:
		return fmt.Errorf("unknown discount type %q", str)
	}
	return nil
}

func (t DiscountType) Value() (driver.Value, error) {
	return int64(t), nil
}

func (t *DiscountType) Scan(value interface{}) error {
	if value == nil {
		*t = DiscountTypePercentage
		return nil
	}
	switch v := value.(type) {
	case int64:
		*t = DiscountType(v)
	case int:
		*t = DiscountType(v)
	}
	return nil
}

// DiscountTarget represents what a scheme's target string is matched against
type DiscountTarget int

const (
	DiscountTargetProduct       DiscountTarget = 0
	DiscountTargetCategory      DiscountTarget = 1
	DiscountTargetCustomerGroup DiscountTarget = 2
)

func (t DiscountTarget) String() string {
	names := [...]string{"product", "category", "customer_group"}
	if int(t) < 0 || int(t) >= len(names) {
		return "product"
	}
	return names[t]
}

func (t DiscountTarget) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *DiscountTarget) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*t = DiscountTarget(i)
		return nil
	}
	switch str {
	case "product":
		*t = DiscountTargetProduct
	case "category":
		*t = DiscountTargetCategory
	case "customer_group":
		*t = DiscountTargetCustomerGroup
	default:
		return fmt.Errorf("unknown discount target %q", str)
	}
	return nil
}

func (t DiscountTarget) Value() (driver.Value, error) {
	return int64(t), nil
}

func (t *DiscountTarget) Scan(value interface{}) error {
	if value == nil {
		*t = DiscountTargetProduct
		return nil
	}
	switch v := value.(type) {
	case int64:
		*t = DiscountTarget(v)
	case int:
		*t = DiscountTarget(v)
	}
	return nil
}
