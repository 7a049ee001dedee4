package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// SaleType represents the pricing mode of a sale
type SaleType int

const (
	SaleTypeRetail    SaleType = 0
	SaleTypeWholesale SaleType = 1
	SaleTypeReturn    SaleType = 2
)

func (t SaleType) String() string {
	names := [...]string{"Retail", "Wholesale", "Return"}
	if int(t) < 0 || int(t) >= len(names) {
		return "Retail"
	}
	return names[t]
}

func (t SaleType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *SaleType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*t = SaleType(i)
		return nil
	}
	parsed, err := ParseSaleType(str)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// ParseSaleType maps the wire name of a sale type to its value
func ParseSaleType(s string) (SaleType, error) {
	switch s {
	case "Retail":
		return SaleTypeRetail, nil
	case "Wholesale":
		return SaleTypeWholesale, nil
	case "Return":
		return SaleTypeReturn, nil
	}
	return SaleTypeRetail, fmt.Errorf("unknown sale type %q", s)
}

func (t SaleType) Value() (driver.Value, error) {
	return int64(t), nil
}

func (t *SaleType) Scan(value interface{}) error {
	if value == nil {
		*t = SaleTypeRetail
		return nil
	}
	switch v := value.(type) {
	case int64:
		*t = SaleType(v)
	case int:
		*t = SaleType(v)
	}
	return nil
}
