package entity

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func TestSaleMarshalRoundsMoney(t *testing.T) {
	t.Parallel()

	third := decimal.NewFromInt(1).Div(decimal.NewFromInt(3))
	sale := Sale{
		TaxAmount:  third,
		FinalTotal: decimal.NewFromInt(100),
		PaidAmount: decimal.RequireFromString("99.999"),
		Items: []SaleItem{
			{UnitPrice: decimal.NewFromInt(2).Div(decimal.NewFromInt(3)), LineTotal: decimal.NewFromInt(2)},
		},
	}

	raw, err := json.Marshal(sale)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	var got struct {
		TaxAmount  string `json:"tax_amount"`
		FinalTotal string `json:"final_total"`
		PaidAmount string `json:"paid_amount"`
		Items      []struct {
			UnitPrice string `json:"unit_price"`
			LineTotal string `json:"line_total"`
		} `json:"items"`
	}
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if got.TaxAmount != "0.33" {
		t.Errorf("tax_amount = %q, want %q", got.TaxAmount, "0.33")
	}
	if got.FinalTotal != "100.00" {
		t.Errorf("final_total = %q, want %q", got.FinalTotal, "100.00")
	}
	if got.PaidAmount != "100.00" {
		t.Errorf("paid_amount = %q, want %q", got.PaidAmount, "100.00")
	}
	if len(got.Items) != 1 {
		t.Fatalf("items = %d, want 1", len(got.Items))
	}
	if got.Items[0].UnitPrice != "0.67" {
		t.Errorf("unit_price = %q, want %q", got.Items[0].UnitPrice, "0.67")
	}
	if got.Items[0].LineTotal != "2.00" {
		t.Errorf("line_total = %q, want %q", got.Items[0].LineTotal, "2.00")
	}
}

func TestRegisterSessionMarshalRoundsMoney(t *testing.T) {
	t.Parallel()

	open := RegisterSession{
		OpeningBalance: decimal.RequireFromString("1000.005"),
		TotalSales:     decimal.RequireFromString("512.3456"),
	}
	raw, err := json.Marshal(open)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	var got struct {
		OpeningBalance string  `json:"opening_balance"`
		ClosingBalance *string `json:"closing_balance"`
		TotalSales     string  `json:"total_sales"`
	}
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if got.OpeningBalance != "1000.01" {
		t.Errorf("opening_balance = %q, want %q", got.OpeningBalance, "1000.01")
	}
	if got.ClosingBalance != nil {
		t.Errorf("closing_balance = %q, want null", *got.ClosingBalance)
	}
	if got.TotalSales != "512.35" {
		t.Errorf("total_sales = %q, want %q", got.TotalSales, "512.35")
	}

	closed := open
	closed.ClosingBalance = decimal.NewNullDecimal(decimal.RequireFromString("1600"))
	raw, err = json.Marshal(closed)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if got.ClosingBalance == nil || *got.ClosingBalance != "1600.00" {
		t.Errorf("closing_balance = %v, want %q", got.ClosingBalance, "1600.00")
	}
}

func TestCashMovementMarshalRoundsMoney(t *testing.T) {
	t.Parallel()

	m := CashMovement{Amount: decimal.RequireFromString("49.999")}
	raw, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	var got struct {
		Amount string `json:"amount"`
	}
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if got.Amount != "50.00" {
		t.Errorf("amount = %q, want %q", got.Amount, "50.00")
	}
}
