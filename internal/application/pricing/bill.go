package pricing

import (
	"github.com/google/uuid"
	"github.com/sellweave/pos-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

// BillLine is a priced cart line ready for aggregation. SpecialDiscount is
// the scheme-derived discount over the full line (quantity already applied);
// it is re-derived whenever quantity changes, never accumulated.
type BillLine struct {
	ProductID       uuid.UUID
	ProductName     string
	SchemeName      *string
	Quantity        decimal.Decimal
	MRP             decimal.Decimal
	BaseUnitPrice   decimal.Decimal
	SpecialDiscount decimal.Decimal
}

// UnitListDiscount is the static list-price discount (MRP vs. selling price),
// floored at zero when the selling price exceeds MRP.
func (l BillLine) UnitListDiscount() decimal.Decimal {
	d := l.MRP.Sub(l.BaseUnitPrice)
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// LineTotal is the payable amount for the line, floored at zero
func (l BillLine) LineTotal() decimal.Decimal {
	t := l.BaseUnitPrice.Mul(l.Quantity).Sub(l.SpecialDiscount)
	if t.IsNegative() {
		return decimal.Zero
	}
	return t
}

// Adjustments are the bill-level inputs applied after line aggregation
type Adjustments struct {
	TaxRatePercent decimal.Decimal
	BillDiscount   decimal.Decimal
	Shipping       decimal.Decimal
}

// BillTotals is the immutable aggregate of a cart. All values retain full
// precision; rounding to 2 decimal places happens only at the JSON boundary.
type BillTotals struct {
	SubtotalAtMRP         decimal.Decimal
	TotalItemDiscounts    decimal.Decimal
	TotalSpecialDiscounts decimal.Decimal
	TotalBillDiscount     decimal.Decimal
	TaxAmount             decimal.Decimal
	NetItemTotal          decimal.Decimal
	FinalTotal            decimal.Decimal
}

// Calculate aggregates a cart into a totals object. It is a pure function of
// its inputs and raises only validation errors for malformed numeric input.
//
// FinalTotal is deliberately not asserted non-negative here: a return may
// legitimately produce a negative balance. Whether that is allowed for a
// given sale type is the orchestrator's decision.
func Calculate(lines []BillLine, adj Adjustments) (BillTotals, error) {
	if adj.TaxRatePercent.IsNegative() {
		return BillTotals{}, apperror.NewValidationError("Tax rate cannot be negative")
	}
	if adj.BillDiscount.IsNegative() {
		return BillTotals{}, apperror.NewValidationError("Bill discount cannot be negative")
	}
	if adj.Shipping.IsNegative() {
		return BillTotals{}, apperror.NewValidationError("Shipping amount cannot be negative")
	}

	var totals BillTotals
	for _, l := range lines {
		if l.Quantity.IsNegative() {
			return BillTotals{}, apperror.NewValidationError("Quantity cannot be negative")
		}
		if l.MRP.IsNegative() || l.BaseUnitPrice.IsNegative() {
			return BillTotals{}, apperror.NewValidationError("Price cannot be negative")
		}
		if l.SpecialDiscount.IsNegative() {
			return BillTotals{}, apperror.NewValidationError("Special discount cannot be negative")
		}

		totals.SubtotalAtMRP = totals.SubtotalAtMRP.Add(l.MRP.Mul(l.Quantity))
		totals.TotalItemDiscounts = totals.TotalItemDiscounts.Add(l.UnitListDiscount().Mul(l.Quantity))
		totals.TotalSpecialDiscounts = totals.TotalSpecialDiscounts.Add(l.SpecialDiscount)
		totals.NetItemTotal = totals.NetItemTotal.Add(l.LineTotal())
	}

	totals.TotalBillDiscount = adj.BillDiscount
	totals.TaxAmount = totals.NetItemTotal.Mul(adj.TaxRatePercent).Div(decimal.NewFromInt(100))
	totals.FinalTotal = totals.NetItemTotal.
		Add(totals.TaxAmount).
		Sub(adj.BillDiscount).
		Add(adj.Shipping)

	return totals, nil
}
