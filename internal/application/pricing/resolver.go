package pricing

import (
	"time"

	"github.com/sellweave/pos-api/internal/domain/entity"
	"github.com/sellweave/pos-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// LineInput carries the product attributes discount resolution needs
type LineInput struct {
	ProductName    string
	CategoryName   string
	SalesPrice     decimal.Decimal
	WholesalePrice decimal.Decimal
}

// Resolution is the outcome of resolving a line against the active schemes.
// SchemeName is nil when no scheme produced a positive discount.
type Resolution struct {
	UnitPrice  decimal.Decimal
	SchemeName *string
}

// Resolve returns the best applicable unit price for a line item and the
// scheme that produced it. Product-targeted schemes take strict precedence
// over category-targeted ones: the category tier is only consulted when no
// product scheme yields a positive discount. Within a tier the strictly
// greatest discount wins; ties keep the first scheme encountered.
//
// Resolve is pure: it is re-invoked whenever the sale type or the scheme set
// changes and must return the same result for the same inputs.
func Resolve(line LineInput, saleType enum.SaleType, schemes []entity.DiscountScheme, asOf time.Time) Resolution {
	base := basePrice(line, saleType)
	if !base.IsPositive() {
		return Resolution{UnitPrice: decimal.Zero}
	}

	var product, category []entity.DiscountScheme
	for _, s := range schemes {
		if !s.AppliesOn(asOf) {
			continue
		}
		switch {
		case s.AppliesTo == enum.DiscountTargetProduct && s.Target == line.ProductName:
			product = append(product, s)
		case s.AppliesTo == enum.DiscountTargetCategory && s.Target == line.CategoryName:
			category = append(category, s)
		}
	}

	winner, discount := bestScheme(product, base)
	if winner == nil {
		winner, discount = bestScheme(category, base)
	}
	if winner == nil {
		return Resolution{UnitPrice: base}
	}

	unitPrice := base.Sub(discount)
	if unitPrice.IsNegative() {
		unitPrice = decimal.Zero
	}
	name := winner.Name
	return Resolution{UnitPrice: unitPrice, SchemeName: &name}
}

// basePrice picks the unit price the sale type starts from. Wholesale falls
// back to the sales price when no wholesale price is set.
func basePrice(line LineInput, saleType enum.SaleType) decimal.Decimal {
	if saleType == enum.SaleTypeWholesale && line.WholesalePrice.IsPositive() {
		return line.WholesalePrice
	}
	return line.SalesPrice
}

// bestScheme returns the scheme with the strictly greatest positive discount
// within one precedence tier, or nil when none applies.
func bestScheme(tier []entity.DiscountScheme, base decimal.Decimal) (*entity.DiscountScheme, decimal.Decimal) {
	var winner *entity.DiscountScheme
	best := decimal.Zero
	for i := range tier {
		d := schemeDiscount(&tier[i], base)
		if d.GreaterThan(best) {
			winner = &tier[i]
			best = d
		}
	}
	return winner, best
}

// schemeDiscount computes the discount a single scheme yields on base,
// clamped so a scheme can never make the price negative.
func schemeDiscount(s *entity.DiscountScheme, base decimal.Decimal) decimal.Decimal {
	var d decimal.Decimal
	switch s.Type {
	case enum.DiscountTypePercentage:
		d = base.Mul(s.Value).Div(decimal.NewFromInt(100))
	case enum.DiscountTypeAmount:
		d = s.Value
	}
	if d.IsNegative() {
		return decimal.Zero
	}
	if d.GreaterThan(base) {
		return base
	}
	return d
}
