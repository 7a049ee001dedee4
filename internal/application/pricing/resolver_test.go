package pricing

import (
	"testing"
	"time"

	"github.com/sellweave/pos-api/internal/domain/entity"
	"github.com/sellweave/pos-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func pctScheme(name, target string, appliesTo enum.DiscountTarget, value string) entity.DiscountScheme {
	return entity.DiscountScheme{
		Name:      name,
		Type:      enum.DiscountTypePercentage,
		Value:     dec(value),
		AppliesTo: appliesTo,
		Target:    target,
		Active:    true,
	}
}

func amountScheme(name, target string, appliesTo enum.DiscountTarget, value string) entity.DiscountScheme {
	return entity.DiscountScheme{
		Name:      name,
		Type:      enum.DiscountTypeAmount,
		Value:     dec(value),
		AppliesTo: appliesTo,
		Target:    target,
		Active:    true,
	}
}

func TestResolve(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	line := LineInput{
		ProductName:  "Espresso Beans 1kg",
		CategoryName: "Coffee",
		SalesPrice:   dec("1000"),
	}

	tests := []struct {
		name       string
		line       LineInput
		saleType   enum.SaleType
		schemes    []entity.DiscountScheme
		wantPrice  string
		wantScheme string // empty means no scheme expected
	}{
		{
			name:      "no schemes keeps base price",
			line:      line,
			saleType:  enum.SaleTypeRetail,
			wantPrice: "1000",
		},
		{
			name:     "ten percent off",
			line:     line,
			saleType: enum.SaleTypeRetail,
			schemes: []entity.DiscountScheme{
				pctScheme("Summer Sale", "Espresso Beans 1kg", enum.DiscountTargetProduct, "10"),
			},
			wantPrice:  "900",
			wantScheme: "Summer Sale",
		},
		{
			name: "amount discount clamped at base price",
			line: LineInput{
				ProductName: "Filter Papers",
				SalesPrice:  dec("500"),
			},
			saleType: enum.SaleTypeRetail,
			schemes: []entity.DiscountScheme{
				amountScheme("Clearance", "Filter Papers", enum.DiscountTargetProduct, "700"),
			},
			wantPrice:  "0",
			wantScheme: "Clearance",
		},
		{
			name:     "product scheme beats bigger category scheme",
			line:     line,
			saleType: enum.SaleTypeRetail,
			schemes: []entity.DiscountScheme{
				pctScheme("Category Blowout", "Coffee", enum.DiscountTargetCategory, "50"),
				pctScheme("Beans Deal", "Espresso Beans 1kg", enum.DiscountTargetProduct, "5"),
			},
			wantPrice:  "950",
			wantScheme: "Beans Deal",
		},
		{
			name:     "category tier used when no product scheme matches",
			line:     line,
			saleType: enum.SaleTypeRetail,
			schemes: []entity.DiscountScheme{
				pctScheme("Coffee Week", "Coffee", enum.DiscountTargetCategory, "20"),
			},
			wantPrice:  "800",
			wantScheme: "Coffee Week",
		},
		{
			name:     "category tier used when product scheme yields zero discount",
			line:     line,
			saleType: enum.SaleTypeRetail,
			schemes: []entity.DiscountScheme{
				pctScheme("Zero Promo", "Espresso Beans 1kg", enum.DiscountTargetProduct, "0"),
				pctScheme("Coffee Week", "Coffee", enum.DiscountTargetCategory, "20"),
			},
			wantPrice:  "800",
			wantScheme: "Coffee Week",
		},
		{
			name:     "greatest discount wins within a tier",
			line:     line,
			saleType: enum.SaleTypeRetail,
			schemes: []entity.DiscountScheme{
				pctScheme("Small", "Espresso Beans 1kg", enum.DiscountTargetProduct, "5"),
				amountScheme("Big", "Espresso Beans 1kg", enum.DiscountTargetProduct, "150"),
			},
			wantPrice:  "850",
			wantScheme: "Big",
		},
		{
			name:     "tie keeps first encountered",
			line:     line,
			saleType: enum.SaleTypeRetail,
			schemes: []entity.DiscountScheme{
				pctScheme("First", "Espresso Beans 1kg", enum.DiscountTargetProduct, "10"),
				amountScheme("Second", "Espresso Beans 1kg", enum.DiscountTargetProduct, "100"),
			},
			wantPrice:  "900",
			wantScheme: "First",
		},
		{
			name:     "inactive scheme ignored",
			line:     line,
			saleType: enum.SaleTypeRetail,
			schemes: []entity.DiscountScheme{
				{
					Name:      "Disabled",
					Type:      enum.DiscountTypePercentage,
					Value:     dec("10"),
					AppliesTo: enum.DiscountTargetProduct,
					Target:    "Espresso Beans 1kg",
					Active:    false,
				},
			},
			wantPrice: "1000",
		},
		{
			name:     "customer group scheme not matched against lines",
			line:     line,
			saleType: enum.SaleTypeRetail,
			schemes: []entity.DiscountScheme{
				pctScheme("VIP", "Espresso Beans 1kg", enum.DiscountTargetCustomerGroup, "30"),
			},
			wantPrice: "1000",
		},
		{
			name: "wholesale uses wholesale price",
			line: LineInput{
				ProductName:    "Espresso Beans 1kg",
				SalesPrice:     dec("1000"),
				WholesalePrice: dec("800"),
			},
			saleType:  enum.SaleTypeWholesale,
			wantPrice: "800",
		},
		{
			name: "wholesale falls back to sales price",
			line: LineInput{
				ProductName: "Espresso Beans 1kg",
				SalesPrice:  dec("1000"),
			},
			saleType:  enum.SaleTypeWholesale,
			wantPrice: "1000",
		},
		{
			name: "non-positive base price resolves to zero",
			line: LineInput{
				ProductName: "Broken Item",
				SalesPrice:  decimal.Zero,
			},
			saleType: enum.SaleTypeRetail,
			schemes: []entity.DiscountScheme{
				pctScheme("Anything", "Broken Item", enum.DiscountTargetProduct, "10"),
			},
			wantPrice: "0",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := Resolve(tc.line, tc.saleType, tc.schemes, now)
			if !got.UnitPrice.Equal(dec(tc.wantPrice)) {
				t.Errorf("unit price = %s, want %s", got.UnitPrice, tc.wantPrice)
			}
			if tc.wantScheme == "" {
				if got.SchemeName != nil {
					t.Errorf("expected no scheme, got %q", *got.SchemeName)
				}
			} else {
				if got.SchemeName == nil {
					t.Fatalf("expected scheme %q, got none", tc.wantScheme)
				}
				if *got.SchemeName != tc.wantScheme {
					t.Errorf("scheme = %q, want %q", *got.SchemeName, tc.wantScheme)
				}
			}
		})
	}
}

func TestResolveDateWindow(t *testing.T) {
	t.Parallel()

	line := LineInput{ProductName: "Espresso Beans 1kg", SalesPrice: dec("100")}
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)

	scheme := pctScheme("June Only", "Espresso Beans 1kg", enum.DiscountTargetProduct, "10")
	scheme.StartDate = &start
	scheme.EndDate = &end

	tests := []struct {
		name      string
		asOf      time.Time
		wantPrice string
	}{
		{"before window", time.Date(2025, 5, 31, 23, 0, 0, 0, time.UTC), "100"},
		{"first day inclusive", time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), "90"},
		{"inside window", time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC), "90"},
		{"last day inclusive", time.Date(2025, 6, 30, 18, 0, 0, 0, time.UTC), "90"},
		{"after window", time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC), "100"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := Resolve(line, enum.SaleTypeRetail, []entity.DiscountScheme{scheme}, tc.asOf)
			if !got.UnitPrice.Equal(dec(tc.wantPrice)) {
				t.Errorf("unit price = %s, want %s", got.UnitPrice, tc.wantPrice)
			}
		})
	}

	t.Run("nil bounds are unbounded", func(t *testing.T) {
		t.Parallel()
		open := pctScheme("Evergreen", "Espresso Beans 1kg", enum.DiscountTargetProduct, "10")
		got := Resolve(line, enum.SaleTypeRetail, []entity.DiscountScheme{open}, time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC))
		if !got.UnitPrice.Equal(dec("90")) {
			t.Errorf("unit price = %s, want 90", got.UnitPrice)
		}
	})
}

// Resolved unit prices always stay within [0, basePrice]
func TestResolveUnitPriceBounds(t *testing.T) {
	t.Parallel()

	now := time.Now()
	line := LineInput{ProductName: "P", CategoryName: "C", SalesPrice: dec("250")}

	schemes := []entity.DiscountScheme{
		pctScheme("p0", "P", enum.DiscountTargetProduct, "0"),
		pctScheme("p50", "P", enum.DiscountTargetProduct, "50"),
		pctScheme("p100", "P", enum.DiscountTargetProduct, "100"),
		pctScheme("p150", "P", enum.DiscountTargetProduct, "150"),
		amountScheme("a1", "P", enum.DiscountTargetProduct, "1"),
		amountScheme("a249", "P", enum.DiscountTargetProduct, "249"),
		amountScheme("a9999", "P", enum.DiscountTargetProduct, "9999"),
		pctScheme("c75", "C", enum.DiscountTargetCategory, "75"),
	}

	for _, s := range schemes {
		got := Resolve(line, enum.SaleTypeRetail, []entity.DiscountScheme{s}, now)
		if got.UnitPrice.IsNegative() {
			t.Errorf("scheme %s produced negative price %s", s.Name, got.UnitPrice)
		}
		if got.UnitPrice.GreaterThan(line.SalesPrice) {
			t.Errorf("scheme %s raised price to %s", s.Name, got.UnitPrice)
		}
	}
}

// Resolve must be idempotent and side-effect-free
func TestResolveIdempotent(t *testing.T) {
	t.Parallel()

	now := time.Now()
	line := LineInput{ProductName: "P", SalesPrice: dec("100")}
	schemes := []entity.DiscountScheme{
		pctScheme("Deal", "P", enum.DiscountTargetProduct, "25"),
	}

	first := Resolve(line, enum.SaleTypeRetail, schemes, now)
	second := Resolve(line, enum.SaleTypeRetail, schemes, now)

	if !first.UnitPrice.Equal(second.UnitPrice) {
		t.Errorf("prices differ across calls: %s vs %s", first.UnitPrice, second.UnitPrice)
	}
	if (first.SchemeName == nil) != (second.SchemeName == nil) {
		t.Fatal("scheme presence differs across calls")
	}
	if first.SchemeName != nil && *first.SchemeName != *second.SchemeName {
		t.Errorf("schemes differ across calls: %q vs %q", *first.SchemeName, *second.SchemeName)
	}
}
