package enum

import (
	"encoding/json"
	"testing"
)

func TestMovementTypeUnmarshalJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    MovementType
		wantErr bool
	}{
		{name: "in", input: `"in"`, want: MovementTypeIn},
		{name: "out", input: `"out"`, want: MovementTypeOut},
		{name: "numeric out", input: `1`, want: MovementTypeOut},
		{name: "unknown string rejected", input: `"sideways"`, wantErr: true},
		{name: "empty string rejected", input: `""`, wantErr: true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			var got MovementType
			err := json.Unmarshal([]byte(tc.input), &got)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("Unmarshal(%s) = %v, want error", tc.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unmarshal(%s) error = %v", tc.input, err)
			}
			if got != tc.want {
				t.Errorf("Unmarshal(%s) = %v, want %v", tc.input, got, tc.want)
			}
		})
	}
}

func TestSaleTypeUnmarshalJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    SaleType
		wantErr bool
	}{
		{name: "retail", input: `"Retail"`, want: SaleTypeRetail},
		{name: "wholesale", input: `"Wholesale"`, want: SaleTypeWholesale},
		{name: "return", input: `"Return"`, want: SaleTypeReturn},
		{name: "wrong case rejected", input: `"retail"`, wantErr: true},
		{name: "unknown string rejected", input: `"Clearance"`, wantErr: true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			var got SaleType
			err := json.Unmarshal([]byte(tc.input), &got)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("Unmarshal(%s) = %v, want error", tc.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unmarshal(%s) error = %v", tc.input, err)
			}
			if got != tc.want {
				t.Errorf("Unmarshal(%s) = %v, want %v", tc.input, got, tc.want)
			}
		})
	}
}

func TestPaymentTypeUnmarshalJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    PaymentType
		wantErr bool
	}{
		{name: "cash", input: `"cash"`, want: PaymentTypeCash},
		{name: "card", input: `"card"`, want: PaymentTypeCard},
		{name: "credit", input: `"credit"`, want: PaymentTypeCredit},
		{name: "unknown string rejected", input: `"cheque"`, wantErr: true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			var got PaymentType
			err := json.Unmarshal([]byte(tc.input), &got)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("Unmarshal(%s) = %v, want error", tc.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unmarshal(%s) error = %v", tc.input, err)
			}
			if got != tc.want {
				t.Errorf("Unmarshal(%s) = %v, want %v", tc.input, got, tc.want)
			}
		})
	}
}
