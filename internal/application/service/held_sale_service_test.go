package service

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sellweave/pos-api/internal/domain/entity"
	"github.com/sellweave/pos-api/internal/domain/enum"
	"github.com/sellweave/pos-api/pkg/apperror"
)

// fakeHeldSaleRepo is an in-memory HeldSaleRepository with the same
// active-only recall semantics as the SQL implementation.
type fakeHeldSaleRepo struct {
	holds map[string]*entity.HeldSale
	seq   int
}

func newFakeHeldSaleRepo() *fakeHeldSaleRepo {
	return &fakeHeldSaleRepo{holds: make(map[string]*entity.HeldSale)}
}

func (f *fakeHeldSaleRepo) Create(_ context.Context, hold *entity.HeldSale) error {
	f.seq++
	hold.ID = uuid.New()
	hold.HoldID = fmt.Sprintf("HLD-%06d", f.seq)
	hold.CreatedAt = time.Now()
	cp := *hold
	f.holds[hold.HoldID] = &cp
	return nil
}

func (f *fakeHeldSaleRepo) GetByHoldID(_ context.Context, holdID string) (*entity.HeldSale, error) {
	h, ok := f.holds[holdID]
	if !ok {
		return nil, nil
	}
	cp := *h
	return &cp, nil
}

func (f *fakeHeldSaleRepo) ListActive(_ context.Context, terminalID string) ([]entity.HeldSale, error) {
	now := time.Now()
	var active []entity.HeldSale
	for _, h := range f.holds {
		if h.TerminalID == terminalID && h.IsActiveAt(now) {
			active = append(active, *h)
		}
	}
	return active, nil
}

func (f *fakeHeldSaleRepo) Recall(_ context.Context, holdID string) (*entity.HeldSale, error) {
	h, ok := f.holds[holdID]
	if !ok || !h.IsActiveAt(time.Now()) {
		return nil, apperror.NewNotFoundError("Active held sale")
	}
	h.Status = enum.HeldSaleStatusRecalled
	cp := *h
	return &cp, nil
}

func (f *fakeHeldSaleRepo) Delete(_ context.Context, holdID string) error {
	if _, ok := f.holds[holdID]; !ok {
		return apperror.NewNotFoundError("Held sale")
	}
	delete(f.holds, holdID)
	return nil
}

func validCart() json.RawMessage {
	return json.RawMessage(`{"items":[{"product_id":"p1","quantity":"2"}],"customer":null}`)
}

func TestHold(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   HoldInput
		wantErr bool
	}{
		{
			name:  "holds a valid cart",
			input: HoldInput{TerminalID: "T-01", UserID: uuid.New(), Cart: validCart(), Notes: "customer stepped out"},
		},
		{
			name:    "rejects missing terminal",
			input:   HoldInput{UserID: uuid.New(), Cart: validCart()},
			wantErr: true,
		},
		{
			name:    "rejects empty snapshot",
			input:   HoldInput{TerminalID: "T-01", UserID: uuid.New()},
			wantErr: true,
		},
		{
			name:    "rejects malformed JSON",
			input:   HoldInput{TerminalID: "T-01", UserID: uuid.New(), Cart: json.RawMessage(`{"items": [`)},
			wantErr: true,
		},
		{
			name:    "rejects cart with no line items",
			input:   HoldInput{TerminalID: "T-01", UserID: uuid.New(), Cart: json.RawMessage(`{"items":[]}`)},
			wantErr: true,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			svc := NewHeldSaleService(newFakeHeldSaleRepo(), 0)

			hold, err := svc.Hold(context.Background(), &tc.input)
			if tc.wantErr {
				if !apperror.IsKind(err, apperror.KindValidation) {
					t.Fatalf("expected validation error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if hold.HoldID == "" {
				t.Error("hold ID should be assigned")
			}
			if hold.Status != enum.HeldSaleStatusHeld {
				t.Errorf("status = %v, want held", hold.Status)
			}
			if string(hold.SaleData) != string(tc.input.Cart) {
				t.Error("snapshot should be stored verbatim")
			}

			wantExpiry := time.Now().Add(DefaultHoldDuration)
			if hold.ExpiresAt.Before(wantExpiry.Add(-time.Minute)) || hold.ExpiresAt.After(wantExpiry.Add(time.Minute)) {
				t.Errorf("expiry = %v, want about %v", hold.ExpiresAt, wantExpiry)
			}
		})
	}
}

func TestHoldUsesConfiguredDuration(t *testing.T) {
	t.Parallel()
	svc := NewHeldSaleService(newFakeHeldSaleRepo(), 2*time.Hour)

	hold, err := svc.Hold(context.Background(), &HoldInput{
		TerminalID: "T-01", UserID: uuid.New(), Cart: validCart(),
	})
	if err != nil {
		t.Fatalf("hold failed: %v", err)
	}

	wantExpiry := time.Now().Add(2 * time.Hour)
	if hold.ExpiresAt.Before(wantExpiry.Add(-time.Minute)) || hold.ExpiresAt.After(wantExpiry.Add(time.Minute)) {
		t.Errorf("expiry = %v, want about %v", hold.ExpiresAt, wantExpiry)
	}
}

func TestRecall(t *testing.T) {
	t.Parallel()
	repo := newFakeHeldSaleRepo()
	svc := NewHeldSaleService(repo, 0)

	cart := validCart()
	hold, err := svc.Hold(context.Background(), &HoldInput{
		TerminalID: "T-01", UserID: uuid.New(), Cart: cart,
	})
	if err != nil {
		t.Fatalf("hold failed: %v", err)
	}

	recalled, err := svc.Recall(context.Background(), hold.HoldID)
	if err != nil {
		t.Fatalf("recall failed: %v", err)
	}
	if string(recalled) != string(cart) {
		t.Error("recall should return the snapshot verbatim")
	}

	// The hold is consumed; a second recall loses.
	if _, err := svc.Recall(context.Background(), hold.HoldID); !apperror.IsKind(err, apperror.KindNotFound) {
		t.Fatalf("second recall should be not-found, got %v", err)
	}
}

func TestRecallExpiredHold(t *testing.T) {
	t.Parallel()
	repo := newFakeHeldSaleRepo()
	svc := NewHeldSaleService(repo, 0)

	hold, err := svc.Hold(context.Background(), &HoldInput{
		TerminalID: "T-01", UserID: uuid.New(), Cart: validCart(),
	})
	if err != nil {
		t.Fatalf("hold failed: %v", err)
	}
	repo.holds[hold.HoldID].ExpiresAt = time.Now().Add(-time.Minute)

	if _, err := svc.Recall(context.Background(), hold.HoldID); !apperror.IsKind(err, apperror.KindNotFound) {
		t.Fatalf("recall of expired hold should be not-found, got %v", err)
	}
}

func TestRecallUnknownHold(t *testing.T) {
	t.Parallel()
	svc := NewHeldSaleService(newFakeHeldSaleRepo(), 0)

	if _, err := svc.Recall(context.Background(), "HLD-000404"); !apperror.IsKind(err, apperror.KindNotFound) {
		t.Fatalf("expected not-found, got %v", err)
	}
}

func TestListActive(t *testing.T) {
	t.Parallel()
	repo := newFakeHeldSaleRepo()
	svc := NewHeldSaleService(repo, 0)

	active, err := svc.Hold(context.Background(), &HoldInput{TerminalID: "T-01", UserID: uuid.New(), Cart: validCart()})
	if err != nil {
		t.Fatalf("hold failed: %v", err)
	}
	expired, err := svc.Hold(context.Background(), &HoldInput{TerminalID: "T-01", UserID: uuid.New(), Cart: validCart()})
	if err != nil {
		t.Fatalf("hold failed: %v", err)
	}
	repo.holds[expired.HoldID].ExpiresAt = time.Now().Add(-time.Minute)

	recalled, err := svc.Hold(context.Background(), &HoldInput{TerminalID: "T-01", UserID: uuid.New(), Cart: validCart()})
	if err != nil {
		t.Fatalf("hold failed: %v", err)
	}
	if _, err := svc.Recall(context.Background(), recalled.HoldID); err != nil {
		t.Fatalf("recall failed: %v", err)
	}

	if _, err := svc.Hold(context.Background(), &HoldInput{TerminalID: "T-02", UserID: uuid.New(), Cart: validCart()}); err != nil {
		t.Fatalf("hold failed: %v", err)
	}

	holds, err := svc.ListActive(context.Background(), "T-01")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(holds) != 1 {
		t.Fatalf("active holds = %d, want 1", len(holds))
	}
	if holds[0].HoldID != active.HoldID {
		t.Errorf("active hold = %s, want %s", holds[0].HoldID, active.HoldID)
	}

	if _, err := svc.ListActive(context.Background(), ""); !apperror.IsKind(err, apperror.KindValidation) {
		t.Fatalf("expected validation error for missing terminal, got %v", err)
	}
}

func TestDeleteHold(t *testing.T) {
	t.Parallel()
	repo := newFakeHeldSaleRepo()
	svc := NewHeldSaleService(repo, 0)

	hold, err := svc.Hold(context.Background(), &HoldInput{TerminalID: "T-01", UserID: uuid.New(), Cart: validCart()})
	if err != nil {
		t.Fatalf("hold failed: %v", err)
	}

	// Delete works regardless of state, including already recalled holds.
	if _, err := svc.Recall(context.Background(), hold.HoldID); err != nil {
		t.Fatalf("recall failed: %v", err)
	}
	if err := svc.Delete(context.Background(), hold.HoldID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if err := svc.Delete(context.Background(), hold.HoldID); !apperror.IsKind(err, apperror.KindNotFound) {
		t.Fatalf("deleting an unknown hold should be not-found, got %v", err)
	}
}
