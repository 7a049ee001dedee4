package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sellweave/pos-api/internal/domain/entity"
)

type fakeIdempotencyRepo struct {
	keys map[string]*entity.IdempotencyKey
}

func newFakeIdempotencyRepo() *fakeIdempotencyRepo {
	return &fakeIdempotencyRepo{keys: make(map[string]*entity.IdempotencyKey)}
}

func (f *fakeIdempotencyRepo) Create(_ context.Context, key *entity.IdempotencyKey) error {
	f.keys[key.Key+"/"+key.UserID.String()] = key
	return nil
}

func (f *fakeIdempotencyRepo) GetByKey(_ context.Context, key string, userID uuid.UUID) (*entity.IdempotencyKey, error) {
	return f.keys[key+"/"+userID.String()], nil
}

func (f *fakeIdempotencyRepo) DeleteExpired(_ context.Context) error {
	for k, v := range f.keys {
		if v.IsExpired() {
			delete(f.keys, k)
		}
	}
	return nil
}

func idempotencyRouter(repo *fakeIdempotencyRepo, userID uuid.UUID, status int, hits *int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/sales",
		func(c *gin.Context) { c.Set("user_id", userID) },
		IdempotencyRequired(IdempotencyConfig{Repo: repo}),
		func(c *gin.Context) {
			*hits++
			c.JSON(status, gin.H{"invoice_no": "INV-000001"})
		},
	)
	return r
}

func post(r *gin.Engine, key string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/sales", strings.NewReader("{}"))
	if key != "" {
		req.Header.Set(IdempotencyKeyHeader, key)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestIdempotencyRequiredMissingKey(t *testing.T) {
	hits := 0
	r := idempotencyRouter(newFakeIdempotencyRepo(), uuid.New(), 201, &hits)

	w := post(r, "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
	if hits != 0 {
		t.Errorf("handler ran %d times, want 0", hits)
	}
}

func TestIdempotencyRequiredReplaysStoredResponse(t *testing.T) {
	hits := 0
	repo := newFakeIdempotencyRepo()
	r := idempotencyRouter(repo, uuid.New(), 201, &hits)

	first := post(r, "retry-1")
	if first.Code != 201 {
		t.Fatalf("first status = %d, want 201", first.Code)
	}

	second := post(r, "retry-1")
	if second.Code != 201 {
		t.Fatalf("replay status = %d, want 201", second.Code)
	}
	if second.Header().Get("X-Idempotency-Replayed") != "true" {
		t.Error("replay marker header not set")
	}
	if second.Body.String() != first.Body.String() {
		t.Errorf("replay body = %s, want %s", second.Body.String(), first.Body.String())
	}
	if hits != 1 {
		t.Errorf("handler ran %d times, want 1", hits)
	}
}

func TestIdempotencyRequiredDoesNotStoreFailures(t *testing.T) {
	hits := 0
	repo := newFakeIdempotencyRepo()
	r := idempotencyRouter(repo, uuid.New(), 422, &hits)

	post(r, "retry-2")
	post(r, "retry-2")

	if hits != 2 {
		t.Errorf("handler ran %d times, want 2 (failed responses are retryable)", hits)
	}
	if len(repo.keys) != 0 {
		t.Errorf("stored %d keys, want 0", len(repo.keys))
	}
}

func TestIdempotencyRequiredIgnoresExpiredKey(t *testing.T) {
	hits := 0
	repo := newFakeIdempotencyRepo()
	userID := uuid.New()
	repo.keys["retry-3/"+userID.String()] = &entity.IdempotencyKey{
		Key:          "retry-3",
		UserID:       userID,
		ResponseCode: 201,
		ResponseBody: `{"invoice_no":"INV-000009"}`,
		ExpiresAt:    time.Now().Add(-time.Minute),
	}
	r := idempotencyRouter(repo, userID, 201, &hits)

	w := post(r, "retry-3")
	if w.Header().Get("X-Idempotency-Replayed") == "true" {
		t.Error("expired key must not replay")
	}
	if hits != 1 {
		t.Errorf("handler ran %d times, want 1", hits)
	}
}

func TestDeleteExpiredPurgesOnlyExpiredKeys(t *testing.T) {
	repo := newFakeIdempotencyRepo()
	userID := uuid.New()
	repo.keys["old/"+userID.String()] = &entity.IdempotencyKey{
		Key: "old", UserID: userID, ExpiresAt: time.Now().Add(-time.Minute),
	}
	repo.keys["live/"+userID.String()] = &entity.IdempotencyKey{
		Key: "live", UserID: userID, ExpiresAt: time.Now().Add(time.Hour),
	}

	if err := repo.DeleteExpired(context.Background()); err != nil {
		t.Fatalf("DeleteExpired() error = %v", err)
	}
	if _, ok := repo.keys["old/"+userID.String()]; ok {
		t.Error("expired key survived the purge")
	}
	if _, ok := repo.keys["live/"+userID.String()]; !ok {
		t.Error("live key was purged")
	}
}
