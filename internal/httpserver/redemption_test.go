package httpserver

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"loyalty-exchange/internal/domain"
	"loyalty-exchange/internal/service/exchange"
	"loyalty-exchange/internal/vtex"
)

// happyStoreAPI answers every platform call with a plausible success.
type happyStoreAPI struct{}

func (happyStoreAPI) VerifyAccount(context.Context, string) (string, error) {
	return "profile-123", nil
}

func (happyStoreAPI) Search(context.Context, string, string, string) ([]map[string]interface{}, error) {
	return []map[string]interface{}{{"id": "rec-9", "bCluster": "M"}}, nil
}

func (happyStoreAPI) CreateAccount(context.Context, vtex.NewAccount) (*vtex.Document, error) {
	return &vtex.Document{ID: "CL-doc"}, nil
}

func (happyStoreAPI) CreateAddress(context.Context, vtex.NewAddress) (*vtex.Document, error) {
	return &vtex.Document{ID: "AD-doc"}, nil
}

func (happyStoreAPI) SaveAccount(context.Context, vtex.AccountUpdate) error { return nil }

func (happyStoreAPI) GiftCardCreate(context.Context, vtex.GiftCardRequest) (*vtex.GiftCard, error) {
	return &vtex.GiftCard{ID: "gc-1"}, nil
}

func (happyStoreAPI) GiftCardAddPoints(context.Context, string, vtex.GiftCardCredit) (map[string]interface{}, error) {
	return map[string]interface{}{"balance": float64(50000)}, nil
}

type stubRedemptionRepo struct {
	created []domain.Redemption
	listErr error
}

func (r *stubRedemptionRepo) Create(_ context.Context, rec domain.Redemption) (*domain.Redemption, error) {
	rec.ID = int64(len(r.created) + 1)
	r.created = append(r.created, rec)
	clone := rec
	return &clone, nil
}

func (r *stubRedemptionRepo) ListByClient(_ context.Context, clientID int64) ([]domain.Redemption, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	var out []domain.Redemption
	for _, rec := range r.created {
		if rec.ClientID == clientID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func discardLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func testRouter(repo *stubRedemptionRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := exchange.New(happyStoreAPI{}, repo, nil)
	return buildRouter(discardLogger(), nil, Deps{ExchangeSvc: svc, RedemptionRepo: repo})
}

func TestRedeemEndpoint_Success(t *testing.T) {
	repo := &stubRedemptionRepo{}
	router := testRouter(repo)

	body := `{
		"client": {
			"id": 42,
			"name": "Maria da Silva",
			"email": "maria@example.com",
			"cpf": "12345678901",
			"cellphone": "11999998888",
			"points": 500
		},
		"points": 500
	}`
	req := httptest.NewRequest(http.MethodPost, "/redemptions", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var result exchange.Result
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if !result.Success {
		t.Fatalf("expected success, got %q", result.Message)
	}
	if len(repo.created) != 1 {
		t.Fatalf("expected 1 persisted redemption, got %d", len(repo.created))
	}
}

func TestRedeemEndpoint_BusinessFailureStillHTTP200(t *testing.T) {
	router := testRouter(&stubRedemptionRepo{})

	// 10.4 points on file, 20 requested.
	body := `{
		"client": {"id": 42, "name": "Maria", "email": "maria@example.com", "points": 10.4},
		"points": 20
	}`
	req := httptest.NewRequest(http.MethodPost, "/redemptions", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var result exchange.Result
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if result.Success || !strings.Contains(result.Message, "11") {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestRedeemEndpoint_BadPayload(t *testing.T) {
	router := testRouter(&stubRedemptionRepo{})

	req := httptest.NewRequest(http.MethodPost, "/redemptions", strings.NewReader(`{"points": 0}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestListRedemptions(t *testing.T) {
	repo := &stubRedemptionRepo{created: []domain.Redemption{
		{ID: 1, ClientID: 42, Name: "Maria", Type: domain.RedemptionTypeStore, Points: 500, Value: 500},
		{ID: 2, ClientID: 7, Name: "Other", Type: domain.RedemptionTypeStore, Points: 10, Value: 10},
	}}
	router := testRouter(repo)

	req := httptest.NewRequest(http.MethodGet, "/clients/42/redemptions", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var payload struct {
		Redemptions []domain.Redemption `json:"redemptions"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(payload.Redemptions) != 1 || payload.Redemptions[0].ClientID != 42 {
		t.Fatalf("unexpected payload %+v", payload)
	}
}

func TestListRedemptions_InvalidID(t *testing.T) {
	router := testRouter(&stubRedemptionRepo{})

	req := httptest.NewRequest(http.MethodGet, "/clients/abc/redemptions", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}
