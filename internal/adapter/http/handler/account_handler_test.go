package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/smartvillage/accounting/internal/adapter/http/dto"
	"github.com/smartvillage/accounting/internal/domain"
	"github.com/smartvillage/accounting/internal/usecase"
)

type accountServiceStub struct {
	createFn    func(ctx context.Context, input usecase.CreateAccountInput) (*domain.Account, error)
	getFn       func(ctx context.Context, id string) (*domain.Account, error)
	getByCodeFn func(ctx context.Context, code string) (*domain.Account, error)
	listFn      func(ctx context.Context, accountType *domain.AccountType, onlyActive bool) ([]*domain.Account, error)
	deactivate  func(ctx context.Context, id string) error
	bootstrapFn func(ctx context.Context) (int, error)
}

func (s *accountServiceStub) CreateAccount(ctx context.Context, input usecase.CreateAccountInput) (*domain.Account, error) {
	return s.createFn(ctx, input)
}

func (s *accountServiceStub) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	return s.getFn(ctx, id)
}

func (s *accountServiceStub) GetAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	return s.getByCodeFn(ctx, code)
}

func (s *accountServiceStub) ListAccounts(ctx context.Context, accountType *domain.AccountType, onlyActive bool) ([]*domain.Account, error) {
	return s.listFn(ctx, accountType, onlyActive)
}

func (s *accountServiceStub) DeactivateAccount(ctx context.Context, id string) error {
	return s.deactivate(ctx, id)
}

func (s *accountServiceStub) Bootstrap(ctx context.Context) (int, error) {
	return s.bootstrapFn(ctx)
}

func TestAccountHandler_Create_Success(t *testing.T) {
	account := &domain.Account{
		ID:            "acc-1",
		Code:          "1112-01",
		Name:          "เงินฝากธนาคาร",
		Type:          domain.AccountTypeAsset,
		NormalBalance: domain.BalanceTypeDebit,
	}

	var captured usecase.CreateAccountInput
	handler := NewAccountHandler(&accountServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateAccountInput) (*domain.Account, error) {
			captured = input
			return account, nil
		},
	})

	body, _ := json.Marshal(dto.CreateAccountRequest{
		Code: "1112-01",
		Name: "เงินฝากธนาคาร",
		Type: "ASSET",
	})

	req := httptest.NewRequest(http.MethodPost, "/accounts", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	if captured.Code != "1112-01" || captured.Type != domain.AccountTypeAsset {
		t.Fatalf("expected input to match request, got %+v", captured)
	}

	var resp dto.AccountResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ID != "acc-1" {
		t.Fatalf("expected account ID acc-1, got %s", resp.ID)
	}
}

func TestAccountHandler_Create_InvalidJSON(t *testing.T) {
	handler := NewAccountHandler(&accountServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateAccountInput) (*domain.Account, error) {
			t.Fatal("CreateAccount should not be called for invalid payload")
			return nil, nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/accounts", bytes.NewBufferString("{invalid json"))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAccountHandler_Create_DuplicateCode(t *testing.T) {
	handler := NewAccountHandler(&accountServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateAccountInput) (*domain.Account, error) {
			return nil, domain.ErrDuplicateAccountCode
		},
	})

	body, _ := json.Marshal(dto.CreateAccountRequest{Code: "1112-01", Name: "dup", Type: "ASSET"})
	req := httptest.NewRequest(http.MethodPost, "/accounts", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestAccountHandler_Get_NotFound(t *testing.T) {
	handler := NewAccountHandler(&accountServiceStub{
		getFn: func(ctx context.Context, id string) (*domain.Account, error) {
			return nil, domain.ErrAccountNotFound
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/accounts/acc-1", nil)
	req = setChiURLParam(req, "id", "acc-1")
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestAccountHandler_List_TypeFilter(t *testing.T) {
	handler := NewAccountHandler(&accountServiceStub{
		listFn: func(ctx context.Context, accountType *domain.AccountType, onlyActive bool) ([]*domain.Account, error) {
			if accountType == nil || *accountType != domain.AccountTypeExpense {
				t.Fatalf("expected EXPENSE filter, got %v", accountType)
			}
			if !onlyActive {
				t.Fatalf("expected onlyActive by default")
			}
			return []*domain.Account{{ID: "acc-1"}, {ID: "acc-2"}}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/accounts?type=EXPENSE", nil)
	rec := httptest.NewRecorder()

	handler.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.ListAccountsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Accounts) != 2 {
		t.Fatalf("expected 2 accounts, got %d", len(resp.Accounts))
	}
}

func TestAccountHandler_Bootstrap(t *testing.T) {
	handler := NewAccountHandler(&accountServiceStub{
		bootstrapFn: func(ctx context.Context) (int, error) { return 12, nil },
	})

	req := httptest.NewRequest(http.MethodPost, "/accounts/bootstrap", nil)
	rec := httptest.NewRecorder()

	handler.Bootstrap(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.BootstrapResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Created != 12 {
		t.Fatalf("expected 12 created, got %d", resp.Created)
	}
}

func TestAccountHandler_Deactivate_ServiceError(t *testing.T) {
	handler := NewAccountHandler(&accountServiceStub{
		deactivate: func(ctx context.Context, id string) error { return errors.New("db error") },
	})

	req := httptest.NewRequest(http.MethodDelete, "/accounts/acc-1", nil)
	req = setChiURLParam(req, "id", "acc-1")
	rec := httptest.NewRecorder()

	handler.Deactivate(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

func setChiURLParam(r *http.Request, key, value string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, &chi.Context{
		URLParams: chi.RouteParams{
			Keys:   []string{key},
			Values: []string{value},
		},
	}))
}
