package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/finledger/internal/adapter/http/dto"
	"github.com/iho/finledger/internal/domain"
	"github.com/iho/finledger/internal/usecase"
	"github.com/iho/finledger/internal/usecase/mocks"
)

func newTransferHandler(accountRepo *mocks.MockAccountRepository, categoryRepo *mocks.MockCategoryRepository) *TransferHandler {
	guard := usecase.NewIdempotencyGuard(mocks.NewMockOperationLogRepository(), mocks.NewMockIDGenerator())

	uc := usecase.NewTransferUseCase(
		mocks.NewMockTransactionManager(),
		accountRepo,
		mocks.NewMockTransactionRepository(),
		categoryRepo,
		mocks.NewMockAuditRepository(),
		guard,
		mocks.NewMockIDGenerator(),
		mocks.NewMockIDGenerator(),
		nil,
	)

	return NewTransferHandler(uc)
}

func TestTransferHandler_Create(t *testing.T) {
	accountRepo := mocks.NewMockAccountRepository()
	accountRepo.Seed(&domain.Account{ID: "acc-a", Name: "A", Type: domain.AccountTypeChecking, Balance: decimal.NewFromInt(100), IsActive: true})
	accountRepo.Seed(&domain.Account{ID: "acc-b", Name: "B", Type: domain.AccountTypeChecking, Balance: decimal.NewFromInt(50), IsActive: true})

	h := newTransferHandler(accountRepo, mocks.NewMockCategoryRepository())

	body, _ := json.Marshal(dto.CreateTransferRequest{
		SourceAccountID:      "acc-a",
		DestinationAccountID: "acc-b",
		CategoryID:           "cat-1",
		Amount:               decimal.NewFromInt(30),
		Date:                 time.Now(),
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/transfers", bytes.NewReader(body))
	rr := httptest.NewRecorder()

	h.Create(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp dto.TransferResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.TransferGroupID == "" || resp.Debit == nil || resp.Credit == nil {
		t.Fatalf("incomplete transfer response: %+v", resp)
	}

	if resp.Debit.TransferGroupID == nil || *resp.Debit.TransferGroupID != resp.TransferGroupID {
		t.Fatalf("debit not linked to transfer group")
	}
}

func TestTransferHandler_CreateSameAccount(t *testing.T) {
	accountRepo := mocks.NewMockAccountRepository()
	accountRepo.Seed(&domain.Account{ID: "acc-a", Name: "A", Type: domain.AccountTypeChecking, Balance: decimal.NewFromInt(100), IsActive: true})

	h := newTransferHandler(accountRepo, mocks.NewMockCategoryRepository())

	body, _ := json.Marshal(dto.CreateTransferRequest{
		SourceAccountID:      "acc-a",
		DestinationAccountID: "acc-a",
		Amount:               decimal.NewFromInt(30),
		Date:                 time.Now(),
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/transfers", bytes.NewReader(body))
	rr := httptest.NewRecorder()

	h.Create(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestTransferHandler_CreateInvalidBody(t *testing.T) {
	h := newTransferHandler(mocks.NewMockAccountRepository(), mocks.NewMockCategoryRepository())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/transfers", bytes.NewBufferString("{"))
	rr := httptest.NewRecorder()

	h.Create(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestTransferHandler_PayInvoice(t *testing.T) {
	accountRepo := mocks.NewMockAccountRepository()
	accountRepo.Seed(&domain.Account{ID: "acc-debit", Name: "Checking", Type: domain.AccountTypeChecking, Balance: decimal.NewFromInt(2000), IsActive: true})
	accountRepo.Seed(&domain.Account{
		ID:       "acc-card",
		Name:     "Card",
		Type:     domain.AccountTypeCreditCard,
		Balance:  decimal.NewFromInt(-1500),
		IsActive: true,
		CreditCard: &domain.CreditCardDetails{
			CreditLimit:    decimal.NewFromInt(5000),
			ClosingDay:     5,
			DueDay:         15,
			DebitAccountID: "acc-debit",
		},
	})

	categoryRepo := mocks.NewMockCategoryRepository()
	categoryRepo.Categories = []*domain.Category{
		{ID: "cat-invoice", Name: domain.SystemCategoryInvoicePayment, IsSystem: true},
	}

	h := newTransferHandler(accountRepo, categoryRepo)

	body, _ := json.Marshal(dto.PayInvoiceRequest{
		CreditCardAccountID: "acc-card",
		Amount:              decimal.NewFromInt(1500),
		CompetenceDate:      time.Now().Add(-time.Hour),
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/transfers/pay-invoice", bytes.NewReader(body))
	rr := httptest.NewRecorder()

	h.PayInvoice(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp dto.TransferResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.Debit.AccountID != "acc-debit" || resp.Credit.AccountID != "acc-card" {
		t.Fatalf("unexpected transfer direction: %+v", resp)
	}
}
