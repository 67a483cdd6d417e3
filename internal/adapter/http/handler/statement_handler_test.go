package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mdci-projets/bank-account/internal/adapter/http/dto"
	"github.com/mdci-projets/bank-account/internal/domain"
)

type statementServiceStub struct {
	generateFn func(ctx context.Context, id int64, from time.Time) (*domain.AccountStatement, error)
	recentFn   func(ctx context.Context, id int64) (*domain.AccountStatement, error)
}

func (s *statementServiceStub) GenerateAccountStatement(ctx context.Context, id int64, from time.Time) (*domain.AccountStatement, error) {
	return s.generateFn(ctx, id, from)
}

func (s *statementServiceStub) GetRecentStatement(ctx context.Context, id int64) (*domain.AccountStatement, error) {
	return s.recentFn(ctx, id)
}

func TestStatementHandler_Get(t *testing.T) {
	handler := NewStatementHandler(&statementServiceStub{
		generateFn: func(ctx context.Context, id int64, from time.Time) (*domain.AccountStatement, error) {
			want := time.Date(2024, 5, 1, 8, 30, 0, 0, time.UTC)
			if !from.Equal(want) {
				t.Fatalf("expected from %s, got %s", want, from)
			}
			return &domain.AccountStatement{AccountID: id, Lines: []domain.StatementLine{
				{Timestamp: want, Amount: decimal.NewFromInt(100), RunningBalance: decimal.NewFromInt(100)},
			}}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/accounts/654321/statement?from_date=2024-05-01T08:30:00", nil)
	req = setChiURLParam(req, "id", "654321")
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.StatementResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.AccountID != 654321 || len(resp.Lines) != 1 {
		t.Fatalf("unexpected statement: %+v", resp)
	}
}

func TestStatementHandler_Get_NoTransactions(t *testing.T) {
	handler := NewStatementHandler(&statementServiceStub{
		generateFn: func(ctx context.Context, id int64, from time.Time) (*domain.AccountStatement, error) {
			return nil, domain.ErrNoTransactionsFound
		},
	})

	req := setChiURLParam(httptest.NewRequest(http.MethodGet, "/accounts/654321/statement", nil), "id", "654321")
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestStatementHandler_Recent(t *testing.T) {
	called := false
	handler := NewStatementHandler(&statementServiceStub{
		recentFn: func(ctx context.Context, id int64) (*domain.AccountStatement, error) {
			called = true
			return &domain.AccountStatement{AccountID: id}, nil
		},
	})

	req := setChiURLParam(httptest.NewRequest(http.MethodGet, "/accounts/78965/statement/recent", nil), "id", "78965")
	rec := httptest.NewRecorder()

	handler.Recent(rec, req)

	if !called || rec.Code != http.StatusOK {
		t.Fatalf("expected recent statement, got called=%v status=%d", called, rec.Code)
	}
}
