package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/stockpanel/admin-api/internal/core/domain"
	"github.com/stockpanel/admin-api/internal/core/ports"
	"github.com/stockpanel/admin-api/internal/pkg/metrics"
)

type AccountService struct {
	accounts ports.AccountRepository
	stocks   ports.StockRepository
	items    ports.ItemRepository
	audit    ports.AuditSink
	logger   zerolog.Logger
	now      func() time.Time
}

func NewAccountService(accounts ports.AccountRepository, stocks ports.StockRepository, items ports.ItemRepository, audit ports.AuditSink, logger zerolog.Logger) *AccountService {
	return &AccountService{accounts: accounts, stocks: stocks, items: items, audit: audit, logger: logger, now: time.Now}
}

func (s *AccountService) List(ctx context.Context) ([]*domain.Account, error) {
	return s.accounts.List(ctx)
}

// Get returns the account with owner, managers and stocks→items resolved.
func (s *AccountService) Get(ctx context.Context, id string) (*domain.AccountDetail, error) {
	if err := validID(id); err != nil {
		return nil, err
	}
	return s.accounts.FindDetail(ctx, id)
}

// Delete removes the account together with its stocks and their items.
// Stocks are those pointing at the account plus those the account lists;
// items and stocks are deleted over that same set before the account.
func (s *AccountService) Delete(ctx context.Context, id, actorID string) error {
	if err := validID(id); err != nil {
		return err
	}
	account, err := s.accounts.FindByID(ctx, id)
	if err != nil {
		return err
	}

	stockIDs, err := s.stocks.IDsByAccount(ctx, id)
	if err != nil {
		return err
	}
	stockIDs = mergeIDs(stockIDs, account.Stocks)

	items, err := s.items.DeleteByStocks(ctx, stockIDs)
	if err != nil {
		return err
	}
	stocks, err := s.stocks.DeleteByIDs(ctx, stockIDs)
	if err != nil {
		return err
	}
	if err := s.accounts.Delete(ctx, id); err != nil {
		return err
	}

	metrics.ResourcesDeletedTotal.WithLabelValues("item").Add(float64(items))
	metrics.ResourcesDeletedTotal.WithLabelValues("stock").Add(float64(stocks))
	metrics.ResourcesDeletedTotal.WithLabelValues("account").Inc()
	emit(s.audit, s.now, domain.AuditAccountDeleted, id, actorID)
	s.logger.Info().
		Str("account_id", id).
		Str("actor_id", actorID).
		Int64("stocks", stocks).
		Int64("items", items).
		Msg("account deleted")
	return nil
}

// mergeIDs returns the union of a and the valid ids of b, keeping order.
func mergeIDs(a, b []string) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, ids := range [][]string{a, b} {
		for _, id := range ids {
			if _, ok := seen[id]; ok || !domain.IsValidID(id) {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	return out
}
