package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/stockpanel/admin-api/internal/core/domain"
	"github.com/stockpanel/admin-api/internal/core/ports"
	"github.com/stockpanel/admin-api/internal/pkg/metrics"
)

type StockService struct {
	stocks   ports.StockRepository
	accounts ports.AccountRepository
	items    ports.ItemRepository
	audit    ports.AuditSink
	logger   zerolog.Logger
	now      func() time.Time
}

func NewStockService(stocks ports.StockRepository, accounts ports.AccountRepository, items ports.ItemRepository, audit ports.AuditSink, logger zerolog.Logger) *StockService {
	return &StockService{stocks: stocks, accounts: accounts, items: items, audit: audit, logger: logger, now: time.Now}
}

func (s *StockService) List(ctx context.Context) ([]*domain.StockDetail, error) {
	return s.stocks.ListDetails(ctx)
}

// Get returns the stock with its items. A stock whose account no longer
// exists is reported as a missing account.
func (s *StockService) Get(ctx context.Context, id string) (*domain.StockDetail, error) {
	if err := validID(id); err != nil {
		return nil, err
	}
	stock, err := s.stocks.FindDetail(ctx, id)
	if err != nil {
		return nil, err
	}

	if !domain.IsValidID(stock.Account) {
		return nil, domain.ErrAccountNotFound
	}
	if _, err := s.accounts.FindByID(ctx, stock.Account); err != nil {
		return nil, err
	}
	return stock, nil
}

// Delete removes the stock and its items, then drops it from its account.
func (s *StockService) Delete(ctx context.Context, id, actorID string) error {
	if err := validID(id); err != nil {
		return err
	}
	stock, err := s.stocks.FindByID(ctx, id)
	if err != nil {
		return err
	}

	items, err := s.items.DeleteByStocks(ctx, []string{id})
	if err != nil {
		return err
	}
	if err := s.stocks.Delete(ctx, id); err != nil {
		return err
	}
	if domain.IsValidID(stock.Account) {
		if err := s.accounts.PullStock(ctx, stock.Account, id); err != nil {
			return err
		}
	}

	metrics.ResourcesDeletedTotal.WithLabelValues("item").Add(float64(items))
	metrics.ResourcesDeletedTotal.WithLabelValues("stock").Inc()
	emit(s.audit, s.now, domain.AuditStockDeleted, id, actorID)
	s.logger.Info().Str("stock_id", id).Str("actor_id", actorID).Int64("items", items).Msg("stock deleted")
	return nil
}
