package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/stockpanel/admin-api/internal/core/domain"
	"github.com/stockpanel/admin-api/internal/core/ports"
	"github.com/stockpanel/admin-api/internal/pkg/metrics"
)

type ItemService struct {
	items  ports.ItemRepository
	stocks ports.StockRepository
	audit  ports.AuditSink
	logger zerolog.Logger
	now    func() time.Time
}

func NewItemService(items ports.ItemRepository, stocks ports.StockRepository, audit ports.AuditSink, logger zerolog.Logger) *ItemService {
	return &ItemService{items: items, stocks: stocks, audit: audit, logger: logger, now: time.Now}
}

// List returns every item with its stock reference. An empty inventory is
// reported as domain.ErrNoItems.
func (s *ItemService) List(ctx context.Context) ([]*domain.ItemView, error) {
	items, err := s.items.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, domain.ErrNoItems
	}
	return items, nil
}

// Search matches items by name. A blank query returns every item.
func (s *ItemService) Search(ctx context.Context, query string) ([]*domain.ItemView, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.items.List(ctx)
	}
	return s.items.Search(ctx, query)
}

// Delete removes the item and drops it from its stock.
func (s *ItemService) Delete(ctx context.Context, id, actorID string) error {
	if err := validID(id); err != nil {
		return err
	}
	item, err := s.items.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.items.Delete(ctx, id); err != nil {
		return err
	}
	if domain.IsValidID(item.Stock) {
		if err := s.stocks.PullItem(ctx, item.Stock, id); err != nil {
			return err
		}
	}

	metrics.ResourcesDeletedTotal.WithLabelValues("item").Inc()
	emit(s.audit, s.now, domain.AuditItemDeleted, id, actorID)
	s.logger.Info().Str("item_id", id).Str("actor_id", actorID).Msg("item deleted")
	return nil
}
