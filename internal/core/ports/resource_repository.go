package ports

import (
	"context"

	"github.com/stockpanel/admin-api/internal/core/domain"
)

// UserRepository defines persistence for product users.
type UserRepository interface {
	List(ctx context.Context) ([]*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

// AccountRepository defines persistence for accounts. Detail reads resolve
// owner, managers and stocks→items.
type AccountRepository interface {
	List(ctx context.Context) ([]*domain.Account, error)
	FindByID(ctx context.Context, id string) (*domain.Account, error)
	FindDetail(ctx context.Context, id string) (*domain.AccountDetail, error)
	Delete(ctx context.Context, id string) error
	CountByOwner(ctx context.Context, userID string) (int64, error)
	CountByPlan(ctx context.Context) (map[domain.Plan]int64, error)
	PullManager(ctx context.Context, userID string) error
	PullStock(ctx context.Context, accountID, stockID string) error
	Count(ctx context.Context) (int64, error)
}

// StockRepository defines persistence for stocks.
type StockRepository interface {
	ListDetails(ctx context.Context) ([]*domain.StockDetail, error)
	FindByID(ctx context.Context, id string) (*domain.Stock, error)
	FindDetail(ctx context.Context, id string) (*domain.StockDetail, error)
	// IDsByAccount returns the ids of every stock referencing accountID.
	IDsByAccount(ctx context.Context, accountID string) ([]string, error)
	Delete(ctx context.Context, id string) error
	DeleteByIDs(ctx context.Context, ids []string) (int64, error)
	PullItem(ctx context.Context, stockID, itemID string) error
	Count(ctx context.Context) (int64, error)
}

// ItemRepository defines persistence for items.
type ItemRepository interface {
	List(ctx context.Context) ([]*domain.ItemView, error)
	// Search matches query case-insensitively against item names.
	Search(ctx context.Context, query string) ([]*domain.ItemView, error)
	FindByID(ctx context.Context, id string) (*domain.Item, error)
	Delete(ctx context.Context, id string) error
	DeleteByStocks(ctx context.Context, stockIDs []string) (int64, error)
	Count(ctx context.Context) (int64, error)
}
