package ports

import (
	"context"

	"github.com/stockpanel/admin-api/internal/core/domain"
)

// UserService exposes product users to admins.
type UserService interface {
	List(ctx context.Context) ([]*domain.User, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	Delete(ctx context.Context, id, actorID string) error
}

// AccountService exposes accounts with their nested stocks and items.
type AccountService interface {
	List(ctx context.Context) ([]*domain.Account, error)
	Get(ctx context.Context, id string) (*domain.AccountDetail, error)
	Delete(ctx context.Context, id, actorID string) error
}

// StockService exposes stocks with their items.
type StockService interface {
	List(ctx context.Context) ([]*domain.StockDetail, error)
	Get(ctx context.Context, id string) (*domain.StockDetail, error)
	Delete(ctx context.Context, id, actorID string) error
}

// ItemService exposes inventory items.
type ItemService interface {
	List(ctx context.Context) ([]*domain.ItemView, error)
	Search(ctx context.Context, query string) ([]*domain.ItemView, error)
	Delete(ctx context.Context, id, actorID string) error
}

// StatsService summarises the back-office content.
type StatsService interface {
	Overview(ctx context.Context) (*domain.Overview, error)
}
