package service

import (
	"context"

	"github.com/stockpanel/admin-api/internal/core/domain"
	"github.com/stockpanel/admin-api/internal/core/ports"
)

type StatsService struct {
	admins   ports.AdminRepository
	users    ports.UserRepository
	accounts ports.AccountRepository
	stocks   ports.StockRepository
	items    ports.ItemRepository
}

func NewStatsService(admins ports.AdminRepository, users ports.UserRepository, accounts ports.AccountRepository, stocks ports.StockRepository, items ports.ItemRepository) *StatsService {
	return &StatsService{admins: admins, users: users, accounts: accounts, stocks: stocks, items: items}
}

// Overview counts every collection and derives monthly revenue from the
// plan of each account.
func (s *StatsService) Overview(ctx context.Context) (*domain.Overview, error) {
	var (
		o   domain.Overview
		err error
	)
	counters := []struct {
		dst   *int64
		count func(context.Context) (int64, error)
	}{
		{&o.Admins, s.admins.Count},
		{&o.Users, s.users.Count},
		{&o.Accounts, s.accounts.Count},
		{&o.Stocks, s.stocks.Count},
		{&o.Items, s.items.Count},
	}
	for _, c := range counters {
		if *c.dst, err = c.count(ctx); err != nil {
			return nil, err
		}
	}

	if o.AccountsByPlan, err = s.accounts.CountByPlan(ctx); err != nil {
		return nil, err
	}
	o.MonthlyRevenue = domain.MonthlyRevenue(o.AccountsByPlan)
	return &o, nil
}
