package domain

// Overview summarises the content of the back-office.
type Overview struct {
	Admins         int64          `json:"admins"`
	Users          int64          `json:"users"`
	Accounts       int64          `json:"accounts"`
	Stocks         int64          `json:"stocks"`
	Items          int64          `json:"items"`
	AccountsByPlan map[Plan]int64 `json:"accountsByPlan"`
	MonthlyRevenue int64          `json:"monthlyRevenue"`
}

// MonthlyRevenue sums the plan price of every account.
func MonthlyRevenue(byPlan map[Plan]int64) int64 {
	var total int64
	for plan, n := range byPlan {
		total += plan.MonthlyPrice() * n
	}
	return total
}
