package domain

// Plan is the subscription tier of an Account.
type Plan string

const (
	PlanFree     Plan = "Free"
	PlanPro      Plan = "Pro"
	PlanBusiness Plan = "Business"
)

// planPrices holds the monthly price of each plan in whole dollars.
var planPrices = map[Plan]int64{
	PlanFree:     0,
	PlanPro:      19,
	PlanBusiness: 50,
}

// MonthlyPrice returns the monthly price of the plan. Unknown plans are free.
func (p Plan) MonthlyPrice() int64 {
	return planPrices[p]
}

// Account groups the stocks of a customer. Owner, Managers and Stocks hold
// referenced ids.
type Account struct {
	ID       string   `json:"_id"`
	Name     string   `json:"name"`
	Plan     Plan     `json:"plan"`
	Owner    string   `json:"owner"`
	Managers []string `json:"managers"`
	Stocks   []string `json:"stocks"`
}

// OwnerRef is the populated owner of an Account. Only the email is resolved.
type OwnerRef struct {
	ID    string `json:"_id"`
	Email string `json:"email"`
}

// AccountDetail is an Account with its references resolved.
type AccountDetail struct {
	ID       string        `json:"_id"`
	Name     string        `json:"name"`
	Plan     Plan          `json:"plan"`
	Owner    *OwnerRef     `json:"owner"`
	Managers []User        `json:"managers"`
	Stocks   []StockDetail `json:"stocks"`
}
