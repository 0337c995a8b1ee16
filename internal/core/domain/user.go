package domain

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User is a customer of the stock product. Users own and manage Accounts.
type User struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}
