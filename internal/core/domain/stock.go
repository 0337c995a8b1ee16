package domain

import "time"

// Stock is an inventory belonging to an Account.
type Stock struct {
	ID      string   `json:"_id"`
	Account string   `json:"account"`
	Items   []string `json:"items"`
}

// StockDetail is a Stock with its items populated.
type StockDetail struct {
	ID      string `json:"_id"`
	Account string `json:"account"`
	Items   []Item `json:"items"`
}

// Item is a single inventory line held in a Stock.
type Item struct {
	ID        string    `json:"_id"`
	Stock     string    `json:"stock"`
	Name      string    `json:"name"`
	Quantity  int       `json:"quantity"`
	Price     float64   `json:"price"`
	CreatedAt time.Time `json:"createdAt"`
}

// StockRef is the populated stock reference of an Item. Only the id is
// resolved.
type StockRef struct {
	ID string `json:"_id"`
}

// ItemView is an Item whose stock reference has been resolved.
type ItemView struct {
	ID        string    `json:"_id"`
	Stock     *StockRef `json:"stock"`
	Name      string    `json:"name"`
	Quantity  int       `json:"quantity"`
	Price     float64   `json:"price"`
	CreatedAt time.Time `json:"createdAt"`
}
