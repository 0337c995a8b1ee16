package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stockpanel/admin-api/internal/core/domain"
	"github.com/stockpanel/admin-api/internal/core/ports"
)

// --- Users ---

type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// List returns every product user.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     SessionCookie
// @Success      200  {array}   domain.User
// @Router       /api/users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// Get returns one user.
//
// @Summary      Get user
// @Tags         users
// @Produce      json
// @Security     SessionCookie
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  domain.User
// @Failure      400  {object}  errorBody
// @Failure      404  {object}  errorBody
// @Router       /api/users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	user, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Delete removes a user that owns no account.
//
// @Summary      Delete user
// @Tags         users
// @Produce      json
// @Security     SessionCookie
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorBody
// @Failure      422  {object}  errorBody
// @Router       /api/users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context, claims *domain.SessionClaims) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id"), claims.ID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "user deleted"})
}

// --- Accounts ---

type AccountHandler struct {
	service ports.AccountService
}

func NewAccountHandler(service ports.AccountService) *AccountHandler {
	return &AccountHandler{service: service}
}

// List returns every account with unresolved references.
//
// @Summary      List accounts
// @Tags         accounts
// @Produce      json
// @Security     SessionCookie
// @Success      200  {array}   domain.Account
// @Router       /api/accounts [get]
func (h *AccountHandler) List(c echo.Context) error {
	accounts, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, accounts)
}

// Get returns an account with owner, managers and stocks→items populated.
//
// @Summary      Get account
// @Tags         accounts
// @Produce      json
// @Security     SessionCookie
// @Param        id   path      string  true  "Account id"
// @Success      200  {object}  domain.AccountDetail
// @Failure      400  {object}  errorBody
// @Failure      404  {object}  errorBody
// @Router       /api/accounts/{id} [get]
func (h *AccountHandler) Get(c echo.Context) error {
	account, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, account)
}

// Delete removes an account with its stocks and items.
//
// @Summary      Delete account
// @Tags         accounts
// @Produce      json
// @Security     SessionCookie
// @Param        id   path      string  true  "Account id"
// @Success      200  {object}  messageResponse
// @Failure      400  {object}  errorBody
// @Failure      404  {object}  errorBody
// @Router       /api/accounts/{id} [delete]
func (h *AccountHandler) Delete(c echo.Context, claims *domain.SessionClaims) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id"), claims.ID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "account deleted"})
}

// --- Stocks ---

type StockHandler struct {
	service ports.StockService
}

func NewStockHandler(service ports.StockService) *StockHandler {
	return &StockHandler{service: service}
}

// List returns every stock with its items.
//
// @Summary      List stocks
// @Tags         stocks
// @Produce      json
// @Security     SessionCookie
// @Success      200  {array}   domain.StockDetail
// @Router       /api/stocks [get]
func (h *StockHandler) List(c echo.Context) error {
	stocks, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stocks)
}

// Get returns a stock with its items.
//
// @Summary      Get stock
// @Tags         stocks
// @Produce      json
// @Security     SessionCookie
// @Param        id   path      string  true  "Stock id"
// @Success      200  {object}  domain.StockDetail
// @Failure      400  {object}  errorBody
// @Failure      404  {object}  errorBody
// @Router       /api/stocks/{id} [get]
func (h *StockHandler) Get(c echo.Context) error {
	stock, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stock)
}

// Delete removes a stock and its items.
//
// @Summary      Delete stock
// @Tags         stocks
// @Produce      json
// @Security     SessionCookie
// @Param        id   path      string  true  "Stock id"
// @Success      200  {object}  messageResponse
// @Failure      400  {object}  errorBody
// @Failure      404  {object}  errorBody
// @Router       /api/stocks/{id} [delete]
func (h *StockHandler) Delete(c echo.Context, claims *domain.SessionClaims) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id"), claims.ID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "stock deleted"})
}

// --- Items ---

type ItemHandler struct {
	service ports.ItemService
}

func NewItemHandler(service ports.ItemService) *ItemHandler {
	return &ItemHandler{service: service}
}

// List returns every item with its stock reference.
//
// @Summary      List items
// @Tags         items
// @Produce      json
// @Security     SessionCookie
// @Success      200  {array}   domain.ItemView
// @Failure      404  {object}  errorBody
// @Router       /api/items [get]
func (h *ItemHandler) List(c echo.Context) error {
	items, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// Search matches items by name, case-insensitively.
//
// @Summary      Search items
// @Tags         items
// @Produce      json
// @Security     SessionCookie
// @Param        query  query     string  false  "Name fragment"
// @Success      200    {array}   domain.ItemView
// @Router       /api/items/search [get]
func (h *ItemHandler) Search(c echo.Context) error {
	items, err := h.service.Search(c.Request().Context(), c.QueryParam("query"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// Delete removes an item.
//
// @Summary      Delete item
// @Tags         items
// @Produce      json
// @Security     SessionCookie
// @Param        id   path      string  true  "Item id"
// @Success      200  {object}  messageResponse
// @Failure      400  {object}  errorBody
// @Failure      404  {object}  errorBody
// @Router       /api/items/{id} [delete]
func (h *ItemHandler) Delete(c echo.Context, claims *domain.SessionClaims) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id"), claims.ID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "item deleted"})
}

// --- Stats ---

type StatsHandler struct {
	service ports.StatsService
}

func NewStatsHandler(service ports.StatsService) *StatsHandler {
	return &StatsHandler{service: service}
}

// Overview returns entity counts and monthly revenue.
//
// @Summary      Back-office overview
// @Tags         stats
// @Produce      json
// @Security     SessionCookie
// @Success      200  {object}  domain.Overview
// @Router       /api/stats [get]
func (h *StatsHandler) Overview(c echo.Context) error {
	o, err := h.service.Overview(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, o)
}
