package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gomarket/market-system/internal/api/flash"
	"github.com/gomarket/market-system/internal/api/metrics"
	"github.com/gomarket/market-system/internal/api/render"
	"github.com/gomarket/market-system/internal/core/domain"
	"github.com/gomarket/market-system/internal/core/ports"
)

// TradeHandler serves the balance-moving routes: deposit, purchase and sale.
type TradeHandler struct {
	trades ports.TradeService
}

func NewTradeHandler(trades ports.TradeService) *TradeHandler {
	return &TradeHandler{trades: trades}
}

type addMoneyForm struct {
	Amount float64 `form:"amount" validate:"required,gt=0"`
}

// ShowAddMoney renders the deposit form.
func (h *TradeHandler) ShowAddMoney(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "add_money.html", render.NewPage(c, user))
}

// AddMoney credits the posted amount to the user's balance.
func (h *TradeHandler) AddMoney(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var form addMoneyForm
	if err := c.Bind(&form); err != nil {
		flash.Set(c, flash.LevelDanger, "Invalid form submission.")
		return c.Redirect(http.StatusSeeOther, "/add_money")
	}
	if err := c.Validate(&form); err != nil {
		flash.Set(c, flash.LevelDanger, err.Error())
		return c.Redirect(http.StatusSeeOther, "/add_money")
	}

	if _, err := h.trades.Deposit(c.Request().Context(), user, form.Amount); err != nil {
		if errors.Is(err, domain.ErrInvalidAmount) {
			flash.Set(c, flash.LevelDanger, "Amount must be positive.")
			return c.Redirect(http.StatusSeeOther, "/add_money")
		}
		return err
	}

	metrics.DepositsTotal.Inc()
	metrics.DepositAmountTotal.Add(form.Amount)
	flash.Set(c, flash.LevelSuccess, "Money added successfully!")
	return c.Redirect(http.StatusSeeOther, "/market")
}

// Purchase buys an unowned item off the market.
func (h *TradeHandler) Purchase(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	id, err := pathID(c)
	if err != nil {
		return err
	}

	if _, err := h.trades.Purchase(c.Request().Context(), user, id); err != nil {
		switch {
		case errors.Is(err, domain.ErrItemNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "item not found")
		case errors.Is(err, domain.ErrItemOwned):
			flash.Set(c, flash.LevelDanger, "Item already in another user's account.")
			return c.Redirect(http.StatusSeeOther, "/market")
		case errors.Is(err, domain.ErrInsufficientBalance):
			flash.Set(c, flash.LevelDanger, "Insufficient balance to purchase this item.")
			return c.Redirect(http.StatusSeeOther, "/market")
		}
		return err
	}

	metrics.PurchasesTotal.Inc()
	flash.Set(c, flash.LevelSuccess, "Item added to your account and balance updated!")
	return c.Redirect(http.StatusSeeOther, "/market")
}

// Sell returns an owned item to the market.
func (h *TradeHandler) Sell(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	id, err := pathID(c)
	if err != nil {
		return err
	}

	if _, err := h.trades.Sell(c.Request().Context(), user, id); err != nil {
		switch {
		case errors.Is(err, domain.ErrItemNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "item not found")
		case errors.Is(err, domain.ErrNotOwner):
			flash.Set(c, flash.LevelDanger, "You can only sell items you own.")
			return c.Redirect(http.StatusSeeOther, "/inventory")
		}
		return err
	}

	metrics.SalesTotal.Inc()
	flash.Set(c, flash.LevelSuccess, "Item sold successfully!")
	return c.Redirect(http.StatusSeeOther, "/inventory")
}
