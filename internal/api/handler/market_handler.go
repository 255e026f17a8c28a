package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gomarket/market-system/internal/api/render"
	"github.com/gomarket/market-system/internal/core/ports"
)

// MarketHandler serves the catalog listing pages: the public landing page,
// the authenticated market view and the per-user inventory.
type MarketHandler struct {
	catalog ports.CatalogService
}

func NewMarketHandler(catalog ports.CatalogService) *MarketHandler {
	return &MarketHandler{catalog: catalog}
}

// Home lists unowned items for everyone, signed in or not.
func (h *MarketHandler) Home(c echo.Context) error {
	items, err := h.catalog.ListMarket(c.Request().Context())
	if err != nil {
		return err
	}

	page := render.NewPage(c, ctxOptionalUser(c))
	page.Items = items
	return c.Render(http.StatusOK, "home.html", page)
}

// Market is the authenticated view over the same query as Home.
func (h *MarketHandler) Market(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	items, err := h.catalog.ListMarket(c.Request().Context())
	if err != nil {
		return err
	}

	page := render.NewPage(c, user)
	page.Items = items
	return c.Render(http.StatusOK, "market.html", page)
}

// Inventory lists the items the signed-in user owns.
func (h *MarketHandler) Inventory(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	items, err := h.catalog.ListInventory(c.Request().Context(), user)
	if err != nil {
		return err
	}

	page := render.NewPage(c, user)
	page.Items = items
	return c.Render(http.StatusOK, "inventory.html", page)
}
