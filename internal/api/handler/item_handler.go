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

// ItemHandler serves the item detail/edit page and the admin catalog
// management routes.
type ItemHandler struct {
	catalog ports.CatalogService
}

func NewItemHandler(catalog ports.CatalogService) *ItemHandler {
	return &ItemHandler{catalog: catalog}
}

type itemForm struct {
	Name        string  `form:"name" validate:"required"`
	Price       float64 `form:"price" validate:"gte=0"`
	Barcode     string  `form:"barcode" validate:"required"`
	Description string  `form:"description" validate:"required"`
}

func (f itemForm) input() ports.ItemInput {
	return ports.ItemInput{
		Name:        f.Name,
		Price:       f.Price,
		Barcode:     f.Barcode,
		Description: f.Description,
	}
}

// Show renders the item detail page with the edit form prefilled.
func (h *ItemHandler) Show(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	id, err := pathID(c)
	if err != nil {
		return err
	}

	item, err := h.catalog.GetItem(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrItemNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "item not found")
		}
		return err
	}

	page := render.NewPage(c, user)
	page.Item = item
	return c.Render(http.StatusOK, "item_detail.html", page)
}

// Edit overwrites the item's mutable fields.
func (h *ItemHandler) Edit(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	id, err := pathID(c)
	if err != nil {
		return err
	}

	var form itemForm
	if err := c.Bind(&form); err != nil {
		flash.Set(c, flash.LevelDanger, "Invalid form submission.")
		return c.Redirect(http.StatusSeeOther, itemPath(c))
	}
	if err := c.Validate(&form); err != nil {
		flash.Set(c, flash.LevelDanger, err.Error())
		return c.Redirect(http.StatusSeeOther, itemPath(c))
	}

	_, err = h.catalog.EditItem(c.Request().Context(), user, id, form.input())
	if err != nil {
		if msg, handled := itemWriteError(err); handled {
			flash.Set(c, flash.LevelDanger, msg)
			return c.Redirect(http.StatusSeeOther, itemPath(c))
		}
		return err
	}

	flash.Set(c, flash.LevelSuccess, "Item updated successfully!")
	return c.Redirect(http.StatusSeeOther, "/market")
}

// ShowAdd renders the admin item-creation form.
func (h *ItemHandler) ShowAdd(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "add_item.html", render.NewPage(c, user))
}

// Add creates a new unowned catalog item.
func (h *ItemHandler) Add(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var form itemForm
	if err := c.Bind(&form); err != nil {
		flash.Set(c, flash.LevelDanger, "Invalid form submission.")
		return c.Redirect(http.StatusSeeOther, "/add_item")
	}
	if err := c.Validate(&form); err != nil {
		flash.Set(c, flash.LevelDanger, err.Error())
		return c.Redirect(http.StatusSeeOther, "/add_item")
	}

	_, err = h.catalog.AddItem(c.Request().Context(), user, form.input())
	if err != nil {
		if msg, handled := itemWriteError(err); handled {
			flash.Set(c, flash.LevelDanger, msg)
			return c.Redirect(http.StatusSeeOther, "/add_item")
		}
		return err
	}

	metrics.ItemsCreatedTotal.Inc()
	flash.Set(c, flash.LevelSuccess, "Item added successfully!")
	return c.Redirect(http.StatusSeeOther, "/market")
}

// Delete hard-deletes an item.
func (h *ItemHandler) Delete(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.catalog.DeleteItem(c.Request().Context(), user, id); err != nil {
		switch {
		case errors.Is(err, domain.ErrItemNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "item not found")
		case errors.Is(err, domain.ErrForbidden):
			flash.Set(c, flash.LevelDanger, "You cannot delete this item.")
			return c.Redirect(http.StatusSeeOther, "/market")
		}
		return err
	}

	metrics.ItemsDeletedTotal.Inc()
	flash.Set(c, flash.LevelSuccess, "Item deleted successfully!")
	return c.Redirect(http.StatusSeeOther, "/market")
}

// itemWriteError maps domain errors from add/edit onto flash messages.
// The bool reports whether the error was handled.
func itemWriteError(err error) (string, bool) {
	switch {
	case errors.Is(err, domain.ErrItemNotFound):
		return "Item not found.", true
	case errors.Is(err, domain.ErrForbidden):
		return "You cannot edit this item.", true
	case errors.Is(err, domain.ErrItemNameTaken):
		return "An item with that name already exists.", true
	case errors.Is(err, domain.ErrBarcodeTaken):
		return "An item with that barcode already exists.", true
	case errors.Is(err, domain.ErrInvalidPrice), errors.Is(err, domain.ErrInvalidInput):
		return "Please fill in all fields correctly.", true
	}
	return "", false
}

func itemPath(c echo.Context) string {
	return "/item/" + c.Param("id")
}
