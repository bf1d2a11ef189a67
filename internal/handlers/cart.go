package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/mashop/storefront/internal/activity"
	"github.com/mashop/storefront/internal/cart"
	"github.com/mashop/storefront/internal/catalog"
	mwauth "github.com/mashop/storefront/internal/middleware/auth"
)

type CartHandler struct {
	Cart     *cart.Store
	Catalog  *catalog.Client
	Activity *activity.Recorder
}

func (h *CartHandler) GetCart(c echo.Context) error {
	sess, _ := mwauth.CurrentSession(c)
	ctx := c.Request().Context()

	items, err := h.Cart.Items(ctx, sess.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	count := 0
	for _, it := range items {
		count += it.Quantity
	}
	totals := cart.ComputeTotals(cart.Subtotal(items))

	return c.JSON(http.StatusOK, echo.Map{
		"items":    items,
		"count":    count,
		"subtotal": totals.Subtotal,
		"tax":      totals.Tax,
		"total":    totals.Total,
	})
}

// AddToCart snapshots the product from the remote catalog and merges it
// into the session's cart.
func (h *CartHandler) AddToCart(c echo.Context) error {
	sess, _ := mwauth.CurrentSession(c)

	var req struct {
		ProductID int `json:"product_id"`
		Quantity  int `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Quantity < 1 {
		req.Quantity = 1
	}

	res := h.Catalog.Product(c.Request().Context(), req.ProductID)
	if !res.Success {
		return echo.NewHTTPError(http.StatusBadGateway, res.Error)
	}

	item, err := h.Cart.AddItem(c.Request().Context(), sess.ID, res.Data, req.Quantity)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, item)
}

func (h *CartHandler) UpdateQuantity(c echo.Context) error {
	sess, _ := mwauth.CurrentSession(c)

	productID, err := strconv.Atoi(c.Param("productId"))
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	item, err := h.Cart.SetQuantity(c.Request().Context(), sess.ID, productID, req.Quantity)
	if err != nil {
		var stockErr *cart.InsufficientStockError
		switch {
		case errors.Is(err, cart.ErrQuantityTooLow), errors.As(err, &stockErr):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, gorm.ErrRecordNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "item not found")
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}
	return c.JSON(http.StatusOK, item)
}

func (h *CartHandler) RemoveFromCart(c echo.Context) error {
	sess, _ := mwauth.CurrentSession(c)

	productID, err := strconv.Atoi(c.Param("productId"))
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}

	if err := h.Cart.RemoveItem(c.Request().Context(), sess.ID, productID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"deleted_item": productID})
}

func (h *CartHandler) ClearCart(c echo.Context) error {
	sess, _ := mwauth.CurrentSession(c)

	if err := h.Cart.Clear(c.Request().Context(), sess.ID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CartHandler) Checkout(c echo.Context) error {
	sess, _ := mwauth.CurrentSession(c)

	order, items, err := h.Cart.Checkout(c.Request().Context(), sess.ID, sess.UserID, sess.Username)
	if err != nil {
		if errors.Is(err, cart.ErrEmptyCart) {
			return echo.NewHTTPError(http.StatusBadRequest, "Cart is empty")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	record(c, h.Activity, sess.Username, "checkout",
		fmt.Sprintf("User %s placed an order", sess.Username),
		echo.Map{"order": order, "items": items})

	return c.JSON(http.StatusOK, echo.Map{
		"order": order,
		"items": items,
	})
}

func (h *CartHandler) GetOrders(c echo.Context) error {
	sess, _ := mwauth.CurrentSession(c)
	ctx := c.Request().Context()

	orders, err := h.Cart.Orders(ctx, sess.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	type orderWithItems struct {
		Order any `json:"order"`
		Items any `json:"items"`
	}
	out := make([]orderWithItems, 0, len(orders))
	for _, o := range orders {
		items, err := h.Cart.OrderItems(ctx, o.ID)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		out = append(out, orderWithItems{Order: o, Items: items})
	}
	return c.JSON(http.StatusOK, out)
}
