package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/mashop/storefront/internal/catalog"
	mwauth "github.com/mashop/storefront/internal/middleware/auth"
	"github.com/mashop/storefront/internal/wishlist"
)

type WishlistHandler struct {
	Wishlist *wishlist.Store
	Catalog  *catalog.Client
}

func (h *WishlistHandler) GetWishlist(c echo.Context) error {
	sess, _ := mwauth.CurrentSession(c)

	entries, err := h.Wishlist.List(c.Request().Context(), sess.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, entries)
}

func (h *WishlistHandler) AddToWishlist(c echo.Context) error {
	sess, _ := mwauth.CurrentSession(c)

	var req struct {
		ProductID int `json:"product_id"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	res := h.Catalog.Product(c.Request().Context(), req.ProductID)
	if !res.Success {
		return echo.NewHTTPError(http.StatusBadGateway, res.Error)
	}

	entry, err := h.Wishlist.Add(c.Request().Context(), sess.ID, res.Data)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, entry)
}

func (h *WishlistHandler) RemoveFromWishlist(c echo.Context) error {
	sess, _ := mwauth.CurrentSession(c)

	productID, err := strconv.Atoi(c.Param("productId"))
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}

	if err := h.Wishlist.Remove(c.Request().Context(), sess.ID, productID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"deleted_item": productID})
}

// Contains backs the toggle-icon state on product cards.
func (h *WishlistHandler) Contains(c echo.Context) error {
	sess, _ := mwauth.CurrentSession(c)

	productID, err := strconv.Atoi(c.Param("productId"))
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}

	contains, err := h.Wishlist.Contains(c.Request().Context(), sess.ID, productID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"contains": contains})
}
