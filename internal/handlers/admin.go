package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/mashop/storefront/internal/activity"
	"github.com/mashop/storefront/internal/catalog"
	mwauth "github.com/mashop/storefront/internal/middleware/auth"
)

// AdminHandler maintains the remote catalog's products and users on behalf
// of an admin session and records every mutation in the activity log.
type AdminHandler struct {
	Catalog  *catalog.Client
	Activity *activity.Recorder
}

func (h *AdminHandler) CreateProduct(c echo.Context) error {
	sess, _ := mwauth.CurrentSession(c)

	var req catalog.Product
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	res := h.Catalog.AddProduct(c.Request().Context(), req)
	if !res.Success {
		return echo.NewHTTPError(http.StatusBadGateway, res.Error)
	}

	record(c, h.Activity, sess.Username, "product.create",
		fmt.Sprintf("User %s created product %q", sess.Username, res.Data.Title),
		res.Data)

	return c.JSON(http.StatusCreated, res.Data)
}

func (h *AdminHandler) UpdateProduct(c echo.Context) error {
	sess, _ := mwauth.CurrentSession(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}

	var fields map[string]any
	if err := c.Bind(&fields); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	res := h.Catalog.UpdateProduct(c.Request().Context(), id, fields)
	if !res.Success {
		return echo.NewHTTPError(http.StatusBadGateway, res.Error)
	}

	record(c, h.Activity, sess.Username, "product.update",
		fmt.Sprintf("User %s updated product %q", sess.Username, res.Data.Title),
		res.Data)

	return c.JSON(http.StatusOK, res.Data)
}

func (h *AdminHandler) DeleteProduct(c echo.Context) error {
	sess, _ := mwauth.CurrentSession(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}

	res := h.Catalog.DeleteProduct(c.Request().Context(), id)
	if !res.Success {
		return echo.NewHTTPError(http.StatusBadGateway, res.Error)
	}

	record(c, h.Activity, sess.Username, "product.delete",
		fmt.Sprintf("User %s deleted product %d", sess.Username, id),
		res.Data)

	return c.JSON(http.StatusOK, res.Data)
}

func (h *AdminHandler) GetUsers(c echo.Context) error {
	ctx := c.Request().Context()
	opts := catalog.ListOptions{
		Limit:  parseIntDefault(c.QueryParam("limit"), 30),
		Skip:   parseIntDefault(c.QueryParam("skip"), 0),
		SortBy: c.QueryParam("sortBy"),
		Order:  c.QueryParam("order"),
	}

	var res catalog.Result[catalog.UserList]
	switch {
	case c.QueryParam("q") != "":
		res = h.Catalog.SearchUsers(ctx, c.QueryParam("q"), opts)
	case c.QueryParam("key") != "":
		res = h.Catalog.FilterUsers(ctx, c.QueryParam("key"), c.QueryParam("value"), opts)
	default:
		res = h.Catalog.Users(ctx, opts)
	}
	if !res.Success {
		return echo.NewHTTPError(http.StatusBadGateway, res.Error)
	}
	return c.JSON(http.StatusOK, res.Data)
}

func (h *AdminHandler) GetUser(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}

	res := h.Catalog.User(c.Request().Context(), id)
	if !res.Success {
		return echo.NewHTTPError(http.StatusBadGateway, res.Error)
	}
	return c.JSON(http.StatusOK, res.Data)
}

func (h *AdminHandler) CreateUser(c echo.Context) error {
	sess, _ := mwauth.CurrentSession(c)

	var fields map[string]any
	if err := c.Bind(&fields); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	res := h.Catalog.AddUser(c.Request().Context(), fields)
	if !res.Success {
		return echo.NewHTTPError(http.StatusBadGateway, res.Error)
	}

	record(c, h.Activity, sess.Username, "user.create",
		fmt.Sprintf("User %s created user %q", sess.Username, res.Data.Username),
		res.Data)

	return c.JSON(http.StatusCreated, res.Data)
}

func (h *AdminHandler) UpdateUser(c echo.Context) error {
	sess, _ := mwauth.CurrentSession(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}

	var fields map[string]any
	if err := c.Bind(&fields); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	res := h.Catalog.UpdateUser(c.Request().Context(), id, fields)
	if !res.Success {
		return echo.NewHTTPError(http.StatusBadGateway, res.Error)
	}

	record(c, h.Activity, sess.Username, "user.update",
		fmt.Sprintf("User %s updated user %d", sess.Username, id),
		res.Data)

	return c.JSON(http.StatusOK, res.Data)
}

func (h *AdminHandler) DeleteUser(c echo.Context) error {
	sess, _ := mwauth.CurrentSession(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}

	res := h.Catalog.DeleteUser(c.Request().Context(), id)
	if !res.Success {
		return echo.NewHTTPError(http.StatusBadGateway, res.Error)
	}

	record(c, h.Activity, sess.Username, "user.delete",
		fmt.Sprintf("User %s deleted user %d", sess.Username, id),
		res.Data)

	return c.JSON(http.StatusOK, res.Data)
}

func (h *AdminHandler) GetUserCarts(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}

	res := h.Catalog.UserCarts(c.Request().Context(), id)
	if !res.Success {
		return echo.NewHTTPError(http.StatusBadGateway, res.Error)
	}
	return c.JSON(http.StatusOK, res.Data)
}

func (h *AdminHandler) GetUserPosts(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}

	opts := catalog.ListOptions{
		Limit: parseIntDefault(c.QueryParam("limit"), 10),
		Skip:  parseIntDefault(c.QueryParam("skip"), 0),
	}
	res := h.Catalog.UserPosts(c.Request().Context(), id, opts)
	if !res.Success {
		return echo.NewHTTPError(http.StatusBadGateway, res.Error)
	}
	return c.JSON(http.StatusOK, res.Data)
}

func (h *AdminHandler) GetUserTodos(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}

	res := h.Catalog.UserTodos(c.Request().Context(), id)
	if !res.Success {
		return echo.NewHTTPError(http.StatusBadGateway, res.Error)
	}
	return c.JSON(http.StatusOK, res.Data)
}

func (h *AdminHandler) GetCarts(c echo.Context) error {
	opts := catalog.ListOptions{
		Limit: parseIntDefault(c.QueryParam("limit"), 30),
		Skip:  parseIntDefault(c.QueryParam("skip"), 0),
	}

	res := h.Catalog.Carts(c.Request().Context(), opts)
	if !res.Success {
		return echo.NewHTTPError(http.StatusBadGateway, res.Error)
	}
	return c.JSON(http.StatusOK, res.Data)
}

func (h *AdminHandler) GetCart(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}

	res := h.Catalog.Cart(c.Request().Context(), id)
	if !res.Success {
		return echo.NewHTTPError(http.StatusBadGateway, res.Error)
	}
	return c.JSON(http.StatusOK, res.Data)
}

func (h *AdminHandler) GetCartsByUser(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}

	res := h.Catalog.CartsByUser(c.Request().Context(), id)
	if !res.Success {
		return echo.NewHTTPError(http.StatusBadGateway, res.Error)
	}
	return c.JSON(http.StatusOK, res.Data)
}

func (h *AdminHandler) CreateCart(c echo.Context) error {
	sess, _ := mwauth.CurrentSession(c)

	var payload catalog.RemoteCartPayload
	if err := c.Bind(&payload); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	res := h.Catalog.AddCart(c.Request().Context(), payload)
	if !res.Success {
		return echo.NewHTTPError(http.StatusBadGateway, res.Error)
	}

	record(c, h.Activity, sess.Username, "cart.create",
		fmt.Sprintf("User %s created cart for user %d", sess.Username, res.Data.UserID),
		res.Data)

	return c.JSON(http.StatusCreated, res.Data)
}

func (h *AdminHandler) UpdateCart(c echo.Context) error {
	sess, _ := mwauth.CurrentSession(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}

	var payload catalog.RemoteCartPayload
	if err := c.Bind(&payload); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	res := h.Catalog.UpdateCart(c.Request().Context(), id, payload)
	if !res.Success {
		return echo.NewHTTPError(http.StatusBadGateway, res.Error)
	}

	record(c, h.Activity, sess.Username, "cart.update",
		fmt.Sprintf("User %s updated cart %d", sess.Username, id),
		res.Data)

	return c.JSON(http.StatusOK, res.Data)
}

func (h *AdminHandler) DeleteCart(c echo.Context) error {
	sess, _ := mwauth.CurrentSession(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}

	res := h.Catalog.DeleteCart(c.Request().Context(), id)
	if !res.Success {
		return echo.NewHTTPError(http.StatusBadGateway, res.Error)
	}

	record(c, h.Activity, sess.Username, "cart.delete",
		fmt.Sprintf("User %s deleted cart %d", sess.Username, id),
		res.Data)

	return c.JSON(http.StatusOK, res.Data)
}

// GetActivity serves the admin activity feed, filtered by type substring
// or exact actor.
func (h *AdminHandler) GetActivity(c echo.Context) error {
	f := activity.Filter{
		Type:  c.QueryParam("type"),
		Actor: c.QueryParam("actor"),
		Limit: parseIntDefault(c.QueryParam("limit"), 0),
	}

	recs, err := h.Activity.Query(c.Request().Context(), f)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, recs)
}
