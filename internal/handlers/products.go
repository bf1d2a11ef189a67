package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/mashop/storefront/internal/catalog"
	"github.com/mashop/storefront/internal/catalog/filterspec"
)

type ProductsHandler struct {
	Catalog *catalog.Client
}

// GetProducts fetches the full collection (or the remote search result when
// a search term is present — the term replaces the working set) and applies
// the filter/sort spec from the query string.
func (h *ProductsHandler) GetProducts(c echo.Context) error {
	ctx := c.Request().Context()

	spec := specFromQuery(c)

	var res catalog.Result[catalog.ProductList]
	if spec.Search != "" {
		res = h.Catalog.SearchProducts(ctx, spec.Search, catalog.ListOptions{Limit: 0})
	} else {
		res = h.Catalog.Products(ctx, catalog.ListOptions{Limit: 0})
	}
	if !res.Success {
		return echo.NewHTTPError(http.StatusBadGateway, res.Error)
	}

	visible := filterspec.Apply(res.Data.Products, spec)

	return c.JSON(http.StatusOK, echo.Map{
		"products": visible,
		"total":    len(visible),
	})
}

func (h *ProductsHandler) GetProduct(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}

	res := h.Catalog.Product(c.Request().Context(), id)
	if !res.Success {
		return echo.NewHTTPError(http.StatusBadGateway, res.Error)
	}
	return c.JSON(http.StatusOK, res.Data)
}

func (h *ProductsHandler) SearchProducts(c echo.Context) error {
	q := c.QueryParam("q")
	if q == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "query error")
	}

	limit := parseIntDefault(c.QueryParam("limit"), 0)
	skip := parseIntDefault(c.QueryParam("skip"), 0)

	res := h.Catalog.SearchProducts(c.Request().Context(), q, catalog.ListOptions{Limit: limit, Skip: skip})
	if !res.Success {
		return echo.NewHTTPError(http.StatusBadGateway, res.Error)
	}
	return c.JSON(http.StatusOK, res.Data)
}

func (h *ProductsHandler) GetCategories(c echo.Context) error {
	res := h.Catalog.Categories(c.Request().Context())
	if !res.Success {
		return echo.NewHTTPError(http.StatusBadGateway, res.Error)
	}
	return c.JSON(http.StatusOK, res.Data)
}

func (h *ProductsHandler) GetProductsByCategory(c echo.Context) error {
	category := c.Param("category")
	limit := parseIntDefault(c.QueryParam("limit"), 0)
	skip := parseIntDefault(c.QueryParam("skip"), 0)

	res := h.Catalog.ProductsByCategory(c.Request().Context(), category, catalog.ListOptions{Limit: limit, Skip: skip})
	if !res.Success {
		return echo.NewHTTPError(http.StatusBadGateway, res.Error)
	}
	return c.JSON(http.StatusOK, res.Data)
}

func specFromQuery(c echo.Context) filterspec.Spec {
	spec := filterspec.Spec{
		Search: strings.TrimSpace(c.QueryParam("search")),
		SortBy: filterspec.ParseSortKey(c.QueryParam("sort")),
	}
	if v := c.QueryParam("categories"); v != "" {
		for _, cat := range strings.Split(v, ",") {
			if cat = strings.TrimSpace(cat); cat != "" {
				spec.Categories = append(spec.Categories, cat)
			}
		}
	}
	spec.PriceMin = parseFloatPtr(c.QueryParam("price_min"))
	spec.PriceMax = parseFloatPtr(c.QueryParam("price_max"))
	spec.MinRating = parseFloatPtr(c.QueryParam("min_rating"))
	spec.InStock = c.QueryParam("in_stock") == "true"
	return spec
}
