package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/storefront/internal/catalog"
	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/util"
)

type CatalogHandler struct {
	Catalog *catalog.Catalog
}

type productView struct {
	models.Product
	FinalPrice decimal.Decimal `json:"final_price"`
}

func viewProducts(ps []models.Product) []productView {
	out := make([]productView, 0, len(ps))
	for _, p := range ps {
		out = append(out, productView{Product: p, FinalPrice: p.FinalPrice()})
	}
	return out
}

func priceParam(c echo.Context, name string, def decimal.Decimal) (decimal.Decimal, error) {
	v := c.QueryParam(name)
	if v == "" {
		return def, nil
	}
	d, err := decimal.NewFromString(v)
	if err != nil || d.IsNegative() {
		return decimal.Zero, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return d, nil
}

func (h *CatalogHandler) GetProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.list")

	f := catalog.DefaultFilter()
	if cat := c.QueryParam("category"); cat != "" {
		f.Category = cat
	}
	f.Sort = catalog.ParseSortKey(c.QueryParam("sort"))

	var err error
	if f.MinPrice, err = priceParam(c, "min_price", f.MinPrice); err != nil {
		return err
	}
	if f.MaxPrice, err = priceParam(c, "max_price", f.MaxPrice); err != nil {
		return err
	}

	items, err := h.Catalog.Query(ctx, f)
	if err != nil {
		l.Error("catalog_query_error", "error", err)
		return httpError(err)
	}

	page, size, from := util.Page(c.QueryParam("page"), c.QueryParam("size"))
	total := len(items)
	from = max(min(from, total), 0)
	to := min(from+size, total)

	return c.JSON(http.StatusOK, echo.Map{
		"total":    total,
		"page":     page,
		"size":     size,
		"products": viewProducts(items[from:to]),
	})
}

func (h *CatalogHandler) GetProduct(c echo.Context) error {
	id, err := intParam(c, "id")
	if err != nil {
		return err
	}

	p, err := h.Catalog.Find(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, productView{Product: p, FinalPrice: p.FinalPrice()})
}

func (h *CatalogHandler) GetCategories(c echo.Context) error {
	cats, err := h.Catalog.Categories(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"categories": cats})
}
