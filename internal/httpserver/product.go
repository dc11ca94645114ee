package httpserver

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ovsinka/online_store/internal/logging"
	"github.com/ovsinka/online_store/internal/mykafka"
	"github.com/ovsinka/online_store/internal/service"
	"github.com/ovsinka/online_store/internal/transport"
	"github.com/ovsinka/online_store/internal/util"
)

type ProductHTTP struct {
	Svc      *service.CatalogService
	Producer *mykafka.Producer
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

func (h *ProductHTTP) publish(c echo.Context, eventType string, payload any) {
	if h.Producer == nil {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	key := fmt.Sprint(c.Get("user_id"))
	if err := h.Producer.PublishEvent(ctx, "product_events", key, eventType, payload); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka publish error", "error", err)
	}
}

func (h *ProductHTTP) GetProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "get.products")

	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	total, items, err := h.Svc.GetProducts(ctx, offset, limit)
	if err != nil {
		l.Error("get_products_error", "error", err)
		return serviceError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"data": items,
		"meta": map[string]any{
			"page":        page,
			"size":        limit,
			"total":       total,
			"total_pages": (total + int64(limit) - 1) / int64(limit),
			"has_prev":    page > 1,
			"has_next":    int64(offset+limit) < total,
		},
	})
}

func (h *ProductHTTP) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "get.product")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, "invalid id")
	}

	resp, err := h.Svc.GetProduct(ctx, uint(id))
	if err != nil {
		l.Warn("get_product_error", "error", err)
		return serviceError(c, err)
	}

	return c.JSON(http.StatusOK, resp)
}

func (h *ProductHTTP) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "create.product")

	var req transport.CreateProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_product_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, "invalid body")
	}

	product, err := h.Svc.CreateProduct(ctx, req)
	if err != nil {
		l.Warn("create_product_error", "error", err)
		return serviceError(c, err)
	}

	h.publish(c, "product_created", product)
	l.Info("product created", "id", product.ID)
	return c.JSON(http.StatusCreated, product)
}

func (h *ProductHTTP) PatchProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "patch.product")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, "invalid id")
	}

	var req transport.PatchProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("patch_product_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, "invalid body")
	}

	product, err := h.Svc.PatchProduct(ctx, req, uint(id))
	if err != nil {
		l.Warn("patch_product_error", "error", err)
		return serviceError(c, err)
	}

	h.publish(c, "product_updated", product)
	return c.JSON(http.StatusOK, product)
}

func (h *ProductHTTP) PatchOption(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "patch.option")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, "invalid id")
	}

	var req transport.PatchOptionRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("patch_option_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, "invalid body")
	}

	option, err := h.Svc.PatchOption(ctx, req, uint(id))
	if err != nil {
		l.Warn("patch_option_error", "error", err)
		return serviceError(c, err)
	}

	h.publish(c, "option_updated", option)
	return c.JSON(http.StatusOK, option)
}

func (h *ProductHTTP) UpdateStock(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "update.stock")

	var req transport.OptionStockUpdateRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_stock_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, "invalid body")
	}

	option, err := h.Svc.UpdateOptionStock(ctx, req)
	if err != nil {
		l.Warn("update_stock_error", "error", err)
		return serviceError(c, err)
	}

	h.publish(c, "option_stock_updated", option)
	return c.JSON(http.StatusOK, option)
}
