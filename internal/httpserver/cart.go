package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ovsinka/online_store/internal/logging"
	"github.com/ovsinka/online_store/internal/mykafka"
	"github.com/ovsinka/online_store/internal/service"
	"github.com/ovsinka/online_store/internal/transport"
)

type CartHTTP struct {
	Svc      *service.CartService
	Producer *mykafka.Producer
}

func getUserID(c echo.Context) (uint, error) {
	id, ok := c.Get("user_id").(uint)
	if !ok || id == 0 {
		return 0, errors.New("unauthorized")
	}
	return id, nil
}

func serviceError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrValidation):
		return c.JSON(http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNotFound):
		return c.JSON(http.StatusNotFound, err.Error())
	default:
		return c.JSON(http.StatusInternalServerError, "internal error")
	}
}

// publish is best-effort: a dead broker must not fail the request.
func (h *CartHTTP) publish(c echo.Context, userID uint, eventType string, payload any) {
	if h.Producer == nil {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, "cart_events", fmt.Sprint(userID), eventType, payload); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka publish error", "error", err)
	}
}

func (h *CartHTTP) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "get.cart")

	userID, err := getUserID(c)
	if err != nil {
		l.Error("get_cart_error", "status", 401, "error", err)
		return c.JSON(http.StatusUnauthorized, "unauthorized")
	}

	resp, err := h.Svc.FindAll(ctx, userID)
	if err != nil {
		l.Error("get_cart_error", "error", err)
		return serviceError(c, err)
	}

	return c.JSON(http.StatusOK, resp)
}

func (h *CartHTTP) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "add.cart")

	userID, err := getUserID(c)
	if err != nil {
		l.Error("add_to_cart_error", "status", 401, "error", err)
		return c.JSON(http.StatusUnauthorized, "unauthorized")
	}

	var req []transport.CartInsertRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("add_to_cart_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, "invalid body")
	}

	if err := h.Svc.Add(ctx, req, userID); err != nil {
		l.Warn("add_to_cart_error", "error", err)
		return serviceError(c, err)
	}

	h.publish(c, userID, "cart_items_added", req)
	l.Info("items added to cart", "count", len(req))
	return c.NoContent(http.StatusOK)
}

func (h *CartHTTP) UpdateCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "update.cart")

	userID, err := getUserID(c)
	if err != nil {
		l.Error("update_cart_error", "status", 401, "error", err)
		return c.JSON(http.StatusUnauthorized, "unauthorized")
	}

	var req []transport.CartUpdateRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_cart_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, "invalid body")
	}

	resp, err := h.Svc.Update(ctx, req, userID)
	if err != nil {
		l.Warn("update_cart_error", "error", err)
		return serviceError(c, err)
	}

	h.publish(c, userID, "cart_items_updated", resp.Items)
	l.Info("cart updated", "count", len(resp.Items))
	return c.JSON(http.StatusOK, resp)
}

func (h *CartHTTP) DeleteFromCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "delete.cart")

	userID, err := getUserID(c)
	if err != nil {
		l.Error("delete_from_cart_error", "status", 401, "error", err)
		return c.JSON(http.StatusUnauthorized, "unauthorized")
	}

	var req []transport.CartDeleteRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("delete_from_cart_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, "invalid body")
	}

	if err := h.Svc.Delete(ctx, req, userID); err != nil {
		l.Error("delete_from_cart_error", "error", err)
		return serviceError(c, err)
	}

	h.publish(c, userID, "cart_items_deleted", req)
	l.Info("items deleted from cart", "count", len(req))
	return c.NoContent(http.StatusOK)
}
