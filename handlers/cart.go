package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"go.uber.org/zap"

	"github.com/muheezokunade/storefront/internal/config"
	"github.com/muheezokunade/storefront/pkg/cart"
	"github.com/muheezokunade/storefront/pkg/coupon"
)

// CartHandlers serves the session-scoped cart endpoints. Each request
// hydrates a fresh engine from the store, applies one mutation, and
// responds with the resulting read model; the engine itself persists
// after the mutation.
type CartHandlers struct {
	cfg     *config.Config
	store   cart.Store
	coupons coupon.Repository
	log     *zap.Logger
}

// NewCartHandlers creates the cart handler set.
func NewCartHandlers(cfg *config.Config, store cart.Store, coupons coupon.Repository, log *zap.Logger) *CartHandlers {
	return &CartHandlers{cfg: cfg, store: store, coupons: coupons, log: log}
}

// cartView is the read model returned by every cart endpoint.
type cartView struct {
	Items     []cart.LineItem      `json:"items"`
	Count     int                  `json:"count"`
	Totals    cart.Totals          `json:"totals"`
	Formatted cart.FormattedTotals `json:"formatted"`
	Coupon    string               `json:"coupon,omitempty"`
}

func (h *CartHandlers) view(e *cart.Engine) cartView {
	v := cartView{
		Items:     e.Items(),
		Count:     e.Count(),
		Totals:    e.Totals(),
		Formatted: e.Totals().Formatted(),
	}
	if applied, ok := e.AppliedCoupon(); ok {
		v.Coupon = applied.Code
	}
	return v
}

func (h *CartHandlers) engineFor(ctx context.Context, request events.APIGatewayProxyRequest) (*cart.Engine, events.APIGatewayProxyResponse, bool) {
	sessionID := getSessionID(request)
	if sessionID == "" {
		return nil, errorResponse(http.StatusBadRequest, "Session ID required"), false
	}

	engine := cart.New(h.cfg.CartConfig(sessionID, h.coupons, h.store))
	if err := engine.Load(ctx); err != nil {
		h.log.Error("failed to load cart", zap.String("session", sessionID), zap.Error(err))
		return nil, errorResponse(http.StatusInternalServerError, "Failed to load cart"), false
	}
	return engine, events.APIGatewayProxyResponse{}, true
}

// GetCart handles GET /cart.
func (h *CartHandlers) GetCart(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	engine, resp, ok := h.engineFor(ctx, request)
	if !ok {
		return resp, nil
	}
	return successResponse(http.StatusOK, h.view(engine)), nil
}

// AddItem handles POST /cart/items.
func (h *CartHandlers) AddItem(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	var req struct {
		cart.LineItem
		Quantity int `json:"quantity"`
	}
	if err := json.Unmarshal([]byte(request.Body), &req); err != nil {
		return errorResponse(http.StatusBadRequest, "Invalid request body"), nil
	}
	if req.ProductID == "" {
		return errorResponse(http.StatusBadRequest, "product_id is required"), nil
	}
	if req.Price < 0 {
		return errorResponse(http.StatusBadRequest, "price must not be negative"), nil
	}

	engine, resp, ok := h.engineFor(ctx, request)
	if !ok {
		return resp, nil
	}

	if err := engine.AddItem(ctx, req.LineItem, req.Quantity); err != nil {
		h.log.Error("failed to save cart", zap.Error(err))
		return errorResponse(http.StatusInternalServerError, "Failed to save cart"), nil
	}
	return successResponse(http.StatusOK, h.view(engine)), nil
}

// UpdateItem handles PUT /cart/items/{productId}. A quantity of zero
// removes the line.
func (h *CartHandlers) UpdateItem(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	productID := request.PathParameters["productId"]
	if productID == "" {
		return errorResponse(http.StatusBadRequest, "Product ID required"), nil
	}

	var req struct {
		Quantity int    `json:"quantity"`
		Color    string `json:"color"`
		Size     string `json:"size"`
	}
	if err := json.Unmarshal([]byte(request.Body), &req); err != nil {
		return errorResponse(http.StatusBadRequest, "Invalid request body"), nil
	}

	engine, resp, ok := h.engineFor(ctx, request)
	if !ok {
		return resp, nil
	}

	if err := engine.UpdateQuantity(ctx, productID, req.Quantity, req.Color, req.Size); err != nil {
		h.log.Error("failed to save cart", zap.Error(err))
		return errorResponse(http.StatusInternalServerError, "Failed to save cart"), nil
	}
	return successResponse(http.StatusOK, h.view(engine)), nil
}

// RemoveItem handles DELETE /cart/items/{productId}. Color and size
// come from the query string; removing an absent line still succeeds.
func (h *CartHandlers) RemoveItem(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	productID := request.PathParameters["productId"]
	if productID == "" {
		return errorResponse(http.StatusBadRequest, "Product ID required"), nil
	}

	engine, resp, ok := h.engineFor(ctx, request)
	if !ok {
		return resp, nil
	}

	color := request.QueryStringParameters["color"]
	size := request.QueryStringParameters["size"]
	if err := engine.RemoveItem(ctx, productID, color, size); err != nil {
		h.log.Error("failed to save cart", zap.Error(err))
		return errorResponse(http.StatusInternalServerError, "Failed to save cart"), nil
	}
	return successResponse(http.StatusOK, h.view(engine)), nil
}

// ClearCart handles DELETE /cart.
func (h *CartHandlers) ClearCart(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	engine, resp, ok := h.engineFor(ctx, request)
	if !ok {
		return resp, nil
	}

	if err := engine.Clear(ctx); err != nil {
		h.log.Error("failed to save cart", zap.Error(err))
		return errorResponse(http.StatusInternalServerError, "Failed to save cart"), nil
	}
	return successResponse(http.StatusOK, h.view(engine)), nil
}

// ApplyCoupon handles POST /cart/coupon. An unknown code is a client
// error, not a server fault.
func (h *CartHandlers) ApplyCoupon(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	var req struct {
		Code string `json:"code"`
	}
	if err := json.Unmarshal([]byte(request.Body), &req); err != nil || req.Code == "" {
		return errorResponse(http.StatusBadRequest, "Coupon code required"), nil
	}

	engine, resp, ok := h.engineFor(ctx, request)
	if !ok {
		return resp, nil
	}

	applied, err := engine.ApplyCoupon(ctx, req.Code)
	if err != nil {
		h.log.Error("failed to save cart", zap.Error(err))
		return errorResponse(http.StatusInternalServerError, "Failed to save cart"), nil
	}
	if !applied {
		return errorResponse(http.StatusUnprocessableEntity, "Invalid coupon code"), nil
	}
	return successResponse(http.StatusOK, h.view(engine)), nil
}

// RemoveCoupon handles DELETE /cart/coupon.
func (h *CartHandlers) RemoveCoupon(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	engine, resp, ok := h.engineFor(ctx, request)
	if !ok {
		return resp, nil
	}

	if err := engine.RemoveCoupon(ctx); err != nil {
		h.log.Error("failed to save cart", zap.Error(err))
		return errorResponse(http.StatusInternalServerError, "Failed to save cart"), nil
	}
	return successResponse(http.StatusOK, h.view(engine)), nil
}
