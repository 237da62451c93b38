package handlers

import (
	"context"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"go.uber.org/zap"

	"github.com/muheezokunade/storefront/pkg/catalog"
)

// ProductSource supplies the full catalog snapshot the shop engine
// filters over.
type ProductSource interface {
	Snapshot(ctx context.Context) ([]catalog.Product, error)
}

// ShopHandlers serves the shop listing, filter metadata and related
// product endpoints.
type ShopHandlers struct {
	source   ProductSource
	pageSize int
	log      *zap.Logger
}

// NewShopHandlers creates the shop handler set.
func NewShopHandlers(source ProductSource, pageSize int, log *zap.Logger) *ShopHandlers {
	if pageSize <= 0 {
		pageSize = catalog.DefaultPageSize
	}
	return &ShopHandlers{source: source, pageSize: pageSize, log: log}
}

// ListProducts handles GET /shop. Filter, sort and page state all
// arrive as query parameters; a request with none returns page 1 of
// the whole catalog in snapshot order.
func (h *ShopHandlers) ListProducts(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	products, err := h.source.Snapshot(ctx)
	if err != nil {
		h.log.Error("failed to load products", zap.Error(err))
		return errorResponse(http.StatusServiceUnavailable, "Failed to load products"), nil
	}

	engine := catalog.New(h.pageSize)
	engine.SetFilters(catalog.FilterState{
		Category:    request.QueryStringParameters["category"],
		Subcategory: request.QueryStringParameters["subcategory"],
		Price: catalog.PriceRange{
			Min: queryInt64(request, "min_price"),
			Max: queryInt64(request, "max_price"),
		},
		Colors:       queryList(request, "colors"),
		Sizes:        queryList(request, "sizes"),
		Materials:    queryList(request, "materials"),
		InStock:      queryBool(request, "in_stock"),
		OnSale:       queryBool(request, "on_sale"),
		IsNew:        queryBool(request, "is_new"),
		IsBestSeller: queryBool(request, "best_seller"),
		Search:       request.QueryStringParameters["q"],
	})
	engine.SetSort(catalog.ParseSortKey(request.QueryStringParameters["sort"]))
	engine.SetPage(queryInt(request, "page", 1))
	engine.Apply(products)

	return successResponse(http.StatusOK, map[string]interface{}{
		"products": engine.Results(),
		"metadata": map[string]interface{}{
			"page":          engine.Page(),
			"per_page":      engine.PerPage(),
			"total_results": engine.TotalResults(),
			"total_pages":   engine.TotalPages(),
		},
	}), nil
}

// FilterMetadata handles GET /shop/filters: the facet values,
// availability counts and price ceiling for rendering filter controls.
func (h *ShopHandlers) FilterMetadata(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	products, err := h.source.Snapshot(ctx)
	if err != nil {
		h.log.Error("failed to load products", zap.Error(err))
		return errorResponse(http.StatusServiceUnavailable, "Failed to load products"), nil
	}

	return successResponse(http.StatusOK, catalog.Summarize(products)), nil
}

// RelatedProducts handles GET /shop/products/{id}/related.
func (h *ShopHandlers) RelatedProducts(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	productID := request.PathParameters["id"]
	if productID == "" {
		return errorResponse(http.StatusBadRequest, "Product ID required"), nil
	}

	products, err := h.source.Snapshot(ctx)
	if err != nil {
		h.log.Error("failed to load products", zap.Error(err))
		return errorResponse(http.StatusServiceUnavailable, "Failed to load products"), nil
	}

	var target *catalog.Product
	for i := range products {
		if products[i].ID == productID {
			target = &products[i]
			break
		}
	}
	if target == nil {
		return errorResponse(http.StatusNotFound, "Product not found"), nil
	}

	limit := queryInt(request, "limit", 4)
	return successResponse(http.StatusOK, map[string]interface{}{
		"products": catalog.Related(*target, products, limit),
	}), nil
}
