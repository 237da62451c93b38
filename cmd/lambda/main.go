// Command lambda runs the storefront API behind API Gateway. All
// collaborators are initialized once during cold start.
package main

import (
	"context"
	"net/http"
	"os"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/pay-theory/dynamorm"
	"github.com/pay-theory/dynamorm/pkg/session"
	"go.uber.org/zap"

	"github.com/muheezokunade/storefront/handlers"
	"github.com/muheezokunade/storefront/internal/config"
	"github.com/muheezokunade/storefront/pkg/coupon"
	"github.com/muheezokunade/storefront/store/dynamo"
)

var (
	log         *zap.Logger
	cartHandler *handlers.CartHandlers
	shopHandler *handlers.ShopHandlers
)

func init() {
	var err error
	log, err = zap.NewProduction()
	if err != nil {
		panic(err)
	}

	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Fatal("failed to load config", zap.Error(err))
	}

	db, err := dynamorm.New(session.Config{
		Region:   cfg.Database.Region,
		Endpoint: cfg.Database.Endpoint,
	})
	if err != nil {
		log.Fatal("failed to initialize DynamoDB", zap.Error(err))
	}

	coupons := coupon.NewStaticRepository(cfg.Coupons...)
	cartHandler = handlers.NewCartHandlers(cfg, dynamo.NewCartStore(db, 0), coupons, log)
	shopHandler = handlers.NewShopHandlers(dynamo.NewProductSource(db), cfg.Shop.PageSize, log)
}

func main() {
	lambda.Start(route)
}

// route dispatches by method and path. API Gateway proxy integration
// hands us the raw path, so path parameters are extracted here.
func route(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	segments := splitPath(request.Path)

	switch {
	case request.HTTPMethod == "GET" && pathIs(segments, "shop"):
		return shopHandler.ListProducts(ctx, request)

	case request.HTTPMethod == "GET" && pathIs(segments, "shop", "filters"):
		return shopHandler.FilterMetadata(ctx, request)

	case request.HTTPMethod == "GET" && len(segments) == 4 && segments[0] == "shop" && segments[1] == "products" && segments[3] == "related":
		withParam(&request, "id", segments[2])
		return shopHandler.RelatedProducts(ctx, request)

	case request.HTTPMethod == "GET" && pathIs(segments, "cart"):
		return cartHandler.GetCart(ctx, request)

	case request.HTTPMethod == "DELETE" && pathIs(segments, "cart"):
		return cartHandler.ClearCart(ctx, request)

	case request.HTTPMethod == "POST" && pathIs(segments, "cart", "items"):
		return cartHandler.AddItem(ctx, request)

	case request.HTTPMethod == "PUT" && len(segments) == 3 && segments[0] == "cart" && segments[1] == "items":
		withParam(&request, "productId", segments[2])
		return cartHandler.UpdateItem(ctx, request)

	case request.HTTPMethod == "DELETE" && len(segments) == 3 && segments[0] == "cart" && segments[1] == "items":
		withParam(&request, "productId", segments[2])
		return cartHandler.RemoveItem(ctx, request)

	case request.HTTPMethod == "POST" && pathIs(segments, "cart", "coupon"):
		return cartHandler.ApplyCoupon(ctx, request)

	case request.HTTPMethod == "DELETE" && pathIs(segments, "cart", "coupon"):
		return cartHandler.RemoveCoupon(ctx, request)
	}

	return events.APIGatewayProxyResponse{
		StatusCode: http.StatusNotFound,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       `{"success":false,"error":"Not found"}`,
	}, nil
}

func splitPath(path string) []string {
	var segments []string
	for _, s := range strings.Split(path, "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}
	return segments
}

func pathIs(segments []string, want ...string) bool {
	if len(segments) != len(want) {
		return false
	}
	for i, s := range segments {
		if s != want[i] {
			return false
		}
	}
	return true
}

func withParam(request *events.APIGatewayProxyRequest, key, value string) {
	if request.PathParameters == nil {
		request.PathParameters = make(map[string]string)
	}
	request.PathParameters[key] = value
}
