// Command local runs the storefront API as a plain HTTP server, backed
// by dynamodb-local or, with -memory, by in-memory stores seeded with a
// demo catalog.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"io"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/gorilla/mux"
	"github.com/pay-theory/dynamorm"
	"github.com/pay-theory/dynamorm/pkg/session"
	"go.uber.org/zap"

	"github.com/muheezokunade/storefront/handlers"
	"github.com/muheezokunade/storefront/internal/config"
	"github.com/muheezokunade/storefront/pkg/cart"
	"github.com/muheezokunade/storefront/pkg/catalog"
	"github.com/muheezokunade/storefront/pkg/coupon"
	"github.com/muheezokunade/storefront/store/dynamo"
	"github.com/muheezokunade/storefront/store/memory"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	useMemory := flag.Bool("memory", false, "use in-memory stores with a demo catalog")
	flag.Parse()

	log, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("failed to load config", zap.Error(err))
	}

	var (
		cartStore cart.Store
		source    handlers.ProductSource
	)
	if *useMemory {
		cartStore = memory.NewCartStore()
		source = memory.NewProductSource(demoCatalog())
		log.Info("using in-memory stores")
	} else {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := verifyTable(ctx, cfg); err != nil {
			cancel()
			log.Fatal("table check failed", zap.String("table", cfg.Database.Table), zap.Error(err))
		}
		cancel()

		db, err := dynamorm.New(session.Config{
			Region:   cfg.Database.Region,
			Endpoint: cfg.Database.Endpoint,
		})
		if err != nil {
			log.Fatal("failed to connect to DynamoDB", zap.Error(err))
		}
		cartStore = dynamo.NewCartStore(db, 0)
		source = dynamo.NewProductSource(db)
		log.Info("using DynamoDB stores",
			zap.String("region", cfg.Database.Region),
			zap.String("endpoint", cfg.Database.Endpoint),
			zap.String("table", cfg.Database.Table))
	}

	coupons := coupon.NewStaticRepository(cfg.Coupons...)
	cartHandler := handlers.NewCartHandlers(cfg, cartStore, coupons, log)
	shopHandler := handlers.NewShopHandlers(source, cfg.Shop.PageSize, log)

	router := mux.NewRouter()
	router.Use(loggingMiddleware(log))
	router.Use(corsMiddleware)

	router.HandleFunc("/health", healthCheckHandler).Methods("GET")

	// Shop routes
	router.HandleFunc("/shop", adaptHandler(shopHandler.ListProducts)).Methods("GET")
	router.HandleFunc("/shop/filters", adaptHandler(shopHandler.FilterMetadata)).Methods("GET")
	router.HandleFunc("/shop/products/{id}/related", adaptHandler(shopHandler.RelatedProducts)).Methods("GET")

	// Cart routes
	router.HandleFunc("/cart", adaptHandler(cartHandler.GetCart)).Methods("GET")
	router.HandleFunc("/cart", adaptHandler(cartHandler.ClearCart)).Methods("DELETE")
	router.HandleFunc("/cart/items", adaptHandler(cartHandler.AddItem)).Methods("POST")
	router.HandleFunc("/cart/items/{productId}", adaptHandler(cartHandler.UpdateItem)).Methods("PUT")
	router.HandleFunc("/cart/items/{productId}", adaptHandler(cartHandler.RemoveItem)).Methods("DELETE")
	router.HandleFunc("/cart/coupon", adaptHandler(cartHandler.ApplyCoupon)).Methods("POST")
	router.HandleFunc("/cart/coupon", adaptHandler(cartHandler.RemoveCoupon)).Methods("DELETE")

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("starting server", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server failed to start", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("server forced to shutdown", zap.Error(err))
	}
	log.Info("server exited")
}

// verifyTable fails fast when the configured table is missing, instead of
// surfacing the error on the first request.
func verifyTable(ctx context.Context, cfg *config.Config) error {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Database.Region))
	if err != nil {
		return err
	}
	client := dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if cfg.Database.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Database.Endpoint)
		}
	})
	_, err = client.DescribeTable(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(cfg.Database.Table),
	})
	return err
}

// adaptHandler converts a Lambda-style handler to an HTTP handler.
func adaptHandler(lambdaHandler func(context.Context, events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response, err := lambdaHandler(r.Context(), httpToLambdaEvent(r))
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		for key, value := range response.Headers {
			w.Header().Set(key, value)
		}
		w.WriteHeader(response.StatusCode)
		w.Write([]byte(response.Body))
	}
}

func httpToLambdaEvent(r *http.Request) events.APIGatewayProxyRequest {
	pathParams := make(map[string]string)
	for key, value := range mux.Vars(r) {
		pathParams[key] = value
	}

	queryParams := make(map[string]string)
	for key, values := range r.URL.Query() {
		if len(values) > 0 {
			queryParams[key] = values[0]
		}
	}

	headers := make(map[string]string)
	for key, values := range r.Header {
		if len(values) > 0 {
			headers[key] = values[0]
		}
	}

	var body string
	if r.Body != nil {
		defer r.Body.Close()
		bodyBytes, _ := io.ReadAll(r.Body)
		body = string(bodyBytes)
	}

	return events.APIGatewayProxyRequest{
		HTTPMethod:            r.Method,
		Path:                  r.URL.Path,
		PathParameters:        pathParams,
		QueryStringParameters: queryParams,
		Headers:               headers,
		Body:                  body,
	}
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"status": "healthy",
		"time":   time.Now().UTC(),
	})
}

func loggingMiddleware(log *zap.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(wrapped, r)

			log.Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.RequestURI),
				zap.Int("status", wrapped.statusCode),
				zap.Duration("duration", time.Since(start)))
		})
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Session-ID")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// demoCatalog seeds the -memory mode with enough products to exercise
// every filter facet.
func demoCatalog() []catalog.Product {
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	return []catalog.Product{
		{ID: "agbada-001", Name: "Premium Agbada", Description: "Handcrafted ceremonial agbada", Category: "Clothing", Subcategory: "Traditional", Price: 45000, Colors: []string{"Navy", "White"}, Sizes: []string{"M", "L", "XL"}, Materials: []string{"Cotton"}, Tags: []string{"ceremony"}, InStock: true, IsBestSeller: true, Popularity: 95, CreatedAt: base},
		{ID: "ankara-014", Name: "Ankara Shirt", Description: "Bold print casual shirt", Category: "Clothing", Subcategory: "Casual", Price: 12000, Colors: []string{"Red", "Yellow"}, Sizes: []string{"S", "M", "L"}, Materials: []string{"Ankara"}, InStock: true, IsNew: true, Popularity: 70, CreatedAt: base.AddDate(0, 0, 12)},
		{ID: "sandal-203", Name: "Leather Sandals", Description: "Hand stitched leather sandals", Category: "Footwear", Price: 18000, OriginalPrice: 24000, Colors: []string{"Brown"}, Sizes: []string{"41", "42", "43"}, Materials: []string{"Leather"}, InStock: true, Popularity: 55, CreatedAt: base.AddDate(0, 0, 4)},
		{ID: "kaftan-007", Name: "Silk Kaftan", Description: "Lightweight evening kaftan", Category: "Clothing", Subcategory: "Traditional", Price: 65000, Colors: []string{"Gold"}, Sizes: []string{"L", "XL"}, Materials: []string{"Silk"}, Tags: []string{"evening"}, InStock: false, Popularity: 80, CreatedAt: base.AddDate(0, 0, 7)},
		{ID: "cap-090", Name: "Aso Oke Cap", Description: "Woven traditional cap", Category: "Accessories", Price: 5000, OriginalPrice: 6500, Colors: []string{"Navy"}, Materials: []string{"Aso Oke"}, Tags: []string{"ceremony"}, InStock: true, Popularity: 60, CreatedAt: base.AddDate(0, 0, 2)},
		{ID: "bead-311", Name: "Coral Bead Necklace", Description: "Handmade coral beads", Category: "Accessories", Price: 8000, Colors: []string{"Red"}, Materials: []string{"Coral"}, InStock: true, IsNew: true, Popularity: 40, CreatedAt: base.AddDate(0, 0, 10)},
	}
}
