package controller

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/nhmunna/Swift-E-Commerce/internal/catalog/client"
	"github.com/nhmunna/Swift-E-Commerce/internal/catalog/otel"
	commonErrors "github.com/nhmunna/Swift-E-Commerce/internal/errors"
	commonHttp "github.com/nhmunna/Swift-E-Commerce/internal/http"
	"github.com/nhmunna/Swift-E-Commerce/internal/log"
	inOtel "github.com/nhmunna/Swift-E-Commerce/internal/otel"
)

const trendingCount = 4

type ProductController struct {
	catalog *client.CatalogClient
}

func AttachProductController(mux *mux.Router, catalog *client.CatalogClient) {
	controller := ProductController{catalog: catalog}

	router := mux.PathPrefix("/products").Subrouter()
	router.HandleFunc("/trending", controller.FindTrendingProducts).Methods(http.MethodGet)
	router.HandleFunc("/categories", controller.FindCategories).Methods(http.MethodGet)
	router.HandleFunc("/{productId:[0-9]+}", controller.FindProductById).Methods(http.MethodGet)
	router.HandleFunc("", controller.FindProducts).Methods(http.MethodGet)
}

func (t ProductController) FindProducts(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "ProductController FindProducts")
	defer span.End()

	category := r.URL.Query().Get("category")

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductController FindProducts").
		Str(log.KeyCategory, category).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding products").Logger()
	logger.Info().Msg("finding products")
	c = logger.WithContext(c)
	products := t.catalog.FindProducts(c)
	if category != "" {
		products = t.catalog.FindProductsByCategory(c, category)
	}
	logger = logger.With().Int(log.KeyProducts, len(products)).Logger()
	logger.Info().Msg("found products")

	message := fmt.Sprintf("found %d products", len(products))
	if len(products) == 0 {
		message = "failed to load products, please refresh the page"
	}
	commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    message,
		"data": map[string]interface{}{
			"products": products,
		},
	})
}

func (t ProductController) FindTrendingProducts(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "ProductController FindTrendingProducts")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductController FindTrendingProducts").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding trending products").Logger()
	logger.Info().Msg("finding trending products")
	c = logger.WithContext(c)
	products := t.catalog.FindProducts(c)
	if len(products) > trendingCount {
		products = products[:trendingCount]
	}
	logger = logger.With().Int(log.KeyProducts, len(products)).Logger()
	logger.Info().Msg("found trending products")

	message := fmt.Sprintf("found %d trending products", len(products))
	if len(products) == 0 {
		message = "failed to load products, please refresh the page"
	}
	commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    message,
		"data": map[string]interface{}{
			"products": products,
		},
	})
}

func (t ProductController) FindProductById(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "ProductController FindProductById")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductController FindProductById").
		Str(log.KeyProcess, "validating productId").
		Logger()

	logger.Info().Msg("validating productId")
	pathValues := mux.Vars(r)
	productId, err := strconv.ParseInt(pathValues["productId"], 10, 64)
	if err != nil {
		err = fmt.Errorf("failed validating productId=%s with error=%w", pathValues["productId"], err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}
	logger = logger.With().Int64(log.KeyProductID, productId).Logger()
	logger.Info().Msgf("validated productId=%d", productId)

	logger = logger.With().Str(log.KeyProcess, "finding product").Logger()
	logger.Info().Msgf("finding productId=%d", productId)
	c = logger.WithContext(c)
	product := t.catalog.FindProductById(c, productId)
	if product == nil {
		err = fmt.Errorf("productId=%d with error=%w", productId, commonErrors.ErrProductNotFound)
		inOtel.RecordError(err, span)
		logger.Info().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusNotFound,
			"message":    err.Error(),
		})
		return
	}
	logger = logger.With().Any(log.KeyProduct, product).Logger()
	logger.Info().Msgf("found productId=%d", productId)

	commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    fmt.Sprintf("productId=%d found", productId),
		"data": map[string]interface{}{
			"product": product,
		},
	})
}

func (t ProductController) FindCategories(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "ProductController FindCategories")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductController FindCategories").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding categories").Logger()
	logger.Info().Msg("finding categories")
	c = logger.WithContext(c)
	categories := t.catalog.FindCategories(c)
	logger = logger.With().Int(log.KeyCategories, len(categories)).Logger()
	logger.Info().Msg("found categories")

	commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    fmt.Sprintf("found %d categories", len(categories)),
		"data": map[string]interface{}{
			"categories": categories,
		},
	})
}
