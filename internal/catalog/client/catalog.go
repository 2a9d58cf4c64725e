package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/nhmunna/Swift-E-Commerce/internal/catalog/cache"
	"github.com/nhmunna/Swift-E-Commerce/internal/catalog/otel"
	"github.com/nhmunna/Swift-E-Commerce/catalog/pkg/response"
	"github.com/nhmunna/Swift-E-Commerce/internal/config"
	inHttp "github.com/nhmunna/Swift-E-Commerce/internal/http"
	"github.com/nhmunna/Swift-E-Commerce/internal/log"
	inOtel "github.com/nhmunna/Swift-E-Commerce/internal/otel"
)

// CatalogClient wraps the remote catalog API. Every lookup is a single round
// trip with a best effort result: transport errors, non-2xx statuses and
// malformed bodies are logged and collapsed into an empty result, they never
// reach the caller as errors.
type CatalogClient struct {
	baseUrl string
	client  *http.Client
	cache   *redis.Client
}

func NewCatalogClient(cfg config.Catalog, cache *redis.Client) CatalogClient {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return CatalogClient{
		baseUrl: strings.TrimRight(cfg.BaseUrl, "/"),
		client: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   timeout,
		},
		cache: cache,
	}
}

func (cc CatalogClient) FindProducts(c context.Context) []response.Product {
	c, span := otel.Tracer.Start(c, "CatalogClient FindProducts")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CatalogClient FindProducts").
		Str(log.KeyCacheKey, cache.KeyProducts).
		Logger()

	products := []response.Product{}

	logger = logger.With().Str(log.KeyProcess, "finding products in cache").Logger()
	logger.Trace().Msg("finding products in cache")
	jsonCache, err := cc.cache.Get(c, cache.KeyProducts).Result()
	if err == nil {
		if err := json.Unmarshal([]byte(jsonCache), &products); err == nil {
			logger.Info().Int(log.KeyProducts, len(products)).Msg("found products in cache")
			return products
		}
		logger.Info().Msg("failed unmarshaling cached products, falling back to catalog")
	}

	logger = logger.With().Str(log.KeyProcess, "fetching products from catalog").Logger()
	logger.Info().Msg("fetching products from catalog")
	err = cc.getJson(c, cc.baseUrl+"/products", &products)
	if err != nil {
		err = fmt.Errorf("failed fetching products with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return []response.Product{}
	}
	logger = logger.With().Int(log.KeyProducts, len(products)).Logger()
	logger.Info().Msg("fetched products from catalog")

	logger = logger.With().Str(log.KeyProcess, "inserting products to cache").Logger()
	logger.Trace().Msg("inserting products to cache")
	if body, err := json.Marshal(products); err == nil {
		if err := cc.cache.Set(c, cache.KeyProducts, body, cache.TTL).Err(); err != nil {
			logger.Info().Err(err).Msg("failed inserting products to cache")
		}
	}
	logger.Trace().Msg("inserted products to cache")

	return products
}

func (cc CatalogClient) FindProductsByCategory(
	c context.Context,
	category string,
) []response.Product {
	c, span := otel.Tracer.Start(c, "CatalogClient FindProductsByCategory")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CatalogClient FindProductsByCategory").
		Str(log.KeyCategory, category).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "fetching category products from catalog").Logger()
	logger.Info().Msg("fetching category products from catalog")
	products := []response.Product{}
	err := cc.getJson(c, cc.baseUrl+"/products/category/"+url.PathEscape(category), &products)
	if err != nil {
		err = fmt.Errorf("failed fetching category=%s with error=%w", category, err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return []response.Product{}
	}
	logger.Info().Int(log.KeyProducts, len(products)).Msg("fetched category products from catalog")

	return products
}

func (cc CatalogClient) FindProductById(c context.Context, id int64) *response.Product {
	c, span := otel.Tracer.Start(c, "CatalogClient FindProductById")
	defer span.End()

	cacheKey := fmt.Sprintf(cache.KeyProductById, id)
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CatalogClient FindProductById").
		Int64(log.KeyProductID, id).
		Str(log.KeyCacheKey, cacheKey).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding product in cache").Logger()
	logger.Trace().Msg("finding product in cache")
	jsonCache, err := cc.cache.Get(c, cacheKey).Result()
	if err == nil {
		product := response.Product{}
		if err := json.Unmarshal([]byte(jsonCache), &product); err == nil {
			logger.Info().Msg("found product in cache")
			return &product
		}
		logger.Info().Msg("failed unmarshaling cached product, falling back to catalog")
	}

	logger = logger.With().Str(log.KeyProcess, "fetching product from catalog").Logger()
	logger.Info().Msg("fetching product from catalog")
	product := response.Product{}
	err = cc.getJson(c, fmt.Sprintf("%s/products/%d", cc.baseUrl, id), &product)
	if err != nil {
		err = fmt.Errorf("failed fetching productId=%d with error=%w", id, err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil
	}
	if product.ID == 0 {
		logger.Info().Msg("product not found in catalog")
		return nil
	}
	logger = logger.With().Any(log.KeyProduct, product).Logger()
	logger.Info().Msg("fetched product from catalog")

	logger = logger.With().Str(log.KeyProcess, "inserting product to cache").Logger()
	logger.Trace().Msg("inserting product to cache")
	if body, err := json.Marshal(product); err == nil {
		if err := cc.cache.Set(c, cacheKey, body, cache.TTL).Err(); err != nil {
			logger.Info().Err(err).Msg("failed inserting product to cache")
		}
	}
	logger.Trace().Msg("inserted product to cache")

	return &product
}

func (cc CatalogClient) FindCategories(c context.Context) []string {
	c, span := otel.Tracer.Start(c, "CatalogClient FindCategories")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CatalogClient FindCategories").
		Str(log.KeyCacheKey, cache.KeyCategories).
		Logger()

	categories := []string{}

	logger = logger.With().Str(log.KeyProcess, "finding categories in cache").Logger()
	logger.Trace().Msg("finding categories in cache")
	jsonCache, err := cc.cache.Get(c, cache.KeyCategories).Result()
	if err == nil {
		if err := json.Unmarshal([]byte(jsonCache), &categories); err == nil {
			logger.Info().Int(log.KeyCategories, len(categories)).Msg("found categories in cache")
			return categories
		}
		logger.Info().Msg("failed unmarshaling cached categories, falling back to catalog")
	}

	logger = logger.With().Str(log.KeyProcess, "fetching categories from catalog").Logger()
	logger.Info().Msg("fetching categories from catalog")
	err = cc.getJson(c, cc.baseUrl+"/products/categories", &categories)
	if err != nil {
		err = fmt.Errorf("failed fetching categories with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return []string{}
	}
	logger.Info().Int(log.KeyCategories, len(categories)).Msg("fetched categories from catalog")

	logger = logger.With().Str(log.KeyProcess, "inserting categories to cache").Logger()
	logger.Trace().Msg("inserting categories to cache")
	if body, err := json.Marshal(categories); err == nil {
		if err := cc.cache.Set(c, cache.KeyCategories, body, cache.TTL).Err(); err != nil {
			logger.Info().Err(err).Msg("failed inserting categories to cache")
		}
	}
	logger.Trace().Msg("inserted categories to cache")

	return categories
}

func (cc CatalogClient) getJson(c context.Context, requestUrl string, out interface{}) error {
	req, err := http.NewRequestWithContext(c, http.MethodGet, requestUrl, nil)
	if err != nil {
		return fmt.Errorf("failed creating request to %s with error=%w", requestUrl, err)
	}
	if requestId := log.RequestIDFromContext(c); requestId != "" {
		req.Header.Add(inHttp.HeaderRequestID, requestId)
	}
	resp, err := cc.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed requesting %s with error=%w", requestUrl, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("catalog returned status code=%d for %s", resp.StatusCode, requestUrl)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed decoding response from %s with error=%w", requestUrl, err)
	}
	return nil
}
