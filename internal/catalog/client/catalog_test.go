package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/nhmunna/Swift-E-Commerce/internal/config"
)

const productsBody = `[
	{
		"id": 1,
		"title": "Fjallraven - Foldsack No. 1 Backpack",
		"price": 109.95,
		"description": "Your perfect pack for everyday use",
		"category": "men's clothing",
		"image": "https://fakestoreapi.com/img/81fPKd-2AYL.jpg",
		"rating": {"rate": 3.9, "count": 120}
	},
	{
		"id": 2,
		"title": "Mens Casual Premium Slim Fit T-Shirts",
		"price": 22.3,
		"description": "Slim-fitting style",
		"category": "men's clothing",
		"image": "https://fakestoreapi.com/img/71-3HjGNDUL.jpg",
		"rating": {"rate": 4.1, "count": 259}
	}
]`

const productBody = `{
	"id": 1,
	"title": "Fjallraven - Foldsack No. 1 Backpack",
	"price": 109.95,
	"description": "Your perfect pack for everyday use",
	"category": "men's clothing",
	"image": "https://fakestoreapi.com/img/81fPKd-2AYL.jpg",
	"rating": {"rate": 3.9, "count": 120}
}`

func testContext() context.Context {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339Nano}).
		WithContext(context.Background())
}

func newTestCatalogClient(t *testing.T, baseUrl string) CatalogClient {
	server := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { redisClient.Close() })
	return NewCatalogClient(
		config.Catalog{BaseUrl: baseUrl, TimeoutSeconds: 5},
		redisClient,
	)
}

func TestFindProducts(t *testing.T) {
	t.Run("given catalog response should return parsed products", func(t *testing.T) {
		catalog := httptest.NewServer(
			http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.EqualValues(t, "/products", r.URL.Path)
				w.Write([]byte(productsBody))
			}),
		)
		defer catalog.Close()

		products := newTestCatalogClient(t, catalog.URL).FindProducts(testContext())

		assert.Len(t, products, 2)
		assert.EqualValues(t, int64(1), products[0].ID)
		assert.EqualValues(t, "Fjallraven - Foldsack No. 1 Backpack", products[0].Title)
		assert.EqualValues(t, "109.95", products[0].Price.StringFixed(2))
		assert.EqualValues(t, int64(259), products[1].Rating.Count)
	})

	t.Run("given unreachable catalog should return empty slice", func(t *testing.T) {
		catalog := httptest.NewServer(http.NotFoundHandler())
		catalog.Close()

		products := newTestCatalogClient(t, catalog.URL).FindProducts(testContext())

		assert.NotNil(t, products)
		assert.Empty(t, products)
	})

	t.Run("given catalog server error should return empty slice", func(t *testing.T) {
		catalog := httptest.NewServer(
			http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			}),
		)
		defer catalog.Close()

		products := newTestCatalogClient(t, catalog.URL).FindProducts(testContext())

		assert.NotNil(t, products)
		assert.Empty(t, products)
	})

	t.Run("given malformed catalog body should return empty slice", func(t *testing.T) {
		catalog := httptest.NewServer(
			http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"not":"a list"`))
			}),
		)
		defer catalog.Close()

		products := newTestCatalogClient(t, catalog.URL).FindProducts(testContext())

		assert.NotNil(t, products)
		assert.Empty(t, products)
	})

	t.Run("given cached products should not hit the catalog again", func(t *testing.T) {
		catalog := httptest.NewServer(
			http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(productsBody))
			}),
		)
		catalogClient := newTestCatalogClient(t, catalog.URL)

		first := catalogClient.FindProducts(testContext())
		catalog.Close()
		second := catalogClient.FindProducts(testContext())

		assert.EqualValues(t, first, second, "cached result should match the first fetch")
	})
}

func TestFindProductsByCategory(t *testing.T) {
	t.Run("given category should request the category path", func(t *testing.T) {
		catalog := httptest.NewServer(
			http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.EqualValues(t, "/products/category/men's clothing", r.URL.Path)
				w.Write([]byte(productsBody))
			}),
		)
		defer catalog.Close()

		products := newTestCatalogClient(t, catalog.URL).
			FindProductsByCategory(testContext(), "men's clothing")

		assert.Len(t, products, 2)
	})

	t.Run("given catalog failure should return empty slice", func(t *testing.T) {
		catalog := httptest.NewServer(
			http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
			}),
		)
		defer catalog.Close()

		products := newTestCatalogClient(t, catalog.URL).
			FindProductsByCategory(testContext(), "electronics")

		assert.NotNil(t, products)
		assert.Empty(t, products)
	})
}

func TestFindProductById(t *testing.T) {
	t.Run("given existing product should return it", func(t *testing.T) {
		catalog := httptest.NewServer(
			http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.EqualValues(t, "/products/1", r.URL.Path)
				w.Write([]byte(productBody))
			}),
		)
		defer catalog.Close()

		product := newTestCatalogClient(t, catalog.URL).FindProductById(testContext(), 1)

		assert.NotNil(t, product)
		assert.EqualValues(t, int64(1), product.ID)
		assert.EqualValues(t, "109.95", product.Price.StringFixed(2))
	})

	t.Run("given unknown product should return nil", func(t *testing.T) {
		catalog := httptest.NewServer(
			http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			}),
		)
		defer catalog.Close()

		product := newTestCatalogClient(t, catalog.URL).FindProductById(testContext(), 999)

		assert.Nil(t, product)
	})

	t.Run("given empty body should return nil", func(t *testing.T) {
		catalog := httptest.NewServer(
			http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{}`))
			}),
		)
		defer catalog.Close()

		product := newTestCatalogClient(t, catalog.URL).FindProductById(testContext(), 1)

		assert.Nil(t, product)
	})

	t.Run("given cached product should survive catalog shutdown", func(t *testing.T) {
		catalog := httptest.NewServer(
			http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(productBody))
			}),
		)
		catalogClient := newTestCatalogClient(t, catalog.URL)

		first := catalogClient.FindProductById(testContext(), 1)
		catalog.Close()
		second := catalogClient.FindProductById(testContext(), 1)

		assert.NotNil(t, first)
		assert.NotNil(t, second)
		assert.EqualValues(t, first, second, "cached result should match the first fetch")
	})
}

func TestFindCategories(t *testing.T) {
	t.Run("given catalog response should return categories", func(t *testing.T) {
		catalog := httptest.NewServer(
			http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.EqualValues(t, "/products/categories", r.URL.Path)
				w.Write([]byte(`["electronics","jewelery","men's clothing","women's clothing"]`))
			}),
		)
		defer catalog.Close()

		categories := newTestCatalogClient(t, catalog.URL).FindCategories(testContext())

		assert.EqualValues(
			t,
			[]string{"electronics", "jewelery", "men's clothing", "women's clothing"},
			categories,
		)
	})

	t.Run("given catalog failure should return empty slice", func(t *testing.T) {
		catalog := httptest.NewServer(http.NotFoundHandler())
		catalog.Close()

		categories := newTestCatalogClient(t, catalog.URL).FindCategories(testContext())

		assert.NotNil(t, categories)
		assert.Empty(t, categories)
	})
}
