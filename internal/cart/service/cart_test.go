package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/nhmunna/Swift-E-Commerce/internal/cart/cache"
	"github.com/nhmunna/Swift-E-Commerce/cart/pkg/response"
)

type CartMutationTest struct {
	name     string
	setup    setupFunc
	teardown teardownFunc
	operate  func(t *testing.T, c context.Context, svc CartService) response.Cart
	expected func() response.Cart
}

func TestCartMutations(t *testing.T) {
	products := seedProducts()
	tests := []CartMutationTest{
		{
			name:     "given empty storage when finding cart should return initialized empty cart",
			setup:    setup(t),
			teardown: teardown(t),
			operate: func(t *testing.T, c context.Context, svc CartService) response.Cart {
				cart, err := svc.FindCart(c, "session-1")
				assert.NoError(t, err)
				return cart
			},
			expected: func() response.Cart {
				return response.Cart{Items: []response.CartItem{}}
			},
		},
		{
			name:     "given repeated add of same product should merge into a single line",
			setup:    setup(t),
			teardown: teardown(t),
			operate: func(t *testing.T, c context.Context, svc CartService) response.Cart {
				for range 3 {
					if _, err := svc.AddItem(c, "session-1", products[0]); err != nil {
						t.Fatalf("failed adding item with error: %s", err)
					}
				}
				cart, err := svc.FindCart(c, "session-1")
				assert.NoError(t, err)
				return cart
			},
			expected: func() response.Cart {
				item := response.NewCartItem(products[0])
				item.Quantity = 3
				return response.Cart{Items: []response.CartItem{item}}
			},
		},
		{
			name:     "given adds of distinct products should keep separate lines in insertion order",
			setup:    setup(t),
			teardown: teardown(t),
			operate: func(t *testing.T, c context.Context, svc CartService) response.Cart {
				if _, err := svc.AddItem(c, "session-1", products[0]); err != nil {
					t.Fatalf("failed adding item with error: %s", err)
				}
				if _, err := svc.AddItem(c, "session-1", products[1]); err != nil {
					t.Fatalf("failed adding item with error: %s", err)
				}
				cart, err := svc.FindCart(c, "session-1")
				assert.NoError(t, err)
				return cart
			},
			expected: func() response.Cart {
				return response.Cart{Items: []response.CartItem{
					response.NewCartItem(products[0]),
					response.NewCartItem(products[1]),
				}}
			},
		},
		{
			name:     "given update quantity to zero should remove the item",
			setup:    setup(t),
			teardown: teardown(t),
			operate: func(t *testing.T, c context.Context, svc CartService) response.Cart {
				if _, err := svc.AddItem(c, "session-1", products[0]); err != nil {
					t.Fatalf("failed adding item with error: %s", err)
				}
				if _, err := svc.AddItem(c, "session-1", products[1]); err != nil {
					t.Fatalf("failed adding item with error: %s", err)
				}
				cart, err := svc.UpdateQuantity(c, "session-1", products[0].ID, 0)
				assert.NoError(t, err)
				return cart
			},
			expected: func() response.Cart {
				return response.Cart{Items: []response.CartItem{
					response.NewCartItem(products[1]),
				}}
			},
		},
		{
			name:     "given update quantity to negative should remove the item",
			setup:    setup(t),
			teardown: teardown(t),
			operate: func(t *testing.T, c context.Context, svc CartService) response.Cart {
				if _, err := svc.AddItem(c, "session-1", products[0]); err != nil {
					t.Fatalf("failed adding item with error: %s", err)
				}
				cart, err := svc.UpdateQuantity(c, "session-1", products[0].ID, -2)
				assert.NoError(t, err)
				return cart
			},
			expected: func() response.Cart {
				return response.Cart{Items: []response.CartItem{}}
			},
		},
		{
			name:     "given update quantity of present item should overwrite the quantity",
			setup:    setup(t),
			teardown: teardown(t),
			operate: func(t *testing.T, c context.Context, svc CartService) response.Cart {
				if _, err := svc.AddItem(c, "session-1", products[0]); err != nil {
					t.Fatalf("failed adding item with error: %s", err)
				}
				cart, err := svc.UpdateQuantity(c, "session-1", products[0].ID, 7)
				assert.NoError(t, err)
				return cart
			},
			expected: func() response.Cart {
				item := response.NewCartItem(products[0])
				item.Quantity = 7
				return response.Cart{Items: []response.CartItem{item}}
			},
		},
		{
			name:     "given remove of absent product should keep the cart unchanged",
			setup:    setup(t),
			teardown: teardown(t),
			operate: func(t *testing.T, c context.Context, svc CartService) response.Cart {
				if _, err := svc.AddItem(c, "session-1", products[0]); err != nil {
					t.Fatalf("failed adding item with error: %s", err)
				}
				cart, err := svc.RemoveItem(c, "session-1", 999)
				assert.NoError(t, err)
				return cart
			},
			expected: func() response.Cart {
				return response.Cart{Items: []response.CartItem{
					response.NewCartItem(products[0]),
				}}
			},
		},
		{
			name:     "given cleared cart should return empty cart",
			setup:    setup(t),
			teardown: teardown(t),
			operate: func(t *testing.T, c context.Context, svc CartService) response.Cart {
				if _, err := svc.AddItem(c, "session-1", products[0]); err != nil {
					t.Fatalf("failed adding item with error: %s", err)
				}
				if err := svc.ClearCart(c, "session-1"); err != nil {
					t.Fatalf("failed clearing cart with error: %s", err)
				}
				cart, err := svc.FindCart(c, "session-1")
				assert.NoError(t, err)
				return cart
			},
			expected: func() response.Cart {
				return response.Cart{Items: []response.CartItem{}}
			},
		},
		{
			name:     "given carts in different sessions should not affect each other",
			setup:    setup(t),
			teardown: teardown(t),
			operate: func(t *testing.T, c context.Context, svc CartService) response.Cart {
				if _, err := svc.AddItem(c, "session-1", products[0]); err != nil {
					t.Fatalf("failed adding item with error: %s", err)
				}
				if _, err := svc.AddItem(c, "session-2", products[1]); err != nil {
					t.Fatalf("failed adding item with error: %s", err)
				}
				cart, err := svc.FindCart(c, "session-1")
				assert.NoError(t, err)
				return cart
			},
			expected: func() response.Cart {
				return response.Cart{Items: []response.CartItem{
					response.NewCartItem(products[0]),
				}}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := context.Background()
			c = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339Nano}).
				WithContext(c)
			server, redisClient, cartService := tt.setup(c)
			defer tt.teardown(server, redisClient)

			actual := tt.operate(t, c, cartService)

			assert.EqualValues(t, tt.expected(), actual, "cart should be equal to expected")
		})
	}
}

func TestFindCartResetsCorruptedDocument(t *testing.T) {
	c := context.Background()
	c = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339Nano}).
		WithContext(c)
	server, redisClient, cartService := setup(t)(c)
	defer teardown(t)(server, redisClient)

	cacheKey := fmt.Sprintf(cache.KeyCarts, "session-1")
	if err := server.Set(cacheKey, "{not json"); err != nil {
		t.Fatalf("failed seeding corrupted cart with error: %s", err)
	}

	cart, err := cartService.FindCart(c, "session-1")
	assert.NoError(t, err)
	assert.EqualValues(t, response.Cart{Items: []response.CartItem{}}, cart)

	stored, err := server.Get(cacheKey)
	if err != nil {
		t.Fatalf("failed reading stored cart with error: %s", err)
	}
	reloaded := response.Cart{}
	assert.NoError(t, json.Unmarshal([]byte(stored), &reloaded), "stored document should be valid json again")
}

func TestItemCountSumsQuantities(t *testing.T) {
	c := context.Background()
	c = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339Nano}).
		WithContext(c)
	server, redisClient, cartService := setup(t)(c)
	defer teardown(t)(server, redisClient)

	products := seedProducts()
	for range 2 {
		if _, err := cartService.AddItem(c, "session-1", products[0]); err != nil {
			t.Fatalf("failed adding item with error: %s", err)
		}
	}
	for range 3 {
		if _, err := cartService.AddItem(c, "session-1", products[1]); err != nil {
			t.Fatalf("failed adding item with error: %s", err)
		}
	}

	count, err := cartService.ItemCount(c, "session-1")
	assert.NoError(t, err)
	assert.EqualValues(t, int32(5), count, "item count should sum quantities across lines")
}

func TestCartSurvivesServiceRestart(t *testing.T) {
	c := context.Background()
	c = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339Nano}).
		WithContext(c)
	server, redisClient, cartService := setup(t)(c)
	defer teardown(t)(server, redisClient)

	products := seedProducts()
	expected, err := cartService.AddItem(c, "session-1", products[0])
	if err != nil {
		t.Fatalf("failed adding item with error: %s", err)
	}

	reopened := NewCartService(redisClient)
	actual, err := reopened.FindCart(c, "session-1")
	assert.NoError(t, err)
	assert.EqualValues(t, expected, actual, "cart should be readable by a fresh service instance")
}
