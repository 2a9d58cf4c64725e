package service

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	catalogResponse "github.com/nhmunna/Swift-E-Commerce/catalog/pkg/response"
)

type (
	setupFunc    func(context.Context) (*miniredis.Miniredis, *redis.Client, CartService)
	teardownFunc func(*miniredis.Miniredis, *redis.Client)
)

func setup(t *testing.T) setupFunc {
	return func(c context.Context) (*miniredis.Miniredis, *redis.Client, CartService) {
		server := miniredis.RunT(t)

		redisClient := redis.NewClient(&redis.Options{Addr: server.Addr()})
		if err := redisClient.Ping(c).Err(); err != nil {
			t.Fatalf("failed ping redis client with error: %s", err)
		}

		return server, redisClient, NewCartService(redisClient)
	}
}

func teardown(t *testing.T) teardownFunc {
	return func(server *miniredis.Miniredis, redisClient *redis.Client) {
		if err := redisClient.Close(); err != nil {
			t.Fatalf("failed closing redis client with error: %s", err)
		}
		server.Close()
	}
}

func seedProducts() []catalogResponse.Product {
	return []catalogResponse.Product{
		{
			ID:          1,
			Title:       "Fjallraven - Foldsack No. 1 Backpack",
			Price:       decimal.NewFromFloat(19.99),
			Description: "Your perfect pack for everyday use",
			Category:    "men's clothing",
			Image:       "https://fakestoreapi.com/img/81fPKd-2AYL.jpg",
			Rating:      catalogResponse.Rating{Rate: 3.9, Count: 120},
		},
		{
			ID:          2,
			Title:       "Mens Casual Premium Slim Fit T-Shirts",
			Price:       decimal.NewFromFloat(22.3),
			Description: "Slim-fitting style, contrast raglan long sleeve",
			Category:    "men's clothing",
			Image:       "https://fakestoreapi.com/img/71-3HjGNDUL.jpg",
			Rating:      catalogResponse.Rating{Rate: 4.1, Count: 259},
		},
	}
}
