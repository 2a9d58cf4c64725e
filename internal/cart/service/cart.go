package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/nhmunna/Swift-E-Commerce/internal/cart/cache"
	"github.com/nhmunna/Swift-E-Commerce/internal/cart/otel"
	"github.com/nhmunna/Swift-E-Commerce/cart/pkg/response"
	catalogResponse "github.com/nhmunna/Swift-E-Commerce/catalog/pkg/response"
	"github.com/nhmunna/Swift-E-Commerce/internal/log"
	inOtel "github.com/nhmunna/Swift-E-Commerce/internal/otel"
)

// CartService owns the persisted cart document. Every mutating operation
// reads the latest persisted value, applies the change and writes the whole
// document back before returning; there is no in-process cache layer.
type CartService struct {
	cache *redis.Client
}

func NewCartService(cache *redis.Client) CartService {
	return CartService{cache: cache}
}

func (svc CartService) FindCart(c context.Context, sessionID string) (response.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService FindCart")
	defer span.End()

	cacheKey := fmt.Sprintf(cache.KeyCarts, sessionID)
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService FindCart").
		Str(log.KeySessionID, sessionID).
		Str(log.KeyCacheKey, cacheKey).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding cart in storage").Logger()
	logger.Trace().Msg("finding cart in storage")
	jsonCache, err := svc.cache.Get(c, cacheKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			logger = logger.With().Str(log.KeyProcess, "initializing empty cart").Logger()
			logger.Info().Msg("no cart found, creating new one")
			cart := response.Cart{Items: []response.CartItem{}}
			c = logger.WithContext(c)
			if err := svc.saveCart(c, cacheKey, cart); err != nil {
				inOtel.RecordError(err, span)
				logger.Error().Err(err).Msg(err.Error())
				return response.Cart{}, err
			}
			logger.Info().Msg("initialized empty cart")
			return cart, nil
		}
		err = fmt.Errorf("failed finding cart in storage with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger.Trace().Msg("found cart in storage")

	logger = logger.With().Str(log.KeyProcess, "unmarshaling cart").Logger()
	logger.Trace().Msg("unmarshaling cart")
	cart := response.Cart{}
	err = json.Unmarshal([]byte(jsonCache), &cart)
	if err != nil {
		// Corrupted documents are reset to an empty cart instead of failing
		// every later operation on a record nobody can repair.
		err = fmt.Errorf("failed unmarshaling cart, resetting to empty with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Warn().Err(err).Msg(err.Error())
		cart = response.Cart{Items: []response.CartItem{}}
		c = logger.WithContext(c)
		if err := svc.saveCart(c, cacheKey, cart); err != nil {
			inOtel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return response.Cart{}, err
		}
		return cart, nil
	}
	if cart.Items == nil {
		cart.Items = []response.CartItem{}
	}
	logger = logger.With().Int(log.KeyCartItems, len(cart.Items)).Logger()
	logger.Info().Msg("found cart")

	return cart, nil
}

func (svc CartService) AddItem(
	c context.Context,
	sessionID string,
	product catalogResponse.Product,
) (response.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService AddItem")
	defer span.End()

	cacheKey := fmt.Sprintf(cache.KeyCarts, sessionID)
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService AddItem").
		Str(log.KeySessionID, sessionID).
		Int64(log.KeyProductID, product.ID).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding cart").Logger()
	logger.Info().Msg("finding cart")
	c = logger.WithContext(c)
	cart, err := svc.FindCart(c, sessionID)
	if err != nil {
		err = fmt.Errorf("failed finding cart with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger.Info().Msg("found cart")

	logger = logger.With().Str(log.KeyProcess, "merging cart item").Logger()
	span.AddEvent("merging cart item")
	merged := false
	for i, item := range cart.Items {
		if item.ID == product.ID {
			cart.Items[i].Quantity = item.Quantity + 1
			logger.Info().
				Int32(log.KeyQuantity, cart.Items[i].Quantity).
				Msgf("updated quantity for productId=%d", product.ID)
			merged = true
			break
		}
	}
	if !merged {
		cart.Items = append(cart.Items, response.NewCartItem(product))
		logger.Info().Msg("added new item to cart")
	}
	span.AddEvent("merged cart item")

	logger = logger.With().Str(log.KeyProcess, "saving cart").Logger()
	logger.Info().Msg("saving cart")
	c = logger.WithContext(c)
	if err := svc.saveCart(c, cacheKey, cart); err != nil {
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger = logger.With().Int(log.KeyCartItems, len(cart.Items)).Logger()
	logger.Info().Msg("saved cart")

	return cart, nil
}

func (svc CartService) RemoveItem(
	c context.Context,
	sessionID string,
	productId int64,
) (response.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService RemoveItem")
	defer span.End()

	cacheKey := fmt.Sprintf(cache.KeyCarts, sessionID)
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService RemoveItem").
		Str(log.KeySessionID, sessionID).
		Int64(log.KeyProductID, productId).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding cart").Logger()
	logger.Info().Msg("finding cart")
	c = logger.WithContext(c)
	cart, err := svc.FindCart(c, sessionID)
	if err != nil {
		err = fmt.Errorf("failed finding cart with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger.Info().Msg("found cart")

	logger = logger.With().Str(log.KeyProcess, "removing cart item").Logger()
	logger.Info().Msgf("removing productId=%d from cart", productId)
	items := make([]response.CartItem, 0, len(cart.Items))
	for _, item := range cart.Items {
		if item.ID == productId {
			continue
		}
		items = append(items, item)
	}
	cart.Items = items
	logger.Info().Msgf("removed productId=%d from cart", productId)

	logger = logger.With().Str(log.KeyProcess, "saving cart").Logger()
	logger.Info().Msg("saving cart")
	c = logger.WithContext(c)
	if err := svc.saveCart(c, cacheKey, cart); err != nil {
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger = logger.With().Int(log.KeyCartItems, len(cart.Items)).Logger()
	logger.Info().Msg("saved cart")

	return cart, nil
}

func (svc CartService) UpdateQuantity(
	c context.Context,
	sessionID string,
	productId int64,
	quantity int32,
) (response.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService UpdateQuantity")
	defer span.End()

	cacheKey := fmt.Sprintf(cache.KeyCarts, sessionID)
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService UpdateQuantity").
		Str(log.KeySessionID, sessionID).
		Int64(log.KeyProductID, productId).
		Int32(log.KeyQuantity, quantity).
		Logger()

	if quantity < 1 {
		logger.Info().Msg("quantity below one, removing item instead")
		c = logger.WithContext(c)
		return svc.RemoveItem(c, sessionID, productId)
	}

	logger = logger.With().Str(log.KeyProcess, "finding cart").Logger()
	logger.Info().Msg("finding cart")
	c = logger.WithContext(c)
	cart, err := svc.FindCart(c, sessionID)
	if err != nil {
		err = fmt.Errorf("failed finding cart with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger.Info().Msg("found cart")

	logger = logger.With().Str(log.KeyProcess, "updating quantity").Logger()
	logger.Info().Msgf("updating quantity for productId=%d", productId)
	for i, item := range cart.Items {
		if item.ID == productId {
			cart.Items[i].Quantity = quantity
			break
		}
	}
	logger.Info().Msgf("updated quantity for productId=%d", productId)

	logger = logger.With().Str(log.KeyProcess, "saving cart").Logger()
	logger.Info().Msg("saving cart")
	c = logger.WithContext(c)
	if err := svc.saveCart(c, cacheKey, cart); err != nil {
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger.Info().Msg("saved cart")

	return cart, nil
}

func (svc CartService) ClearCart(c context.Context, sessionID string) error {
	c, span := otel.Tracer.Start(c, "CartService ClearCart")
	defer span.End()

	cacheKey := fmt.Sprintf(cache.KeyCarts, sessionID)
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService ClearCart").
		Str(log.KeySessionID, sessionID).
		Str(log.KeyCacheKey, cacheKey).
		Str(log.KeyProcess, "clearing cart").
		Logger()

	logger.Info().Msg("clearing cart")
	c = logger.WithContext(c)
	err := svc.saveCart(c, cacheKey, response.Cart{Items: []response.CartItem{}})
	if err != nil {
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Info().Msg("cleared cart")

	return nil
}

func (svc CartService) ItemCount(c context.Context, sessionID string) (int32, error) {
	c, span := otel.Tracer.Start(c, "CartService ItemCount")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService ItemCount").
		Str(log.KeySessionID, sessionID).
		Str(log.KeyProcess, "counting cart items").
		Logger()

	logger.Trace().Msg("counting cart items")
	c = logger.WithContext(c)
	cart, err := svc.FindCart(c, sessionID)
	if err != nil {
		err = fmt.Errorf("failed finding cart with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return 0, err
	}
	count := cart.ItemCount()
	logger.Info().Int32(log.KeyItemCount, count).Msg("counted cart items")

	return count, nil
}

func (svc CartService) saveCart(c context.Context, cacheKey string, cart response.Cart) error {
	body, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("failed marshaling cart with error=%w", err)
	}
	err = svc.cache.Set(c, cacheKey, body, 0).Err()
	if err != nil {
		return fmt.Errorf("failed saving cart to storage with error=%w", err)
	}
	return nil
}
