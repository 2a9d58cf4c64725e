package controller

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/nhmunna/Swift-E-Commerce/internal/cart/otel"
	"github.com/nhmunna/Swift-E-Commerce/internal/cart/service"
	"github.com/nhmunna/Swift-E-Commerce/cart/pkg/request"
	"github.com/nhmunna/Swift-E-Commerce/internal/catalog/client"
	commonErrors "github.com/nhmunna/Swift-E-Commerce/internal/errors"
	commonHttp "github.com/nhmunna/Swift-E-Commerce/internal/http"
	"github.com/nhmunna/Swift-E-Commerce/internal/log"
	inOtel "github.com/nhmunna/Swift-E-Commerce/internal/otel"
)

type CartController struct {
	service *service.CartService
	catalog *client.CatalogClient
}

func AttachCartController(
	mux *mux.Router,
	service *service.CartService,
	catalog *client.CatalogClient,
) {
	controller := CartController{service: service, catalog: catalog}

	router := mux.PathPrefix("/carts").Subrouter()
	router.HandleFunc("", controller.FindCart).Methods(http.MethodGet)
	router.HandleFunc("", controller.ClearCart).Methods(http.MethodDelete)
	router.HandleFunc("/count", controller.ItemCount).Methods(http.MethodGet)
	router.HandleFunc("/items", controller.AddItem).Methods(http.MethodPost)
	router.HandleFunc("/items/{productId:[0-9]+}", controller.UpdateQuantity).
		Methods(http.MethodPut)
	router.HandleFunc("/items/{productId:[0-9]+}", controller.RemoveItem).
		Methods(http.MethodDelete)
}

func (t CartController) FindCart(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController FindCart")
	defer span.End()

	sessionID := commonHttp.SessionIDFromRequest(r)
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartController FindCart").
		Str(log.KeySessionID, sessionID).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding cart").Logger()
	logger.Info().Msg("finding cart")
	c = logger.WithContext(c)
	cart, err := t.service.FindCart(c, sessionID)
	if err != nil {
		err = fmt.Errorf("failed finding cart with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusInternalServerError,
			"message":    err.Error(),
		})
		return
	}
	logger = logger.With().Any(log.KeyCart, cart).Logger()
	logger.Info().Msg("found cart")

	commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "cart found",
		"data": map[string]interface{}{
			"cart":      cart,
			"totals":    cart.Totals(),
			"itemCount": cart.ItemCount(),
		},
	})
}

func (t CartController) ItemCount(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController ItemCount")
	defer span.End()

	sessionID := commonHttp.SessionIDFromRequest(r)
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartController ItemCount").
		Str(log.KeySessionID, sessionID).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "counting cart items").Logger()
	logger.Info().Msg("counting cart items")
	c = logger.WithContext(c)
	count, err := t.service.ItemCount(c, sessionID)
	if err != nil {
		err = fmt.Errorf("failed counting cart items with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusInternalServerError,
			"message":    err.Error(),
		})
		return
	}
	logger = logger.With().Int32(log.KeyItemCount, count).Logger()
	logger.Info().Msg("counted cart items")

	commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    fmt.Sprintf("cart has %d items", count),
		"data": map[string]interface{}{
			"itemCount": count,
		},
	})
}

func (t CartController) AddItem(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController AddItem")
	defer span.End()

	sessionID := commonHttp.SessionIDFromRequest(r)
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartController AddItem").
		Str(log.KeySessionID, sessionID).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "decoding requestbody").Logger()
	logger.Info().Msg("decoding requestbody")
	reqBody := request.AddItem{}
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		err = fmt.Errorf("failed decoding request body with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("decoded request body")

	logger = logger.With().Str(log.KeyProcess, "validating requestbody").Logger()
	logger.Info().Msg("validating request body")
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.StructCtx(c, reqBody); err != nil {
		err = fmt.Errorf("failed validating request body with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}
	logger = logger.With().Int64(log.KeyProductID, reqBody.ProductId).Logger()
	logger.Info().Msg("validated request body")

	logger = logger.With().Str(log.KeyProcess, "finding product in catalog").Logger()
	logger.Info().Msgf("finding productId=%d in catalog", reqBody.ProductId)
	c = logger.WithContext(c)
	product := t.catalog.FindProductById(c, reqBody.ProductId)
	if product == nil {
		err := fmt.Errorf("productId=%d with error=%w", reqBody.ProductId, commonErrors.ErrProductNotFound)
		inOtel.RecordError(err, span)
		logger.Info().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusNotFound,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msgf("found productId=%d in catalog", reqBody.ProductId)

	logger = logger.With().Str(log.KeyProcess, "adding item to cart").Logger()
	logger.Info().Msg("adding item to cart")
	c = logger.WithContext(c)
	cart, err := t.service.AddItem(c, sessionID, *product)
	if err != nil {
		err = fmt.Errorf("failed adding item to cart with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusInternalServerError,
			"message":    err.Error(),
		})
		return
	}
	logger = logger.With().Any(log.KeyCart, cart).Logger()
	logger.Info().Msg("added item to cart")

	commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "added to cart",
		"data": map[string]interface{}{
			"cart":      cart,
			"itemCount": cart.ItemCount(),
		},
	})
}

func (t CartController) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController UpdateQuantity")
	defer span.End()

	sessionID := commonHttp.SessionIDFromRequest(r)
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartController UpdateQuantity").
		Str(log.KeySessionID, sessionID).
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

	logger = logger.With().Str(log.KeyProcess, "decoding requestbody").Logger()
	logger.Info().Msg("decoding requestbody")
	reqBody := request.UpdateQuantity{}
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		err = fmt.Errorf("failed decoding request body with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("decoded request body")

	logger = logger.With().Str(log.KeyProcess, "validating requestbody").Logger()
	logger.Info().Msg("validating request body")
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.StructCtx(c, reqBody); err != nil {
		err = fmt.Errorf("failed validating request body with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}
	logger = logger.With().Int32(log.KeyQuantity, *reqBody.Quantity).Logger()
	logger.Info().Msg("validated request body")

	logger = logger.With().Str(log.KeyProcess, "updating quantity").Logger()
	logger.Info().Msgf("updating quantity for productId=%d", productId)
	c = logger.WithContext(c)
	cart, err := t.service.UpdateQuantity(c, sessionID, productId, *reqBody.Quantity)
	if err != nil {
		err = fmt.Errorf("failed updating quantity for productId=%d with error=%w", productId, err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusInternalServerError,
			"message":    err.Error(),
		})
		return
	}
	logger = logger.With().Any(log.KeyCart, cart).Logger()
	logger.Info().Msgf("updated quantity for productId=%d", productId)

	commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    fmt.Sprintf("updated quantity for productId=%d", productId),
		"data": map[string]interface{}{
			"cart":      cart,
			"totals":    cart.Totals(),
			"itemCount": cart.ItemCount(),
		},
	})
}

func (t CartController) RemoveItem(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController RemoveItem")
	defer span.End()

	sessionID := commonHttp.SessionIDFromRequest(r)
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartController RemoveItem").
		Str(log.KeySessionID, sessionID).
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

	logger = logger.With().Str(log.KeyProcess, "removing cart item").Logger()
	logger.Info().Msgf("removing productId=%d from cart", productId)
	c = logger.WithContext(c)
	cart, err := t.service.RemoveItem(c, sessionID, productId)
	if err != nil {
		err = fmt.Errorf("failed removing productId=%d from cart with error=%w", productId, err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusInternalServerError,
			"message":    err.Error(),
		})
		return
	}
	logger = logger.With().Any(log.KeyCart, cart).Logger()
	logger.Info().Msgf("removed productId=%d from cart", productId)

	commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    fmt.Sprintf("removed productId=%d from cart", productId),
		"data": map[string]interface{}{
			"cart":      cart,
			"totals":    cart.Totals(),
			"itemCount": cart.ItemCount(),
		},
	})
}

func (t CartController) ClearCart(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController ClearCart")
	defer span.End()

	sessionID := commonHttp.SessionIDFromRequest(r)
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartController ClearCart").
		Str(log.KeySessionID, sessionID).
		Str(log.KeyProcess, "clearing cart").
		Logger()

	logger.Info().Msg("clearing cart")
	c = logger.WithContext(c)
	err := t.service.ClearCart(c, sessionID)
	if err != nil {
		err = fmt.Errorf("failed clearing cart with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusInternalServerError,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("cleared cart")

	commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "cart cleared",
	})
}
