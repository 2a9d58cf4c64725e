package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	inOtel "github.com/nhmunna/Swift-E-Commerce/internal/otel"
)

func WriteJsonResponse(
	c context.Context,
	w http.ResponseWriter,
	header map[string]string,
	body map[string]interface{},
) {
	c, span := inOtel.Tracer.Start(c, "WriteJsonResponse")
	defer span.End()

	logger := zerolog.Ctx(c).With().Str("tag", "WriteJsonResponse").Logger()

	w.Header().Add(HeaderContentType, HeaderValueJson)
	for k, v := range header {
		w.Header().Add(k, v)
	}

	if v, ok := body["statusCode"]; ok {
		w.WriteHeader(v.(int))
	}

	err := json.NewEncoder(w).Encode(body)
	if err != nil {
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return
	}
}

func SessionIDFromRequest(r *http.Request) string {
	sessionID := r.Header.Get(HeaderSessionID)
	if sessionID == "" {
		return SessionDefault
	}
	return sessionID
}
