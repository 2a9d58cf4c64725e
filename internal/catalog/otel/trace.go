package otel

import (
	"go.opentelemetry.io/otel"

	"github.com/nhmunna/Swift-E-Commerce/internal/common/constants"
)

var Tracer = otel.Tracer(constants.AppCatalogClient)
