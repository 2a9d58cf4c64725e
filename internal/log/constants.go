package log

const (
	KeyAppName   = "app"
	KeyTag       = "tag"
	KeyProcess   = "process"
	KeyRequestID = "requestId"
	KeyConfig    = "config"

	KeyRequest       = "request"
	KeyRequestBody   = "requestBody"
	KeyRequestHeader = "requestHeader"
	KeyRequestHost   = "host"
	KeyRequestIp     = "requesterIP"
	KeyRequestMethod = "requestMethod"
	KeyRequestURI    = "requestURI"
	KeyRequestURL    = "requestURL"
	KeyPathValues    = "pathValues"

	KeySessionID = "sessionId"
	KeyCart      = "cart"
	KeyCartItems = "cartItems"
	KeyItemCount = "itemCount"
	KeyQuantity  = "quantity"
	KeyTotals    = "totals"

	KeyProduct    = "product"
	KeyProducts   = "products"
	KeyProductID  = "productId"
	KeyCategory   = "category"
	KeyCategories = "categories"

	KeyCacheKey  = "cacheKey"
	KeyJsonCache = "jsonCache"
)
