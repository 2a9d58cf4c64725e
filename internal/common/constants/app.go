package constants

const (
	AppStorefrontService = "storefront-service"
	AppCartStore         = "cart-store"
	AppCatalogClient     = "catalog-client"
	AppMainSwiftcart     = "main swiftcart"
)
