package cache

import "time"

const (
	KeyProducts    = "swiftcart:products"
	KeyProductById = "swiftcart:products:%d"
	KeyCategories  = "swiftcart:categories"
)

const TTL = time.Hour
