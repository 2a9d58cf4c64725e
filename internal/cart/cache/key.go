package cache

// KeyCarts is the storage namespace for persisted carts, one JSON document
// per session.
const KeyCarts = "swiftcart:carts:%s"
