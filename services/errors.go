package services

import "errors"

// Validation and state errors surfaced by the service layer. Controllers map
// these onto HTTP status codes; anything else is treated as a database error.
var (
	ErrNoItems           = errors.New("order must contain at least one line item")
	ErrNoSupplier        = errors.New("order must reference a supplier")
	ErrSupplierNotFound  = errors.New("supplier does not exist")
	ErrProductNotFound   = errors.New("one or more products do not exist")
	ErrDuplicateProduct  = errors.New("a product may appear at most once per order")
	ErrInvalidQuantity   = errors.New("quantity must be greater than zero")
	ErrInvalidUnitPrice  = errors.New("unit price must be greater than zero")
	ErrOrderNotFound     = errors.New("order does not exist")
	ErrOrderFinalized    = errors.New("order is already delivered or cancelled")
	ErrInvalidTransition = errors.New("status transition is not permitted")
	ErrStockNotFound     = errors.New("no stock row for that product and warehouse")
	ErrInsufficientStock = errors.New("transfer quantity exceeds available stock")
	ErrSameWarehouse     = errors.New("source and destination warehouses must differ")
	ErrNoWarehouses      = errors.New("no warehouse exists to receive stock")
	ErrDuplicatesPresent = errors.New("duplicate stock rows remain; run cleanup first")
)
