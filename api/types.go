// Package api implements the resilient storefront API client. It is the
// single point of contact with the remote commerce backend: it owns the
// backend-availability state, attaches bearer credentials, and transparently
// degrades to a built-in mock dataset when the backend is unreachable, so the
// rest of the system never needs to special-case "backend down".
package api

import "time"

// Product is a read-only, externally sourced catalog entry. Stock and Reviews
// are only populated on the detail view.
type Product struct {
	ID           int64    `json:"id"`
	Name         string   `json:"name"`
	Price        float64  `json:"price"`
	Description  string   `json:"description"`
	CategoryName string   `json:"categoryName"`
	ImageURL     string   `json:"imageUrl"`
	Stock        int      `json:"stock"`
	Reviews      []Review `json:"reviews,omitempty"`
}

// Category groups products; ParentCategoryName is empty for root categories.
type Category struct {
	ID                 int64  `json:"id"`
	Name               string `json:"name"`
	ParentCategoryName string `json:"parentCategoryName,omitempty"`
}

// Review is a customer review attached to a product
type Review struct {
	ID        int64     `json:"id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	UserName  string    `json:"userName"`
	CreatedAt time.Time `json:"createdAt"`
}

// Cart is the server-authoritative cart snapshot. Items are keyed by product:
// a product appears at most once per cart.
type Cart struct {
	ID     int64      `json:"id"`
	UserID int64      `json:"userId"`
	Items  []CartItem `json:"items"`
}

// CartItem is one cart line. Price is a snapshot at fetch time, not
// necessarily the live catalog price.
type CartItem struct {
	ID          int64   `json:"id"`
	ProductID   int64   `json:"productId"`
	ProductName string  `json:"productName"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	ImageURL    string  `json:"imageUrl"`
}

// User is the authenticated profile returned by the auth endpoints
type User struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role"`
	Address   string `json:"address"`
}

// Order is a placed order as reported by the backend
type Order struct {
	ID              int64       `json:"id"`
	UserID          int64       `json:"userId"`
	Status          string      `json:"status"`
	TotalAmount     float64     `json:"totalAmount"`
	ShippingAddress string      `json:"shippingAddress"`
	CreatedAt       time.Time   `json:"createdAt"`
	Items           []OrderItem `json:"items,omitempty"`
}

// OrderItem is one line of a placed order
type OrderItem struct {
	ProductID   int64   `json:"productId"`
	ProductName string  `json:"productName"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
}

// PriceAlert asks the backend to notify the user when a product drops below
// a target price.
type PriceAlert struct {
	ID          int64     `json:"id"`
	ProductID   int64     `json:"productId"`
	TargetPrice float64   `json:"targetPrice"`
	CreatedAt   time.Time `json:"createdAt"`
}

// StatusResponse is the generic success envelope returned by mutating endpoints
type StatusResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// RegisterRequest is the registration payload
type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Address   string `json:"address,omitempty"`
}

// LoginRequest is the login payload; the backend answers with a bearer token
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AddCartItemRequest adds a product to the current user's cart
type AddCartItemRequest struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

// UpdateCartItemRequest replaces the quantity of an existing cart line
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// PlaceOrderRequest submits a set of cart line identifiers and a shipping
// address; payment is out of scope.
type PlaceOrderRequest struct {
	CartItemIDs     []int64 `json:"cartItemIds"`
	ShippingAddress string  `json:"shippingAddress"`
}

// CreateReviewRequest creates a product review
type CreateReviewRequest struct {
	ProductID int64  `json:"productId"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
}

// CategoryRequest creates or updates a category (admin)
type CategoryRequest struct {
	Name             string `json:"name"`
	ParentCategoryID int64  `json:"parentCategoryId,omitempty"`
}

// CreatePriceAlertRequest creates a price alert for a product
type CreatePriceAlertRequest struct {
	ProductID   int64   `json:"productId"`
	TargetPrice float64 `json:"targetPrice"`
}
