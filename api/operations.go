package api

import (
	"fmt"
	"net/http"
)

// Operation identifies a logical backend operation. The client dispatches
// both live requests and mock fallbacks by operation kind, so the fallback
// table is a total mapping instead of fragile endpoint-string matching.
type Operation int

const (
	// Auth
	OpRegister Operation = iota
	OpLogin
	OpProfile

	// Catalog
	OpListProducts
	OpGetProduct
	OpListProductsByCategory
	OpCreateProduct
	OpUpdateProduct

	// Categories
	OpListCategories
	OpGetCategory
	OpListSubcategories
	OpCreateCategory
	OpUpdateCategory
	OpDeleteCategory

	// Cart
	OpViewCart
	OpAddCartItem
	OpUpdateCartItem
	OpRemoveCartItem

	// Orders
	OpPlaceOrder
	OpOrderHistory
	OpGetOrder
	OpCancelOrder
	OpListAllOrders
	OpUpdateOrderStatus

	// Reviews
	OpCreateReview
	OpListProductReviews
	OpDeleteReview

	// Price alerts
	OpCreatePriceAlert
	OpListPriceAlerts
	OpDeletePriceAlert
)

// opSpec describes the HTTP shape of an operation. Path is a format string;
// args supplied by the caller fill its verbs in order.
type opSpec struct {
	name   string
	method string
	path   string
}

var opSpecs = map[Operation]opSpec{
	OpRegister: {"auth.register", http.MethodPost, "/api/auth/register"},
	OpLogin:    {"auth.login", http.MethodPost, "/api/auth/login"},
	OpProfile:  {"auth.profile", http.MethodGet, "/api/auth/profile"},

	OpListProducts:           {"products.list", http.MethodGet, "/api/v1/products/viewAll"},
	OpGetProduct:             {"products.get", http.MethodGet, "/api/v1/products/viewById/%s"},
	OpListProductsByCategory: {"products.list_by_category", http.MethodGet, "/api/v1/products/viewByCategory/%s"},
	OpCreateProduct:          {"products.create", http.MethodPost, "/api/v1/products/add"},
	OpUpdateProduct:          {"products.update", http.MethodPut, "/api/v1/products/update/%s"},

	OpListCategories:    {"categories.list", http.MethodGet, "/api/v1/categories/viewAll"},
	OpGetCategory:       {"categories.get", http.MethodGet, "/api/v1/categories/viewById/%s"},
	OpListSubcategories: {"categories.subcategories", http.MethodGet, "/api/v1/categories/viewSubcategory/%s"},
	OpCreateCategory:    {"categories.create", http.MethodPost, "/api/v1/categories/add"},
	OpUpdateCategory:    {"categories.update", http.MethodPut, "/api/v1/categories/update/%s"},
	OpDeleteCategory:    {"categories.delete", http.MethodDelete, "/api/v1/categories/remove/%s"},

	OpViewCart:       {"cart.view", http.MethodGet, "/api/v1/cartItems/view"},
	OpAddCartItem:    {"cart.add", http.MethodPost, "/api/v1/cartItems/add"},
	OpUpdateCartItem: {"cart.update", http.MethodPut, "/api/v1/cartItems/update/%s"},
	OpRemoveCartItem: {"cart.remove", http.MethodDelete, "/api/v1/cartItems/remove/%s"},

	OpPlaceOrder:        {"orders.place", http.MethodPost, "/api/v1/orders/place"},
	OpOrderHistory:      {"orders.history", http.MethodGet, "/api/v1/orders/history"},
	OpGetOrder:          {"orders.get", http.MethodGet, "/api/v1/orders/view/%s"},
	OpCancelOrder:       {"orders.cancel", http.MethodPut, "/api/v1/orders/cancel/%s"},
	OpListAllOrders:     {"orders.list_all", http.MethodGet, "/api/v1/orders/all"},
	OpUpdateOrderStatus: {"orders.update_status", http.MethodPut, "/api/v1/orders/update/%s/status?status=%s"},

	OpCreateReview:       {"reviews.create", http.MethodPost, "/api/v1/reviews"},
	OpListProductReviews: {"reviews.list_by_product", http.MethodGet, "/api/v1/reviews/product/%s"},
	OpDeleteReview:       {"reviews.delete", http.MethodDelete, "/api/v1/reviews/%s"},

	OpCreatePriceAlert: {"price_alerts.create", http.MethodPost, "/api/v1/price-alerts"},
	OpListPriceAlerts:  {"price_alerts.list", http.MethodGet, "/api/v1/price-alerts"},
	OpDeletePriceAlert: {"price_alerts.delete", http.MethodDelete, "/api/v1/price-alerts/%s"},
}

// spec returns the HTTP shape for the operation
func (op Operation) spec() opSpec {
	if s, ok := opSpecs[op]; ok {
		return s
	}
	return opSpec{name: "unknown", method: http.MethodGet, path: "/"}
}

// String returns the logical operation name used in logs and metrics
func (op Operation) String() string {
	return op.spec().name
}

// Method returns the HTTP method of the operation
func (op Operation) Method() string {
	return op.spec().method
}

// Path builds the endpoint path with the given arguments applied
func (op Operation) Path(args ...string) string {
	s := op.spec()
	if len(args) == 0 {
		return s.path
	}
	vals := make([]interface{}, len(args))
	for i, a := range args {
		vals[i] = a
	}
	return fmt.Sprintf(s.path, vals...)
}
