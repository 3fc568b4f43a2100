package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/url"
	"strconv"
	"strings"
)

// Typed wrappers over the full consumed backend surface. Each wrapper maps a
// method call onto one Operation and decodes the response.

// Auth

// Register creates a new account and returns the created profile
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	data, err := c.Request(ctx, OpRegister, req)
	if err != nil {
		return nil, err
	}
	var user User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, fmt.Errorf("failed to parse register response: %w", err)
	}
	return &user, nil
}

// Login authenticates and returns the bearer token issued by the backend
func (c *Client) Login(ctx context.Context, req LoginRequest) (string, error) {
	data, err := c.Request(ctx, OpLogin, req)
	if err != nil {
		return "", err
	}
	return parseTokenBody(data), nil
}

// Profile fetches the authenticated user's profile
func (c *Client) Profile(ctx context.Context) (*User, error) {
	data, err := c.Request(ctx, OpProfile, nil)
	if err != nil {
		return nil, err
	}
	var user User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, fmt.Errorf("failed to parse profile response: %w", err)
	}
	return &user, nil
}

// Catalog

// GetProducts lists the whole catalog
func (c *Client) GetProducts(ctx context.Context) ([]Product, error) {
	data, err := c.Request(ctx, OpListProducts, nil)
	if err != nil {
		return nil, err
	}
	var products []Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("failed to parse products response: %w", err)
	}
	return products, nil
}

// GetProductByID fetches one product with its reviews. A missing product
// yields (nil, nil) in mock mode; a live backend reports its own error.
func (c *Client) GetProductByID(ctx context.Context, id int64) (*Product, error) {
	data, err := c.Request(ctx, OpGetProduct, nil, formatID(id))
	if err != nil {
		return nil, err
	}
	var product *Product
	if err := json.Unmarshal(data, &product); err != nil {
		return nil, fmt.Errorf("failed to parse product response: %w", err)
	}
	return product, nil
}

// GetProductsByCategory lists products in one category
func (c *Client) GetProductsByCategory(ctx context.Context, categoryID int64) ([]Product, error) {
	data, err := c.Request(ctx, OpListProductsByCategory, nil, formatID(categoryID))
	if err != nil {
		return nil, err
	}
	var products []Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("failed to parse products response: %w", err)
	}
	return products, nil
}

// CreateProduct uploads a new product as a multipart form (admin)
func (c *Client) CreateProduct(ctx context.Context, fields map[string]string, imageName string, image io.Reader) error {
	contentType, form, err := buildMultipartForm(fields, "image", imageName, image)
	if err != nil {
		return err
	}
	_, err = c.RequestMultipart(ctx, OpCreateProduct, contentType, form)
	return err
}

// UpdateProduct replaces a product as a multipart form (admin)
func (c *Client) UpdateProduct(ctx context.Context, id int64, fields map[string]string, imageName string, image io.Reader) error {
	contentType, form, err := buildMultipartForm(fields, "image", imageName, image)
	if err != nil {
		return err
	}
	_, err = c.RequestMultipart(ctx, OpUpdateProduct, contentType, form, formatID(id))
	return err
}

// Categories

// GetCategories lists all categories; this endpoint doubles as the
// availability probe target because it is cheap and unauthenticated.
func (c *Client) GetCategories(ctx context.Context) ([]Category, error) {
	data, err := c.Request(ctx, OpListCategories, nil)
	if err != nil {
		return nil, err
	}
	var categories []Category
	if err := json.Unmarshal(data, &categories); err != nil {
		return nil, fmt.Errorf("failed to parse categories response: %w", err)
	}
	return categories, nil
}

// GetCategoryByID fetches one category
func (c *Client) GetCategoryByID(ctx context.Context, id int64) (*Category, error) {
	data, err := c.Request(ctx, OpGetCategory, nil, formatID(id))
	if err != nil {
		return nil, err
	}
	var category *Category
	if err := json.Unmarshal(data, &category); err != nil {
		return nil, fmt.Errorf("failed to parse category response: %w", err)
	}
	return category, nil
}

// GetSubcategories lists the children of a category
func (c *Client) GetSubcategories(ctx context.Context, parentID int64) ([]Category, error) {
	data, err := c.Request(ctx, OpListSubcategories, nil, formatID(parentID))
	if err != nil {
		return nil, err
	}
	var categories []Category
	if err := json.Unmarshal(data, &categories); err != nil {
		return nil, fmt.Errorf("failed to parse subcategories response: %w", err)
	}
	return categories, nil
}

// CreateCategory creates a category (admin)
func (c *Client) CreateCategory(ctx context.Context, req CategoryRequest) error {
	_, err := c.Request(ctx, OpCreateCategory, req)
	return err
}

// UpdateCategory updates a category (admin)
func (c *Client) UpdateCategory(ctx context.Context, id int64, req CategoryRequest) error {
	_, err := c.Request(ctx, OpUpdateCategory, req, formatID(id))
	return err
}

// DeleteCategory removes a category (admin)
func (c *Client) DeleteCategory(ctx context.Context, id int64) error {
	_, err := c.Request(ctx, OpDeleteCategory, nil, formatID(id))
	return err
}

// Cart

// GetCart fetches the current user's cart
func (c *Client) GetCart(ctx context.Context) (*Cart, error) {
	data, err := c.Request(ctx, OpViewCart, nil)
	if err != nil {
		return nil, err
	}
	var cart Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		return nil, fmt.Errorf("failed to parse cart response: %w", err)
	}
	return &cart, nil
}

// AddToCart adds quantity units of a product to the cart
func (c *Client) AddToCart(ctx context.Context, productID int64, quantity int) error {
	_, err := c.Request(ctx, OpAddCartItem, AddCartItemRequest{ProductID: productID, Quantity: quantity})
	return err
}

// UpdateCartItem replaces the quantity of an existing cart line
func (c *Client) UpdateCartItem(ctx context.Context, productID int64, quantity int) error {
	_, err := c.Request(ctx, OpUpdateCartItem, UpdateCartItemRequest{Quantity: quantity}, formatID(productID))
	return err
}

// RemoveFromCart removes a cart line entirely
func (c *Client) RemoveFromCart(ctx context.Context, productID int64) error {
	_, err := c.Request(ctx, OpRemoveCartItem, nil, formatID(productID))
	return err
}

// Orders

// PlaceOrder submits the checkout: cart line identifiers plus a shipping
// address. Payment handling is entirely server-side.
func (c *Client) PlaceOrder(ctx context.Context, req PlaceOrderRequest) error {
	_, err := c.Request(ctx, OpPlaceOrder, req)
	return err
}

// GetOrderHistory lists the current user's past orders
func (c *Client) GetOrderHistory(ctx context.Context) ([]Order, error) {
	data, err := c.Request(ctx, OpOrderHistory, nil)
	if err != nil {
		return nil, err
	}
	var orders []Order
	if err := json.Unmarshal(data, &orders); err != nil {
		return nil, fmt.Errorf("failed to parse orders response: %w", err)
	}
	return orders, nil
}

// GetOrderDetails fetches one order
func (c *Client) GetOrderDetails(ctx context.Context, orderID int64) (*Order, error) {
	data, err := c.Request(ctx, OpGetOrder, nil, formatID(orderID))
	if err != nil {
		return nil, err
	}
	var order *Order
	if err := json.Unmarshal(data, &order); err != nil {
		return nil, fmt.Errorf("failed to parse order response: %w", err)
	}
	return order, nil
}

// CancelOrder cancels a pending order
func (c *Client) CancelOrder(ctx context.Context, orderID int64) error {
	_, err := c.Request(ctx, OpCancelOrder, nil, formatID(orderID))
	return err
}

// GetAllOrders lists every order in the system (admin)
func (c *Client) GetAllOrders(ctx context.Context) ([]Order, error) {
	data, err := c.Request(ctx, OpListAllOrders, nil)
	if err != nil {
		return nil, err
	}
	var orders []Order
	if err := json.Unmarshal(data, &orders); err != nil {
		return nil, fmt.Errorf("failed to parse orders response: %w", err)
	}
	return orders, nil
}

// UpdateOrderStatus sets an order's status (admin)
func (c *Client) UpdateOrderStatus(ctx context.Context, orderID int64, status string) error {
	_, err := c.Request(ctx, OpUpdateOrderStatus, nil, formatID(orderID), url.QueryEscape(status))
	return err
}

// Reviews

// CreateReview posts a product review
func (c *Client) CreateReview(ctx context.Context, req CreateReviewRequest) error {
	_, err := c.Request(ctx, OpCreateReview, req)
	return err
}

// GetProductReviews lists the reviews for one product
func (c *Client) GetProductReviews(ctx context.Context, productID int64) ([]Review, error) {
	data, err := c.Request(ctx, OpListProductReviews, nil, formatID(productID))
	if err != nil {
		return nil, err
	}
	var reviews []Review
	if err := json.Unmarshal(data, &reviews); err != nil {
		return nil, fmt.Errorf("failed to parse reviews response: %w", err)
	}
	return reviews, nil
}

// DeleteReview removes a review
func (c *Client) DeleteReview(ctx context.Context, reviewID int64) error {
	_, err := c.Request(ctx, OpDeleteReview, nil, formatID(reviewID))
	return err
}

// Price alerts

// CreatePriceAlert registers a price alert for a product
func (c *Client) CreatePriceAlert(ctx context.Context, req CreatePriceAlertRequest) error {
	_, err := c.Request(ctx, OpCreatePriceAlert, req)
	return err
}

// GetPriceAlerts lists the current user's price alerts
func (c *Client) GetPriceAlerts(ctx context.Context) ([]PriceAlert, error) {
	data, err := c.Request(ctx, OpListPriceAlerts, nil)
	if err != nil {
		return nil, err
	}
	var alerts []PriceAlert
	if err := json.Unmarshal(data, &alerts); err != nil {
		return nil, fmt.Errorf("failed to parse price alerts response: %w", err)
	}
	return alerts, nil
}

// DeletePriceAlert removes a price alert
func (c *Client) DeletePriceAlert(ctx context.Context, alertID int64) error {
	_, err := c.Request(ctx, OpDeletePriceAlert, nil, formatID(alertID))
	return err
}

// Helpers

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

// parseTokenBody accepts both a JSON-encoded string and a plain text token
// body; backends disagree on the content type of the login response.
func parseTokenBody(data []byte) string {
	var token string
	if err := json.Unmarshal(data, &token); err == nil {
		return token
	}
	return strings.TrimSpace(string(data))
}

// buildMultipartForm assembles a multipart body from plain fields and an
// optional file part, returning the content type with its boundary.
func buildMultipartForm(fields map[string]string, fileField, fileName string, file io.Reader) (string, io.Reader, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return "", nil, fmt.Errorf("failed to write form field %s: %w", k, err)
		}
	}

	if file != nil {
		fw, err := w.CreateFormFile(fileField, fileName)
		if err != nil {
			return "", nil, fmt.Errorf("failed to create form file: %w", err)
		}
		if _, err := io.Copy(fw, file); err != nil {
			return "", nil, fmt.Errorf("failed to write form file: %w", err)
		}
	}

	if err := w.Close(); err != nil {
		return "", nil, fmt.Errorf("failed to finalize form: %w", err)
	}

	return w.FormDataContentType(), &buf, nil
}
