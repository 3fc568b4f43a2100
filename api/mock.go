package api

import (
	"encoding/json"
	"strconv"
	"sync"
	"time"
)

// mockStore serves canned responses when the backend is unreachable. Unlike a
// pure fixture table it keeps a small amount of mutable state (cart, orders)
// so that write-then-refresh flows behave coherently offline: an item added to
// the cart is visible on the next cart view, and a placed order shows up in
// the order history.
type mockStore struct {
	mu     sync.Mutex
	cart   []CartItem
	orders []Order
	nextID int64
}

func newMockStore() *mockStore {
	return &mockStore{nextID: 1}
}

// genericSuccess is the envelope returned for mutations with no richer mock
func genericSuccess() StatusResponse {
	return StatusResponse{Success: true, Message: "Operation completed successfully (mock)"}
}

func genericDeleted() StatusResponse {
	return StatusResponse{Success: true, Message: "Item deleted successfully (mock)"}
}

// respond returns the canned value for one operation. The switch is total
// over every operation kind: adding an operation without a mock arm is a
// compile-visible omission in the review of this table, not a silent
// fall-through on endpoint strings.
func (m *mockStore) respond(op Operation, args []string, body interface{}) interface{} {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch op {
	case OpRegister:
		return mockUser
	case OpLogin:
		return mockToken
	case OpProfile:
		return mockUser

	case OpListProducts:
		return mockProducts
	case OpGetProduct:
		return m.productByID(firstArg(args))
	case OpListProductsByCategory:
		return mockProducts
	case OpCreateProduct, OpUpdateProduct:
		return genericSuccess()

	case OpListCategories:
		return mockCategories
	case OpGetCategory:
		return m.categoryByID(firstArg(args))
	case OpListSubcategories:
		return []Category{}
	case OpCreateCategory, OpUpdateCategory:
		return genericSuccess()
	case OpDeleteCategory:
		return genericDeleted()

	case OpViewCart:
		return Cart{ID: 1, UserID: mockUser.ID, Items: append([]CartItem(nil), m.cart...)}
	case OpAddCartItem:
		m.addCartItem(body)
		return genericSuccess()
	case OpUpdateCartItem:
		m.updateCartItem(firstArg(args), body)
		return genericSuccess()
	case OpRemoveCartItem:
		m.removeCartItem(firstArg(args))
		return genericDeleted()

	case OpPlaceOrder:
		m.placeOrder(body)
		return genericSuccess()
	case OpOrderHistory:
		return append([]Order(nil), m.orders...)
	case OpGetOrder:
		return m.orderByID(firstArg(args))
	case OpCancelOrder:
		m.cancelOrder(firstArg(args))
		return genericSuccess()
	case OpListAllOrders:
		return append([]Order(nil), m.orders...)
	case OpUpdateOrderStatus:
		return genericSuccess()

	case OpCreateReview:
		return genericSuccess()
	case OpListProductReviews:
		return mockReviews
	case OpDeleteReview:
		return genericDeleted()

	case OpCreatePriceAlert:
		return genericSuccess()
	case OpListPriceAlerts:
		return []PriceAlert{}
	case OpDeletePriceAlert:
		return genericDeleted()
	}

	return genericSuccess()
}

// productByID filters the mock catalog; an unknown id yields nil (absent),
// not an error. The fixed review set is attached to the detail view.
func (m *mockStore) productByID(id string) interface{} {
	for _, p := range mockProducts {
		if strconv.FormatInt(p.ID, 10) == id {
			detail := p
			detail.Reviews = append([]Review(nil), mockReviews...)
			return detail
		}
	}
	return nil
}

func (m *mockStore) categoryByID(id string) interface{} {
	for _, c := range mockCategories {
		if strconv.FormatInt(c.ID, 10) == id {
			return c
		}
	}
	return nil
}

func (m *mockStore) orderByID(id string) interface{} {
	for _, o := range m.orders {
		if strconv.FormatInt(o.ID, 10) == id {
			return o
		}
	}
	return nil
}

func (m *mockStore) addCartItem(body interface{}) {
	var req AddCartItemRequest
	if !remarshal(body, &req) || req.Quantity < 1 {
		return
	}
	for i := range m.cart {
		if m.cart[i].ProductID == req.ProductID {
			m.cart[i].Quantity += req.Quantity
			return
		}
	}
	for _, p := range mockProducts {
		if p.ID == req.ProductID {
			m.cart = append(m.cart, CartItem{
				ID:          p.ID,
				ProductID:   p.ID,
				ProductName: p.Name,
				Price:       p.Price,
				Quantity:    req.Quantity,
				ImageURL:    p.ImageURL,
			})
			return
		}
	}
}

func (m *mockStore) updateCartItem(id string, body interface{}) {
	var req UpdateCartItemRequest
	if !remarshal(body, &req) || req.Quantity < 1 {
		return
	}
	for i := range m.cart {
		if strconv.FormatInt(m.cart[i].ProductID, 10) == id {
			m.cart[i].Quantity = req.Quantity
			return
		}
	}
}

func (m *mockStore) removeCartItem(id string) {
	for i := range m.cart {
		if strconv.FormatInt(m.cart[i].ProductID, 10) == id {
			m.cart = append(m.cart[:i], m.cart[i+1:]...)
			return
		}
	}
}

func (m *mockStore) placeOrder(body interface{}) {
	if len(m.cart) == 0 {
		return
	}
	var req PlaceOrderRequest
	remarshal(body, &req)

	order := Order{
		ID:              m.nextID,
		UserID:          mockUser.ID,
		Status:          "PLACED",
		ShippingAddress: req.ShippingAddress,
		CreatedAt:       time.Now().UTC(),
	}
	m.nextID++
	for _, item := range m.cart {
		order.TotalAmount += item.Price * float64(item.Quantity)
		order.Items = append(order.Items, OrderItem{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Price:       item.Price,
			Quantity:    item.Quantity,
		})
	}
	m.orders = append(m.orders, order)
	m.cart = nil
}

func (m *mockStore) cancelOrder(id string) {
	for i := range m.orders {
		if strconv.FormatInt(m.orders[i].ID, 10) == id {
			m.orders[i].Status = "CANCELLED"
			return
		}
	}
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

// remarshal converts an arbitrary request body into the typed mock payload.
// Callers may pass structs, pointers, or plain maps; a JSON round-trip
// normalizes all of them.
func remarshal(body interface{}, dst interface{}) bool {
	if body == nil {
		return false
	}
	data, err := json.Marshal(body)
	if err != nil {
		return false
	}
	return json.Unmarshal(data, dst) == nil
}
