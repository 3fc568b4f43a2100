package api

import "time"

// Canned dataset served when the backend is unreachable. The catalog is fixed
// so offline behavior is deterministic and testable.

var mockProducts = []Product{
	{
		ID:           1,
		Name:         "Apple iPhone 15 Pro Max 256GB Natural Titanium",
		Price:        1299.99,
		Description:  "The most advanced iPhone ever with titanium design, A17 Pro chip, and professional camera system.",
		CategoryName: "Electronics",
		ImageURL:     "https://images.pexels.com/photos/276517/pexels-photo-276517.jpeg?auto=compress&cs=tinysrgb&w=400",
		Stock:        50,
	},
	{
		ID:           2,
		Name:         "Samsung Galaxy S24 Ultra 512GB Titanium Black",
		Price:        1199.99,
		Description:  "Premium Android smartphone with S Pen, advanced AI features, and exceptional camera quality.",
		CategoryName: "Electronics",
		ImageURL:     "https://images.pexels.com/photos/90946/pexels-photo-90946.jpeg?auto=compress&cs=tinysrgb&w=400",
		Stock:        30,
	},
	{
		ID:           3,
		Name:         "Sony WH-1000XM5 Wireless Noise Canceling Headphones",
		Price:        399.99,
		Description:  "Industry-leading noise canceling with exceptional sound quality and 30-hour battery life.",
		CategoryName: "Electronics",
		ImageURL:     "https://images.pexels.com/photos/3394650/pexels-photo-3394650.jpeg?auto=compress&cs=tinysrgb&w=400",
		Stock:        75,
	},
	{
		ID:           4,
		Name:         "Nike Air Max 270 Running Shoes",
		Price:        150.00,
		Description:  "Comfortable running shoes with Max Air unit for exceptional cushioning and style.",
		CategoryName: "Clothing",
		ImageURL:     "https://images.pexels.com/photos/2529148/pexels-photo-2529148.jpeg?auto=compress&cs=tinysrgb&w=400",
		Stock:        120,
	},
	{
		ID:           5,
		Name:         "MacBook Pro 14-inch M3 Pro 512GB Space Black",
		Price:        1999.99,
		Description:  "Powerful laptop with M3 Pro chip, Liquid Retina XDR display, and all-day battery life.",
		CategoryName: "Electronics",
		ImageURL:     "https://images.pexels.com/photos/205421/pexels-photo-205421.jpeg?auto=compress&cs=tinysrgb&w=400",
		Stock:        25,
	},
	{
		ID:           6,
		Name:         "Levi's 501 Original Fit Jeans",
		Price:        89.99,
		Description:  "Classic straight-leg jeans with authentic fit and timeless style.",
		CategoryName: "Clothing",
		ImageURL:     "https://images.pexels.com/photos/1598507/pexels-photo-1598507.jpeg?auto=compress&cs=tinysrgb&w=400",
		Stock:        200,
	},
	{
		ID:           7,
		Name:         "KitchenAid Stand Mixer 5-Quart Artisan Series",
		Price:        449.99,
		Description:  "Professional-grade stand mixer perfect for baking and cooking enthusiasts.",
		CategoryName: "Home & Garden",
		ImageURL:     "https://images.pexels.com/photos/4226796/pexels-photo-4226796.jpeg?auto=compress&cs=tinysrgb&w=400",
		Stock:        40,
	},
	{
		ID:           8,
		Name:         "Adidas Ultraboost 22 Running Shoes",
		Price:        190.00,
		Description:  "Premium running shoes with responsive Boost midsole and Primeknit upper.",
		CategoryName: "Clothing",
		ImageURL:     "https://images.pexels.com/photos/1464625/pexels-photo-1464625.jpeg?auto=compress&cs=tinysrgb&w=400",
		Stock:        85,
	},
}

var mockCategories = []Category{
	{ID: 1, Name: "Electronics"},
	{ID: 2, Name: "Clothing"},
	{ID: 3, Name: "Home & Garden"},
	{ID: 4, Name: "Sports & Outdoors"},
	{ID: 5, Name: "Books"},
	{ID: 6, Name: "Beauty & Personal Care"},
}

// Fixed synthetic review set attached to every product detail lookup
var mockReviews = []Review{
	{
		ID:        1,
		Rating:    5,
		Comment:   "Excellent product! Highly recommended.",
		UserName:  "John Doe",
		CreatedAt: time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
	},
	{
		ID:        2,
		Rating:    4,
		Comment:   "Good quality, fast delivery.",
		UserName:  "Jane Smith",
		CreatedAt: time.Date(2024, 1, 10, 14, 20, 0, 0, time.UTC),
	},
}

var mockUser = User{
	ID:        1,
	Email:     "user@example.com",
	FirstName: "John",
	LastName:  "Doe",
	Role:      "User",
	Address:   "123 Main St, New York, NY 10001",
}

// mockToken is the canned bearer token returned by the mock login endpoint
const mockToken = "mock-jwt-token-12345"
