package catalog

import (
	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/shopspring/decimal"
)

func discount(v uint) *uint { return &v }

// SeedProducts is the reference product list the storefront ships with.
func SeedProducts() []models.Product {
	return []models.Product{
		{
			ID:          1,
			Name:        "Wireless Bluetooth Headphones",
			Price:       decimal.RequireFromString("199.99"),
			Description: "Premium wireless headphones with active noise cancellation and 30-hour battery life",
			Category:    "Electronics",
			Image:       "https://images.pexels.com/photos/3394650/pexels-photo-3394650.jpeg?auto=compress&cs=tinysrgb&w=400",
			Rating:      4.5,
			Stock:       25,
			Discount:    discount(20),
		},
		{
			ID:          2,
			Name:        "Smart Fitness Watch",
			Price:       decimal.RequireFromString("299.99"),
			Description: "Advanced fitness tracking with heart rate monitor, GPS, and smart notifications",
			Category:    "Electronics",
			Image:       "https://images.pexels.com/photos/437037/pexels-photo-437037.jpeg?auto=compress&cs=tinysrgb&w=400",
			Rating:      4.8,
			Stock:       15,
		},
		{
			ID:          3,
			Name:        "Professional Laptop Backpack",
			Price:       decimal.RequireFromString("79.99"),
			Description: "Durable laptop backpack with multiple compartments and USB charging port",
			Category:    "Accessories",
			Image:       "https://images.pexels.com/photos/2905238/pexels-photo-2905238.jpeg?auto=compress&cs=tinysrgb&w=400",
			Rating:      4.3,
			Stock:       40,
		},
		{
			ID:          4,
			Name:        "Portable Bluetooth Speaker",
			Price:       decimal.RequireFromString("149.99"),
			Description: "Waterproof Bluetooth speaker with 360-degree sound and 24-hour battery",
			Category:    "Electronics",
			Image:       "https://images.pexels.com/photos/1649771/pexels-photo-1649771.jpeg?auto=compress&cs=tinysrgb&w=400",
			Rating:      4.6,
			Stock:       30,
			Discount:    discount(15),
		},
		{
			ID:          5,
			Name:        "Gaming Mouse RGB",
			Price:       decimal.RequireFromString("89.99"),
			Description: "High-precision gaming mouse with customizable RGB lighting and programmable buttons",
			Category:    "Gaming",
			Image:       "https://images.pexels.com/photos/2115256/pexels-photo-2115256.jpeg?auto=compress&cs=tinysrgb&w=400",
			Rating:      4.7,
			Stock:       50,
		},
		{
			ID:          6,
			Name:        "Fast Wireless Charger",
			Price:       decimal.RequireFromString("49.99"),
			Description: "15W fast wireless charging pad compatible with all Qi-enabled devices",
			Category:    "Accessories",
			Image:       "https://images.pexels.com/photos/4158/apple-iphone-smartphone-desk.jpg?auto=compress&cs=tinysrgb&w=400",
			Rating:      4.2,
			Stock:       60,
		},
		{
			ID:          7,
			Name:        "Organic Cotton T-Shirt",
			Price:       decimal.RequireFromString("29.99"),
			Description: "Comfortable 100% organic cotton t-shirt in various colors and sizes",
			Category:    "Clothing",
			Image:       "https://images.pexels.com/photos/1021693/pexels-photo-1021693.jpeg?auto=compress&cs=tinysrgb&w=400",
			Rating:      4.4,
			Stock:       100,
		},
		{
			ID:          8,
			Name:        "Stainless Steel Water Bottle",
			Price:       decimal.RequireFromString("34.99"),
			Description: "Insulated stainless steel water bottle that keeps drinks cold for 24 hours",
			Category:    "Accessories",
			Image:       "https://images.pexels.com/photos/1000084/pexels-photo-1000084.jpeg?auto=compress&cs=tinysrgb&w=400",
			Rating:      4.6,
			Stock:       75,
		},
	}
}
