package services

import "github.com/harentsoaR/clinic-api/internal/models"

// CartTotal sums price × quantity over items.
func CartTotal(items []models.CartItem) float64 {
	var total float64
	for _, item := range items {
		total += float64(item.Price) * float64(item.Quantity)
	}
	return total
}
