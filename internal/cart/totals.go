package cart

import (
	"math"
	"strconv"
	"strings"

	"rodrigues-modas/internal/domain"
)

// ComputeTotals derives subtotal and item count from the line list.
// Malformed lines never abort the computation: a line with an invalid
// quantity contributes to neither sum, while a valid quantity still counts
// toward ItemCount even when the price is missing or unparseable.
func ComputeTotals(lines []domain.CartLine) domain.DerivedTotals {
	var totals domain.DerivedTotals
	for _, line := range lines {
		if line.Quantity < 1 {
			continue
		}
		totals.ItemCount += line.Quantity
		if line.Product == nil {
			continue
		}
		price, err := strconv.ParseFloat(strings.TrimSpace(line.Product.Price), 64)
		if err != nil || price < 0 || math.IsNaN(price) || math.IsInf(price, 0) {
			continue
		}
		totals.Subtotal += price * float64(line.Quantity)
	}
	return totals
}
