package view

import (
	"github.com/shopspring/decimal"

	"github.com/goldenhive/inventory/models"
)

// LowStockThreshold is the highest quantity still counted as low stock.
const LowStockThreshold = 10

// Summary is derived from the currently loaded list, not the whole catalogue.
type Summary struct {
	TotalProducts int
	TotalValue    decimal.Decimal
	LowStock      int
	OutOfStock    int
}

func Summarize(products []models.Product) Summary {
	s := Summary{
		TotalProducts: len(products),
		TotalValue:    decimal.Zero,
	}
	for _, p := range products {
		line := decimal.NewFromFloat(p.Price).Mul(decimal.NewFromInt(int64(p.Quantity)))
		s.TotalValue = s.TotalValue.Add(line)

		switch {
		case p.Quantity == 0:
			s.OutOfStock++
		case p.Quantity > 0 && p.Quantity <= LowStockThreshold:
			s.LowStock++
		}
	}
	s.TotalValue = s.TotalValue.Round(2)
	return s
}
