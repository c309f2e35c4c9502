package database

import (
	"context"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/goldenhive/inventory/models"
)

// SeedProducts is the starter catalogue written into an empty products table.
var SeedProducts = []models.Product{
	{Name: "Wildflower Raw Honey 500g", Category: "Raw Honey", SKU: "RH-001", Price: 12.99, Quantity: 120, Description: "Pure raw wildflower honey, unfiltered and unpasteurised"},
	{Name: "Manuka Honey UMF 10+ 250g", Category: "Raw Honey", SKU: "RH-002", Price: 34.99, Quantity: 45, Description: "Certified New Zealand Manuka honey with UMF 10+ rating"},
	{Name: "Buckwheat Honey 500g", Category: "Raw Honey", SKU: "RH-003", Price: 14.99, Quantity: 80, Description: "Dark, robust raw buckwheat honey rich in antioxidants"},
	{Name: "Clover Honey 1kg", Category: "Raw Honey", SKU: "RH-004", Price: 18.99, Quantity: 95, Description: "Mild and sweet single-origin clover honey, 1kg jar"},
	{Name: "Acacia Honey 500g", Category: "Raw Honey", SKU: "RH-005", Price: 15.99, Quantity: 60, Description: "Light floral acacia honey that stays liquid for longer"},
	{Name: "Orange Blossom Honey 250g", Category: "Raw Honey", SKU: "RH-006", Price: 11.99, Quantity: 70, Description: "Delicately fragrant honey from orange groves"},
	{Name: "Creamed Honey Classic 400g", Category: "Creamed Honey", SKU: "CH-001", Price: 13.99, Quantity: 85, Description: "Smooth and spreadable pure creamed honey"},
	{Name: "Creamed Honey with Cinnamon 250g", Category: "Creamed Honey", SKU: "CH-002", Price: 12.99, Quantity: 55, Description: "Whipped honey blended with Ceylon cinnamon"},
	{Name: "Creamed Honey with Lavender 250g", Category: "Creamed Honey", SKU: "CH-003", Price: 12.99, Quantity: 40, Description: "Velvety creamed honey infused with dried lavender flowers"},
	{Name: "Honey & Chilli Infusion 200g", Category: "Infused Honey", SKU: "IH-001", Price: 10.99, Quantity: 65, Description: "Raw honey infused with dried chilli for a sweet heat"},
	{Name: "Honey & Lemon Infusion 200g", Category: "Infused Honey", SKU: "IH-002", Price: 9.99, Quantity: 75, Description: "Bright citrus honey great for teas and dressings"},
	{Name: "Honey & Ginger Infusion 200g", Category: "Infused Honey", SKU: "IH-003", Price: 10.49, Quantity: 58, Description: "Warming raw honey infused with fresh ginger root"},
	{Name: "Black Truffle Honey 150g", Category: "Infused Honey", SKU: "IH-004", Price: 19.99, Quantity: 25, Description: "Premium acacia honey infused with black summer truffle"},
	{Name: "Beeswax Pillar Candle Set (3 pcs)", Category: "Beeswax", SKU: "BW-001", Price: 22.99, Quantity: 30, Description: "Hand-rolled pure beeswax pillar candles, natural honey scent"},
	{Name: "Beeswax Lip Balm", Category: "Beeswax", SKU: "BW-002", Price: 4.99, Quantity: 150, Description: "Nourishing beeswax and honey lip balm, unscented"},
	{Name: "Beeswax Wood Polish 150ml", Category: "Beeswax", SKU: "BW-003", Price: 8.99, Quantity: 45, Description: "Natural beeswax furniture polish with lemon oil"},
	{Name: "Beeswax Food Wraps Set of 3", Category: "Beeswax", SKU: "BW-004", Price: 14.99, Quantity: 60, Description: "Reusable beeswax-coated cotton food wraps, assorted sizes"},
	{Name: "Honey Tasting Gift Box (4 x 100g)", Category: "Gift Sets", SKU: "GS-001", Price: 29.99, Quantity: 35, Description: "Four award-winning honeys in a presentation gift box"},
	{Name: "Beekeeper's Starter Gift Set", Category: "Gift Sets", SKU: "GS-002", Price: 49.99, Quantity: 15, Description: "Includes raw honey, beeswax candle, lip balm and honey dipper"},
	{Name: "Luxury Honey & Beeswax Hamper", Category: "Gift Sets", SKU: "GS-003", Price: 79.99, Quantity: 8, Description: "Premium hamper with 6 honey varieties and 4 beeswax products"},
}

// Seed inserts SeedProducts when the products table is empty.
// It reports how many rows were written; a populated table yields 0.
func Seed(ctx context.Context, db *gorm.DB, log *slog.Logger) (int, error) {
	var inserted int
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		count, err := models.NewProductsRepository(tx).Count(ctx)
		if err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		rows := make([]models.Product, len(SeedProducts))
		copy(rows, SeedProducts)
		if err := tx.Create(&rows).Error; err != nil {
			return err
		}
		inserted = len(rows)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("database: seed: %w", err)
	}

	if inserted > 0 {
		log.Info("database seeded", "products", inserted)
	}
	return inserted, nil
}
