package services

import (
	"errors"
	"time"

	"salonpro-dashboard/models"
	"salonpro-dashboard/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNoPreviousStock means a hidden product has never been seen with a
// non-zero quantity, so there is nothing to restore.
var ErrNoPreviousStock = errors.New("no previous stock recorded for this product")

// NewProductView derives the visibility fields. A product with quantity 0 is
// hidden; originalStock is the quantity to restore when it is shown again.
func NewProductView(p models.Product, rememberedStock int) models.ProductView {
	view := models.ProductView{
		Product:       p,
		IsActive:      p.Quantity > 0,
		OriginalStock: rememberedStock,
		Status:        models.ProductStatusHidden,
		PriceLabel:    utils.FormatCurrency(p.Price),
	}
	if view.IsActive {
		view.OriginalStock = p.Quantity
		view.Status = models.ProductStatusActive
	}
	return view
}

// ToggledQuantity is the quantity to send to flip a product's visibility.
func ToggledQuantity(view models.ProductView) (int, error) {
	if view.IsActive {
		return 0, nil
	}
	if view.OriginalStock <= 0 {
		return 0, ErrNoPreviousStock
	}
	return view.OriginalStock, nil
}

// ProductStockStore persists the last non-zero quantity per product.
type ProductStockStore struct {
	DB *gorm.DB
}

// Remember upserts the stock of every visible product.
func (s *ProductStockStore) Remember(salonID string, products []models.Product) error {
	rows := make([]models.ProductStock, 0, len(products))
	now := time.Now()
	for _, p := range products {
		if p.Quantity > 0 {
			rows = append(rows, models.ProductStock{
				ProductID:     p.ID,
				SalonID:       salonID,
				OriginalStock: p.Quantity,
				UpdatedAt:     now,
			})
		}
	}
	if len(rows) == 0 {
		return nil
	}
	return s.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "product_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"original_stock", "salon_id", "updated_at"}),
	}).Create(&rows).Error
}

// Lookup returns the remembered stock for the given products.
func (s *ProductStockStore) Lookup(productIDs []string) (map[string]int, error) {
	out := make(map[string]int, len(productIDs))
	if len(productIDs) == 0 {
		return out, nil
	}
	var rows []models.ProductStock
	if err := s.DB.Where("product_id IN ?", productIDs).Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, r := range rows {
		out[r.ProductID] = r.OriginalStock
	}
	return out, nil
}

func (s *ProductStockStore) Forget(productID string) error {
	return s.DB.Delete(&models.ProductStock{}, "product_id = ?", productID).Error
}

// Views remembers current stock and returns the derived views in order.
func (s *ProductStockStore) Views(salonID string, products []models.Product) ([]models.ProductView, error) {
	if err := s.Remember(salonID, products); err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}
	stock, err := s.Lookup(ids)
	if err != nil {
		return nil, err
	}
	views := make([]models.ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, NewProductView(p, stock[p.ID]))
	}
	return views, nil
}
