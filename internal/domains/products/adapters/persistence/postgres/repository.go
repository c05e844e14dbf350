package postgres

import (
	"context"
	"errors"
	"log"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/LienoPC/EZ-Electronics-sub000/internal/domains/products/domain"
	"github.com/LienoPC/EZ-Electronics-sub000/internal/domains/products/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists the product catalog in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed catalog. Caller owns the DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		if err := db.AutoMigrate(&productRecord{}); err != nil {
			log.Printf("postgres product repository migration failed: %v", err)
		}
	}
	return repo
}

type productRecord struct {
	Model        string    `gorm:"primaryKey;column:model;size:255"`
	Category     string    `gorm:"column:category;type:varchar(32);index"`
	Quantity     int32     `gorm:"column:quantity"`
	Details      string    `gorm:"column:details"`
	SellingPrice float64   `gorm:"column:selling_price"`
	ArrivalDate  time.Time `gorm:"column:arrival_date"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (productRecord) TableName() string { return "products" }

// Save inserts or updates a catalog entry keyed by model.
func (r *Repository) Save(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if product == nil {
		return nil, errors.New("product is nil")
	}
	record := toRecord(product)
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "model"}},
			DoUpdates: clause.Assignments(map[string]any{
				"category":      record.Category,
				"quantity":      record.Quantity,
				"details":       record.Details,
				"selling_price": record.SellingPrice,
				"arrival_date":  record.ArrivalDate,
				"updated_at":    gorm.Expr("NOW()"),
			}),
		}).Create(&record).Error; err != nil {
		return nil, err
	}
	return r.GetByModel(ctx, record.Model)
}

// GetByModel fetches a catalog entry by its model identity.
func (r *Repository) GetByModel(ctx context.Context, model string) (*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record productRecord
	if err := r.db.WithContext(ctx).First(&record, "model = ?", model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// AdjustQuantity applies a signed stock delta as a single conditional
// UPDATE, so concurrent sales can never drive the counter negative.
func (r *Repository) AdjustQuantity(ctx context.Context, model string, delta int32) (*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	result := r.db.WithContext(ctx).Model(&productRecord{}).
		Where("model = ? AND quantity + ? >= 0", model, delta).
		Updates(map[string]any{
			"quantity":   gorm.Expr("quantity + ?", delta),
			"updated_at": gorm.Expr("NOW()"),
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		if _, err := r.GetByModel(ctx, model); err != nil {
			return nil, err
		}
		return nil, ports.ErrLowStock
	}
	return r.GetByModel(ctx, model)
}

// List returns the whole catalog.
func (r *Repository) List(ctx context.Context) ([]*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []productRecord
	if err := r.db.WithContext(ctx).Find(&records).Error; err != nil {
		return nil, err
	}
	return toDomainList(records), nil
}

// ListByCategory narrows the catalog to one category.
func (r *Repository) ListByCategory(ctx context.Context, category domain.Category) ([]*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []productRecord
	if err := r.db.WithContext(ctx).Where("category = ?", string(category)).Find(&records).Error; err != nil {
		return nil, err
	}
	return toDomainList(records), nil
}

// Delete removes a catalog entry; line items referencing it cascade.
func (r *Repository) Delete(ctx context.Context, model string) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&productRecord{}, "model = ?", model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

// DeleteAll purges the catalog.
func (r *Repository) DeleteAll(ctx context.Context) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Where("1 = 1").Delete(&productRecord{}).Error
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres product repository not configured")
	}
	return nil
}

func toRecord(product *domain.Product) productRecord {
	return productRecord{
		Model:        product.Model,
		Category:     string(product.Category),
		Quantity:     product.Quantity,
		Details:      product.Details,
		SellingPrice: product.SellingPrice,
		ArrivalDate:  product.ArrivalDate,
	}
}

func (r productRecord) toDomain() *domain.Product {
	return &domain.Product{
		Model:        r.Model,
		Category:     domain.Category(r.Category),
		Quantity:     r.Quantity,
		Details:      r.Details,
		SellingPrice: r.SellingPrice,
		ArrivalDate:  r.ArrivalDate,
	}
}

func toDomainList(records []productRecord) []*domain.Product {
	products := make([]*domain.Product, 0, len(records))
	for i := range records {
		products = append(products, records[i].toDomain())
	}
	return products
}
