package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"sort"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/LienoPC/EZ-Electronics-sub000/internal/domains/cart/domain"
	"github.com/LienoPC/EZ-Electronics-sub000/internal/domains/cart/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists carts and line items in PostgreSQL using GORM.
// Line-item writes and the total recompute always share one transaction,
// and checkout locks the cart row plus every referenced product row.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed cart repository. Caller owns
// the DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		if err := db.AutoMigrate(&cartRecord{}, &cartItemRecord{}); err != nil {
			log.Printf("postgres cart repository migration failed: %v", err)
		}
	}
	return repo
}

// cartRecord maps the cart aggregate to a relational row. The partial
// unique index enforces at most one unpaid cart per customer even under
// concurrent first adds.
type cartRecord struct {
	ID          int64      `gorm:"primaryKey;column:id;autoIncrement"`
	CustomerID  string     `gorm:"column:customer_id;size:255;index;uniqueIndex:idx_carts_customer_unpaid,where:paid = false"`
	Paid        bool       `gorm:"column:paid"`
	PaymentDate *time.Time `gorm:"column:payment_date"`
	Total       float64    `gorm:"column:total"`
	CreatedAt   time.Time  `gorm:"column:created_at;index"`
	UpdatedAt   time.Time  `gorm:"column:updated_at"`
}

func (cartRecord) TableName() string { return "carts" }

// cartItemRecord is keyed by (cart_id, product_model); the merge
// invariant rests on this composite key.
type cartItemRecord struct {
	CartID       int64     `gorm:"primaryKey;column:cart_id"`
	ProductModel string    `gorm:"primaryKey;column:product_model;size:255"`
	Quantity     int32     `gorm:"column:quantity"`
	Category     string    `gorm:"column:category;type:varchar(32)"`
	Price        float64   `gorm:"column:price"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (cartItemRecord) TableName() string { return "cart_items" }

// productStockRow gives the checkout transaction direct access to the
// catalog's stock counters; the products context owns the table itself.
type productStockRow struct {
	Model    string `gorm:"primaryKey;column:model"`
	Quantity int32  `gorm:"column:quantity"`
}

func (productStockRow) TableName() string { return "products" }

// FindUnpaid returns the customer's active cart or the canonical empty
// cart; absence is not an error.
func (r *Repository) FindUnpaid(ctx context.Context, customerID string) (*domain.Cart, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record cartRecord
	err := r.db.WithContext(ctx).
		First(&record, "customer_id = ? AND paid = false", customerID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.EmptyCart(customerID), nil
		}
		return nil, err
	}
	return r.loadCart(ctx, r.db, record)
}

// FindPaidByID loads one paid cart for history reconstruction.
func (r *Repository) FindPaidByID(ctx context.Context, id int64) (*domain.Cart, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record cartRecord
	err := r.db.WithContext(ctx).First(&record, "id = ? AND paid = true", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrCartNotFound
		}
		return nil, err
	}
	return r.loadCart(ctx, r.db, record)
}

// UpsertLineItem creates the unpaid cart when absent, merges the line by
// an atomic in-database increment, and recomputes the total, all in one
// transaction.
func (r *Repository) UpsertLineItem(ctx context.Context, customerID string, item domain.LineItem) (*domain.Cart, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var out *domain.Cart
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		record := cartRecord{CustomerID: customerID, Paid: false}
		if err := tx.Clauses(clause.OnConflict{
			Columns:     []clause.Column{{Name: "customer_id"}},
			TargetWhere: clause.Where{Exprs: []clause.Expression{gorm.Expr("paid = false")}},
			DoNothing:   true,
		}).Create(&record).Error; err != nil {
			return err
		}
		// A conflicting concurrent insert leaves record.ID zero; re-read
		// the surviving row either way.
		if err := tx.First(&record, "customer_id = ? AND paid = false", customerID).Error; err != nil {
			return err
		}
		line := cartItemRecord{
			CartID:       record.ID,
			ProductModel: item.ProductModel,
			Quantity:     item.Quantity,
			Category:     item.Category,
			Price:        item.Price,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "cart_id"}, {Name: "product_model"}},
			DoUpdates: clause.Assignments(map[string]any{
				"quantity":   gorm.Expr("cart_items.quantity + EXCLUDED.quantity"),
				"updated_at": gorm.Expr("NOW()"),
			}),
		}).Create(&line).Error; err != nil {
			return err
		}
		if err := recomputeTotal(tx, record.ID); err != nil {
			return err
		}
		cart, err := r.reloadCart(ctx, tx, record.ID)
		if err != nil {
			return err
		}
		out = cart
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DecrementOrRemoveLineItem takes one unit off the line, deleting it at
// quantity one, then recomputes the total in the same transaction.
func (r *Repository) DecrementOrRemoveLineItem(ctx context.Context, customerID, model string) (*domain.Cart, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var out *domain.Cart
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		record, err := lockUnpaidCart(tx, customerID)
		if err != nil {
			return err
		}
		var count int64
		if err := tx.Model(&cartItemRecord{}).Where("cart_id = ?", record.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ports.ErrCartNotFound
		}
		var line cartItemRecord
		err = tx.First(&line, "cart_id = ? AND product_model = ?", record.ID, model).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ports.ErrProductNotInCart
			}
			return err
		}
		if line.Quantity > 1 {
			err = tx.Model(&cartItemRecord{}).
				Where("cart_id = ? AND product_model = ?", record.ID, model).
				Updates(map[string]any{
					"quantity":   gorm.Expr("quantity - 1"),
					"updated_at": gorm.Expr("NOW()"),
				}).Error
		} else {
			err = tx.Delete(&cartItemRecord{}, "cart_id = ? AND product_model = ?", record.ID, model).Error
		}
		if err != nil {
			return err
		}
		if err := recomputeTotal(tx, record.ID); err != nil {
			return err
		}
		cart, err := r.reloadCart(ctx, tx, record.ID)
		if err != nil {
			return err
		}
		out = cart
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ClearLineItems drops every line of the unpaid cart; the cart row stays.
func (r *Repository) ClearLineItems(ctx context.Context, customerID string) (*domain.Cart, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var out *domain.Cart
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		record, err := lockUnpaidCart(tx, customerID)
		if err != nil {
			return err
		}
		if err := tx.Delete(&cartItemRecord{}, "cart_id = ?", record.ID).Error; err != nil {
			return err
		}
		if err := recomputeTotal(tx, record.ID); err != nil {
			return err
		}
		cart, err := r.reloadCart(ctx, tx, record.ID)
		if err != nil {
			return err
		}
		out = cart
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Checkout runs the critical transaction: lock the cart row, lock every
// referenced product row in deterministic order, validate availability,
// decrement stock conditionally, and flip the cart to paid. Any failure
// rolls the whole unit back; a partial decrement is never committed.
func (r *Repository) Checkout(ctx context.Context, customerID string, paymentDate time.Time) (*domain.Cart, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var out *domain.Cart
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		record, err := lockUnpaidCart(tx, customerID)
		if err != nil {
			return err
		}
		var lines []cartItemRecord
		if err := tx.Find(&lines, "cart_id = ?", record.ID).Error; err != nil {
			return err
		}
		if len(lines) == 0 {
			return ports.ErrEmptyCart
		}
		// Locking products in model order keeps concurrent checkouts
		// from deadlocking on each other.
		sort.Slice(lines, func(i, j int) bool { return lines[i].ProductModel < lines[j].ProductModel })
		for _, line := range lines {
			var stock productStockRow
			err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				First(&stock, "model = ?", line.ProductModel).Error
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ports.ErrStockConflict
				}
				return err
			}
			if stock.Quantity <= 0 || stock.Quantity < line.Quantity {
				return ports.ErrStockConflict
			}
			result := tx.Model(&productStockRow{}).
				Where("model = ? AND quantity >= ?", line.ProductModel, line.Quantity).
				Update("quantity", gorm.Expr("quantity - ?", line.Quantity))
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return ports.ErrStockConflict
			}
		}
		if err := tx.Model(&cartRecord{}).Where("id = ?", record.ID).
			Updates(map[string]any{
				"paid":         true,
				"payment_date": paymentDate,
				"updated_at":   gorm.Expr("NOW()"),
			}).Error; err != nil {
			return err
		}
		cart, err := r.reloadCart(ctx, tx, record.ID)
		if err != nil {
			return err
		}
		out = cart
		return nil
	}, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ListPaidForCustomer reconstructs the customer's checkout history.
func (r *Repository) ListPaidForCustomer(ctx context.Context, customerID string) ([]*domain.Cart, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []cartRecord
	if err := r.db.WithContext(ctx).
		Find(&records, "customer_id = ? AND paid = true", customerID).Error; err != nil {
		return nil, err
	}
	return r.loadCarts(ctx, r.db, records)
}

// ListAll returns every cart with its items. Administrative.
func (r *Repository) ListAll(ctx context.Context) ([]*domain.Cart, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []cartRecord
	if err := r.db.WithContext(ctx).Find(&records).Error; err != nil {
		return nil, err
	}
	return r.loadCarts(ctx, r.db, records)
}

// DeleteAll purges carts and line items in one transaction.
func (r *Repository) DeleteAll(ctx context.Context) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&cartItemRecord{}).Error; err != nil {
			return err
		}
		return tx.Where("1 = 1").Delete(&cartRecord{}).Error
	})
}

func lockUnpaidCart(tx *gorm.DB, customerID string) (cartRecord, error) {
	var record cartRecord
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&record, "customer_id = ? AND paid = false", customerID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return cartRecord{}, ports.ErrCartNotFound
		}
		return cartRecord{}, err
	}
	return record, nil
}

// recomputeTotal rewrites the derived total from the current line items
// inside the caller's transaction, replacing the trigger-based upkeep a
// database-side design would use.
func recomputeTotal(tx *gorm.DB, cartID int64) error {
	return tx.Model(&cartRecord{}).Where("id = ?", cartID).
		Updates(map[string]any{
			"total": gorm.Expr(
				"COALESCE((SELECT ROUND(SUM(quantity * price)::numeric, 2) FROM cart_items WHERE cart_id = ?), 0)",
				cartID,
			),
			"updated_at": gorm.Expr("NOW()"),
		}).Error
}

func (r *Repository) reloadCart(ctx context.Context, tx *gorm.DB, cartID int64) (*domain.Cart, error) {
	var record cartRecord
	if err := tx.WithContext(ctx).First(&record, "id = ?", cartID).Error; err != nil {
		return nil, err
	}
	return r.loadCart(ctx, tx, record)
}

func (r *Repository) loadCart(ctx context.Context, tx *gorm.DB, record cartRecord) (*domain.Cart, error) {
	var lines []cartItemRecord
	if err := tx.WithContext(ctx).Find(&lines, "cart_id = ?", record.ID).Error; err != nil {
		return nil, err
	}
	return toDomain(record, lines), nil
}

func (r *Repository) loadCarts(ctx context.Context, tx *gorm.DB, records []cartRecord) ([]*domain.Cart, error) {
	carts := make([]*domain.Cart, 0, len(records))
	for i := range records {
		cart, err := r.loadCart(ctx, tx, records[i])
		if err != nil {
			return nil, err
		}
		carts = append(carts, cart)
	}
	return carts, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres cart repository not configured")
	}
	return nil
}

func toDomain(record cartRecord, lines []cartItemRecord) *domain.Cart {
	cart := &domain.Cart{
		ID:          record.ID,
		CustomerID:  record.CustomerID,
		Paid:        record.Paid,
		PaymentDate: record.PaymentDate,
		Total:       record.Total,
		Items:       make([]domain.LineItem, 0, len(lines)),
	}
	for _, line := range lines {
		cart.Items = append(cart.Items, domain.LineItem{
			ProductModel: line.ProductModel,
			Quantity:     line.Quantity,
			Category:     line.Category,
			Price:        line.Price,
		})
	}
	return cart
}
