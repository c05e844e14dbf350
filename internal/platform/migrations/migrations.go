package migrations

import (
	"time"

	"gorm.io/gorm"
)

// Run applies the schema for the bounded contexts. Intended to replace adapter-level automigrate.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&productRecord{},
		&cartRecord{},
		&cartItemRecord{},
		&userRecord{},
		&sessionRecord{},
	)
}

// Product schema mirrors the catalog Postgres adapter.
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

// Cart schema mirrors the cart Postgres adapter. The partial unique
// index enforces at most one unpaid cart per customer.
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

// Cart item schema. Line items cascade away with their cart; the
// product reference blocks catalog deletes while a line exists.
type cartItemRecord struct {
	CartID       int64         `gorm:"primaryKey;column:cart_id"`
	ProductModel string        `gorm:"primaryKey;column:product_model;size:255"`
	Quantity     int32         `gorm:"column:quantity"`
	Category     string        `gorm:"column:category;type:varchar(32)"`
	Price        float64       `gorm:"column:price"`
	CreatedAt    time.Time     `gorm:"column:created_at"`
	UpdatedAt    time.Time     `gorm:"column:updated_at"`
	Cart         cartRecord    `gorm:"foreignKey:CartID;references:ID;constraint:OnDelete:CASCADE"`
	Product      productRecord `gorm:"foreignKey:ProductModel;references:Model"`
}

func (cartItemRecord) TableName() string { return "cart_items" }

// User schema mirrors the users Postgres adapter.
type userRecord struct {
	ID        int64     `gorm:"primaryKey;column:id"`
	Username  string    `gorm:"column:username;uniqueIndex"`
	Name      string    `gorm:"column:name"`
	Surname   string    `gorm:"column:surname"`
	Email     string    `gorm:"column:email"`
	Password  string    `gorm:"column:password_hash"`
	Role      string    `gorm:"column:role"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (userRecord) TableName() string { return "users" }

// Session schema mirrors the session store.
type sessionRecord struct {
	Token     string     `gorm:"primaryKey;column:token;size:512"`
	Username  string     `gorm:"column:username;index"`
	ExpiresAt *time.Time `gorm:"column:expires_at;index"`
	CreatedAt time.Time  `gorm:"column:created_at;index"`
	UpdatedAt time.Time  `gorm:"column:updated_at;index"`
}

func (sessionRecord) TableName() string { return "user_sessions" }
