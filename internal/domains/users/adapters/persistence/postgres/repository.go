package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/LienoPC/EZ-Electronics-sub000/internal/domains/users/domain"
	"github.com/LienoPC/EZ-Electronics-sub000/internal/domains/users/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository stores user accounts in PostgreSQL through GORM. The
// username carries a unique index and is the key for every operation;
// the numeric ID exists only as the surrogate primary key.
type Repository struct {
	db *gorm.DB
}

// NewRepository returns a PostgreSQL-backed user repository. The caller
// owns the connection lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	if db != nil {
		_ = db.AutoMigrate(&userRecord{})
	}
	return &Repository{db: db}
}

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

// Save upserts the account keyed by username and returns the stored
// row, so callers see the database-assigned ID and timestamps.
func (r *Repository) Save(ctx context.Context, user *domain.User) (*domain.User, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New("user is nil")
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}

	record := toRecord(user)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "username"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "surname", "email", "password_hash", "role", "updated_at"}),
		}).
		Create(&record).Error
	if err != nil {
		return nil, err
	}
	return r.GetByUsername(ctx, record.Username)
}

func (r *Repository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record userRecord
	err := r.db.WithContext(ctx).
		Where("username = ?", strings.TrimSpace(username)).
		Take(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) Delete(ctx context.Context, username string) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).
		Where("username = ?", strings.TrimSpace(username)).
		Delete(&userRecord{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func (r *Repository) List(ctx context.Context) ([]*domain.User, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []userRecord
	if err := r.db.WithContext(ctx).Order("username").Find(&records).Error; err != nil {
		return nil, err
	}
	users := make([]*domain.User, 0, len(records))
	for i := range records {
		users = append(users, records[i].toDomain())
	}
	return users, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres user repository not configured")
	}
	return nil
}

func toRecord(user *domain.User) userRecord {
	return userRecord{
		ID:       user.ID,
		Username: user.Username,
		Name:     user.Name,
		Surname:  user.Surname,
		Email:    user.Email,
		Password: user.Password,
		Role:     string(user.Role),
	}
}

func (r userRecord) toDomain() *domain.User {
	return &domain.User{
		ID:       r.ID,
		Username: r.Username,
		Name:     r.Name,
		Surname:  r.Surname,
		Email:    r.Email,
		Password: r.Password,
		Role:     domain.Role(r.Role),
	}
}
