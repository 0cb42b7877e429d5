package db

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TokenRepository defines decoupled operations for credential persistence.
// Get returns (nil, nil) when no credential pair is stored; a missing token
// is an expected state, not an error.
type TokenRepository interface {
	Get(ctx context.Context) (*Token, error)
	Upsert(ctx context.Context, token *Token) error
	Clear(ctx context.Context) error
}

// ProductRepository defines decoupled operations for the catalogue cache.
type ProductRepository interface {
	Put(ctx context.Context, p Product) error
	GetByCode(ctx context.Context, code string) (*Product, error)
	List(ctx context.Context) ([]Product, error)
	SearchByName(ctx context.Context, nameSubstr string) ([]Product, error)
	Clear(ctx context.Context) error
}

// CartRepository defines decoupled operations for cart line persistence.
type CartRepository interface {
	Lines(ctx context.Context) ([]CartLine, error)
	GetByCode(ctx context.Context, code string) (*CartLine, error)
	Upsert(ctx context.Context, line *CartLine) error
	Delete(ctx context.Context, code string) error
	Clear(ctx context.Context) error
}

// gormTokenRepo is a GORM-backed implementation of TokenRepository.
// Use constructor NewTokenRepository to obtain an instance.
type gormTokenRepo struct{ db *gorm.DB }

// gormProductRepo is a GORM-backed implementation of ProductRepository.
type gormProductRepo struct{ db *gorm.DB }

// gormCartRepo is a GORM-backed implementation of CartRepository.
type gormCartRepo struct{ db *gorm.DB }

// NewTokenRepository creates a TokenRepository. Accepts *gorm.DB to avoid global access.
func NewTokenRepository(db *gorm.DB) TokenRepository { return &gormTokenRepo{db: db} }

// NewProductRepository creates a ProductRepository. Accepts *gorm.DB to avoid global access.
func NewProductRepository(db *gorm.DB) ProductRepository { return &gormProductRepo{db: db} }

// NewCartRepository creates a CartRepository. Accepts *gorm.DB to avoid global access.
func NewCartRepository(db *gorm.DB) CartRepository { return &gormCartRepo{db: db} }

func (r *gormTokenRepo) Get(ctx context.Context) (*Token, error) {
	if r.db == nil {
		return nil, fmt.Errorf("repository not initialized")
	}
	var token Token
	err := r.db.WithContext(ctx).First(&token).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &token, nil
}

func (r *gormTokenRepo) Upsert(ctx context.Context, token *Token) error {
	if r.db == nil {
		return fmt.Errorf("repository not initialized")
	}
	token.ID = 1
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"access_token", "refresh_token", "expires_at"}),
	}).Create(token).Error
}

func (r *gormTokenRepo) Clear(ctx context.Context) error {
	if r.db == nil {
		return fmt.Errorf("repository not initialized")
	}
	return r.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(&Token{}).Error
}

func (r *gormProductRepo) Put(ctx context.Context, p Product) error {
	if r.db == nil {
		return fmt.Errorf("repository not initialized")
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&p).Error
}

func (r *gormProductRepo) GetByCode(ctx context.Context, code string) (*Product, error) {
	if r.db == nil {
		return nil, fmt.Errorf("repository not initialized")
	}
	var product Product
	err := r.db.WithContext(ctx).First(&product, "code = ?", code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *gormProductRepo) List(ctx context.Context) ([]Product, error) {
	if r.db == nil {
		return nil, fmt.Errorf("repository not initialized")
	}
	var products []Product
	if err := r.db.WithContext(ctx).Order("code").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *gormProductRepo) SearchByName(ctx context.Context, nameSubstr string) ([]Product, error) {
	if r.db == nil {
		return nil, fmt.Errorf("repository not initialized")
	}
	var products []Product
	if err := r.db.WithContext(ctx).Where("name LIKE ?", "%"+nameSubstr+"%").Order("code").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *gormProductRepo) Clear(ctx context.Context) error {
	if r.db == nil {
		return fmt.Errorf("repository not initialized")
	}
	return r.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(&Product{}).Error
}

func (r *gormCartRepo) Lines(ctx context.Context) ([]CartLine, error) {
	if r.db == nil {
		return nil, fmt.Errorf("repository not initialized")
	}
	var lines []CartLine
	if err := r.db.WithContext(ctx).Order("code").Find(&lines).Error; err != nil {
		return nil, err
	}
	return lines, nil
}

func (r *gormCartRepo) GetByCode(ctx context.Context, code string) (*CartLine, error) {
	if r.db == nil {
		return nil, fmt.Errorf("repository not initialized")
	}
	var line CartLine
	err := r.db.WithContext(ctx).First(&line, "code = ?", code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &line, nil
}

func (r *gormCartRepo) Upsert(ctx context.Context, line *CartLine) error {
	if r.db == nil {
		return fmt.Errorf("repository not initialized")
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "code"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "price_cents", "quantity"}),
	}).Create(line).Error
}

func (r *gormCartRepo) Delete(ctx context.Context, code string) error {
	if r.db == nil {
		return fmt.Errorf("repository not initialized")
	}
	return r.db.WithContext(ctx).Unscoped().Delete(&CartLine{}, "code = ?", code).Error
}

func (r *gormCartRepo) Clear(ctx context.Context) error {
	if r.db == nil {
		return fmt.Errorf("repository not initialized")
	}
	return r.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(&CartLine{}).Error
}
