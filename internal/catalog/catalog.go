package catalog

import (
	"context"
	"errors"

	"zap_store/internal/model"

	"gorm.io/gorm"
)

// Lookup is the read side of the catalog: product resolution for checkout
// plus the storefront listing queries. It never writes.
type Lookup struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Lookup {
	return &Lookup{db: db}
}

// GetActiveProduct resolves an id to an active product. Returns (nil, nil)
// when the product is missing or inactive — checkout treats both the same.
func (l *Lookup) GetActiveProduct(ctx context.Context, id uint) (*model.Product, error) {
	var p model.Product
	err := l.db.WithContext(ctx).Where("is_active = ?", true).First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetProduct fetches a product by id regardless of active flag, for the
// detail endpoint. (nil, nil) when absent.
func (l *Lookup) GetProduct(ctx context.Context, id uint) (*model.Product, error) {
	var p model.Product
	err := l.db.WithContext(ctx).Preload("Categories").First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ListActiveProducts pages through active products, optionally filtered by
// category, with categories preloaded. Also returns the total match count.
func (l *Lookup) ListActiveProducts(ctx context.Context, categoryID uint, limit, offset int) ([]model.Product, int64, error) {
	// Fresh chain per finisher: reusing one chain for Count and Find leaves
	// stale clauses behind.
	base := func() *gorm.DB {
		q := l.db.WithContext(ctx).Model(&model.Product{}).Where("products.is_active = ?", true)
		if categoryID > 0 {
			q = q.Joins("JOIN product_categories pc ON pc.product_id = products.id").
				Where("pc.category_id = ?", categoryID)
		}
		return q
	}

	var count int64
	if err := base().Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var list []model.Product
	err := base().Preload("Categories").
		Order("products.id").
		Limit(limit).
		Offset(offset).
		Find(&list).Error
	if err != nil {
		return nil, 0, err
	}
	return list, count, nil
}

// ListCategories returns categories that have at least one active product.
func (l *Lookup) ListCategories(ctx context.Context) ([]model.Category, error) {
	var cats []model.Category
	err := l.db.WithContext(ctx).Model(&model.Category{}).
		Distinct("categories.*").
		Joins("JOIN product_categories pc ON pc.category_id = categories.id").
		Joins("JOIN products p ON p.id = pc.product_id AND p.is_active = ?", true).
		Order("categories.id").
		Find(&cats).Error
	if err != nil {
		return nil, err
	}
	return cats, nil
}

// ListActiveBanners returns active banners, lowest position first, newest
// first within a position.
func (l *Lookup) ListActiveBanners(ctx context.Context) ([]model.Banner, error) {
	var banners []model.Banner
	err := l.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("position asc, created_at desc").
		Find(&banners).Error
	if err != nil {
		return nil, err
	}
	return banners, nil
}

// ActivePromotion returns the most recently created active popup, or
// (nil, nil) when there is none.
func (l *Lookup) ActivePromotion(ctx context.Context) (*model.PromotionalPopup, error) {
	var promo model.PromotionalPopup
	err := l.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at desc").
		First(&promo).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &promo, nil
}
