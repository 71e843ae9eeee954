package catalog

import (
	"context"
	"path/filepath"
	"testing"

	"zap_store/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(
		&model.Category{},
		&model.Product{},
		&model.Banner{},
		&model.PromotionalPopup{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func mustCreate(t *testing.T, db *gorm.DB, v interface{}) {
	t.Helper()
	if err := db.Create(v).Error; err != nil {
		t.Fatalf("create %T: %v", v, err)
	}
}

func TestGetActiveProduct(t *testing.T) {
	db := newTestDB(t)
	mustCreate(t, db, &model.Product{ID: 1, Name: "Widget", Slug: "widget", Price: decimal.RequireFromString("19.90"), IsActive: true})
	mustCreate(t, db, &model.Product{ID: 2, Name: "Retired", Slug: "retired", Price: decimal.RequireFromString("5.00"), IsActive: false})
	l := New(db)

	p, err := l.GetActiveProduct(context.Background(), 1)
	if err != nil || p == nil {
		t.Fatalf("active product: p=%v err=%v", p, err)
	}
	if p.Name != "Widget" || !p.Price.Equal(decimal.RequireFromString("19.90")) {
		t.Fatalf("unexpected product: %+v", p)
	}

	if p, err := l.GetActiveProduct(context.Background(), 2); err != nil || p != nil {
		t.Fatalf("inactive product must resolve to nil, got p=%v err=%v", p, err)
	}
	if p, err := l.GetActiveProduct(context.Background(), 99); err != nil || p != nil {
		t.Fatalf("missing product must resolve to nil, got p=%v err=%v", p, err)
	}
}

func TestListActiveProductsFiltersAndPages(t *testing.T) {
	db := newTestDB(t)
	tools := model.Category{ID: 1, Name: "Tools", Slug: "tools"}
	toys := model.Category{ID: 2, Name: "Toys", Slug: "toys"}
	mustCreate(t, db, &tools)
	mustCreate(t, db, &toys)
	mustCreate(t, db, &model.Product{ID: 1, Name: "Hammer", Slug: "hammer", Price: decimal.RequireFromString("10.00"), IsActive: true, Categories: []model.Category{tools}})
	mustCreate(t, db, &model.Product{ID: 2, Name: "Kite", Slug: "kite", Price: decimal.RequireFromString("7.00"), IsActive: true, Categories: []model.Category{toys}})
	mustCreate(t, db, &model.Product{ID: 3, Name: "Old Saw", Slug: "old-saw", Price: decimal.RequireFromString("3.00"), IsActive: false, Categories: []model.Category{tools}})
	l := New(db)

	list, count, err := l.ListActiveProducts(context.Background(), 0, 20, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if count != 2 || len(list) != 2 {
		t.Fatalf("count=%d len=%d, want 2/2", count, len(list))
	}

	list, count, err = l.ListActiveProducts(context.Background(), 1, 20, 0)
	if err != nil {
		t.Fatalf("list by category: %v", err)
	}
	if count != 1 || len(list) != 1 || list[0].Name != "Hammer" {
		t.Fatalf("category filter broken: count=%d list=%+v", count, list)
	}

	list, count, err = l.ListActiveProducts(context.Background(), 0, 1, 1)
	if err != nil {
		t.Fatalf("page: %v", err)
	}
	if count != 2 || len(list) != 1 || list[0].Name != "Kite" {
		t.Fatalf("paging broken: count=%d list=%+v", count, list)
	}
}

func TestListCategoriesOnlyWithActiveProducts(t *testing.T) {
	db := newTestDB(t)
	tools := model.Category{ID: 1, Name: "Tools", Slug: "tools"}
	empty := model.Category{ID: 2, Name: "Empty", Slug: "empty"}
	stale := model.Category{ID: 3, Name: "Stale", Slug: "stale"}
	mustCreate(t, db, &tools)
	mustCreate(t, db, &empty)
	mustCreate(t, db, &stale)
	mustCreate(t, db, &model.Product{ID: 1, Name: "Hammer", Slug: "hammer", Price: decimal.RequireFromString("10.00"), IsActive: true, Categories: []model.Category{tools}})
	mustCreate(t, db, &model.Product{ID: 2, Name: "Old Saw", Slug: "old-saw", Price: decimal.RequireFromString("3.00"), IsActive: false, Categories: []model.Category{stale}})
	l := New(db)

	cats, err := l.ListCategories(context.Background())
	if err != nil {
		t.Fatalf("categories: %v", err)
	}
	if len(cats) != 1 || cats[0].Name != "Tools" {
		t.Fatalf("cats = %+v, want only Tools", cats)
	}
}

func TestListActiveBannersOrdering(t *testing.T) {
	db := newTestDB(t)
	mustCreate(t, db, &model.Banner{ID: 1, Title: "second", ImageURL: "u1", IsActive: true, Position: 5})
	mustCreate(t, db, &model.Banner{ID: 2, Title: "first", ImageURL: "u2", IsActive: true, Position: 1})
	mustCreate(t, db, &model.Banner{ID: 3, Title: "hidden", ImageURL: "u3", IsActive: false, Position: 0})
	l := New(db)

	banners, err := l.ListActiveBanners(context.Background())
	if err != nil {
		t.Fatalf("banners: %v", err)
	}
	if len(banners) != 2 || banners[0].Title != "first" || banners[1].Title != "second" {
		t.Fatalf("banners = %+v", banners)
	}
}

func TestActivePromotionPicksNewest(t *testing.T) {
	db := newTestDB(t)
	l := New(db)

	if promo, err := l.ActivePromotion(context.Background()); err != nil || promo != nil {
		t.Fatalf("no promo expected, got %v err=%v", promo, err)
	}

	mustCreate(t, db, &model.PromotionalPopup{ID: 1, Title: "old", ImageURL: "u", IsActive: true, Frequency: model.PopupOncePerUser})
	mustCreate(t, db, &model.PromotionalPopup{ID: 2, Title: "off", ImageURL: "u", IsActive: false, Frequency: model.PopupOncePerUser})

	promo, err := l.ActivePromotion(context.Background())
	if err != nil || promo == nil {
		t.Fatalf("promo: %v err=%v", promo, err)
	}
	if promo.Title != "old" {
		t.Fatalf("promo = %+v", promo)
	}
}
