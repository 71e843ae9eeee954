package router

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"zap_store/internal/catalog"
	"zap_store/internal/checkout"
	"zap_store/internal/config"
	"zap_store/internal/middleware"
	"zap_store/internal/model"

	"github.com/gin-gonic/gin"
	rd "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// Setup registers all HTTP routes. rdb may be nil in dev/test setups; the
// rate limiter is then skipped.
func Setup(r *gin.Engine, db *gorm.DB, rdb *rd.Client, cat *catalog.Lookup, svc *checkout.Service, cfg config.AppConfig) {
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"msg": "pong"})
	})

	api := r.Group("/api")
	api.GET("/categories", listCategories(cat))
	api.GET("/products", listProducts(cat))
	api.GET("/products/:id", getProduct(cat))
	api.GET("/banners", listBanners(cat))
	api.GET("/promotions/active", activePromotion(cat))

	if rdb != nil {
		api.POST("/orders", middleware.RedisRateLimit(rdb, cfg.OrderRateLimit, cfg.OrderRateWindow), createOrder(svc))
	} else {
		api.POST("/orders", createOrder(svc))
	}

	// Seeding endpoints, token-guarded. The real admin surface lives elsewhere.
	api.POST("/products", requireAdmin(cfg.AdminToken), createProduct(db))
	api.POST("/banners", requireAdmin(cfg.AdminToken), createBanner(db))
}

func listCategories(cat *catalog.Lookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		cats, err := cat.ListCategories(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"code": 500, "msg": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"code": 0, "data": cats})
	}
}

func listProducts(cat *catalog.Lookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		var categoryID uint
		if raw := c.Query("category_id"); raw != "" {
			id, err := strconv.ParseUint(raw, 10, 32)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"code": 400, "msg": "invalid category_id"})
				return
			}
			categoryID = uint(id)
		}

		limit := queryInt(c, "limit", defaultPageSize)
		if limit < 1 || limit > maxPageSize {
			limit = defaultPageSize
		}
		offset := queryInt(c, "offset", 0)
		if offset < 0 {
			offset = 0
		}

		list, count, err := cat.ListActiveProducts(c.Request.Context(), categoryID, limit, offset)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"code": 500, "msg": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"code": 0, "data": gin.H{"items": list, "count": count}})
	}
}

func getProduct(cat *catalog.Lookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"code": 400, "msg": "invalid product id"})
			return
		}
		p, err := cat.GetProduct(c.Request.Context(), uint(id))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"code": 500, "msg": err.Error()})
			return
		}
		if p == nil {
			c.JSON(http.StatusNotFound, gin.H{"code": 404, "msg": "product not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"code": 0, "data": p})
	}
}

func listBanners(cat *catalog.Lookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		banners, err := cat.ListActiveBanners(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"code": 500, "msg": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"code": 0, "data": banners})
	}
}

func activePromotion(cat *catalog.Lookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		promo, err := cat.ActivePromotion(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"code": 500, "msg": err.Error()})
			return
		}
		if promo == nil {
			c.JSON(http.StatusNotFound, gin.H{"code": 404, "msg": "no active promotion"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"code": 0, "data": promo})
	}
}

// createOrder is the order submission entry point. Quantity is a pointer so
// an omitted field (defaults to 1) is distinguishable from an explicit 0
// (rejected downstream).
func createOrder(svc *checkout.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			CustomerName  string `json:"customer_name" binding:"required"`
			CustomerPhone string `json:"customer_phone" binding:"required"`
			Items         []struct {
				ProductID uint `json:"product_id" binding:"required,min=1"`
				Quantity  *int `json:"quantity"`
			} `json:"items" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"code": 400, "msg": err.Error()})
			return
		}

		items := make([]checkout.ItemRequest, 0, len(req.Items))
		for _, it := range req.Items {
			qty := 1
			if it.Quantity != nil {
				qty = *it.Quantity
			}
			items = append(items, checkout.ItemRequest{ProductID: it.ProductID, Quantity: qty})
		}

		receipt, err := svc.Submit(c.Request.Context(), checkout.OrderRequest{
			CustomerName:  req.CustomerName,
			CustomerPhone: req.CustomerPhone,
			Items:         items,
		})
		if err != nil {
			writeOrderError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"code": 0, "data": gin.H{
			"id":           receipt.OrderID,
			"order_number": receipt.OrderNumber,
			"whatsapp_url": receipt.WhatsAppURL,
		}})
	}
}

// writeOrderError maps the checkout error taxonomy onto HTTP statuses:
// bad input and unavailable products are the caller's problem, everything
// else is a service failure.
func writeOrderError(c *gin.Context, err error) {
	var unavailable *checkout.ProductUnavailableError
	switch {
	case errors.Is(err, checkout.ErrInvalidOrder):
		c.JSON(http.StatusBadRequest, gin.H{"code": 400, "msg": err.Error()})
	case errors.As(err, &unavailable):
		c.JSON(http.StatusNotFound, gin.H{"code": 404, "msg": unavailable.Error()})
	case errors.Is(err, checkout.ErrOrderNumberExhausted):
		c.JSON(http.StatusServiceUnavailable, gin.H{"code": 503, "msg": "could not allocate an order number, retry later"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"code": 500, "msg": err.Error()})
	}
}

func requireAdmin(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("X-Admin-Token") != token {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"code": 401, "msg": "invalid admin token"})
			return
		}
		c.Next()
	}
}

func createProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Name        string `json:"name" binding:"required"`
			Slug        string `json:"slug" binding:"required"`
			Description string `json:"description"`
			Price       string `json:"price" binding:"required"`
			ImageURL    string `json:"image"`
			IsActive    *bool  `json:"is_active"`
			CategoryIDs []uint `json:"category_ids"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"code": 400, "msg": err.Error()})
			return
		}

		price, err := parsePrice(req.Price)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"code": 400, "msg": "invalid price"})
			return
		}

		active := true
		if req.IsActive != nil {
			active = *req.IsActive
		}

		var cats []model.Category
		if len(req.CategoryIDs) > 0 {
			if err := db.Find(&cats, req.CategoryIDs).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"code": 500, "msg": err.Error()})
				return
			}
		}

		p := &model.Product{
			Name:        req.Name,
			Slug:        req.Slug,
			Description: req.Description,
			Price:       price,
			ImageURL:    req.ImageURL,
			IsActive:    active,
			Categories:  cats,
		}
		if err := db.Create(p).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"code": 500, "msg": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"code": 0, "data": p})
	}
}

func createBanner(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Title    string `json:"title" binding:"required"`
			ImageURL string `json:"image" binding:"required"`
			LinkURL  string `json:"link_url"`
			Position uint   `json:"position"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"code": 400, "msg": err.Error()})
			return
		}

		b := &model.Banner{
			Title:    req.Title,
			ImageURL: req.ImageURL,
			LinkURL:  req.LinkURL,
			IsActive: true,
			Position: req.Position,
		}
		if err := db.Create(b).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"code": 500, "msg": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"code": 0, "data": b})
	}
}

// parsePrice accepts a decimal string and normalizes it to 2 fraction digits.
func parsePrice(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, err
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("price must not be negative")
	}
	return d.Round(2), nil
}

func queryInt(c *gin.Context, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
