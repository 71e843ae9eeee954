package checkout

import (
	"context"
	"fmt"
	"os"
	"strings"

	"zap_store/internal/model"
	"zap_store/internal/queue"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Str("component", "checkout").Logger()

// Catalog resolves a product id to an active product. A nil product with a
// nil error means absent or inactive.
type Catalog interface {
	GetActiveProduct(ctx context.Context, id uint) (*model.Product, error)
}

// EventPublisher receives order-created events after commit. Publishing is
// best-effort: the order already exists, a dead broker must not undo it.
type EventPublisher interface {
	Publish(ctx context.Context, evt queue.OrderCreated) error
}

// ItemRequest is one requested line: product id plus quantity (already
// defaulted to 1 by the caller when omitted).
type ItemRequest struct {
	ProductID uint
	Quantity  int
}

// OrderRequest is a full submission.
type OrderRequest struct {
	CustomerName  string
	CustomerPhone string
	Items         []ItemRequest
}

// Receipt is what a successful submission returns to the caller.
type Receipt struct {
	OrderID     uuid.UUID
	OrderNumber string
	WhatsAppURL string
	Lines       []string
	Total       decimal.Decimal
}

// Service assembles and persists orders and builds the deep link.
type Service struct {
	db       *gorm.DB
	catalog  Catalog
	events   EventPublisher // nil disables the event feed
	number   NumberSource
	attempts int
	storeNum string
}

// NewService wires the checkout pipeline. storeNumber is the deep-link
// destination, attempts bounds the order-number retry loop.
func NewService(db *gorm.DB, cat Catalog, events EventPublisher, storeNumber string, attempts int) *Service {
	return &Service{
		db:       db,
		catalog:  cat,
		events:   events,
		number:   RandomNumber,
		attempts: attempts,
		storeNum: storeNumber,
	}
}

// Submit runs the whole pipeline:
//  1. validate the request
//  2. resolve every product, snapshot price and name, accumulate the total
//  3. persist order + items in one transaction, retrying on number collision
//  4. build the WhatsApp deep link and emit the order-created event
//
// Any failure before step 4 leaves the store untouched.
func (s *Service) Submit(ctx context.Context, req OrderRequest) (*Receipt, error) {
	if strings.TrimSpace(req.CustomerName) == "" {
		return nil, fmt.Errorf("%w: customer_name is required", ErrInvalidOrder)
	}
	if strings.TrimSpace(req.CustomerPhone) == "" {
		return nil, fmt.Errorf("%w: customer_phone is required", ErrInvalidOrder)
	}
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: at least one item is required", ErrInvalidOrder)
	}
	for _, it := range req.Items {
		if it.Quantity < 1 {
			return nil, fmt.Errorf("%w: quantity must be >= 1 for product %d", ErrInvalidOrder, it.ProductID)
		}
	}

	// Resolve products in request order so the message lines keep the
	// order the customer built their cart in.
	lines := make([]string, 0, len(req.Items))
	items := make([]model.OrderItem, 0, len(req.Items))
	total := decimal.Zero
	for _, it := range req.Items {
		p, err := s.catalog.GetActiveProduct(ctx, it.ProductID)
		if err != nil {
			return nil, fmt.Errorf("lookup product %d: %w", it.ProductID, err)
		}
		if p == nil {
			return nil, &ProductUnavailableError{ProductID: it.ProductID}
		}
		items = append(items, model.OrderItem{
			ProductID:   p.ID,
			ProductName: p.Name,
			Quantity:    it.Quantity,
			PriceAtTime: p.Price,
		})
		lines = append(lines, fmt.Sprintf("%dx %s", it.Quantity, p.Name))
		total = total.Add(p.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}

	order, err := s.persist(ctx, req, items)
	if err != nil {
		return nil, err
	}

	link := BuildWhatsAppURL(order.Number, order.CustomerName, lines, total, s.storeNum)

	if s.events != nil {
		evt := queue.OrderCreated{
			OrderID:       order.ID.String(),
			OrderNumber:   order.Number,
			CustomerName:  order.CustomerName,
			CustomerPhone: order.CustomerPhone,
			Lines:         lines,
			Total:         total.StringFixed(2),
		}
		if err := s.events.Publish(ctx, evt); err != nil {
			logger.Error().Err(err).Str("order_number", order.Number).Msg("publish order event")
		}
	}

	return &Receipt{
		OrderID:     order.ID,
		OrderNumber: order.Number,
		WhatsAppURL: link,
		Lines:       lines,
		Total:       total,
	}, nil
}

// persist commits the order and all its items atomically. A collision on the
// unique order-number index aborts the transaction and retries with a fresh
// candidate; the bound keeps a crowded keyspace from looping forever.
func (s *Service) persist(ctx context.Context, req OrderRequest, items []model.OrderItem) (*model.Order, error) {
	for attempt := 0; attempt < s.attempts; attempt++ {
		order := &model.Order{
			ID:            uuid.New(),
			Number:        s.number(),
			CustomerName:  req.CustomerName,
			CustomerPhone: req.CustomerPhone,
			Status:        model.OrderPending,
			// Fresh copy per attempt: gorm writes back item IDs on create.
			Items: append([]model.OrderItem(nil), items...),
		}

		err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return tx.Create(order).Error
		})
		if err == nil {
			return order, nil
		}
		// The only unique index touched here is orders.number, so a
		// uniqueness failure means a number collision.
		if isUniqueViolation(err) {
			logger.Warn().Str("candidate", order.Number).Int("attempt", attempt+1).Msg("order number collision, retrying")
			continue
		}
		return nil, &PersistenceError{Err: err}
	}
	return nil, ErrOrderNumberExhausted
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "UNIQUE") || strings.Contains(s, "unique")
}
