package queue

import "fmt"

// OrderCreated is the event emitted after an order commits. It carries the
// summary the notifier needs; the authoritative record stays in the DB.
type OrderCreated struct {
	OrderID       string   `json:"order_id"`
	OrderNumber   string   `json:"order_number"`
	CustomerName  string   `json:"customer_name"`
	CustomerPhone string   `json:"customer_phone"`
	Lines         []string `json:"lines"`
	Total         string   `json:"total"` // fixed to 2 decimals
}

// Validate rejects malformed events before they reach the consumer.
func (e OrderCreated) Validate() error {
	if e.OrderID == "" {
		return fmt.Errorf("order_id is required")
	}
	if e.OrderNumber == "" {
		return fmt.Errorf("order_number is required")
	}
	if e.CustomerName == "" {
		return fmt.Errorf("customer_name is required")
	}
	if len(e.Lines) == 0 {
		return fmt.Errorf("lines must not be empty")
	}
	if e.Total == "" {
		return fmt.Errorf("total is required")
	}
	return nil
}
