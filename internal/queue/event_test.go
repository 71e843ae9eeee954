package queue

import (
	"strings"
	"testing"
)

func validEvent() OrderCreated {
	return OrderCreated{
		OrderID:       "0b1f1c9a-7b39-4a47-9c21-3f4ce1a2b345",
		OrderNumber:   "1234",
		CustomerName:  "Ana",
		CustomerPhone: "5511912345678",
		Lines:         []string{"2x Widget"},
		Total:         "39.80",
	}
}

func TestOrderCreatedValidate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*OrderCreated)
		wantErr string
	}{
		{"valid", func(e *OrderCreated) {}, ""},
		{"missing order id", func(e *OrderCreated) { e.OrderID = "" }, "order_id"},
		{"missing number", func(e *OrderCreated) { e.OrderNumber = "" }, "order_number"},
		{"missing customer", func(e *OrderCreated) { e.CustomerName = "" }, "customer_name"},
		{"no lines", func(e *OrderCreated) { e.Lines = nil }, "lines"},
		{"missing total", func(e *OrderCreated) { e.Total = "" }, "total"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			evt := validEvent()
			tc.mutate(&evt)
			err := evt.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("err = %v, want mention of %q", err, tc.wantErr)
			}
		})
	}
}

func TestParseOrderEventRoundTrip(t *testing.T) {
	values := map[string]interface{}{
		"order_id":       "0b1f1c9a-7b39-4a47-9c21-3f4ce1a2b345",
		"order_number":   "1234",
		"customer_name":  "Ana",
		"customer_phone": "5511912345678",
		"lines":          `["2x Widget","1x Gadget"]`,
		"total":          "59.70",
	}

	evt, err := parseOrderEvent(values)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if evt.OrderNumber != "1234" || evt.Total != "59.70" {
		t.Fatalf("unexpected event: %+v", evt)
	}
	if len(evt.Lines) != 2 || evt.Lines[0] != "2x Widget" || evt.Lines[1] != "1x Gadget" {
		t.Fatalf("lines = %v", evt.Lines)
	}
}

func TestParseOrderEventRejectsBadEntries(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(map[string]interface{})
	}{
		{"missing field", func(v map[string]interface{}) { delete(v, "order_number") }},
		{"bad lines json", func(v map[string]interface{}) { v["lines"] = "not json" }},
		{"empty lines", func(v map[string]interface{}) { v["lines"] = "[]" }},
		{"non string field", func(v map[string]interface{}) { v["total"] = 42 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			values := map[string]interface{}{
				"order_id":       "abc",
				"order_number":   "1234",
				"customer_name":  "Ana",
				"customer_phone": "551191",
				"lines":          `["1x Widget"]`,
				"total":          "19.90",
			}
			tc.mutate(values)
			if _, err := parseOrderEvent(values); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}
