package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"
)

// Result records one submission outcome for the summary.
type Result struct {
	Status      int
	OrderNumber string
	Err         error
}

// Hammers POST /api/orders concurrently and checks that every accepted
// submission got a distinct order number.
func main() {
	baseURL := flag.String("base", "http://localhost:8080", "server base url")
	productID := flag.Int("product", 1, "product id to order")
	nOrders := flag.Int("n", 100, "number of submissions")
	concurrency := flag.Int("c", 20, "max concurrency")
	flag.Parse()

	client := &http.Client{Timeout: 5 * time.Second}

	fmt.Printf("start order load test: product=%d n=%d concurrency=%d\n", *productID, *nOrders, *concurrency)

	results := make([]Result, *nOrders)
	sem := make(chan struct{}, *concurrency)
	var wg sync.WaitGroup
	for i := 0; i < *nOrders; i++ {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()
			results[i] = submitOrder(client, *baseURL, *productID, i)
		}(i)
	}
	wg.Wait()

	printSummary(results)
}

func submitOrder(client *http.Client, baseURL string, productID, seq int) Result {
	payload := map[string]interface{}{
		"customer_name":  fmt.Sprintf("loadtest-%d", seq),
		"customer_phone": fmt.Sprintf("55119%08d", seq),
		"items": []map[string]interface{}{
			{"product_id": productID, "quantity": 1},
		},
	}
	body, _ := json.Marshal(payload)

	resp, err := client.Post(baseURL+"/api/orders", "application/json", bytes.NewReader(body))
	if err != nil {
		return Result{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{Status: resp.StatusCode, Err: err}
	}

	var out struct {
		Data struct {
			OrderNumber string `json:"order_number"`
		} `json:"data"`
	}
	_ = json.Unmarshal(raw, &out)

	return Result{Status: resp.StatusCode, OrderNumber: out.Data.OrderNumber}
}

func printSummary(results []Result) {
	statusCount := map[int]int{}
	numbers := map[string]int{}
	errs := 0
	for _, r := range results {
		if r.Err != nil {
			errs++
			continue
		}
		statusCount[r.Status]++
		if r.OrderNumber != "" {
			numbers[r.OrderNumber]++
		}
	}

	fmt.Println("status counts:")
	for status, n := range statusCount {
		fmt.Printf("  %d: %d\n", status, n)
	}
	fmt.Printf("transport errors: %d\n", errs)

	dups := 0
	for num, n := range numbers {
		if n > 1 {
			dups++
			fmt.Printf("DUPLICATE order number %s seen %d times\n", num, n)
		}
	}
	if dups == 0 {
		fmt.Printf("all %d order numbers unique\n", len(numbers))
	}
}
