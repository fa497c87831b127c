package dto

import "fmt"

// StructuredOrder is the extraction oracle's output contract for one order
// message: a product followed by per-customer (color, quantity) line items.
type StructuredOrder struct {
	ProductName string          `json:"product_name"`
	Orders      []CustomerOrder `json:"orders"`
}

// CustomerOrder groups the line items of one customer in the message.
type CustomerOrder struct {
	CustomerName string      `json:"customer_name"`
	Items        []OrderItem `json:"items"`
}

// OrderItem is one (color, quantity) pair.
type OrderItem struct {
	Color    string `json:"color"`
	Quantity int    `json:"quantity"`
}

// Validate checks schema conformance. Any violation is a hard extraction
// failure: the message must not be partially persisted.
func (s *StructuredOrder) Validate() error {
	if s.ProductName == "" {
		return fmt.Errorf("structured order: missing product_name")
	}
	if len(s.Orders) == 0 {
		return fmt.Errorf("structured order: no customer orders")
	}
	for i, co := range s.Orders {
		if co.CustomerName == "" {
			return fmt.Errorf("structured order: order %d missing customer_name", i)
		}
		if len(co.Items) == 0 {
			return fmt.Errorf("structured order: customer %q has no items", co.CustomerName)
		}
		for j, it := range co.Items {
			if it.Quantity <= 0 {
				return fmt.Errorf("structured order: customer %q item %d has non-positive quantity", co.CustomerName, j)
			}
		}
	}
	return nil
}

// TotalQuantity sums quantities across all customers (diagnostics only).
func (s *StructuredOrder) TotalQuantity() int {
	total := 0
	for _, co := range s.Orders {
		for _, it := range co.Items {
			total += it.Quantity
		}
	}
	return total
}
