package store

import (
	"sync"

	"plant-care-service/models"

	"github.com/shopspring/decimal"
)

// Cart is the persisted shopping cart: insertion-ordered, at most one
// entry per plant id.
type Cart struct {
	mu    sync.Mutex
	path  string
	items []models.CartItem
}

// NewCart loads the cart file, if any.
func NewCart(path string) (*Cart, error) {
	c := &Cart{path: path}
	if err := readFile(path, &c.items); err != nil {
		return nil, err
	}
	return c, nil
}

// Add inserts the plant with quantity 1, or increments the existing entry.
func (c *Cart) Add(plant models.Plant) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].ID == plant.ID {
			c.items[i].Quantity++
			return writeFile(c.path, c.items)
		}
	}
	c.items = append(c.items, models.CartItem{Plant: plant, Quantity: 1})
	return writeFile(c.path, c.items)
}

// Remove deletes the entry if present; removing an absent id is a no-op.
func (c *Cart) Remove(plantID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].ID == plantID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return writeFile(c.path, c.items)
		}
	}
	return nil
}

// UpdateQuantity overwrites the quantity; zero or less removes the entry.
func (c *Cart) UpdateQuantity(plantID string, quantity int) error {
	if quantity <= 0 {
		return c.Remove(plantID)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].ID == plantID {
			c.items[i].Quantity = quantity
			return writeFile(c.path, c.items)
		}
	}
	return nil
}

// Clear empties the cart.
func (c *Cart) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
	return writeFile(c.path, c.items)
}

// Items returns a copy in insertion order.
func (c *Cart) Items() []models.CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.CartItem, len(c.items))
	copy(out, c.items)
	return out
}

// Total sums price times quantity over all entries.
func (c *Cart) Total() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := decimal.Zero
	for _, item := range c.items {
		price := decimal.NewFromFloat(item.Price)
		total = total.Add(price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

// Count sums quantities over all entries.
func (c *Cart) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	count := 0
	for _, item := range c.items {
		count += item.Quantity
	}
	return count
}
