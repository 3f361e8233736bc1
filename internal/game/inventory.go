package game

import "sync"

// Inventory holds the coffee charges a run may spend.
// Persistent stores implement it; MemoryInventory is the in-process default.
type Inventory interface {
	CoffeeCount() int
	SpendCoffee() bool
	AddCoffee(n int)
}

// MemoryInventory is an Inventory that lives only as long as the process.
type MemoryInventory struct {
	mu     sync.Mutex
	coffee int
}

// NewMemoryInventory creates an inventory holding coffee charges.
func NewMemoryInventory(coffee int) *MemoryInventory {
	return &MemoryInventory{coffee: coffee}
}

func (m *MemoryInventory) CoffeeCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.coffee
}

func (m *MemoryInventory) SpendCoffee() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.coffee <= 0 {
		return false
	}
	m.coffee--
	return true
}

func (m *MemoryInventory) AddCoffee(n int) {
	if n <= 0 {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.coffee += n
}
