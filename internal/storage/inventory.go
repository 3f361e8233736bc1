package storage

// CoffeeItem is the inventory key for coffee charges.
const CoffeeItem = "coffee"

// CoffeeInventory keeps coffee charges in the store so they carry over
// between runs. Errors are reported through OnError and treated as an
// empty inventory.
type CoffeeInventory struct {
	store   *Store
	OnError func(error)
}

// Inventory wraps store as a coffee inventory.
func Inventory(store *Store) *CoffeeInventory {
	return &CoffeeInventory{store: store}
}

func (c *CoffeeInventory) report(err error) {
	if c.OnError != nil {
		c.OnError(err)
	}
}

func (c *CoffeeInventory) CoffeeCount() int {
	n, err := c.store.ItemCount(CoffeeItem)
	if err != nil {
		c.report(err)
		return 0
	}
	return n
}

func (c *CoffeeInventory) SpendCoffee() bool {
	ok, err := c.store.SpendItem(CoffeeItem)
	if err != nil {
		c.report(err)
		return false
	}
	return ok
}

func (c *CoffeeInventory) AddCoffee(n int) {
	if err := c.store.AddItem(CoffeeItem, n); err != nil {
		c.report(err)
	}
}
