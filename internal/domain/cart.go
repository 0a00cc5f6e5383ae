package domain

// CartItem is one line of the cart: a product snapshot plus a quantity.
// The snapshot is taken when the product is added so the cart keeps
// rendering even if the catalog entry changes afterwards.
type CartItem struct {
	ProductID int64   `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Category  string  `json:"category"`
	ImageURL  string  `json:"image_url,omitempty"`
	InStock   bool    `json:"in_stock"`
	Quantity  int     `json:"quantity"`
}

// NewCartItem snapshots a catalog product into a cart line.
func NewCartItem(p Product, quantity int) CartItem {
	if quantity < 1 {
		quantity = 1
	}
	return CartItem{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Category:  p.Category,
		ImageURL:  p.ImageURL,
		InStock:   p.InStock,
		Quantity:  quantity,
	}
}

// Cart is the customer's pending purchase. Product ids are unique
// within Items; mutate only through the cart store.
type Cart struct {
	Items []CartItem `json:"items"`
}

func (c Cart) Empty() bool { return len(c.Items) == 0 }

// TotalItems is the sum of line quantities, recomputed on every call.
func (c Cart) TotalItems() int {
	n := 0
	for _, it := range c.Items {
		n += it.Quantity
	}
	return n
}

// TotalPrice is sum(unit price x quantity); never cached.
func (c Cart) TotalPrice() float64 {
	var total float64
	for _, it := range c.Items {
		total += it.Price * float64(it.Quantity)
	}
	return total
}

func (c Cart) Find(productID int64) (int, bool) {
	for i, it := range c.Items {
		if it.ProductID == productID {
			return i, true
		}
	}
	return -1, false
}
