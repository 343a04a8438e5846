package domain

type Cart struct {
	Cost          CartCost   `json:"cost"`
	TotalQuantity int        `json:"totalQuantity"`
	Lines         []CartItem `json:"lines"`
	Currency      string     `json:"currency"`
}

type CartCost struct {
	SubtotalAmount Money `json:"subtotalAmount"`
	TotalAmount    Money `json:"totalAmount"`
}

// CartItem quantity is always positive; a line that would reach zero is
// removed, never persisted at zero. Cost.TotalAmount is recomputed on every
// reducer transition, not continuously enforced between them.
type CartItem struct {
	ID          string       `json:"id,omitempty"`
	Quantity    int          `json:"quantity"`
	Cost        CartItemCost `json:"cost"`
	Merchandise Merchandise  `json:"merchandise"`
}

type CartItemCost struct {
	TotalAmount Money `json:"totalAmount"`
}

type Merchandise struct {
	ID              string           `json:"id"`
	Title           string           `json:"title"`
	SelectedOptions []SelectedOption `json:"selectedOptions"`
	Product         CartProduct      `json:"product"`
}

type SelectedOption struct {
	Name  string `json:"name"`
	Value string `json:"value,omitempty"`
}

// CartProduct is a minimal projection of Product embedded in cart lines, so
// a line stays valid even if the source product is later deleted or changed.
type CartProduct struct {
	ID            string `json:"id"`
	Handle        string `json:"handle"`
	Title         string `json:"title"`
	FeaturedImage Image  `json:"featuredImage"`
}
