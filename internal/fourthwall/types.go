package fourthwall

// Raw wire shapes for the two backend sources. The catalog API reports
// prices in major units; the legacy cart API reports integers in minor
// units with an explicit currency_minor_unit exponent. Both are normalized
// into the domain model by reshape.go before anything else touches them.

type MoneyRecord struct {
	Value    float64 `json:"value"`
	Currency string  `json:"currency"`
}

type ProductRecord struct {
	ID               int64              `json:"id"`
	Slug             string             `json:"slug"`
	Name             string             `json:"name"`
	Description      string             `json:"description"`
	ShortDescription string             `json:"short_description"`
	Images           []ProductImage     `json:"images"`
	Prices           ProductPrices      `json:"prices"`
	Attributes       []ProductAttribute `json:"attributes"`
	IsInStock        bool               `json:"is_in_stock"`
	Tags             []ProductTag       `json:"tags"`
}

type ProductImage struct {
	ID  int64  `json:"id"`
	Src string `json:"src"`
	Alt string `json:"alt"`
}

type ProductPrices struct {
	Price        float64 `json:"price"`
	RegularPrice float64 `json:"regular_price"`
	SalePrice    float64 `json:"sale_price"`
}

type ProductAttribute struct {
	Slug    string   `json:"slug"`
	Name    string   `json:"name"`
	Options []string `json:"options"`
}

type ProductTag struct {
	Name string `json:"name"`
}

// VariantCartItem is the catalog side's cart-line shape: a variant with a
// unit price in major units and an optional back-reference to its product.
type VariantCartItem struct {
	Variant  CartVariant `json:"variant"`
	Quantity int         `json:"quantity"`
}

type CartVariant struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	UnitPrice MoneyRecord     `json:"unitPrice"`
	Images    []VariantImage  `json:"images"`
	Product   *VariantProduct `json:"product"`
}

type VariantImage struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type VariantProduct struct {
	ID   string `json:"id"`
	Slug string `json:"slug"`
	Name string `json:"name"`
}

// CartRecord is the legacy commerce platform's cart snapshot.
type CartRecord struct {
	Items  []CartItemRecord `json:"items"`
	Totals CartTotals       `json:"totals"`
}

type CartItemRecord struct {
	Key       string          `json:"key"`
	ProductID int64           `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Name      string          `json:"name"`
	SKU       string          `json:"sku"`
	Images    []CartItemImage `json:"images"`
	Totals    LineTotals      `json:"totals"`
}

type CartItemImage struct {
	ID        int64  `json:"id"`
	Src       string `json:"src"`
	Thumbnail string `json:"thumbnail"`
	Alt       string `json:"alt"`
}

type LineTotals struct {
	LineTotal         int64  `json:"line_total"`
	CurrencyCode      string `json:"currency_code"`
	CurrencyMinorUnit int    `json:"currency_minor_unit"`
}

type CartTotals struct {
	TotalItems        int64  `json:"total_items"`
	TotalPrice        int64  `json:"total_price"`
	CurrencyCode      string `json:"currency_code"`
	CurrencyMinorUnit int    `json:"currency_minor_unit"`
}
