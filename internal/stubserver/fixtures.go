package stubserver

import "github.com/naman03malhotra/vercel-commerce/internal/fourthwall"

// defaultProducts returns the built-in catalog. Shapes mirror what the real
// platform returns so reshaping behaves the same against the stub.
func defaultProducts() []fourthwall.ProductRecord {
	return []fourthwall.ProductRecord{
		{
			ID:               277,
			Slug:             "long-sleeve-tee",
			Name:             "Long Sleeve Tee",
			Description:      "<p>A heavyweight long sleeve tee with a relaxed fit.</p>",
			ShortDescription: "Heavyweight long sleeve tee.",
			Images: []fourthwall.ProductImage{
				{ID: 2771, Src: "https://cdn.example.com/products/long-sleeve-tee-front.jpg", Alt: "Long Sleeve Tee front"},
				{ID: 2772, Src: "https://cdn.example.com/products/long-sleeve-tee-back.jpg", Alt: "Long Sleeve Tee back"},
			},
			Prices: fourthwall.ProductPrices{Price: 25, RegularPrice: 25, SalePrice: 25},
			Attributes: []fourthwall.ProductAttribute{
				{Slug: "size", Name: "Size", Options: []string{"S", "M", "L", "XL"}},
				{Slug: "color", Name: "Color", Options: []string{"Black", "White"}},
			},
			IsInStock: true,
			Tags:      []fourthwall.ProductTag{{Name: "apparel"}, {Name: "featured"}},
		},
		{
			ID:               300,
			Slug:             "classic-hoodie",
			Name:             "Classic Hoodie",
			Description:      "<p>A fleece-lined hoodie with a front pocket.</p>",
			ShortDescription: "Fleece-lined hoodie.",
			Images: []fourthwall.ProductImage{
				{ID: 3001, Src: "https://cdn.example.com/products/classic-hoodie.jpg", Alt: "Classic Hoodie"},
			},
			Prices: fourthwall.ProductPrices{Price: 42.5, RegularPrice: 45, SalePrice: 42.5},
			Attributes: []fourthwall.ProductAttribute{
				{Slug: "size", Name: "Size", Options: []string{"S", "M", "L"}},
			},
			IsInStock: true,
			Tags:      []fourthwall.ProductTag{{Name: "apparel"}},
		},
		{
			ID:               301,
			Slug:             "enamel-mug",
			Name:             "Enamel Mug",
			Description:      "<p>A 12oz enamel camping mug.</p>",
			ShortDescription: "12oz enamel mug.",
			Images:           nil,
			Prices:           fourthwall.ProductPrices{Price: 14.99, RegularPrice: 14.99, SalePrice: 14.99},
			IsInStock:        true,
			Tags:             []fourthwall.ProductTag{{Name: "drinkware"}},
		},
	}
}
