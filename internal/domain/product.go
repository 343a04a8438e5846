package domain

import "time"

// Image dimensions of zero mean "unknown", not an error.
type Image struct {
	URL     string `json:"url"`
	AltText string `json:"altText"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
}

// ProductOption is a named variation axis ("Size") with its legal values.
// Values order is display-significant.
type ProductOption struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

type Product struct {
	ID               string          `json:"id"`
	Handle           string          `json:"handle"`
	AvailableForSale bool            `json:"availableForSale"`
	Title            string          `json:"title"`
	Description      string          `json:"description"`
	DescriptionHTML  string          `json:"descriptionHtml"`
	Options          []ProductOption `json:"options"`
	Price            Money           `json:"price"`
	FeaturedImage    Image           `json:"featuredImage"`
	Tags             []string        `json:"tags"`
	UpdatedAt        time.Time       `json:"updatedAt"`
	Images           []Image         `json:"images"`
}
