package fourthwall

import (
	"math"
	"strconv"
	"time"

	"github.com/naman03malhotra/vercel-commerce/internal/domain"
)

// Reshape functions translate raw backend records into the domain model.
// They do no I/O and never fail on malformed-but-present input: missing
// nested fields get typed fallbacks so the UI never sees a half-broken
// record. Only a missing product record reshapes to nil, so callers can
// filter.

// defaultImage stands in when a record carries no images at all.
var defaultImage = domain.Image{}

// missingRef fills identifier fields when a cart line has lost its product
// back-reference.
const missingRef = "unknown"

// ReshapeMoney converts a raw money value into the decimal-string form.
// The two backend sources disagree on units, so any minor-unit division
// happens before calling this.
func ReshapeMoney(raw MoneyRecord) domain.Money {
	return domain.Money{
		Amount:       domain.FormatAmount(raw.Value),
		CurrencyCode: raw.Currency,
	}
}

// ReshapeProduct maps one catalog record into the domain model. A nil
// record reshapes to nil.
func ReshapeProduct(raw *ProductRecord) *domain.Product {
	if raw == nil {
		return nil
	}

	images := make([]domain.Image, 0, len(raw.Images))
	for _, img := range raw.Images {
		images = append(images, domain.Image{
			URL:     img.Src,
			AltText: altOr(img.Alt, raw.Name),
		})
	}
	featured := defaultImage
	if len(images) > 0 {
		featured = images[0]
	}

	options := make([]domain.ProductOption, 0, len(raw.Attributes))
	for _, attr := range raw.Attributes {
		options = append(options, domain.ProductOption{
			ID:     attr.Slug,
			Name:   attr.Name,
			Values: attr.Options,
		})
	}

	tags := make([]string, 0, len(raw.Tags))
	for _, tag := range raw.Tags {
		tags = append(tags, tag.Name)
	}

	return &domain.Product{
		ID:              strconv.FormatInt(raw.ID, 10),
		Handle:          raw.Slug,
		Title:           raw.Name,
		Description:     raw.ShortDescription,
		DescriptionHTML: raw.Description,
		Images:          images,
		// Catalog prices are already in major units; the catalog source
		// carries no currency code, so the store currency applies.
		Price: domain.Money{
			Amount:       domain.FormatAmount(raw.Prices.Price),
			CurrencyCode: domain.DefaultCurrency,
		},
		FeaturedImage:    featured,
		Options:          options,
		AvailableForSale: raw.IsInStock,
		Tags:             tags,
		UpdatedAt:        time.Now().UTC(),
	}
}

// ReshapeProducts maps each record, silently dropping the ones that reshape
// to nothing. Relative order of the survivors is preserved.
func ReshapeProducts(raw []*ProductRecord) []domain.Product {
	reshaped := make([]domain.Product, 0, len(raw))
	for _, record := range raw {
		if product := ReshapeProduct(record); product != nil {
			reshaped = append(reshaped, *product)
		}
	}
	return reshaped
}

// ReshapeCartItem builds a structurally valid cart line from a variant
// record. The line total is the unit price times the quantity; an absent
// product back-reference is replaced with placeholders rather than failing.
func ReshapeCartItem(raw VariantCartItem) domain.CartItem {
	product := domain.CartProduct{
		ID:            missingRef,
		Handle:        missingRef,
		Title:         missingRef,
		FeaturedImage: domain.Image{AltText: raw.Variant.Name},
	}
	if ref := raw.Variant.Product; ref != nil {
		product.ID = ref.ID
		product.Handle = ref.Slug
		product.Title = ref.Name
		product.FeaturedImage.AltText = ref.Name
	}
	if len(raw.Variant.Images) > 0 {
		img := raw.Variant.Images[0]
		product.FeaturedImage.URL = img.URL
		product.FeaturedImage.Width = img.Width
		product.FeaturedImage.Height = img.Height
	}

	return domain.CartItem{
		ID:       raw.Variant.ID,
		Quantity: raw.Quantity,
		Cost: domain.CartItemCost{
			TotalAmount: ReshapeMoney(MoneyRecord{
				Value:    raw.Variant.UnitPrice.Value * float64(raw.Quantity),
				Currency: raw.Variant.UnitPrice.Currency,
			}),
		},
		Merchandise: domain.Merchandise{
			ID:              raw.Variant.ID,
			Title:           raw.Variant.Name,
			SelectedOptions: []domain.SelectedOption{},
			Product:         product,
		},
	}
}

// ReshapeCart converts a legacy cart snapshot. Amounts arrive as integers
// in minor units and are divided by 10^currency_minor_unit here, once, so
// no call site ever re-interprets units. TotalQuantity is recomputed from
// the items rather than trusting a backend aggregate.
func ReshapeCart(raw CartRecord) domain.Cart {
	lines := make([]domain.CartItem, 0, len(raw.Items))
	totalQuantity := 0
	for _, item := range raw.Items {
		totalQuantity += item.Quantity

		featured := defaultImage
		if len(item.Images) > 0 {
			featured = domain.Image{
				URL:     item.Images[0].Src,
				AltText: altOr(item.Images[0].Alt, item.Name),
			}
		}

		productID := strconv.FormatInt(item.ProductID, 10)
		lines = append(lines, domain.CartItem{
			ID:       item.Key,
			Quantity: item.Quantity,
			Cost: domain.CartItemCost{
				TotalAmount: domain.Money{
					Amount:       majorUnits(item.Totals.LineTotal, item.Totals.CurrencyMinorUnit),
					CurrencyCode: item.Totals.CurrencyCode,
				},
			},
			Merchandise: domain.Merchandise{
				ID:              productID,
				Title:           item.Name,
				SelectedOptions: []domain.SelectedOption{},
				Product: domain.CartProduct{
					ID:            productID,
					Handle:        item.SKU,
					Title:         item.Name,
					FeaturedImage: featured,
				},
			},
		})
	}

	return domain.Cart{
		Cost: domain.CartCost{
			TotalAmount: domain.Money{
				Amount:       majorUnits(raw.Totals.TotalPrice, raw.Totals.CurrencyMinorUnit),
				CurrencyCode: raw.Totals.CurrencyCode,
			},
			SubtotalAmount: domain.Money{
				Amount:       majorUnits(raw.Totals.TotalItems, raw.Totals.CurrencyMinorUnit),
				CurrencyCode: raw.Totals.CurrencyCode,
			},
		},
		Lines:         lines,
		Currency:      raw.Totals.CurrencyCode,
		TotalQuantity: totalQuantity,
	}
}

func majorUnits(minor int64, minorUnit int) string {
	return domain.FormatAmount(float64(minor) / math.Pow(10, float64(minorUnit)))
}

func altOr(alt, fallback string) string {
	if alt != "" {
		return alt
	}
	return fallback
}
