package fourthwall

import (
	"reflect"
	"testing"
	"time"

	"github.com/naman03malhotra/vercel-commerce/internal/domain"
)

func sampleProductRecord() *ProductRecord {
	return &ProductRecord{
		ID:               277,
		Slug:             "long-sleeve-tee",
		Name:             "Long Sleeve Tee",
		Description:      "<p>Full description.</p>",
		ShortDescription: "<p>Short description.</p>",
		Images: []ProductImage{
			{ID: 101, Src: "https://cdn.example.com/tee-front.jpg", Alt: ""},
			{ID: 102, Src: "https://cdn.example.com/tee-back.jpg", Alt: "Back view"},
		},
		Prices: ProductPrices{Price: 25},
		Attributes: []ProductAttribute{
			{Slug: "size", Name: "Size", Options: []string{"S", "M", "L"}},
		},
		IsInStock: true,
		Tags:      []ProductTag{{Name: "apparel"}},
	}
}

func TestReshapeProduct(t *testing.T) {
	product := ReshapeProduct(sampleProductRecord())
	if product == nil {
		t.Fatal("expected a product")
	}
	if product.ID != "277" || product.Handle != "long-sleeve-tee" {
		t.Fatalf("unexpected identity %q/%q", product.ID, product.Handle)
	}
	if product.Price.Amount != "25" || product.Price.CurrencyCode != "USD" {
		t.Fatalf("unexpected price %+v", product.Price)
	}
	if product.FeaturedImage.URL != "https://cdn.example.com/tee-front.jpg" {
		t.Fatalf("expected first image as featured, got %+v", product.FeaturedImage)
	}
	if product.FeaturedImage.AltText != "Long Sleeve Tee" {
		t.Fatalf("expected alt text fallback to product name, got %q", product.FeaturedImage.AltText)
	}
	if product.FeaturedImage.Width != 0 || product.FeaturedImage.Height != 0 {
		t.Fatalf("expected unknown dimensions, got %+v", product.FeaturedImage)
	}
	if len(product.Options) != 1 || product.Options[0].Name != "Size" {
		t.Fatalf("unexpected options %+v", product.Options)
	}
	if !reflect.DeepEqual(product.Options[0].Values, []string{"S", "M", "L"}) {
		t.Fatalf("option values out of order: %+v", product.Options[0].Values)
	}
	if !product.AvailableForSale {
		t.Fatal("expected available for sale")
	}
}

func TestReshapeProductNilInput(t *testing.T) {
	if got := ReshapeProduct(nil); got != nil {
		t.Fatalf("expected nil, got %+v", got)
	}
}

func TestReshapeProductNoImages(t *testing.T) {
	record := sampleProductRecord()
	record.Images = nil
	product := ReshapeProduct(record)
	if product.FeaturedImage != (domain.Image{}) {
		t.Fatalf("expected zero-dimension placeholder, got %+v", product.FeaturedImage)
	}
	if len(product.Images) != 0 {
		t.Fatalf("expected no images, got %+v", product.Images)
	}
}

func TestReshapeProductDeterministic(t *testing.T) {
	record := sampleProductRecord()
	first := ReshapeProduct(record)
	second := ReshapeProduct(record)
	first.UpdatedAt = time.Time{}
	second.UpdatedAt = time.Time{}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("reshape is not deterministic:\n%+v\n%+v", first, second)
	}
}

func TestReshapeProductsDropsMissing(t *testing.T) {
	a := sampleProductRecord()
	b := sampleProductRecord()
	b.ID = 278
	b.Slug = "hoodie"

	products := ReshapeProducts([]*ProductRecord{a, nil, b})
	if len(products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(products))
	}
	if products[0].ID != "277" || products[1].ID != "278" {
		t.Fatalf("relative order not preserved: %q, %q", products[0].ID, products[1].ID)
	}
}

func TestReshapeMoney(t *testing.T) {
	money := ReshapeMoney(MoneyRecord{Value: 12.5, Currency: "EUR"})
	if money.Amount != "12.5" || money.CurrencyCode != "EUR" {
		t.Fatalf("unexpected money %+v", money)
	}
	money = ReshapeMoney(MoneyRecord{Value: 25, Currency: "USD"})
	if money.Amount != "25" {
		t.Fatalf("expected minimal formatting, got %q", money.Amount)
	}
}

func TestReshapeCartItemMultipliesUnitPrice(t *testing.T) {
	item := ReshapeCartItem(VariantCartItem{
		Quantity: 3,
		Variant: CartVariant{
			ID:        "var-1",
			Name:      "Long Sleeve Tee - M",
			UnitPrice: MoneyRecord{Value: 25, Currency: "USD"},
			Images:    []VariantImage{{URL: "https://cdn.example.com/tee.jpg", Width: 800, Height: 600}},
			Product:   &VariantProduct{ID: "277", Slug: "long-sleeve-tee", Name: "Long Sleeve Tee"},
		},
	})
	if item.Cost.TotalAmount.Amount != "75" {
		t.Fatalf("expected line total 75, got %q", item.Cost.TotalAmount.Amount)
	}
	if item.Merchandise.Product.Handle != "long-sleeve-tee" {
		t.Fatalf("unexpected product projection %+v", item.Merchandise.Product)
	}
	if item.Merchandise.Product.FeaturedImage.Width != 800 {
		t.Fatalf("expected image dimensions carried over, got %+v", item.Merchandise.Product.FeaturedImage)
	}
}

func TestReshapeCartItemMissingProductRef(t *testing.T) {
	item := ReshapeCartItem(VariantCartItem{
		Quantity: 1,
		Variant: CartVariant{
			ID:        "var-2",
			Name:      "Mystery Variant",
			UnitPrice: MoneyRecord{Value: 10, Currency: "USD"},
		},
	})
	p := item.Merchandise.Product
	if p.ID != "unknown" || p.Handle != "unknown" || p.Title != "unknown" {
		t.Fatalf("expected placeholder product reference, got %+v", p)
	}
	if item.Quantity != 1 || item.Cost.TotalAmount.Amount != "10" {
		t.Fatalf("expected structurally valid line, got %+v", item)
	}
}

func legacyCartFixture() CartRecord {
	return CartRecord{
		Items: []CartItemRecord{
			{
				Key:       "47794ed33f1f285251ee8de8530420b4",
				ProductID: 277,
				Quantity:  1,
				Name:      "Long Sleeve Tee",
				SKU:       "woo-long-sleeve-tee",
				Images:    []CartItemImage{{ID: 101, Src: "https://cdn.example.com/tee.jpg", Alt: ""}},
				Totals:    LineTotals{LineTotal: 2500, CurrencyCode: "USD", CurrencyMinorUnit: 2},
			},
		},
		Totals: CartTotals{TotalItems: 2500, TotalPrice: 2500, CurrencyCode: "USD", CurrencyMinorUnit: 2},
	}
}

func TestReshapeCart(t *testing.T) {
	cart := ReshapeCart(legacyCartFixture())

	if cart.TotalQuantity != 1 {
		t.Fatalf("expected total quantity 1, got %d", cart.TotalQuantity)
	}
	if cart.Cost.TotalAmount.Amount != "25" || cart.Cost.TotalAmount.CurrencyCode != "USD" {
		t.Fatalf("unexpected total %+v", cart.Cost.TotalAmount)
	}
	if cart.Cost.SubtotalAmount.Amount != "25" {
		t.Fatalf("unexpected subtotal %+v", cart.Cost.SubtotalAmount)
	}
	if cart.Currency != "USD" {
		t.Fatalf("unexpected currency %q", cart.Currency)
	}
	if len(cart.Lines) != 1 {
		t.Fatalf("expected one line, got %d", len(cart.Lines))
	}
	line := cart.Lines[0]
	if line.ID != "47794ed33f1f285251ee8de8530420b4" {
		t.Fatalf("unexpected line id %q", line.ID)
	}
	if line.Cost.TotalAmount.Amount != "25" {
		t.Fatalf("expected minor-unit division on line total, got %q", line.Cost.TotalAmount.Amount)
	}
	if line.Merchandise.ID != "277" || line.Merchandise.Product.Handle != "woo-long-sleeve-tee" {
		t.Fatalf("unexpected merchandise %+v", line.Merchandise)
	}
}

func TestReshapeCartRecomputesQuantity(t *testing.T) {
	raw := legacyCartFixture()
	raw.Items = append(raw.Items, CartItemRecord{
		Key:       "second",
		ProductID: 300,
		Quantity:  4,
		Name:      "Hoodie",
		Totals:    LineTotals{LineTotal: 10000, CurrencyCode: "USD", CurrencyMinorUnit: 2},
	})

	cart := ReshapeCart(raw)
	if cart.TotalQuantity != 5 {
		t.Fatalf("expected quantity recomputed from items (5), got %d", cart.TotalQuantity)
	}
}

func TestReshapeCartFractionalTotal(t *testing.T) {
	raw := legacyCartFixture()
	raw.Totals.TotalPrice = 2550
	cart := ReshapeCart(raw)
	if cart.Cost.TotalAmount.Amount != "25.5" {
		t.Fatalf("expected 25.5, got %q", cart.Cost.TotalAmount.Amount)
	}
}
