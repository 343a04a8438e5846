package cart

import "github.com/naman03malhotra/vercel-commerce/internal/domain"

// UpdateType selects how UpdateItem adjusts an existing line.
type UpdateType string

const (
	Increment UpdateType = "plus"
	Decrement UpdateType = "minus"
	Delete    UpdateType = "delete"
)

type ActionType string

const (
	AddItem    ActionType = "ADD_ITEM"
	UpdateItem ActionType = "UPDATE_ITEM"
)

// Action is a local cart mutation. AddItem needs the full product; UpdateItem
// only matches on the product id and works from the line's own data.
type Action struct {
	Type    ActionType
	Product domain.Product
	Update  UpdateType
}

// Reduce computes the next cart state from the current one and an action.
// It is pure and total: no I/O, no knowledge of the remote cart, and an
// unrecognized action returns the input unchanged. A nil current cart is
// the initial "absent" state and collapses to an empty cart first.
func Reduce(current *domain.Cart, action Action) domain.Cart {
	cart := emptyCart(domain.DefaultCurrency)
	if current != nil {
		cart = *current
	}

	switch action.Type {
	case AddItem:
		return reduceAdd(cart, action.Product)
	case UpdateItem:
		return reduceUpdate(cart, action.Product, action.Update)
	default:
		return cart
	}
}

func reduceAdd(cart domain.Cart, product domain.Product) domain.Cart {
	lines := make([]domain.CartItem, len(cart.Lines))
	copy(lines, cart.Lines)

	found := false
	for i, item := range lines {
		if item.Merchandise.ID == product.ID {
			lines[i] = adjustLine(item, item.Quantity+1)
			found = true
			break
		}
	}
	if !found {
		lines = append(lines, newLine(product))
	}
	return withTotals(cart, lines)
}

func reduceUpdate(cart domain.Cart, product domain.Product, update UpdateType) domain.Cart {
	lines := make([]domain.CartItem, 0, len(cart.Lines))
	for _, item := range cart.Lines {
		if item.Merchandise.ID != product.ID {
			lines = append(lines, item)
			continue
		}
		switch update {
		case Delete:
			// line dropped unconditionally
		case Increment:
			lines = append(lines, adjustLine(item, item.Quantity+1))
		case Decrement:
			if item.Quantity > 1 {
				lines = append(lines, adjustLine(item, item.Quantity-1))
			}
		default:
			lines = append(lines, item)
		}
	}

	if len(lines) == 0 {
		return emptyCart(cart.Currency)
	}
	return withTotals(cart, lines)
}

// adjustLine recomputes a line at a new quantity using the unit price locked
// into the line itself (total divided by prior quantity), never the catalog
// price. Whatever price the line was created at stays with it. A line that
// somehow arrived with a non-positive quantity has no unit price to derive,
// so it reprices at zero instead of producing NaN.
func adjustLine(item domain.CartItem, quantity int) domain.CartItem {
	unit := 0.0
	if item.Quantity > 0 {
		unit = item.Cost.TotalAmount.Float() / float64(item.Quantity)
	}
	item.Quantity = quantity
	item.Cost.TotalAmount.Amount = domain.FormatAmount(unit * float64(quantity))
	return item
}

func newLine(product domain.Product) domain.CartItem {
	return domain.CartItem{
		ID:       product.ID,
		Quantity: 1,
		Cost: domain.CartItemCost{
			TotalAmount: domain.Money{
				Amount:       domain.FormatAmount(product.Price.Float()),
				CurrencyCode: product.Price.CurrencyCode,
			},
		},
		Merchandise: domain.Merchandise{
			ID:              product.ID,
			Title:           product.Title,
			SelectedOptions: []domain.SelectedOption{},
			Product: domain.CartProduct{
				ID:            product.ID,
				Handle:        product.Handle,
				Title:         product.Title,
				FeaturedImage: product.FeaturedImage,
			},
		},
	}
}

// withTotals recomputes cart-level aggregates as a full sum over the lines,
// never patched incrementally. Currency follows the first remaining line.
func withTotals(cart domain.Cart, lines []domain.CartItem) domain.Cart {
	totalQuantity := 0
	total := 0.0
	for _, item := range lines {
		totalQuantity += item.Quantity
		total += item.Cost.TotalAmount.Float()
	}

	currency := domain.DefaultCurrency
	if len(lines) > 0 {
		currency = lines[0].Cost.TotalAmount.CurrencyCode
	}
	amount := domain.FormatAmount(total)

	cart.Lines = lines
	cart.TotalQuantity = totalQuantity
	cart.Currency = currency
	cart.Cost = domain.CartCost{
		SubtotalAmount: domain.Money{Amount: amount, CurrencyCode: currency},
		TotalAmount:    domain.Money{Amount: amount, CurrencyCode: currency},
	}
	return cart
}

// Empty returns a well-formed cart with no lines in the store currency.
func Empty() domain.Cart {
	return emptyCart(domain.DefaultCurrency)
}

func emptyCart(currency string) domain.Cart {
	if currency == "" {
		currency = domain.DefaultCurrency
	}
	zero := domain.Money{Amount: "0", CurrencyCode: currency}
	return domain.Cart{
		Lines:         []domain.CartItem{},
		TotalQuantity: 0,
		Currency:      currency,
		Cost:          domain.CartCost{SubtotalAmount: zero, TotalAmount: zero},
	}
}
