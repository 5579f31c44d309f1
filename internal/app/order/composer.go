package order

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"shopfront/internal/app/dto"
)

const (
	dateLayout      = "02-01-2006 03:04 PM"
	whatsAppBaseURL = "https://wa.me/"
)

type Settings struct {
	ShopName       string
	Contact        string
	Currency       string
	DefaultPayment string
	Location       *time.Location
}

type Composer struct {
	settings Settings
	now      func() time.Time
}

func NewComposer(s Settings) *Composer {
	if s.Location == nil {
		s.Location = time.Local
	}
	return &Composer{settings: s, now: time.Now}
}

// WithClock replaces the time source.
func (c *Composer) WithClock(now func() time.Time) *Composer {
	c.now = now
	return c
}

// CustomerFromForm reads the customer fields of the order form. The default payment mode
// applies only when the field is absent; a submitted empty value stays empty.
func (c *Composer) CustomerFromForm(form url.Values) Customer {
	customer := Customer{
		Name:        form.Get("name"),
		Phone:       form.Get("phone"),
		Address:     form.Get("address"),
		PaymentMode: c.settings.DefaultPayment,
	}
	if values, ok := form["payment_mode"]; ok && len(values) > 0 {
		customer.PaymentMode = values[0]
	}
	return customer
}

// Compose validates the customer and prices the selections against the snapshot.
// An order without customer details or without any resolved item is rejected, as is
// one whose amount does not fit in an int.
func (c *Composer) Compose(snapshot *dto.CatalogSnapshot, selections Selections, customer Customer) (*Order, error) {
	customer, err := customer.Normalize()
	if err != nil {
		return nil, err
	}

	items, err := Resolve(snapshot, selections)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrNoItems
	}

	subtotal := 0
	for _, item := range items {
		var ok bool
		if subtotal, ok = addAmount(subtotal, item.Subtotal); !ok {
			return nil, ErrOrderTooLarge
		}
	}

	return &Order{
		Customer: customer,
		Items:    items,
		Groups:   GroupByCategory(items),
		Subtotal: subtotal,
		Total:    subtotal,
		PlacedAt: c.now().In(c.settings.Location),
	}, nil
}

// Message renders the order as the chat text the shop receives.
func (c *Composer) Message(o *Order) string {
	cur := c.settings.Currency
	lines := []string{
		fmt.Sprintf("📌 *%s* 📌", c.settings.ShopName),
		fmt.Sprintf("📅 *Date*: %s", o.PlacedAt.Format(dateLayout)),
		"",
		"👤 *Customer Details*:",
		fmt.Sprintf("• *Name*: %s", o.Customer.Name),
		fmt.Sprintf("• *Phone*: %s", o.Customer.Phone),
		fmt.Sprintf("• *Address*: %s", o.Customer.Address),
		"",
		"🛒 *Ordered Items*:",
	}

	for _, group := range o.Groups {
		lines = append(lines, "\n*"+group.Category+"*")
		for _, item := range group.Items {
			lines = append(lines,
				fmt.Sprintf("➡️ %s (%s) - Qty: %d %s × %s%d = %s%d",
					item.Name, item.Variant, item.Quantity, item.Unit, cur, item.Price, cur, item.Subtotal),
				"",
			)
		}
		lines = append(lines, "")
	}

	lines = append(lines,
		"",
		"💵 *Payment Summary*:",
		fmt.Sprintf("• *Subtotal*: %s%d", cur, o.Subtotal),
		fmt.Sprintf("• *Total Amount*: %s%d", cur, o.Total),
		fmt.Sprintf("• *Payment Mode*: %s", o.Customer.PaymentMode),
		"",
		"🛑 *Please Share Your current location link for fast delivery* 🛑",
	)
	return strings.Join(lines, "\n")
}

// Target builds the chat link carrying the message for the configured contact.
func (c *Composer) Target(message string) string {
	return whatsAppBaseURL + c.settings.Contact + "?text=" + strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
}
