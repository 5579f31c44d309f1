// Package order turns a submitted order form into the text message sent to the shop.
package order

import (
	"errors"
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"

	"shopfront/internal/app/dto"
)

const (
	selectionPrefix = "service"
	// MaxQuantity is the largest quantity accepted for a single selection.
	MaxQuantity = 100000
)

var (
	ErrMissingCustomer = errors.New("customer name, phone and address are required")
	ErrNoItems         = errors.New("no selected item matches the catalog")
	ErrOrderTooLarge   = errors.New("order amount is out of range")
)

// SelectionKey identifies one variant of one service.
type SelectionKey struct {
	ServiceID uint
	VariantID uint
}

// FieldName is the form field carrying the quantity for this key.
func (k SelectionKey) FieldName() string {
	return selectionPrefix + "_" + strconv.FormatUint(uint64(k.ServiceID), 10) +
		"_" + strconv.FormatUint(uint64(k.VariantID), 10)
}

// Selections maps a service/variant pair to the requested quantity.
type Selections map[SelectionKey]int

// ParseSelections collects every service_<sid>_<vid> field with a quantity in 1..MaxQuantity.
// Malformed keys and quantities are skipped.
func ParseSelections(form url.Values) Selections {
	selections := make(Selections)
	for key, values := range form {
		parts := strings.Split(key, "_")
		if len(parts) != 3 || parts[0] != selectionPrefix || len(values) == 0 {
			continue
		}
		serviceID, err := strconv.ParseUint(parts[1], 10, 32)
		if err != nil {
			continue
		}
		variantID, err := strconv.ParseUint(parts[2], 10, 32)
		if err != nil {
			continue
		}
		qty, err := strconv.Atoi(strings.TrimSpace(values[0]))
		if err != nil || qty <= 0 || qty > MaxQuantity {
			continue
		}
		selections[SelectionKey{ServiceID: uint(serviceID), VariantID: uint(variantID)}] = qty
	}
	return selections
}

type Customer struct {
	Name        string
	Phone       string
	Address     string
	PaymentMode string
}

// Normalize trims every field and checks the mandatory ones.
func (c Customer) Normalize() (Customer, error) {
	c.Name = strings.TrimSpace(c.Name)
	c.Phone = strings.TrimSpace(c.Phone)
	c.Address = strings.TrimSpace(c.Address)
	c.PaymentMode = strings.TrimSpace(c.PaymentMode)
	if c.Name == "" || c.Phone == "" || c.Address == "" {
		return c, ErrMissingCustomer
	}
	return c, nil
}

type LineItem struct {
	ServiceID   uint
	VariantID   uint
	Name        string
	Variant     string
	Quantity    int
	Price       int
	Unit        string
	Subtotal    int
	Category    string
	Subcategory string
}

// CategoryGroup holds the line items of one category in order of appearance.
type CategoryGroup struct {
	Category string
	Items    []LineItem
}

type Order struct {
	Customer Customer
	Items    []LineItem
	Groups   []CategoryGroup
	Subtotal int
	Total    int
	PlacedAt time.Time
}

// Resolve walks the snapshot in storage order and builds a line item for every selected pair.
// Pairs missing from the snapshot are ignored. Availability flags are not consulted.
func Resolve(snapshot *dto.CatalogSnapshot, selections Selections) ([]LineItem, error) {
	var items []LineItem
	if snapshot == nil || len(selections) == 0 {
		return items, nil
	}
	for _, cat := range snapshot.Categories {
		for _, sub := range cat.Subcategories {
			for _, svc := range sub.Services {
				for _, v := range svc.Variants {
					qty, ok := selections[SelectionKey{ServiceID: svc.ID, VariantID: v.ID}]
					if !ok {
						continue
					}
					subtotal, ok := mulAmount(qty, v.Price)
					if !ok {
						return nil, ErrOrderTooLarge
					}
					items = append(items, LineItem{
						ServiceID:   svc.ID,
						VariantID:   v.ID,
						Name:        svc.Name,
						Variant:     v.Name,
						Quantity:    qty,
						Price:       v.Price,
						Unit:        v.Unit,
						Subtotal:    subtotal,
						Category:    cat.Name,
						Subcategory: sub.Name,
					})
				}
			}
		}
	}
	return items, nil
}

// mulAmount multiplies two non-negative amounts, reporting false on overflow.
func mulAmount(a, b int) (int, bool) {
	if a < 0 || b < 0 {
		return 0, false
	}
	if a != 0 && b > math.MaxInt/a {
		return 0, false
	}
	return a * b, true
}

func addAmount(a, b int) (int, bool) {
	if a < 0 || b < 0 || a > math.MaxInt-b {
		return 0, false
	}
	return a + b, true
}

// GroupByCategory keeps first-appearance order of categories.
func GroupByCategory(items []LineItem) []CategoryGroup {
	var groups []CategoryGroup
	index := make(map[string]int)
	for _, item := range items {
		i, ok := index[item.Category]
		if !ok {
			i = len(groups)
			index[item.Category] = i
			groups = append(groups, CategoryGroup{Category: item.Category})
		}
		groups[i].Items = append(groups[i].Items, item)
	}
	return groups
}
