package menuitem

import (
	"time"

	"github.com/shopspring/decimal"
)

// MenuItem represents a catalog entry with its customization schema.
// The core treats a fetched MenuItem as an immutable snapshot for the
// duration of one order operation.
type MenuItem struct {
	ID             int64           `json:"id"`
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	Price          decimal.Decimal `json:"price"`
	Category       string          `json:"category"`
	IsAvailable    bool            `json:"isAvailable"`
	Customizations []Customization `json:"customizations"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// Customization is a named choice group on a menu item, e.g. "Size".
type Customization struct {
	Name     string   `json:"name"`
	Required bool     `json:"required"`
	Options  []Option `json:"options"`
}

// Option is a single choice within a customization, carrying a price modifier.
type Option struct {
	Name          string          `json:"name"`
	PriceModifier decimal.Decimal `json:"priceModifier"`
}

// Customization looks up a customization group by exact name match.
func (m *MenuItem) Customization(name string) (Customization, bool) {
	for _, c := range m.Customizations {
		if c.Name == name {
			return c, true
		}
	}

	return Customization{}, false
}

// Option looks up an option by exact name match.
func (c Customization) Option(name string) (Option, bool) {
	for _, o := range c.Options {
		if o.Name == name {
			return o, true
		}
	}

	return Option{}, false
}
