package ordersvc

import (
	"context"
	"fmt"

	"github.com/corray333/cafe-order/internal/dal/interfaces/imenuitemrepo"
	"github.com/corray333/cafe-order/internal/service/models/menuitem"
	"github.com/corray333/cafe-order/internal/service/models/order"
	"github.com/corray333/cafe-order/internal/service/pricing"
)

// ValidationError reports a request that fails shape validation at the
// service boundary.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// validateAndPrice cross-checks every requested item against the catalog and
// builds priced line items with snapshotted names, prices and modifiers. Any
// failure aborts the whole validation; no partial order is ever produced.
func validateAndPrice(
	ctx context.Context,
	catalog imenuitemrepo.IMenuItemRepository,
	requested []RequestedItem,
) ([]order.LineItem, error) {
	lineItems := make([]order.LineItem, 0, len(requested))

	for _, req := range requested {
		item, err := catalog.GetByID(ctx, req.MenuItemID)
		if err != nil {
			return nil, err
		}

		if !item.IsAvailable {
			return nil, &menuitem.UnavailableError{MenuItemID: item.ID, Name: item.Name}
		}

		selected := make([]order.SelectedCustomization, 0, len(req.Customizations))
		chosen := make(map[string]bool, len(req.Customizations))
		for _, c := range req.Customizations {
			group, ok := item.Customization(c.Name)
			if !ok {
				return nil, &menuitem.InvalidCustomizationError{
					MenuItemID:    item.ID,
					Customization: c.Name,
				}
			}
			opt, ok := group.Option(c.Option)
			if !ok {
				return nil, &menuitem.InvalidOptionError{
					MenuItemID:    item.ID,
					Customization: c.Name,
					Option:        c.Option,
				}
			}

			chosen[group.Name] = true
			selected = append(selected, order.SelectedCustomization{
				Name:          group.Name,
				Option:        opt.Name,
				PriceModifier: opt.PriceModifier,
			})
		}

		for _, group := range item.Customizations {
			if group.Required && !chosen[group.Name] {
				return nil, &menuitem.MissingCustomizationError{
					MenuItemID:    item.ID,
					Customization: group.Name,
				}
			}
		}

		lineItems = append(lineItems, order.LineItem{
			MenuItemID:     item.ID,
			Name:           item.Name,
			UnitPrice:      item.Price,
			Quantity:       req.Quantity,
			Customizations: selected,
			Subtotal:       pricing.LineSubtotal(item.Price, selected, req.Quantity),
		})
	}

	return lineItems, nil
}
