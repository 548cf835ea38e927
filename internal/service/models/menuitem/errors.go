package menuitem

import "fmt"

// NotFoundError reports a requested menu item that does not exist.
type NotFoundError struct {
	MenuItemID int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("menu item %d not found", e.MenuItemID)
}

// UnavailableError reports an item that exists but is not currently orderable.
type UnavailableError struct {
	MenuItemID int64
	Name       string
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("menu item %q is not available", e.Name)
}

// InvalidCustomizationError reports a selected customization that is not
// defined on the item.
type InvalidCustomizationError struct {
	MenuItemID    int64
	Customization string
}

func (e *InvalidCustomizationError) Error() string {
	return fmt.Sprintf("customization %q does not exist on menu item %d", e.Customization, e.MenuItemID)
}

// InvalidOptionError reports a selected option that is not defined under the
// named customization.
type InvalidOptionError struct {
	MenuItemID    int64
	Customization string
	Option        string
}

func (e *InvalidOptionError) Error() string {
	return fmt.Sprintf("option %q does not exist under customization %q on menu item %d",
		e.Option, e.Customization, e.MenuItemID)
}

// MissingCustomizationError reports a required customization the caller did
// not select.
type MissingCustomizationError struct {
	MenuItemID    int64
	Customization string
}

func (e *MissingCustomizationError) Error() string {
	return fmt.Sprintf("required customization %q is missing for menu item %d", e.Customization, e.MenuItemID)
}
