package domain

import "time"

// SystemCategoryInvoicePayment is the name of the built-in category used for
// credit card invoice settlements. Resolved by flag+name among all categories.
const SystemCategoryInvoicePayment = "Invoice payment"

// Category labels transactions. System categories are seeded by migration and
// not user-editable.
type Category struct {
	ID        string
	Name      string
	IsSystem  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// FindSystemCategory returns the system category with the given name.
func FindSystemCategory(categories []*Category, name string) (*Category, error) {
	for _, c := range categories {
		if c.IsSystem && c.Name == name {
			return c, nil
		}
	}

	return nil, ErrSystemCategoryNotFound
}
