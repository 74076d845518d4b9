package models

// AllModels returns every model struct for auto-migration.
// Parent tables must appear before the tables that reference them.
func AllModels() []interface{} {
	return []interface{}{
		&User{},
		&Product{},
		&Supplier{},
		&Warehouse{},
		&Stock{},
		&Order{},
		&OrderItem{},
	}
}
