package catalog

// Sample returns the fixed reference catalog used by the CLIs and tests when
// no schema file is given.
func Sample() *Schema {
	users := NewTable("users",
		&Column{Name: "id", Type: TypeInteger, PrimaryKey: true},
		&Column{Name: "name", Type: TypeText, NotNull: true},
		&Column{Name: "email", Type: TypeText, Unique: true},
		&Column{Name: "is_active", Type: TypeBoolean, NotNull: true},
	)

	products := NewTable("products",
		&Column{Name: "id", Type: TypeInteger, PrimaryKey: true},
		&Column{Name: "name", Type: TypeText, NotNull: true},
		&Column{Name: "price", Type: TypeInteger, NotNull: true},
	)

	orders := NewTable("orders",
		&Column{Name: "id", Type: TypeInteger, PrimaryKey: true},
		&Column{Name: "user_id", Type: TypeInteger, ForeignKey: &ForeignKey{Table: "users", Column: "id"}},
		&Column{Name: "product_id", Type: TypeInteger, ForeignKey: &ForeignKey{Table: "products", Column: "id"}},
		&Column{Name: "quantity", Type: TypeInteger, NotNull: true},
		&Column{Name: "total_amount", Type: TypeInteger, NotNull: true},
		&Column{Name: "status", Type: TypeText},
	)

	return NewSchema(users, products, orders)
}
