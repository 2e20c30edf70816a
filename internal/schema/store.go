package schema

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

const (
	StoresTable = "stores"
	AdminsTable = "admins"
)

// StoresColumns: one row per tenant.
var StoresColumns = []*schema.Column{
	idColumn(),
	stringColumn("store_name"),
	uniqueStringColumn("store_slug"),
	{Name: "status", Type: field.TypeString, Default: "active"},
	createdAtColumn(),
}

var Stores = &schema.Table{
	Name:       StoresTable,
	Columns:    StoresColumns,
	PrimaryKey: []*schema.Column{StoresColumns[0]},
}

// AdminsColumns: store console accounts. Each admin owns one store.
var AdminsColumns = []*schema.Column{
	idColumn(),
	uniqueStringColumn("email"),
	stringColumn("hashed_password"),
	storeIDColumn(),
	{Name: "role", Type: field.TypeString, Default: "owner"},
	createdAtColumn(),
}

var Admins = &schema.Table{
	Name:        AdminsTable,
	Columns:     AdminsColumns,
	PrimaryKey:  []*schema.Column{AdminsColumns[0]},
	ForeignKeys: []*schema.ForeignKey{storeForeignKey(AdminsTable, AdminsColumns[3])},
	Indexes:     []*schema.Index{storeIndex(AdminsTable, AdminsColumns[3])},
}
