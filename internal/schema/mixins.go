package schema

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Column helpers shared by every table.

func idColumn() *schema.Column {
	return &schema.Column{Name: "id", Type: field.TypeUUID, Unique: true}
}

// storeIDColumn tags a row with its tenant.
func storeIDColumn() *schema.Column {
	return &schema.Column{Name: "store_id", Type: field.TypeUUID}
}

func createdAtColumn() *schema.Column {
	return &schema.Column{Name: "created_at", Type: field.TypeTime}
}

func updatedAtColumn() *schema.Column {
	return &schema.Column{Name: "updated_at", Type: field.TypeTime}
}

func stringColumn(name string) *schema.Column {
	return &schema.Column{Name: name, Type: field.TypeString}
}

func uniqueStringColumn(name string) *schema.Column {
	return &schema.Column{Name: name, Type: field.TypeString, Unique: true}
}

func floatColumn(name string) *schema.Column {
	return &schema.Column{Name: name, Type: field.TypeFloat64, Default: 0}
}

// storeForeignKey points table.store_id at stores.id.
func storeForeignKey(table string, col *schema.Column) *schema.ForeignKey {
	return &schema.ForeignKey{
		Symbol:     table + "_store_id_fkey",
		Columns:    []*schema.Column{col},
		RefColumns: []*schema.Column{StoresColumns[0]},
		OnDelete:   schema.Cascade,
	}
}

func storeIndex(table string, cols ...*schema.Column) *schema.Index {
	return &schema.Index{Name: table + "_store_id", Columns: cols}
}
