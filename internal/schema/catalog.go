package schema

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

const (
	StoreHoursTable     = "store_hours"
	ServiceTypesTable   = "service_types"
	TherapistsTable     = "therapists"
	TherapistTimesTable = "therapist_times"
)

// StoreHoursColumns keeps every saved pair; the most recent one applies.
// open and close are "03:04 PM" strings.
var StoreHoursColumns = []*schema.Column{
	idColumn(),
	storeIDColumn(),
	stringColumn("open"),
	stringColumn("close"),
	updatedAtColumn(),
}

var StoreHours = &schema.Table{
	Name:        StoreHoursTable,
	Columns:     StoreHoursColumns,
	PrimaryKey:  []*schema.Column{StoreHoursColumns[0]},
	ForeignKeys: []*schema.ForeignKey{storeForeignKey(StoreHoursTable, StoreHoursColumns[1])},
	Indexes: []*schema.Index{
		storeIndex(StoreHoursTable, StoreHoursColumns[1], StoreHoursColumns[4]),
	},
}

// ServiceTypesColumns: main services and add-ons share the table.
// rate is hourly for main services and flat for add-ons.
var ServiceTypesColumns = []*schema.Column{
	idColumn(),
	storeIDColumn(),
	stringColumn("name"),
	floatColumn("rate"),
	{Name: "is_addon", Type: field.TypeBool, Default: false},
	createdAtColumn(),
}

var ServiceTypes = &schema.Table{
	Name:        ServiceTypesTable,
	Columns:     ServiceTypesColumns,
	PrimaryKey:  []*schema.Column{ServiceTypesColumns[0]},
	ForeignKeys: []*schema.ForeignKey{storeForeignKey(ServiceTypesTable, ServiceTypesColumns[1])},
	Indexes:     []*schema.Index{storeIndex(ServiceTypesTable, ServiceTypesColumns[1])},
}

var TherapistsColumns = []*schema.Column{
	idColumn(),
	storeIDColumn(),
	stringColumn("name"),
	floatColumn("rate"),
	createdAtColumn(),
}

var Therapists = &schema.Table{
	Name:        TherapistsTable,
	Columns:     TherapistsColumns,
	PrimaryKey:  []*schema.Column{TherapistsColumns[0]},
	ForeignKeys: []*schema.ForeignKey{storeForeignKey(TherapistsTable, TherapistsColumns[1])},
	Indexes:     []*schema.Index{storeIndex(TherapistsTable, TherapistsColumns[1])},
}

// TherapistTimesColumns: working hours, one row per (store, therapist name).
var TherapistTimesColumns = []*schema.Column{
	idColumn(),
	storeIDColumn(),
	stringColumn("name"),
	stringColumn("start_time"),
	stringColumn("end_time"),
	updatedAtColumn(),
}

var TherapistTimes = &schema.Table{
	Name:        TherapistTimesTable,
	Columns:     TherapistTimesColumns,
	PrimaryKey:  []*schema.Column{TherapistTimesColumns[0]},
	ForeignKeys: []*schema.ForeignKey{storeForeignKey(TherapistTimesTable, TherapistTimesColumns[1])},
	Indexes: []*schema.Index{
		{
			Name:    "therapist_times_store_id_name",
			Unique:  true,
			Columns: []*schema.Column{TherapistTimesColumns[1], TherapistTimesColumns[2]},
		},
	},
}
