package schema

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

const (
	BookingsTable         = "bookings"
	ArchivedBookingsTable = "archived_bookings"
)

// bookingColumns builds the shared booking layout. date is "02/01/2006",
// start_time and end_time are "03:04 PM". (store_id, therapist, date,
// start_time) is not unique: two bookings may share a slot.
func bookingColumns() []*schema.Column {
	return []*schema.Column{
		idColumn(),
		storeIDColumn(),
		stringColumn("date"),
		stringColumn("start_time"),
		stringColumn("end_time"),
		stringColumn("customer_name"),
		stringColumn("phone"),
		stringColumn("therapist"),
		stringColumn("service_type"),
		{Name: "add_on", Type: field.TypeString, Default: ""},
		floatColumn("add_on_price"),
		createdAtColumn(),
	}
}

var BookingsColumns = bookingColumns()

var Bookings = &schema.Table{
	Name:        BookingsTable,
	Columns:     BookingsColumns,
	PrimaryKey:  []*schema.Column{BookingsColumns[0]},
	ForeignKeys: []*schema.ForeignKey{storeForeignKey(BookingsTable, BookingsColumns[1])},
	Indexes: []*schema.Index{
		storeIndex(BookingsTable, BookingsColumns[1], BookingsColumns[2]),
	},
}

// ArchivedBookingsColumns is append-only.
var ArchivedBookingsColumns = append(bookingColumns(),
	&schema.Column{Name: "archived_at", Type: field.TypeTime},
)

var ArchivedBookings = &schema.Table{
	Name:        ArchivedBookingsTable,
	Columns:     ArchivedBookingsColumns,
	PrimaryKey:  []*schema.Column{ArchivedBookingsColumns[0]},
	ForeignKeys: []*schema.ForeignKey{storeForeignKey(ArchivedBookingsTable, ArchivedBookingsColumns[1])},
	Indexes:     []*schema.Index{storeIndex(ArchivedBookingsTable, ArchivedBookingsColumns[1])},
}

// Tables is everything Migrate creates, parents first.
var Tables = []*schema.Table{
	Stores,
	Admins,
	StoreHours,
	ServiceTypes,
	Therapists,
	TherapistTimes,
	Bookings,
	ArchivedBookings,
}

func init() {
	for _, t := range Tables[1:] {
		for _, fk := range t.ForeignKeys {
			fk.RefTable = Stores
		}
	}
}
