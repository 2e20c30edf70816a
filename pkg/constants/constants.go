package constants

const (
	AppName      = "melbooking"
	ConfigName   = "config"
	ConfigFormat = "yaml"
	EnvPrefix    = "MELBOOKING"

	// BookingTimeZone is the single zone every store books in.
	BookingTimeZone = "Australia/Melbourne"

	// Layouts of the persisted booking strings.
	DateLayout  = "02/01/2006"
	ClockLayout = "03:04 PM"
)
