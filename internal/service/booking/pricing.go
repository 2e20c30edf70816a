package booking

import (
	"math"
	"time"

	"github.com/melbooking/melbooking_backend/internal/repo"
)

// AddOnTotal sums add-on rates. An add-on's rate is its flat price, so
// the total does not depend on the booking's duration.
func AddOnTotal(addOns []*repo.ServiceType) float64 {
	total := 0.0
	for _, a := range addOns {
		total += a.Rate
	}
	return total
}

// BasePrice is the hourly service rate prorated over duration.
func BasePrice(service *repo.ServiceType, duration time.Duration) float64 {
	if service == nil {
		return 0
	}
	return service.Rate * duration.Minutes() / 60
}

// Round2 rounds half away from zero to cents, for display.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ManualAddOnPrice prices add-on minutes entered in the admin console at
// the main service's hourly rate.
func ManualAddOnPrice(rate float64, minutes int) float64 {
	return Round2(rate / 60 * float64(minutes))
}
