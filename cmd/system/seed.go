package system

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/melbooking/melbooking_backend/internal/service/booking"
	"github.com/melbooking/melbooking_backend/internal/service/catalog"
	"github.com/melbooking/melbooking_backend/internal/service/store"
	"github.com/melbooking/melbooking_backend/pkg/util/password"
)

// demoMenu is what a freshly seeded store offers.
var demoMenu = []catalog.AddServiceTypeRequest{
	{Name: "Relaxation Massage", Rate: 90},
	{Name: "Deep Tissue Massage", Rate: 110},
	{Name: "Remedial Massage", Rate: 120},
	{Name: "Hot Stones", Rate: 15, IsAddOn: true},
	{Name: "Aromatherapy", Rate: 10, IsAddOn: true},
}

var demoTherapists = []struct {
	Name string
	Rate float64
}{
	{"Anna", 40},
	{"Ben", 38},
	{"Chloe", 42},
}

func NewSeedCommand() *cobra.Command {
	var (
		storeName     string
		adminEmail    string
		adminPassword string
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create a demo store with an admin, a menu and therapists",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := readConfig(cmd)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
			defer cancel()

			client, err := openRepo(ctx, cfg)
			if err != nil {
				return err
			}
			defer client.Close()

			authz, cleanup, err := openAuthorization(cfg)
			if err != nil {
				return err
			}
			defer cleanup(context.Background())

			hasher := password.NewHasher(password.FromCentralConfig(cfg.Password))
			stores := store.New(client, authz, hasher, cfg.Booking.PublicBookingURL)

			st, err := stores.CreateStore(ctx, storeName)
			if err != nil {
				return fmt.Errorf("create store: %w", err)
			}
			fmt.Printf("Store %q created, booking link %s\n", st.Name, st.BookingURL)

			if adminEmail != "" {
				_, err := stores.CreateAdmin(ctx, store.CreateAdminRequest{Email: adminEmail, Password: adminPassword, StoreID: st.ID})
				if err != nil {
					return fmt.Errorf("create admin: %w", err)
				}
				fmt.Printf("Admin %s assigned to %s\n", adminEmail, st.Name)
			}

			hours := booking.NewHoursResolver(booking.NewRepoStore(client), booking.Hours{}, nil)
			cat := catalog.New(client, hours)

			if _, err := cat.SetStoreHours(ctx, st.ID, "10:00 AM", "08:00 PM"); err != nil {
				return fmt.Errorf("set store hours: %w", err)
			}
			for _, m := range demoMenu {
				if _, err := cat.AddServiceType(ctx, st.ID, m); err != nil {
					return fmt.Errorf("add service type %q: %w", m.Name, err)
				}
			}
			for _, t := range demoTherapists {
				if _, err := cat.AddTherapist(ctx, st.ID, t.Name, t.Rate); err != nil && !errors.Is(err, catalog.ErrTherapistExists) {
					return fmt.Errorf("add therapist %q: %w", t.Name, err)
				}
			}

			fmt.Println("Seed complete.")
			return nil
		},
	}

	cmd.Flags().StringVar(&storeName, "store-name", "Melbourne Demo Spa", "Name of the demo store")
	cmd.Flags().StringVar(&adminEmail, "admin-email", "", "Create a store admin with this email")
	cmd.Flags().StringVar(&adminPassword, "admin-password", "", "Password for --admin-email")

	return cmd
}
