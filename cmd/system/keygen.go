package system

import (
	"fmt"

	"github.com/spf13/cobra"

	pasetotoken "github.com/melbooking/melbooking_backend/pkg/paseto"
)

func NewKeygenCommand() *cobra.Command {
	var mode string

	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Print fresh PASETO keys for authentication.paseto",
		RunE: func(cmd *cobra.Command, args []string) error {
			var keys pasetotoken.Keys
			switch pasetotoken.Mode(mode) {
			case pasetotoken.ModeLocal:
				keys = pasetotoken.NewLocalKeys()
			case pasetotoken.ModePublic:
				keys = pasetotoken.NewPublicKeys()
			default:
				return fmt.Errorf("unknown mode %q (local|public)", mode)
			}

			s := keys.Strings()
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "authentication:")
			fmt.Fprintln(out, "  paseto:")
			fmt.Fprintf(out, "    mode: %s\n", s.Mode)
			if s.SymmetricHex != "" {
				fmt.Fprintf(out, "    local_key_hex: %s\n", s.SymmetricHex)
			}
			if s.SecretHex != "" {
				fmt.Fprintf(out, "    secret_key_hex: %s\n", s.SecretHex)
				fmt.Fprintf(out, "    public_key_hex: %s\n", s.PublicHex)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&mode, "mode", string(pasetotoken.ModeLocal), "key kind: local or public")
	return cmd
}
