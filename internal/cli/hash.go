package cli

import (
	"errors"
	"fmt"
	"strings"

	"dcolors/internal/services/auth"

	"github.com/spf13/cobra"
)

func newHashPasswordCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hash-password <password>",
		Short: "Print a bcrypt hash for auth.admin_password_hash",
		Example: `  dcolorsctl hash-password 'correct horse battery staple'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			password := strings.TrimSpace(args[0])
			if password == "" {
				return errors.New("password must not be blank")
			}

			hash, err := auth.HashPassword(password)
			if err != nil {
				return fmt.Errorf("hash password: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), hash)
			return err
		},
	}

	return cmd
}
