package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/noah-isme/task-scheduler-api/internal/models"
	"github.com/noah-isme/task-scheduler-api/internal/service"
)

type tokenOptions struct {
	secret  string
	role    string
	subject string
	ttl     time.Duration
}

func newTokenCommand(newLogger func() *zap.Logger) *cobra.Command {
	opts := tokenOptions{}
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token for the API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			secret := opts.secret
			if secret == "" {
				secret = os.Getenv("JWT_SECRET")
			}
			if secret == "" {
				return fmt.Errorf("--secret or JWT_SECRET is required")
			}
			auth := service.NewAuthService(newLogger(), service.AuthConfig{AccessTokenSecret: secret, AccessTokenExpiry: opts.ttl})
			token, expiresAt, err := auth.IssueToken(opts.subject, models.UserRole(strings.ToUpper(opts.role)))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			fmt.Fprintf(cmd.ErrOrStderr(), "expires %s\n", expiresAt.Format(time.RFC3339))
			return nil
		},
	}
	cmd.Flags().StringVar(&opts.secret, "secret", "", "signing secret (defaults to $JWT_SECRET)")
	cmd.Flags().StringVar(&opts.role, "role", "admin", "admin or user")
	cmd.Flags().StringVar(&opts.subject, "subject", "scheduler-cli", "token subject")
	cmd.Flags().DurationVar(&opts.ttl, "ttl", time.Hour, "token lifetime")
	return cmd
}
