package main

import (
	"fmt"

	"booking-portal/config"
	"booking-portal/internal/module/booking/repositories"
	"booking-portal/internal/pkg/database"

	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the bookings table for BOOKING_STORE=postgres",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			db := database.GetConnection(&cfg.Database)
			defer db.Close()

			if _, err := db.ExecContext(cmd.Context(), repositories.Schema); err != nil {
				return fmt.Errorf("apply schema: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), "schema applied")
			return err
		},
	}
}
