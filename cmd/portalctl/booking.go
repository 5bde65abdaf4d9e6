package main

import (
	"context"

	"booking-portal/internal/module/booking/models/entity"
	"booking-portal/internal/module/booking/models/request"
	"booking-portal/internal/module/booking/usecases"

	"github.com/spf13/cobra"
)

type usecaseLoader func(ctx context.Context) (usecases.Usecase, error)

func newAvailabilityCmd(load usecaseLoader) *cobra.Command {
	var req request.Availability

	cmd := &cobra.Command{
		Use:   "availability",
		Short: "Show free and booked rooms for a date and time range",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, err := load(cmd.Context())
			if err != nil {
				return err
			}

			resp, err := uc.CheckAvailability(cmd.Context(), &req)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}

	cmd.Flags().StringVar(&req.Date, "date", "", "date, YYYY-MM-DD")
	cmd.Flags().StringVar(&req.StartTime, "start", "", "start time, HH:MM")
	cmd.Flags().StringVar(&req.EndTime, "end", "", "end time, HH:MM")
	cmd.Flags().StringVar(&req.TimeSlot, "slot", "", `time slot, "HH:MM - HH:MM"`)
	_ = cmd.MarkFlagRequired("date")
	return cmd
}

func newSetStatusCmd(load usecaseLoader) *cobra.Command {
	return &cobra.Command{
		Use:       "set-status <recordId> <approve|cancel>",
		Short:     "Approve or cancel a booking",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{string(entity.ActionApprove), string(entity.ActionCancel)},
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, err := load(cmd.Context())
			if err != nil {
				return err
			}

			resp, err := uc.TransitionStatus(cmd.Context(), &request.UpdateStatus{
				RecordID: args[0],
				Action:   entity.Action(args[1]),
			})
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}
}
