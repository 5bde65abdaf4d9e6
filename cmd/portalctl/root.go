package main

import (
	"context"
	"io"

	"booking-portal/config"
	bookingrepositories "booking-portal/internal/module/booking/repositories"
	bookingusecases "booking-portal/internal/module/booking/usecases"
	"booking-portal/internal/pkg/airtable"
	"booking-portal/internal/pkg/database"
	"booking-portal/internal/pkg/httpclient"
	"booking-portal/internal/pkg/lock"
	log_internal "booking-portal/internal/pkg/log"
	"booking-portal/internal/pkg/messagestream"
	"booking-portal/internal/pkg/redis"
	"booking-portal/internal/pkg/retry"

	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "portalctl",
		Short:         "Admin tasks for the rehearsal room booking portal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newHashPasswordCmd(readPassword),
		newAvailabilityCmd(loadBookingUsecase),
		newSetStatusCmd(loadBookingUsecase),
		newMigrateCmd(),
	)
	return root
}

// loadBookingUsecase builds the same booking usecase the server runs, with
// an in-process publisher since the CLI sends no notifications.
func loadBookingUsecase(ctx context.Context) (bookingusecases.Usecase, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := log_internal.Setup()
	cb := httpclient.InitCircuitBreaker(&cfg.HttpClient, cfg.HttpClient.Type)
	httpClient := httpclient.InitHttpClient(&cfg.HttpClient, cb)

	var repo bookingrepositories.Repositories
	switch cfg.BookingStore {
	case bookingrepositories.DriverPostgres:
		repo = bookingrepositories.NewPostgres(database.GetConnection(&cfg.Database), logger)
	default:
		locker := lock.NewRedsync(redis.SetupClient(&cfg.Redis), lock.DefaultOptions)
		repo = bookingrepositories.NewAirtable(airtable.New(httpClient, &cfg.Airtable), &cfg.Airtable, locker, logger)
	}

	publisher := gochannel.NewGoChannel(gochannel.Config{}, messagestream.NewZapLoggerAdapter(logger.Logger))
	return bookingusecases.New(repo, logger, publisher, cfg.Rooms, retry.FromConfig(&cfg.Retry)), nil
}

func printJSON(w io.Writer, v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = w.Write(append(out, '\n'))
	return err
}
