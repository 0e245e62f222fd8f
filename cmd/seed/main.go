package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"tessera/internal/events"
	"tessera/internal/seats"
	"tessera/internal/shared/config"
	"tessera/internal/shared/database"
	"tessera/pkg/logger"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Seeds a demo event with a five-row seat layout so the reserve and
// checkout flows can be exercised locally.
func main() {
	appLogger := logger.GetDefault()

	if err := godotenv.Load(); err != nil {
		appLogger.Info("No .env file found, using system environment variables")
	}

	name := flag.String("name", "Midnight Orchestra", "event name")
	location := flag.String("location", "Grand Hall", "event location")
	date := flag.String("date", time.Now().AddDate(0, 1, 0).Format("2006-01-02"), "event date (YYYY-MM-DD)")
	startTime := flag.String("time", "20:00", "event start time (HH:MM)")
	seatsPerRow := flag.Int("seats-per-row", 10, "seats per row")
	flag.Parse()

	cfg := config.Load()
	db, err := database.InitDB(cfg)
	if err != nil {
		appLogger.Error("failed to connect", slog.Any("error", err))
		os.Exit(1)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	eventRepo := events.NewRepository(db.GetPostgreSQL())
	eventService := events.NewService(eventRepo)

	event, err := eventService.CreateEvent(ctx, events.CreateEventRequest{
		Name:        *name,
		Description: "Seeded demo event",
		Location:    *location,
		Date:        *date,
		Time:        *startTime,
	})
	if err != nil {
		appLogger.Error("failed to create event", slog.Any("error", err))
		os.Exit(1)
	}

	seatRepo := seats.NewRepository(db.GetPostgreSQL())
	atomic := seats.NewAtomicRedisOperations(db.GetRedis())
	seatService := seats.NewService(seatRepo, atomic, cfg.Redis.SeatHoldTTL)

	created, err := seatService.ProvisionSeats(ctx, event.ID.String(), seats.ProvisionSeatsRequest{
		SeatsPerRow: *seatsPerRow,
		Rows: []seats.ProvisionRow{
			{Name: "A", Price: decimal.NewFromFloat(50.00)},
			{Name: "B", Price: decimal.NewFromFloat(40.50)},
			{Name: "C", Price: decimal.NewFromFloat(32.00)},
			{Name: "D", Price: decimal.NewFromFloat(25.00)},
			{Name: "E", Price: decimal.NewFromFloat(18.00)},
		},
	})
	if err != nil {
		appLogger.Error("failed to provision seats", slog.Any("error", err))
		os.Exit(1)
	}

	appLogger.Info("seeded event",
		slog.String("event_id", event.ID.String()),
		slog.String("name", event.Name),
		slog.String("starts", *date+" "+*startTime),
		slog.Int("seats", created),
	)
}
