package main

import (
	"conference-lab/domain/conference"
	"conference-lab/internal"
	"conference-lab/repositories"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/gookit/color"
	"github.com/joho/godotenv"
	"github.com/olekukonko/tablewriter"
)

func main() {
	// 1. Load config
	_ = godotenv.Load()
	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		log.Fatalf("Config error: %v", err)
	}

	sessionID := flag.String("history", "", "Dump the occupancy history of one session instead of the listing")
	flag.Parse()

	// 2. Open Badger in Read-Only mode
	// Note: BypassLockGuard allows opening if another process (the coordinator) holds the lock
	opts := badger.DefaultOptions(config.BadgerFilepath).
		WithReadOnly(true).
		WithBypassLockGuard(true).
		WithLoggingLevel(badger.WARNING)

	db, err := badger.Open(opts)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	repository := repositories.NewConferenceRepository(db, slog.Default())

	if *sessionID != "" {
		printHistory(repository, *sessionID)
		return
	}
	printSessions(repository)
}

func printSessions(repository *repositories.ConferenceRepository) {
	sessions, err := repository.ListSessions()
	if err != nil {
		log.Fatalf("Failed to list sessions: %v", err)
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Session", "Room", "Host", "Participant", "Batch", "Status", "Created"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	for _, session := range sessions {
		table.Append([]string{
			shorten(session.ID),
			session.RoomID,
			session.HostID,
			session.ParticipantID,
			fmt.Sprintf("%d", session.BatchID),
			colorStatus(session.Status),
			session.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	table.Render()
}

func printHistory(repository *repositories.ConferenceRepository, sessionID string) {
	entries, err := repository.ListOccupancies(sessionID)
	if err != nil {
		log.Fatalf("Failed to list occupancies: %v", err)
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Entry", "Side", "Connection", "Joined", "Left"})
	table.SetBorder(false)
	table.SetHeaderLine(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)

	for _, entry := range entries {
		left := color.Yellow.Sprint("open")
		if entry.LeftAt != nil {
			left = entry.LeftAt.Format("15:04:05")
		}
		table.Append([]string{
			shorten(entry.ID),
			string(entry.Side()),
			entry.ConnectionID,
			entry.JoinedAt.Format("15:04:05"),
			left,
		})
	}
	table.Render()
}

func colorStatus(status conference.Status) string {
	switch status {
	case conference.StatusOnGoing:
		return color.Green.Sprint(string(status))
	case conference.StatusClosed:
		return color.Red.Sprint(string(status))
	default:
		return string(status)
	}
}

func shorten(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
