// Command timeclock is a small terminal client for the time-tracking API.
// It keeps a local cache so clocking in and out keeps working when the
// server is unreachable.
//
// Usage:
//
//	timeclock login <name> <password>
//	timeclock status
//	timeclock clock <lat> <lng>
//	timeclock overtime <hours>
//	timeclock ask <question...>
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/pecc/timetracking/internal/assist"
	"github.com/pecc/timetracking/internal/client/gateway"
	"github.com/pecc/timetracking/internal/client/localcache"
	"github.com/pecc/timetracking/internal/client/remote"
	"github.com/pecc/timetracking/internal/client/session"
	"github.com/pecc/timetracking/internal/core/domain"
	"github.com/pecc/timetracking/internal/core/ports"
	"github.com/pecc/timetracking/internal/pkg/config"
	"github.com/pecc/timetracking/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  true,
		Service: "timeclock",
	})

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	ctx := context.Background()

	cache, err := localcache.Open(cfg.Client.CachePath)
	if err != nil {
		log.Fatal().Err(err).Msg("local cache unavailable")
	}
	defer func() { _ = cache.Close() }()

	api := remote.NewClient(cfg.Client.APIBaseURL, cfg.Client.RequestTimeout, log)
	gw := gateway.New(api, cache, log)
	gw.OnStateChange(func(online bool) {
		if !online {
			fmt.Fprintln(os.Stderr, "server unreachable, working from local cache")
		}
	})

	var geocoder ports.Geocoder
	var assistant ports.Assistant
	if cfg.Client.GeminiAPIKey != "" {
		gemini, err := assist.NewGemini(ctx, cfg.Client.GeminiAPIKey, log)
		if err != nil {
			log.Warn().Err(err).Msg("assistant unavailable")
		} else {
			geocoder = gemini
			assistant = gemini
		}
	}

	store := session.New(gw, geocoder, assistant, log)

	if err := run(ctx, store, os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, store *session.Store, cmd string, args []string) error {
	if cmd == "login" {
		if len(args) != 2 {
			return fmt.Errorf("usage: timeclock login <name> <password>")
		}
		user, err := store.Login(ctx, args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Printf("logged in as %s (%s)\n", user.Name, user.Role)
		if user.ForcePasswordChange {
			fmt.Println("a password change is required before using the app")
		}
		fmt.Println("export TIMECLOCK_USER and TIMECLOCK_PASSWORD to run further commands")
		return nil
	}

	// Every other command authenticates from the environment, since each
	// invocation is a fresh process.
	name, password := os.Getenv("TIMECLOCK_USER"), os.Getenv("TIMECLOCK_PASSWORD")
	if name == "" {
		return fmt.Errorf("TIMECLOCK_USER and TIMECLOCK_PASSWORD must be set")
	}
	if _, err := store.Login(ctx, name, password); err != nil {
		return err
	}

	switch cmd {
	case "status":
		return printStatus(store)

	case "clock":
		if len(args) != 2 {
			return fmt.Errorf("usage: timeclock clock <lat> <lng>")
		}
		lat, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("invalid latitude %q", args[0])
		}
		lng, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("invalid longitude %q", args[1])
		}
		return toggleClock(ctx, store, lat, lng)

	case "overtime":
		if len(args) != 1 {
			return fmt.Errorf("usage: timeclock overtime <hours>")
		}
		hours, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("invalid hours %q", args[0])
		}
		entry, err := store.AddOvertime(ctx, hours)
		if err != nil {
			return err
		}
		fmt.Printf("overtime now %.2f hours on entry %d\n", entry.OvertimeHours, entry.ID)
		return nil

	case "ask":
		if len(args) == 0 {
			return fmt.Errorf("usage: timeclock ask <question>")
		}
		answer, err := store.Ask(ctx, strings.Join(args, " "))
		if err != nil {
			return err
		}
		fmt.Println(answer)
		return nil

	default:
		usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

// toggleClock opens an entry when none is open, closes it otherwise.
func toggleClock(ctx context.Context, store *session.Store, lat, lng float64) error {
	snap := store.Snapshot()
	if snap.CurrentUser == nil {
		return domain.ErrNotAuthenticated
	}

	if _, open := domain.OpenEntry(snap.TimeEntries, snap.CurrentUser.ID); open {
		entry, err := store.ClockOut(ctx, lat, lng)
		if err != nil {
			return err
		}
		if hours, ok := entry.Duration(); ok {
			fmt.Printf("clocked out after %.2f hours\n", hours)
		}
		return nil
	}

	entry, err := store.ClockIn(ctx, lat, lng)
	if err != nil {
		return err
	}
	fmt.Printf("clocked in at %s (entry %d)\n", entry.ClockInLocation.Description, entry.ID)
	return nil
}

func printStatus(store *session.Store) error {
	snap := store.Snapshot()
	if snap.CurrentUser == nil {
		fmt.Println("not logged in")
		return nil
	}

	fmt.Printf("user: %s (%s)\n", snap.CurrentUser.Name, snap.CurrentUser.Role)
	if entry, open := domain.OpenEntry(snap.TimeEntries, snap.CurrentUser.ID); open {
		fmt.Printf("clocked in since %s at %s\n",
			entry.ClockIn.Local().Format("15:04"), entry.ClockInLocation.Description)
	} else {
		fmt.Println("clocked out")
	}
	mine := make([]domain.TimeEntry, 0, len(snap.TimeEntries))
	for _, e := range snap.TimeEntries {
		if e.UserID == snap.CurrentUser.ID {
			mine = append(mine, e)
		}
	}
	fmt.Printf("total overtime: %.2f hours\n", domain.TotalOvertime(mine))
	return nil
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: timeclock <command>

commands:
  login <name> <password>   authenticate and load data
  status                    show the current clock state
  clock <lat> <lng>         clock in, or out when already clocked in
  overtime <hours>          add overtime to today's entry
  ask <question>            ask the assistant about the visible data`)
}
