package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/diwise/smartbox-telemetry/internal/pkg/infrastructure/logging"
	"github.com/diwise/smartbox-telemetry/pkg/client"
	"github.com/diwise/smartbox-telemetry/pkg/types"
)

const serviceName string = "smartbox-feed"

func main() {
	serviceURL := flag.String("url", envOrDefault("SMARTBOX_URL", "http://localhost:8080"), "base url of the telemetry service")
	boxID := flag.String("box", "SMARTBOX-001", "box to follow")
	limit := flag.Int("limit", client.DefaultLimit, "number of readings to show")
	interval := flag.Duration("interval", client.DefaultInterval, "polling interval")
	flag.Parse()

	ctx, logger := logging.NewLogger(context.Background(), serviceName, "")

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	c := client.NewSmartBoxClient(*serviceURL, *interval)

	feed := client.NewFeed(c, *boxID,
		client.WithLimit(*limit),
		client.WithInterval(*interval),
		client.OnUpdate(func(s client.Snapshot) {
			render(os.Stdout, s, time.Now(), 3*(*interval))
		}),
	)

	if err := feed.Run(ctx); err != nil {
		logger.Error().Err(err).Msg("live feed failed")
		os.Exit(1)
	}
}

func render(w io.Writer, s client.Snapshot, now time.Time, staleAfter time.Duration) {
	fmt.Fprintf(w, "\n%s  %s\n", s.BoxID, now.Format(time.TimeOnly))

	if s.Error != "" {
		fmt.Fprintf(w, "! unable to refresh: %s\n", s.Error)
	}
	if !s.LastSuccess.IsZero() && s.Stale(now, staleAfter) {
		fmt.Fprintf(w, "! data is stale, last updated %s\n", s.LastSuccess.Format(time.TimeOnly))
	}

	if len(s.Readings) == 0 {
		fmt.Fprintln(w, "no data yet")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SEQ\tTIME\tTEMP (°C)\tHUMIDITY (%)\tPOSITION\tSTATUS")
	for _, r := range s.Readings {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			r.Seq, r.Timestamp.Local().Format(time.TimeOnly), value(r.Temperature), value(r.Humidity), position(r), r.Verdict)
	}
	tw.Flush()
}

func value(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.1f", *v)
}

func position(r types.Reading) string {
	if r.Location == nil {
		return "-"
	}
	return fmt.Sprintf("%.4f,%.4f", r.Location.Latitude, r.Location.Longitude)
}

func envOrDefault(name, def string) string {
	if v, ok := os.LookupEnv(name); ok && v != "" {
		return v
	}
	return def
}
