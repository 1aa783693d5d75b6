// Command preview renders the broadcast text for a given water level and dam
// discharge without fetching or sending anything. It uses the same domain
// functions as a real run, so the output matches what subscribers would see.
//
// Usage:
//
//	go run ./cmd/preview -level 12.5 -discharge 1000
//	go run ./cmd/preview -level 10 -discharge 2500 -at 2025-10-01T09:30:00+07:00
//	go run ./cmd/preview -missing
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"
	_ "time/tzdata"

	"github.com/couchcryptid/flood-alert-service/internal/domain"
	"github.com/jonboulle/clockwork"
)

func main() {
	if err := run(os.Stdout, os.Args[1:], clockwork.NewRealClock()); err != nil {
		log.Fatal(err)
	}
}

func run(out io.Writer, args []string, clock clockwork.Clock) error {
	fs := flag.NewFlagSet("preview", flag.ContinueOnError)
	level := fs.Float64("level", 9.03, "water level in meters MSL")
	dischargeRate := fs.Float64("discharge", domain.DefaultDischarge, "dam discharge in m³/s")
	missing := fs.Bool("missing", false, "render the acquisition-error message")
	at := fs.String("at", "", "report time in RFC 3339 (default now)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	loc, err := time.LoadLocation(domain.ReportTimezone)
	if err != nil {
		return fmt.Errorf("load %s: %w", domain.ReportTimezone, err)
	}

	ts := clock.Now()
	if *at != "" {
		ts, err = time.Parse(time.RFC3339, *at)
		if err != nil {
			return fmt.Errorf("parse -at: %w", err)
		}
	}

	var assessment *domain.RiskAssessment
	if !*missing {
		a := domain.Classify(*level, *dischargeRate)
		assessment = &a
		fmt.Fprintf(out, "tier=%s distance_to_bank=%.2f\n\n", a.Tier, a.DistanceToBank)
	}
	fmt.Fprintln(out, domain.ComposeMessage(assessment, ts, loc))
	return nil
}
