// Command probe checks the water-level listing page layout. It lists every
// table row with the value found at domain.LevelColumn and reports whether the
// station row parses, so the column constant can be verified against the live
// site before a deployment.
//
// Usage:
//
//	go run ./cmd/probe                          # live page
//	go run ./cmd/probe -file saved_wl.html      # saved copy
//	go run ./cmd/probe -station สิงห์บุรี
package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/couchcryptid/flood-alert-service/internal/adapter/thaiwater"
	"github.com/couchcryptid/flood-alert-service/internal/domain"
)

func main() {
	url := flag.String("url", "https://singburi.thaiwater.net/wl", "listing page URL")
	file := flag.String("file", "", "read markup from a saved file instead of -url")
	station := flag.String("station", "อินทร์บุรี", "station name to locate")
	timeout := flag.Duration("timeout", 30*time.Second, "request timeout")
	flag.Parse()

	os.Exit(run(os.Stdout, *url, *file, *station, *timeout))
}

func run(out io.Writer, url, file, station string, timeout time.Duration) int {
	markup, err := load(url, file, timeout)
	if err != nil {
		fmt.Fprintf(out, "FAIL load: %v\n", err)
		return 1
	}

	if err := listRows(out, markup, station); err != nil {
		fmt.Fprintf(out, "FAIL parse: %v\n", err)
		return 1
	}

	level, err := domain.ExtractLevel(markup, station)
	if err != nil {
		fmt.Fprintf(out, "FAIL extract %q: %v\n", station, err)
		return 1
	}
	fmt.Fprintf(out, "PASS %s level=%.2f (column %d)\n", station, level, domain.LevelColumn)
	return 0
}

func load(url, file string, timeout time.Duration) ([]byte, error) {
	if file != "" {
		return os.ReadFile(file)
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return thaiwater.NewClient(url, timeout, logger).FetchPage(ctx)
}

// listRows prints each leaf row's cells, marking the level column. The row a
// run would read is marked "*"; other rows mentioning the station get "~".
func listRows(out io.Writer, markup []byte, station string) error {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(markup))
	if err != nil {
		return err
	}

	rows := domain.LeafRows(doc)
	chosen := domain.FindStationRow(rows, station)

	rows.Each(func(i int, row *goquery.Selection) {
		var cells []string
		row.ChildrenFiltered("td").Each(func(j int, td *goquery.Selection) {
			text := domain.RowText(td)
			if j == domain.LevelColumn {
				text = "[" + text + "]"
			}
			cells = append(cells, text)
		})
		mark := " "
		switch {
		case chosen != nil && row.Get(0) == chosen.Get(0):
			mark = "*"
		case strings.Contains(domain.RowText(row), station):
			mark = "~"
		}
		header := domain.RowText(row.ChildrenFiltered("th"))
		fmt.Fprintf(out, "%s row %3d  th=%q  td=%s\n", mark, i, header, strings.Join(cells, " | "))
	})
	return nil
}
