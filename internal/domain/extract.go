package domain

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// LevelColumn is the index, among a station row's <td> cells, of the water
// level in meters MSL. Header <th> cells are not counted. The listing page has
// moved this field between revisions; run cmd/probe against the live page
// before changing it.
const LevelColumn = 1

// ExtractLevel locates the row for station in the listing page markup and
// parses its water level.
//
// Candidate rows are the rows whose rendered text contains station, whichever
// element (header cell, data cell, or link) carries the name. Rows that contain
// nested rows are skipped so an enclosing layout table never matches. See
// FindStationRow for how one candidate is chosen; ErrStationNotFound is
// returned only after every row has been checked.
func ExtractLevel(markup []byte, station string) (float64, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(markup))
	if err != nil {
		return 0, fmt.Errorf("parse markup: %w", err)
	}

	rows := LeafRows(doc)
	if rows.Length() == 0 {
		return 0, ErrNoRows
	}

	row := FindStationRow(rows, station)
	if row == nil {
		return 0, fmt.Errorf("%w: %q in %d rows", ErrStationNotFound, station, rows.Length())
	}

	cells := row.ChildrenFiltered("td")
	if cells.Length() <= LevelColumn {
		return 0, fmt.Errorf("%w: row has %d cells, level expected at index %d",
			ErrMalformedValue, cells.Length(), LevelColumn)
	}
	return parseLevel(cells.Eq(LevelColumn).Text())
}

// LeafRows returns the document's <tr> elements that contain no nested <tr>.
func LeafRows(doc *goquery.Document) *goquery.Selection {
	return doc.Find("tr").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return s.Find("tr").Length() == 0
	})
}

// FindStationRow picks the row for station among rows, or returns nil.
//
// A row whose leading cell or link text is exactly the station name wins over
// rows that merely mention it, since neighbouring gauges name the district
// (which shares the station's name) in their location cell. Without an exact
// row, the first row whose text contains the name is used.
func FindStationRow(rows *goquery.Selection, station string) *goquery.Selection {
	var first, exact *goquery.Selection
	rows.EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if !strings.Contains(RowText(s), station) {
			return true
		}
		if first == nil {
			first = s
		}
		if namedBy(s, station) {
			exact = s
			return false
		}
		return true
	})
	if exact != nil {
		return exact
	}
	return first
}

// namedBy reports whether the row's first cell or one of its links reads
// exactly station.
func namedBy(row *goquery.Selection, station string) bool {
	if RowText(row.ChildrenFiltered("th, td").First()) == station {
		return true
	}
	named := false
	row.Find("a").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		named = RowText(a) == station
		return !named
	})
	return named
}

// parseLevel parses a level cell. Levels are small magnitudes, so a thousands
// separator means the column has shifted and the value is rejected rather than
// stripped.
func parseLevel(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, fmt.Errorf("%w: empty cell", ErrMalformedValue)
	}
	if strings.Contains(s, ",") {
		return 0, fmt.Errorf("%w: unexpected separator in %q", ErrMalformedValue, s)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %q", ErrMalformedValue, s)
	}
	return v, nil
}

// RowText returns the selection's rendered text with runs of whitespace
// collapsed.
func RowText(s *goquery.Selection) string {
	return strings.Join(strings.Fields(s.Text()), " ")
}
