package pipeline_test

import (
	"fmt"
	"strings"
)

const testStation = "อินทร์บุรี"

// listingPage renders a listing page shaped like the provincial site: one
// table, a header row, then one row per gauge with the level in the second
// <td>.
func listingPage(rows ...string) []byte {
	var b strings.Builder
	b.WriteString(`<!DOCTYPE html><html><head><meta charset="utf-8"><title>ระดับน้ำ</title></head><body>`)
	b.WriteString(`<table class="table"><thead><tr><th>สถานี</th><th>ที่ตั้ง</th><th>ระดับน้ำ (ม.รทก.)</th><th>ตลิ่ง</th></tr></thead><tbody>`)
	for _, r := range rows {
		b.WriteString(r)
	}
	b.WriteString(`</tbody></table></body></html>`)
	return []byte(b.String())
}

func stationRow(name, level string) string {
	return fmt.Sprintf(`<tr><th>%s</th><td>ต.%s</td><td>%s</td><td>13.00</td></tr>`, name, name, level)
}

// inburiPage is a listing page with the Inburi gauge at level.
func inburiPage(level string) []byte {
	return listingPage(
		stationRow("สิงห์บุรี", "5.12"),
		stationRow(testStation, level),
		stationRow("พรหมบุรี", "6.40"),
	)
}
