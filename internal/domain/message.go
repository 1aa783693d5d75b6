package domain

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// AcquisitionErrorMessage is broadcast instead of a report when the water level
// could not be read.
const AcquisitionErrorMessage = "เกิดข้อผิดพลาด: ไม่สามารถดึงข้อมูลระดับน้ำอินทร์บุรีได้ กรุณาตรวจสอบเว็บไซต์ singburi.thaiwater.net หรือตรวจสอบ Log การทำงานล่าสุด"

// ReportTimezone is the civil time zone of the monitored river section.
const ReportTimezone = "Asia/Bangkok"

const (
	reportHeader     = "รายงานสถานการณ์น้ำเจ้าพระยา อ.อินทร์บุรี"
	reportDateLayout = "02/01/2006 15:04"
)

// ComposeMessage renders the broadcast text for an assessment. A nil assessment
// means the water level was not obtained and yields AcquisitionErrorMessage.
// The timestamp is shown in loc, which should be the ReportTimezone location.
func ComposeMessage(a *RiskAssessment, at time.Time, loc *time.Location) string {
	if a == nil {
		return AcquisitionErrorMessage
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", a.Tier.Emoji(), a.Tier.Title())
	b.WriteString(reportHeader + "\n")
	fmt.Fprintf(&b, "ประจำวันที่: %s น.\n\n", at.In(loc).Format(reportDateLayout))
	fmt.Fprintf(&b, "• ระดับน้ำ (อินทร์บุรี): %.2f ม.รทก.\n", a.Level)
	fmt.Fprintf(&b, "  (ต่ำกว่าตลิ่งประมาณ %.2f ม.)\n", a.DistanceToBank)
	fmt.Fprintf(&b, "• เขื่อนเจ้าพระยา (ข้อมูลอ้างอิง): %s ลบ.ม./วินาที\n\n", formatDischarge(a.Discharge))
	b.WriteString(a.Tier.Recommendation())
	return b.String()
}

// formatDischarge renders a rate as a whole number with thousands separators.
// The rounded value stays a float so implausibly large rates cannot overflow.
func formatDischarge(rate float64) string {
	return humanize.Commaf(math.RoundToEven(rate))
}
