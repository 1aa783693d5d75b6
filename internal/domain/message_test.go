package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var (
	testZone = time.FixedZone("ICT", 7*60*60)
	testTime = time.Date(2025, time.October, 1, 2, 30, 0, 0, time.UTC) // 09:30 ICT
)

func TestComposeMessage_Normal(t *testing.T) {
	a := Classify(9.03, 1000)

	got := ComposeMessage(&a, testTime, testZone)

	want := "🟩 สถานะปกติ\n" +
		"รายงานสถานการณ์น้ำเจ้าพระยา อ.อินทร์บุรี\n" +
		"ประจำวันที่: 01/10/2025 09:30 น.\n" +
		"\n" +
		"• ระดับน้ำ (อินทร์บุรี): 9.03 ม.รทก.\n" +
		"  (ต่ำกว่าตลิ่งประมาณ 3.97 ม.)\n" +
		"• เขื่อนเจ้าพระยา (ข้อมูลอ้างอิง): 1,000 ลบ.ม./วินาที\n" +
		"\n" +
		"สถานการณ์น้ำยังปกติ ใช้ชีวิตได้ตามปกติครับ"
	assert.Equal(t, want, got)
}

func TestComposeMessage_Critical(t *testing.T) {
	a := Classify(12.5, 2650.4)

	got := ComposeMessage(&a, testTime, testZone)

	assert.Contains(t, got, "🟥 ‼️ ประกาศเตือนภัยระดับสูงสุด ‼️\n")
	assert.Contains(t, got, "• ระดับน้ำ (อินทร์บุรี): 12.50 ม.รทก.\n")
	assert.Contains(t, got, "(ต่ำกว่าตลิ่งประมาณ 0.50 ม.)")
	assert.Contains(t, got, "2,650 ลบ.ม./วินาที")
	assert.Contains(t, got, "3. งดใช้เส้นทางสัญจรริมแม่น้ำ")
}

func TestComposeMessage_Watch(t *testing.T) {
	a := Classify(11.2, 1000)

	got := ComposeMessage(&a, testTime, testZone)

	assert.Contains(t, got, "🟨 ‼️ ประกาศเฝ้าระวัง ‼️\n")
	assert.Contains(t, got, "2. ติดตามสถานการณ์อย่างใกล้ชิด")
}

func TestComposeMessage_UsesReportZone(t *testing.T) {
	a := Classify(9.03, 1000)
	late := time.Date(2025, time.December, 31, 20, 5, 0, 0, time.UTC)

	got := ComposeMessage(&a, late, testZone)

	assert.Contains(t, got, "ประจำวันที่: 01/01/2026 03:05 น.")
}

func TestComposeMessage_MissingLevel(t *testing.T) {
	assert.Equal(t, AcquisitionErrorMessage, ComposeMessage(nil, testTime, testZone))
}

func TestFormatDischarge(t *testing.T) {
	tests := []struct {
		rate float64
		want string
	}{
		{0, "0"},
		{999.4, "999"},
		{1000, "1,000"},
		{2450.5, "2,450"},
		{1234567, "1,234,567"},
		{1e20, "100,000,000,000,000,000,000"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatDischarge(tt.rate))
	}
}
