package domain

// Severity is the flood-risk tier of a run. Tiers are ordered:
// Normal < Watch < Critical.
type Severity int

const (
	Normal Severity = iota
	Watch
	Critical
)

func (s Severity) String() string {
	switch s {
	case Normal:
		return "normal"
	case Watch:
		return "watch"
	case Critical:
		return "critical"
	default:
		return "unknown"
	}
}

// Emoji is the colored square that leads the report's first line.
func (s Severity) Emoji() string {
	switch s {
	case Critical:
		return "🟥"
	case Watch:
		return "🟨"
	default:
		return "🟩"
	}
}

// Title is the tier's headline, rendered after the emoji.
func (s Severity) Title() string {
	switch s {
	case Critical:
		return "‼️ ประกาศเตือนภัยระดับสูงสุด ‼️"
	case Watch:
		return "‼️ ประกาศเฝ้าระวัง ‼️"
	default:
		return "สถานะปกติ"
	}
}

// Recommendation is the fixed advice block that closes the report.
func (s Severity) Recommendation() string {
	switch s {
	case Critical:
		return "คำแนะนำ:\n" +
			"1. เตรียมพร้อมอพยพหากอยู่ในพื้นที่เสี่ยง\n" +
			"2. ขนย้ายทรัพย์สินขึ้นที่สูงโดยด่วน\n" +
			"3. งดใช้เส้นทางสัญจรริมแม่น้ำ"
	case Watch:
		return "คำแนะนำ:\n" +
			"1. บ้านเรือนริมตลิ่งนอกคันกั้นน้ำ ให้เริ่มขนของขึ้นที่สูง\n" +
			"2. ติดตามสถานการณ์อย่างใกล้ชิด"
	default:
		return "สถานการณ์น้ำยังปกติ ใช้ชีวิตได้ตามปกติครับ"
	}
}

// MarshalText encodes the tier by name so published reports stay readable.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
