package printview

import (
	"fmt"
	"time"
)

// พ.ศ. = ค.ศ. + 543
const buddhistEraOffset = 543

var thaiMonths = [...]string{
	"มกราคม", "กุมภาพันธ์", "มีนาคม", "เมษายน", "พฤษภาคม", "มิถุนายน",
	"กรกฎาคม", "สิงหาคม", "กันยายน", "ตุลาคม", "พฤศจิกายน", "ธันวาคม",
}

// FormatThaiLongDate 2025-03-07 → "7 มีนาคม 2568"
// 无法解析的输入原样返回
func FormatThaiLongDate(isoDate string) string {
	t, err := time.Parse("2006-01-02", isoDate)
	if err != nil {
		return isoDate
	}
	return fmt.Sprintf("%d %s %d", t.Day(), thaiMonths[t.Month()-1], t.Year()+buddhistEraOffset)
}

// FormatThaiShortDate 7/3/2568
func FormatThaiShortDate(t time.Time) string {
	return fmt.Sprintf("%d/%d/%d", t.Day(), int(t.Month()), t.Year()+buddhistEraOffset)
}
