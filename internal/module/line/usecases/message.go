package usecases

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"booking-portal/internal/module/booking/models/entity"
	"booking-portal/internal/pkg/timerange"
)

var (
	thaiWeekdays = [...]string{"อาทิตย์", "จันทร์", "อังคาร", "พุธ", "พฤหัสบดี", "ศุกร์", "เสาร์"}
	thaiMonths   = [...]string{"มกราคม", "กุมภาพันธ์", "มีนาคม", "เมษายน", "พฤษภาคม", "มิถุนายน",
		"กรกฎาคม", "สิงหาคม", "กันยายน", "ตุลาคม", "พฤศจิกายน", "ธันวาคม"}
)

// bangkok is fixed, Thailand has no daylight saving.
var bangkok = time.FixedZone("ICT", 7*60*60)

// formatThaiDate renders "2025-03-01" as "วันเสาร์ที่ 1 มีนาคม 2568".
func formatThaiDate(date string) string {
	d, err := timerange.ParseDate(date)
	if err != nil {
		return date
	}
	return fmt.Sprintf("วัน%sที่ %d %s %d", thaiWeekdays[d.Weekday()], d.Day(), thaiMonths[d.Month()-1], d.Year()+543)
}

func formatThaiDateTime(t time.Time) string {
	t = t.In(bangkok)
	return fmt.Sprintf("%d/%d/%d %s", t.Day(), int(t.Month()), t.Year()+543, t.Format("15:04:05"))
}

// formatBaht groups thousands and keeps at most two decimals.
func formatBaht(v float64) string {
	v = math.Round(v*100) / 100
	whole, frac := math.Modf(math.Abs(v))

	digits := strconv.FormatFloat(whole, 'f', 0, 64)
	var b strings.Builder
	if v < 0 {
		b.WriteByte('-')
	}
	for i, c := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	if cents := int(math.Round(frac * 100)); cents > 0 {
		b.WriteString(strings.TrimRight(fmt.Sprintf(".%02d", cents), "0"))
	}
	return b.String()
}

// hourlyPrices are the per hour parts of a booking total. Zero means unknown.
type hourlyPrices struct {
	room       float64
	additional float64
}

func bookingSummary(b entity.Booking, prices hourlyPrices, now time.Time) string {
	var sb strings.Builder
	sb.WriteString("🎵 การจองห้องซ้อมดนตรีใหม่\n\n")
	fmt.Fprintf(&sb, "👤 ชื่อ-นามสกุล: %s\n", b.FullName())
	fmt.Fprintf(&sb, "📅 วันที่จอง: %s\n", formatThaiDate(b.Date))
	fmt.Fprintf(&sb, "⏰ ช่วงเวลา: %s\n", b.TimeSlot())
	fmt.Fprintf(&sb, "🏠 ห้อง: %s\n", b.RoomName)
	if b.BookingType != "" {
		fmt.Fprintf(&sb, "📋 ประเภทการจอง: %s\n", b.BookingType)
	}
	if r, err := b.TimeRange(); err == nil {
		hours := r.Hours()
		fmt.Fprintf(&sb, "⏱️ จำนวนชั่วโมง: %.2f ชั่วโมง\n", hours)
		if prices.room > 0 {
			fmt.Fprintf(&sb, "💰 ราคาห้อง: %s บาท\n", formatBaht(prices.room*hours))
		}
		if prices.additional > 0 {
			fmt.Fprintf(&sb, "➕ ราคาเพิ่มเติม: %s บาท\n", formatBaht(prices.additional*hours))
		}
	}
	fmt.Fprintf(&sb, "\n💵 ยอดรวม: %s บาท\n", formatBaht(b.TotalPrice))
	if b.HasReceipt() {
		fmt.Fprintf(&sb, "\n📎 ใบเสร็จ: %s", b.ReceiptURL)
	}

	created := b.CreatedAt
	if created.IsZero() {
		created = now
	}
	fmt.Fprintf(&sb, "\n\n⏰ เวลาที่ทำรายการ: %s", formatThaiDateTime(created))
	return sb.String()
}

// truncate cuts s to at most n runes.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func postbackData(action entity.Action, recordID string) string {
	return fmt.Sprintf("action=%s&recordId=%s", action, recordID)
}

func transitionReply(b entity.Booking, status entity.Status) string {
	switch status {
	case entity.StatusConfirmed:
		return fmt.Sprintf("✅ อนุมัติการจองเรียบร้อยแล้ว\n%s %s %s", b.FullName(), b.Date, b.TimeSlot())
	case entity.StatusCancelled:
		return fmt.Sprintf("❌ ยกเลิกการจองเรียบร้อยแล้ว\n%s %s %s", b.FullName(), b.Date, b.TimeSlot())
	}
	return fmt.Sprintf("สถานะการจอง: %s", status)
}

func statusLabel(s entity.Status) string {
	switch s {
	case entity.StatusConfirmed:
		return "อนุมัติแล้ว"
	case entity.StatusCancelled:
		return "ยกเลิกแล้ว"
	case entity.StatusPending:
		return "รออนุมัติ"
	}
	return string(s)
}
