package usecases

import (
	"strings"
	"testing"
	"time"

	"booking-portal/internal/module/booking/models/entity"

	"github.com/stretchr/testify/assert"
)

func TestFormatThaiDate(t *testing.T) {
	assert.Equal(t, "วันเสาร์ที่ 1 มีนาคม 2568", formatThaiDate("2025-03-01"))
	assert.Equal(t, "วันเสาร์ที่ 1 มีนาคม 2568", formatThaiDate("2025/03/01"))
	assert.Equal(t, "not-a-date", formatThaiDate("not-a-date"))
}

func TestFormatBaht(t *testing.T) {
	testCases := map[float64]string{
		0:        "0",
		500:      "500",
		1500:     "1,500",
		1234567:  "1,234,567",
		99.5:     "99.5",
		1000.25:  "1,000.25",
		-2500.75: "-2,500.75",
	}
	for in, want := range testCases {
		assert.Equal(t, want, formatBaht(in), "formatBaht(%v)", in)
	}
}

func TestBookingSummary(t *testing.T) {
	b := entity.Booking{
		ID: "rec1", FirstName: "Somchai", LastName: "Jaidee",
		Date: "2025-03-01", StartTime: "09:00", EndTime: "10:30",
		RoomName: "ห้องที่ 1", BookingType: "รายชั่วโมง", TotalPrice: 1500,
		ReceiptURL: "https://cdn.example.com/r.png",
	}
	now := time.Date(2025, 3, 1, 2, 0, 0, 0, time.UTC)

	summary := bookingSummary(b, hourlyPrices{}, now)
	assert.Contains(t, summary, "Somchai Jaidee")
	assert.Contains(t, summary, "วันเสาร์ที่ 1 มีนาคม 2568")
	assert.Contains(t, summary, "09:00 - 10:30")
	assert.Contains(t, summary, "1.50 ชั่วโมง")
	assert.Contains(t, summary, "1,500 บาท")
	assert.Contains(t, summary, "https://cdn.example.com/r.png")
	assert.Contains(t, summary, "1/3/2568 09:00:00")
	assert.NotContains(t, summary, "ราคาห้อง")
	assert.NotContains(t, summary, "ราคาเพิ่มเติม")
}

func TestBookingSummaryPriceBreakdown(t *testing.T) {
	b := entity.Booking{
		FirstName: "Somchai", LastName: "Jaidee",
		Date: "2025-03-01", StartTime: "09:00", EndTime: "10:30",
		RoomName: "ห้องที่ 1", TotalPrice: 675,
	}

	summary := bookingSummary(b, hourlyPrices{room: 300, additional: 150}, time.Now())
	assert.Contains(t, summary, "💰 ราคาห้อง: 450 บาท")
	assert.Contains(t, summary, "➕ ราคาเพิ่มเติม: 225 บาท")
	assert.Contains(t, summary, "ยอดรวม: 675 บาท")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	got := truncate(strings.Repeat("ก", 50), 40)
	assert.Equal(t, 40, len([]rune(got)))
	assert.True(t, strings.HasSuffix(got, "…"))
}

func TestPostbackData(t *testing.T) {
	assert.Equal(t, "action=approve&recordId=rec1", postbackData(entity.ActionApprove, "rec1"))
}
