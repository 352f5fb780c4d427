package services

import (
	"strconv"
	"strings"
	"time"

	"autogenics-server/models"
)

// Analytics aggregates bookings and feedback for the admin dashboard.
// The functions are pure so the caller decides what rows feed them.

type NameCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type MonthCount struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

type MonthRevenue struct {
	Month   string  `json:"month"`
	Revenue float64 `json:"revenue"`
}

type FeedbackStats struct {
	Total         int64          `json:"total"`
	AverageRating float64        `json:"average_rating"`
	ByRating      [5]int         `json:"by_rating"` // index 0 = one star
	Satisfaction  map[string]int `json:"satisfaction"`
}

// ParsePrice converts a catalog display price ("$49.99") to a float.
// Returns 0 when the string does not parse.
func ParsePrice(price string) float64 {
	cleaned := strings.NewReplacer("$", "", ",", "").Replace(strings.TrimSpace(price))
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return v
}

// monthKey formats like "Jan 2026", matching the dashboard's axis labels.
func monthKey(t time.Time) string {
	return t.Format("Jan 2006")
}

// lastSixMonths returns month keys oldest-first ending at now's month.
func lastSixMonths(now time.Time) []string {
	keys := make([]string, 0, 6)
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	for i := 5; i >= 0; i-- {
		keys = append(keys, monthKey(start.AddDate(0, -i, 0)))
	}
	return keys
}

// BookingsByService counts bookings per service display name.
func BookingsByService(bookings []models.Booking) []NameCount {
	return countBy(bookings, func(b models.Booking) string { return b.ServiceName })
}

// BookingsByStatus counts bookings per status label.
func BookingsByStatus(bookings []models.Booking) []NameCount {
	return countBy(bookings, func(b models.Booking) string { return string(b.Status) })
}

// BookingsByCarMake counts bookings per vehicle make.
func BookingsByCarMake(bookings []models.Booking) []NameCount {
	return countBy(bookings, func(b models.Booking) string {
		if b.CarMake == "" {
			return "Unknown"
		}
		return b.CarMake
	})
}

// BookingsByTimeSlot counts bookings per slot label.
func BookingsByTimeSlot(bookings []models.Booking) []NameCount {
	return countBy(bookings, func(b models.Booking) string { return b.TimeSlot })
}

func countBy(bookings []models.Booking, key func(models.Booking) string) []NameCount {
	counts := make(map[string]int)
	order := make([]string, 0)
	for _, b := range bookings {
		k := key(b)
		if _, seen := counts[k]; !seen {
			order = append(order, k)
		}
		counts[k]++
	}
	out := make([]NameCount, 0, len(order))
	for _, k := range order {
		out = append(out, NameCount{Name: k, Count: counts[k]})
	}
	return out
}

// BookingsByMonth counts bookings created in each of the last six months.
func BookingsByMonth(bookings []models.Booking, now time.Time) []MonthCount {
	keys := lastSixMonths(now)
	counts := make(map[string]int, len(keys))
	for _, k := range keys {
		counts[k] = 0
	}
	for _, b := range bookings {
		k := monthKey(b.CreatedAt)
		if _, ok := counts[k]; ok {
			counts[k]++
		}
	}
	out := make([]MonthCount, 0, len(keys))
	for _, k := range keys {
		out = append(out, MonthCount{Month: k, Count: counts[k]})
	}
	return out
}

// RevenueByMonth sums catalog prices of non-cancelled bookings created in
// each of the last six months.
func RevenueByMonth(bookings []models.Booking, now time.Time) []MonthRevenue {
	keys := lastSixMonths(now)
	totals := make(map[string]float64, len(keys))
	for _, k := range keys {
		totals[k] = 0
	}
	for _, b := range bookings {
		if b.Status == models.BookingStatusCancelled {
			continue
		}
		k := monthKey(b.CreatedAt)
		if _, ok := totals[k]; ok {
			totals[k] += ParsePrice(b.Price)
		}
	}
	out := make([]MonthRevenue, 0, len(keys))
	for _, k := range keys {
		out = append(out, MonthRevenue{Month: k, Revenue: totals[k]})
	}
	return out
}

// SummarizeFeedback computes rating and satisfaction distributions.
func SummarizeFeedback(feedback []models.Feedback) FeedbackStats {
	stats := FeedbackStats{
		Satisfaction: map[string]int{"positive": 0, "neutral": 0, "negative": 0},
	}
	var sum int
	for _, f := range feedback {
		stats.Total++
		sum += f.Rating
		if f.Rating >= 1 && f.Rating <= 5 {
			stats.ByRating[f.Rating-1]++
		}
		stats.Satisfaction[string(f.Satisfaction)]++
	}
	if stats.Total > 0 {
		stats.AverageRating = float64(sum) / float64(stats.Total)
	}
	return stats
}
