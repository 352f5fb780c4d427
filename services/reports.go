package services

import (
	"fmt"
	"sort"

	"gorm.io/gorm"
)

// Reports exposes a fixed set of named, parameterized queries for the
// admin panel. Only queries registered here can run; there is no path
// for callers to submit SQL of their own.

type ReportParam struct {
	Name     string `json:"name"`
	Required bool   `json:"required"`
}

type Report struct {
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Params      []ReportParam `json:"params"`
	run         func(db *gorm.DB, params map[string]string) ([]map[string]interface{}, error)
}

var ErrUnknownReport = fmt.Errorf("unknown report")

var reportRegistry = map[string]Report{
	"bookings_per_day": {
		Name:        "bookings_per_day",
		Description: "Active booking counts grouped by date",
		Params: []ReportParam{
			{Name: "from", Required: false},
			{Name: "to", Required: false},
		},
		run: func(db *gorm.DB, params map[string]string) ([]map[string]interface{}, error) {
			q := db.Table("bookings").
				Select("date, COUNT(*) AS bookings").
				Where("status <> ?", "cancelled")
			if from := params["from"]; from != "" {
				q = q.Where("date >= ?", from)
			}
			if to := params["to"]; to != "" {
				q = q.Where("date <= ?", to)
			}
			return collect(q.Group("date").Order("date"))
		},
	},
	"status_breakdown": {
		Name:        "status_breakdown",
		Description: "Booking counts grouped by status",
		run: func(db *gorm.DB, params map[string]string) ([]map[string]interface{}, error) {
			return collect(db.Table("bookings").
				Select("status, COUNT(*) AS bookings").
				Group("status").Order("status"))
		},
	},
	"service_revenue": {
		Name:        "service_revenue",
		Description: "Booking counts per service, excluding cancellations",
		run: func(db *gorm.DB, params map[string]string) ([]map[string]interface{}, error) {
			return collect(db.Table("bookings").
				Select("service_name, COUNT(*) AS bookings").
				Where("status <> ?", "cancelled").
				Group("service_name").Order("bookings DESC"))
		},
	},
	"slot_popularity": {
		Name:        "slot_popularity",
		Description: "Booking counts per time slot",
		run: func(db *gorm.DB, params map[string]string) ([]map[string]interface{}, error) {
			return collect(db.Table("bookings").
				Select("time_slot, COUNT(*) AS bookings").
				Group("time_slot").Order("bookings DESC"))
		},
	},
	"customer_activity": {
		Name:        "customer_activity",
		Description: "Booking counts per customer email",
		Params: []ReportParam{
			{Name: "email", Required: false},
		},
		run: func(db *gorm.DB, params map[string]string) ([]map[string]interface{}, error) {
			q := db.Table("bookings").
				Joins("JOIN profiles ON profiles.id = bookings.user_id").
				Select("profiles.email, COUNT(*) AS bookings").
				Group("profiles.email").Order("bookings DESC")
			if email := params["email"]; email != "" {
				q = q.Where("LOWER(profiles.email) LIKE LOWER(?)", "%"+email+"%")
			}
			return collect(q)
		},
	},
}

// ListReports returns the registry sorted by name.
func ListReports() []Report {
	out := make([]Report, 0, len(reportRegistry))
	for _, r := range reportRegistry {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// RunReport executes a registered report with the given parameters.
func RunReport(db *gorm.DB, name string, params map[string]string) ([]map[string]interface{}, error) {
	report, ok := reportRegistry[name]
	if !ok {
		return nil, ErrUnknownReport
	}
	for _, p := range report.Params {
		if p.Required && params[p.Name] == "" {
			return nil, fmt.Errorf("missing required parameter %q", p.Name)
		}
	}
	return report.run(db, params)
}

func collect(q *gorm.DB) ([]map[string]interface{}, error) {
	rows := make([]map[string]interface{}, 0)
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
