// Package catalog holds the fixed service and time-slot catalogs. Prices
// are display strings; the booking flow echoes them verbatim and they are
// not validated against any external price source.
package catalog

type Service struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Duration int    `json:"duration"` // minutes
	Price    string `json:"price"`
}

var Services = []Service{
	{ID: "basic", Name: "Basic Wash", Duration: 60, Price: "$49.99"},
	{ID: "premium", Name: "Premium Detail", Duration: 120, Price: "$99.99"},
	{ID: "interior", Name: "Interior Deep Clean", Duration: 90, Price: "$79.99"},
	{ID: "exterior", Name: "Exterior Polish", Duration: 90, Price: "$79.99"},
	{ID: "ceramic", Name: "Ceramic Coating", Duration: 180, Price: "$249.99"},
}

// TimeSlots is the fixed set of nine daily appointment labels.
var TimeSlots = []string{
	"9:00 AM", "10:00 AM", "11:00 AM", "12:00 PM", "1:00 PM",
	"2:00 PM", "3:00 PM", "4:00 PM", "5:00 PM",
}

// ServiceByID looks up a catalog entry. The second return is false for
// unknown service ids.
func ServiceByID(id string) (Service, bool) {
	for _, s := range Services {
		if s.ID == id {
			return s, true
		}
	}
	return Service{}, false
}

// IsTimeSlot reports whether label is one of the nine known slots.
func IsTimeSlot(label string) bool {
	for _, slot := range TimeSlots {
		if slot == label {
			return true
		}
	}
	return false
}

// FilterToTimeSlots drops any label that is not part of the slot catalog,
// preserving catalog order and deduplicating. Availability results are
// always a subset of the nine known slots.
func FilterToTimeSlots(labels []string) []string {
	seen := make(map[string]bool, len(labels))
	for _, l := range labels {
		seen[l] = true
	}
	out := make([]string, 0, len(labels))
	for _, slot := range TimeSlots {
		if seen[slot] {
			out = append(out, slot)
		}
	}
	return out
}
