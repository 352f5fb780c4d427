package catalog

import "testing"

func TestServiceByID(t *testing.T) {
	tests := []struct {
		id        string
		wantName  string
		wantPrice string
		wantOK    bool
	}{
		{"basic", "Basic Wash", "$49.99", true},
		{"premium", "Premium Detail", "$99.99", true},
		{"ceramic", "Ceramic Coating", "$249.99", true},
		{"deluxe", "", "", false},
		{"", "", "", false},
	}

	for _, tt := range tests {
		svc, ok := ServiceByID(tt.id)
		if ok != tt.wantOK {
			t.Fatalf("ServiceByID(%q) ok = %v, want %v", tt.id, ok, tt.wantOK)
		}
		if !ok {
			continue
		}
		if svc.Name != tt.wantName || svc.Price != tt.wantPrice {
			t.Fatalf("ServiceByID(%q) = %q %q, want %q %q", tt.id, svc.Name, svc.Price, tt.wantName, tt.wantPrice)
		}
	}
}

func TestTimeSlotCatalog(t *testing.T) {
	if len(TimeSlots) != 9 {
		t.Fatalf("expected 9 time slots, got %d", len(TimeSlots))
	}
	if TimeSlots[0] != "9:00 AM" || TimeSlots[8] != "5:00 PM" {
		t.Fatalf("unexpected slot bounds: %q .. %q", TimeSlots[0], TimeSlots[8])
	}
	if !IsTimeSlot("10:00 AM") {
		t.Fatal("expected 10:00 AM to be a known slot")
	}
	if IsTimeSlot("10:30 AM") {
		t.Fatal("10:30 AM is not in the catalog")
	}
}

func TestFilterToTimeSlots(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{"empty", nil, []string{}},
		{"subset kept in catalog order", []string{"3:00 PM", "9:00 AM"}, []string{"9:00 AM", "3:00 PM"}},
		{"unknown labels dropped", []string{"9:00 AM", "midnight", "25:00"}, []string{"9:00 AM"}},
		{"duplicates collapsed", []string{"1:00 PM", "1:00 PM"}, []string{"1:00 PM"}},
	}

	for _, tt := range tests {
		got := FilterToTimeSlots(tt.input)
		if len(got) != len(tt.want) {
			t.Fatalf("%s: got %v, want %v", tt.name, got, tt.want)
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Fatalf("%s: got %v, want %v", tt.name, got, tt.want)
			}
		}
		// Every result must come from the slot catalog
		for _, label := range got {
			if !IsTimeSlot(label) {
				t.Fatalf("%s: %q is not a catalog slot", tt.name, label)
			}
		}
	}
}
