package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestRefUnmarshal(t *testing.T) {
	var p struct {
		Category *Ref `json:"category"`
		Supplier *Ref `json:"supplier"`
		Owner    *Ref `json:"owner"`
	}
	data := `{"category":{"_id":"c1","name":"Tools"},"supplier":"s9","owner":null}`
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if !p.Category.Populated() || p.Category.Label() != "Tools" || p.Category.Key() != "c1" {
		t.Errorf("unexpected category ref: %+v", p.Category)
	}
	if p.Supplier.Populated() || p.Supplier.Label() != "s9" {
		t.Errorf("unexpected supplier ref: %+v", p.Supplier)
	}
	if p.Owner.Label() != "" {
		t.Errorf("expected empty label for null ref, got %q", p.Owner.Label())
	}
}

func TestRefUnmarshalRejectsNumbers(t *testing.T) {
	var r Ref
	if err := json.Unmarshal([]byte(`42`), &r); err == nil {
		t.Error("expected error for numeric reference")
	}
}

func TestRefMarshalKeepsPopulatedNames(t *testing.T) {
	var p Product
	in := `{"name":"Drill","category":{"_id":"c1","name":"Power Tools"},"supplier":"s1"}`
	if err := json.Unmarshal([]byte(in), &p); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	data, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var back Product
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal round trip: %v", err)
	}
	if !back.Category.Populated() || back.Category.Label() != "Power Tools" || back.Category.Key() != "c1" {
		t.Errorf("category lost its name: %s", data)
	}
	if back.Supplier.Populated() || back.Supplier.Key() != "s1" {
		t.Errorf("unexpected supplier %+v", back.Supplier)
	}
}

func TestForWriteSendsIDs(t *testing.T) {
	populated := &Ref{ID: "c1", Name: "Tools", populated: true}

	tests := []struct {
		name string
		v    any
		keys []string
	}{
		{"product", Product{Name: "Drill", Category: populated, Supplier: populated}.ForWrite(), []string{"category", "supplier"}},
		{"purchase", Purchase{Supplier: populated, Items: []PurchaseItem{{Product: populated}}}.ForWrite(), []string{"supplier"}},
		{"inward", Inward{Supplier: populated, Items: []InwardItem{{Product: populated}}}.ForWrite(), []string{"supplier"}},
		{"bill", Bill{Customer: populated, Items: []BillItem{{Product: populated}}}.ForWrite(), []string{"customer"}},
		{"rental", Rental{Customer: populated, Items: []RentalItem{{Product: populated, ProductItem: populated}}}.ForWrite(), []string{"customer"}},
		{"product item", ProductItem{Product: populated}.ForWrite(), []string{"product"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.v)
			if err != nil {
				t.Fatalf("Marshal: %v", err)
			}
			var raw map[string]any
			if err := json.Unmarshal(data, &raw); err != nil {
				t.Fatalf("Unmarshal: %v", err)
			}
			for _, key := range tt.keys {
				if raw[key] != "c1" {
					t.Errorf("expected %s written as id, got %v", key, raw[key])
				}
			}
			if items, ok := raw["items"].([]any); ok {
				line := items[0].(map[string]any)
				if line["product"] != "c1" {
					t.Errorf("expected line product written as id, got %v", line["product"])
				}
			}
		})
	}

	if !populated.Populated() {
		t.Error("ForWrite must not modify the original reference")
	}
}

func TestListParamsOmitsEmpty(t *testing.T) {
	p := ListParams{
		Page:      2,
		Search:    "drill",
		StartDate: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
	}
	v := p.Values()

	if got := v.Encode(); got != "page=2&search=drill&startDate=2024-03-01" {
		t.Errorf("unexpected query %q", got)
	}
	if len(ListParams{}.Values()) != 0 {
		t.Error("expected zero params to encode to nothing")
	}
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		input string
		want  CommandType
		args  int
	}{
		{"/stock", CommandStock, 0},
		{"  /LowStock  ", CommandLowStock, 0},
		{"/sales 2024", CommandSales, 1},
		{"rentals", CommandRentals, 0},
		{"", CommandUnknown, 0},
		{"/weather 12", CommandUnknown, 1},
	}

	for _, tt := range tests {
		cmd := ParseCommand(tt.input)
		if cmd.Type != tt.want {
			t.Errorf("ParseCommand(%q) type = %q, want %q", tt.input, cmd.Type, tt.want)
		}
		if len(cmd.Args) != tt.args {
			t.Errorf("ParseCommand(%q) args = %v, want %d", tt.input, cmd.Args, tt.args)
		}
	}
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("name", "category name too short")
	if err.Error() != "name: category name too short" {
		t.Errorf("unexpected message %q", err.Error())
	}
	if !IsValidation(err) {
		t.Error("expected IsValidation to be true")
	}
}
