package app

import (
	"strings"
	"testing"

	xansi "github.com/charmbracelet/x/ansi"

	"foreman/internal/types"
)

func TestFilterControllerStages(t *testing.T) {
	f := NewFilterController()
	f.Open([]types.FilterableColumn{
		{Field: "type_id", Label: "Type"},
		{Field: "cost_type", Label: "Cost type"},
	})
	if f.Stage() != filterStageColumn {
		t.Fatalf("expected column stage on open")
	}
	f.Move(1)
	field, label := f.Selected()
	if field != "cost_type" || label != "Cost type" {
		t.Fatalf("expected second column selected, got %q/%q", field, label)
	}

	f.EnterValues(field, label)
	if !f.Loading() {
		t.Fatalf("expected loading until values arrive")
	}
	f.SetValues("cost_type", []types.FilterValue{
		{Value: "CAPEX", Label: "Capital", Count: 12},
		{Value: "OPEX", Label: "Operational", Count: 7},
	}, "OPEX")
	if f.Loading() {
		t.Fatalf("expected loading cleared")
	}
	if f.IsAllSelected() {
		t.Fatalf("expected cursor on the active value, not the All row")
	}
	value, _ := f.Selected()
	if value != "OPEX" {
		t.Fatalf("expected active value preselected, got %q", value)
	}

	f.Move(-2)
	if !f.IsAllSelected() {
		t.Fatalf("expected cursor on All row after moving up")
	}
}

func TestFilterControllerIgnoresValuesForStaleField(t *testing.T) {
	f := NewFilterController()
	f.Open([]types.FilterableColumn{{Field: "type_id", Label: "Type"}})
	f.EnterValues("type_id", "Type")
	f.SetValues("cost_type", []types.FilterValue{{Value: "CAPEX"}}, "")
	if !f.Loading() {
		t.Fatalf("expected values for another field to be dropped")
	}
}

func TestFilterControllerViewShowsCounts(t *testing.T) {
	f := NewFilterController()
	f.Open([]types.FilterableColumn{{Field: "type_id", Label: "Type"}})
	f.EnterValues("type_id", "Type")
	f.SetValues("type_id", []types.FilterValue{{Value: "MECH", Label: "Mechanical", Count: 3}}, "")
	view := xansi.Strip(f.View(80))
	if !strings.Contains(view, "Mechanical (3)") {
		t.Fatalf("expected value with count in view, got: %s", view)
	}
	if !strings.Contains(view, "All") {
		t.Fatalf("expected All row in view, got: %s", view)
	}
}
