package scheduling

import (
	"testing"

	"github.com/salonkit/salon-scheduler/internal/models"
)

func TestGroup_CombinesRowsByGroupID(t *testing.T) {
	rows := []models.Appointment{
		{
			ID:                 1,
			AppointmentGroupID: "g1",
			AppointmentDate:    "2026-09-10",
			StartTime:          "10:00",
			EndTime:            "11:15",
			Status:             "scheduled",
			Notes:              "primeira visita",
			TotalPrice:         150,
			ServiceID:          10,
			Service:            models.Service{Name: "Corte", DurationMin: 45},
			Customer:           models.Customer{ID: 7, FirstName: "Ana"},
		},
		{
			ID:                 2,
			AppointmentGroupID: "g1",
			AppointmentDate:    "2026-09-10",
			StartTime:          "10:00",
			EndTime:            "11:15",
			Status:             "scheduled",
			TotalPrice:         100,
			ServiceID:          11,
			Service:            models.Service{Name: "Escova", DurationMin: 30},
		},
	}

	groups := Group(rows)
	if len(groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(groups))
	}

	g := groups[0]
	if g.GroupID != "g1" {
		t.Fatalf("group id = %q", g.GroupID)
	}
	if g.TotalPrice != 250 {
		t.Fatalf("total price = %v, want 250", g.TotalPrice)
	}
	if len(g.Services) != 2 || len(g.AppointmentIDs) != 2 {
		t.Fatalf("expected 2 services and 2 ids, got %d/%d", len(g.Services), len(g.AppointmentIDs))
	}
	if g.Services[0].ServiceID != 10 || g.Services[1].ServiceID != 11 {
		t.Fatalf("service order not preserved: %+v", g.Services)
	}
	if g.Customer.FirstName != "Ana" {
		t.Fatalf("customer not seeded from first row: %+v", g.Customer)
	}
	if g.Notes != "primeira visita" {
		t.Fatalf("notes not seeded from first row: %q", g.Notes)
	}
}

func TestGroup_PreservesFirstSeenOrder(t *testing.T) {
	rows := []models.Appointment{
		{ID: 1, AppointmentGroupID: "g-early", StartTime: "09:00"},
		{ID: 2, AppointmentGroupID: "g-late", StartTime: "14:00"},
		{ID: 3, AppointmentGroupID: "g-early", StartTime: "09:00"},
	}

	groups := Group(rows)
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if groups[0].GroupID != "g-early" || groups[1].GroupID != "g-late" {
		t.Fatalf("order not preserved: %s, %s", groups[0].GroupID, groups[1].GroupID)
	}
	if len(groups[0].AppointmentIDs) != 2 {
		t.Fatalf("g-early should have 2 rows, got %d", len(groups[0].AppointmentIDs))
	}
}

func TestGroup_Empty(t *testing.T) {
	groups := Group(nil)
	if len(groups) != 0 {
		t.Fatalf("expected no groups, got %d", len(groups))
	}
}
