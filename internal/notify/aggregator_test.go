package notify

import (
	"context"
	"strings"
	"testing"
	"time"

	"ehs-compliance-api-server/internal/models"
	"ehs-compliance-api-server/internal/records"
	"ehs-compliance-api-server/internal/store"
)

var testToday = time.Date(2026, 6, 1, 9, 0, 0, 0, time.Local)

func date(n int) string { return testToday.AddDate(0, 0, n).Format("2006-01-02") }

// newAggregator seeds a store with one overdue equipment, one pending
// delivery, one near-due CAPA assigned to "user-ana" and one contractor
// document expiring inside the 30-day window.
func newAggregator(t *testing.T) *Aggregator {
	t.Helper()
	st := store.NewMemoryStore()
	ctx := context.Background()

	equipment := records.New[models.Equipment](st, store.KeyEquipment, "")
	logs := records.New[models.EquipmentLog](st, store.KeyEquipmentLogs, "")
	deliveries := records.New[models.PPEDelivery](st, store.KeyPPEDeliveries, "EPP")
	items := records.New[models.PPEItem](st, store.KeyPPEItems, "")
	employees := records.New[models.Employee](st, store.KeyEmployees, "")
	capas := records.New[models.CorrectiveAction](st, store.KeyCorrectiveActions, "AC")
	contractors := records.New[models.Contractor](st, store.KeyContractors, "")
	docs := records.New[models.ContractorDocument](st, store.KeyContractorDocuments, "")

	eq, err := equipment.Add(ctx, models.Equipment{Name: "Extintor Pasillo 1", Location: "Nave A", InspectionIntervalDays: 30})
	if err != nil {
		t.Fatalf("seeding equipment: %v", err)
	}
	if _, err := logs.Add(ctx, models.EquipmentLog{EquipmentID: eq.ID, InspectionDate: date(-45), Status: "Operational"}); err != nil {
		t.Fatalf("seeding log: %v", err)
	}

	item, err := items.Add(ctx, models.PPEItem{Name: "Casco", Stock: 10})
	if err != nil {
		t.Fatalf("seeding item: %v", err)
	}
	emp, err := employees.Add(ctx, models.Employee{Name: "Luis Pérez"})
	if err != nil {
		t.Fatalf("seeding employee: %v", err)
	}
	if _, err := deliveries.Add(ctx, models.PPEDelivery{
		EmployeeID: emp.ID, PPEItemID: item.ID, Quantity: 1,
		Status: models.DeliveryPendiente, CreatedAt: testToday,
	}); err != nil {
		t.Fatalf("seeding delivery: %v", err)
	}

	if err := st.Write(ctx, store.KeyCorrectiveActions, []models.CorrectiveAction{{
		Base:           models.Base{ID: "capa-1"},
		Folio:          "AC-0001",
		Description:    "Señalizar zona de carga",
		ResponsibleID:  "user-ana",
		CommitmentDate: date(3),
		Status:         models.CAPAAbierta,
	}}); err != nil {
		t.Fatalf("seeding capa: %v", err)
	}

	contractor, err := contractors.Add(ctx, models.Contractor{CompanyName: "Montajes del Norte", Status: "Activo"})
	if err != nil {
		t.Fatalf("seeding contractor: %v", err)
	}
	if _, err := docs.Add(ctx, models.ContractorDocument{
		ContractorID: contractor.ID, Name: "Póliza de Seguro", ExpiryDate: date(20),
	}); err != nil {
		t.Fatalf("seeding document: %v", err)
	}

	return &Aggregator{
		Store:          st,
		Equipment:      equipment,
		EquipmentLogs:  logs,
		Deliveries:     deliveries,
		PPEItems:       items,
		Employees:      employees,
		CAPAs:          capas,
		Contractors:    contractors,
		ContractorDocs: docs,
		Now:            func() time.Time { return testToday },
	}
}

func countByType(list []Notification) map[string]int {
	out := map[string]int{}
	for _, n := range list {
		out[n.Type]++
	}
	return out
}

func TestBuild_AdminSeesAllTypes(t *testing.T) {
	agg := newAggregator(t)
	admin := models.User{Base: models.Base{ID: "user-admin"}, Role: models.RoleAdministrador}

	list, err := agg.Build(context.Background(), admin)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	counts := countByType(list)
	if counts[TypeEquipmentDue] != 1 {
		t.Errorf("equipment notifications = %d, want 1", counts[TypeEquipmentDue])
	}
	if counts[TypePPEApproval] != 1 {
		t.Errorf("approval notifications = %d, want 1", counts[TypePPEApproval])
	}
	if counts[TypeContractorDocument] != 1 {
		t.Errorf("contractor document notifications = %d, want 1", counts[TypeContractorDocument])
	}
	// The CAPA belongs to user-ana, not the admin.
	if counts[TypeCAPADue] != 0 {
		t.Errorf("capa notifications = %d, want 0", counts[TypeCAPADue])
	}
}

func TestBuild_OperadorWithoutAssignmentsSeesNoCAPAOrApprovals(t *testing.T) {
	agg := newAggregator(t)
	operador := models.User{Base: models.Base{ID: "user-luis"}, Role: models.RoleOperador}

	list, err := agg.Build(context.Background(), operador)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	counts := countByType(list)
	if counts[TypeCAPADue] != 0 {
		t.Errorf("capa notifications = %d, want 0 for unassigned user", counts[TypeCAPADue])
	}
	if counts[TypePPEApproval] != 0 {
		t.Errorf("approval notifications = %d, want 0 for Operador", counts[TypePPEApproval])
	}
	// Equipment alerts are global.
	if counts[TypeEquipmentDue] != 1 {
		t.Errorf("equipment notifications = %d, want 1", counts[TypeEquipmentDue])
	}
}

func TestBuild_AssigneeSeesTheirCAPA(t *testing.T) {
	agg := newAggregator(t)
	ana := models.User{Base: models.Base{ID: "user-ana"}, Role: models.RoleOperador}

	list, err := agg.Build(context.Background(), ana)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if countByType(list)[TypeCAPADue] != 1 {
		t.Errorf("capa notifications = %d, want 1 for assignee", countByType(list)[TypeCAPADue])
	}
	for _, n := range list {
		if n.Type == TypeCAPADue && n.ID != TypeCAPADue+"-capa-1" {
			t.Errorf("capa notification id = %q, want deterministic %q", n.ID, TypeCAPADue+"-capa-1")
		}
	}
}

func TestBuild_IsDeterministicAndIdempotent(t *testing.T) {
	agg := newAggregator(t)
	admin := models.User{Base: models.Base{ID: "user-admin"}, Role: models.RoleAdministrador}
	ctx := context.Background()

	first, err := agg.Build(ctx, admin)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	second, err := agg.Build(ctx, admin)
	if err != nil {
		t.Fatalf("second Build: %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("lengths diverged: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].ID != second[i].ID || first[i].IsRead != second[i].IsRead {
			t.Errorf("notification %d diverged: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestBuild_SortedByTimestampDescending(t *testing.T) {
	agg := newAggregator(t)
	admin := models.User{Base: models.Base{ID: "user-admin"}, Role: models.RoleAdministrador}

	list, err := agg.Build(context.Background(), admin)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	for i := 1; i < len(list); i++ {
		if list[i].Timestamp.After(list[i-1].Timestamp) {
			t.Errorf("notifications out of order at %d: %v before %v", i, list[i-1].Timestamp, list[i].Timestamp)
		}
	}
}

func TestMarkAsRead_SurvivesRegeneration(t *testing.T) {
	agg := newAggregator(t)
	admin := models.User{Base: models.Base{ID: "user-admin"}, Role: models.RoleAdministrador}
	ctx := context.Background()

	list, err := agg.Build(ctx, admin)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(list) == 0 {
		t.Fatal("expected notifications")
	}
	target := list[0].ID

	if err := agg.MarkAsRead(ctx, target); err != nil {
		t.Fatalf("MarkAsRead: %v", err)
	}

	rebuilt, err := agg.Build(ctx, admin)
	if err != nil {
		t.Fatalf("rebuild: %v", err)
	}
	for _, n := range rebuilt {
		if n.ID == target && !n.IsRead {
			t.Errorf("notification %s lost its read state on regeneration", target)
		}
		if n.ID != target && n.IsRead {
			t.Errorf("notification %s unexpectedly read", n.ID)
		}
	}
}

func TestMarkAllAsRead(t *testing.T) {
	agg := newAggregator(t)
	admin := models.User{Base: models.Base{ID: "user-admin"}, Role: models.RoleAdministrador}
	ctx := context.Background()

	if err := agg.MarkAllAsRead(ctx, admin); err != nil {
		t.Fatalf("MarkAllAsRead: %v", err)
	}

	list, err := agg.Build(ctx, admin)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	for _, n := range list {
		if !n.IsRead {
			t.Errorf("notification %s still unread", n.ID)
		}
	}
}

func TestLatestLogs_PicksMostRecentPerEquipment(t *testing.T) {
	logs := []models.EquipmentLog{
		{Base: models.Base{ID: "l1"}, EquipmentID: "eq-1", InspectionDate: date(-60), Status: "Operational"},
		{Base: models.Base{ID: "l2"}, EquipmentID: "eq-1", InspectionDate: date(-10), Status: "Repair Required"},
		{Base: models.Base{ID: "l3"}, EquipmentID: "eq-2", InspectionDate: date(-5), Status: "Operational"},
	}

	latest := LatestLogs(logs)
	if latest["eq-1"].ID != "l2" {
		t.Errorf("latest for eq-1 = %s, want l2", latest["eq-1"].ID)
	}
	if latest["eq-2"].ID != "l3" {
		t.Errorf("latest for eq-2 = %s, want l3", latest["eq-2"].ID)
	}
}

func TestBuild_FlaggedEquipmentIsAttentionNotOverdue(t *testing.T) {
	agg := newAggregator(t)
	ctx := context.Background()

	// Flag the equipment with a fresh log: even though the previous one is
	// long overdue, the alert must say attention, not overdue.
	equipment, err := agg.Equipment.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if _, err := agg.EquipmentLogs.Add(ctx, models.EquipmentLog{
		EquipmentID:    equipment[0].ID,
		InspectionDate: date(-1),
		Status:         "Replacement Required",
	}); err != nil {
		t.Fatalf("Add log: %v", err)
	}

	list, err := agg.Build(ctx, models.User{Base: models.Base{ID: "u"}, Role: models.RoleOperador})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	found := false
	for _, n := range list {
		if n.Type == TypeEquipmentDue {
			found = true
			if want := "requiere atención"; !strings.Contains(n.Message, want) {
				t.Errorf("message %q does not mention %q", n.Message, want)
			}
		}
	}
	if !found {
		t.Fatal("expected an equipment notification")
	}
}
