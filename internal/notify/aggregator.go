// server/internal/notify/aggregator.go
package notify

import (
	"context"
	"fmt"
	"sort"
	"time"

	"ehs-compliance-api-server/internal/models"
	"ehs-compliance-api-server/internal/records"
	"ehs-compliance-api-server/internal/status"
	"ehs-compliance-api-server/internal/store"
)

// Aggregator scans the monitored collections and produces the alert list for
// one user. Notifications are rebuilt from scratch on every call; read state
// is joined from the persisted read-id set.
type Aggregator struct {
	Store store.Store

	Equipment      *records.Repo[models.Equipment]
	EquipmentLogs  *records.Repo[models.EquipmentLog]
	Deliveries     *records.Repo[models.PPEDelivery]
	PPEItems       *records.Repo[models.PPEItem]
	Employees      *records.Repo[models.Employee]
	CAPAs          *records.Repo[models.CorrectiveAction]
	Contractors    *records.Repo[models.Contractor]
	ContractorDocs *records.Repo[models.ContractorDocument]

	// Now is swappable for tests; defaults to time.Now.
	Now func() time.Time
}

func (a *Aggregator) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

// Build produces the sorted alert list for user. Equipment alerts are
// global; PPE approval and contractor-document alerts only reach
// Administrador users; CAPA alerts only reach the assignee.
func (a *Aggregator) Build(ctx context.Context, user models.User) ([]Notification, error) {
	today := a.now()
	out := []Notification{}

	equipment, err := a.equipmentAlerts(ctx, today)
	if err != nil {
		return nil, err
	}
	out = append(out, equipment...)

	if user.Role == models.RoleAdministrador {
		approvals, err := a.approvalAlerts(ctx)
		if err != nil {
			return nil, err
		}
		out = append(out, approvals...)

		docs, err := a.contractorDocumentAlerts(ctx, today)
		if err != nil {
			return nil, err
		}
		out = append(out, docs...)
	}

	capas, err := a.capaAlerts(ctx, user, today)
	if err != nil {
		return nil, err
	}
	out = append(out, capas...)

	read, err := a.readIDs(ctx)
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].IsRead = read[out[i].ID]
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out, nil
}

func (a *Aggregator) equipmentAlerts(ctx context.Context, today time.Time) ([]Notification, error) {
	equipment, err := a.Equipment.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	logs, err := a.EquipmentLogs.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	latest := LatestLogs(logs)
	var out []Notification
	for _, eq := range equipment {
		last := latest[eq.ID]
		res := status.Compute(last.InspectionDate, eq.InspectionIntervalDays, last.Status, today)
		if res.Status != status.Overdue && res.Status != status.DueSoon && res.Status != status.Attention {
			continue
		}

		n := Notification{
			ID:        fmt.Sprintf("%s-%s", TypeEquipmentDue, eq.ID),
			Type:      TypeEquipmentDue,
			Title:     fmt.Sprintf("Equipo de seguridad: %s", eq.Name),
			Link:      fmt.Sprintf("/equipment/%s", eq.ID),
			Timestamp: alertTime(res.NextDueDate, eq.CreatedAt),
		}
		switch res.Status {
		case status.Attention:
			n.Message = fmt.Sprintf("%s (%s) requiere atención: %s", eq.Name, eq.Location, last.Status)
		case status.Overdue:
			n.Message = fmt.Sprintf("La inspección de %s (%s) está vencida", eq.Name, eq.Location)
		default:
			n.Message = fmt.Sprintf("La inspección de %s (%s) vence pronto: %s", eq.Name, eq.Location, res.NextDueDate)
		}
		out = append(out, n)
	}
	return out, nil
}

func (a *Aggregator) approvalAlerts(ctx context.Context) ([]Notification, error) {
	deliveries, err := a.Deliveries.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	items, err := a.PPEItems.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	employees, err := a.Employees.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	itemNames := map[string]string{}
	for _, it := range items {
		itemNames[it.ID] = it.Name
	}
	employeeNames := map[string]string{}
	for _, e := range employees {
		employeeNames[e.ID] = e.Name
	}

	var out []Notification
	for _, d := range deliveries {
		if d.Status != models.DeliveryPendiente {
			continue
		}
		out = append(out, Notification{
			ID:        fmt.Sprintf("%s-%s", TypePPEApproval, d.ID),
			Type:      TypePPEApproval,
			Title:     fmt.Sprintf("Entrega de EPP por aprobar: %s", d.Folio),
			Message:   fmt.Sprintf("%s solicita %d x %s para %s", d.Folio, d.Quantity, itemNames[d.PPEItemID], employeeNames[d.EmployeeID]),
			Link:      fmt.Sprintf("/ppe-deliveries/%s", d.ID),
			Timestamp: d.CreatedAt,
		})
	}
	return out, nil
}

func (a *Aggregator) capaAlerts(ctx context.Context, user models.User, today time.Time) ([]Notification, error) {
	capas, err := a.CAPAs.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	var out []Notification
	for _, capa := range capas {
		if capa.Status == models.CAPACerrada || capa.ResponsibleID != user.ID {
			continue
		}
		res := status.ComputeExpiry(capa.CommitmentDate, status.DefaultWindowDays, today)
		if res.Status != status.Overdue && res.Status != status.DueSoon {
			continue
		}

		msg := fmt.Sprintf("La acción correctiva %s vence el %s", capa.Folio, res.NextDueDate)
		if res.Status == status.Overdue {
			msg = fmt.Sprintf("La acción correctiva %s está vencida desde el %s", capa.Folio, res.NextDueDate)
		}
		out = append(out, Notification{
			ID:        fmt.Sprintf("%s-%s", TypeCAPADue, capa.ID),
			Type:      TypeCAPADue,
			Title:     fmt.Sprintf("Acción correctiva: %s", capa.Folio),
			Message:   msg,
			Link:      fmt.Sprintf("/capas/%s", capa.ID),
			Timestamp: alertTime(capa.CommitmentDate, capa.CreatedAt),
		})
	}
	return out, nil
}

func (a *Aggregator) contractorDocumentAlerts(ctx context.Context, today time.Time) ([]Notification, error) {
	docs, err := a.ContractorDocs.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	contractors, err := a.Contractors.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	names := map[string]string{}
	for _, c := range contractors {
		names[c.ID] = c.CompanyName
	}

	// Legal/contractor documents use the wide 30-day window.
	const contractorWindowDays = 30

	var out []Notification
	for _, doc := range docs {
		res := status.ComputeExpiry(doc.ExpiryDate, contractorWindowDays, today)
		if res.Status != status.Overdue && res.Status != status.DueSoon {
			continue
		}

		msg := fmt.Sprintf("%s de %s vence el %s", doc.Name, names[doc.ContractorID], res.NextDueDate)
		if res.Status == status.Overdue {
			msg = fmt.Sprintf("%s de %s venció el %s", doc.Name, names[doc.ContractorID], res.NextDueDate)
		}
		out = append(out, Notification{
			ID:        fmt.Sprintf("%s-%s", TypeContractorDocument, doc.ID),
			Type:      TypeContractorDocument,
			Title:     fmt.Sprintf("Documento de contratista: %s", doc.Name),
			Message:   msg,
			Link:      fmt.Sprintf("/contractors/%s", doc.ContractorID),
			Timestamp: alertTime(doc.ExpiryDate, doc.CreatedAt),
		})
	}
	return out, nil
}

// MarkAsRead adds id to the persisted read-id set. Source collections are
// never touched; there is no reverse transition back to unread.
func (a *Aggregator) MarkAsRead(ctx context.Context, id string) error {
	read, err := a.readIDs(ctx)
	if err != nil {
		return err
	}
	if read[id] {
		return nil
	}
	read[id] = true
	return a.writeReadIDs(ctx, read)
}

// MarkAllAsRead marks every notification currently visible to user as read.
func (a *Aggregator) MarkAllAsRead(ctx context.Context, user models.User) error {
	list, err := a.Build(ctx, user)
	if err != nil {
		return err
	}
	read, err := a.readIDs(ctx)
	if err != nil {
		return err
	}
	changed := false
	for _, n := range list {
		if !read[n.ID] {
			read[n.ID] = true
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return a.writeReadIDs(ctx, read)
}

func (a *Aggregator) readIDs(ctx context.Context) (map[string]bool, error) {
	var ids []string
	if _, err := a.Store.Read(ctx, store.KeyReadNotifications, &ids); err != nil {
		return nil, err
	}
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}

func (a *Aggregator) writeReadIDs(ctx context.Context, set map[string]bool) error {
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return a.Store.Write(ctx, store.KeyReadNotifications, ids)
}

// LatestLogs indexes the most recent log per equipment id. Also used by the
// equipment list view.
func LatestLogs(logs []models.EquipmentLog) map[string]models.EquipmentLog {
	latest := map[string]models.EquipmentLog{}
	for _, l := range logs {
		cur, ok := latest[l.EquipmentID]
		if !ok {
			latest[l.EquipmentID] = l
			continue
		}
		curDate, _ := status.ParseLocalDate(cur.InspectionDate)
		newDate, okNew := status.ParseLocalDate(l.InspectionDate)
		if okNew && newDate.After(curDate) {
			latest[l.EquipmentID] = l
		}
	}
	return latest
}

// alertTime anchors a notification's timestamp to the relevant domain date
// so regeneration is deterministic; fallback keeps unparseable dates sorted
// by record creation.
func alertTime(date string, fallback time.Time) time.Time {
	if t, ok := status.ParseLocalDate(date); ok {
		return t
	}
	return fallback
}
