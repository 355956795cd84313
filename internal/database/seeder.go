// server/internal/database/seeder.go
package database

import (
	"context"
	"log"
	"time"

	"ehs-compliance-api-server/internal/auth"
	"ehs-compliance-api-server/internal/models"
	"ehs-compliance-api-server/internal/records"
	"ehs-compliance-api-server/internal/store"
)

// Seed initializes every collection exactly once, behind a guard flag:
// empty lists for most collections, a default Administrador account and a
// couple of demo catalogs. Subsequent runs are a no-op.
func Seed(ctx context.Context, st store.Store) error {
	var seeded bool
	if _, err := st.Read(ctx, store.KeySeeded, &seeded); err != nil {
		return err
	}
	if seeded {
		log.Println("Store already seeded. Seeding skipped.")
		return nil
	}

	log.Println("Seed flag not found. Seeding...")

	for _, key := range store.CollectionKeys {
		if err := st.Write(ctx, key, []struct{}{}); err != nil {
			return err
		}
	}
	if err := st.Write(ctx, store.KeyReadNotifications, []string{}); err != nil {
		return err
	}

	hashedPassword, err := auth.HashPassword("admin123")
	if err != nil {
		return err
	}
	admin := models.User{
		Base:      models.Base{ID: records.NewID()},
		Email:     "admin@example.com",
		Name:      "Administrador",
		Password:  hashedPassword,
		Role:      models.RoleAdministrador,
		Status:    "Activo",
		CreatedAt: time.Now(),
	}
	if err := st.Write(ctx, store.KeyUsers, []models.User{admin}); err != nil {
		return err
	}

	demoPPE := []models.PPEItem{
		{Base: models.Base{ID: records.NewID()}, Name: "Casco de Seguridad", Type: "Casco", Sizes: []string{"Unitalla"}, Stock: 50, MinStock: 10},
		{Base: models.Base{ID: records.NewID()}, Name: "Guantes de Nitrilo", Type: "Guantes", Sizes: []string{"CH", "M", "G"}, Stock: 200, MinStock: 50},
		{Base: models.Base{ID: records.NewID()}, Name: "Lentes de Protección", Type: "Lentes", Sizes: []string{"Unitalla"}, Stock: 80, MinStock: 20},
	}
	if err := st.Write(ctx, store.KeyPPEItems, demoPPE); err != nil {
		return err
	}

	demoWaste := []models.WasteType{
		{Base: models.Base{ID: records.NewID()}, Name: "Aceite Gastado", Classification: models.CRETIB{Toxic: true, Flammable: true}, Container: "Tambor 200L", DisposalMethod: "Reciclaje Externo"},
		{Base: models.Base{ID: records.NewID()}, Name: "Sólidos Impregnados", Classification: models.CRETIB{Toxic: true}, Container: "Tambo 200L", DisposalMethod: "Confinamiento"},
	}
	if err := st.Write(ctx, store.KeyWasteTypes, demoWaste); err != nil {
		return err
	}

	if err := st.Write(ctx, store.KeySeeded, true); err != nil {
		return err
	}

	log.Println("Store seeded successfully.")
	return nil
}
