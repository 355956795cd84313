// server/cmd/api/main.go
package main

import (
	"context"
	"log"

	"ehs-compliance-api-server/config"
	"ehs-compliance-api-server/internal/api/routes"
	"ehs-compliance-api-server/internal/database"
	"ehs-compliance-api-server/internal/media"
	"ehs-compliance-api-server/internal/socket"
	"ehs-compliance-api-server/internal/store"

	"github.com/joho/godotenv"
)

func main() {
	// 1. Load .env (optional) and configuration
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment as-is")
	}
	cfg, err := config.LoadConfig("./config")
	if err != nil {
		log.Fatalf("Could not load config: %v", err)
	}
	if cfg.JWT.Secret == "" {
		log.Fatal("JWT_SECRET must be configured")
	}

	// 2. Open the record store
	var st store.Store
	switch cfg.Store.Driver {
	case "sqlite", "":
		st, err = store.OpenSQLite(cfg.Store.Path)
	case "mongo":
		st, err = store.OpenMongo(cfg.Store.MongoURI, cfg.Store.MongoDB)
	case "memory":
		st, err = store.NewMemoryStore(), nil
	default:
		log.Fatalf("Unknown store driver: %q", cfg.Store.Driver)
	}
	if err != nil {
		log.Fatalf("Failed to open record store: %v", err)
	}
	defer st.Close()

	// 3. Seed collections on first run
	if err := database.Seed(context.Background(), st); err != nil {
		log.Fatalf("Failed to seed store: %v", err)
	}

	// 4. Evidence uploader (optional; evidence endpoints answer 503 without it)
	var uploader *media.Uploader
	if cfg.S3.Bucket != "" {
		uploader, err = media.NewUploader(cfg.S3)
		if err != nil {
			log.Fatalf("Failed to create S3 uploader: %v", err)
		}
	}

	// 5. WebSocket hub for alert pushes
	wsHub := socket.NewHub()

	// 6. Router with every handler wired to the store
	router := routes.SetupRouter(cfg, st, uploader, wsHub)

	// 7. Start server
	log.Printf("Starting API server on port %s", cfg.Server.Port)
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
