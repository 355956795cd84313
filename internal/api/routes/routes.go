// server/internal/api/routes/routes.go
package routes

import (
	"strings"
	"time"

	"ehs-compliance-api-server/config"
	"ehs-compliance-api-server/internal/api/handlers"
	"ehs-compliance-api-server/internal/api/middleware"
	"ehs-compliance-api-server/internal/media"
	"ehs-compliance-api-server/internal/models"
	"ehs-compliance-api-server/internal/notify"
	"ehs-compliance-api-server/internal/records"
	"ehs-compliance-api-server/internal/socket"
	"ehs-compliance-api-server/internal/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// SetupRouter wires every repo and handler onto the record store and builds
// the route tree.
func SetupRouter(
	cfg config.Config,
	st store.Store,
	uploader *media.Uploader,
	wsHub *socket.Hub,
) *gin.Engine {
	router := gin.Default()
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if cfg.Server.AllowOrigins != "" {
		corsConfig.AllowOrigins = strings.Split(cfg.Server.AllowOrigins, ",")
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	jwtSecret := []byte(cfg.JWT.Secret)
	jwtExpiration, err := time.ParseDuration(cfg.JWT.Expiration)
	if err != nil {
		jwtExpiration = 24 * time.Hour
	}

	// One repo per collection; folio prefixes for transactional entities.
	users := records.New[models.User](st, store.KeyUsers, "")
	employees := records.New[models.Employee](st, store.KeyEmployees, "")
	ppeItems := records.New[models.PPEItem](st, store.KeyPPEItems, "")
	ppeDeliveries := records.New[models.PPEDelivery](st, store.KeyPPEDeliveries, "EPP")
	equipment := records.New[models.Equipment](st, store.KeyEquipment, "")
	equipmentLogs := records.New[models.EquipmentLog](st, store.KeyEquipmentLogs, "")
	incidents := records.New[models.Incident](st, store.KeyIncidents, "INC")
	trainings := records.New[models.Training](st, store.KeyTrainings, "CAP")
	inspections := records.New[models.Inspection](st, store.KeyInspections, "INSP")
	chemicals := records.New[models.Chemical](st, store.KeyChemicals, "")
	wasteTypes := records.New[models.WasteType](st, store.KeyWasteTypes, "")
	wasteLogs := records.New[models.WasteLog](st, store.KeyWasteLogs, "RES")
	workPermits := records.New[models.WorkPermit](st, store.KeyWorkPermits, "PT")
	audits := records.New[models.Audit](st, store.KeyAudits, "AUD")
	capas := records.New[models.CorrectiveAction](st, store.KeyCorrectiveActions, "AC")
	contractors := records.New[models.Contractor](st, store.KeyContractors, "")
	contractorDocs := records.New[models.ContractorDocument](st, store.KeyContractorDocuments, "")

	aggregator := &notify.Aggregator{
		Store:          st,
		Equipment:      equipment,
		EquipmentLogs:  equipmentLogs,
		Deliveries:     ppeDeliveries,
		PPEItems:       ppeItems,
		Employees:      employees,
		CAPAs:          capas,
		Contractors:    contractors,
		ContractorDocs: contractorDocs,
	}

	userHandler := &handlers.UserHandler{Users: users, JWTSecret: jwtSecret, JWTExpiration: jwtExpiration}
	employeeHandler := &handlers.EmployeeHandler{Employees: employees, Deliveries: ppeDeliveries, Incidents: incidents}
	ppeHandler := &handlers.PPEHandler{Items: ppeItems, Deliveries: ppeDeliveries, Employees: employees, Users: users, Hub: wsHub}
	equipmentHandler := &handlers.EquipmentHandler{Equipment: equipment, Logs: equipmentLogs}
	incidentHandler := &handlers.IncidentHandler{Incidents: incidents, Uploader: uploader}
	trainingHandler := &handlers.TrainingHandler{Trainings: trainings}
	inspectionHandler := &handlers.InspectionHandler{Inspections: inspections}
	chemicalHandler := &handlers.ChemicalHandler{Chemicals: chemicals}
	wasteHandler := &handlers.WasteHandler{Types: wasteTypes, Logs: wasteLogs}
	permitHandler := &handlers.PermitHandler{Permits: workPermits, Contractors: contractors}
	auditHandler := &handlers.AuditHandler{Audits: audits, CAPAs: capas, Users: users}
	contractorHandler := &handlers.ContractorHandler{Contractors: contractors, Documents: contractorDocs, Permits: workPermits}
	notificationHandler := &handlers.NotificationHandler{Aggregator: aggregator, Hub: wsHub}
	webSocketHandler := &handlers.WebSocketHandler{Hub: wsHub, JWTSecret: jwtSecret}

	apiV1 := router.Group("/api/v1")
	{
		apiV1.GET("/ws", webSocketHandler.ServeWs)

		auth := apiV1.Group("/auth")
		{
			auth.POST("/login", userHandler.Login)
		}

		// Admin-only management.
		admin := apiV1.Group("/admin")
		admin.Use(middleware.Authenticate(jwtSecret))
		admin.Use(middleware.Authorize(models.RoleAdministrador))
		{
			admin.POST("/users", userHandler.CreateUser)
			admin.GET("/users", userHandler.GetAllUsers)
		}

		// Main business routes, any authenticated role.
		businessRoutes := apiV1.Group("/")
		businessRoutes.Use(middleware.Authenticate(jwtSecret))
		businessRoutes.Use(middleware.Authorize(models.RoleAdministrador, models.RoleSupervisor, models.RoleOperador))
		{
			businessRoutes.GET("/me", userHandler.GetMe)

			employeesGroup := businessRoutes.Group("/employees")
			{
				employeesGroup.GET("/", employeeHandler.GetAllEmployees)
				employeesGroup.POST("/", employeeHandler.CreateEmployee)
				employeesGroup.GET("/:id", employeeHandler.GetEmployeeByID)
				employeesGroup.PUT("/:id", employeeHandler.UpdateEmployee)
				employeesGroup.DELETE("/:id", employeeHandler.DeleteEmployee)
			}

			ppeItemsGroup := businessRoutes.Group("/ppe-items")
			{
				ppeItemsGroup.GET("/", ppeHandler.GetAllItems)
				ppeItemsGroup.POST("/", ppeHandler.CreateItem)
				ppeItemsGroup.PUT("/:id", ppeHandler.UpdateItem)
				ppeItemsGroup.DELETE("/:id", ppeHandler.DeleteItem)
			}

			deliveriesGroup := businessRoutes.Group("/ppe-deliveries")
			{
				deliveriesGroup.GET("/", ppeHandler.GetAllDeliveries)
				deliveriesGroup.POST("/", ppeHandler.CreateDelivery)
				deliveriesGroup.POST("/:id/deliver", ppeHandler.ConfirmDelivery)

				// Approval is an Administrador decision.
				approvalRoutes := deliveriesGroup.Group("/")
				approvalRoutes.Use(middleware.Authorize(models.RoleAdministrador))
				{
					approvalRoutes.POST("/:id/approve", ppeHandler.ApproveDelivery)
					approvalRoutes.POST("/:id/reject", ppeHandler.RejectDelivery)
				}
			}

			equipmentGroup := businessRoutes.Group("/equipment")
			{
				equipmentGroup.GET("/", equipmentHandler.GetAllEquipment)
				equipmentGroup.POST("/", equipmentHandler.CreateEquipment)
				equipmentGroup.PUT("/:id", equipmentHandler.UpdateEquipment)
				equipmentGroup.DELETE("/:id", equipmentHandler.DeleteEquipment)
				equipmentGroup.GET("/:id/logs", equipmentHandler.GetLogs)
				equipmentGroup.POST("/:id/logs", equipmentHandler.AddLog)
			}

			incidentsGroup := businessRoutes.Group("/incidents")
			{
				incidentsGroup.GET("/", incidentHandler.GetAllIncidents)
				incidentsGroup.POST("/", incidentHandler.CreateIncident)
				incidentsGroup.GET("/:id", incidentHandler.GetIncidentByID)
				incidentsGroup.PUT("/:id", incidentHandler.UpdateIncident)
				incidentsGroup.DELETE("/:id", incidentHandler.DeleteIncident)
				incidentsGroup.POST("/:id/evidence", incidentHandler.UploadEvidence)
			}

			trainingsGroup := businessRoutes.Group("/trainings")
			{
				trainingsGroup.GET("/", trainingHandler.GetAllTrainings)
				trainingsGroup.POST("/", trainingHandler.CreateTraining)
				trainingsGroup.PUT("/:id", trainingHandler.UpdateTraining)
				trainingsGroup.DELETE("/:id", trainingHandler.DeleteTraining)
			}

			inspectionsGroup := businessRoutes.Group("/inspections")
			{
				inspectionsGroup.GET("/", inspectionHandler.GetAllInspections)
				inspectionsGroup.POST("/", inspectionHandler.CreateInspection)
				inspectionsGroup.PUT("/:id", inspectionHandler.UpdateInspection)
				inspectionsGroup.DELETE("/:id", inspectionHandler.DeleteInspection)
			}

			chemicalsGroup := businessRoutes.Group("/chemicals")
			{
				chemicalsGroup.GET("/", chemicalHandler.GetAllChemicals)
				chemicalsGroup.POST("/", chemicalHandler.CreateChemical)
				chemicalsGroup.PUT("/:id", chemicalHandler.UpdateChemical)
				chemicalsGroup.DELETE("/:id", chemicalHandler.DeleteChemical)
			}

			wasteTypesGroup := businessRoutes.Group("/waste-types")
			{
				wasteTypesGroup.GET("/", wasteHandler.GetAllWasteTypes)
				wasteTypesGroup.POST("/", wasteHandler.CreateWasteType)
				wasteTypesGroup.PUT("/:id", wasteHandler.UpdateWasteType)
				wasteTypesGroup.DELETE("/:id", wasteHandler.DeleteWasteType)
			}

			wasteLogsGroup := businessRoutes.Group("/waste-logs")
			{
				wasteLogsGroup.GET("/", wasteHandler.GetAllWasteLogs)
				wasteLogsGroup.POST("/", wasteHandler.CreateWasteLog)
				wasteLogsGroup.DELETE("/:id", wasteHandler.DeleteWasteLog)
			}

			permitsGroup := businessRoutes.Group("/permits")
			{
				permitsGroup.GET("/", permitHandler.GetAllPermits)
				permitsGroup.POST("/", permitHandler.CreatePermit)
				permitsGroup.PUT("/:id", permitHandler.UpdatePermit)
				permitsGroup.DELETE("/:id", permitHandler.DeletePermit)
			}

			auditsGroup := businessRoutes.Group("/audits")
			{
				auditsGroup.GET("/", auditHandler.GetAllAudits)
				auditsGroup.POST("/", auditHandler.CreateAudit)
				auditsGroup.PUT("/:id", auditHandler.UpdateAudit)
				auditsGroup.DELETE("/:id", auditHandler.DeleteAudit)
			}

			capasGroup := businessRoutes.Group("/capas")
			{
				capasGroup.GET("/", auditHandler.GetAllCAPAs)
				capasGroup.POST("/", auditHandler.CreateCAPA)
				capasGroup.PUT("/:id", auditHandler.UpdateCAPA)
				capasGroup.DELETE("/:id", auditHandler.DeleteCAPA)
			}

			contractorsGroup := businessRoutes.Group("/contractors")
			{
				contractorsGroup.GET("/", contractorHandler.GetAllContractors)
				contractorsGroup.POST("/", contractorHandler.CreateContractor)
				contractorsGroup.PUT("/:id", contractorHandler.UpdateContractor)
				contractorsGroup.DELETE("/:id", contractorHandler.DeleteContractor)
				contractorsGroup.GET("/:id/documents", contractorHandler.GetDocuments)
				contractorsGroup.POST("/:id/documents", contractorHandler.AddDocument)
				contractorsGroup.DELETE("/:id/documents/:docID", contractorHandler.DeleteDocument)
			}

			notificationsGroup := businessRoutes.Group("/notifications")
			{
				notificationsGroup.GET("/", notificationHandler.GetNotifications)
				notificationsGroup.POST("/:id/read", notificationHandler.MarkAsRead)
				notificationsGroup.POST("/read-all", notificationHandler.MarkAllAsRead)
			}
		}
	}

	return router
}
