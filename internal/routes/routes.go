package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Soulinho/pandawok-project/internal/audit"
	"github.com/Soulinho/pandawok-project/internal/config"
	domainBooking "github.com/Soulinho/pandawok-project/internal/domain/booking"
	"github.com/Soulinho/pandawok-project/internal/events"
	"github.com/Soulinho/pandawok-project/internal/handlers"
	infraRepo "github.com/Soulinho/pandawok-project/internal/infra/repository"
	"github.com/Soulinho/pandawok-project/internal/locks"
	"github.com/Soulinho/pandawok-project/internal/middleware"
	ucBooking "github.com/Soulinho/pandawok-project/internal/usecase/booking"
	ucOccupancy "github.com/Soulinho/pandawok-project/internal/usecase/occupancy"
)

// Infra holds process-wide collaborators built in main. Nil fields fall back
// to in-process implementations.
type Infra struct {
	Locker   locks.Locker
	Events   *events.TableEmitter
	Notifier events.Notifier
	Audit    *audit.Dispatcher
}

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, infra Infra) {

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	if infra.Locker == nil {
		infra.Locker = locks.NewLocal(cfg.LockTimeout)
	}
	if infra.Events == nil {
		infra.Events = events.NewTableEmitter(nil)
	}
	if infra.Notifier == nil {
		infra.Notifier = events.LogNotifier{}
	}
	auditStore := audit.New(db)
	if infra.Audit == nil {
		infra.Audit = audit.NewDispatcher(auditStore)
	}

	occupancyRepo := infraRepo.NewOccupancyGormRepository(db)
	bookingRepo := infraRepo.NewBookingGormRepository(db)

	deps := ucOccupancy.Deps{
		Repo:         occupancyRepo,
		Locks:        infra.Locker,
		Audit:        infra.Audit,
		Events:       infra.Events,
		Timezone:     cfg.Timezone,
		DurationHint: cfg.DurationHint,
	}

	rules := domainBooking.Rules{
		LargeGroupThreshold: cfg.LargeGroupThreshold,
		MinLeadDays:         cfg.MinLeadDays,
		HorizonMonths:       cfg.HorizonMonths,
		Slots:               cfg.Slots,
	}

	// ======================================================
	// 🧠 USE CASES (OCCUPANCY)
	// ======================================================
	placeReservationUC := ucOccupancy.NewPlaceReservation(deps)
	updateReservationUC := ucOccupancy.NewUpdateReservation(deps)

	// ======================================================
	// 🧠 USE CASES (BOOKING INTAKE)
	// ======================================================
	submitRequestUC := ucBooking.NewSubmitRequest(
		bookingRepo,
		infra.Notifier,
		infra.Audit,
		rules,
	)
	submitRequestUC.Timezone = cfg.Timezone
	submitRequestUC.CheckEmailDomain = cfg.CheckEmailDomain

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)

	salonHandler := handlers.NewSalonHandler(
		ucOccupancy.NewListSalons(occupancyRepo),
		ucOccupancy.NewCreateSalon(deps),
		ucOccupancy.NewListTables(occupancyRepo),
		ucOccupancy.NewAddTable(deps),
	)

	tableHandler := handlers.NewTableHandler(handlers.TableUseCases{
		View:     ucOccupancy.NewGetTableView(occupancyRepo),
		Place:    placeReservationUC,
		WalkIn:   ucOccupancy.NewSeatWalkIn(deps),
		Seat:     ucOccupancy.NewSeatReservedGuest(deps),
		Move:     ucOccupancy.NewChangeTable(deps),
		Finalize: ucOccupancy.NewFinalize(deps),
		Delete:   ucOccupancy.NewDeleteReservation(deps),
		Update:   updateReservationUC,
	})

	blockHandler := handlers.NewBlockHandler(
		ucOccupancy.NewBlockTable(deps),
		ucOccupancy.NewListBlocks(occupancyRepo),
		ucOccupancy.NewRemoveBlock(deps),
	)

	reservationHandler := handlers.NewReservationHandler(
		ucOccupancy.NewGetReservation(occupancyRepo),
		updateReservationUC,
	)

	bookingHandler := handlers.NewBookingHandler(
		rules,
		cfg.Timezone,
		submitRequestUC,
		ucBooking.NewListRequests(bookingRepo),
		ucBooking.NewReviewRequest(bookingRepo, infra.Audit),
		ucBooking.NewPlaceRequest(bookingRepo, placeReservationUC, infra.Audit),
	)

	clientHandler := handlers.NewClientHandler(ucBooking.NewListClients(bookingRepo))
	auditLogsHandler := handlers.NewAuditLogsHandler(auditStore, cfg.Timezone)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🌐 PUBLIC BOOKING FORM
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/booking/slots", bookingHandler.Slots)
			publicAPI.POST("/reservations", bookingHandler.Submit)
		}

		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// 🔐 STAFF
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", authHandler.Me)
			secured.POST("/users", middleware.RequireRole(handlers.RoleAdmin), authHandler.Register)

			// ------------------------------
			// FLOOR PLAN
			// ------------------------------
			secured.GET("/salons", salonHandler.List)
			secured.POST("/salons", middleware.RequireRole(handlers.RoleAdmin), salonHandler.Create)
			secured.GET("/salons/:id/tables", salonHandler.ListTables)
			secured.POST("/salons/:id/tables", middleware.RequireRole(handlers.RoleAdmin), salonHandler.AddTable)

			// ------------------------------
			// OCCUPANCY
			// ------------------------------
			secured.GET("/tables/:id", tableHandler.View)
			secured.POST("/tables/:id/reservation", tableHandler.Place)
			secured.PATCH("/tables/:id/reservation", tableHandler.Update)
			secured.DELETE("/tables/:id/reservation", tableHandler.Delete)
			secured.POST("/tables/:id/walk-in", tableHandler.WalkIn)
			secured.POST("/tables/:id/seat", tableHandler.Seat)
			secured.POST("/tables/:id/move", tableHandler.Move)
			secured.POST("/tables/:id/finalize", tableHandler.Finalize)
			secured.GET("/tables/:id/history", auditLogsHandler.TableHistory)

			secured.GET("/tables/:id/blocks", blockHandler.List)
			secured.POST("/tables/:id/blocks", blockHandler.Create)
			secured.DELETE("/blocks/:id", blockHandler.Delete)

			secured.GET("/reservations/:id", reservationHandler.Get)
			secured.PATCH("/reservations/:id", reservationHandler.Update)

			// ------------------------------
			// BOOKING REQUESTS
			// ------------------------------
			secured.GET("/booking-requests", bookingHandler.List)
			secured.POST("/booking-requests/:id/approve", bookingHandler.Approve)
			secured.POST("/booking-requests/:id/reject", bookingHandler.Reject)
			secured.POST("/booking-requests/:id/place", bookingHandler.Place)

			secured.GET("/clients", clientHandler.List)
			secured.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
