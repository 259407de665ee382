package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"parkinglot/internal/api"
	"parkinglot/internal/auth"
	"parkinglot/internal/config"
	"parkinglot/internal/logger"
	"parkinglot/internal/pricing"
	"parkinglot/internal/repository/postgres"
	"parkinglot/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	if _, err := logger.Init(cfg.LogLevel, cfg.LogFormat); err != nil {
		panic(err)
	}
	defer logger.Sync()

	log := logger.L()

	db, err := postgres.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("connecting to database", zap.Error(err))
	}
	defer db.Close()

	floorRepo := postgres.NewFloorRepository(db)
	slotRepo := postgres.NewSlotRepository(db)
	reservationRepo := postgres.NewReservationRepository(db)
	jobRepo := postgres.NewJobRepository(db)
	adminRepo := postgres.NewAdminRepository(db)

	detector := service.NewConflictDetector(reservationRepo)
	notifier := service.NewNotifyService(cfg)

	reservationSvc := service.NewReservationService(slotRepo, reservationRepo, detector, pricing.DefaultRates(), notifier)
	availabilitySvc := service.NewAvailabilityService(slotRepo, detector)
	floorSvc := service.NewFloorService(floorRepo, slotRepo)
	slotSvc := service.NewSlotService(slotRepo, floorRepo)
	jobSvc := service.NewJobService(jobRepo)
	authSvc := service.NewAdminAuthService(adminRepo, cfg.JWTSecret)

	reservationHandler := api.NewReservationHandler(reservationSvc)
	availabilityHandler := api.NewAvailabilityHandler(availabilitySvc)
	floorHandler := api.NewFloorHandler(floorSvc)
	slotHandler := api.NewSlotHandler(slotSvc)
	authHandler := api.NewAdminAuthHandler(authSvc)

	r := mux.NewRouter()

	// Public endpoints
	r.HandleFunc("/api/availability", availabilityHandler.CheckAvailability).Methods("POST")
	r.HandleFunc("/api/reservations", reservationHandler.Create).Methods("POST")
	r.HandleFunc("/api/reservations", reservationHandler.List).Methods("GET")
	r.HandleFunc("/api/reservations/{code}", reservationHandler.Get).Methods("GET")
	r.HandleFunc("/api/reservations/{code}", reservationHandler.Cancel).Methods("DELETE")
	r.HandleFunc("/api/floors", floorHandler.List).Methods("GET")
	r.HandleFunc("/api/floors/{id}", floorHandler.Get).Methods("GET")
	r.HandleFunc("/api/floors/{id}/slots", slotHandler.ListByFloor).Methods("GET")
	r.HandleFunc("/api/slots", slotHandler.List).Methods("GET")
	r.HandleFunc("/api/slots/{id}", slotHandler.Get).Methods("GET")

	r.HandleFunc("/admin/login", authHandler.Login).Methods("POST")

	// Admin endpoints (protected)
	admin := r.PathPrefix("/admin").Subrouter()
	admin.Use(auth.AdminAuthMiddleware(cfg.JWTSecret))
	admin.HandleFunc("/register", authHandler.Register).Methods("POST")
	admin.HandleFunc("/floors", floorHandler.Create).Methods("POST")
	admin.HandleFunc("/slots", slotHandler.Create).Methods("POST")
	admin.HandleFunc("/slots/{id}/status", slotHandler.UpdateStatus).Methods("PUT")
	admin.HandleFunc("/slots/{id}/reservations", reservationHandler.ListBySlot).Methods("GET")

	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.StatusSyncSpec, jobSvc.Run); err != nil {
		log.Fatal("scheduling status sync job", zap.Error(err), zap.String("spec", cfg.StatusSyncSpec))
	}
	scheduler.Start()
	defer scheduler.Stop()

	handler := handlers.RecoveryHandler()(handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)(r))

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("server listening", zap.String("addr", cfg.HTTPAddr), zap.String("env", cfg.AppEnv))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
}
