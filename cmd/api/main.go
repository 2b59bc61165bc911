package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"appointment-manager/backend/internal/config"
	"appointment-manager/backend/internal/domain/appointment"
	"appointment-manager/backend/internal/domain/availability"
	"appointment-manager/backend/internal/domain/identity"
	"appointment-manager/backend/internal/domain/messaging"
	"appointment-manager/backend/internal/domain/teacherstatus"
	"appointment-manager/backend/internal/firebase"
	"appointment-manager/backend/internal/guard"
	"appointment-manager/backend/internal/handlers"
	apihttp "appointment-manager/backend/internal/http"
)

func main() {
	ctx := context.Background()
	cfg := config.Load()

	clients, err := firebase.NewClients(ctx, cfg)
	if err != nil {
		log.Fatalf("firebase clients init failed: %v", err)
	}
	defer clients.Firestore.Close()

	// Repositories
	identityRepo := identity.NewRepo(clients.Firestore)
	availRepo := availability.NewRepo(clients.Firestore)
	statusRepo := teacherstatus.NewRepo(clients.Firestore)
	appointmentRepo := appointment.NewRepo(clients.Firestore)
	messagingRepo := messaging.NewRepo(clients.Firestore)

	// Services
	identitySvc := identity.NewService(identityRepo, availRepo, statusRepo)
	availSvc := availability.NewService(availRepo)
	statusSvc := teacherstatus.NewService(statusRepo)
	appointmentSvc := appointment.NewService(appointmentRepo, identityRepo, availRepo, statusRepo)
	messagingSvc := messaging.NewService(messagingRepo, identityRepo)

	roleGuard := guard.New(guard.DirectoryFunc(identitySvc.Role))

	router := apihttp.NewRouter(apihttp.RouterDeps{
		Cfg:            cfg,
		AuthClient:     clients.Auth,
		Guard:          roleGuard,
		IdentitySvc:    identitySvc,
		AvailSvc:       availSvc,
		StatusSvc:      statusSvc,
		AppointmentSvc: appointmentSvc,
		MessagingSvc:   messagingSvc,
		Uploads:        handlers.NewUploads(cfg, clients),
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 20 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// graceful shutdown
	go func() {
		log.Printf("API listening on :%s (project=%s)", cfg.Port, cfg.ProjectID)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen failed: %v", err)
		}
	}()

	stop := make(chan os.Signal, 2)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	log.Println("shutting down...")
	_ = srv.Shutdown(ctxShutdown)
}
