package main

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/leasingsys/leasing-service/internal/app"
	"github.com/leasingsys/leasing-service/internal/config"
	"github.com/leasingsys/leasing-service/internal/controllers"
	"github.com/leasingsys/leasing-service/internal/middleware"
	"github.com/leasingsys/leasing-service/internal/routes"
	"github.com/leasingsys/leasing-service/internal/utils"
)

func main() {
	utils.InitLogger(config.AppName)

	// 1) Config
	cfg := config.LoadConfig()

	// 2) Core application (store, services)
	application, err := app.NewApp(cfg)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to initialize app")
	}
	defer application.Close()

	// 3) Controllers
	healthCtrl := controllers.NewHealthController(application.LeasingService)
	leasingCtrl := controllers.NewLeasingController(application.LeasingService)

	// 4) Router
	router := mux.NewRouter()
	router.HandleFunc(routes.Health, healthCtrl.HealthCheckHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.LeasingCollection, leasingCtrl.ListLeasings).Methods(http.MethodGet)
	router.HandleFunc(routes.LeasingCollection, leasingCtrl.CreateLeasing).Methods(http.MethodPost)
	router.HandleFunc(routes.LeasingByID, leasingCtrl.GetLeasing).Methods(http.MethodGet)
	router.HandleFunc(routes.LeasingByID, leasingCtrl.DeleteLeasing).Methods(http.MethodDelete)
	router.HandleFunc(routes.LeasingByID, leasingCtrl.PatchLeasing).Methods(http.MethodPatch)

	// 5) CORS
	c := cors.New(cors.Options{
		AllowedOrigins: []string{cfg.AppUrl},
		AllowedMethods: []string{"GET", "POST", "DELETE", "PATCH", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Accept"},
	})

	handler := c.Handler(middleware.RequestID(router))

	utils.Logger.Infof("Starting %s on :%s", cfg.AppName, cfg.AppPort)
	if err := http.ListenAndServe(":"+cfg.AppPort, handler); err != nil {
		utils.Logger.Fatal("Server error:", err)
	}
}
