package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/fleetworks/fleet-maintenance-api/api"
	"github.com/fleetworks/fleet-maintenance-api/api/scheduler"
	"github.com/fleetworks/fleet-maintenance-api/config"
	"github.com/fleetworks/fleet-maintenance-api/databases"
	"github.com/fleetworks/fleet-maintenance-api/media"
	"github.com/fleetworks/fleet-maintenance-api/models"
	"github.com/fleetworks/fleet-maintenance-api/sheets"
	"github.com/fleetworks/fleet-maintenance-api/sheetsync"
)

// App stores the router and db connection, so it can be reused
type App struct {
	Router    *mux.Router
	Config    config.Config
	dbHelper  databases.DatabaseHelper
	auth      *api.Auth
	syncer    *sheetsync.Syncer
	sheets    *sheets.Client
	scheduler *scheduler.Scheduler
}

// New creates a new mux router and all the routes
func (a *App) New() *mux.Router {
	if a.auth == nil {
		a.auth = api.NewAuth(a.Config.ClerkDomain, a.Config.ClerkSecretKey)
	}

	r := mux.NewRouter()

	mdb := databases.NewMaintenanceDatabase(a.dbHelper)
	m := Maintenance{DB: mdb, Syncer: a.syncer, Vehicles: a.Config.Vehicles}
	if a.sheets != nil {
		m.Sheets = a.sheets
	}

	// healthchex
	r.HandleFunc("/health", healthCheckHandler)

	apiCreate := r.PathPrefix("/api/v1").Subrouter()

	apiCreate.Handle("/vehicles", http.HandlerFunc(m.VehiclesHandler)).Methods("GET")
	apiCreate.Handle("/maintenance/submit", a.auth.Middleware(http.HandlerFunc(m.SubmitHandler))).Methods("POST")
	apiCreate.Handle("/maintenance/logs", a.auth.Middleware(http.HandlerFunc(m.LogsHandler))).Methods("GET")
	apiCreate.Handle("/maintenance/logs/export", a.auth.Middleware(http.HandlerFunc(m.ExportLogsHandler))).Methods("GET")
	apiCreate.Handle("/maintenance/logs/{identifier}", a.auth.Middleware(http.HandlerFunc(m.LogByIdentifierHandler))).Methods("GET")

	return r
}

// Initialize is invoked by main to connect with the database and create a router
func (a *App) Initialize() error {

	client, err := databases.NewClient(&a.Config)
	if err != nil {
		// if we fail to create a new database client, then kill the pod
		zap.S().With(err).Error("failed to create new client")
		return err
	}

	a.dbHelper = databases.NewDatabase(&a.Config, client)
	err = client.Connect()
	if err != nil {
		// if we fail to connect to the database, then kill the pod
		zap.S().With(err).Error("failed to connect to database")
		return err
	}
	zap.S().Info("fleet-maintenance-api has connected to the database")

	a.auth = api.NewAuth(a.Config.ClerkDomain, a.Config.ClerkSecretKey)

	if a.Config.UseGoogleSheets {
		if err := a.initializeSheets(); err != nil {
			// sheet sync is best effort, a broken sync config must not keep
			// the service from serving submissions
			zap.S().With(err).Warn("sheet sync disabled")
		}
	}

	// initialize api router
	a.initializeRoutes()
	return nil

}

// initializeSheets wires the sheets client, the media uploader and the
// backfill scheduler. Called only when USE_GOOGLE_SHEETS is true.
func (a *App) initializeSheets() error {
	keyJSON, err := os.ReadFile(a.Config.SheetKeyPath)
	if err != nil {
		return err
	}
	sheetClient, err := sheets.NewClient(keyJSON, a.Config.SpreadsheetID)
	if err != nil {
		return err
	}
	a.sheets = sheetClient

	var uploader sheetsync.MediaUploader
	if a.Config.CloudinaryCloud != "" {
		up, err := media.NewUploader(a.Config.CloudinaryCloud, a.Config.CloudinaryKey, a.Config.CloudinarySecret, a.Config.CloudinaryFolder)
		if err != nil {
			return err
		}
		uploader = up
	}
	a.syncer = sheetsync.New(uploader, sheetClient)

	a.scheduler = scheduler.New(databases.NewMaintenanceDatabase(a.dbHelper), sheetClient)
	a.scheduler.Start()
	return nil
}

func (a *App) initializeRoutes() {
	a.Router = a.New()
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	b, _ := json.Marshal(models.HealthCheckResponse{
		Alive: true,
	})
	_, _ = io.WriteString(w, string(b))
}
