package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"regexp"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/fleetworks/fleet-maintenance-api/api"
	"github.com/fleetworks/fleet-maintenance-api/config"
	"github.com/fleetworks/fleet-maintenance-api/databases"
	"github.com/fleetworks/fleet-maintenance-api/models"
	"github.com/fleetworks/fleet-maintenance-api/records"
	"github.com/fleetworks/fleet-maintenance-api/sheets"
	"github.com/fleetworks/fleet-maintenance-api/sheetsync"
)

// SheetReader reads all rows from the external tabular store.
type SheetReader interface {
	ReadRows(ctx context.Context) ([]map[string]string, error)
}

// Maintenance exported for testing purposes
type Maintenance struct {
	DB       databases.MaintenanceDatabase
	Syncer   *sheetsync.Syncer
	Sheets   SheetReader
	Vehicles []string
}

// VehiclesHandler returns the configured vehicle identifiers
func (m Maintenance) VehiclesHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	vehicles := m.Vehicles
	if vehicles == nil {
		vehicles = []string{}
	}
	b, err := json.Marshal(models.VehiclesResponse{Vehicles: vehicles})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// SubmitHandler accepts one inspection submission: assemble the record,
// best-effort mirror it to the sheet, then persist it. A sync failure is
// logged and swallowed; only a persistence failure fails the request.
func (m Maintenance) SubmitHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := api.UserFromContext(r.Context())
	if !ok {
		config.ErrorStatus("missing verified user", http.StatusUnauthorized, w, nil)
		return
	}

	var req models.MaintenanceSubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	rec, bundle, err := records.Assemble(req, user)
	if err != nil {
		config.ErrorStatus("failed to assemble record", http.StatusBadRequest, w, err)
		return
	}

	if m.Syncer != nil {
		if err := m.Syncer.Sync(r.Context(), &rec, bundle); err != nil {
			zap.S().Warnw("sheet sync failed, persisting unsynced record",
				"record_id", rec.RecordID,
				"error", err,
			)
		}
	}

	if _, err := m.DB.InsertOne(r.Context(), rec); err != nil {
		config.ErrorStatus("failed to persist maintenance log", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(models.MaintenanceSubmitResponse{
		Success:  true,
		Message:  "Log submitted",
		RecordID: rec.RecordID,
	})
}

// LogsHandler returns all maintenance logs, optionally filtered by a
// case-insensitive vehicle-number substring, newest first.
func (m Maintenance) LogsHandler(w http.ResponseWriter, r *http.Request) {
	vehicle := r.URL.Query().Get("vehicle")

	logs, err := m.fetchLogs(r.Context(), vehicle)
	if err != nil {
		config.ErrorStatus("failed to fetch logs", http.StatusInternalServerError, w, err)
		return
	}

	b, err := json.Marshal(models.MaintenanceLogsResponse{Logs: logs})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// LogByIdentifierHandler resolves one identifier: an exact record id yields
// a single record, otherwise the identifier is treated as a vehicle-number
// substring and every match is returned as a list.
func (m Maintenance) LogByIdentifierHandler(w http.ResponseWriter, r *http.Request) {
	identifier := mux.Vars(r)["identifier"]

	zap.S().Debugf("identifier: %v", identifier)

	if m.Sheets != nil {
		m.lookupFromSheets(w, r, identifier)
		return
	}

	rec, err := m.DB.FindOne(r.Context(), bson.M{"record_id": identifier})
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		config.ErrorStatus("failed to fetch log", http.StatusInternalServerError, w, err)
		return
	}
	if err == nil && rec != nil {
		b, err := json.Marshal(rec)
		if err != nil {
			config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write(b)
		return
	}

	matches, err := m.DB.Find(r.Context(), vehicleFilter(identifier), newestFirst())
	if err != nil {
		config.ErrorStatus("failed to fetch logs", http.StatusInternalServerError, w, err)
		return
	}
	if len(matches) == 0 {
		config.ErrorStatus("record not found", http.StatusNotFound, w, nil)
		return
	}

	b, err := json.Marshal(models.MaintenanceLogsResponse{Logs: matches})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

func (m Maintenance) lookupFromSheets(w http.ResponseWriter, r *http.Request, identifier string) {
	logs, err := m.sheetRecords(r.Context())
	if err != nil {
		config.ErrorStatus("failed to fetch logs", http.StatusInternalServerError, w, err)
		return
	}

	result := records.Lookup(logs, identifier)
	switch {
	case result.Exact != nil:
		b, err := json.Marshal(result.Exact)
		if err != nil {
			config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write(b)
	case len(result.Matches) > 0:
		b, err := json.Marshal(models.MaintenanceLogsResponse{Logs: result.Matches})
		if err != nil {
			config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write(b)
	default:
		config.ErrorStatus("record not found", http.StatusNotFound, w, nil)
	}
}

// fetchLogs pulls records from the sheet when sheet sync is the active
// source, otherwise from mongo, applying the vehicle filter either way.
func (m Maintenance) fetchLogs(ctx context.Context, vehicle string) ([]models.MaintenanceRecord, error) {
	if m.Sheets != nil {
		logs, err := m.sheetRecords(ctx)
		if err != nil {
			return nil, err
		}
		logs = records.FilterByVehicle(logs, vehicle)
		if logs == nil {
			logs = []models.MaintenanceRecord{}
		}
		return logs, nil
	}

	filter := bson.M{}
	if vehicle != "" {
		filter = vehicleFilter(vehicle)
	}
	logs, err := m.DB.Find(ctx, filter, newestFirst())
	if err != nil {
		return nil, err
	}
	if len(logs) == 0 {
		logs = []models.MaintenanceRecord{}
	}
	return logs, nil
}

// sheetRecords reads every sheet row and rebuilds canonical records,
// newest first.
func (m Maintenance) sheetRecords(ctx context.Context) ([]models.MaintenanceRecord, error) {
	rows, err := m.Sheets.ReadRows(ctx)
	if err != nil {
		return nil, err
	}
	logs := make([]models.MaintenanceRecord, 0, len(rows))
	for _, row := range rows {
		logs = append(logs, sheets.RecordFromRow(row).Record)
	}
	records.SortNewestFirst(logs)
	return logs, nil
}

// vehicleFilter is the mongo rendition of the case-insensitive substring
// filter on the vehicle number.
func vehicleFilter(vehicle string) bson.M {
	return bson.M{"vehicle_number": primitive.Regex{
		Pattern: regexp.QuoteMeta(vehicle),
		Options: "i",
	}}
}

func newestFirst() *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
}
