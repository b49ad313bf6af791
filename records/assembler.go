// Package records builds canonical maintenance records from validated
// submissions and applies the lookup and filter semantics shared by both
// record sources.
package records

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/fleetworks/fleet-maintenance-api/models"
)

var validate = validator.New()

// Assemble turns a submit request plus the verified submitter into a fresh
// record and the media bundle of raw photo payloads. Pure assembly: the only
// generated state is the record id and timestamp. Photo links stay empty
// until the sync step resolves uploads, and the raw payloads never touch the
// record itself.
func Assemble(req models.MaintenanceSubmitRequest, user models.UserInfo) (models.MaintenanceRecord, models.MediaBundle, error) {
	if err := validate.Struct(req); err != nil {
		return models.MaintenanceRecord{}, models.MediaBundle{}, fmt.Errorf("invalid submission: %w", err)
	}

	rec := models.MaintenanceRecord{
		RecordID:      uuid.New().String(),
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
		VehicleNumber: req.VehicleNumber,
		Battery1:      models.BatteryEntry{Number: req.Battery1Number},
		Battery2:      models.BatteryEntry{Number: req.Battery2Number},
		Odometer:      models.OdometerEntry{Value: req.OdometerValue},
		PrimeTyres:    make([]models.TyreEntry, 0, len(req.PrimeTyres)),
		TrailerTyres:  make([]models.TyreEntry, 0, len(req.TrailerTyres)),
		VehicleImages: make([]models.ImageEntry, 0, len(req.VehicleImages)),
		CreatedBy:     user,
	}

	bundle := models.MediaBundle{
		Battery1:      req.Battery1PhotoBase64,
		Battery2:      req.Battery2PhotoBase64,
		Odometer:      req.OdometerPhotoBase64,
		PrimeTyres:    make([]string, 0, len(req.PrimeTyres)),
		TrailerTyres:  make([]string, 0, len(req.TrailerTyres)),
		VehicleImages: make([]string, 0, len(req.VehicleImages)),
	}

	for _, t := range req.PrimeTyres {
		rec.PrimeTyres = append(rec.PrimeTyres, models.TyreEntry{Position: t.Position, Number: t.Number})
		bundle.PrimeTyres = append(bundle.PrimeTyres, t.PhotoBase64)
	}
	for _, t := range req.TrailerTyres {
		rec.TrailerTyres = append(rec.TrailerTyres, models.TyreEntry{Position: t.Position, Number: t.Number})
		bundle.TrailerTyres = append(bundle.TrailerTyres, t.PhotoBase64)
	}
	for _, im := range req.VehicleImages {
		rec.VehicleImages = append(rec.VehicleImages, models.ImageEntry{Position: im.Position})
		bundle.VehicleImages = append(bundle.VehicleImages, im.PhotoBase64)
	}

	return rec, bundle, nil
}
