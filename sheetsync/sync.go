// Package sheetsync mirrors assembled maintenance records to the external
// spreadsheet. The mirror is best effort: nothing in here may fail the
// submission that triggered it.
package sheetsync

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/fleetworks/fleet-maintenance-api/models"
	"github.com/fleetworks/fleet-maintenance-api/sheets"
)

// MediaUploader uploads one base64 photo payload and returns its link.
type MediaUploader interface {
	UploadBase64(ctx context.Context, payload, name string) (string, error)
}

// RowAppender appends one row to the external tabular store.
type RowAppender interface {
	AppendRow(ctx context.Context, row []interface{}) error
}

// Syncer runs the media uploads and the row append for one record.
type Syncer struct {
	Uploader MediaUploader
	Appender RowAppender
}

// New returns a Syncer over the given collaborators.
func New(uploader MediaUploader, appender RowAppender) *Syncer {
	return &Syncer{Uploader: uploader, Appender: appender}
}

// Sync uploads every photo payload in the bundle, builds the sheet row and
// appends it. On success the resolved photo links are written back onto rec
// and rec.SyncedToSheets flips to true. On any failure rec is left untouched
// and the error is returned for logging only; callers persist regardless.
//
// Uploads run concurrently, one goroutine per payload, each failure degrading
// that item to no-link. The row is appended only after every upload resolved,
// since the row needs all link slots at once.
func (s *Syncer) Sync(ctx context.Context, rec *models.MaintenanceRecord, bundle models.MediaBundle) error {
	if s.Appender == nil {
		return fmt.Errorf("no row appender configured")
	}

	synced := *rec
	synced.PrimeTyres = append([]models.TyreEntry(nil), rec.PrimeTyres...)
	synced.TrailerTyres = append([]models.TyreEntry(nil), rec.TrailerTyres...)
	synced.VehicleImages = append([]models.ImageEntry(nil), rec.VehicleImages...)

	var wg sync.WaitGroup
	upload := func(payload, name string, dst *string) {
		if payload == "" || s.Uploader == nil {
			return
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			link, err := s.Uploader.UploadBase64(ctx, payload, name)
			if err != nil {
				zap.S().Warnw("photo upload failed, continuing without link",
					"name", name,
					"error", err,
				)
				return
			}
			*dst = link
		}()
	}

	upload(bundle.Battery1, fmt.Sprintf("battery1_%s_%s", synced.VehicleNumber, synced.RecordID), &synced.Battery1.PhotoLink)
	upload(bundle.Battery2, fmt.Sprintf("battery2_%s_%s", synced.VehicleNumber, synced.RecordID), &synced.Battery2.PhotoLink)
	upload(bundle.Odometer, fmt.Sprintf("odometer_%s_%s", synced.VehicleNumber, synced.RecordID), &synced.Odometer.PhotoLink)

	for i := range synced.PrimeTyres {
		if i < len(bundle.PrimeTyres) {
			name := fmt.Sprintf("prime_%s_%s_%s", synced.VehicleNumber, synced.PrimeTyres[i].Position, synced.RecordID)
			upload(bundle.PrimeTyres[i], name, &synced.PrimeTyres[i].PhotoLink)
		}
	}
	for i := range synced.TrailerTyres {
		if i < len(bundle.TrailerTyres) {
			name := fmt.Sprintf("trailer_%s_%s_%s", synced.VehicleNumber, synced.TrailerTyres[i].Position, synced.RecordID)
			upload(bundle.TrailerTyres[i], name, &synced.TrailerTyres[i].PhotoLink)
		}
	}
	for i := range synced.VehicleImages {
		if i < len(bundle.VehicleImages) {
			name := fmt.Sprintf("vehicle_%s_%s_%s", synced.VehicleNumber, synced.VehicleImages[i].Position, synced.RecordID)
			upload(bundle.VehicleImages[i], name, &synced.VehicleImages[i].PhotoLink)
		}
	}

	wg.Wait()

	if err := s.Appender.AppendRow(ctx, sheets.BuildRow(synced)); err != nil {
		return fmt.Errorf("failed to append sheet row: %w", err)
	}

	synced.SyncedToSheets = true
	*rec = synced
	return nil
}
