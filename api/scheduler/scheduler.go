// Package scheduler runs the periodic sheet backfill for records whose
// sync attempt failed at submission time.
package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/fleetworks/fleet-maintenance-api/databases"
	"github.com/fleetworks/fleet-maintenance-api/sheets"
	"github.com/fleetworks/fleet-maintenance-api/sheetsync"
)

// Scheduler handles periodic background jobs for the sheet mirror
type Scheduler struct {
	cron     *cron.Cron
	MDB      databases.MaintenanceDatabase
	Appender sheetsync.RowAppender
}

// New creates a new scheduler instance
func New(mdb databases.MaintenanceDatabase, appender sheetsync.RowAppender) *Scheduler {
	return &Scheduler{
		cron:     cron.New(cron.WithLocation(time.UTC)),
		MDB:      mdb,
		Appender: appender,
	}
}

// Start begins the scheduler with all registered jobs
func (s *Scheduler) Start() {
	// Backfill unsynced records hourly
	_, err := s.cron.AddFunc("0 * * * *", s.BackfillUnsynced)
	if err != nil {
		zap.S().Errorw("failed to register backfill job", "error", err)
	}

	s.cron.Start()
	zap.S().Info("sheet backfill scheduler started")
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	zap.S().Info("sheet backfill scheduler stopped")
}

// BackfillUnsynced appends a sheet row for every persisted record that never
// made it to the sheet, then flips its synced flag. Photo payloads are long
// gone by the time this runs, so rows keep whatever links the record has.
func (s *Scheduler) BackfillUnsynced() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	recs, err := s.MDB.Find(ctx, bson.M{"synced_to_sheets": false})
	if err != nil {
		zap.S().Errorw("failed to list unsynced records", "error", err)
		return
	}

	for _, rec := range recs {
		if err := s.Appender.AppendRow(ctx, sheets.BuildRow(rec)); err != nil {
			zap.S().Warnw("backfill append failed, will retry next run",
				"record_id", rec.RecordID,
				"error", err,
			)
			continue
		}
		err := s.MDB.UpdateOne(ctx,
			bson.M{"record_id": rec.RecordID},
			bson.M{"$set": bson.M{"synced_to_sheets": true}},
		)
		if err != nil {
			zap.S().Errorw("failed to mark record synced",
				"record_id", rec.RecordID,
				"error", err,
			)
		}
	}
}
