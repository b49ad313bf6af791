package sheets

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fleetworks/fleet-maintenance-api/models"
)

func sampleRecord() models.MaintenanceRecord {
	return models.MaintenanceRecord{
		RecordID:      "rec-1",
		Timestamp:     "2026-08-28T10:00:00Z",
		VehicleNumber: "HR55AZ3114",
		Battery1:      models.BatteryEntry{Number: "B100", PhotoLink: "https://img/b1"},
		Battery2:      models.BatteryEntry{Number: "B200"},
		Odometer:      models.OdometerEntry{Value: "123456", PhotoLink: "https://img/odo"},
		PrimeTyres: []models.TyreEntry{
			{Position: "LF", Number: "TY100"},
			{Position: "RF", Number: "TY101", PhotoLink: "https://img/rf"},
		},
		TrailerTyres: []models.TyreEntry{
			{Position: "T1", Number: "TY200"},
		},
		VehicleImages: []models.ImageEntry{
			{Position: "Front", PhotoLink: "https://img/front"},
			{Position: "Rear"},
		},
		CreatedBy: models.UserInfo{UserID: "user_1", Email: "driver@fleet.example", FullName: "Asha Rao"},
	}
}

func TestBuildRowColumnOrder(t *testing.T) {
	row := BuildRow(sampleRecord())

	assert.Len(t, row, len(Headers()))
	assert.Equal(t, []interface{}{
		"rec-1",
		"2026-08-28T10:00:00Z",
		"HR55AZ3114",
		"B100",
		"https://img/b1",
		"B200",
		"",
		"123456",
		"https://img/odo",
		"LF: TY100\nRF: TY101",
		"LF: (no photo)\nRF: https://img/rf",
		"T1: TY200",
		"T1: (no photo)",
		"Front\nRear",
		"Front: https://img/front\nRear: (no photo)",
		"user_1",
		"driver@fleet.example",
		"Asha Rao",
	}, row)
}

func TestRecordFromRowRoundTrip(t *testing.T) {
	rec := sampleRecord()
	row := BuildRow(rec)

	raw := map[string]string{}
	for i, header := range Headers() {
		raw[header] = row[i].(string)
	}

	decoded := RecordFromRow(raw)

	// rows read from the sheet are synced by definition
	rec.SyncedToSheets = true
	assert.Equal(t, rec, decoded.Record)
}

func TestRecordFromRowReadableAndLinks(t *testing.T) {
	decoded := RecordFromRow(map[string]string{
		"Prime Tyres (Readable)": "LF: TY100\nRF: TY101",
		"Prime Tyre Links":       "LF: (no photo)\nRF: https://x/y",
	})

	assert.Equal(t, []models.TyreEntry{
		{Position: "LF", Number: "TY100"},
		{Position: "RF", Number: "TY101", PhotoLink: "https://x/y"},
	}, decoded.Record.PrimeTyres)
	assert.Equal(t, []models.LinkEntry{
		{Position: "LF", PhotoLink: ""},
		{Position: "RF", PhotoLink: "https://x/y"},
	}, decoded.PrimeTyreLinks)
}

func TestRecordFromRowHeaderAliases(t *testing.T) {
	decoded := RecordFromRow(map[string]string{
		"record_id":          "rec-9",
		"timestamp":          "2026-08-28T09:00:00Z",
		"vehicle_number":     "NL01AE4999",
		"Battery 1 Number":   "B1",
		"battery2_number":    "B2",
		"Battery1 Photo Link": "https://img/b1",
		"odometer_value":     "42",
		"created_by_user_id": "user_2",
		"created_by_email":   "ops@fleet.example",
		"created_by_name":    "Dev Kumar",
	})

	assert.Equal(t, "rec-9", decoded.Record.RecordID)
	assert.Equal(t, "NL01AE4999", decoded.Record.VehicleNumber)
	assert.Equal(t, "B1", decoded.Record.Battery1.Number)
	assert.Equal(t, "https://img/b1", decoded.Record.Battery1.PhotoLink)
	assert.Equal(t, "B2", decoded.Record.Battery2.Number)
	assert.Equal(t, "42", decoded.Record.Odometer.Value)
	assert.Equal(t, "user_2", decoded.Record.CreatedBy.UserID)
	assert.Equal(t, "ops@fleet.example", decoded.Record.CreatedBy.Email)
	assert.Equal(t, "Dev Kumar", decoded.Record.CreatedBy.FullName)
	assert.True(t, decoded.Record.SyncedToSheets)
}

func TestRecordFromRowCanonicalHeaderWins(t *testing.T) {
	decoded := RecordFromRow(map[string]string{
		"Battery1 Number": "canonical",
		"battery1_number": "legacy",
	})
	assert.Equal(t, "canonical", decoded.Record.Battery1.Number)
}

func TestRecordFromRowEmpty(t *testing.T) {
	decoded := RecordFromRow(map[string]string{})
	assert.Equal(t, []models.TyreEntry{}, decoded.Record.PrimeTyres)
	assert.Equal(t, []models.TyreEntry{}, decoded.Record.TrailerTyres)
	assert.Equal(t, []models.ImageEntry{}, decoded.Record.VehicleImages)
}
