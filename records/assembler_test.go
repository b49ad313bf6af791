package records

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetworks/fleet-maintenance-api/models"
)

var submitter = models.UserInfo{UserID: "user_1", Email: "driver@fleet.example", FullName: "Asha Rao"}

func TestAssembleRequiresVehicleNumber(t *testing.T) {
	_, _, err := Assemble(models.MaintenanceSubmitRequest{}, submitter)
	assert.Error(t, err)
}

func TestAssembleBuildsRecord(t *testing.T) {
	req := models.MaintenanceSubmitRequest{
		VehicleNumber:  "HR55AZ3114",
		Battery1Number: "B100",
		Battery2Number: "B200",
		OdometerValue:  "123456",
		PrimeTyres: []models.TyreInput{
			{Position: "LF", Number: "TY100"},
		},
	}

	rec, bundle, err := Assemble(req, submitter)
	require.NoError(t, err)

	assert.NotEmpty(t, rec.RecordID)
	assert.Equal(t, "HR55AZ3114", rec.VehicleNumber)
	assert.Equal(t, "B100", rec.Battery1.Number)
	assert.Equal(t, "B200", rec.Battery2.Number)
	assert.Equal(t, "123456", rec.Odometer.Value)
	assert.Equal(t, []models.TyreEntry{{Position: "LF", Number: "TY100"}}, rec.PrimeTyres)
	assert.Empty(t, rec.TrailerTyres)
	assert.Empty(t, rec.VehicleImages)
	assert.Equal(t, submitter, rec.CreatedBy)
	assert.False(t, rec.SyncedToSheets)
	assert.False(t, bundle.HasPayloads())

	// photo links stay unresolved until sync
	assert.Empty(t, rec.Battery1.PhotoLink)
	assert.Empty(t, rec.PrimeTyres[0].PhotoLink)

	ts, err := time.Parse(time.RFC3339, rec.Timestamp)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().UTC(), ts, time.Minute)
}

func TestAssembleGeneratesUniqueIDs(t *testing.T) {
	req := models.MaintenanceSubmitRequest{VehicleNumber: "HR55AZ3114"}

	first, _, err := Assemble(req, submitter)
	require.NoError(t, err)
	second, _, err := Assemble(req, submitter)
	require.NoError(t, err)

	assert.NotEqual(t, first.RecordID, second.RecordID)
}

func TestAssembleSplitsMediaFromRecord(t *testing.T) {
	req := models.MaintenanceSubmitRequest{
		VehicleNumber:       "HR55AZ3114",
		Battery1PhotoBase64: "aGVsbG8=",
		PrimeTyres: []models.TyreInput{
			{Position: "LF", Number: "TY100", PhotoBase64: "d29ybGQ="},
			{Position: "RF", Number: "TY101"},
		},
		VehicleImages: []models.ImageInput{
			{Position: "Front", PhotoBase64: "Zm9v"},
		},
	}

	rec, bundle, err := Assemble(req, submitter)
	require.NoError(t, err)

	assert.Equal(t, "aGVsbG8=", bundle.Battery1)
	assert.Equal(t, []string{"d29ybGQ=", ""}, bundle.PrimeTyres)
	assert.Equal(t, []string{"Zm9v"}, bundle.VehicleImages)
	assert.True(t, bundle.HasPayloads())

	// the record itself carries positions and numbers only
	assert.Equal(t, []models.TyreEntry{
		{Position: "LF", Number: "TY100"},
		{Position: "RF", Number: "TY101"},
	}, rec.PrimeTyres)
	assert.Equal(t, []models.ImageEntry{{Position: "Front"}}, rec.VehicleImages)
}
