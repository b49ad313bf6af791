package records

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetworks/fleet-maintenance-api/models"
)

func fixtureRecords() []models.MaintenanceRecord {
	return []models.MaintenanceRecord{
		{RecordID: "A1", VehicleNumber: "HR01", Timestamp: "2026-08-27T10:00:00Z"},
		{RecordID: "A2", VehicleNumber: "HR02", Timestamp: "2026-08-28T10:00:00Z"},
	}
}

func TestLookupExactID(t *testing.T) {
	result := Lookup(fixtureRecords(), "A1")

	require.NotNil(t, result.Exact)
	assert.True(t, result.Found())
	assert.Equal(t, "A1", result.Exact.RecordID)
	assert.Empty(t, result.Matches)
}

func TestLookupVehicleSubstringFallback(t *testing.T) {
	result := Lookup(fixtureRecords(), "hr0")

	assert.Nil(t, result.Exact)
	assert.True(t, result.Found())
	require.Len(t, result.Matches, 2)
	assert.Equal(t, "A1", result.Matches[0].RecordID)
	assert.Equal(t, "A2", result.Matches[1].RecordID)
}

func TestLookupNotFound(t *testing.T) {
	result := Lookup(fixtureRecords(), "ZZZ")
	assert.False(t, result.Found())
}

func TestFilterByVehicleCaseInsensitive(t *testing.T) {
	recs := []models.MaintenanceRecord{
		{RecordID: "A1", VehicleNumber: "HR55AZ3114"},
		{RecordID: "A2", VehicleNumber: "NL01AE4999"},
	}

	got := FilterByVehicle(recs, "hr55")
	require.Len(t, got, 1)
	assert.Equal(t, "A1", got[0].RecordID)
}

func TestFilterByVehicleEmptyFilterKeepsAll(t *testing.T) {
	recs := fixtureRecords()
	assert.Equal(t, recs, FilterByVehicle(recs, ""))
}

func TestFilterByVehicleNoMatch(t *testing.T) {
	assert.Empty(t, FilterByVehicle(fixtureRecords(), "ZZ"))
}

func TestSortNewestFirst(t *testing.T) {
	recs := fixtureRecords()
	SortNewestFirst(recs)

	assert.Equal(t, "A2", recs[0].RecordID)
	assert.Equal(t, "A1", recs[1].RecordID)
}
