package records

import (
	"sort"
	"strings"

	"github.com/fleetworks/fleet-maintenance-api/models"
)

// FilterByVehicle keeps the records whose vehicle number contains the given
// substring, case-insensitively. An empty filter keeps everything.
func FilterByVehicle(recs []models.MaintenanceRecord, vehicle string) []models.MaintenanceRecord {
	if vehicle == "" {
		return recs
	}
	needle := strings.ToLower(vehicle)
	out := []models.MaintenanceRecord{}
	for _, r := range recs {
		if strings.Contains(strings.ToLower(r.VehicleNumber), needle) {
			out = append(out, r)
		}
	}
	return out
}

// SortNewestFirst orders records by timestamp descending. RFC 3339
// timestamps sort correctly as strings.
func SortNewestFirst(recs []models.MaintenanceRecord) {
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Timestamp > recs[j].Timestamp
	})
}

// LookupResult is the outcome of resolving an identifier against a set of
// records. An exact record-id hit yields a single record; otherwise the
// identifier is treated as a vehicle-number substring and may match several.
type LookupResult struct {
	Exact   *models.MaintenanceRecord
	Matches []models.MaintenanceRecord
}

// Found reports whether either search produced anything.
func (l LookupResult) Found() bool {
	return l.Exact != nil || len(l.Matches) > 0
}

// Lookup resolves an identifier: exact record-id match first, then the
// case-insensitive vehicle-number substring fallback.
func Lookup(recs []models.MaintenanceRecord, identifier string) LookupResult {
	for i := range recs {
		if strings.TrimSpace(recs[i].RecordID) == identifier {
			return LookupResult{Exact: &recs[i]}
		}
	}
	return LookupResult{Matches: FilterByVehicle(recs, identifier)}
}
