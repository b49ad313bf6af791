package sheets

import (
	"github.com/fleetworks/fleet-maintenance-api/models"
)

// Canonical column headers, in the stable order rows are appended in.
const (
	ColRecordID         = "Record ID"
	ColTimestamp        = "Timestamp"
	ColVehicleNumber    = "Vehicle Number"
	ColBattery1Number   = "Battery1 Number"
	ColBattery1Link     = "Battery1 Image Link"
	ColBattery2Number   = "Battery2 Number"
	ColBattery2Link     = "Battery2 Image Link"
	ColOdometerValue    = "Odometer Value"
	ColOdometerLink     = "Odometer Image Link"
	ColPrimeReadable    = "Prime Tyres (Readable)"
	ColPrimeLinks       = "Prime Tyre Links"
	ColTrailerReadable  = "Trailer Tyres (Readable)"
	ColTrailerLinks     = "Trailer Tyre Links"
	ColVehicleReadable  = "Vehicle Images (Readable)"
	ColVehicleLinks     = "Vehicle Image Links"
	ColCreatedByUserID  = "CreatedBy_userId"
	ColCreatedByEmail   = "CreatedBy_email"
	ColCreatedByName    = "CreatedBy_name"
)

// Headers returns the canonical column headers in append order.
func Headers() []string {
	return []string{
		ColRecordID, ColTimestamp, ColVehicleNumber,
		ColBattery1Number, ColBattery1Link,
		ColBattery2Number, ColBattery2Link,
		ColOdometerValue, ColOdometerLink,
		ColPrimeReadable, ColPrimeLinks,
		ColTrailerReadable, ColTrailerLinks,
		ColVehicleReadable, ColVehicleLinks,
		ColCreatedByUserID, ColCreatedByEmail, ColCreatedByName,
	}
}

// headerAliases maps each canonical header to the historical spellings seen
// in older sheets, first match wins.
var headerAliases = map[string][]string{
	ColRecordID:        {ColRecordID, "record_id"},
	ColTimestamp:       {ColTimestamp, "timestamp"},
	ColVehicleNumber:   {ColVehicleNumber, "vehicle_number"},
	ColBattery1Number:  {ColBattery1Number, "Battery 1 Number", "battery1_number"},
	ColBattery1Link:    {ColBattery1Link, "Battery1 Photo Link", "battery1_photo_link"},
	ColBattery2Number:  {ColBattery2Number, "Battery 2 Number", "battery2_number"},
	ColBattery2Link:    {ColBattery2Link, "Battery2 Photo Link", "battery2_photo_link"},
	ColOdometerValue:   {ColOdometerValue, "odometer_value"},
	ColOdometerLink:    {ColOdometerLink, "odometer_photo_link"},
	ColPrimeReadable:   {ColPrimeReadable, "Prime Tyres"},
	ColPrimeLinks:      {ColPrimeLinks},
	ColTrailerReadable: {ColTrailerReadable, "Trailer Tyres"},
	ColTrailerLinks:    {ColTrailerLinks},
	ColVehicleReadable: {ColVehicleReadable, "Vehicle Images"},
	ColVehicleLinks:    {ColVehicleLinks},
	ColCreatedByUserID: {ColCreatedByUserID, "created_by_user_id"},
	ColCreatedByEmail:  {ColCreatedByEmail, "created_by_email"},
	ColCreatedByName:   {ColCreatedByName, "created_by_name"},
}

// cell resolves a logical column against a raw row, walking the alias list.
func cell(row map[string]string, canonical string) string {
	for _, name := range headerAliases[canonical] {
		if v, ok := row[name]; ok && v != "" {
			return v
		}
	}
	return ""
}

// BuildRow flattens a record into the 18-column sheet row. Link cells come
// from the record's resolved photo links, so the record handed in must
// already carry whatever links the upload step produced.
func BuildRow(rec models.MaintenanceRecord) []interface{} {
	return []interface{}{
		rec.RecordID,
		rec.Timestamp,
		rec.VehicleNumber,
		rec.Battery1.Number,
		rec.Battery1.PhotoLink,
		rec.Battery2.Number,
		rec.Battery2.PhotoLink,
		rec.Odometer.Value,
		rec.Odometer.PhotoLink,
		EncodeReadable(rec.PrimeTyres),
		EncodeLinks(tyreLinks(rec.PrimeTyres)),
		EncodeReadable(rec.TrailerTyres),
		EncodeLinks(tyreLinks(rec.TrailerTyres)),
		EncodeImageReadable(rec.VehicleImages),
		EncodeLinks(imageLinks(rec.VehicleImages)),
		rec.CreatedBy.UserID,
		rec.CreatedBy.Email,
		rec.CreatedBy.FullName,
	}
}

func tyreLinks(tyres []models.TyreEntry) []models.LinkEntry {
	out := make([]models.LinkEntry, 0, len(tyres))
	for _, t := range tyres {
		out = append(out, models.LinkEntry{Position: t.Position, PhotoLink: t.PhotoLink})
	}
	return out
}

func imageLinks(images []models.ImageEntry) []models.LinkEntry {
	out := make([]models.LinkEntry, 0, len(images))
	for _, im := range images {
		out = append(out, models.LinkEntry{Position: im.Position, PhotoLink: im.PhotoLink})
	}
	return out
}

// DecodedRow is a sheet row reconstructed into the canonical record shape,
// plus the flat link lists as decoded from the link columns.
type DecodedRow struct {
	Record            models.MaintenanceRecord
	PrimeTyreLinks    []models.LinkEntry
	TrailerTyreLinks  []models.LinkEntry
	VehicleImageLinks []models.LinkEntry
}

// RecordFromRow rebuilds a record from a header->value row. Link lists are
// folded back onto the tyre and image entries by index; rows read from the
// sheet are by definition synced.
func RecordFromRow(row map[string]string) DecodedRow {
	d := DecodedRow{
		Record: models.MaintenanceRecord{
			RecordID:      cell(row, ColRecordID),
			Timestamp:     cell(row, ColTimestamp),
			VehicleNumber: cell(row, ColVehicleNumber),
			Battery1: models.BatteryEntry{
				Number:    cell(row, ColBattery1Number),
				PhotoLink: cell(row, ColBattery1Link),
			},
			Battery2: models.BatteryEntry{
				Number:    cell(row, ColBattery2Number),
				PhotoLink: cell(row, ColBattery2Link),
			},
			Odometer: models.OdometerEntry{
				Value:     cell(row, ColOdometerValue),
				PhotoLink: cell(row, ColOdometerLink),
			},
			PrimeTyres:   DecodeReadable(cell(row, ColPrimeReadable)),
			TrailerTyres: DecodeReadable(cell(row, ColTrailerReadable)),
			CreatedBy: models.UserInfo{
				UserID:   cell(row, ColCreatedByUserID),
				Email:    cell(row, ColCreatedByEmail),
				FullName: cell(row, ColCreatedByName),
			},
			SyncedToSheets: true,
		},
		PrimeTyreLinks:    DecodeLinks(cell(row, ColPrimeLinks)),
		TrailerTyreLinks:  DecodeLinks(cell(row, ColTrailerLinks)),
		VehicleImageLinks: DecodeLinks(cell(row, ColVehicleLinks)),
	}

	images := []models.ImageEntry{}
	for _, e := range DecodeReadable(cell(row, ColVehicleReadable)) {
		images = append(images, models.ImageEntry{Position: e.Position})
	}
	d.Record.VehicleImages = images

	for i := range d.Record.PrimeTyres {
		if i < len(d.PrimeTyreLinks) {
			d.Record.PrimeTyres[i].PhotoLink = d.PrimeTyreLinks[i].PhotoLink
		}
	}
	for i := range d.Record.TrailerTyres {
		if i < len(d.TrailerTyreLinks) {
			d.Record.TrailerTyres[i].PhotoLink = d.TrailerTyreLinks[i].PhotoLink
		}
	}
	for i := range d.Record.VehicleImages {
		if i < len(d.VehicleImageLinks) {
			d.Record.VehicleImages[i].PhotoLink = d.VehicleImageLinks[i].PhotoLink
		}
	}
	return d
}
