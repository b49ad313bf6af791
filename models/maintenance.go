package models

// UserInfo is the verified submitter identity resolved from the identity
// provider. It is never taken from the request body.
type UserInfo struct {
	UserID   string `json:"user_id" bson:"user_id"`
	Email    string `json:"email" bson:"email"`
	FullName string `json:"full_name" bson:"full_name"`
}

// TyreEntry is one tyre in a prime or trailer tyre list. PhotoLink stays empty
// until the sync step resolves an uploaded image to a link.
type TyreEntry struct {
	Position  string `json:"position" bson:"position"`
	Number    string `json:"number" bson:"number"`
	PhotoLink string `json:"photo_link,omitempty" bson:"photo_link,omitempty"`
}

// ImageEntry is one vehicle image slot. Images carry no number.
type ImageEntry struct {
	Position  string `json:"position" bson:"position"`
	PhotoLink string `json:"photo_link,omitempty" bson:"photo_link,omitempty"`
}

// BatteryEntry holds one battery number and its resolved photo link.
type BatteryEntry struct {
	Number    string `json:"number" bson:"number"`
	PhotoLink string `json:"photo_link,omitempty" bson:"photo_link,omitempty"`
}

// OdometerEntry holds the odometer reading and its resolved photo link.
type OdometerEntry struct {
	Value     string `json:"value,omitempty" bson:"value,omitempty"`
	PhotoLink string `json:"photo_link,omitempty" bson:"photo_link,omitempty"`
}

// MaintenanceRecord holds the structure for the maintenance_logs collection
// in mongo. Raw photo payloads are never part of this document, they travel
// separately in a MediaBundle during submission handling.
type MaintenanceRecord struct {
	RecordID       string        `json:"record_id" bson:"record_id"`
	Timestamp      string        `json:"timestamp" bson:"timestamp"`
	VehicleNumber  string        `json:"vehicle_number" bson:"vehicle_number"`
	Battery1       BatteryEntry  `json:"battery1" bson:"battery1"`
	Battery2       BatteryEntry  `json:"battery2" bson:"battery2"`
	Odometer       OdometerEntry `json:"odometer" bson:"odometer"`
	PrimeTyres     []TyreEntry   `json:"prime_tyres" bson:"prime_tyres"`
	TrailerTyres   []TyreEntry   `json:"trailer_tyres" bson:"trailer_tyres"`
	VehicleImages  []ImageEntry  `json:"vehicle_images" bson:"vehicle_images"`
	CreatedBy      UserInfo      `json:"created_by" bson:"created_by"`
	SyncedToSheets bool          `json:"synced_to_sheets" bson:"synced_to_sheets"`
}

// LinkEntry pairs a position with its photo link. Used for the separate link
// lists reconstructed from sheet rows.
type LinkEntry struct {
	Position  string `json:"position"`
	PhotoLink string `json:"photo_link"`
}

// MediaBundle carries the raw base64 photo payloads of one submission,
// aligned by index with the record's tyre and image lists. It is discarded
// after the sync attempt and never persisted.
type MediaBundle struct {
	Battery1      string
	Battery2      string
	Odometer      string
	PrimeTyres    []string
	TrailerTyres  []string
	VehicleImages []string
}

// HasPayloads reports whether the bundle contains any photo payload at all.
func (m MediaBundle) HasPayloads() bool {
	if m.Battery1 != "" || m.Battery2 != "" || m.Odometer != "" {
		return true
	}
	for _, lists := range [][]string{m.PrimeTyres, m.TrailerTyres, m.VehicleImages} {
		for _, p := range lists {
			if p != "" {
				return true
			}
		}
	}
	return false
}

// TyreInput is one tyre in a submit request, optionally with a raw photo.
type TyreInput struct {
	Position    string `json:"position"`
	Number      string `json:"number"`
	PhotoBase64 string `json:"photo_base64,omitempty"`
}

// ImageInput is one vehicle image slot in a submit request.
type ImageInput struct {
	Position    string `json:"position"`
	PhotoBase64 string `json:"photo_base64,omitempty"`
}

// MaintenanceSubmitRequest is the body of POST /maintenance/submit.
type MaintenanceSubmitRequest struct {
	VehicleNumber       string       `json:"vehicle_number" validate:"required"`
	Battery1Number      string       `json:"battery1_number"`
	Battery1PhotoBase64 string       `json:"battery1_photo_base64,omitempty"`
	Battery2Number      string       `json:"battery2_number"`
	Battery2PhotoBase64 string       `json:"battery2_photo_base64,omitempty"`
	OdometerValue       string       `json:"odometer_value,omitempty"`
	OdometerPhotoBase64 string       `json:"odometer_photo_base64,omitempty"`
	PrimeTyres          []TyreInput  `json:"prime_tyres"`
	TrailerTyres        []TyreInput  `json:"trailer_tyres"`
	VehicleImages       []ImageInput `json:"vehicle_images"`
}

// MaintenanceSubmitResponse is the body returned by POST /maintenance/submit.
type MaintenanceSubmitResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	RecordID string `json:"record_id"`
}

// MaintenanceLogsResponse wraps a list of records for the logs endpoints.
type MaintenanceLogsResponse struct {
	Logs []MaintenanceRecord `json:"logs"`
}

// VehiclesResponse is the body of GET /vehicles.
type VehiclesResponse struct {
	Vehicles []string `json:"vehicles"`
}
