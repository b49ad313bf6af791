package config

import (
	"encoding/json"
	"net/http"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/fleetworks/fleet-maintenance-api/models"
)

// defaultVehicles is the fleet the service knows about when VEHICLES is not
// set in the environment.
var defaultVehicles = []string{
	"HR55AZ3114", "NL01AE4999", "NL01AE4997", "NL01AE4995", "NL01AE4993",
	"NL01AE4991", "NL01AE4989", "NL01AE4987", "NL01AE4985", "NL01AE4983",
	"NL01AE4981", "NL01AE4979", "NL01AE4975", "NL01AE4973", "NL01AE4971",
	"NL01AE4969", "NL01AE4967", "NL01AE4965", "NL01AE4963", "NL01AE4961",
	"NL01AE4959", "NL01AE4957", "NL01AE4955", "NL01AE4953", "NL01AE4951",
	"NL01AD6494", "NL01AD4558", "NL01AD4557", "NL01AD4556", "NL01AD4444",
	"NL01AD4443", "NL01AD4442", "NL01AD4441", "NL01AD4440", "NL01AE4977",
	"HR55AP7119", "HR55AP1908", "HR55AP5443", "HR55AP3537", "HR55AP9057",
	"HR55AP1181", "HR55AP6189", "HR55AP8302", "HR55AP3538", "HR55AP2933",
	"HR55AP9013", "HR55AP4716", "HR55AP6982", "HR55AP1569", "HR55AP7671",
	"HR55AP3523", "HR55AP0407", "HR55AP0740", "HR55AP7396", "HR55AP1657",
	"HR55AR2073", "HR55AR1287", "HR55AR4913", "HR55AR3298", "HR55AR2616",
	"HR55AR1698", "HR55AR4395", "HR55AR4507", "HR55AR2561", "HR55AR7377",
}

// Config holds the project config values
type Config struct {
	URL          string
	DatabaseName string
	BaseURL      string
	Port         string

	UseGoogleSheets    bool
	SheetKeyPath       string
	SpreadsheetID      string
	ClerkDomain        string
	ClerkSecretKey     string
	CloudinaryCloud    string
	CloudinaryKey      string
	CloudinarySecret   string
	CloudinaryFolder   string
	Vehicles           []string
}

// New sets up all config related services
func New() *Config {

	//setup zap logger and replace default logger
	logger := zap.NewExample()
	_ = zap.ReplaceGlobals(logger)

	vehicles := defaultVehicles
	if v := os.Getenv("VEHICLES"); v != "" {
		vehicles = nil
		for _, item := range strings.Split(v, ",") {
			if item = strings.TrimSpace(item); item != "" {
				vehicles = append(vehicles, item)
			}
		}
	}

	return &Config{
		URL:              os.Getenv("DB_URI"),
		DatabaseName:     os.Getenv("DB_NAME"),
		BaseURL:          os.Getenv("BASE_URL"),
		Port:             os.Getenv("PORT"),
		UseGoogleSheets:  strings.EqualFold(os.Getenv("USE_GOOGLE_SHEETS"), "true"),
		SheetKeyPath:     os.Getenv("GSHEET_SERVICE_ACCOUNT_JSON"),
		SpreadsheetID:    os.Getenv("GSHEET_SPREADSHEET_ID"),
		ClerkDomain:      os.Getenv("CLERK_DOMAIN"),
		ClerkSecretKey:   os.Getenv("CLERK_SECRET_KEY"),
		CloudinaryCloud:  os.Getenv("CLOUDINARY_CLOUD_NAME"),
		CloudinaryKey:    os.Getenv("CLOUDINARY_API_KEY"),
		CloudinarySecret: os.Getenv("CLOUDINARY_API_SECRET"),
		CloudinaryFolder: os.Getenv("CLOUDINARY_FOLDER"),
		Vehicles:         vehicles,
	}

}

// ErrorStatus is a useful function that will log, write http headers and body
// for a given message, status code and err
func ErrorStatus(message string, httpStatusCode int, w http.ResponseWriter, err error) {
	zap.S().With(err).Error(message)
	w.WriteHeader(httpStatusCode)
	errMsg := ""
	if err != nil {
		errMsg = err.Error()
	}
	b, _ := json.Marshal(models.ErrorMessageResponse{
		Response: models.MessageError{Message: message, Error: errMsg},
	})
	w.Write(b)
}
