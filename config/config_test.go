package config

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReadsEnvironment(t *testing.T) {
	t.Setenv("DB_URI", "mongodb://localhost:27017")
	t.Setenv("DB_NAME", "fleet")
	t.Setenv("PORT", "8080")
	t.Setenv("USE_GOOGLE_SHEETS", "TRUE")
	t.Setenv("GSHEET_SERVICE_ACCOUNT_JSON", "/etc/secrets/sheet-key.json")
	t.Setenv("GSHEET_SPREADSHEET_ID", "sheet-1")
	t.Setenv("CLERK_DOMAIN", "clerk.fleet.example")
	t.Setenv("VEHICLES", "HR55AZ3114, NL01AE4999 ,")

	conf := New()

	assert.Equal(t, "mongodb://localhost:27017", conf.URL)
	assert.Equal(t, "fleet", conf.DatabaseName)
	assert.Equal(t, "8080", conf.Port)
	assert.True(t, conf.UseGoogleSheets)
	assert.Equal(t, "/etc/secrets/sheet-key.json", conf.SheetKeyPath)
	assert.Equal(t, "sheet-1", conf.SpreadsheetID)
	assert.Equal(t, "clerk.fleet.example", conf.ClerkDomain)
	assert.Equal(t, []string{"HR55AZ3114", "NL01AE4999"}, conf.Vehicles)
}

func TestNewDefaultsVehicles(t *testing.T) {
	t.Setenv("VEHICLES", "")

	conf := New()

	require.NotEmpty(t, conf.Vehicles)
	assert.Contains(t, conf.Vehicles, "HR55AZ3114")
	assert.False(t, conf.UseGoogleSheets)
}

func TestErrorStatus(t *testing.T) {
	rr := httptest.NewRecorder()

	ErrorStatus("failed to fetch logs", http.StatusInternalServerError, rr, assert.AnError)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t,
		`{"response": {"message": "failed to fetch logs", "error": "assert.AnError general error for testing"}}`,
		rr.Body.String(),
	)
}

func TestErrorStatusNilError(t *testing.T) {
	rr := httptest.NewRecorder()

	ErrorStatus("record not found", http.StatusNotFound, rr, nil)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t,
		`{"response": {"message": "record not found", "error": ""}}`,
		rr.Body.String(),
	)
}
