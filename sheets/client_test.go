package sheets

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"testing"

	"context"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKeyJSON(t *testing.T, tokenURI string) []byte {
	t.Helper()

	pk, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	der, err := x509.MarshalPKCS8PrivateKey(pk)
	require.NoError(t, err)

	pemKey := pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der})

	keyJSON, err := json.Marshal(map[string]string{
		"client_email": "svc@test-project.iam.gserviceaccount.com",
		"private_key":  string(pemKey),
		"token_uri":    tokenURI,
	})
	require.NoError(t, err)
	return keyJSON
}

func TestNewClientRequiresSpreadsheetID(t *testing.T) {
	_, err := NewClient([]byte(`{}`), "")
	assert.Error(t, err)
}

func TestNewClientRejectsBadKey(t *testing.T) {
	_, err := NewClient([]byte(`{"private_key": "not a key"}`), "sheet-1")
	assert.Error(t, err)
}

func TestAppendRow(t *testing.T) {
	var gotBody map[string][][]interface{}
	var gotAuth string

	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	defer server.Close()

	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "urn:ietf:params:oauth:grant-type:jwt-bearer", r.Form.Get("grant_type"))
		assert.NotEmpty(t, r.Form.Get("assertion"))
		json.NewEncoder(w).Encode(map[string]interface{}{
			"access_token": "test-token",
			"expires_in":   3600,
		})
	})
	mux.HandleFunc("/v4/spreadsheets/sheet-1/values/A1:append", func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusOK)
	})

	client, err := NewClient(testKeyJSON(t, server.URL+"/token"), "sheet-1")
	require.NoError(t, err)
	client.BaseURL = server.URL

	err = client.AppendRow(context.Background(), []interface{}{"rec-1", "HR55AZ3114"})
	require.NoError(t, err)

	assert.Equal(t, "Bearer test-token", gotAuth)
	require.Len(t, gotBody["values"], 1)
	assert.Equal(t, []interface{}{"rec-1", "HR55AZ3114"}, gotBody["values"][0])
}

func TestAppendRowSurfacesAPIError(t *testing.T) {
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	defer server.Close()

	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"access_token": "t", "expires_in": 3600})
	})
	mux.HandleFunc("/v4/spreadsheets/sheet-1/values/A1:append", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	})

	client, err := NewClient(testKeyJSON(t, server.URL+"/token"), "sheet-1")
	require.NoError(t, err)
	client.BaseURL = server.URL

	err = client.AppendRow(context.Background(), []interface{}{"rec-1"})
	assert.Error(t, err)
}

func TestReadRows(t *testing.T) {
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	defer server.Close()

	tokenCalls := 0
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		tokenCalls++
		json.NewEncoder(w).Encode(map[string]interface{}{"access_token": "t", "expires_in": 3600})
	})
	mux.HandleFunc("/v4/spreadsheets/sheet-1/values/A1:Z9999", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"values": [][]string{
				{"Record ID", "Vehicle Number"},
				{"rec-1", "HR55AZ3114"},
				{"rec-2"}, // short row pads missing cells
			},
		})
	})

	client, err := NewClient(testKeyJSON(t, server.URL+"/token"), "sheet-1")
	require.NoError(t, err)
	client.BaseURL = server.URL

	rows, err := client.ReadRows(context.Background())
	require.NoError(t, err)

	require.Len(t, rows, 2)
	assert.Equal(t, "rec-1", rows[0]["Record ID"])
	assert.Equal(t, "HR55AZ3114", rows[0]["Vehicle Number"])
	assert.Equal(t, "rec-2", rows[1]["Record ID"])
	assert.Equal(t, "", rows[1]["Vehicle Number"])

	// token is cached across calls
	_, err = client.ReadRows(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, tokenCalls)
}

func TestReadRowsHeaderOnly(t *testing.T) {
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	defer server.Close()

	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"access_token": "t", "expires_in": 3600})
	})
	mux.HandleFunc("/v4/spreadsheets/sheet-1/values/A1:Z9999", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"values": [][]string{{"Record ID"}},
		})
	})

	client, err := NewClient(testKeyJSON(t, server.URL+"/token"), "sheet-1")
	require.NoError(t, err)
	client.BaseURL = server.URL

	rows, err := client.ReadRows(context.Background())
	require.NoError(t, err)
	assert.Empty(t, rows)
}
