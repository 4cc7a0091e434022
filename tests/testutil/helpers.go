package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/marcvives/site-content/pkg/sitecontent"
)

// PostJSON issues a POST with a JSON body and decodes the response into out
// when out is non-nil. It fails the test unless the status matches.
func PostJSON(t *testing.T, url string, payload interface{}, wantStatus int, out interface{}) {
	t.Helper()
	doJSON(t, http.MethodPost, url, payload, wantStatus, out)
}

// PutJSON issues a PUT with a JSON body.
func PutJSON(t *testing.T, url string, payload interface{}, wantStatus int, out interface{}) {
	t.Helper()
	doJSON(t, http.MethodPut, url, payload, wantStatus, out)
}

// GetJSON issues a GET and decodes the response.
func GetJSON(t *testing.T, url string, wantStatus int, out interface{}) {
	t.Helper()
	doJSON(t, http.MethodGet, url, nil, wantStatus, out)
}

// Delete issues a DELETE and checks the status.
func Delete(t *testing.T, url string, wantStatus int) {
	t.Helper()
	doJSON(t, http.MethodDelete, url, nil, wantStatus, nil)
}

func doJSON(t *testing.T, method, url string, payload interface{}, wantStatus int, out interface{}) {
	t.Helper()

	var body bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(payload))
	}

	req, err := http.NewRequest(method, url, &body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, wantStatus, resp.StatusCode, "%s %s", method, url)

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
}

// CreateCategory creates a category over HTTP and returns the response view.
func CreateCategory(t *testing.T, baseURL, domain string, name sitecontent.LocalizedText) sitecontent.CategoryView {
	t.Helper()
	var view sitecontent.CategoryView
	PostJSON(t, baseURL+"/api/v1/"+domain+"/categories", map[string]interface{}{
		"name": name,
	}, http.StatusCreated, &view)
	return view
}

// CreateItem creates an item over HTTP and returns the response view.
func CreateItem(t *testing.T, baseURL, domain string, name sitecontent.LocalizedText, price, categoryID string) sitecontent.ItemView {
	t.Helper()
	var view sitecontent.ItemView
	PostJSON(t, baseURL+"/api/v1/"+domain+"/items", map[string]interface{}{
		"name":        name,
		"price":       price,
		"category_id": categoryID,
	}, http.StatusCreated, &view)
	return view
}
