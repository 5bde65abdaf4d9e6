package airtable_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"booking-portal/config"
	"booking-portal/internal/pkg/airtable"
	"booking-portal/internal/pkg/errors"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T, handler http.HandlerFunc) *airtable.Client {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return airtable.New(srv.Client(), &config.AirtableConfig{
		APIKey:   "key",
		BaseID:   "appBase",
		Endpoint: srv.URL,
	})
}

func TestListPaginates(t *testing.T) {
	var calls int
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, "/appBase/Bookings", r.URL.Path)
		assert.Equal(t, "Bearer key", r.Header.Get("Authorization"))
		assert.Equal(t, "{Status} != 'Cancelled'", r.URL.Query().Get("filterByFormula"))
		assert.Equal(t, "uuid", r.URL.Query().Get("sort[0][field]"))

		switch r.URL.Query().Get("offset") {
		case "":
			_, _ = w.Write([]byte(`{"records":[{"id":"rec1","fields":{"Name":"A"}}],"offset":"next"}`))
		case "next":
			_, _ = w.Write([]byte(`{"records":[{"id":"rec2","fields":{"Name":"B"}}]}`))
		default:
			t.Fatalf("unexpected offset %q", r.URL.Query().Get("offset"))
		}
	})

	records, err := c.Table("Bookings").List(context.Background(), airtable.ListOptions{
		FilterByFormula: "{Status} != 'Cancelled'",
		Sort:            []airtable.Sort{{Field: "uuid", Direction: "asc"}},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	require.Len(t, records, 2)
	assert.Equal(t, "rec1", records[0].ID)
	assert.Equal(t, "B", records[1].Fields["Name"])
}

func TestCreateAndUpdate(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var payload map[string]interface{}
		require.NoError(t, json.Unmarshal(body, &payload))

		switch r.Method {
		case http.MethodPost:
			assert.Equal(t, "/appBase/Bookings", r.URL.Path)
			records := payload["records"].([]interface{})
			fields := records[0].(map[string]interface{})["fields"].(map[string]interface{})
			assert.Equal(t, "Pending", fields["Status"])
			_, _ = w.Write([]byte(`{"records":[{"id":"recNew","fields":{"Status":"Pending"}}]}`))
		case http.MethodPatch:
			assert.Equal(t, "/appBase/Bookings/recNew", r.URL.Path)
			fields := payload["fields"].(map[string]interface{})
			assert.Equal(t, "Confirmed", fields["Status"])
			_, _ = w.Write([]byte(`{"id":"recNew","fields":{"Status":"Confirmed"}}`))
		default:
			t.Fatalf("unexpected method %s", r.Method)
		}
	})

	table := c.Table("Bookings")
	rec, err := table.Create(context.Background(), map[string]interface{}{"Status": "Pending"})
	require.NoError(t, err)
	assert.Equal(t, "recNew", rec.ID)

	rec, err = table.Update(context.Background(), "recNew", map[string]interface{}{"Status": "Confirmed"})
	require.NoError(t, err)
	assert.Equal(t, "Confirmed", rec.Fields["Status"])
}

func TestErrorNormalization(t *testing.T) {
	testCases := []struct {
		name     string
		status   int
		body     string
		wantKind errors.Kind
		wantType string
	}{
		{name: "auth", status: 401, body: `{"error":{"type":"AUTHENTICATION_REQUIRED","message":"auth"}}`, wantKind: errors.KindForbidden, wantType: airtable.TypeAuthenticationRequired},
		{name: "forbidden", status: 403, body: `{"error":{"type":"INVALID_PERMISSIONS_OR_MODEL_NOT_FOUND","message":"nope"}}`, wantKind: errors.KindForbidden, wantType: "INVALID_PERMISSIONS_OR_MODEL_NOT_FOUND"},
		{name: "not found string body", status: 404, body: `{"error":"NOT_FOUND"}`, wantKind: errors.KindNotFound, wantType: airtable.TypeNotFound},
		{name: "unknown field", status: 422, body: `{"error":{"type":"UNKNOWN_FIELD_NAME","message":"Unknown field name: \"Start Time\""}}`, wantKind: errors.KindUnprocessable, wantType: airtable.TypeUnknownField},
		{name: "rate limit", status: 429, body: `{"errors":[]}`, wantKind: errors.KindRateLimit},
		{name: "server", status: 503, body: `oops`, wantKind: errors.KindServerError},
		{name: "other 4xx", status: 400, body: `{"error":{"type":"INVALID_REQUEST_UNKNOWN","message":"bad"}}`, wantKind: errors.KindValidation, wantType: "INVALID_REQUEST_UNKNOWN"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			})

			_, err := c.Table("Bookings").Find(context.Background(), "rec1")
			require.Error(t, err)
			assert.Equal(t, tc.wantKind, errors.KindOf(err))

			apiErr, ok := airtable.AsAPIError(err)
			require.True(t, ok)
			assert.Equal(t, tc.status, apiErr.Status)
			assert.Equal(t, tc.wantType, apiErr.Type)
		})
	}
}

func TestTimeoutNormalization(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	c := airtable.New(&http.Client{Timeout: 20 * time.Millisecond}, &config.AirtableConfig{
		APIKey:   "key",
		BaseID:   "appBase",
		Endpoint: srv.URL,
	})

	_, err := c.Table("Bookings").List(context.Background(), airtable.ListOptions{})
	require.Error(t, err)
	assert.Equal(t, errors.KindTimeout, errors.KindOf(err))
	assert.True(t, errors.IsRetryable(err))
}
