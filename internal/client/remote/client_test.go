package remote

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/pecc/timetracking/internal/core/domain"
)

func testClient(url string) *Client {
	return NewClient(url, time.Second, zerolog.Nop())
}

func TestTimeEntryRoundTrip(t *testing.T) {
	// Echo back the posted entry with a server-assigned id, after decoding
	// it through the wire types — exactly what the real server does.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/time-entries" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var we wireTimeEntry
		if err := json.NewDecoder(r.Body).Decode(&we); err != nil {
			t.Errorf("decode: %v", err)
		}
		we.ID = 42
		_ = json.NewEncoder(w).Encode(we)
	}))
	defer srv.Close()

	in := time.Date(2026, 8, 1, 9, 15, 0, 500_000_000, time.UTC)
	out := in.Add(8 * time.Hour)
	loc := domain.LocationInfo{Latitude: 34.0522, Longitude: -118.2437, Description: "Union Station", MapURI: "https://maps.example/u"}
	entry := domain.TimeEntry{
		UserID:           1,
		UserName:         "Alice",
		ClockIn:          in,
		ClockOut:         &out,
		ClockInLocation:  loc,
		ClockOutLocation: &loc,
		OvertimeHours:    1.5,
	}

	created, err := testClient(srv.URL).CreateTimeEntry(context.Background(), entry)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID != 42 {
		t.Fatalf("expected server-assigned id 42, got %d", created.ID)
	}
	if !created.ClockIn.Equal(in) {
		t.Fatalf("clockIn instant drifted: sent %v got %v", in, created.ClockIn)
	}
	if created.ClockOut == nil || !created.ClockOut.Equal(out) {
		t.Fatalf("clockOut instant drifted: sent %v got %v", out, created.ClockOut)
	}
	if *created.ClockOutLocation != loc || created.ClockInLocation != loc {
		t.Fatalf("nested locations drifted: %+v", created)
	}
	if created.OvertimeHours != 1.5 {
		t.Fatalf("overtime drifted: %v", created.OvertimeHours)
	}
}

func TestWireFieldNames(t *testing.T) {
	// The boundary is snake_case; the in-memory model is camelCase.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var raw map[string]any
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			t.Errorf("decode raw: %v", err)
		}
		for _, key := range []string{"user_id", "user_name", "clock_in", "clock_in_location", "overtime_hours"} {
			if _, ok := raw[key]; !ok {
				t.Errorf("wire payload missing snake_case key %q: %v", key, raw)
			}
		}
		_ = json.NewEncoder(w).Encode(raw)
	}))
	defer srv.Close()

	entry := domain.TimeEntry{
		UserID:          2,
		UserName:        "Bob",
		ClockIn:         time.Now().UTC(),
		ClockInLocation: domain.LocationInfo{Latitude: 1, Longitude: 2, Description: "x"},
	}
	if _, err := testClient(srv.URL).CreateTimeEntry(context.Background(), entry); err != nil {
		t.Fatalf("create: %v", err)
	}
}

func TestTransportFailureIsRemoteUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	_, err := testClient(srv.URL).ListUsers(context.Background())
	if !errors.Is(err, domain.ErrRemoteUnavailable) {
		t.Fatalf("expected ErrRemoteUnavailable, got %v", err)
	}
}

func TestNonSuccessStatusIsRemoteUnavailable(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusNotFound, http.StatusInternalServerError} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))

		_, err := testClient(srv.URL).Login(context.Background(), "Alice", "wrong")
		if !errors.Is(err, domain.ErrRemoteUnavailable) {
			t.Fatalf("status %d: expected ErrRemoteUnavailable, got %v", status, err)
		}
		srv.Close()
	}
}

func TestLoginSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var p loginPayload
		_ = json.NewDecoder(r.Body).Decode(&p)
		if p.Name != "Alice" || p.Password != "password123" {
			t.Errorf("unexpected login payload: %+v", p)
		}
		_ = json.NewEncoder(w).Encode(wireUser{ID: 1, Name: "Alice", Role: "employee", ForcePasswordChange: true})
	}))
	defer srv.Close()

	u, err := testClient(srv.URL).Login(context.Background(), "Alice", "password123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if u.ID != 1 || u.Role != domain.RoleEmployee || !u.ForcePasswordChange {
		t.Fatalf("unexpected user: %+v", u)
	}
}
