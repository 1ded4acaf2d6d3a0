package airalo

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	domainErrors "github.com/encryptSIM/backend/internal/domain/errors"
	"github.com/encryptSIM/backend/internal/domain/model"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func TestAccessTokenIsCached(t *testing.T) {
	var tokenRequests int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v2/token":
			atomic.AddInt32(&tokenRequests, 1)
			if r.FormValue("grant_type") != "client_credentials" {
				t.Errorf("unexpected grant type %q", r.FormValue("grant_type"))
			}
			writeJSON(w, map[string]any{"data": map[string]any{"access_token": "tok-1", "expires_in": 3600}})
		case "/v2/packages":
			if got := r.Header.Get("Authorization"); got != "Bearer tok-1" {
				t.Errorf("unexpected authorization header %q", got)
			}
			writeJSON(w, map[string]any{"data": []any{}})
		default:
			t.Errorf("unexpected path %q", r.URL.Path)
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	client := NewClient(server.URL, "id", "secret", testLogger())

	for i := 0; i < 3; i++ {
		if _, err := client.PackagePlans(context.Background(), "local", ""); err != nil {
			t.Fatalf("request %d: unexpected error: %v", i, err)
		}
	}

	if got := atomic.LoadInt32(&tokenRequests); got != 1 {
		t.Errorf("expected single token request across calls, got %d", got)
	}
}

func TestAccessTokenRejectsEmptyResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"data": map[string]any{}})
	}))
	defer server.Close()

	client := NewClient(server.URL, "id", "secret", testLogger())

	_, err := client.PackagePlans(context.Background(), "local", "")
	if !errors.Is(err, domainErrors.ErrProviderFailure) {
		t.Fatalf("expected provider failure, got %v", err)
	}
}

func TestPlaceOrderParsesFirstSim(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v2/token":
			writeJSON(w, map[string]any{"data": map[string]any{"access_token": "tok-1", "expires_in": 3600}})
		case "/v2/orders":
			if r.FormValue("package_id") != "pkg-1" || r.FormValue("quantity") != "2" {
				t.Errorf("unexpected order form: %v", r.Form)
			}
			writeJSON(w, map[string]any{"data": map[string]any{"sims": []any{
				map[string]any{
					"iccid":                         "8944500000000000000",
					"qrcode":                        "LPA:1$rsp.example$CODE",
					"qrcode_url":                    "https://cdn.example/qr.png",
					"direct_apple_installation_url": "https://esimsetup.apple.com/x",
				},
			}}})
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	client := NewClient(server.URL, "id", "secret", testLogger())

	sim, err := client.PlaceOrder(context.Background(), model.ProductSpec{PackageID: "pkg-1", Quantity: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sim.ICCID != "8944500000000000000" {
		t.Errorf("unexpected iccid %q", sim.ICCID)
	}
	if sim.QRCode != "LPA:1$rsp.example$CODE" || sim.QRCodeURL != "https://cdn.example/qr.png" {
		t.Errorf("installation fields not parsed: %+v", sim)
	}
	if !strings.Contains(sim.AppleInstallationURL, "esimsetup.apple.com") {
		t.Errorf("apple url not parsed: %q", sim.AppleInstallationURL)
	}
	if sim.PackageID != "pkg-1" {
		t.Errorf("package id not stamped: %q", sim.PackageID)
	}
	if sim.CreatedAtMs == 0 {
		t.Errorf("expected creation timestamp")
	}
}

func TestPlaceOrderEmptySimsIsFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v2/token":
			writeJSON(w, map[string]any{"data": map[string]any{"access_token": "tok-1", "expires_in": 3600}})
		case "/v2/orders":
			writeJSON(w, map[string]any{"data": map[string]any{"sims": []any{}}})
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	client := NewClient(server.URL, "id", "secret", testLogger())

	_, err := client.PlaceOrder(context.Background(), model.ProductSpec{PackageID: "pkg-1", Quantity: 1})
	if !errors.Is(err, domainErrors.ErrProviderFailure) {
		t.Fatalf("expected provider failure, got %v", err)
	}
}

func TestPlaceTopupSendsICCID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v2/token":
			writeJSON(w, map[string]any{"data": map[string]any{"access_token": "tok-1", "expires_in": 3600}})
		case "/v2/orders/topups":
			if r.FormValue("iccid") != "89000" || r.FormValue("package_id") != "pkg-topup" {
				t.Errorf("unexpected topup form: %v", r.Form)
			}
			writeJSON(w, map[string]any{"data": map[string]any{}})
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	client := NewClient(server.URL, "id", "secret", testLogger())

	sim, err := client.PlaceTopup(context.Background(), model.ProductSpec{PackageID: "pkg-topup", ICCID: "89000"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sim.ICCID != "89000" || sim.PackageID != "pkg-topup" {
		t.Errorf("unexpected artifact: %+v", sim)
	}
}

func TestVendorErrorsWrapProviderFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v2/token":
			writeJSON(w, map[string]any{"data": map[string]any{"access_token": "tok-1", "expires_in": 3600}})
		default:
			http.Error(w, `{"message":"out of stock"}`, http.StatusUnprocessableEntity)
		}
	}))
	defer server.Close()

	client := NewClient(server.URL, "id", "secret", testLogger())

	if _, err := client.PlaceOrder(context.Background(), model.ProductSpec{PackageID: "pkg-1", Quantity: 1}); !errors.Is(err, domainErrors.ErrProviderFailure) {
		t.Errorf("place order: expected provider failure, got %v", err)
	}
	if _, err := client.SIMTopups(context.Background(), "89000"); !errors.Is(err, domainErrors.ErrProviderFailure) {
		t.Errorf("sim topups: expected provider failure, got %v", err)
	}
}

func TestPackagePlansForwardsFilters(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v2/token":
			writeJSON(w, map[string]any{"data": map[string]any{"access_token": "tok-1", "expires_in": 3600}})
		case "/v2/packages":
			q := r.URL.Query()
			if q.Get("filter[type]") != "local" || q.Get("filter[country]") != "FR" {
				t.Errorf("unexpected query: %v", q)
			}
			writeJSON(w, map[string]any{"data": []any{map[string]any{"slug": "france"}}})
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	client := NewClient(server.URL, "id", "secret", testLogger())

	data, err := client.PackagePlans(context.Background(), "local", "FR")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(string(data), "france") {
		t.Errorf("catalog payload not forwarded: %s", data)
	}
}

func TestMockClientGeneratesPlausibleSims(t *testing.T) {
	mock := NewMockClient()

	sim, err := mock.PlaceOrder(context.Background(), model.ProductSpec{PackageID: "pkg-1", Quantity: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sim.ICCID) != 19 || !strings.HasPrefix(sim.ICCID, "89") {
		t.Errorf("implausible iccid %q", sim.ICCID)
	}
	if !strings.HasPrefix(sim.QRCode, "LPA:1$") {
		t.Errorf("implausible activation code %q", sim.QRCode)
	}

	sims := FakeSims([]model.ProductSpec{{PackageID: "pkg-1", Quantity: 3}, {PackageID: "pkg-2"}})
	if len(sims) != 4 {
		t.Errorf("expected one sim per unit with quantity defaulting to 1, got %d", len(sims))
	}
}
