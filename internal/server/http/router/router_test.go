package router

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/encryptSIM/backend/internal/domain/model"
	"github.com/encryptSIM/backend/internal/server/http/handlers"
	testhelpers "github.com/encryptSIM/backend/internal/test"
)

func newTestEngine(facade handlers.ShopFacade) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	return Setup(facade, logger)
}

func serve(engine *gin.Engine, method, path string, body []byte) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp := httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	return resp
}

func TestSetupRoutes(t *testing.T) {
	sim := &model.SimArtifact{ICCID: "89000000000000000001"}
	engine := newTestEngine(&testhelpers.ShopFacadeStub{
		OrderFn: func(ctx context.Context, orderID string) (*model.Order, error) {
			return &model.Order{OrderID: orderID, Status: model.OrderStatusPaidToMaster, Sim: sim}, nil
		},
	})

	resp := serve(engine, http.MethodPost, "/create-payment-profile", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 for profile creation, got %d", resp.Code)
	}

	body, _ := json.Marshal(map[string]any{
		"ppPublicKey": "pp-1", "quantity": 1, "package_id": "pkg-1", "package_price": "0.5",
	})
	resp = serve(engine, http.MethodPost, "/order", body)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 for order creation, got %d", resp.Code)
	}

	// both aliases resolve through the same lookup
	for _, path := range []string{"/order/order-1", "/topup/order-1"} {
		resp = serve(engine, http.MethodGet, path, nil)
		if resp.Code != http.StatusOK {
			t.Fatalf("expected status 200 for %s, got %d", path, resp.Code)
		}
	}

	resp = serve(engine, http.MethodGet, "/packages?type=local", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 for packages, got %d", resp.Code)
	}

	resp = serve(engine, http.MethodGet, "/health", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 for health, got %d", resp.Code)
	}

	resp = serve(engine, http.MethodGet, "/coupon/SAVE10", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 for coupon lookup, got %d", resp.Code)
	}

	resp = serve(engine, http.MethodDelete, "/cache/catalog", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 for cache delete, got %d", resp.Code)
	}

	resp = serve(engine, http.MethodGet, "/unknown", nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404 for unknown route, got %d", resp.Code)
	}
}

func TestSetupDecompressesRequestBodies(t *testing.T) {
	engine := newTestEngine(&testhelpers.ShopFacadeStub{})

	body, _ := json.Marshal(map[string]any{
		"ppPublicKey": "pp-1", "quantity": 1, "package_id": "pkg-1", "package_price": "0.5",
	})
	var compressed bytes.Buffer
	zw := gzip.NewWriter(&compressed)
	if _, err := zw.Write(body); err != nil {
		t.Fatalf("failed to compress body: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("failed to close gzip writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/order", &compressed)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Content-Encoding", "gzip")
	resp := httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 for gzip body, got %d", resp.Code)
	}
}

func TestSetupCompressesResponses(t *testing.T) {
	engine := newTestEngine(&testhelpers.ShopFacadeStub{})

	req := httptest.NewRequest(http.MethodGet, "/packages?type=local", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	resp := httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if resp.Header().Get("Content-Encoding") != "gzip" {
		t.Fatalf("expected gzip response encoding, got %q", resp.Header().Get("Content-Encoding"))
	}
}

var _ handlers.ShopFacade = (*testhelpers.ShopFacadeStub)(nil)
