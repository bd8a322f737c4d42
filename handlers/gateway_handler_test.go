package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/techmaster-vietnam/sapkit/config"
	"github.com/techmaster-vietnam/sapkit/models"
	"github.com/techmaster-vietnam/sapkit/odata"
	"github.com/techmaster-vietnam/sapkit/service"
)

// sapStub giả lập SAP OData backend, đếm số lần bị gọi
type sapStub struct {
	server *httptest.Server
	hits   int64
}

func newSapStub(handler http.HandlerFunc) *sapStub {
	s := &sapStub{}
	s.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&s.hits, 1)
		handler(w, r)
	}))
	return s
}

func (s *sapStub) Hits() int64 {
	return atomic.LoadInt64(&s.hits)
}

// newGatewayApp dựng fiber app với gateway handler trỏ về SAP stub.
// authed=true thì middleware test sẽ set user vào Locals như RequireAuth làm.
func newGatewayApp(baseURL, username, password string, authed bool) *fiber.App {
	cfg := &config.Config{
		SAP: config.SAPConfig{
			BaseURL:  baseURL,
			Username: username,
			Password: password,
			Timeout:  5 * time.Second,
		},
	}

	gatewayService := service.NewGatewayService(odata.DefaultRegistry(), odata.NewFetcher(cfg.SAP.Timeout), cfg)
	handler := NewGatewayHandler(gatewayService)

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if authed {
			c.Locals("user", &models.User{
				Email:    "tester@sapkit.local",
				Role:     models.BuiltinRoleUser,
				IsActive: true,
			})
		}
		return c.Next()
	})
	app.Post("/api/sap/module", handler.FetchModule)
	app.Post("/api/sap/query", handler.FetchRaw)

	return app
}

func postJSON(t *testing.T, app *fiber.App, path, body string) (*http.Response, map[string]interface{}) {
	t.Helper()

	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test failed: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
	return resp, decoded
}

func TestGatewayHandler_Unauthenticated(t *testing.T) {
	stub := newSapStub(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"d":{"results":[]}}`))
	})
	defer stub.server.Close()

	app := newGatewayApp(stub.server.URL, "sapuser", "sappass", false)

	for _, path := range []string{"/api/sap/module", "/api/sap/query"} {
		t.Run(path, func(t *testing.T) {
			resp, body := postJSON(t, app, path, `{"module":"VendorInvoices"}`)
			if resp.StatusCode != fiber.StatusUnauthorized {
				t.Errorf("status = %d, expected 401", resp.StatusCode)
			}
			if body["error"] != "Unauthorized" {
				t.Errorf("error = %q, expected %q", body["error"], "Unauthorized")
			}
		})
	}

	if stub.Hits() != 0 {
		t.Errorf("SAP backend was called %d times for unauthenticated requests, expected 0", stub.Hits())
	}
}

func TestGatewayHandler_MissingFields(t *testing.T) {
	stub := newSapStub(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"d":{"results":[]}}`))
	})
	defer stub.server.Close()

	app := newGatewayApp(stub.server.URL, "sapuser", "sappass", true)

	tests := []struct {
		name     string
		path     string
		body     string
		expected string
	}{
		{"module missing", "/api/sap/module", `{}`, "Missing required field: module"},
		{"module empty", "/api/sap/module", `{"module":""}`, "Missing required field: module"},
		{"service missing", "/api/sap/query", `{"entitySet":"SalesOrdersSet"}`, "Missing required fields: service and entitySet"},
		{"entitySet missing", "/api/sap/query", `{"service":"ZGW_SALES_SRV"}`, "Missing required fields: service and entitySet"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := postJSON(t, app, tt.path, tt.body)
			if resp.StatusCode != fiber.StatusBadRequest {
				t.Errorf("status = %d, expected 400", resp.StatusCode)
			}
			if body["error"] != tt.expected {
				t.Errorf("error = %q, expected %q", body["error"], tt.expected)
			}
		})
	}

	if stub.Hits() != 0 {
		t.Errorf("SAP backend was called %d times for invalid requests, expected 0", stub.Hits())
	}
}

func TestGatewayHandler_UnknownModule(t *testing.T) {
	stub := newSapStub(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"d":{"results":[]}}`))
	})
	defer stub.server.Close()

	app := newGatewayApp(stub.server.URL, "sapuser", "sappass", true)

	resp, body := postJSON(t, app, "/api/sap/module", `{"module":"NotARealModule"}`)
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("status = %d, expected 400", resp.StatusCode)
	}

	errMsg, _ := body["error"].(string)
	if !strings.HasPrefix(errMsg, "Unknown module: NotARealModule. Available modules: ") {
		t.Errorf("unexpected error message: %q", errMsg)
	}
	// Thông báo lỗi phải liệt kê đủ module đã đăng ký
	for _, module := range odata.DefaultRegistry().ModuleNames() {
		if !strings.Contains(errMsg, module) {
			t.Errorf("error message does not list module %q: %q", module, errMsg)
		}
	}

	if stub.Hits() != 0 {
		t.Errorf("SAP backend was called %d times for unknown module, expected 0", stub.Hits())
	}
}

func TestGatewayHandler_CredentialsMissing(t *testing.T) {
	stub := newSapStub(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"d":{"results":[]}}`))
	})
	defer stub.server.Close()

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"both missing", "", ""},
		{"password missing", "sapuser", ""},
		{"username missing", "", "sappass"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newGatewayApp(stub.server.URL, tt.username, tt.password, true)

			resp, body := postJSON(t, app, "/api/sap/module", `{"module":"SalesOrders"}`)
			if resp.StatusCode != fiber.StatusInternalServerError {
				t.Errorf("status = %d, expected 500", resp.StatusCode)
			}
			if body["error"] != "SAP credentials not configured" {
				t.Errorf("error = %q, expected %q", body["error"], "SAP credentials not configured")
			}
		})
	}

	if stub.Hits() != 0 {
		t.Errorf("SAP backend was called %d times without credentials, expected 0", stub.Hits())
	}
}

func TestGatewayHandler_FetchModuleSuccess(t *testing.T) {
	var gotPath, gotQuery string
	stub := newSapStub(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"d":{"results":[{"InvoiceID":"INV-1"},{"InvoiceID":"INV-2"}]}}`))
	})
	defer stub.server.Close()

	app := newGatewayApp(stub.server.URL, "sapuser", "sappass", true)

	resp, body := postJSON(t, app, "/api/sap/module", `{"module":"VendorInvoices","filters":"Status eq 'Open'","top":10}`)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, expected 200", resp.StatusCode)
	}

	if body["success"] != true {
		t.Errorf("success = %v, expected true", body["success"])
	}
	if body["module"] != "VendorInvoices" {
		t.Errorf("module = %v, expected VendorInvoices", body["module"])
	}
	if body["count"] != float64(2) {
		t.Errorf("count = %v, expected 2", body["count"])
	}
	data, ok := body["data"].([]interface{})
	if !ok || len(data) != 2 {
		t.Errorf("data = %v, expected unwrapped array of 2 entities", body["data"])
	}

	if gotPath != "/sap/opu/odata/sap/ZGW_PURCHASE_SRV/VendorInvoicesSet" &&
		!strings.HasSuffix(gotPath, "/ZGW_PURCHASE_SRV/VendorInvoicesSet") {
		t.Errorf("upstream path = %q, expected ZGW_PURCHASE_SRV/VendorInvoicesSet", gotPath)
	}
	if !strings.Contains(gotQuery, "$top=10") || !strings.Contains(gotQuery, "$filter=Status") {
		t.Errorf("upstream query = %q, expected $top and $filter", gotQuery)
	}
}

func TestGatewayHandler_FetchRawSuccess(t *testing.T) {
	stub := newSapStub(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"d":{"ID":"42","Status":"Open"}}`))
	})
	defer stub.server.Close()

	app := newGatewayApp(stub.server.URL, "sapuser", "sappass", true)

	resp, body := postJSON(t, app, "/api/sap/query", `{"service":"ZGW_CUSTOM_SRV","entitySet":"CustomSet"}`)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, expected 200", resp.StatusCode)
	}

	if body["success"] != true {
		t.Errorf("success = %v, expected true", body["success"])
	}
	// Single-object payload: count = 1
	if body["count"] != float64(1) {
		t.Errorf("count = %v, expected 1", body["count"])
	}
	if _, hasModule := body["module"]; hasModule {
		t.Errorf("raw endpoint response should not carry a module field, got %v", body["module"])
	}
}

func TestGatewayHandler_UpstreamErrorPassthrough(t *testing.T) {
	stub := newSapStub(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("Service Unavailable"))
	})
	defer stub.server.Close()

	app := newGatewayApp(stub.server.URL, "sapuser", "sappass", true)

	resp, body := postJSON(t, app, "/api/sap/module", `{"module":"Inventory"}`)
	if resp.StatusCode != fiber.StatusServiceUnavailable {
		t.Errorf("status = %d, expected 503 passthrough", resp.StatusCode)
	}
	if body["error"] != "SAP OData request failed with status 503" {
		t.Errorf("error = %q, expected upstream failure message", body["error"])
	}
	if body["details"] != "Service Unavailable" {
		t.Errorf("details = %q, expected raw upstream body", body["details"])
	}
}

func TestGatewayHandler_InvalidBody(t *testing.T) {
	stub := newSapStub(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"d":{"results":[]}}`))
	})
	defer stub.server.Close()

	app := newGatewayApp(stub.server.URL, "sapuser", "sappass", true)

	resp, body := postJSON(t, app, "/api/sap/module", `{not json`)
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("status = %d, expected 400", resp.StatusCode)
	}
	if body["error"] != "Invalid request body" {
		t.Errorf("error = %q, expected %q", body["error"], "Invalid request body")
	}
	if stub.Hits() != 0 {
		t.Errorf("SAP backend was called %d times for malformed body, expected 0", stub.Hits())
	}
}
