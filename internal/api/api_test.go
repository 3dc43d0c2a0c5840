package api

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/erazemk/inventorypro/internal/db"
	"github.com/erazemk/inventorypro/internal/kv"
	"github.com/erazemk/inventorypro/internal/model"
	"github.com/erazemk/inventorypro/internal/store"
)

const testJWTSecret = "test-secret"

func setupTestServer(t *testing.T) (*httptest.Server, *store.Stores) {
	t.Helper()
	stores, err := store.Open(context.Background(), kv.NewSQLite(db.NewTestDB(t)))
	if err != nil {
		t.Fatalf("opening stores: %v", err)
	}
	server := httptest.NewServer(NewRouter(stores, Config{JWTSecret: testJWTSecret}))
	t.Cleanup(server.Close)
	return server, stores
}

func login(t *testing.T, server *httptest.Server, email, password string) string {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"email": email, "password": password})
	resp, err := http.Post(server.URL+"/api/auth/login", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("login request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login as %s failed: %d", email, resp.StatusCode)
	}

	var loginResp LoginResponse
	json.NewDecoder(resp.Body).Decode(&loginResp)
	if loginResp.Token == "" {
		t.Fatal("empty token from login")
	}
	return loginResp.Token
}

func loginAs(t *testing.T, server *httptest.Server, role model.Role) string {
	t.Helper()
	return login(t, server, string(role)+"@inventorypro.com", store.DemoPassword)
}

func authRequest(method, url, token string, body any) (*http.Request, error) {
	var bodyReader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		bodyReader = bytes.NewReader(data)
	} else {
		bodyReader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, bodyReader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

func do(t *testing.T, method, url, token string, body any) *http.Response {
	t.Helper()
	req, err := authRequest(method, url, token, body)
	if err != nil {
		t.Fatalf("building request: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	return v
}

func TestLoginEndpoint(t *testing.T) {
	server, _ := setupTestServer(t)

	body, _ := json.Marshal(map[string]string{"email": "admin@inventorypro.com", "password": "wrong"})
	resp, _ := http.Post(server.URL+"/api/auth/login", "application/json", bytes.NewReader(body))
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 for bad password, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	body, _ = json.Marshal(map[string]string{"email": "nobody@inventorypro.com", "password": "password123"})
	resp, _ = http.Post(server.URL+"/api/auth/login", "application/json", bytes.NewReader(body))
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 for unknown email, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	token := login(t, server, "Manager@InventoryPro.com", "password123")
	me := decode[model.User](t, do(t, "GET", server.URL+"/api/auth/me", token, nil))
	if me.Role != model.RoleManager || me.Name != "Manager" {
		t.Errorf("unexpected identity: %+v", me)
	}
}

func TestRegisterThenLogin(t *testing.T) {
	server, stores := setupTestServer(t)

	reg := model.Registration{Email: "jane@example.com", Password: "secret-pass", Name: "Jane", Role: model.RoleStaff}
	body, _ := json.Marshal(reg)
	resp, _ := http.Post(server.URL+"/api/auth/register", "application/json", bytes.NewReader(body))
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	resp, _ = http.Post(server.URL+"/api/auth/register", "application/json", bytes.NewReader(body))
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("expected 409 for duplicate email, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	token := login(t, server, "jane@example.com", "secret-pass")
	me := decode[model.User](t, do(t, "GET", server.URL+"/api/auth/me", token, nil))
	if me.Role != model.RoleStaff {
		t.Errorf("expected staff, got %s", me.Role)
	}

	// Elevated roles cannot be self-assigned.
	for _, role := range []model.Role{model.RoleManager, model.RoleAdmin} {
		elevated := model.Registration{Email: string(role) + "@example.com", Password: "secret-pass", Name: "Eve", Role: role}
		body, _ := json.Marshal(elevated)
		resp, _ := http.Post(server.URL+"/api/auth/register", "application/json", bytes.NewReader(body))
		resp.Body.Close()
		if resp.StatusCode != http.StatusForbidden {
			t.Errorf("self-registering as %s: expected 403, got %d", role, resp.StatusCode)
		}
	}
	if n := len(stores.Users.List(context.Background())); n != 4 {
		t.Errorf("expected 3 demo users plus jane, got %d", n)
	}
}

func TestUnauthenticatedAccess(t *testing.T) {
	server, _ := setupTestServer(t)

	for _, path := range []string{"/api/inventory", "/api/dashboard", "/api/warehouses", "/api/auth/me"} {
		resp, err := http.Get(server.URL + path)
		if err != nil {
			t.Fatalf("GET %s: %v", path, err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("GET %s: expected 401, got %d", path, resp.StatusCode)
		}
	}

	resp := do(t, "GET", server.URL+"/api/inventory", "not-a-token", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 for garbage token, got %d", resp.StatusCode)
	}
}

func TestLogoutRevokesToken(t *testing.T) {
	server, _ := setupTestServer(t)
	token := loginAs(t, server, model.RoleStaff)

	if resp := do(t, "POST", server.URL+"/api/auth/logout", token, nil); resp.StatusCode != http.StatusOK {
		t.Fatalf("logout: expected 200, got %d", resp.StatusCode)
	}
	if resp := do(t, "GET", server.URL+"/api/auth/me", token, nil); resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 after logout, got %d", resp.StatusCode)
	}
}

func TestRolePermissions(t *testing.T) {
	server, _ := setupTestServer(t)
	staff := loginAs(t, server, model.RoleStaff)
	manager := loginAs(t, server, model.RoleManager)
	admin := loginAs(t, server, model.RoleAdmin)

	tests := []struct {
		token  string
		method string
		path   string
		body   any
		want   int
	}{
		{staff, "GET", "/api/inventory", nil, http.StatusOK},
		{staff, "GET", "/api/dashboard", nil, http.StatusOK},
		{staff, "GET", "/api/warehouses", nil, http.StatusForbidden},
		{staff, "GET", "/api/transfers", nil, http.StatusForbidden},
		{staff, "GET", "/api/reports/low-stock", nil, http.StatusForbidden},
		{staff, "GET", "/api/inventory/export", nil, http.StatusForbidden},
		{staff, "PUT", "/api/inventory/INV001", map[string]int{"stock": 1}, http.StatusForbidden},
		{manager, "GET", "/api/warehouses", nil, http.StatusOK},
		{manager, "POST", "/api/warehouses", map[string]string{"name": "Depot"}, http.StatusForbidden},
		{manager, "DELETE", "/api/inventory/INV001", nil, http.StatusForbidden},
		{manager, "GET", "/api/users", nil, http.StatusForbidden},
		{admin, "GET", "/api/users", nil, http.StatusOK},
	}

	for _, tt := range tests {
		resp := do(t, tt.method, server.URL+tt.path, tt.token, tt.body)
		if resp.StatusCode != tt.want {
			t.Errorf("%s %s: expected %d, got %d", tt.method, tt.path, tt.want, resp.StatusCode)
		}
	}
}

func TestDeniedDeleteLeavesStoresUnchanged(t *testing.T) {
	server, stores := setupTestServer(t)
	staff := loginAs(t, server, model.RoleStaff)
	manager := loginAs(t, server, model.RoleManager)
	ctx := context.Background()

	counts := map[string]func() int{
		"inventory":  func() int { return len(stores.Inventory.List(ctx)) },
		"warehouses": func() int { return len(stores.Warehouses.List(ctx)) },
		"transfers":  func() int { return len(stores.Transfers.List(ctx)) },
	}

	tests := []struct {
		role     string
		token    string
		resource string
		id       string
	}{
		{"staff", staff, "inventory", "INV001"},
		{"staff", staff, "warehouses", "WH001"},
		{"staff", staff, "transfers", "TRF001"},
		{"manager", manager, "inventory", "INV001"},
		{"manager", manager, "warehouses", "WH001"},
		{"manager", manager, "transfers", "TRF001"},
	}

	for _, tt := range tests {
		count := counts[tt.resource]
		before := count()

		resp := do(t, "DELETE", server.URL+"/api/"+tt.resource+"/"+tt.id, tt.token, nil)
		if resp.StatusCode != http.StatusForbidden {
			t.Errorf("%s DELETE %s: expected 403, got %d", tt.role, tt.resource, resp.StatusCode)
			continue
		}
		if body := decode[map[string]string](t, resp); body["error"] != "insufficient permissions" {
			t.Errorf("%s DELETE %s: unexpected error body %v", tt.role, tt.resource, body)
		}
		if after := count(); after != before {
			t.Errorf("%s DELETE %s: %d records before, %d after", tt.role, tt.resource, before, after)
		}
	}

	if stores.Inventory.Get(ctx, "INV001") == nil || stores.Warehouses.Get(ctx, "WH001") == nil || stores.Transfers.Get(ctx, "TRF001") == nil {
		t.Error("records should survive forbidden deletes")
	}
}

func TestInventoryCRUD(t *testing.T) {
	server, _ := setupTestServer(t)
	admin := loginAs(t, server, model.RoleAdmin)
	base := server.URL + "/api/inventory"

	resp := do(t, "POST", base, admin, map[string]any{
		"name":      "Office Chair",
		"category":  "Furniture",
		"stock":     4,
		"warehouse": "Main Warehouse",
		"price":     149.99,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d", resp.StatusCode)
	}
	item := decode[model.InventoryItem](t, resp)
	if item.ID != "INV006" || item.MinStock != model.DefaultMinStock || item.Status != model.StockStatusLowStock {
		t.Errorf("unexpected created item: %+v", item)
	}

	resp = do(t, "POST", base, admin, map[string]any{
		"name": "Ghost", "category": "Other", "stock": 1, "warehouse": "Nowhere", "price": 1,
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("unknown warehouse: expected 400, got %d", resp.StatusCode)
	}

	resp = do(t, "PUT", base+"/INV006", admin, map[string]int{"stock": 0})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update: expected 200, got %d", resp.StatusCode)
	}
	if updated := decode[model.InventoryItem](t, resp); updated.Status != model.StockStatusOutOfStock {
		t.Errorf("expected Out of Stock after update, got %s", updated.Status)
	}

	if resp := do(t, "PUT", base+"/INV999", admin, map[string]int{"stock": 1}); resp.StatusCode != http.StatusNotFound {
		t.Errorf("update missing: expected 404, got %d", resp.StatusCode)
	}

	filtered := decode[[]model.InventoryItem](t, do(t, "GET", base+"?category=Furniture", admin, nil))
	if len(filtered) != 1 || filtered[0].ID != "INV006" {
		t.Errorf("expected only INV006 for Furniture, got %+v", filtered)
	}

	if resp := do(t, "GET", base+"?minStock=abc", admin, nil); resp.StatusCode != http.StatusBadRequest {
		t.Errorf("bad bound: expected 400, got %d", resp.StatusCode)
	}

	removed := decode[map[string]bool](t, do(t, "DELETE", base+"/INV006", admin, nil))
	if !removed["removed"] {
		t.Error("expected INV006 to be removed")
	}
	removed = decode[map[string]bool](t, do(t, "DELETE", base+"/INV006", admin, nil))
	if removed["removed"] {
		t.Error("expected second delete to report nothing removed")
	}
	if resp := do(t, "GET", base+"/INV006", admin, nil); resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 after delete, got %d", resp.StatusCode)
	}
}

func TestWarehouseCRUD(t *testing.T) {
	server, _ := setupTestServer(t)
	admin := loginAs(t, server, model.RoleAdmin)
	base := server.URL + "/api/warehouses"

	resp := do(t, "POST", base, admin, map[string]any{"name": "North Depot", "location": "Boston, MA", "capacity": "10,000 sq ft"})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d", resp.StatusCode)
	}
	wh := decode[model.Warehouse](t, resp)
	if wh.ID != "WH006" || wh.Status != model.WarehouseStatusActive {
		t.Errorf("unexpected warehouse: %+v", wh)
	}

	if resp := do(t, "POST", base, admin, map[string]any{"name": "north depot"}); resp.StatusCode != http.StatusConflict {
		t.Errorf("duplicate name: expected 409, got %d", resp.StatusCode)
	}

	resp = do(t, "PUT", base+"/WH006", admin, map[string]any{"status": "Maintenance"})
	if got := decode[model.Warehouse](t, resp); got.Status != model.WarehouseStatusMaintenance {
		t.Errorf("expected Maintenance, got %s", got.Status)
	}

	list := decode[[]model.Warehouse](t, do(t, "GET", base+"?status=Maintenance", admin, nil))
	if len(list) != 2 {
		t.Errorf("expected 2 warehouses in maintenance, got %d", len(list))
	}
}

func TestTransferLifecycle(t *testing.T) {
	server, stores := setupTestServer(t)
	manager := loginAs(t, server, model.RoleManager)
	base := server.URL + "/api/transfers"

	resp := do(t, "POST", base, manager, map[string]any{
		"itemName":      "iPhone 15 Pro",
		"quantity":      5,
		"fromWarehouse": "Main Warehouse",
		"toWarehouse":   "Tech Center",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d", resp.StatusCode)
	}
	tr := decode[model.Transfer](t, resp)
	if tr.ID != "TRF003" || tr.Status != model.TransferStatusPending || tr.RequestedBy != "manager" {
		t.Errorf("unexpected transfer: %+v", tr)
	}

	resp = do(t, "POST", base, manager, map[string]any{
		"itemName": "iPhone 15 Pro", "quantity": 1, "fromWarehouse": "Tech Center", "toWarehouse": "Tech Center",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("same warehouse: expected 400, got %d", resp.StatusCode)
	}

	resp = do(t, "PUT", base+"/TRF003/status", manager, map[string]string{"status": "Completed"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("complete: expected 200, got %d", resp.StatusCode)
	}
	if done := decode[model.Transfer](t, resp); done.CompletedDate == "" {
		t.Error("expected completedDate to be set")
	}

	resp = do(t, "PUT", base+"/TRF003/status", manager, map[string]string{"status": "Pending"})
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("reopen: expected 409, got %d", resp.StatusCode)
	}

	if resp := do(t, "DELETE", base+"/TRF003", manager, nil); resp.StatusCode != http.StatusForbidden {
		t.Errorf("manager delete: expected 403, got %d", resp.StatusCode)
	}
	if got := stores.Transfers.Get(context.Background(), "TRF003"); got == nil {
		t.Error("transfer should survive a forbidden delete")
	}
}

func TestDashboard(t *testing.T) {
	server, _ := setupTestServer(t)

	staffStats := decode[map[string]any](t, do(t, "GET", server.URL+"/api/dashboard", loginAs(t, server, model.RoleStaff), nil))
	if staffStats["totalStock"] != float64(245) {
		t.Errorf("expected totalStock 245, got %v", staffStats["totalStock"])
	}
	if staffStats["lowStockCount"] != float64(2) {
		t.Errorf("expected lowStockCount 2, got %v", staffStats["lowStockCount"])
	}
	if _, ok := staffStats["recentTransfers"]; ok {
		t.Error("staff should not see recent transfers")
	}

	managerStats := decode[map[string]any](t, do(t, "GET", server.URL+"/api/dashboard", loginAs(t, server, model.RoleManager), nil))
	if recent, _ := managerStats["recentTransfers"].([]any); len(recent) != 2 {
		t.Errorf("expected 2 recent transfers for manager, got %v", managerStats["recentTransfers"])
	}
}

func TestInventoryExport(t *testing.T) {
	server, _ := setupTestServer(t)
	manager := loginAs(t, server, model.RoleManager)

	resp := do(t, "GET", server.URL+"/api/inventory/export?warehouse=Main+Warehouse", manager, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("unexpected content type %q", ct)
	}
	if cd := resp.Header.Get("Content-Disposition"); !strings.Contains(cd, "inventory-export.csv") {
		t.Errorf("unexpected content disposition %q", cd)
	}
	data, _ := io.ReadAll(resp.Body)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 || !strings.Contains(lines[1], "iPhone 15 Pro") {
		t.Errorf("unexpected export:\n%s", data)
	}
}

func TestInventoryImport(t *testing.T) {
	server, stores := setupTestServer(t)
	manager := loginAs(t, server, model.RoleManager)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, _ := mw.CreateFormFile("file", "items.csv")
	fw.Write([]byte("name,category,stock\nDesk,Furniture,3\nLamp,Other,7\n"))
	mw.Close()

	req, _ := http.NewRequest("POST", server.URL+"/api/inventory/import", &buf)
	req.Header.Set("Authorization", "Bearer "+manager)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("import request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	ack := decode[ImportResponse](t, resp)
	if ack.Rows != 2 || ack.Message != "Successfully imported 2 items from CSV" {
		t.Errorf("unexpected ack: %+v", ack)
	}
	if n := len(stores.Inventory.List(context.Background())); n != 5 {
		t.Errorf("import should not add items, have %d", n)
	}
}

func TestReports(t *testing.T) {
	server, _ := setupTestServer(t)
	manager := loginAs(t, server, model.RoleManager)

	resp := do(t, "GET", server.URL+"/api/reports/low-stock", manager, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	rep := decode[map[string]any](t, resp)
	if rows, _ := rep["rows"].([]any); len(rows) != 2 {
		t.Errorf("expected 2 low stock rows, got %v", rep["rows"])
	}

	if resp := do(t, "GET", server.URL+"/api/reports/bogus", manager, nil); resp.StatusCode != http.StatusBadRequest {
		t.Errorf("unknown type: expected 400, got %d", resp.StatusCode)
	}

	resp = do(t, "GET", server.URL+"/api/reports/inventory-valuation?format=csv", manager, nil)
	if cd := resp.Header.Get("Content-Disposition"); !strings.Contains(cd, "inventory-valuation-report-") {
		t.Errorf("unexpected content disposition %q", cd)
	}
}

func TestItemImage(t *testing.T) {
	server, _ := setupTestServer(t)
	manager := loginAs(t, server, model.RoleManager)
	url := server.URL + "/api/inventory/INV001/image"

	if resp := do(t, "GET", url, manager, nil); resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 before upload, got %d", resp.StatusCode)
	}

	img := image.NewRGBA(image.Rect(0, 0, 2048, 1024))
	for x := 0; x < 2048; x++ {
		img.Set(x, x%1024, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	png.Encode(&buf, img)

	req, _ := http.NewRequest("PUT", url, &buf)
	req.Header.Set("Authorization", "Bearer "+manager)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("upload: expected 200, got %d", resp.StatusCode)
	}
	if dims := decode[map[string]int](t, resp); dims["width"] != 1024 || dims["height"] != 512 {
		t.Errorf("unexpected dimensions: %v", dims)
	}

	resp = do(t, "GET", url, manager, nil)
	if ct := resp.Header.Get("Content-Type"); ct != "image/jpeg" {
		t.Errorf("expected image/jpeg, got %q", ct)
	}

	req, _ = http.NewRequest("PUT", url, strings.NewReader("not an image"))
	req.Header.Set("Authorization", "Bearer "+manager)
	bad, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	bad.Body.Close()
	if bad.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for non-image, got %d", bad.StatusCode)
	}
}

func TestUsersAdmin(t *testing.T) {
	server, stores := setupTestServer(t)
	admin := loginAs(t, server, model.RoleAdmin)

	user, err := stores.Users.Register(context.Background(), model.Registration{
		Email: "temp@example.com", Password: "password123", Name: "Temp", Role: model.RoleStaff,
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	users := decode[[]model.User](t, do(t, "GET", server.URL+"/api/users", admin, nil))
	if len(users) != 4 {
		t.Errorf("expected 4 users, got %d", len(users))
	}

	managerReg := model.Registration{Email: "boss@example.com", Password: "password123", Name: "Boss", Role: model.RoleManager}
	if resp := do(t, "POST", server.URL+"/api/users", loginAs(t, server, model.RoleManager), managerReg); resp.StatusCode != http.StatusForbidden {
		t.Errorf("manager creating user: expected 403, got %d", resp.StatusCode)
	}
	resp := do(t, "POST", server.URL+"/api/users", admin, managerReg)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("admin creating manager: expected 201, got %d", resp.StatusCode)
	}
	if created := decode[model.User](t, resp); created.Role != model.RoleManager {
		t.Errorf("expected manager, got %s", created.Role)
	}
	token := login(t, server, "boss@example.com", "password123")
	if resp := do(t, "GET", server.URL+"/api/warehouses", token, nil); resp.StatusCode != http.StatusOK {
		t.Errorf("created manager listing warehouses: expected 200, got %d", resp.StatusCode)
	}

	if resp := do(t, "DELETE", server.URL+"/api/users/2", admin, nil); resp.StatusCode != http.StatusBadRequest {
		t.Errorf("deleting demo account: expected 400, got %d", resp.StatusCode)
	}
	removed := decode[map[string]bool](t, do(t, "DELETE", server.URL+"/api/users/"+user.ID, admin, nil))
	if !removed["removed"] {
		t.Error("expected registered user to be removed")
	}
}
