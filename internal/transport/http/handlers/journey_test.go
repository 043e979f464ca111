package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"ems/internal/app/server"
	"ems/internal/platform/config"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   json.RawMessage `json:"error"`
}

func testConfig(dbURL string) config.Config {
	return config.Config{
		DatabaseURL:        dbURL,
		JWTSecret:          "test-secret",
		TokenLifetime:      time.Hour,
		FrontendDir:        "frontend/build",
		Environment:        "test",
		SeedAdminUsername:  "admin",
		SeedAdminEmail:     "admin@test.local",
		SeedAdminPassword:  "ChangeMe123!",
		RunMigrations:      true,
		RunSeed:            true,
		MigrationsDir:      "../../../../migrations",
		MaxBodyBytes:       1048576,
		RateLimitPerMinute: 1000,
	}
}

func TestEmployeeLifecycleJourney(t *testing.T) {
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	cfg := testConfig(dbURL)
	app, err := server.New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("failed to start app: %v", err)
	}
	defer app.Close()

	ts := httptest.NewServer(app.Router)
	defer ts.Close()
	client := ts.Client()

	suffix := time.Now().UnixNano()

	// Register a regular user and an admin.
	userEmail := fmt.Sprintf("journey-user-%d@example.com", suffix)
	userToken := register(t, client, ts.URL, fmt.Sprintf("journey-user-%d", suffix), userEmail, "user")

	adminEmail := fmt.Sprintf("journey-admin-%d@example.com", suffix)
	adminToken := register(t, client, ts.URL, fmt.Sprintf("journey-admin-%d", suffix), adminEmail, "admin")

	// Duplicate registration is a 400.
	resp := doJSON(t, client, http.MethodPost, ts.URL+"/api/auth/register", "", map[string]string{
		"username": fmt.Sprintf("journey-user-%d", suffix),
		"email":    userEmail,
		"password": "secret123",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for duplicate registration, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// Login round trip.
	loginToken := login(t, client, ts.URL, userEmail, "secret123")
	if loginToken == "" {
		t.Fatal("expected login token")
	}

	// Wrong password and unknown email answer identically so the endpoint
	// leaks nothing about which check failed.
	wrongStatus, wrongMsg := loginExpectFail(t, client, ts.URL, userEmail, "wrong-password")
	ghostStatus, ghostMsg := loginExpectFail(t, client, ts.URL, fmt.Sprintf("ghost-%d@example.com", suffix), "secret123")
	if wrongStatus != http.StatusUnauthorized || ghostStatus != http.StatusUnauthorized {
		t.Fatalf("expected 401 for both bad logins, got %d and %d", wrongStatus, ghostStatus)
	}
	if wrongMsg != ghostMsg || wrongMsg != "invalid email or password" {
		t.Fatalf("expected identical login failure messages, got %q and %q", wrongMsg, ghostMsg)
	}

	// Profile reflects the registered user.
	profile := getJSON(t, client, ts.URL+"/api/auth/profile", loginToken)
	var profileData struct {
		User struct {
			Email string `json:"email"`
			Role  string `json:"role"`
		} `json:"user"`
	}
	mustUnmarshal(t, profile, &profileData)
	if profileData.User.Email != userEmail || profileData.User.Role != "user" {
		t.Fatalf("unexpected profile: %+v", profileData.User)
	}

	// Create an employee as the regular user.
	empCode := fmt.Sprintf("JRN%d", suffix%1000000)
	empEmail := fmt.Sprintf("journey-emp-%d@example.com", suffix)
	created := postJSON(t, client, ts.URL+"/api/employees", userToken, map[string]string{
		"employee_id": empCode,
		"first_name":  "Journey",
		"last_name":   "Tester",
		"email":       empEmail,
		"department":  "Engineering",
		"position":    "Developer",
		"salary":      "85000",
		"hire_date":   "2023-04-15",
		"status":      "active",
	}, http.StatusCreated)
	var employee struct {
		ID     int64  `json:"id"`
		Code   string `json:"employee_id"`
		Status string `json:"status"`
		Salary string `json:"salary"`
	}
	mustUnmarshal(t, created, &employee)
	if employee.Code != empCode || employee.Status != "active" {
		t.Fatalf("unexpected created employee: %+v", employee)
	}

	// Duplicate code conflicts with 409.
	resp = doJSON(t, client, http.MethodPost, ts.URL+"/api/employees", userToken, map[string]string{
		"employee_id": empCode,
		"first_name":  "Dup",
		"last_name":   "Licate",
		"email":       fmt.Sprintf("dup-%d@example.com", suffix),
	})
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate employee code, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// Search finds the employee; a bogus department filter does not.
	listData := getJSON(t, client, fmt.Sprintf("%s/api/employees?search=%s", ts.URL, empCode), userToken)
	var list struct {
		Employees  []json.RawMessage `json:"employees"`
		Pagination struct {
			Page  int `json:"page"`
			Total int `json:"total"`
			Pages int `json:"pages"`
		} `json:"pagination"`
	}
	mustUnmarshal(t, listData, &list)
	if len(list.Employees) != 1 || list.Pagination.Total != 1 || list.Pagination.Pages != 1 {
		t.Fatalf("expected one search hit, got %d (total %d)", len(list.Employees), list.Pagination.Total)
	}

	listData = getJSON(t, client, ts.URL+"/api/employees?department=NoSuchDept", userToken)
	mustUnmarshal(t, listData, &list)
	if len(list.Employees) != 0 {
		t.Fatalf("expected no hits for unknown department, got %d", len(list.Employees))
	}

	// Update replaces every field; omitting status resets it to active and
	// omitting phone clears it.
	updated := putJSON(t, client, fmt.Sprintf("%s/api/employees/%d", ts.URL, employee.ID), userToken, map[string]string{
		"first_name": "Journey",
		"last_name":  "Tester",
		"email":      empEmail,
		"department": "Platform",
		"position":   "Senior Developer",
		"salary":     "95000",
	})
	var afterUpdate struct {
		Department *string `json:"department"`
		Position   *string `json:"position"`
		Status     string  `json:"status"`
		Phone      *string `json:"phone"`
	}
	mustUnmarshal(t, updated, &afterUpdate)
	if afterUpdate.Department == nil || *afterUpdate.Department != "Platform" {
		t.Fatalf("expected department Platform, got %+v", afterUpdate.Department)
	}
	if afterUpdate.Status != "active" {
		t.Fatalf("expected status reset to active, got %s", afterUpdate.Status)
	}
	if afterUpdate.Phone != nil {
		t.Fatalf("expected phone cleared by replace, got %v", *afterUpdate.Phone)
	}

	// Analytics endpoints respond with the aggregate shapes.
	stats := getJSON(t, client, ts.URL+"/api/analytics/dashboard-stats", userToken)
	var dashboard struct {
		TotalEmployees int `json:"total_employees"`
	}
	mustUnmarshal(t, stats, &dashboard)
	if dashboard.TotalEmployees < 1 {
		t.Fatalf("expected at least one employee in dashboard stats, got %d", dashboard.TotalEmployees)
	}

	salary := getJSON(t, client, ts.URL+"/api/analytics/salary-analysis", userToken)
	var analysis struct {
		SalaryRanges []struct {
			Range string `json:"salary_range"`
			Count int    `json:"count"`
		} `json:"salaryRanges"`
	}
	mustUnmarshal(t, salary, &analysis)
	if len(analysis.SalaryRanges) == 0 {
		t.Fatal("expected salary ranges")
	}

	metrics := getJSON(t, client, ts.URL+"/api/analytics/employee-metrics", userToken)
	var metricsData struct {
		StatusDistribution []json.RawMessage `json:"statusDistribution"`
	}
	mustUnmarshal(t, metrics, &metricsData)
	if len(metricsData.StatusDistribution) == 0 {
		t.Fatal("expected status distribution")
	}

	// PDF export.
	req, err := http.NewRequest(http.MethodGet, ts.URL+"/api/analytics/export", nil)
	if err != nil {
		t.Fatalf("build export request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+userToken)
	exportResp, err := client.Do(req)
	if err != nil {
		t.Fatalf("export request failed: %v", err)
	}
	defer exportResp.Body.Close()
	if exportResp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 from export, got %d", exportResp.StatusCode)
	}
	if ct := exportResp.Header.Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("expected pdf content type, got %s", ct)
	}
	pdfBytes, err := io.ReadAll(exportResp.Body)
	if err != nil {
		t.Fatalf("read export body: %v", err)
	}
	if !bytes.HasPrefix(pdfBytes, []byte("%PDF")) {
		t.Fatal("expected a PDF document")
	}

	// Regular users cannot delete.
	deleteURL := fmt.Sprintf("%s/api/employees/%d", ts.URL, employee.ID)
	if status := doDelete(t, client, deleteURL, userToken); status != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin delete, got %d", status)
	}

	// Admins can.
	if status := doDelete(t, client, deleteURL, adminToken); status != http.StatusOK {
		t.Fatalf("expected 200 for admin delete, got %d", status)
	}
	if status := doDelete(t, client, deleteURL, adminToken); status != http.StatusNotFound {
		t.Fatalf("expected 404 for second delete, got %d", status)
	}
}

func TestHealthAndReadiness(t *testing.T) {
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	app, err := server.New(context.Background(), testConfig(dbURL))
	if err != nil {
		t.Fatalf("failed to start app: %v", err)
	}
	defer app.Close()

	ts := httptest.NewServer(app.Router)
	defer ts.Close()

	for _, path := range []string{"/health", "/api/health", "/readyz"} {
		resp, err := ts.Client().Get(ts.URL + path)
		if err != nil {
			t.Fatalf("GET %s failed: %v", path, err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200 from %s, got %d", path, resp.StatusCode)
		}
	}
}

func register(t *testing.T, client *http.Client, baseURL, username, email, role string) string {
	t.Helper()
	data := postJSON(t, client, baseURL+"/api/auth/register", "", map[string]string{
		"username": username,
		"email":    email,
		"password": "secret123",
		"role":     role,
	}, http.StatusCreated)
	var out struct {
		Token string `json:"token"`
	}
	mustUnmarshal(t, data, &out)
	if out.Token == "" {
		t.Fatal("expected token from register")
	}
	return out.Token
}

func login(t *testing.T, client *http.Client, baseURL, email, password string) string {
	t.Helper()
	data := postJSON(t, client, baseURL+"/api/auth/login", "", map[string]string{
		"email":    email,
		"password": password,
	}, http.StatusOK)
	var out struct {
		Token string `json:"token"`
	}
	mustUnmarshal(t, data, &out)
	return out.Token
}

func loginExpectFail(t *testing.T, client *http.Client, baseURL, email, password string) (int, string) {
	t.Helper()
	resp := doJSON(t, client, http.MethodPost, baseURL+"/api/auth/login", "", map[string]string{
		"email":    email,
		"password": password,
	})
	defer resp.Body.Close()
	var env struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode login failure: %v", err)
	}
	return resp.StatusCode, env.Error.Message
}

func mustUnmarshal(t *testing.T, data json.RawMessage, out any) {
	t.Helper()
	if err := json.Unmarshal(data, out); err != nil {
		t.Fatalf("unmarshal data: %v", err)
	}
}

func doJSON(t *testing.T, client *http.Client, method, url, token string, payload any) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	req, err := http.NewRequest(method, url, bytes.NewReader(body))
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, url, err)
	}
	return resp
}

func postJSON(t *testing.T, client *http.Client, url, token string, payload any, wantStatus int) json.RawMessage {
	t.Helper()
	resp := doJSON(t, client, http.MethodPost, url, token, payload)
	defer resp.Body.Close()
	if resp.StatusCode != wantStatus {
		raw, _ := io.ReadAll(resp.Body)
		t.Fatalf("POST %s: expected %d, got %d: %s", url, wantStatus, resp.StatusCode, raw)
	}
	return decodeData(t, resp)
}

func putJSON(t *testing.T, client *http.Client, url, token string, payload any) json.RawMessage {
	t.Helper()
	resp := doJSON(t, client, http.MethodPut, url, token, payload)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		t.Fatalf("PUT %s: expected 200, got %d: %s", url, resp.StatusCode, raw)
	}
	return decodeData(t, resp)
}

func getJSON(t *testing.T, client *http.Client, url, token string) json.RawMessage {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("GET %s failed: %v", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		t.Fatalf("GET %s: expected 200, got %d: %s", url, resp.StatusCode, raw)
	}
	return decodeData(t, resp)
}

func doDelete(t *testing.T, client *http.Client, url, token string) int {
	t.Helper()
	req, err := http.NewRequest(http.MethodDelete, url, nil)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("DELETE %s failed: %v", url, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	return resp.StatusCode
}

func decodeData(t *testing.T, resp *http.Response) json.RawMessage {
	t.Helper()
	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if !env.Success {
		t.Fatalf("expected success envelope, got error: %s", env.Error)
	}
	return env.Data
}
