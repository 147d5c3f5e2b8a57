package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/textproto"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/portfolio/internal/db"
	"github.com/portfolio/internal/router"
	"github.com/portfolio/internal/service"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type e2eSuite struct {
	handler   http.Handler
	public    httpClient
	admin     httpClient
	baseURL   string
	uploadDir string
	adminPass string
	user      db.User
	other     db.User
	gdb       *gorm.DB
}

type httpClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type localClient struct {
	handler http.Handler
	jar     http.CookieJar
}

func newLocalClient(handler http.Handler, withJar bool) *localClient {
	var jar http.CookieJar
	if withJar {
		if j, err := cookiejar.New(nil); err == nil {
			jar = j
		}
	}
	return &localClient{handler: handler, jar: jar}
}

func (c *localClient) Do(req *http.Request) (*http.Response, error) {
	if c.jar != nil {
		for _, cookie := range c.jar.Cookies(req.URL) {
			req.AddCookie(cookie)
		}
	}
	w := httptest.NewRecorder()
	c.handler.ServeHTTP(w, req)
	resp := w.Result()
	if c.jar != nil {
		c.jar.SetCookies(req.URL, resp.Cookies())
	}
	return resp, nil
}

func TestE2E_AllInterfaces(t *testing.T) {
	suite := newE2ESuite(t)

	t.Run("public endpoints", suite.testPublicEndpoints)
	t.Run("unauthenticated", suite.testUnauthenticated)
	suite.login(t)
	t.Run("admin pages", suite.testAdminPages)
	t.Run("portfolio reorder", suite.testPortfolioReorder)
	t.Run("profile ownership", suite.testProfileOwnership)
	t.Run("contact forms", suite.testContactForms)
	t.Run("database", suite.testDatabase)
	t.Run("uploads", suite.testUploads)
	t.Run("landing", suite.testLanding)
	t.Run("logout", suite.testLogout)
}

func newE2ESuite(t *testing.T) *e2eSuite {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:e2e-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			sqlDB.Close()
		}
	})

	users := service.NewUserService(gdb)
	user, err := users.Create(service.UserInput{Name: "Admin", Email: "admin@example.com", Password: "e2e-secret"})
	if err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	other, err := users.Create(service.UserInput{Name: "Other", Email: "other@example.com", Password: "e2e-secret"})
	if err != nil {
		t.Fatalf("failed to seed second user: %v", err)
	}

	uploadDir := t.TempDir()
	engine, _, err := router.SetupRouter(gdb, router.Options{
		SessionSecret: "test-session-secret",
		UploadDir:     uploadDir,
		UploadURL:     "/static/uploads",
		StaticDir:     t.TempDir(),
		PollInterval:  20 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("failed to set up router: %v", err)
	}

	return &e2eSuite{
		handler:   engine,
		public:    newLocalClient(engine, false),
		admin:     newLocalClient(engine, true),
		baseURL:   "http://example.test",
		uploadDir: uploadDir,
		adminPass: "e2e-secret",
		user:      *user,
		other:     *other,
		gdb:       gdb,
	}
}

func (s *e2eSuite) login(t *testing.T) {
	t.Helper()
	form := url.Values{
		"email":    {s.user.Email},
		"password": {s.adminPass},
	}

	req, err := http.NewRequest(http.MethodPost, s.baseURL+"/login", strings.NewReader(form.Encode()))
	if err != nil {
		t.Fatalf("failed to create login request: %v", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.admin.Do(req)
	if err != nil {
		t.Fatalf("login request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusFound {
		t.Fatalf("login failed, status %d", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/admin/dashboard" {
		t.Fatalf("unexpected login redirect %q", loc)
	}
}

func (s *e2eSuite) testPublicEndpoints(t *testing.T) {
	checkBody := func(name, path, expect string, code int) {
		t.Helper()
		resp := s.mustRequest(t, s.public, http.MethodGet, path, nil, nil)
		defer resp.Body.Close()
		if resp.StatusCode != code {
			t.Fatalf("%s: expected status %d, got %d", name, code, resp.StatusCode)
		}
		body := readBody(t, resp)
		if expect != "" && !strings.Contains(body, expect) {
			t.Fatalf("%s: response does not contain %q", name, expect)
		}
	}

	checkBody("landing", "/", "Portfolio", http.StatusOK)
	checkBody("landing json", "/api/landing", `"settings"`, http.StatusOK)
	checkBody("healthz", "/healthz", `"status":"ok"`, http.StatusOK)
	checkBody("login page", "/login", `name="password"`, http.StatusOK)
	checkBody("countries", "/api/locations/countries", "[]", http.StatusOK)
	checkBody("regions of missing country", "/api/locations/countries/999/regions", "", http.StatusNotFound)
}

func (s *e2eSuite) testUnauthenticated(t *testing.T) {
	resp := s.mustRequest(t, s.public, http.MethodGet, "/api/admin/portfolio", nil, nil)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}

	resp = s.mustRequest(t, s.public, http.MethodGet, "/admin/dashboard", nil, nil)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusFound || resp.Header.Get("Location") != "/login" {
		t.Fatalf("expected redirect to /login, got %d", resp.StatusCode)
	}

	form := url.Values{"email": {s.user.Email}, "password": {"wrong-password"}}
	req, _ := http.NewRequest(http.MethodPost, s.baseURL+"/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, _ = s.public.Do(req)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("wrong password expected 401, got %d", resp.StatusCode)
	}
}

func (s *e2eSuite) testAdminPages(t *testing.T) {
	pages := []string{
		"/admin/dashboard",
		"/admin/profile",
		"/admin/experience",
		"/admin/skills",
		"/admin/projects",
		"/admin/portfolio",
		"/admin/contact",
		"/admin/messages",
		"/admin/content",
		"/admin/analytics",
		"/admin/database",
		"/admin/settings",
	}

	for _, path := range pages {
		resp := s.mustRequest(t, s.admin, http.MethodGet, path, nil, nil)
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("%s expected 200, got %d", path, resp.StatusCode)
		}
		if body := readBody(t, resp); !strings.Contains(body, "is-active") {
			t.Fatalf("%s: expected active menu item", path)
		}
	}
}

func (s *e2eSuite) testPortfolioReorder(t *testing.T) {
	ids := make(map[string]uint)
	for i, title := range []string{"A", "B", "C"} {
		resp := s.mustRequestJSON(t, s.admin, http.MethodPost, "/api/admin/portfolio", map[string]interface{}{
			"title":       title,
			"description": "Item " + title,
			"category":    "Web",
		})
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("create %s expected 201, got %d: %s", title, resp.StatusCode, readBody(t, resp))
		}
		var created struct {
			ID       uint `json:"id"`
			Order    int  `json:"order"`
			IsActive bool `json:"is_active"`
		}
		decodeJSON(t, resp, &created)
		if created.Order != i+1 || !created.IsActive {
			t.Fatalf("create %s: unexpected order %d active %t", title, created.Order, created.IsActive)
		}
		ids[title] = created.ID
	}

	resp := s.mustRequestJSON(t, s.admin, http.MethodPost, "/api/admin/portfolio/reorder", map[string]interface{}{
		"portfolioItems": []map[string]interface{}{
			{"id": ids["C"], "order": 1},
			{"id": ids["A"], "order": 2},
			{"id": ids["B"], "order": 3},
		},
	})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("reorder expected 200, got %d", resp.StatusCode)
	}

	resp = s.mustRequest(t, s.admin, http.MethodGet, "/api/admin/portfolio", nil, nil)
	defer resp.Body.Close()
	var list []struct {
		Title string `json:"title"`
	}
	decodeJSON(t, resp, &list)
	var titles []string
	for _, item := range list {
		titles = append(titles, item.Title)
	}
	if strings.Join(titles, ",") != "C,A,B" {
		t.Fatalf("unexpected order after reorder: %v", titles)
	}

	resp = s.mustRequestJSON(t, s.admin, http.MethodPost, "/api/admin/portfolio/reorder", map[string]interface{}{
		"items": []map[string]interface{}{{"id": ids["A"], "order": 1}, {"id": 9999, "order": 2}},
	})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("reorder with unknown id expected 404, got %d", resp.StatusCode)
	}

	resp = s.mustRequest(t, s.admin, http.MethodDelete, "/api/admin/portfolio/"+idStr(ids["B"]), nil, nil)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete expected 204, got %d", resp.StatusCode)
	}
}

func (s *e2eSuite) testProfileOwnership(t *testing.T) {
	resp := s.mustRequestJSON(t, s.admin, http.MethodPost, "/api/admin/profile", map[string]interface{}{
		"first_name": "Ada",
		"last_name":  "Lovelace",
		"title":      "Engineer",
		"bio":        "**Analytical** engines.",
	})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create profile expected 201, got %d", resp.StatusCode)
	}
	var own struct {
		ID       uint   `json:"id"`
		FullName string `json:"full_name"`
	}
	decodeJSON(t, resp, &own)
	if own.FullName != "Ada Lovelace" {
		t.Fatalf("unexpected full name %q", own.FullName)
	}

	otherProfile, _, err := service.NewProfileService(s.gdb).Upsert(s.other.ID, service.ProfileInput{
		FirstName: "Grace", LastName: "Hopper", Title: "Admiral",
	})
	if err != nil {
		t.Fatalf("failed to seed other profile: %v", err)
	}

	resp = s.mustRequestJSON(t, s.admin, http.MethodPut, "/api/admin/profile/"+idStr(otherProfile.ID), map[string]interface{}{
		"first_name": "Mallory", "last_name": "X", "title": "Intruder",
	})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("foreign profile update expected 403, got %d", resp.StatusCode)
	}
	if body := readBody(t, resp); !strings.Contains(body, `"Unauthorized"`) {
		t.Fatalf("unexpected 403 body %q", body)
	}

	resp = s.mustRequest(t, s.admin, http.MethodGet, "/api/admin/user/"+idStr(s.other.ID), nil, nil)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("foreign user read expected 403, got %d", resp.StatusCode)
	}
}

func (s *e2eSuite) testContactForms(t *testing.T) {
	resp := s.mustRequestJSON(t, s.public, http.MethodPost, "/api/contact", map[string]interface{}{
		"name":    "Visitor",
		"email":   "visitor@example.com",
		"subject": "Hello",
		"message": "Nice portfolio",
	})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("submit expected 201, got %d", resp.StatusCode)
	}
	var submitted struct {
		ID uint `json:"id"`
	}
	decodeJSON(t, resp, &submitted)

	resp = s.mustRequest(t, s.admin, http.MethodPost, "/api/admin/contact-forms/"+idStr(submitted.ID)+"/read", nil, nil)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("mark read expected 200, got %d", resp.StatusCode)
	}

	resp = s.mustRequest(t, s.admin, http.MethodGet, "/api/admin/contact-forms/counts", nil, nil)
	defer resp.Body.Close()
	var counts map[string]int
	decodeJSON(t, resp, &counts)
	if counts["read"] != 1 || counts["new"] != 0 {
		t.Fatalf("unexpected counts %v", counts)
	}

	resp = s.mustRequest(t, s.admin, http.MethodGet, "/api/admin/contact-forms?status=read", nil, nil)
	defer resp.Body.Close()
	var list []map[string]interface{}
	decodeJSON(t, resp, &list)
	if len(list) != 1 {
		t.Fatalf("expected 1 read message, got %d", len(list))
	}
}

func (s *e2eSuite) testDatabase(t *testing.T) {
	for path, key := range map[string]string{
		"/api/admin/database/tables": `"tables":[`,
		"/api/admin/database/stats":  `"stats":{`,
		"/api/admin/database/events": `"events":[`,
	} {
		resp := s.mustRequest(t, s.admin, http.MethodGet, path, nil, nil)
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("%s expected 200, got %d", path, resp.StatusCode)
		}
		body := readBody(t, resp)
		if !strings.Contains(body, `"success":true`) || !strings.Contains(body, key) {
			t.Fatalf("%s: expected success with %s, got %s", path, key, body)
		}
	}

	resp := s.mustRequest(t, s.admin, http.MethodPost, "/api/admin/database/backup", nil, nil)
	defer resp.Body.Close()
	var backup struct {
		Success  bool   `json:"success"`
		BackupID string `json:"backup_id"`
	}
	decodeJSON(t, resp, &backup)
	if !backup.Success || !strings.HasPrefix(backup.BackupID, "backup_") {
		t.Fatalf("unexpected backup result %+v", backup)
	}

	resp = s.mustRequest(t, s.admin, http.MethodGet, "/api/admin/database/stats", nil, nil)
	defer resp.Body.Close()
	var stats struct {
		Stats struct {
			LastBackup string `json:"last_backup"`
		} `json:"stats"`
	}
	decodeJSON(t, resp, &stats)
	if stats.Stats.LastBackup == "Never" || stats.Stats.LastBackup == "" {
		t.Fatalf("expected last backup to be recorded, got %q", stats.Stats.LastBackup)
	}
}

func (s *e2eSuite) testUploads(t *testing.T) {
	resp := s.uploadTestImage(t)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("upload expected 201, got %d: %s", resp.StatusCode, readBody(t, resp))
	}
	var uploaded struct {
		URL    string `json:"url"`
		Width  int    `json:"width"`
		Height int    `json:"height"`
	}
	decodeJSON(t, resp, &uploaded)
	if uploaded.Width != 4 || uploaded.Height != 4 {
		t.Fatalf("unexpected dimensions %dx%d", uploaded.Width, uploaded.Height)
	}

	name := uploaded.URL[strings.LastIndex(uploaded.URL, "/")+1:]
	resp = s.mustRequest(t, s.public, http.MethodGet, "/uploads/"+name, nil, nil)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("uploaded file expected 200, got %d", resp.StatusCode)
	}
}

func (s *e2eSuite) testLanding(t *testing.T) {
	resp := s.mustRequest(t, s.public, http.MethodGet, "/", nil, nil)
	defer resp.Body.Close()
	body := readBody(t, resp)
	if !strings.Contains(body, "Ada Lovelace") || !strings.Contains(body, "<strong>Analytical</strong>") {
		t.Fatalf("landing page missing profile content")
	}
	if !strings.Contains(body, "Item C") || strings.Contains(body, "Item B") {
		t.Fatalf("landing page portfolio section out of date")
	}

	resp = s.mustRequest(t, s.admin, http.MethodGet, "/api/admin/analytics?hours=24", nil, nil)
	defer resp.Body.Close()
	var analytics struct {
		Hours    int `json:"hours"`
		Overview struct {
			TotalPageViews int64 `json:"total_page_views"`
		} `json:"overview"`
		Trend []map[string]interface{} `json:"trend"`
	}
	decodeJSON(t, resp, &analytics)
	if analytics.Hours != 24 || len(analytics.Trend) != 24 {
		t.Fatalf("unexpected trend window %d/%d", analytics.Hours, len(analytics.Trend))
	}
	if analytics.Overview.TotalPageViews < 2 {
		t.Fatalf("expected landing visits to be counted, got %d", analytics.Overview.TotalPageViews)
	}
}

func (s *e2eSuite) testLogout(t *testing.T) {
	resp := s.mustRequest(t, s.admin, http.MethodGet, "/logout", nil, nil)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("logout expected 302, got %d", resp.StatusCode)
	}

	resp = s.mustRequest(t, s.admin, http.MethodGet, "/api/admin/user", nil, nil)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("after logout expected 401, got %d", resp.StatusCode)
	}
}

func (s *e2eSuite) uploadTestImage(t *testing.T) *http.Response {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, color.RGBA{R: 10, G: 20, B: 200, A: 255})
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode png: %v", err)
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	partHeader := textproto.MIMEHeader{}
	partHeader.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, "image", "test.png"))
	partHeader.Set("Content-Type", "image/png")
	part, err := writer.CreatePart(partHeader)
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	if _, err := part.Write(buf.Bytes()); err != nil {
		t.Fatalf("failed to write image: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close writer: %v", err)
	}

	headers := map[string]string{
		"Content-Type": writer.FormDataContentType(),
	}
	return s.mustRequest(t, s.admin, http.MethodPost, "/api/admin/uploads", body, headers)
}

func (s *e2eSuite) mustRequest(t *testing.T, client httpClient, method, path string, body io.Reader, headers map[string]string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, s.baseURL+path, body)
	if err != nil {
		t.Fatalf("failed to build request %s %s: %v", method, path, err)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("request %s %s failed: %v", method, path, err)
	}
	return resp
}

func (s *e2eSuite) mustRequestJSON(t *testing.T, client httpClient, method, path string, payload map[string]interface{}) *http.Response {
	t.Helper()
	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("failed to marshal payload: %v", err)
	}
	headers := map[string]string{"Content-Type": "application/json"}
	return s.mustRequest(t, client, method, path, bytes.NewReader(data), headers)
}

func decodeJSON(t *testing.T, resp *http.Response, dst interface{}) {
	t.Helper()
	body := readBody(t, resp)
	if err := json.Unmarshal([]byte(body), dst); err != nil {
		t.Fatalf("failed to decode json: %v\nbody=%s", err, body)
	}
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response body: %v", err)
	}
	return string(data)
}

func idStr(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
