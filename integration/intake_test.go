package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/langpal/langpal-api/config"
	"github.com/langpal/langpal-api/config/router"
	"github.com/langpal/langpal-api/domain"
	"github.com/langpal/langpal-api/domain/export"
	"github.com/langpal/langpal-api/internal/kvstore"
	"github.com/langpal/langpal-api/internal/log"
	"github.com/langpal/langpal-api/internal/models"
	"github.com/langpal/langpal-api/internal/notify"
	"github.com/stretchr/testify/suite"
)

var keyPattern = regexp.MustCompile(`^waitlist:a@x\.com:\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}\.\d{3}Z$`)

// fakeResend records every email posted to it.
type fakeResend struct {
	mu     sync.Mutex
	emails []map[string]any
	server *httptest.Server
}

func newFakeResend() *fakeResend {
	f := &fakeResend{}
	f.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)

		f.mu.Lock()
		f.emails = append(f.emails, body)
		f.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"email_test"}`))
	}))
	return f
}

func (f *fakeResend) sent() []map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]map[string]any(nil), f.emails...)
}

type IntakeAPITestSuite struct {
	suite.Suite
	logger  *log.Logger
	resend  *fakeResend
	store   kvstore.Store
	server  *httptest.Server
	baseURL string
}

func (suite *IntakeAPITestSuite) SetupSuite() {
	suite.logger = log.NewLogger(io.Discard, slog.LevelError)
	suite.resend = newFakeResend()
}

func (suite *IntakeAPITestSuite) TearDownSuite() {
	suite.resend.server.Close()
}

func (suite *IntakeAPITestSuite) SetupTest() {
	suite.store, suite.server = suite.startApp(suite.resend.server.URL)
	suite.baseURL = suite.server.URL
}

func (suite *IntakeAPITestSuite) TearDownTest() {
	suite.server.Close()
	_ = suite.store.Close()
}

// startApp wires the real stack against an in-memory sqlite store and the given Resend URL.
func (suite *IntakeAPITestSuite) startApp(resendURL string) (kvstore.Store, *httptest.Server) {
	db, err := config.NewSQLiteDatabase(suite.logger, ":memory:")
	suite.Require().NoError(err)
	suite.Require().NoError(config.AutoMigrate(suite.logger, db, &models.KVEntry{}))
	store := kvstore.NewGormStore(db)

	rs := router.CreateRouterService(suite.logger, nil, &router.RouterConfig{
		RateLimitRequests: 100,
		RateLimitWindow:   time.Minute,
		RequestTimeout:    10 * time.Second,
	})

	mailCfg := &notify.MailConfig{
		ResendAPIKey:        "re_test",
		ResendBaseURL:       resendURL,
		To:                  []string{"teamlangpal@gmail.com"},
		ContactFrom:         "LangPal Contact Form <onboarding@resend.dev>",
		TeamApplicationFrom: "LangPal Team Applications <onboarding@resend.dev>",
		Timeout:             2 * time.Second,
		BreakerFailures:     5,
		BreakerCooldown:     time.Minute,
	}
	sender, err := mailCfg.NewSender(nil)
	suite.Require().NoError(err)

	appConfig := &config.ApplicationConfig{
		KVStore:       store,
		RouterService: rs,
		Logger:        suite.logger,
		Notifier:      notify.NewNotifier(mailCfg, sender, suite.logger, rs.MetricsRegistry()),
		Export:        &export.ExportConfig{},
		Config: &config.AppConfig{
			KVStore: &config.KVStoreConfig{Driver: kvstore.DriverSQLite, WriteTimeout: 5 * time.Second},
		},
	}
	domain.SetupCoreDomain(appConfig)

	return store, httptest.NewServer(rs.GetEngine())
}

func (suite *IntakeAPITestSuite) postJSON(baseURL, path, body string) (int, map[string]any) {
	resp, err := http.Post(baseURL+path, "application/json", bytes.NewBufferString(body))
	suite.Require().NoError(err)
	defer resp.Body.Close()

	var response map[string]any
	suite.Require().NoError(json.NewDecoder(resp.Body).Decode(&response))
	return resp.StatusCode, response
}

func (suite *IntakeAPITestSuite) TestHealthCheck() {
	resp, err := http.Get(suite.baseURL + "/health")
	suite.Require().NoError(err)
	defer resp.Body.Close()

	suite.Equal(http.StatusOK, resp.StatusCode)

	var response map[string]any
	suite.Require().NoError(json.NewDecoder(resp.Body).Decode(&response))

	suite.Equal(true, response["success"])
	data := response["data"].(map[string]any)
	suite.Equal(float64(1), data["store"])
	suite.Equal(float64(1), data["email"])
}

func (suite *IntakeAPITestSuite) TestWaitlistStoresRecordUnderCompositeKey() {
	code, response := suite.postJSON(suite.baseURL, "/waitlist",
		`{"name":"A","email":"a@x.com","phone":"1","consent":true}`)

	suite.Equal(http.StatusOK, code)
	suite.Equal(map[string]any{"success": true, "message": "Successfully joined waitlist!"}, response)

	entries, err := suite.store.GetByPrefix(context.Background(), "waitlist:a@x.com:")
	suite.Require().NoError(err)
	suite.Require().Len(entries, 1)

	suite.Regexp(keyPattern, entries[0].Key)
	suite.Equal("A", entries[0].Value["name"])
	suite.Equal("1", entries[0].Value["phone"])
	suite.Equal(true, entries[0].Value["consent"])
	suite.Empty(suite.resend.sent(), "waitlist signups do not send email")
}

func (suite *IntakeAPITestSuite) TestWaitlistRejectsMissingFields() {
	code, response := suite.postJSON(suite.baseURL, "/waitlist", `{"name":"A","email":"a@x.com"}`)

	suite.Equal(http.StatusBadRequest, code)
	suite.Equal(false, response["success"])
	suite.Equal("Missing required fields", response["error"])

	entries, err := suite.store.GetByPrefix(context.Background(), "waitlist:")
	suite.Require().NoError(err)
	suite.Empty(entries)
}

func (suite *IntakeAPITestSuite) TestContactWithoutConsentIsNotStoredOrSent() {
	before := len(suite.resend.sent())

	code, response := suite.postJSON(suite.baseURL, "/contact",
		`{"name":"B","email":"b@x.com","subject":"Hi","message":"Hello","consent":false}`)

	suite.Equal(http.StatusBadRequest, code)
	suite.Equal("Missing required fields", response["error"])

	entries, err := suite.store.GetByPrefix(context.Background(), "contact:")
	suite.Require().NoError(err)
	suite.Empty(entries)
	suite.Len(suite.resend.sent(), before)
}

func (suite *IntakeAPITestSuite) TestContactSendsOneEmail() {
	before := len(suite.resend.sent())

	code, response := suite.postJSON(suite.baseURL, "/contact",
		`{"name":"B","email":"b@x.com","subject":"Hi","message":"Hello","consent":true}`)

	suite.Equal(http.StatusOK, code)
	suite.Equal(true, response["success"])
	suite.Equal("Message sent successfully! We'll get back to you soon.", response["message"])

	emails := suite.resend.sent()[before:]
	suite.Require().Len(emails, 1)
	suite.Equal("LangPal Contact Form: Hi", emails[0]["subject"])
	suite.Equal("b@x.com", emails[0]["reply_to"])

	entries, err := suite.store.GetByPrefix(context.Background(), "contact:b@x.com:")
	suite.Require().NoError(err)
	suite.Len(entries, 1)
}

func (suite *IntakeAPITestSuite) TestContactSucceedsWhenProviderUnreachable() {
	dead := httptest.NewServer(http.NotFoundHandler())
	deadURL := dead.URL
	dead.Close()

	store, server := suite.startApp(deadURL)
	defer server.Close()
	defer store.Close()

	code, response := suite.postJSON(server.URL, "/contact",
		`{"name":"B","email":"b@x.com","subject":"Hi","message":"Hello","consent":true}`)

	suite.Equal(http.StatusOK, code)
	suite.Equal(true, response["success"])
	suite.Equal("Message received! We'll get back to you soon.", response["message"])

	entries, err := store.GetByPrefix(context.Background(), "contact:b@x.com:")
	suite.Require().NoError(err)
	suite.Len(entries, 1)
}

func (suite *IntakeAPITestSuite) TestTeamApplicationKeepsUnlistedPosition() {
	code, response := suite.postJSON(suite.baseURL, "/team-application",
		`{"name":"C","email":"c@x.com","phone":"2","position":"janitor"}`)

	suite.Equal(http.StatusOK, code)
	suite.Equal(true, response["success"])

	entries, err := suite.store.GetByPrefix(context.Background(), "team-application:c@x.com:")
	suite.Require().NoError(err)
	suite.Require().Len(entries, 1)
	suite.Equal("janitor", entries[0].Value["position"])
}

func (suite *IntakeAPITestSuite) TestTeamApplicationNotifiesStaff() {
	before := len(suite.resend.sent())

	code, response := suite.postJSON(suite.baseURL, "/team-application",
		`{"name":"C","email":"c@x.com","phone":"2","position":"UI/UX Engineer","marketingConsent":true}`)

	suite.Equal(http.StatusOK, code)
	suite.Equal("Application submitted successfully! We'll review it and get back to you soon.", response["message"])

	emails := suite.resend.sent()[before:]
	suite.Require().Len(emails, 1)
	suite.Equal("New Team Application: UI/UX Engineer", emails[0]["subject"])
}

func (suite *IntakeAPITestSuite) TestExportWaitlistReturnsHeaderPlusOneLinePerRecord() {
	for _, email := range []string{"a@x.com", "b@x.com"} {
		code, _ := suite.postJSON(suite.baseURL, "/waitlist",
			`{"name":"A","email":"`+email+`","phone":"1","consent":true}`)
		suite.Require().Equal(http.StatusOK, code)
	}

	resp, err := http.Get(suite.baseURL + "/export/waitlist")
	suite.Require().NoError(err)
	defer resp.Body.Close()

	suite.Equal(http.StatusOK, resp.StatusCode)
	suite.Equal("text/csv", resp.Header.Get("Content-Type"))
	suite.Contains(resp.Header.Get("Content-Disposition"), "langpal-waitlist.csv")

	body, err := io.ReadAll(resp.Body)
	suite.Require().NoError(err)

	lines := strings.Split(string(body), "\n")
	suite.Require().Len(lines, 3)
	suite.Equal(`"Name","Email","Phone","Consent","Timestamp"`, lines[0])
	suite.Contains(string(body), `"a@x.com"`)
	suite.Contains(string(body), `"b@x.com"`)
}

func (suite *IntakeAPITestSuite) TestExportEmptyDatasetReturnsHeaderOnly() {
	resp, err := http.Get(suite.baseURL + "/export/team-applications")
	suite.Require().NoError(err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	suite.Require().NoError(err)

	suite.Equal(http.StatusOK, resp.StatusCode)
	suite.Equal(`"Name","Email","Phone","Position","Marketing Consent","Timestamp"`, string(body))
}

func TestIntakeAPITestSuite(t *testing.T) {
	suite.Run(t, new(IntakeAPITestSuite))
}
