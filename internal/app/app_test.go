package app_test

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/suite"
	"github.com/xw1nchester/dealscan-backend/internal/app"
	jwtauth "github.com/xw1nchester/dealscan-backend/internal/auth/jwt"
	"github.com/xw1nchester/dealscan-backend/internal/config"
	"github.com/xw1nchester/dealscan-backend/internal/market/store"
	storedb "github.com/xw1nchester/dealscan-backend/internal/market/store/db"
	"github.com/xw1nchester/dealscan-backend/internal/scan"
	scanhandler "github.com/xw1nchester/dealscan-backend/internal/scan/handler"
	pgclient "github.com/xw1nchester/dealscan-backend/pkg/client/postgresql"
	"go.uber.org/zap"
)

type APITestSuite struct {
	suite.Suite
	cfg      *config.Config
	dbClient *pgxpool.Pool
	logger   *zap.Logger
	baseUrl  string
	app      *app.App
}

// Needs the postgres instance of config/test.yml, set DEALSCAN_TEST_POSTGRES to run.
func TestSuite(t *testing.T) {
	if testing.Short() || os.Getenv("DEALSCAN_TEST_POSTGRES") == "" {
		t.Skip("DEALSCAN_TEST_POSTGRES is not set")
	}

	suite.Run(t, &APITestSuite{})
}

func (s *APITestSuite) SetupSuite() {
	cfg := config.MustLoadByPath("../../config/test.yml")

	pgClient, err := pgclient.NewClient(context.TODO(), cfg.PostgreSQL)
	s.Require().NoError(err)

	log := zap.NewNop()

	application := app.NewApp(log, cfg)

	s.cfg = cfg
	s.dbClient = pgClient
	s.logger = log
	s.baseUrl = fmt.Sprintf("http://localhost%s/api", cfg.HTTPServer.Address)
	s.app = application

	go func() {
		application.MustRun()
	}()

	time.Sleep(500 * time.Millisecond)
}

func (s *APITestSuite) TearDownSuite() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	s.Require().NoError(s.app.Shutdown(ctx))
	s.dbClient.Close()
}

func (s *APITestSuite) SetupTest() {
	s.applyMigrations(true)

	_, err := storedb.New(s.dbClient, s.logger).Upsert(context.Background(), []store.Location{
		{ID: 1, Retailer: "homedepot", StoreNumber: "0601", Name: "Home Depot", State: "CA", ZipCode: "90001", Latitude: 34.05, Longitude: -118.25, IsActive: true},
		{ID: 2, Retailer: "homedepot", StoreNumber: "0602", Name: "Home Depot", State: "CA", ZipCode: "90210", Latitude: 34.09, Longitude: -118.41, IsActive: true},
		{ID: 3, Retailer: "homedepot", StoreNumber: "0603", Name: "Home Depot", State: "CA", ZipCode: "91101", Latitude: 34.15, Longitude: -118.14, IsActive: true},
		{ID: 4, Retailer: "homedepot", StoreNumber: "0604", Name: "Home Depot", State: "CA", ZipCode: "90401", Latitude: 34.02, Longitude: -118.49, IsActive: false},
	})
	s.Require().NoError(err)
}

func (s *APITestSuite) TearDownTest() {
	s.applyMigrations(false)
}

func (s *APITestSuite) applyMigrations(isUp bool) {
	db, err := sql.Open("postgres", pgclient.DSN(s.cfg.PostgreSQL)+"?sslmode=disable")
	s.Require().NoError(err)
	defer db.Close()

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	s.Require().NoError(err)

	m, err := migrate.NewWithDatabaseInstance("file://../../migrations", "postgres", driver)
	s.Require().NoError(err)

	if isUp {
		err = m.Up()
	} else {
		err = m.Down()
	}

	s.Require().NoError(err)
}

func (s *APITestSuite) token(userID int, tier string) string {
	token, err := jwtauth.NewManager(s.cfg.JWT).GenerateToken(jwtauth.UserClaims{UserID: userID, Tier: tier})
	s.Require().NoError(err)
	return token
}

func (s *APITestSuite) do(method, path, token string, body any) *http.Response {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, s.baseUrl+path, reader)
	s.Require().NoError(err)

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)

	return resp
}

func decodeResponseBody[T any](resp *http.Response) (*T, error) {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var result T
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal JSON: %w", err)
	}

	return &result, nil
}

func (s *APITestSuite) TestPing() {
	response, err := http.Get(s.baseUrl + "/ping")
	s.Require().NoError(err)

	byteBody, err := io.ReadAll(response.Body)
	s.NoError(err)

	response.Body.Close()

	s.Equal(http.StatusOK, response.StatusCode)
	s.Equal("pong", string(byteBody))
}

func (s *APITestSuite) TestScanLifecycle() {
	token := s.token(1, "basic")

	resp := s.do(http.MethodPost, "/scans", token, map[string]any{
		"zipCode":       "90001",
		"clearanceOnly": true,
		"sortBy":        "price-low",
	})
	s.Require().Equal(http.StatusAccepted, resp.StatusCode)

	started, err := decodeResponseBody[scan.Scan](resp)
	s.Require().NoError(err)
	s.Equal(scan.StatusPending, started.Status)
	s.Equal(2, started.StoreCount)

	path := "/scans/" + started.ID.String()

	s.Eventually(func() bool {
		p, err := decodeResponseBody[scan.Progress](s.do(http.MethodGet, path+"/progress", token, nil))
		return err == nil && p.Status.IsTerminal()
	}, 10*time.Second, 100*time.Millisecond)

	finished, err := decodeResponseBody[scan.Scan](s.do(http.MethodGet, path, token, nil))
	s.Require().NoError(err)
	s.Equal(scan.StatusCompleted, finished.Status)
	s.Equal(finished.ResultCount, finished.ClearanceCount)

	resp = s.do(http.MethodGet, path+"/results?pageSize=5", token, nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	page, err := decodeResponseBody[scanhandler.ResultsPageResponse](resp)
	s.Require().NoError(err)
	s.Equal(finished.ResultCount, page.Total)
	s.LessOrEqual(len(page.Results), 5)
	for _, r := range page.Results {
		s.True(r.IsOnClearance)
	}
}

func (s *APITestSuite) TestScanBelongsToOwner() {
	resp := s.do(http.MethodPost, "/scans", s.token(1, "free"), map[string]any{"zipCode": "90001"})
	s.Require().Equal(http.StatusAccepted, resp.StatusCode)

	started, err := decodeResponseBody[scan.Scan](resp)
	s.Require().NoError(err)

	resp = s.do(http.MethodGet, "/scans/"+started.ID.String(), s.token(2, "free"), nil)
	resp.Body.Close()

	s.Equal(http.StatusNotFound, resp.StatusCode)

	s.Eventually(func() bool {
		sc, err := decodeResponseBody[scan.Scan](s.do(http.MethodGet, "/scans/"+started.ID.String(), s.token(1, "free"), nil))
		return err == nil && sc.Status.IsTerminal()
	}, 10*time.Second, 100*time.Millisecond)
}

func (s *APITestSuite) TestScanRequiresToken() {
	resp := s.do(http.MethodPost, "/scans", "", map[string]any{"zipCode": "90001"})
	resp.Body.Close()

	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}
