package echoapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trezcool/mahudhurio/core"
	"github.com/trezcool/mahudhurio/core/attendance"
	dummydb "github.com/trezcool/mahudhurio/storage/database/dummy"
	testutil "github.com/trezcool/mahudhurio/tests"
)

type testLogger struct{}

func (testLogger) Enable(bool)                  {}
func (testLogger) Debug(string, ...interface{}) {}
func (testLogger) Info(string, ...interface{})  {}
func (testLogger) Warn(string, ...interface{})  {}
func (testLogger) Error(string, ...interface{}) {}
func (testLogger) Fatal(string, ...interface{}) {}

func testConfig() *core.Config {
	return &core.Config{
		TestMode:  true,
		AppName:   "Mahudhurio",
		SecretKey: "test-secret",
		Workers:   2,
	}
}

func setup(t *testing.T) (*dummydb.AttendanceRepository, Server) {
	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("dummydb.Open() failed: %v", err)
	}
	repo := dummydb.NewAttendanceRepository(db)
	svc := attendance.NewService(repo, testConfig())

	app := NewServer(ServerDeps{
		Conf:          testConfig(),
		Logger:        testLogger{},
		AttendanceSvc: svc,
	})
	return repo, app
}

func seedSession(t *testing.T, repo *dummydb.AttendanceRepository) {
	repo.AddMember(testutil.NewMember("s1", "Amani Mwangi"), true)
	repo.AddMember(testutil.NewMember("s2", "Baraka Otieno"), true)
	date := testutil.Date(t, "2026-01-05")
	repo.AddRecord(testutil.NewRecord("s1", date, 1, attendance.StatusPresent, ""))
	repo.AddRecord(testutil.NewRecord("s2", date, 1, attendance.StatusAbsent, ""))
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	return req, rec
}

func queryBody(t *testing.T, action string, params interface{}) []byte {
	raw, err := json.Marshal(params)
	if err != nil {
		t.Fatalf("queryBody() failed: %v", err)
	}
	body, err := json.Marshal(attendance.Request{Action: action, Params: raw})
	if err != nil {
		t.Fatalf("queryBody() failed: %v", err)
	}
	return body
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	var resp map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decodeResponse() failed: %v; body = %s", err, rec.Body.String())
	}
	return resp
}

func Test_home(t *testing.T) {
	_, app := setup(t)

	req, rec := newRequest(http.MethodGet, "/")
	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Welcome to Mahudhurio API!", rec.Body.String())
}

func Test_attendanceApi_query(t *testing.T) {
	repo, app := setup(t)
	seedSession(t, repo)

	req, rec := newRequest(http.MethodPost, "/v1/analytics/query", queryBody(t, attendance.ActionSessionStats, attendance.SessionStatsRequest{
		CohortID:      testutil.Cohort,
		EpicID:        testutil.Epic,
		SessionDate:   "2026-01-05",
		SessionNumber: 1,
	}))
	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	assert.Equal(t, true, resp["success"])
	data, ok := resp["data"].(map[string]interface{})
	if !ok {
		t.Fatalf("missing data payload: %s", rec.Body.String())
	}
	assert.Equal(t, 50.0, data["attendancePercentage"])
	assert.Equal(t, 2.0, data["totalStudents"])
}

func Test_attendanceApi_query_errors(t *testing.T) {
	repo, app := setup(t)
	seedSession(t, repo)

	tests := []struct {
		name     string
		body     []byte
		wantCode int
	}{
		{name: "malformed body", body: []byte(`{"action": lol}`), wantCode: http.StatusBadRequest},
		{name: "unknown action", body: queryBody(t, "computeStats", map[string]string{}), wantCode: http.StatusBadRequest},
		{name: "missing params", body: []byte(`{"action":"getSessionStats"}`), wantCode: http.StatusBadRequest},
		{
			name:     "invalid params",
			body:     queryBody(t, attendance.ActionSessionStats, map[string]string{"cohortId": "c1"}),
			wantCode: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodPost, "/v1/analytics/query", tt.body)
			app.ServeHTTP(rec, req)
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

func Test_attendanceApi_query_trailingSlash(t *testing.T) {
	repo, app := setup(t)
	seedSession(t, repo)

	req, rec := newRequest(http.MethodPost, "/v1/analytics/query/", queryBody(t, attendance.ActionLeaderboard, attendance.LeaderboardRequest{
		CohortID: testutil.Cohort,
		EpicID:   testutil.Epic,
	}))
	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func Test_attendanceApi_query_publicLeaderboardHidesIds(t *testing.T) {
	repo, app := setup(t)
	seedSession(t, repo)

	req, rec := newRequest(http.MethodPost, "/v1/analytics/query", queryBody(t, attendance.ActionPublicLeaderboard, attendance.LeaderboardRequest{
		CohortID: testutil.Cohort,
		EpicID:   testutil.Epic,
	}))
	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), `"studentId"`)
	assert.Contains(t, rec.Body.String(), "Amani M.")
}
