package echoapi_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"

	echoapi "github.com/yaohuihuang316-coder/darasa/apps/api/echo"
	"github.com/yaohuihuang316-coder/darasa/core"
	"github.com/yaohuihuang316-coder/darasa/core/assignment"
	inmemdb "github.com/yaohuihuang316-coder/darasa/storage/database/inmem"
	testutil "github.com/yaohuihuang316-coder/darasa/tests"
)

var errMissingToken = httpErr{Error: "missing or malformed jwt"}

type testLogger struct{}

func (testLogger) Debug(msg string, args ...interface{}) {}
func (testLogger) Info(msg string, args ...interface{})  {}
func (testLogger) Warn(msg string, args ...interface{})  {}
func (testLogger) Error(msg string, args ...interface{}) {}
func (testLogger) Fatal(msg string, args ...interface{}) {}

func setup(t *testing.T) (*echoapi.Server, assignment.Repository, *core.Config) {
	t.Helper()

	testutil.InitValidators()

	conf := &core.Config{
		AppName:   "Darasa",
		Env:       "TEST",
		TestMode:  true,
		SecretKey: "test-secret-key",
	}

	db, err := inmemdb.Open()
	if err != nil {
		t.Fatalf("inmemdb.Open(): %v", err)
	}
	repo := inmemdb.NewAssignmentRepository(db)
	svc := assignment.NewService(db, repo, testLogger{})

	app := echoapi.NewServer(echoapi.ServerDeps{
		Conf:          conf,
		Logger:        testLogger{},
		AssignmentSvc: svc,
	})
	return app, repo, conf
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func getToken(t *testing.T, conf *core.Config, actor assignment.Actor) string {
	t.Helper()

	claims := echoapi.Claims{
		StandardClaims: jwt.StandardClaims{
			Subject:   actor.ID,
			ExpiresAt: time.Now().Add(time.Hour).Unix(),
		},
		Role: string(actor.Role),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(conf.SecretKey))
	if err != nil {
		t.Fatalf("getToken(): %v", err)
	}
	return token
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj(): %v", err)
	}
	return data
}

func jsonBytesEqual(b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	return reflect.DeepEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()

	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	if tt.wantData == nil {
		return
	}
	ok, err := jsonBytesEqual(rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}
