package router

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/deppfellow/ads-api/internal/config"
	"github.com/deppfellow/ads-api/internal/handler"
	"github.com/deppfellow/ads-api/internal/mocks"
	"github.com/deppfellow/ads-api/internal/server"
	"github.com/deppfellow/ads-api/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var registeredAt = time.Date(2024, 3, 1, 10, 20, 30, 0, time.UTC)

type testApp struct {
	router *echo.Echo
	users  *mocks.UserStore
	ads    *mocks.AdvertisementStore
}

func newTestApp(t *testing.T) testApp {
	t.Helper()

	logger := zerolog.Nop()
	s := &server.Server{
		Config: &config.Config{
			Primary: config.Primary{Env: "test"},
			Server:  config.ServerConfig{CORSAllowedOrigins: "*"},
		},
		Logger: &logger,
	}

	tx := &mocks.Transactor{}
	users := mocks.NewUserStore()
	ads := mocks.NewAdvertisementStore(users)
	ads.Now = func() time.Time { return registeredAt }

	h := &handler.Handlers{
		Health:        handler.NewHealthHandlerWithChecks(s, time.Second),
		OpenAPI:       handler.NewOpenAPIHandler(s),
		User:          handler.NewUserHandler(s, service.NewUserService(tx, users, nil, &logger)),
		Advertisement: handler.NewAdvertisementHandler(s, service.NewAdvertisementService(tx, ads)),
	}

	return testApp{router: NewRouter(s, h), users: users, ads: ads}
}

func (a testApp) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}

	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func createdID(t *testing.T, rec *httptest.ResponseRecorder) int64 {
	t.Helper()
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.NotZero(t, res.ID)
	return res.ID
}

const success = `{"status":"success"}`

func TestUserLifecycle(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(t, http.MethodPost, "/user", `{"username":"user3","email":"user3@mail.com","password":"12345"}`)
	id := createdID(t, rec)
	path := "/user/" + strconv.FormatInt(id, 10)

	rec = app.do(t, http.MethodGet, path, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"username":"user3","email":"user3@mail.com"}`, rec.Body.String())

	rec = app.do(t, http.MethodPatch, path, `{"username":"user101"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, success, rec.Body.String())

	rec = app.do(t, http.MethodGet, path, "")
	assert.JSONEq(t, `{"username":"user101","email":"user3@mail.com"}`, rec.Body.String())

	rec = app.do(t, http.MethodDelete, path, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, success, rec.Body.String())

	rec = app.do(t, http.MethodGet, path, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"User does not exist"}`, rec.Body.String())

	rec = app.do(t, http.MethodDelete, path, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUserPatch_EmptyValuesAreIgnored(t *testing.T) {
	app := newTestApp(t)

	id := createdID(t, app.do(t, http.MethodPost, "/user", `{"username":"ann","email":"ann@mail.com","password":"pw"}`))
	path := "/user/" + strconv.FormatInt(id, 10)

	rec := app.do(t, http.MethodPatch, path, `{"username":"","email":"new@mail.com"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = app.do(t, http.MethodGet, path, "")
	assert.JSONEq(t, `{"username":"ann","email":"new@mail.com"}`, rec.Body.String())
}

func TestUserCreate_Duplicate(t *testing.T) {
	app := newTestApp(t)

	id := createdID(t, app.do(t, http.MethodPost, "/user", `{"username":"bob","email":"bob@mail.com","password":"pw"}`))

	rec := app.do(t, http.MethodPost, "/user", `{"username":"bob","email":"other@mail.com","password":"pw"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"user already exists"}`, rec.Body.String())

	rec = app.do(t, http.MethodGet, "/user/"+strconv.FormatInt(id, 10), "")
	assert.JSONEq(t, `{"username":"bob","email":"bob@mail.com"}`, rec.Body.String())
}

func TestUserCreate_MissingFields(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(t, http.MethodPost, "/user", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":[
		{"field":"username","error":"is required"},
		{"field":"email","error":"is required"},
		{"field":"password","error":"is required"}
	]}`, rec.Body.String())
}

func TestUnknownIDs(t *testing.T) {
	app := newTestApp(t)

	cases := []struct {
		method string
		path   string
		body   string
		want   string
	}{
		{http.MethodGet, "/user/42", "", "User does not exist"},
		{http.MethodPatch, "/user/42", `{"username":"x"}`, "User does not exist"},
		{http.MethodDelete, "/user/42", "", "User does not exist"},
		{http.MethodGet, "/advertisement/42", "", "Advertisement does not exist"},
		{http.MethodPatch, "/advertisement/42", `{"header":"x"}`, "Advertisement does not exist"},
		{http.MethodDelete, "/advertisement/42", "", "Advertisement does not exist"},
	}

	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			rec := app.do(t, tc.method, tc.path, tc.body)
			assert.Equal(t, http.StatusNotFound, rec.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tc.want, body["error"])
		})
	}
}

func TestAdvertisementLifecycle(t *testing.T) {
	app := newTestApp(t)

	owner := createdID(t, app.do(t, http.MethodPost, "/user", `{"username":"seller","email":"seller@mail.com","password":"pw"}`))
	id := createdID(t, app.do(t, http.MethodPost, "/advertisement",
		`{"header":"Bike","description":"Red, barely used","owner":`+strconv.FormatInt(owner, 10)+`}`))
	path := "/advertisement/" + strconv.FormatInt(id, 10)

	rec := app.do(t, http.MethodGet, path, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"header":"Bike",
		"description":"Red, barely used",
		"registration_time":"2024-03-01T10:20:30Z",
		"owner":`+strconv.FormatInt(owner, 10)+`
	}`, rec.Body.String())

	rec = app.do(t, http.MethodPatch, path, `{"header":"Blue bike","description":""}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = app.do(t, http.MethodGet, path, "")
	assert.JSONEq(t, `{
		"header":"Blue bike",
		"description":"Red, barely used",
		"registration_time":"2024-03-01T10:20:30Z",
		"owner":`+strconv.FormatInt(owner, 10)+`
	}`, rec.Body.String())

	rec = app.do(t, http.MethodDelete, path, "")
	assert.JSONEq(t, success, rec.Body.String())

	rec = app.do(t, http.MethodGet, path, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdvertisementCreate_UnknownOwner(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(t, http.MethodPost, "/advertisement", `{"header":"Bike","description":"Red","owner":999}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Internal Server Error"}`, rec.Body.String())
}

func TestAdvertisementCreate_WrongType(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(t, http.MethodPost, "/advertisement", `{"header":"Bike","description":"Red","owner":"me"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":[{"field":"owner","error":"must be an integer"}]}`, rec.Body.String())
}

func TestAdvertisementPatch_BadRegistrationTime(t *testing.T) {
	app := newTestApp(t)

	owner := createdID(t, app.do(t, http.MethodPost, "/user", `{"username":"seller","email":"seller@mail.com","password":"pw"}`))
	id := createdID(t, app.do(t, http.MethodPost, "/advertisement",
		`{"header":"Bike","description":"Red","owner":`+strconv.FormatInt(owner, 10)+`}`))

	rec := app.do(t, http.MethodPatch, "/advertisement/"+strconv.FormatInt(id, 10), `{"registration_time":"yesterday"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":[{"field":"registration_time","error":"must be an ISO-8601 timestamp"}]}`, rec.Body.String())
}

func TestNonNumericIDDoesNotReachStore(t *testing.T) {
	app := newTestApp(t)
	app.users.Err = errors.New("store must not be called")
	app.ads.Err = errors.New("store must not be called")

	for _, path := range []string{"/user/abc", "/user/-1", "/advertisement/1e3", "/user/99999999999999999999"} {
		rec := app.do(t, http.MethodGet, path, "")
		assert.Equal(t, http.StatusNotFound, rec.Code, path)
		assert.JSONEq(t, `{"error":"Route not found"}`, rec.Body.String(), path)
	}
}

func TestUnknownRoute(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(t, http.MethodGet, "/users", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Route not found"}`, rec.Body.String())
}

func TestMethodNotAllowed(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(t, http.MethodPut, "/user/1", `{}`)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.JSONEq(t, `{"error":"Method Not Allowed"}`, rec.Body.String())
}

func TestRequestIDIsEchoed(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	req.Header.Set("X-Request-ID", "req-123")
	rec := httptest.NewRecorder()
	app.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "req-123", rec.Header().Get("X-Request-ID"))
}

func TestOpenAPIDocument(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(t, http.MethodGet, "/openapi.json", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "no-cache", rec.Header().Get("Cache-Control"))

	var doc struct {
		OpenAPI string                     `json:"openapi"`
		Paths   map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	assert.Equal(t, "3.0.3", doc.OpenAPI)
	assert.Contains(t, doc.Paths, "/user/{id}")
	assert.Contains(t, doc.Paths, "/advertisement/{id}")
}

func TestUserPassword_LimitIsInBytes(t *testing.T) {
	app := newTestApp(t)

	const tooLong = `{"error":[{"field":"password","error":"must not exceed 72 bytes"}]}`
	cyrillic := strings.Repeat("п", 40)

	rec := app.do(t, http.MethodPost, "/user", `{"username":"ivan","email":"ivan@mail.com","password":"`+cyrillic+`"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, tooLong, rec.Body.String())

	rec = app.do(t, http.MethodPost, "/user", `{"username":"ivan","email":"ivan@mail.com","password":"`+strings.Repeat("a", 80)+`"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, tooLong, rec.Body.String())

	id := createdID(t, app.do(t, http.MethodPost, "/user",
		`{"username":"ivan","email":"ivan@mail.com","password":"`+strings.Repeat("п", 36)+`"}`))

	rec = app.do(t, http.MethodPatch, "/user/"+strconv.FormatInt(id, 10), `{"password":"`+cyrillic+`"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, tooLong, rec.Body.String())
}

func TestUserCreate_WithoutContentType(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodPost, "/user", strings.NewReader(`{"username":"raw","email":"raw@mail.com","password":"pw"}`))
	rec := httptest.NewRecorder()
	app.router.ServeHTTP(rec, req)

	id := createdID(t, rec)
	rec = app.do(t, http.MethodGet, "/user/"+strconv.FormatInt(id, 10), "")
	assert.JSONEq(t, `{"username":"raw","email":"raw@mail.com"}`, rec.Body.String())
}

func TestAdvertisementPatch_OwnerMustBeNumber(t *testing.T) {
	app := newTestApp(t)

	owner := createdID(t, app.do(t, http.MethodPost, "/user", `{"username":"seller","email":"seller@mail.com","password":"pw"}`))
	id := createdID(t, app.do(t, http.MethodPost, "/advertisement",
		`{"header":"Bike","description":"Red","owner":`+strconv.FormatInt(owner, 10)+`}`))

	rec := app.do(t, http.MethodPatch, "/advertisement/"+strconv.FormatInt(id, 10), `{"owner":"1"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":[{"field":"owner","error":"must be an integer"}]}`, rec.Body.String())
}

func TestUserDelete_OwnerOfAdvertisements(t *testing.T) {
	app := newTestApp(t)

	owner := createdID(t, app.do(t, http.MethodPost, "/user", `{"username":"seller","email":"seller@mail.com","password":"pw"}`))
	createdID(t, app.do(t, http.MethodPost, "/advertisement",
		`{"header":"Bike","description":"Red","owner":`+strconv.FormatInt(owner, 10)+`}`))
	path := "/user/" + strconv.FormatInt(owner, 10)

	rec := app.do(t, http.MethodDelete, path, "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Internal Server Error"}`, rec.Body.String())

	rec = app.do(t, http.MethodGet, path, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}
