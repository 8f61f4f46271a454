package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	bookingRepo "medibook/database/repository/booking"
	chatRepo "medibook/database/repository/chat"
	reviewRepo "medibook/database/repository/review"
	sessionRepo "medibook/database/repository/session"
	userRepo "medibook/database/repository/user"
	"medibook/database/seed"
	"medibook/handlers"
	"medibook/routes"
	"medibook/services/auth"
	"medibook/services/booking"
	"medibook/services/chat"
	"medibook/services/navigation"
	"medibook/services/onboarding"
	"medibook/services/review"
	"medibook/services/upload"
	"medibook/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// syncDispatcher finishes processing before Start returns.
type syncDispatcher struct {
	svc *upload.Service
}

func (d syncDispatcher) Dispatch(ctx context.Context, id string) error {
	return d.svc.Process(context.Background(), id)
}

type noGoogle struct{}

func (noGoogle) Verify(context.Context, string, string) (*auth.GoogleIdentity, error) {
	return nil, auth.ErrUnauthorized
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	utils.SetSigningSecret("handler-test-secret")

	clock := utils.InstantClock{At: time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)}
	rnd := utils.FixedRandom{Float: 0.2, Int: 10}
	sessions := sessionRepo.NewMemoryStore(nil)
	bookings := bookingRepo.NewStaticBookingRepo(seed.Bookings())

	uploads := upload.NewService(
		upload.Simulator{Clock: clock, Rand: rnd, Tick: time.Millisecond},
		upload.SimulatedTransport{Rand: rnd, SuccessRate: 0.7},
		upload.MaxFileSize,
	)
	uploads.Dispatcher = syncDispatcher{svc: uploads}

	hb := handlers.NewHandlerBundle(handlers.Services{
		Auth:       auth.NewService(userRepo.NewMemoryUserRepo(), sessions, noGoogle{}, auth.Options{TokenTTL: time.Hour}),
		Onboarding: onboarding.NewService(sessions, seed.Steps, time.Minute),
		Navigation: navigation.NewService(sessions, time.Minute),
		Bookings:   booking.NewHistoryService(bookings),
		Reviews:    review.NewService(bookings, reviewRepo.NewMemoryReviewRepo(), clock, time.Second),
		Chats:      chat.NewService(chatRepo.NewStaticChatRepo(seed.Chats(), seed.Messages(), seed.OnlineUsers()), clock),
		Uploads:    uploads,
	})

	r := gin.New()
	routes.RegisterRoutes(r, hb)
	return r
}

func request(r http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, dest interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), dest), w.Body.String())
}

func signUp(t *testing.T, r http.Handler) string {
	t.Helper()
	w := request(r, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"email": "pat@example.com", "password": "secret1", "confirmPassword": "secret1",
		"role": "patient", "name": "Pat Lee", "phone": "555 1000",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var sess struct {
		Token string `json:"token"`
	}
	decode(t, w, &sess)
	require.NotEmpty(t, sess.Token)
	return sess.Token
}

func TestHealthAndLoginSelection(t *testing.T) {
	r := newTestRouter(t)
	require.Equal(t, http.StatusOK, request(r, http.MethodGet, "/health", "", nil).Code)

	w := request(r, http.MethodGet, "/api/auth/login-selection", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Options []struct {
			Role     string `json:"role"`
			AuthPath string `json:"authPath"`
		} `json:"options"`
	}
	decode(t, w, &body)
	require.Len(t, body.Options, 2)
	require.Equal(t, "/auth?type=patient", body.Options[0].AuthPath)
	require.Equal(t, "/auth?type=provider", body.Options[1].AuthPath)
}

func TestAuthFlow(t *testing.T) {
	r := newTestRouter(t)
	token := signUp(t, r)

	w := request(r, http.MethodPost, "/api/auth/signin", "", map[string]string{"email": "pat@example.com", "password": "nope123"})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	var errBody map[string]string
	decode(t, w, &errBody)
	require.Equal(t, auth.FriendlyCredentialsMessage, errBody["error"])

	w = request(r, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"email": "pat@example.com", "password": "secret1", "confirmPassword": "secret1", "role": "patient", "name": "Pat",
	})
	require.Equal(t, http.StatusConflict, w.Code)

	w = request(r, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"email": "other@example.com", "password": "secret2", "confirmPassword": "secret2",
		"role": "provider", "name": "Other", "phone": "555-1000",
	})
	require.Equal(t, http.StatusConflict, w.Code)
	decode(t, w, &errBody)
	require.Equal(t, auth.DuplicatePhoneMessage, errBody["error"])

	w = request(r, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var me struct {
		Profile struct {
			Initials string `json:"initials"`
		} `json:"profile"`
	}
	decode(t, w, &me)
	require.Equal(t, "PL", me.Profile.Initials)

	require.Equal(t, http.StatusOK, request(r, http.MethodPost, "/api/auth/signout", token, nil).Code)
	require.Equal(t, http.StatusUnauthorized, request(r, http.MethodGet, "/api/auth/me", token, nil).Code)
}

func TestGoogleStartRequiresRole(t *testing.T) {
	r := newTestRouter(t)
	require.Equal(t, http.StatusBadRequest, request(r, http.MethodGet, "/api/auth/google?type=admin", "", nil).Code)

	w := request(r, http.MethodGet, "/api/auth/google?type=provider", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]string
	decode(t, w, &body)
	require.NotEmpty(t, body["state"])

	w = request(r, http.MethodGet, "/api/auth/google/callback?state=forged&id_token=x", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestOnboardingFlow(t *testing.T) {
	r := newTestRouter(t)
	w := request(r, http.MethodPost, "/api/onboarding", "", map[string]string{"role": "patient"})
	require.Equal(t, http.StatusCreated, w.Code)
	var res onboarding.Result
	decode(t, w, &res)
	require.Equal(t, 1, res.View.Current)

	base := "/api/onboarding/" + res.SessionID
	for _, action := range []string{"next", "next", "previous"} {
		w = request(r, http.MethodPost, base+"/"+action, "", nil)
		require.Equal(t, http.StatusOK, w.Code)
	}
	decode(t, w, &res)
	require.Equal(t, 2, res.View.Current)

	w = request(r, http.MethodPost, base+"/skip", "", nil)
	decode(t, w, &res)
	require.True(t, res.Finished)
	require.Equal(t, "/auth?type=patient", res.Redirect)

	require.Equal(t, http.StatusNotFound, request(r, http.MethodGet, base, "", nil).Code)
	require.Equal(t, http.StatusBadRequest, request(r, http.MethodPost, "/api/onboarding", "", map[string]string{"role": "nurse"}).Code)
}

func TestNavigationGuard(t *testing.T) {
	r := newTestRouter(t)
	var state navigation.State

	w := request(r, http.MethodPost, "/api/navigation/select", "", map[string]string{"tab": "booking"})
	require.Equal(t, http.StatusOK, w.Code)
	require.NotEmpty(t, w.Header().Get(utils.SessionHeader))
	decode(t, w, &state)
	require.Equal(t, navigation.LoginSelectionPath, state.Route.Path)
	require.True(t, state.Route.Redirected)

	token := signUp(t, r)
	w = request(r, http.MethodPost, "/api/navigation/select", token, map[string]string{"tab": "message"})
	decode(t, w, &state)
	require.Equal(t, "/patient/messages", state.Route.Path)

	require.Equal(t, http.StatusBadRequest, request(r, http.MethodPost, "/api/navigation/select", "", map[string]string{"tab": "wallet"}).Code)
}

func TestBookingEndpoints(t *testing.T) {
	r := newTestRouter(t)
	require.Equal(t, http.StatusUnauthorized, request(r, http.MethodGet, "/api/bookings", "", nil).Code)
	token := signUp(t, r)

	w := request(r, http.MethodGet, "/api/bookings?status=cancelled", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var view booking.HistoryView
	decode(t, w, &view)
	require.Len(t, view.Bookings, 1)
	require.Equal(t, "b5", view.Bookings[0].ID)

	require.Equal(t, http.StatusBadRequest, request(r, http.MethodGet, "/api/bookings?status=pending", token, nil).Code)
	require.Equal(t, http.StatusNotFound, request(r, http.MethodGet, "/api/bookings/zzz", token, nil).Code)
	require.Equal(t, http.StatusConflict, request(r, http.MethodPost, "/api/bookings/b3/cancel", token, nil).Code)
	require.Equal(t, http.StatusOK, request(r, http.MethodPost, "/api/bookings/b1/cancel", token, map[string]string{"reason": "travel"}).Code)
	require.Equal(t, http.StatusBadRequest, request(r, http.MethodPost, "/api/bookings/b1/reschedule", token, map[string]string{}).Code)

	w = request(r, http.MethodPost, "/api/bookings/b3/review", token, map[string]interface{}{"rating": 0})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var errBody map[string]string
	decode(t, w, &errBody)
	require.Equal(t, "Please select a rating", errBody["error"])

	w = request(r, http.MethodPost, "/api/bookings/b3/review", token, map[string]interface{}{"rating": 4, "comment": ""})
	require.Equal(t, http.StatusCreated, w.Code)
}

func TestChatEndpoints(t *testing.T) {
	r := newTestRouter(t)
	token := signUp(t, r)

	w := request(r, http.MethodGet, "/api/chats?q=cardio", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list chat.ListView
	decode(t, w, &list)
	require.Len(t, list.Chats, 1)
	require.Equal(t, "c1", list.Chats[0].ID)

	require.Equal(t, http.StatusOK, request(r, http.MethodGet, "/api/chats/online", token, nil).Code)
	require.Equal(t, http.StatusNotFound, request(r, http.MethodGet, "/api/chats/zzz", token, nil).Code)
	require.Equal(t, http.StatusBadRequest, request(r, http.MethodPost, "/api/chats/c1/messages", token, map[string]string{"content": " "}).Code)
	require.Equal(t, http.StatusCreated, request(r, http.MethodPost, "/api/chats/c1/messages", token, map[string]string{"content": "hi"}).Code)
}

func multipartRequest(t *testing.T, token string, files map[string]int) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for name, size := range files {
		part, err := mw.CreateFormFile("file", name)
		require.NoError(t, err)
		_, err = part.Write(bytes.Repeat([]byte("a"), size))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	req := httptest.NewRequest(http.MethodPost, "/api/uploads", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func TestUploadEndpoints(t *testing.T) {
	r := newTestRouter(t)
	token := signUp(t, r)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, multipartRequest(t, token, map[string]int{"big.pdf": 30 * 1024 * 1024}))
	require.Equal(t, http.StatusBadRequest, w.Code)
	var body struct {
		Uploads  []map[string]interface{} `json:"uploads"`
		Rejected []map[string]string      `json:"rejected"`
	}
	decode(t, w, &body)
	require.Empty(t, body.Uploads)
	require.Contains(t, body.Rejected[0]["error"], "25 MB")

	list := request(r, http.MethodGet, "/api/uploads", token, nil)
	require.JSONEq(t, `{"uploads":[]}`, list.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, multipartRequest(t, token, map[string]int{"note.txt": 1024}))
	require.Equal(t, http.StatusAccepted, w.Code)
	decode(t, w, &body)
	require.Len(t, body.Uploads, 1)
	id := body.Uploads[0]["id"].(string)

	w = request(r, http.MethodGet, "/api/uploads/"+id+"?wait=true", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got struct {
		Progress int    `json:"progress"`
		Status   string `json:"status"`
	}
	decode(t, w, &got)
	require.Equal(t, 100, got.Progress)
	require.Equal(t, "success", got.Status)

	require.Equal(t, http.StatusConflict, request(r, http.MethodPost, "/api/uploads/"+id+"/retry", token, nil).Code)

	require.Equal(t, http.StatusNoContent, request(r, http.MethodDelete, "/api/uploads/"+id, token, nil).Code)
	require.Equal(t, http.StatusNotFound, request(r, http.MethodGet, "/api/uploads/"+id, token, nil).Code)
	require.Equal(t, http.StatusNotFound, request(r, http.MethodDelete, "/api/uploads/"+id, token, nil).Code)
}

func TestSettingsAreNotSaved(t *testing.T) {
	r := newTestRouter(t)
	token := signUp(t, r)

	w := request(r, http.MethodPut, "/api/settings", token, map[string]interface{}{"darkMode": true})
	require.Equal(t, http.StatusOK, w.Code)

	w = request(r, http.MethodGet, "/api/settings", token, nil)
	var s map[string]interface{}
	decode(t, w, &s)
	require.Equal(t, false, s["darkMode"])
	require.Equal(t, "en", s["language"])
}
