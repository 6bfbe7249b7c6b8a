package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/JerryLinyx/MarketDigest/mailer"
	"github.com/JerryLinyx/MarketDigest/notifier"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/assert/v2"
)

type fakeBroadcaster struct {
	report  *notifier.Report
	err     error
	subject string
}

func (f *fakeBroadcaster) Notify(ctx context.Context, subject string, articles []mailer.Article) (*notifier.Report, error) {
	f.subject = subject
	return f.report, f.err
}

func newTestDigestRouter(composer DigestComposer, broadcaster Broadcaster) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewDigestController(composer, broadcaster, "Default subject")
	r.POST("/api/digest/broadcast", h.Broadcast)
	return r
}

func TestBroadcast_Success(t *testing.T) {
	broadcaster := &fakeBroadcaster{report: &notifier.Report{RunID: "run-1", Recipients: 2, Sent: 2}}
	r := newTestDigestRouter(&fakeComposer{}, broadcaster)

	w := postJSON(r, "/api/digest/broadcast", `{"subject":"Market close"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Market close", broadcaster.subject)

	var res notifier.Report
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, "run-1", res.RunID)
	assert.Equal(t, 2, res.Sent)
}

func TestBroadcast_DefaultSubject(t *testing.T) {
	broadcaster := &fakeBroadcaster{report: &notifier.Report{}}
	r := newTestDigestRouter(&fakeComposer{}, broadcaster)

	w := postJSON(r, "/api/digest/broadcast", ``)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Default subject", broadcaster.subject)
}

func TestBroadcast_Disabled(t *testing.T) {
	r := newTestDigestRouter(&fakeComposer{}, &fakeBroadcaster{err: notifier.ErrDisabled})

	w := postJSON(r, "/api/digest/broadcast", ``)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestBroadcast_RecipientError(t *testing.T) {
	r := newTestDigestRouter(&fakeComposer{}, &fakeBroadcaster{err: errors.New("DB down")})

	w := postJSON(r, "/api/digest/broadcast", ``)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestBroadcast_ChunkedBodyHonored(t *testing.T) {
	broadcaster := &fakeBroadcaster{report: &notifier.Report{}}
	r := newTestDigestRouter(&fakeComposer{}, broadcaster)

	// an unsized reader leaves ContentLength at -1, as with chunked transfer encoding
	body := io.MultiReader(strings.NewReader(`{"subject":`), strings.NewReader(`"Streamed close"}`))
	req := httptest.NewRequest("POST", "/api/digest/broadcast", body)
	req.Header.Set("Content-Type", "application/json")
	assert.Equal(t, int64(-1), req.ContentLength)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Streamed close", broadcaster.subject)
}

func TestBroadcast_NoBody(t *testing.T) {
	broadcaster := &fakeBroadcaster{report: &notifier.Report{}}
	r := newTestDigestRouter(&fakeComposer{}, broadcaster)

	req := httptest.NewRequest("POST", "/api/digest/broadcast", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Default subject", broadcaster.subject)
}

func TestBroadcast_MalformedBody(t *testing.T) {
	broadcaster := &fakeBroadcaster{report: &notifier.Report{}}
	r := newTestDigestRouter(&fakeComposer{}, broadcaster)

	w := postJSON(r, "/api/digest/broadcast", `{"subject":`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "", broadcaster.subject)
}
