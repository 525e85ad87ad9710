package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakePool struct {
	pingErr error
}

func (f *fakePool) Ping(_ context.Context) error { return f.pingErr }
func (f *fakePool) Close()                       {}

func TestHandleHealthz(t *testing.T) {
	rr := httptest.NewRecorder()
	HandleHealthz()(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"ok"`)
}

func TestHandleReadyz(t *testing.T) {
	rr := httptest.NewRecorder()
	HandleReadyz(&fakePool{})(rr, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestHandleReadyzDatabaseDown(t *testing.T) {
	rr := httptest.NewRecorder()
	HandleReadyz(&fakePool{pingErr: errors.New("refused")})(rr, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.Contains(t, rr.Body.String(), "unavailable")
}
