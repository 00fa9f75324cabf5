// SPDX-License-Identifier: EPL-2.0

package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/ik5/hoapbx/internal/metrics"
	"github.com/ik5/hoapbx/orientation"
	"github.com/ik5/hoapbx/session"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeController struct {
	mu   sync.Mutex
	dirs []orientation.Vec3
	err  error
}

func (f *fakeController) UpdateOrientation(dir orientation.Vec3) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.dirs = append(f.dirs, dir)
	return nil
}

func (f *fakeController) Status() session.Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	return session.Status{
		State: session.Playing,
		Mode:  "ambisonic",
		Order: 1,
		Orientation: orientation.State{
			Captured: true,
			Updates:  uint64(len(f.dirs)),
		},
	}
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestState(t *testing.T) {
	t.Parallel()

	h := NewHandler(&fakeController{}, nil, nil)
	rec := do(t, h, http.MethodGet, "/state", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var got map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "Playing", got["state"])
	assert.Equal(t, "ambisonic", got["mode"])
}

func TestOrientation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
		code int
		want orientation.Vec3
	}{
		{"direction", `{"x":-1,"y":0,"z":0}`, http.StatusOK, orientation.Vec3{X: -1}},
		{"azimuth", `{"azimuth":180}`, http.StatusOK, orientation.Vec3{Z: 1}},
		{"empty", `{}`, http.StatusBadRequest, orientation.Vec3{}},
		{"partial", `{"z":1}`, http.StatusOK, orientation.Vec3{Z: 1}},
		{"both", `{"azimuth":1,"x":1}`, http.StatusBadRequest, orientation.Vec3{}},
		{"garbage", `{"x":`, http.StatusBadRequest, orientation.Vec3{}},
		{"unknown field", `{"yaw":3}`, http.StatusBadRequest, orientation.Vec3{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctrl := &fakeController{}
			rec := do(t, NewHandler(ctrl, nil, nil), http.MethodPost, "/orientation", tt.body)
			require.Equal(t, tt.code, rec.Code, rec.Body.String())
			if tt.code != http.StatusOK {
				assert.Empty(t, ctrl.dirs)
				assert.Contains(t, rec.Body.String(), `"error"`)
				return
			}
			require.Len(t, ctrl.dirs, 1)
			assert.InDelta(t, tt.want.X, ctrl.dirs[0].X, 1e-12)
			assert.InDelta(t, tt.want.Z, ctrl.dirs[0].Z, 1e-12)
		})
	}
}

func TestOrientation_Rejected(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		code int
	}{
		{orientation.ErrZeroDirection, http.StatusBadRequest},
		{session.ErrStopped, http.StatusConflict},
		{session.ErrInvalidTransition, http.StatusConflict},
		{assert.AnError, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		ctrl := &fakeController{err: tt.err}
		rec := do(t, NewHandler(ctrl, nil, nil), http.MethodPost, "/orientation", `{"azimuth":10}`)
		assert.Equal(t, tt.code, rec.Code, "error %v", tt.err)
	}
}

func TestMetricsAndHealth(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	m, err := metrics.New(reg)
	require.NoError(t, err)
	m.Orientation(12, 0)

	h := NewHandler(&fakeController{}, reg, nil)

	rec := do(t, h, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "hoapbx_orientation_updates_total 1")
	assert.Contains(t, rec.Body.String(), "hoapbx_yaw_degrees 12")

	rec = do(t, h, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, NewHandler(&fakeController{}, nil, nil), http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// trackerController runs updates through a real orientation.Tracker.
type trackerController struct {
	tr *orientation.Tracker
}

func (c trackerController) UpdateOrientation(dir orientation.Vec3) error {
	_, _, err := c.tr.Update(dir)
	return err
}

func (c trackerController) Status() session.Status {
	return session.Status{State: session.Playing, Orientation: c.tr.State()}
}

func TestOrientation_ZeroVector(t *testing.T) {
	t.Parallel()

	tr := orientation.NewTracker()
	require.NoError(t, tr.CaptureReference(orientation.Vec3{Z: -1}))
	h := NewHandler(trackerController{tr}, nil, nil)

	rec := do(t, h, http.MethodPost, "/orientation", `{"x":0,"y":0,"z":0}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, tr.State().Updates)

	rec = do(t, h, http.MethodPost, "/orientation", `{"azimuth":90}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var st orientation.State
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &st))
	assert.InDelta(t, 90, st.Yaw, 1e-9)
	assert.Equal(t, uint64(1), st.Updates)
}
