package http_test

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/hackterm"
	"github.com/aretw0/hackterm/internal/testutils"
	handler "github.com/aretw0/hackterm/pkg/adapters/http"
	"github.com/aretw0/hackterm/pkg/adapters/memory"
	"github.com/aretw0/hackterm/pkg/ports"
)

func newConsole(t *testing.T, streams *handler.StreamManager) *hackterm.Console {
	t.Helper()
	opts := []hackterm.Option{
		hackterm.WithAudioSink(ports.AudioCueFuncs{}),
		hackterm.WithWidgets(memory.NewFactory(), memory.NewContainer()),
		hackterm.WithSceneSource(memory.NewSceneEmitter()),
		hackterm.WithInstanceGuard(memory.NewGuard()),
		hackterm.WithClock(testutils.NewFakeClock()),
	}
	if streams != nil {
		opts = append(opts, hackterm.WithLifecycleHooks(streams.Hooks()))
	}
	c, err := hackterm.New(context.Background(), opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close(context.Background()) })
	return c
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestHandler_WriteAndRead(t *testing.T) {
	console := newConsole(t, nil)
	h := handler.NewHandler(console, nil)

	w := do(t, h, http.MethodPost, "/console/write", `{"message":"root access","mode":"line"}`)
	require.Equal(t, http.StatusAccepted, w.Code)
	require.NoError(t, console.Flush(context.Background()))

	w = do(t, h, http.MethodGet, "/console", "")
	require.Equal(t, http.StatusOK, w.Code)
	var state handler.ConsoleState
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &state))
	assert.Equal(t, ">\troot access\n>\t", state.Text)
	assert.False(t, state.Busy)
	assert.Zero(t, state.SkippedSteps)
	assert.Contains(t, w.Body.String(), `"skipped_steps":0`)

	w = do(t, h, http.MethodPost, "/console/clear", "")
	require.Equal(t, http.StatusAccepted, w.Code)
	require.NoError(t, console.Flush(context.Background()))
	assert.Equal(t, ">\t", console.Text())
}

type skippingConsole struct {
	*hackterm.Console
	skipped int
}

func (c skippingConsole) SkippedSteps() int { return c.skipped }

func TestHandler_ReportsConsoleFlags(t *testing.T) {
	console := newConsole(t, nil)
	console.SetTutorialPlaying(true)
	h := handler.NewHandler(skippingConsole{Console: console, skipped: 3}, nil)

	w := do(t, h, http.MethodGet, "/console", "")
	require.Equal(t, http.StatusOK, w.Code)
	var state handler.ConsoleState
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &state))
	assert.Equal(t, 3, state.SkippedSteps)
	assert.True(t, state.TutorialPlaying)
}

func TestHandler_BadRequests(t *testing.T) {
	h := handler.NewHandler(newConsole(t, nil), nil)

	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPost, "/console/write", `{`).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPost, "/console/write", `{"mode":"shout"}`).Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodDelete, "/variables/ghost", "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/events", "").Code, "no stream manager")
}

func TestHandler_Variables(t *testing.T) {
	console := newConsole(t, nil)
	h := handler.NewHandler(console, nil)

	w := do(t, h, http.MethodPut, "/variables/door", `{"value":{"Locked":true,"Code":1234},"hidden":["Code"]}`)
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, []string{"door"}, console.Variables())

	w = do(t, h, http.MethodDelete, "/variables/door", "")
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, console.Variables())
}

func TestHandler_HealthInfoMetrics(t *testing.T) {
	metrics := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("hackterm_queue_depth 0\n"))
	})
	h := handler.NewHandler(newConsole(t, nil), nil, handler.WithMetricsHandler(metrics))

	assert.JSONEq(t, `{"status":"ok"}`, do(t, h, http.MethodGet, "/health", "").Body.String())
	assert.Contains(t, do(t, h, http.MethodGet, "/info", "").Body.String(), hackterm.Version)
	assert.Contains(t, do(t, h, http.MethodGet, "/metrics", "").Body.String(), "hackterm_queue_depth")
}

func TestHandler_Events(t *testing.T) {
	streams := handler.NewStreamManager(nil)
	console := newConsole(t, streams)
	srv := httptest.NewServer(handler.NewHandler(console, streams))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/events", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	lines := bufio.NewScanner(resp.Body)
	require.True(t, lines.Scan())
	assert.Equal(t, "event: ping", lines.Text())

	require.Eventually(t, func() bool { return streams.Subscribers() == 1 }, time.Second, 10*time.Millisecond)
	console.Write("x")

	var events []string
	for lines.Scan() {
		if name, ok := strings.CutPrefix(lines.Text(), "event: "); ok {
			events = append(events, name)
			if name == "run_completed" {
				break
			}
		}
	}
	assert.Equal(t, []string{
		"run_started",
		"character_written", "character_written", "character_written",
		"run_completed",
	}, events)
}
