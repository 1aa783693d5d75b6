package pipeline_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/couchcryptid/flood-alert-service/internal/adapter/discharge"
	"github.com/couchcryptid/flood-alert-service/internal/adapter/line"
	"github.com/couchcryptid/flood-alert-service/internal/adapter/thaiwater"
	"github.com/couchcryptid/flood-alert-service/internal/domain"
	"github.com/couchcryptid/flood-alert-service/internal/observability"
	"github.com/couchcryptid/flood-alert-service/internal/pipeline"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// lineStub records broadcast bodies.
type lineStub struct {
	srv   *httptest.Server
	calls atomic.Int32

	mu    sync.Mutex
	texts []string
}

func (s *lineStub) received() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.texts...)
}

func newLineStub(t *testing.T, status int) *lineStub {
	t.Helper()
	s := &lineStub{}
	s.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.calls.Add(1)
		var body struct {
			Messages []struct {
				Type string `json:"type"`
				Text string `json:"text"`
			} `json:"messages"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		s.mu.Lock()
		for _, m := range body.Messages {
			s.texts = append(s.texts, m.Text)
		}
		s.mu.Unlock()
		w.WriteHeader(status)
	}))
	t.Cleanup(s.srv.Close)
	return s
}

func newEndToEnd(t *testing.T, pageHandler http.HandlerFunc, damFile, token string, lineSrv *lineStub) *pipeline.Pipeline {
	t.Helper()
	pageSrv := httptest.NewServer(pageHandler)
	t.Cleanup(pageSrv.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	metrics := observability.NewMetrics()

	return pipeline.New(
		pipeline.Stages{
			Levels:     thaiwater.NewClient(pageSrv.URL+"/wl", 5*time.Second, logger),
			Discharge:  discharge.NewSource(discharge.NewFileFetcher(damFile), logger, metrics),
			Dispatcher: line.NewClient(token, lineSrv.srv.URL, 5*time.Second, logger),
		},
		pipeline.Settings{
			Station:    testStation,
			Thresholds: domain.DefaultThresholds(),
			Location:   testZone,
		},
		clockwork.NewFakeClockAt(testStart),
		logger,
		metrics,
	)
}

func servePage(page []byte) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(page)
	}
}

func damFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dam_data.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestEndToEnd_NormalReportDelivered(t *testing.T) {
	lineSrv := newLineStub(t, http.StatusOK)
	p := newEndToEnd(t, servePage(inburiPage("9.03")), damFile(t, "1000\n"), "token", lineSrv)

	report := p.Run(context.Background())

	assert.True(t, report.Dispatched)
	assert.False(t, report.DischargeFallback)
	texts := lineSrv.received()
	require.Len(t, texts, 1)
	assert.Equal(t, report.Message, texts[0])
	assert.Contains(t, texts[0], "🟩 สถานะปกติ")
	assert.Contains(t, texts[0], "9.03 ม.รทก.")
	assert.Contains(t, texts[0], "ต่ำกว่าตลิ่งประมาณ 3.97 ม.")
}

func TestEndToEnd_MissingDamFileUsesDefault(t *testing.T) {
	lineSrv := newLineStub(t, http.StatusOK)
	missing := filepath.Join(t.TempDir(), "absent.txt")
	p := newEndToEnd(t, servePage(inburiPage("11.4")), missing, "token", lineSrv)

	report := p.Run(context.Background())

	assert.True(t, report.DischargeFallback)
	assert.InDelta(t, domain.DefaultDischarge, report.Discharge, 0)
	assert.Equal(t, domain.Watch, report.Assessment.Tier)
	texts := lineSrv.received()
	require.Len(t, texts, 1)
	assert.Contains(t, texts[0], "1,000 ลบ.ม./วินาที")
}

func TestEndToEnd_SiteDownSendsErrorText(t *testing.T) {
	lineSrv := newLineStub(t, http.StatusOK)
	down := func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusServiceUnavailable) }
	p := newEndToEnd(t, down, damFile(t, "2500"), "token", lineSrv)

	report := p.Run(context.Background())

	assert.Contains(t, report.LevelError, "503")
	texts := lineSrv.received()
	require.Len(t, texts, 1)
	assert.Equal(t, domain.AcquisitionErrorMessage, texts[0])
}

func TestEndToEnd_NoTokenSkipsNetworkCall(t *testing.T) {
	lineSrv := newLineStub(t, http.StatusOK)
	p := newEndToEnd(t, servePage(inburiPage("9.03")), damFile(t, "1000"), "", lineSrv)

	report := p.Run(context.Background())

	assert.False(t, report.Dispatched)
	assert.Zero(t, lineSrv.calls.Load())
	assert.NotEmpty(t, report.Message)
}

func TestEndToEnd_LineRejects(t *testing.T) {
	lineSrv := newLineStub(t, http.StatusInternalServerError)
	p := newEndToEnd(t, servePage(inburiPage("9.03")), damFile(t, "1000"), "token", lineSrv)

	report := p.Run(context.Background())

	assert.False(t, report.Dispatched)
	assert.Equal(t, int32(1), lineSrv.calls.Load())
	assert.Contains(t, report.DispatchError, "500")
}
