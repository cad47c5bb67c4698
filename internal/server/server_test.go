// SPDX-License-Identifier: MIT
package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neuragicus/spectrum-api/internal/config"
	"github.com/neuragicus/spectrum-api/internal/spectrum"
	"github.com/neuragicus/spectrum-api/pkg/utils"
)

const testAPIKey = "TEST_API_KEY"

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	cfg := config.NewConfig()
	cfg.Auth.Key = testAPIKey

	s, err := New(cfg, spectrum.NewAnalyzer())
	require.NoError(t, err)

	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func postAnalyze(t *testing.T, ts *httptest.Server, body string, header, key string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(http.MethodPost, ts.URL+"/analyze_spectrum", bytes.NewBufferString(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if header != "" {
		req.Header.Set(header, key)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestNewRequiresAPIKey(t *testing.T) {
	cfg := config.NewConfig()
	_, err := New(cfg, spectrum.NewAnalyzer())
	require.Error(t, err)
}

func TestAuthentication(t *testing.T) {
	ts := newTestServer(t)
	body := `{"time_interval": 1, "data": [1, 2, 3, 4, 5]}`

	cases := []struct {
		name       string
		header     string
		key        string
		wantStatus int
	}{
		{"valid_key", config.DefaultAPIKeyHeader, testAPIKey, http.StatusOK},
		{"wrong_key", config.DefaultAPIKeyHeader, "XXXX", http.StatusForbidden},
		{"wrong_header_name", "WRONG_API_KEY_NAME", testAPIKey, http.StatusForbidden},
		{"missing_header", "", "", http.StatusForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := postAnalyze(t, ts, body, tc.header, tc.key)
			assert.Equal(t, tc.wantStatus, resp.StatusCode)
		})
	}
}

func TestAnalyzeEndpointValidation(t *testing.T) {
	ts := newTestServer(t)

	cases := []struct {
		name       string
		payload    string
		wantStatus int
	}{
		{"empty_data_list", `{"time_interval": 5, "data": []}`, http.StatusUnprocessableEntity},
		{"invalid_data_type", `{"time_interval": 5, "data": [1, "invalid", 3]}`, http.StatusUnprocessableEntity},
		{"zero_time_interval", `{"time_interval": 0, "data": [1, 2, 3]}`, http.StatusUnprocessableEntity},
		{"negative_time_interval", `{"time_interval": -1, "data": [1, 2, 3]}`, http.StatusUnprocessableEntity},
		{"missing_time_interval", `{"data": [1, 2, 3]}`, http.StatusUnprocessableEntity},
		{"missing_data", `{"time_interval": 5}`, http.StatusUnprocessableEntity},
		{"malformed_json", `{"time_interval": 5,`, http.StatusBadRequest},
		{"valid_payload", `{"time_interval": 5, "data": [0, 0.33, 8, 8, 8]}`, http.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := postAnalyze(t, ts, tc.payload, config.DefaultAPIKeyHeader, testAPIKey)
			assert.Equal(t, tc.wantStatus, resp.StatusCode)

			if tc.wantStatus != http.StatusOK {
				var errBody struct {
					Detail string `json:"detail"`
				}
				require.NoError(t, json.NewDecoder(resp.Body).Decode(&errBody))
				assert.NotEmpty(t, errBody.Detail)
			}
		})
	}
}

func TestAnalyzeEndpointSpectrum(t *testing.T) {
	ts := newTestServer(t)

	signal := utils.GenerateToneSignal([]utils.Tone{
		{Frequency: 10, Amplitude: 1.0},
	}, 1000, 1.0)

	payload, err := json.Marshal(map[string]any{
		"time_interval": 0.001,
		"data":          signal,
	})
	require.NoError(t, err)

	resp := postAnalyze(t, ts, string(payload), config.DefaultAPIKeyHeader, testAPIKey)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Result []spectrum.FrequencyBin `json:"result"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

	require.Len(t, body.Result, 501)
	assert.InDelta(t, 10.0, body.Result[10].Frequency, 1e-9)
	assert.InDelta(t, 1.0, body.Result[10].Magnitude, 1e-4)
	assert.Equal(t, 0.0, body.Result[10].Phase)
}

func TestAnalyzeEndpointMethodNotAllowed(t *testing.T) {
	ts := newTestServer(t)

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/analyze_spectrum", nil)
	require.NoError(t, err)
	req.Header.Set(config.DefaultAPIKeyHeader, testAPIKey)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestCacheInfoEndpoint(t *testing.T) {
	ts := newTestServer(t)

	for _, n := range []int{4, 5} {
		payload, err := json.Marshal(map[string]any{
			"time_interval": 0.1,
			"data":          make([]float64, n),
		})
		require.NoError(t, err)
		resp := postAnalyze(t, ts, string(payload), config.DefaultAPIKeyHeader, testAPIKey)
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/cache_info", nil)
	require.NoError(t, err)
	req.Header.Set(config.DefaultAPIKeyHeader, testAPIKey)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var info spectrum.CacheInfo
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&info))
	assert.Equal(t, 2, info.Count)
	assert.Equal(t, []int{4, 5}, info.Lengths)
}

func TestHealthEndpointUnauthenticated(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestWebSocketAnalyze(t *testing.T) {
	ts := newTestServer(t)
	wsURL := strings.Replace(ts.URL, "http", "ws", 1) + "/analyze_spectrum/ws"

	header := http.Header{}
	header.Set(config.DefaultAPIKeyHeader, testAPIKey)

	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, header)
	require.NoError(t, err)
	defer resp.Body.Close()
	defer conn.Close()

	// Valid request round trip.
	require.NoError(t, conn.WriteJSON(map[string]any{
		"time_interval": 0.1,
		"data":          []float64{1, 2, 3, 4},
	}))
	var ok struct {
		Result []spectrum.FrequencyBin `json:"result"`
	}
	require.NoError(t, conn.ReadJSON(&ok))
	assert.Len(t, ok.Result, 3)

	// Invalid request gets an error frame on the same connection.
	require.NoError(t, conn.WriteJSON(map[string]any{
		"time_interval": 0,
		"data":          []float64{1, 2, 3},
	}))
	var detail struct {
		Detail string `json:"detail"`
	}
	require.NoError(t, conn.ReadJSON(&detail))
	assert.Contains(t, detail.Detail, "must be positive")

	// The connection survives the error.
	require.NoError(t, conn.WriteJSON(map[string]any{
		"time_interval": 0.1,
		"data":          []float64{1, 2, 3, 4},
	}))
	require.NoError(t, conn.ReadJSON(&ok))
}

func TestWebSocketRejectsBadKey(t *testing.T) {
	ts := newTestServer(t)
	wsURL := strings.Replace(ts.URL, "http", "ws", 1) + "/analyze_spectrum/ws"

	header := http.Header{}
	header.Set(config.DefaultAPIKeyHeader, "XXXX")

	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, header)
	require.Error(t, err)
	if conn != nil {
		conn.Close()
	}
	require.NotNil(t, resp)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
