package integration_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ptrack/beats/internal/testserver"
)

func doJSON(t *testing.T, ts *testserver.TestServer, method, path, body string) (*http.Response, map[string]any) {
	t.Helper()

	var rd io.Reader
	if body != "" {
		rd = bytes.NewBufferString(body)
	}
	req, err := http.NewRequest(method, ts.Server.URL+path, rd)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()

	var decoded map[string]any
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp, decoded
}

func TestIntegration_TimerWorkflow(t *testing.T) {
	ts := testserver.New(t)

	resp, proj := doJSON(t, ts, http.MethodPost, "/api/projects/", `{"name":"website","estimation":"40h"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	projectID := proj["id"].(string)
	require.NotEmpty(t, projectID)

	resp, other := doJSON(t, ts, http.MethodPost, "/api/projects/", `{"name":"backend"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	otherID := other["id"].(string)

	// Starting a timer on an unknown project is rejected.
	resp, _ = doJSON(t, ts, http.MethodPost, "/api/projects/nonexistent/start", "")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Start on the first project.
	resp, started := doJSON(t, ts, http.MethodPost,
		fmt.Sprintf("/api/projects/%s/start", projectID), "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, projectID, started["project_id"])
	require.Nil(t, started["end"])

	// A second start anywhere is rejected while the first runs.
	resp, errBody := doJSON(t, ts, http.MethodPost,
		fmt.Sprintf("/api/projects/%s/start", otherID), "")
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Contains(t, errBody["error"], projectID)

	resp, status := doJSON(t, ts, http.MethodGet, "/api/timer/status", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, true, status["isBeating"])

	// Stopping before the start time is rejected and the timer stays live.
	resp, _ = doJSON(t, ts, http.MethodPost, "/api/projects/stop", `{"time":"2000-01-01T00:00:00Z"}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, stopped := doJSON(t, ts, http.MethodPost, "/api/projects/stop", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotNil(t, stopped["end"])

	// A second stop finds nothing running.
	resp, _ = doJSON(t, ts, http.MethodPost, "/api/projects/stop", "")
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, status = doJSON(t, ts, http.MethodGet, "/api/timer/status", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, false, status["isBeating"])
	require.NotNil(t, status["last_beat"])
}

func TestIntegration_BeatCRUDAndReports(t *testing.T) {
	ts := testserver.New(t)

	resp, proj := doJSON(t, ts, http.MethodPost, "/api/projects/", `{"name":"consulting"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	projectID := proj["id"].(string)

	day := time.Now().UTC().Format("2006-01-02")
	makeBody := func(startHour, endHour int) string {
		return fmt.Sprintf(`{"project_id":%q,"start":"%sT%02d:00:00Z","end":"%sT%02d:00:00Z"}`,
			projectID, day, startHour, day, endHour)
	}

	resp, b1 := doJSON(t, ts, http.MethodPost, "/api/beats/", makeBody(9, 11))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	beatID := b1["id"].(string)
	require.Equal(t, "2:00:00", b1["duration"])

	resp, _ = doJSON(t, ts, http.MethodPost, "/api/beats/", makeBody(13, 14))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// A beat with end before start never lands.
	resp, _ = doJSON(t, ts, http.MethodPost, "/api/beats/",
		fmt.Sprintf(`{"project_id":%q,"start":"%sT15:00:00Z","end":"%sT14:00:00Z"}`, projectID, day, day))
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Referencing a missing project fails cleanly.
	resp, _ = doJSON(t, ts, http.MethodPost, "/api/beats/",
		fmt.Sprintf(`{"project_id":"ghost","start":"%sT09:00:00Z"}`, day))
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, today := doJSON(t, ts, http.MethodGet,
		fmt.Sprintf("/api/projects/%s/today/", projectID), "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "3:00:00", today["duration"])

	resp, week := doJSON(t, ts, http.MethodGet,
		fmt.Sprintf("/api/projects/%s/week/", projectID), "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.InDelta(t, 3.0, week["total_hours"], 0.001)

	resp, totals := doJSON(t, ts, http.MethodGet,
		fmt.Sprintf("/api/projects/%s/total/", projectID), "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, float64(180), totals["total_minutes"])

	resp, summary := doJSON(t, ts, http.MethodGet,
		fmt.Sprintf("/api/projects/%s/summary/", projectID), "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "3:00:00", summary[day])

	// Trim the first beat by an hour and watch the totals follow.
	resp, _ = doJSON(t, ts, http.MethodPut, "/api/beats/",
		fmt.Sprintf(`{"id":%q,"project_id":%q,"start":"%sT09:00:00Z","end":"%sT10:00:00Z"}`,
			beatID, projectID, day, day))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, today = doJSON(t, ts, http.MethodGet,
		fmt.Sprintf("/api/projects/%s/today/", projectID), "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "2:00:00", today["duration"])

	resp, deleted := doJSON(t, ts, http.MethodDelete, "/api/beats/"+beatID, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, true, deleted["deleted"])

	resp, _ = doJSON(t, ts, http.MethodGet, "/api/beats/"+beatID, "")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestIntegration_ProjectArchive(t *testing.T) {
	ts := testserver.New(t)

	resp, proj := doJSON(t, ts, http.MethodPost, "/api/projects/", `{"name":"legacy"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	projectID := proj["id"].(string)

	resp, _ = doJSON(t, ts, http.MethodPost,
		fmt.Sprintf("/api/projects/%s/archive", projectID), "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// The default listing hides archived projects.
	req, err := http.NewRequest(http.MethodGet, ts.Server.URL+"/api/projects/", nil)
	require.NoError(t, err)
	listResp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer listResp.Body.Close()

	var active []map[string]any
	require.NoError(t, json.NewDecoder(listResp.Body).Decode(&active))
	require.Empty(t, active)

	archResp, err := http.Get(ts.Server.URL + "/api/projects/?archived=true")
	require.NoError(t, err)
	defer archResp.Body.Close()

	var archived []map[string]any
	require.NoError(t, json.NewDecoder(archResp.Body).Decode(&archived))
	require.Len(t, archived, 1)
	require.Equal(t, projectID, archived[0]["id"])
}
