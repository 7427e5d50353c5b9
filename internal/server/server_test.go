package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"terragen/internal/terrain"
)

func testDefaults() terrain.Config {
	cfg := terrain.DefaultConfig()
	cfg.Dimension = 32
	cfg.Lifespan = 100
	cfg.ChartDimension = 4
	cfg.Erosion.Ratio = 2
	cfg.Erosion.MaxIterations = 5
	return cfg
}

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	s := New(ctx, testDefaults())
	ts := httptest.NewServer(s.Routes())
	t.Cleanup(func() {
		cancel()
		ts.Close()
	})
	return s, ts
}

func postJob(t *testing.T, ts *httptest.Server, body string) JobView {
	t.Helper()
	resp, err := http.Post(ts.URL+"/api/jobs", "application/json", bytes.NewBufferString(body))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusAccepted {
		t.Fatalf("create job: status %d", resp.StatusCode)
	}
	var v JobView
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatal(err)
	}
	return v
}

func waitJob(t *testing.T, s *Server, id string) *Job {
	t.Helper()
	j, err := s.Store().Get(id)
	if err != nil {
		t.Fatal(err)
	}
	select {
	case <-j.Done():
	case <-time.After(60 * time.Second):
		t.Fatal("job did not finish")
	}
	return j
}

func getJSON(t *testing.T, url string, dst any) int {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if dst != nil && resp.StatusCode == http.StatusOK {
		if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
			t.Fatal(err)
		}
	}
	return resp.StatusCode
}

func TestHealthAndParams(t *testing.T) {
	_, ts := newTestServer(t)
	var health map[string]string
	if code := getJSON(t, ts.URL+"/api/health", &health); code != http.StatusOK || health["status"] != "ok" {
		t.Fatalf("health: %d %v", code, health)
	}
	var params struct {
		Groups []struct {
			Name string `json:"name"`
		} `json:"groups"`
	}
	if code := getJSON(t, ts.URL+"/api/params", &params); code != http.StatusOK || len(params.Groups) == 0 {
		t.Fatalf("params: %d %+v", code, params)
	}
}

func TestJobLifecycle(t *testing.T) {
	s, ts := newTestServer(t)
	created := postJob(t, ts, `{"seed":"5"}`)
	if created.Status != StatusRunning {
		t.Fatalf("new job status %q", created.Status)
	}
	waitJob(t, s, created.ID)

	var v JobView
	if code := getJSON(t, ts.URL+"/api/jobs/"+created.ID, &v); code != http.StatusOK {
		t.Fatalf("get job: %d", code)
	}
	if v.Status != StatusDone || v.Summary == nil {
		t.Fatalf("job finished as %q (%s)", v.Status, v.Error)
	}
	if v.Summary.Seed != 5 || v.Summary.Dimension != 64 || v.Summary.ErodedDimension != 128 {
		t.Fatalf("unexpected summary %+v", v.Summary)
	}

	resp, err := http.Get(ts.URL + "/api/jobs/" + created.ID + "/layers/climate.png")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK || resp.Header.Get("Content-Type") != "image/png" {
		t.Fatalf("layer: %d %s", resp.StatusCode, resp.Header.Get("Content-Type"))
	}
	if code := getJSON(t, ts.URL+"/api/jobs/"+created.ID+"/layers/bogus.png", nil); code != http.StatusNotFound {
		t.Fatalf("unknown layer: %d", code)
	}

	var continents []map[string]any
	if code := getJSON(t, ts.URL+"/api/jobs/"+created.ID+"/continents", &continents); code != http.StatusOK {
		t.Fatalf("continents: %d", code)
	}
	if len(continents) != v.Summary.Continents {
		t.Fatalf("listed %d continents, summary says %d", len(continents), v.Summary.Continents)
	}
	if len(continents) > 0 {
		url := fmt.Sprintf("%s/api/jobs/%s/regions/1/0/0", ts.URL, created.ID)
		// (0,0) of a bounding box is not always land, so only the status is checked.
		if code := getJSON(t, url, nil); code != http.StatusOK && code != http.StatusNotFound {
			t.Fatalf("region: %d", code)
		}
	}
}

func TestUnknownAndInvalidJobs(t *testing.T) {
	_, ts := newTestServer(t)
	if code := getJSON(t, ts.URL+"/api/jobs/not-a-uuid", nil); code != http.StatusNotFound {
		t.Fatalf("bad id: %d", code)
	}
	resp, err := http.Post(ts.URL+"/api/jobs", "application/json", strings.NewReader(`{"dimension":"48"}`))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("invalid dimension accepted: %d", resp.StatusCode)
	}
	resp, err = http.Post(ts.URL+"/api/jobs", "application/json", strings.NewReader(`not json`))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("bad body accepted: %d", resp.StatusCode)
	}
}

func TestCancelJob(t *testing.T) {
	_, ts := newTestServer(t)
	created := postJob(t, ts, `{"lifespan":"100000000"}`)
	req, err := http.NewRequest(http.MethodDelete, ts.URL+"/api/jobs/"+created.ID, nil)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var v JobView
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatal(err)
	}
	if v.Status != StatusCancelled {
		t.Fatalf("cancelled job reports %q", v.Status)
	}
	if code := getJSON(t, ts.URL+"/api/jobs/"+created.ID+"/continents", nil); code != http.StatusConflict {
		t.Fatalf("continents of cancelled job: %d", code)
	}
}

func TestProgressStream(t *testing.T) {
	_, ts := newTestServer(t)
	created := postJob(t, ts, "")
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/jobs/" + created.ID + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	conn.SetReadDeadline(time.Now().Add(60 * time.Second))

	var last []byte
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			break
		}
		last = msg
	}
	var v JobView
	if err := json.Unmarshal(last, &v); err != nil {
		t.Fatalf("final message: %v", err)
	}
	if v.ID != created.ID || v.Status != StatusDone {
		t.Fatalf("final message reports %q for %s", v.Status, v.ID)
	}
}
