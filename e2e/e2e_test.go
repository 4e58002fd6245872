package e2e

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/ayusman/vision3/internal/analysis"
	"github.com/ayusman/vision3/internal/config"
	"github.com/ayusman/vision3/internal/joint"
	"github.com/ayusman/vision3/internal/pose"
	"github.com/ayusman/vision3/internal/posture"
	"github.com/ayusman/vision3/internal/server"
)

func startServer(t *testing.T) *httptest.Server {
	t.Helper()

	cfg := config.Default()
	service := analysis.New(analysis.Config{Workers: cfg.Analysis.Workers})
	srv := server.New(server.Config{
		Service: service,
		WS: server.WSConfig{
			MaxMessageBytes: cfg.WS.MaxMessageBytes,
			RateLimit:       cfg.WS.RateLimit,
			Burst:           cfg.WS.Burst,
		},
	})

	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)
	return ts
}

// forwardHeadLandmarks is the neutral pose with the left ear pushed well ahead of the
// shoulder, as seen from the side.
func forwardHeadLandmarks() []pose.Landmark {
	landmarks := pose.NeutralStandingLandmarks()
	landmarks[pose.LeftEar].X = 0.63
	landmarks[pose.LeftShoulder].X = 0.60
	landmarks[pose.LeftHip].X = 0.60
	return landmarks
}

func TestE2E_LiveSession(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test")
	}

	ts := startServer(t)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/analyze"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial error = %v", err)
	}
	defer conn.Close()

	t.Run("PostureSync", func(t *testing.T) {
		req := analysis.PostureRequest{
			Type:      analysis.TypePostureSync,
			View:      "side",
			Width:     1000,
			Height:    1000,
			Landmarks: forwardHeadLandmarks(),
		}
		if err := conn.WriteJSON(req); err != nil {
			t.Fatalf("write error = %v", err)
		}

		conn.SetReadDeadline(time.Now().Add(5 * time.Second))
		var resp analysis.PostureResponse
		if err := conn.ReadJSON(&resp); err != nil {
			t.Fatalf("read error = %v", err)
		}

		if resp.Type != analysis.TypeAnalysisResult {
			t.Fatalf("type = %s, want %s", resp.Type, analysis.TypeAnalysisResult)
		}

		var found bool
		for _, issue := range resp.Issues {
			if issue.ID == "head-forward" {
				found = true
				if issue.Severity != posture.Moderate {
					t.Errorf("severity = %s, want %s", issue.Severity, posture.Moderate)
				}
			}
		}
		if !found {
			t.Errorf("expected head-forward issue, got %+v", resp.Issues)
		}
	})

	t.Run("JointAnalysis", func(t *testing.T) {
		measurements := []joint.Measurement{
			{ID: "neck-flex", JointType: "cervical", Direction: "flexion"},
			{ID: "l-elbow", JointType: "elbow", Direction: "flexion", Side: "left"},
			{ID: "r-knee", JointType: "knee", Direction: "flexion", Side: "right"},
			{ID: "trunk", JointType: "thoracolumbar", Direction: "right-lateral-flexion"},
			{ID: "bogus", JointType: "tail", Direction: "flexion"},
		}
		req := analysis.JointRequest{
			Type:           analysis.TypeJointAnalysis,
			Width:          1280,
			Height:         720,
			Landmarks:      pose.NeutralStandingLandmarks(),
			WorldLandmarks: pose.NeutralStandingWorldLandmarks(),
			Measurements:   measurements,
		}
		if err := conn.WriteJSON(req); err != nil {
			t.Fatalf("write error = %v", err)
		}

		conn.SetReadDeadline(time.Now().Add(5 * time.Second))
		var resp analysis.JointResponse
		if err := conn.ReadJSON(&resp); err != nil {
			t.Fatalf("read error = %v", err)
		}

		if len(resp.Results) != len(measurements) {
			t.Fatalf("len(results) = %d, want %d", len(resp.Results), len(measurements))
		}

		byID := make(map[string]*float64, len(resp.Results))
		for _, r := range resp.Results {
			byID[r.ID] = r.Angle
		}
		for _, m := range measurements {
			angle, ok := byID[m.ID]
			if !ok {
				t.Errorf("missing result for %s", m.ID)
				continue
			}
			if m.ID == "bogus" {
				if angle != nil {
					t.Errorf("bogus: angle = %f, want null", *angle)
				}
				continue
			}
			if angle == nil {
				t.Errorf("%s: angle = null, want a number", m.ID)
			}
		}
	})

	t.Run("APIStillWorks", func(t *testing.T) {
		resp, err := ts.Client().Get(ts.URL + "/api/health")
		if err != nil {
			t.Fatalf("health error = %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Errorf("health check failed during a live session")
		}
	})
}

func TestE2E_HTTPMatchesWebSocket(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test")
	}

	ts := startServer(t)

	body, _ := json.Marshal(analysis.PostureRequest{
		Type:      analysis.TypePostureSync,
		View:      "side",
		Width:     1000,
		Height:    1000,
		Landmarks: forwardHeadLandmarks(),
	})

	resp, err := ts.Client().Post(ts.URL+"/api/posture", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("POST /api/posture error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var out analysis.PostureResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode error = %v", err)
	}
	if out.Metrics.HeadForward == nil || *out.Metrics.HeadForward <= 0.25 {
		t.Errorf("headForward = %v, want > 0.25", out.Metrics.HeadForward)
	}
}
