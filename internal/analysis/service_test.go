package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/ayusman/vision3/internal/joint"
	"github.com/ayusman/vision3/internal/pose"
)

var fixedNow = time.UnixMilli(1700000000123)

func newTestService() *Service {
	return New(Config{Now: func() time.Time { return fixedNow }})
}

func TestService_Posture(t *testing.T) {
	s := newTestService()

	resp := s.Posture(PostureRequest{
		Type:      TypePostureSync,
		View:      "front",
		Width:     1280,
		Height:    720,
		Landmarks: pose.NeutralStandingLandmarks(),
	})

	if resp.Type != TypeAnalysisResult {
		t.Errorf("expected type %s, got %s", TypeAnalysisResult, resp.Type)
	}
	if resp.Timestamp != fixedNow.UnixMilli() {
		t.Errorf("expected timestamp %d, got %d", fixedNow.UnixMilli(), resp.Timestamp)
	}
	if resp.Metrics.ShoulderAngle == nil {
		t.Error("expected shoulderAngle for the front view")
	}
	if len(resp.Annotations) == 0 {
		t.Error("expected reference annotations")
	}
}

func TestService_PostureUnknownView(t *testing.T) {
	s := newTestService()

	resp := s.Posture(PostureRequest{View: "overhead", Width: 100, Height: 100, Landmarks: pose.NeutralStandingLandmarks()})

	if len(resp.Issues) != 0 || len(resp.Annotations) != 0 {
		t.Errorf("expected an empty analysis, got %+v", resp)
	}
	if resp.Metrics.ShoulderAngle != nil || resp.Metrics.HeadForward != nil {
		t.Errorf("expected no metrics, got %+v", resp.Metrics)
	}
}

func TestService_Joints(t *testing.T) {
	s := newTestService()

	resp := s.Joints(context.Background(), JointRequest{
		Type:      TypeJointAnalysis,
		Width:     1280,
		Height:    720,
		Landmarks: pose.NeutralStandingLandmarks(),
		Measurements: []joint.Measurement{
			{ID: "1", JointType: "elbow", Direction: "flexion", Side: "left"},
			{ID: "2", JointType: "elbow", Direction: "flexion"},
		},
	})

	if resp.Type != TypeJointResult {
		t.Errorf("expected type %s, got %s", TypeJointResult, resp.Type)
	}
	if len(resp.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(resp.Results))
	}
	if resp.Results[0].Angle == nil {
		t.Error("expected an angle for the left elbow")
	}
	if resp.Results[1].Angle != nil {
		t.Errorf("expected a null angle without a side, got %f", *resp.Results[1].Angle)
	}
}

func TestService_DispatchJointBatch(t *testing.T) {
	s := newTestService()

	req := JointRequest{
		Type:      TypeJointAnalysis,
		Width:     1000,
		Height:    1000,
		Landmarks: pose.NeutralStandingLandmarks(),
		Measurements: []joint.Measurement{
			{ID: "a", JointType: "knee", Direction: "flexion", Side: "left"},
			{ID: "b", JointType: "hip", Direction: "flexion", Side: "right"},
			{ID: "c", JointType: "neck", Direction: "flexion"},
			{ID: "d", JointType: "thoracolumbar", Direction: "flexion"},
			{ID: "e", JointType: "wrist", Direction: "radial-deviation", Side: "left"},
		},
	}
	data, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	out := s.Handle(context.Background(), data)

	var resp struct {
		Type    string `json:"type"`
		Results []struct {
			ID    string   `json:"id"`
			Angle *float64 `json:"angle"`
		} `json:"results"`
	}
	if err := json.Unmarshal(out, &resp); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if resp.Type != TypeJointResult {
		t.Fatalf("expected %s, got %s", TypeJointResult, resp.Type)
	}
	if len(resp.Results) != 5 {
		t.Fatalf("expected 5 results, got %d", len(resp.Results))
	}

	nulls := 0
	for i, r := range resp.Results {
		if r.ID != req.Measurements[i].ID {
			t.Errorf("result %d: expected id %q, got %q", i, req.Measurements[i].ID, r.ID)
		}
		if r.Angle == nil {
			nulls++
		}
	}
	if nulls != 1 || resp.Results[2].Angle != nil {
		t.Errorf("expected only the unknown joint to be null, got %s", out)
	}
	if !strings.Contains(string(out), `"angle":null`) {
		t.Errorf("expected a null angle on the wire, got %s", out)
	}
}

func TestService_DispatchPosture(t *testing.T) {
	s := newTestService()

	data, err := json.Marshal(PostureRequest{
		Type:      TypePostureSync,
		View:      "side",
		Width:     640,
		Height:    480,
		Landmarks: pose.NeutralStandingLandmarks(),
	})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	resp, err := s.Dispatch(context.Background(), data)
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}

	posture, ok := resp.(PostureResponse)
	if !ok {
		t.Fatalf("expected PostureResponse, got %T", resp)
	}
	if posture.Metrics.HeadForward == nil {
		t.Error("expected headForward for the side view")
	}
}

func TestService_DispatchErrors(t *testing.T) {
	s := newTestService()

	tests := []struct {
		name string
		data string
		want error
	}{
		{name: "invalid json", data: `{"type":`, want: ErrMalformedMessage},
		{name: "unknown type", data: `{"type":"PING"}`, want: ErrUnknownMessageType},
		{name: "missing type", data: `{}`, want: ErrUnknownMessageType},
		{name: "wrong field type", data: `{"type":"JOINT_ANALYSIS","width":"wide"}`, want: ErrMalformedMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Dispatch(context.Background(), []byte(tt.data))
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestService_HandleError(t *testing.T) {
	s := newTestService()

	out := s.Handle(context.Background(), []byte(`{"type":"PING"}`))

	var resp ErrorResponse
	if err := json.Unmarshal(out, &resp); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if resp.Type != TypeError {
		t.Errorf("expected %s, got %s", TypeError, resp.Type)
	}
	if !strings.Contains(resp.Error, "PING") {
		t.Errorf("expected the error to name the type, got %q", resp.Error)
	}
}

func TestService_Reject(t *testing.T) {
	s := newTestService()

	t.Run("posture frames get no reply", func(t *testing.T) {
		if out, ok := s.Reject([]byte(`{"type":"POSTURE_SYNC","view":"side"}`), ErrRateLimited); ok {
			t.Errorf("expected no reply, got %s", out)
		}
	})

	for _, data := range []string{`{"type":"JOINT_ANALYSIS","measurements":[]}`, `not json`} {
		t.Run(data, func(t *testing.T) {
			out, ok := s.Reject([]byte(data), ErrRateLimited)
			if !ok {
				t.Fatal("expected an ERROR reply")
			}

			var resp ErrorResponse
			if err := json.Unmarshal(out, &resp); err != nil {
				t.Fatalf("Unmarshal: %v", err)
			}
			if resp.Type != TypeError || resp.Error != ErrRateLimited.Error() {
				t.Errorf("unexpected reply %+v", resp)
			}
			if resp.Timestamp != fixedNow.UnixMilli() {
				t.Errorf("expected timestamp %d, got %d", fixedNow.UnixMilli(), resp.Timestamp)
			}
		})
	}
}
