// Package analysis exposes the joint and posture analyzers behind the JSON message
// protocol spoken by the live assessment UI.
package analysis

import (
	"github.com/ayusman/vision3/internal/joint"
	"github.com/ayusman/vision3/internal/pose"
	"github.com/ayusman/vision3/internal/posture"
)

// Message types.
const (
	TypePostureSync    = "POSTURE_SYNC"
	TypeAnalysisResult = "ANALYSIS_RESULT"
	TypeJointAnalysis  = "JOINT_ANALYSIS"
	TypeJointResult    = "JOINT_RESULT"
	TypeError          = "ERROR"
)

// envelope is decoded first to route a message by its type.
type envelope struct {
	Type string `json:"type"`
}

// PostureRequest asks for a posture analysis of one frame.
type PostureRequest struct {
	Type      string          `json:"type"`
	View      string          `json:"view"`
	Width     int             `json:"width"`
	Height    int             `json:"height"`
	Landmarks []pose.Landmark `json:"landmarks"`
}

// PostureResponse answers a PostureRequest.
type PostureResponse struct {
	Type        string               `json:"type"`
	Metrics     posture.Metrics      `json:"metrics"`
	Issues      []posture.Issue      `json:"issues"`
	Annotations []posture.Annotation `json:"annotations"`
	Timestamp   int64                `json:"timestamp"`
}

// JointRequest asks for a batch of joint measurements on one frame.
type JointRequest struct {
	Type           string              `json:"type"`
	Width          int                 `json:"width"`
	Height         int                 `json:"height"`
	Landmarks      []pose.Landmark     `json:"landmarks"`
	WorldLandmarks []pose.Landmark     `json:"worldLandmarks,omitempty"`
	Measurements   []joint.Measurement `json:"measurements"`
}

// JointResponse answers a JointRequest with one result per measurement.
type JointResponse struct {
	Type      string         `json:"type"`
	Results   []joint.Result `json:"results"`
	Timestamp int64          `json:"timestamp"`
}

// ErrorResponse reports a message that could not be handled.
type ErrorResponse struct {
	Type      string `json:"type"`
	Error     string `json:"error"`
	Timestamp int64  `json:"timestamp"`
}
