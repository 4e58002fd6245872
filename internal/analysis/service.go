package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ayusman/vision3/internal/joint"
	"github.com/ayusman/vision3/internal/posture"
)

var (
	// ErrMalformedMessage is returned when a message is not valid JSON for its type.
	ErrMalformedMessage = errors.New("malformed message")
	// ErrUnknownMessageType is returned for a message type the service does not handle.
	ErrUnknownMessageType = errors.New("unknown message type")
	// ErrRateLimited is reported for a message dropped by a rate limiter.
	ErrRateLimited = errors.New("rate limit exceeded")
)

// Config holds configuration options for the service.
type Config struct {
	Logger *zap.Logger

	// Workers bounds concurrent measurements within one joint batch.
	Workers int

	// Now stamps responses (default: time.Now).
	Now func() time.Time
}

// Service answers posture and joint analysis messages. It is safe for concurrent use.
type Service struct {
	joints  *joint.Calculator
	posture *posture.Analyzer
	logger  *zap.Logger
	now     func() time.Time
}

// New creates a new Service with the given configuration.
func New(config Config) *Service {
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	now := config.Now
	if now == nil {
		now = time.Now
	}
	return &Service{
		joints:  joint.New(joint.Config{Logger: logger.Named("joint"), Workers: config.Workers}),
		posture: posture.New(logger.Named("posture")),
		logger:  logger,
		now:     now,
	}
}

// Posture analyzes one frame. An unknown view yields empty metrics, issues and
// annotations.
func (s *Service) Posture(req PostureRequest) PostureResponse {
	view, err := posture.ParseView(req.View)
	if err != nil {
		s.logger.Warn("posture request with unknown view", zap.String("view", req.View))
	}

	result := s.posture.AnalyzeLandmarks(view, req.Landmarks, req.Width, req.Height)

	return PostureResponse{
		Type:        TypeAnalysisResult,
		Metrics:     result.Metrics,
		Issues:      result.Issues,
		Annotations: result.Annotations,
		Timestamp:   s.now().UnixMilli(),
	}
}

// Joints measures every requested joint. Measurements that cannot be computed carry a
// null angle; the response always has one result per measurement.
func (s *Service) Joints(ctx context.Context, req JointRequest) JointResponse {
	in := joint.Input{
		Landmarks: req.Landmarks,
		World:     req.WorldLandmarks,
		Width:     req.Width,
		Height:    req.Height,
	}

	return JointResponse{
		Type:      TypeJointResult,
		Results:   s.joints.Measure(ctx, in, req.Measurements),
		Timestamp: s.now().UnixMilli(),
	}
}

// Error builds the response for a message that could not be handled.
func (s *Service) Error(err error) ErrorResponse {
	return ErrorResponse{
		Type:      TypeError,
		Error:     err.Error(),
		Timestamp: s.now().UnixMilli(),
	}
}

// Dispatch decodes a message, routes it by type and returns the response to send back.
func (s *Service) Dispatch(ctx context.Context, data []byte) (any, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedMessage, err)
	}

	switch env.Type {
	case TypePostureSync:
		var req PostureRequest
		if err := json.Unmarshal(data, &req); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedMessage, err)
		}
		return s.Posture(req), nil

	case TypeJointAnalysis:
		var req JointRequest
		if err := json.Unmarshal(data, &req); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedMessage, err)
		}
		return s.Joints(ctx, req), nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownMessageType, env.Type)
}

// Handle is Dispatch with failures turned into an ErrorResponse, ready to encode.
func (s *Service) Handle(ctx context.Context, data []byte) []byte {
	resp, err := s.Dispatch(ctx, data)
	if err != nil {
		s.logger.Warn("could not handle message", zap.Error(err))
		resp = s.Error(err)
	}

	out, err := json.Marshal(resp)
	if err != nil {
		// Only a non-finite metric can fail to encode.
		s.logger.Error("could not encode response", zap.Error(err))
		out, _ = json.Marshal(s.Error(err))
	}
	return out
}

// Reject builds the reply for a message that was not processed. Posture frames are
// superseded by the next frame of the stream and get no reply.
func (s *Service) Reject(data []byte, reason error) ([]byte, bool) {
	var env envelope
	if err := json.Unmarshal(data, &env); err == nil && env.Type == TypePostureSync {
		return nil, false
	}

	out, err := json.Marshal(s.Error(reason))
	if err != nil {
		return nil, false
	}
	return out, true
}
