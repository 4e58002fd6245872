package joint

import (
	"fmt"
	"math"
	"runtime"

	"go.uber.org/zap"

	"github.com/ayusman/vision3/internal/pose"
)

// Config holds configuration options for the calculator.
type Config struct {
	// Logger receives soft warnings about measurements that could not be computed.
	Logger *zap.Logger

	// Workers bounds how many measurements of a batch run concurrently (default: GOMAXPROCS).
	Workers int
}

// Calculator computes joint angles. It holds no per-call state and is safe for
// concurrent use.
type Calculator struct {
	logger  *zap.Logger
	workers int
}

// New creates a new Calculator with the given configuration.
func New(config Config) *Calculator {
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	workers := config.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Calculator{logger: logger, workers: workers}
}

// Input is the landmark data for one frame as it arrives on the wire.
type Input struct {
	Landmarks []pose.Landmark
	World     []pose.Landmark
	Width     int
	Height    int
}

// Frame is a validated frame prepared for measurement. Pixel coordinates are computed
// once and shared by every measurement of a batch.
type Frame struct {
	Landmarks *pose.Set
	Pixels    *pose.PixelSet
	// World is nil when no complete set of world landmarks was supplied.
	World  *pose.Set
	Width  int
	Height int
}

// NewFrame validates the input and projects it into pixel space. Incomplete world
// landmarks are dropped so that measurements fall back to the 2D path.
func NewFrame(in Input) (*Frame, error) {
	set, err := pose.NewSet(in.Landmarks)
	if err != nil {
		return nil, err
	}

	f := &Frame{
		Landmarks: set,
		Pixels:    set.Pixels(in.Width, in.Height),
		Width:     in.Width,
		Height:    in.Height,
	}
	if world, err := pose.NewSet(in.World); err == nil {
		f.World = world
	}
	return f, nil
}

// Calculate validates the input and computes a single joint angle in degrees.
func (c *Calculator) Calculate(req Request, in Input) (float64, error) {
	f, err := NewFrame(in)
	if err != nil {
		return 0, err
	}
	return c.Angle(f, req)
}

// Angle computes a single joint angle in degrees for a prepared frame.
func (c *Calculator) Angle(f *Frame, req Request) (angle float64, err error) {
	if err := req.Validate(); err != nil {
		return 0, err
	}

	defer func() {
		if r := recover(); r != nil {
			c.logger.Warn("joint angle computation panicked",
				zap.String("joint", string(req.Joint)),
				zap.String("direction", string(req.Direction)),
				zap.Any("panic", r))
			angle, err = 0, fmt.Errorf("%w: %v", ErrDegenerate, r)
		}
	}()

	switch req.Joint {
	case Cervical:
		angle = cervical(req.Direction, f)
	case Shoulder:
		angle = shoulder(req.Direction, req.Side, f.Pixels)
	case Thoracolumbar:
		angle = thoracolumbar(req.Direction, f.Pixels)
	case Elbow:
		angle = elbow(req.Side, f.Pixels)
	case Wrist:
		angle = wrist(req.Direction, req.Side, f.Pixels)
	case Hip:
		angle = hip(req.Direction, req.Side, f.Pixels)
	case Knee:
		angle = knee(req.Side, f.Pixels)
	case Ankle:
		angle = ankle(req.Side, f.Pixels)
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedJoint, req.Joint)
	}

	if math.IsNaN(angle) || math.IsInf(angle, 0) {
		return 0, fmt.Errorf("%w: %s %s", ErrDegenerate, req.Joint, req.Direction)
	}
	return angle, nil
}
