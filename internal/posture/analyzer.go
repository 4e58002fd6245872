package posture

import (
	"math"

	"go.uber.org/zap"

	"github.com/ayusman/vision3/internal/geom"
	"github.com/ayusman/vision3/internal/pose"
)

// Deviation thresholds. These are calibration values for the overlay UI.
const (
	headForwardThreshold       = 0.25
	headForwardSevereThreshold = 0.45
	roundedShoulderThreshold   = 0.15
	tiltThreshold              = 0.03
	tiltModerateThreshold      = 0.08
	midlineShiftThreshold      = 0.08
)

// Overlay colors.
const (
	colorReference = "rgba(59, 130, 246, 0.5)"
	colorPlumb     = "rgba(255, 255, 0, 0.8)"
	colorLevel     = "rgba(0, 255, 255, 0.7)"
	colorAlert     = "#ef4444"
	colorWarning   = "#f59e0b"
	colorHead      = "#8b5cf6"
)

// Analyzer computes posture metrics and issues. It holds no per-call state and is safe
// for concurrent use.
type Analyzer struct {
	logger *zap.Logger
}

// New creates an Analyzer. A nil logger discards output.
func New(logger *zap.Logger) *Analyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Analyzer{logger: logger}
}

// Analyze inspects one frame seen from view. Coordinates are projected into a width x
// height pixel space before measuring; annotations are returned in that space. An
// unknown view yields an empty result.
func (a *Analyzer) Analyze(view View, set *pose.Set, width, height int) Result {
	result := newResult()
	if set == nil {
		return result
	}

	p := set.Pixels(width, height)

	switch view {
	case Side:
		analyzeSide(&result, p, float64(height))
	case Front, Back:
		analyzeFrontal(&result, p, float64(height))
	default:
		a.logger.Debug("skipping posture analysis for unknown view", zap.String("view", string(view)))
		return result
	}

	a.logger.Debug("posture analyzed",
		zap.String("view", string(view)),
		zap.Int("issues", len(result.Issues)),
		zap.Int("annotations", len(result.Annotations)))
	return result
}

// AnalyzeLandmarks is Analyze for a raw landmark list. Missing trailing landmarks are
// treated as sitting at the origin.
func (a *Analyzer) AnalyzeLandmarks(view View, landmarks []pose.Landmark, width, height int) Result {
	return a.Analyze(view, pose.PadSet(landmarks), width, height)
}

// ratio divides num by den, flooring the denominator at one pixel.
func ratio(num, den float64) float64 {
	if den < 1 {
		den = 1
	}
	return num / den
}

// slope is the absolute rise over run between two points.
func slope(a, b geom.Vec2) float64 {
	return ratio(math.Abs(a.Y-b.Y), math.Abs(a.X-b.X))
}

func round(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}

func metric(v float64) *float64 {
	return &v
}

// verticalLine spans from 5% to 95% of the frame height at x.
func verticalLine(x, height float64) []geom.Vec2 {
	return []geom.Vec2{{X: x, Y: height * 0.05}, {X: x, Y: height * 0.95}}
}
