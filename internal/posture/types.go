// Package posture detects static postural deviations from a single frame of body
// landmarks and describes them as issues plus overlay annotations.
package posture

import (
	"errors"
	"fmt"

	"github.com/ayusman/vision3/internal/geom"
)

// View is the camera's position relative to the subject.
type View string

const (
	Side  View = "side"
	Front View = "front"
	Back  View = "back"
)

// ErrUnknownView is returned by ParseView for anything other than side, front or back.
var ErrUnknownView = errors.New("unknown view")

// ParseView converts a wire view name into a View.
func ParseView(s string) (View, error) {
	switch View(s) {
	case Side, Front, Back:
		return View(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownView, s)
}

// Severity grades an issue.
type Severity string

const (
	Mild     Severity = "mild"
	Moderate Severity = "moderate"
	Severe   Severity = "severe"
)

// Metrics are the alignment measurements computed for a view. A nil field was not
// computed for the view and serializes as null.
type Metrics struct {
	ShoulderAngle   *float64 `json:"shoulderAngle"`
	HipAngle        *float64 `json:"hipAngle"`
	HeadDeviation   *float64 `json:"headDeviation"`
	HeadForward     *float64 `json:"headForward"`
	ShoulderRounded *float64 `json:"shoulderRounded"`
	HeadPitch       *float64 `json:"headPitch"`
	HeadYaw         *float64 `json:"headYaw"`
	HeadRoll        *float64 `json:"headRoll"`
}

// Issue is a postural finding.
type Issue struct {
	ID             string      `json:"id"`
	Type           string      `json:"type"`
	Severity       Severity    `json:"severity"`
	Title          string      `json:"title"`
	Description    string      `json:"description"`
	Recommendation string      `json:"recommendation"`
	Points         []geom.Vec2 `json:"points,omitempty"`
}

// AnnotationType is the overlay primitive to draw.
type AnnotationType string

const (
	Line  AnnotationType = "line"
	Point AnnotationType = "point"
	Angle AnnotationType = "angle"
	Text  AnnotationType = "text"
)

// defaultLineWidth is used when an annotation does not ask for a specific width.
const defaultLineWidth = 2

// Annotation is a presentation hint in pixel coordinates for the overlay renderer.
type Annotation struct {
	Type      AnnotationType `json:"type"`
	Points    []geom.Vec2    `json:"points"`
	Color     string         `json:"color"`
	Label     string         `json:"label,omitempty"`
	Dashed    bool           `json:"dashed"`
	Dash      []int          `json:"dash,omitempty"`
	LineWidth int            `json:"lineWidth"`
}

// Result is the outcome of analyzing one frame. Issues and Annotations are never nil so
// they serialize as empty arrays.
type Result struct {
	Metrics     Metrics      `json:"metrics"`
	Issues      []Issue      `json:"issues"`
	Annotations []Annotation `json:"annotations"`
}

func newResult() Result {
	return Result{Issues: []Issue{}, Annotations: []Annotation{}}
}

func (r *Result) addIssue(issue Issue) {
	r.Issues = append(r.Issues, issue)
}

func (r *Result) annotate(a Annotation) {
	if a.LineWidth == 0 {
		a.LineWidth = defaultLineWidth
	}
	r.Annotations = append(r.Annotations, a)
}
