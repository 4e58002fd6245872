// Package joint computes joint range-of-motion angles from body landmarks.
package joint

import (
	"errors"
	"fmt"
)

// Type identifies a measurable joint.
type Type string

const (
	Cervical      Type = "cervical"
	Shoulder      Type = "shoulder"
	Thoracolumbar Type = "thoracolumbar"
	Elbow         Type = "elbow"
	Wrist         Type = "wrist"
	Hip           Type = "hip"
	Knee          Type = "knee"
	Ankle         Type = "ankle"
)

// Types lists every supported joint in display order.
var Types = []Type{Cervical, Shoulder, Thoracolumbar, Elbow, Wrist, Hip, Knee, Ankle}

// Direction identifies a motion direction of a joint.
type Direction string

const (
	Flexion             Direction = "flexion"
	Extension           Direction = "extension"
	Abduction           Direction = "abduction"
	Adduction           Direction = "adduction"
	InternalRotation    Direction = "internal-rotation"
	ExternalRotation    Direction = "external-rotation"
	LeftRotation        Direction = "left-rotation"
	RightRotation       Direction = "right-rotation"
	LeftLateralFlexion  Direction = "left-lateral-flexion"
	RightLateralFlexion Direction = "right-lateral-flexion"
	UlnarDeviation      Direction = "ulnar-deviation"
	RadialDeviation     Direction = "radial-deviation"
	Dorsiflexion        Direction = "dorsiflexion"
	Plantarflexion      Direction = "plantarflexion"
)

var allDirections = []Direction{
	Flexion, Extension, Abduction, Adduction, InternalRotation, ExternalRotation,
	LeftRotation, RightRotation, LeftLateralFlexion, RightLateralFlexion,
	UlnarDeviation, RadialDeviation, Dorsiflexion, Plantarflexion,
}

// Side selects the left or right member of a bilateral joint.
type Side string

const (
	SideNone Side = ""
	Left     Side = "left"
	Right    Side = "right"
)

var (
	// ErrUnsupportedJoint is returned for an unknown joint type.
	ErrUnsupportedJoint = errors.New("unsupported joint")
	// ErrUnsupportedDirection is returned when a joint cannot be measured in a direction.
	ErrUnsupportedDirection = errors.New("unsupported direction")
	// ErrUnsupportedSide is returned for a side other than left or right.
	ErrUnsupportedSide = errors.New("unsupported side")
	// ErrMissingSide is returned when a bilateral joint is measured without a side.
	ErrMissingSide = errors.New("side is required")
	// ErrDegenerate is returned when the landmark geometry does not yield a finite angle.
	ErrDegenerate = errors.New("degenerate geometry")
)

// IsUnsupported reports whether err describes a request the calculator cannot serve,
// as opposed to geometry that could not be measured.
func IsUnsupported(err error) bool {
	return errors.Is(err, ErrUnsupportedJoint) ||
		errors.Is(err, ErrUnsupportedDirection) ||
		errors.Is(err, ErrUnsupportedSide) ||
		errors.Is(err, ErrMissingSide)
}

// directions lists what each joint can be measured in.
var directions = map[Type][]Direction{
	Cervical:      {Flexion, Extension, LeftLateralFlexion, RightLateralFlexion, LeftRotation, RightRotation},
	Shoulder:      {Flexion, Extension, Abduction, Adduction, InternalRotation, ExternalRotation},
	Thoracolumbar: {Flexion, Extension, LeftLateralFlexion, RightLateralFlexion},
	Elbow:         {Flexion, Extension},
	Wrist:         {Flexion, Extension, UlnarDeviation, RadialDeviation},
	Hip:           {Flexion, Extension},
	Knee:          {Flexion, Extension},
	Ankle:         {Dorsiflexion, Plantarflexion},
}

// Directions returns the directions a joint can be measured in.
func Directions(t Type) []Direction {
	return directions[t]
}

// Bilateral reports whether the joint needs a side.
func (t Type) Bilateral() bool {
	return t != Cervical && t != Thoracolumbar
}

// Supports reports whether the joint can be measured in direction d.
func (t Type) Supports(d Direction) bool {
	for _, s := range directions[t] {
		if s == d {
			return true
		}
	}
	return false
}

// ParseType converts a wire joint name into a Type.
func ParseType(s string) (Type, error) {
	t := Type(s)
	if _, ok := directions[t]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedJoint, s)
	}
	return t, nil
}

// ParseDirection converts a wire direction name into a Direction.
func ParseDirection(s string) (Direction, error) {
	for _, d := range allDirections {
		if string(d) == s {
			return d, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedDirection, s)
}

// ParseSide converts a wire side into a Side. The empty string means no side.
func ParseSide(s string) (Side, error) {
	switch Side(s) {
	case SideNone, Left, Right:
		return Side(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedSide, s)
}

// pick returns left when the side is Left and right otherwise.
func (s Side) pick(left, right int) int {
	if s == Left {
		return left
	}
	return right
}

// Request is a parsed joint measurement.
type Request struct {
	Joint     Type
	Direction Direction
	Side      Side
}

// Validate checks that the joint supports the direction and that bilateral joints
// carry a side.
func (r Request) Validate() error {
	if _, ok := directions[r.Joint]; !ok {
		return fmt.Errorf("%w: %q", ErrUnsupportedJoint, r.Joint)
	}
	if !r.Joint.Supports(r.Direction) {
		return fmt.Errorf("%w: %s %s", ErrUnsupportedDirection, r.Joint, r.Direction)
	}
	if r.Joint.Bilateral() && r.Side == SideNone {
		return fmt.Errorf("%w: %s", ErrMissingSide, r.Joint)
	}
	return nil
}

// Measurement is one unit of work as it arrives on the wire.
type Measurement struct {
	ID        string `json:"id"`
	JointType string `json:"jointType"`
	Direction string `json:"direction"`
	Side      string `json:"side,omitempty"`
}

// Request parses the measurement into a Request.
func (m Measurement) Request() (Request, error) {
	t, err := ParseType(m.JointType)
	if err != nil {
		return Request{}, err
	}
	d, err := ParseDirection(m.Direction)
	if err != nil {
		return Request{}, err
	}
	s, err := ParseSide(m.Side)
	if err != nil {
		return Request{}, err
	}
	return Request{Joint: t, Direction: d, Side: s}, nil
}

// Result is the outcome of one measurement. A nil Angle means the angle could not be
// computed and serializes as null.
type Result struct {
	ID    string   `json:"id"`
	Angle *float64 `json:"angle"`
}
