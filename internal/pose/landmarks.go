// Package pose provides the body landmark topology and landmark set types consumed by the analyzers.
package pose

import (
	"errors"
	"fmt"

	"github.com/ayusman/vision3/internal/geom"
)

// Body landmark indices following the MediaPipe BlazePose convention.
// See: https://developers.google.com/mediapipe/solutions/vision/pose_landmarker
const (
	Nose           = 0
	LeftEyeInner   = 1
	LeftEye        = 2
	LeftEyeOuter   = 3
	RightEyeInner  = 4
	RightEye       = 5
	RightEyeOuter  = 6
	LeftEar        = 7
	RightEar       = 8
	MouthLeft      = 9
	MouthRight     = 10
	LeftShoulder   = 11
	RightShoulder  = 12
	LeftElbow      = 13
	RightElbow     = 14
	LeftWrist      = 15
	RightWrist     = 16
	LeftPinky      = 17
	RightPinky     = 18
	LeftIndex      = 19
	RightIndex     = 20
	LeftThumb      = 21
	RightThumb     = 22
	LeftHip        = 23
	RightHip       = 24
	LeftKnee       = 25
	RightKnee      = 26
	LeftAnkle      = 27
	RightAnkle     = 28
	LeftHeel       = 29
	RightHeel      = 30
	LeftFootIndex  = 31
	RightFootIndex = 32
	Count          = 33
)

// Names maps each landmark index to its canonical name.
var Names = [Count]string{
	"NOSE", "LEFT_EYE_INNER", "LEFT_EYE", "LEFT_EYE_OUTER",
	"RIGHT_EYE_INNER", "RIGHT_EYE", "RIGHT_EYE_OUTER",
	"LEFT_EAR", "RIGHT_EAR", "MOUTH_LEFT", "MOUTH_RIGHT",
	"LEFT_SHOULDER", "RIGHT_SHOULDER", "LEFT_ELBOW", "RIGHT_ELBOW",
	"LEFT_WRIST", "RIGHT_WRIST", "LEFT_PINKY", "RIGHT_PINKY",
	"LEFT_INDEX", "RIGHT_INDEX", "LEFT_THUMB", "RIGHT_THUMB",
	"LEFT_HIP", "RIGHT_HIP", "LEFT_KNEE", "RIGHT_KNEE",
	"LEFT_ANKLE", "RIGHT_ANKLE", "LEFT_HEEL", "RIGHT_HEEL",
	"LEFT_FOOT_INDEX", "RIGHT_FOOT_INDEX",
}

var (
	// ErrNoLandmarks is returned when a landmark list is empty.
	ErrNoLandmarks = errors.New("no landmarks")
	// ErrIncompleteLandmarks is returned when a landmark list has fewer than Count entries.
	ErrIncompleteLandmarks = errors.New("incomplete landmarks")
)

// Landmark is a single body keypoint. X and Y are normalized to [0,1] relative to the
// frame width and height, or metric units for world landmarks. Z and Visibility are
// optional.
type Landmark struct {
	X          float64  `json:"x"`
	Y          float64  `json:"y"`
	Z          *float64 `json:"z,omitempty"`
	Visibility *float64 `json:"visibility,omitempty"`
}

// Depth returns the landmark depth and whether one was supplied.
func (l Landmark) Depth() (float64, bool) {
	if l.Z == nil {
		return 0, false
	}
	return *l.Z, true
}

// Pixel projects the normalized landmark into pixel space.
func (l Landmark) Pixel(width, height int) geom.Vec2 {
	return geom.Vec2{X: l.X * float64(width), Y: l.Y * float64(height)}
}

// Point3D returns the landmark as a 3D point, treating a missing depth as 0.
func (l Landmark) Point3D() geom.Vec3 {
	z, _ := l.Depth()
	return geom.Vec3{X: l.X, Y: l.Y, Z: z}
}

// Set is a full frame of body landmarks indexed by the constants above.
type Set [Count]Landmark

// PixelSet holds every landmark of a Set projected into pixel space.
type PixelSet [Count]geom.Vec2

// NewSet copies landmarks into a Set. Entries past Count are ignored.
func NewSet(landmarks []Landmark) (*Set, error) {
	if len(landmarks) == 0 {
		return nil, ErrNoLandmarks
	}
	if len(landmarks) < Count {
		return nil, fmt.Errorf("%w: got %d of %d", ErrIncompleteLandmarks, len(landmarks), Count)
	}

	var s Set
	copy(s[:], landmarks)
	return &s, nil
}

// PadSet copies whatever landmarks are present into a Set, leaving missing slots at
// the origin.
func PadSet(landmarks []Landmark) *Set {
	var s Set
	copy(s[:], landmarks)
	return &s
}

// Pixels projects every landmark into pixel space.
func (s *Set) Pixels(width, height int) *PixelSet {
	var p PixelSet
	for i := range s {
		p[i] = s[i].Pixel(width, height)
	}
	return &p
}

// Point3D returns landmark i as a 3D point.
func (s *Set) Point3D(i int) geom.Vec3 {
	return s[i].Point3D()
}
