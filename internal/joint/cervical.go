package joint

import (
	"math"

	"github.com/ayusman/vision3/internal/geom"
	"github.com/ayusman/vision3/internal/pose"
)

// depthScale compensates for MediaPipe's compressed z range when estimating head yaw
// from normalized landmarks.
const depthScale = 2.5

// cervical measures neck motion. World landmarks give a torso-relative 3D measurement;
// without them the angle is approximated from the image plane.
func cervical(dir Direction, f *Frame) float64 {
	if f.World != nil {
		return cervical3D(dir, f.World)
	}
	return cervical2D(dir, f)
}

// cervical3D projects the neck onto the planes of a torso basis: up runs from the hip
// midpoint to the shoulder midpoint, right from the left to the right shoulder, and
// forward is right × up.
func cervical3D(dir Direction, w *pose.Set) float64 {
	leftEar := w.Point3D(pose.LeftEar)
	rightEar := w.Point3D(pose.RightEar)
	leftShoulder := w.Point3D(pose.LeftShoulder)
	rightShoulder := w.Point3D(pose.RightShoulder)

	earMid := geom.Midpoint3(leftEar, rightEar)
	shoulderMid := geom.Midpoint3(leftShoulder, rightShoulder)
	hipMid := geom.Midpoint3(w.Point3D(pose.LeftHip), w.Point3D(pose.RightHip))

	up := geom.Vector3(hipMid, shoulderMid).Normalize()
	right := geom.Vector3(leftShoulder, rightShoulder).Normalize()
	forward := right.Cross(up)
	rightOrtho := up.Cross(forward).Normalize()

	neck := geom.Vector3(shoulderMid, earMid)

	switch dir {
	case Flexion, Extension:
		sagittal := neck.Reject(rightOrtho)
		angle := geom.Degrees(math.Atan2(sagittal.Dot(forward), sagittal.Dot(up)))
		if dir == Extension {
			return -angle
		}
		return angle

	case LeftLateralFlexion, RightLateralFlexion:
		coronal := neck.Reject(forward)
		angle := geom.Degrees(math.Atan2(coronal.Dot(rightOrtho), coronal.Dot(up)))
		if dir == LeftLateralFlexion {
			return -angle
		}
		return angle

	case LeftRotation, RightRotation:
		transverse := geom.Vector3(leftEar, rightEar).Reject(up)
		angle := geom.Degrees(math.Atan2(transverse.Dot(forward), transverse.Dot(rightOrtho)))
		if dir == RightRotation {
			return -angle
		}
		return angle
	}
	return 0
}

// cervical2D approximates neck motion from pixel landmarks.
func cervical2D(dir Direction, f *Frame) float64 {
	p := f.Pixels

	nose := p[pose.Nose]
	leftEar := p[pose.LeftEar]
	earMid := geom.Midpoint(leftEar, p[pose.RightEar])
	shoulderMid := geom.Midpoint(p[pose.LeftShoulder], p[pose.RightShoulder])
	hipMid := geom.Midpoint(p[pose.LeftHip], p[pose.RightHip])

	torso := shoulderMid.Sub(hipMid)
	head := earMid.Sub(shoulderMid)

	switch dir {
	case Flexion, Extension:
		angle := geom.SignedAngleBetween(torso, head)
		if nose.X < leftEar.X {
			// Facing left in the image: forward bending rotates the other way.
			return -angle
		}
		return angle

	case LeftLateralFlexion, RightLateralFlexion:
		return -geom.SignedAngleBetween(torso, head)

	case LeftRotation, RightRotation:
		yaw, ok := headYaw(f.Landmarks)
		if !ok {
			return 0
		}
		if dir == LeftRotation {
			return -yaw
		}
		return yaw
	}
	return 0
}

// headYaw estimates head rotation from the nose's depth offset relative to the ear
// midpoint. It reports false when any of the landmarks lacks depth.
func headYaw(s *pose.Set) (float64, bool) {
	nose := s[pose.Nose]
	leftEar := s[pose.LeftEar]
	rightEar := s[pose.RightEar]

	noseZ, ok1 := nose.Depth()
	leftZ, ok2 := leftEar.Depth()
	rightZ, ok3 := rightEar.Depth()
	if !ok1 || !ok2 || !ok3 {
		return 0, false
	}

	dx := nose.X - (leftEar.X+rightEar.X)/2
	dz := noseZ - (leftZ+rightZ)/2
	return geom.Degrees(math.Atan2(dx, -dz*depthScale)), true
}
