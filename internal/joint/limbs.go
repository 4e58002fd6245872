package joint

import (
	"math"

	"github.com/ayusman/vision3/internal/geom"
	"github.com/ayusman/vision3/internal/pose"
)

// vertical points up in image coordinates.
var vertical = geom.Vec2{X: 0, Y: -1}

// straightened converts the signed angle between two limb segments meeting at a joint
// into a bend angle where 0 means the segments form a straight line.
func straightened(angle float64) float64 {
	if angle > 0 {
		return 180 - angle
	}
	return 180 + angle
}

// aligned converts the signed angle between two segments leaving the same joint into a
// deviation where 0 means the distal segment continues the proximal one.
func aligned(angle float64) float64 {
	if angle > 0 {
		return angle - 180
	}
	return angle + 180
}

// shoulder measures the upper arm against the torso line.
func shoulder(dir Direction, side Side, p *pose.PixelSet) float64 {
	sh := p[side.pick(pose.LeftShoulder, pose.RightShoulder)]
	elbow := p[side.pick(pose.LeftElbow, pose.RightElbow)]
	hip := p[side.pick(pose.LeftHip, pose.RightHip)]
	wrist := p[side.pick(pose.LeftWrist, pose.RightWrist)]

	torso := hip.Sub(sh)
	arm := elbow.Sub(sh)

	switch dir {
	case Flexion, Extension:
		angle := geom.SignedAngleBetween(torso, arm)
		if dir == Flexion {
			return math.Max(0, angle)
		}
		return math.Max(0, -angle)

	case Abduction, Adduction:
		angle := geom.SignedAngleBetween(torso, arm)
		// Moving away from the body rotates the left arm one way in the image and the
		// right arm the other.
		if side == Right {
			angle = -angle
		}
		if dir == Abduction {
			return math.Max(0, angle)
		}
		return math.Max(0, -angle)

	case InternalRotation, ExternalRotation:
		return math.Abs(geom.Angle3(sh, elbow, wrist) - 90)
	}
	return 0
}

// thoracolumbar measures trunk inclination from vertical.
func thoracolumbar(dir Direction, p *pose.PixelSet) float64 {
	shoulderMid := geom.Midpoint(p[pose.LeftShoulder], p[pose.RightShoulder])
	hipMid := geom.Midpoint(p[pose.LeftHip], p[pose.RightHip])
	torso := shoulderMid.Sub(hipMid)

	switch dir {
	case Flexion, Extension:
		return geom.AngleBetween(vertical, torso)

	case LeftLateralFlexion, RightLateralFlexion:
		angle := geom.SignedAngleBetween(vertical, torso)
		if dir == RightLateralFlexion {
			return math.Max(0, angle)
		}
		return math.Max(0, -angle)
	}
	return 0
}

// elbow measures the bend between upper arm and forearm.
func elbow(side Side, p *pose.PixelSet) float64 {
	sh := p[side.pick(pose.LeftShoulder, pose.RightShoulder)]
	el := p[side.pick(pose.LeftElbow, pose.RightElbow)]
	wr := p[side.pick(pose.LeftWrist, pose.RightWrist)]

	angle := geom.SignedAngleBetween(sh.Sub(el), wr.Sub(el))
	return math.Abs(straightened(angle))
}

// knee measures the bend between thigh and calf.
func knee(side Side, p *pose.PixelSet) float64 {
	hp := p[side.pick(pose.LeftHip, pose.RightHip)]
	kn := p[side.pick(pose.LeftKnee, pose.RightKnee)]
	an := p[side.pick(pose.LeftAnkle, pose.RightAnkle)]

	angle := geom.SignedAngleBetween(hp.Sub(kn), an.Sub(kn))
	return math.Abs(straightened(angle))
}

// hip measures the thigh against the torso line.
func hip(dir Direction, side Side, p *pose.PixelSet) float64 {
	sh := p[side.pick(pose.LeftShoulder, pose.RightShoulder)]
	hp := p[side.pick(pose.LeftHip, pose.RightHip)]
	kn := p[side.pick(pose.LeftKnee, pose.RightKnee)]

	bend := straightened(geom.SignedAngleBetween(sh.Sub(hp), kn.Sub(hp)))

	switch dir {
	case Flexion:
		if bend > 0 {
			return bend
		}
	case Extension:
		if bend < 0 {
			return -bend
		}
	}
	return 0
}

// wrist measures the hand against the forearm. Flexion and extension use the index
// finger, ulnar deviation the pinky and radial deviation the thumb.
func wrist(dir Direction, side Side, p *pose.PixelSet) float64 {
	el := p[side.pick(pose.LeftElbow, pose.RightElbow)]
	wr := p[side.pick(pose.LeftWrist, pose.RightWrist)]
	forearm := el.Sub(wr)

	var finger geom.Vec2
	switch dir {
	case Flexion, Extension:
		finger = p[side.pick(pose.LeftIndex, pose.RightIndex)]
	case UlnarDeviation:
		finger = p[side.pick(pose.LeftPinky, pose.RightPinky)]
	case RadialDeviation:
		finger = p[side.pick(pose.LeftThumb, pose.RightThumb)]
	default:
		return 0
	}

	return math.Abs(aligned(geom.SignedAngleBetween(forearm, finger.Sub(wr))))
}

// ankle measures the foot against the calf, with 0 at the neutral right angle.
// TODO: dorsiflexion and plantarflexion both report the unsigned deviation; split them
// once the sign convention for facing direction is settled.
func ankle(side Side, p *pose.PixelSet) float64 {
	kn := p[side.pick(pose.LeftKnee, pose.RightKnee)]
	an := p[side.pick(pose.LeftAnkle, pose.RightAnkle)]
	ft := p[side.pick(pose.LeftFootIndex, pose.RightFootIndex)]

	angle := geom.SignedAngleBetween(kn.Sub(an), ft.Sub(an))
	if angle > 0 {
		return math.Abs(90 - angle)
	}
	return math.Abs(-90 - angle)
}
