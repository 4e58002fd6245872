package posture

import (
	"fmt"
	"math"

	"github.com/ayusman/vision3/internal/geom"
	"github.com/ayusman/vision3/internal/pose"
)

var levelDash = []int{5, 5}

// tiltSeverity grades the slope of a line that should be level.
func tiltSeverity(s float64) Severity {
	if s > tiltModerateThreshold {
		return Moderate
	}
	return Mild
}

// tiltDegrees converts a slope into an angle from horizontal, rounded to one decimal.
func tiltDegrees(s float64) float64 {
	return round(geom.Degrees(math.Atan(s)), 1)
}

// higher names the side whose point sits higher in the image.
func higher(left, right geom.Vec2) string {
	if left.Y < right.Y {
		return "左"
	}
	return "右"
}

// analyzeFrontal measures left/right symmetry from the front or back. Findings are
// emitted in the order head, shoulders, hips, midline.
func analyzeFrontal(r *Result, p *pose.PixelSet, height float64) {
	leftShoulder, rightShoulder := p[pose.LeftShoulder], p[pose.RightShoulder]
	leftHip, rightHip := p[pose.LeftHip], p[pose.RightHip]
	leftEar, rightEar := p[pose.LeftEar], p[pose.RightEar]
	nose := p[pose.Nose]

	r.annotate(Annotation{
		Type:   Line,
		Points: []geom.Vec2{leftShoulder, rightShoulder},
		Color:  colorLevel,
		Label:  "肩线",
		Dashed: true,
		Dash:   levelDash,
	})
	r.annotate(Annotation{
		Type:   Line,
		Points: []geom.Vec2{leftHip, rightHip},
		Color:  colorLevel,
		Label:  "髋线",
		Dashed: true,
		Dash:   levelDash,
	})

	shoulderSlope := slope(leftShoulder, rightShoulder)
	shoulderAngle := tiltDegrees(shoulderSlope)
	r.Metrics.ShoulderAngle = metric(shoulderAngle)

	earSlope := slope(leftEar, rightEar)
	if earSlope > tiltThreshold {
		// The head tilts toward the lower ear.
		toward := "左"
		if leftEar.Y < rightEar.Y {
			toward = "右"
		}
		headTilt := tiltDegrees(earSlope)
		r.addIssue(Issue{
			ID:             "head-tilt",
			Type:           "imbalance",
			Severity:       tiltSeverity(earSlope),
			Title:          "头部侧倾",
			Description:    fmt.Sprintf("头部向%s侧倾斜约 %.1f°。", toward, headTilt),
			Recommendation: "建议进行颈部侧向拉伸，平衡两侧斜角肌力量。",
			Points:         []geom.Vec2{leftEar, rightEar},
		})
		r.annotate(Annotation{
			Type:   Line,
			Points: []geom.Vec2{leftEar, rightEar},
			Color:  colorHead,
			Label:  fmt.Sprintf("头倾斜: %.1f°", headTilt),
		})
	}

	if shoulderSlope > tiltThreshold {
		r.addIssue(Issue{
			ID:             "uneven-shoulders",
			Type:           "imbalance",
			Severity:       tiltSeverity(shoulderSlope),
			Title:          "高低肩",
			Description:    higher(leftShoulder, rightShoulder) + "肩较高。可能由背包习惯或脊柱侧弯引起。",
			Recommendation: "建议平衡双侧斜方肌力量，检查是否有脊柱侧弯风险。",
			Points:         []geom.Vec2{leftShoulder, rightShoulder},
		})
		r.annotate(Annotation{
			Type:   Line,
			Points: []geom.Vec2{leftShoulder, rightShoulder},
			Color:  colorWarning,
			Label:  fmt.Sprintf("倾斜: %.1f°", shoulderAngle),
		})
	}

	hipSlope := slope(leftHip, rightHip)
	hipAngle := tiltDegrees(hipSlope)
	r.Metrics.HipAngle = metric(hipAngle)

	if hipSlope > tiltThreshold {
		r.addIssue(Issue{
			ID:             "uneven-hips",
			Type:           "imbalance",
			Severity:       tiltSeverity(hipSlope),
			Title:          "骨盆侧倾",
			Description:    higher(leftHip, rightHip) + "侧骨盆较高。可能存在长短腿或核心肌力不平衡。",
			Recommendation: "建议加强臀中肌和核心肌群，必要时进行步态分析。",
			Points:         []geom.Vec2{leftHip, rightHip},
		})
		r.annotate(Annotation{
			Type:   Line,
			Points: []geom.Vec2{leftHip, rightHip},
			Color:  colorWarning,
			Label:  fmt.Sprintf("骨盆: %.1f°", hipAngle),
		})
	}

	midX := (p[pose.LeftAnkle].X + p[pose.RightAnkle].X) / 2
	deviation := nose.X - midX
	headDeviation := ratio(math.Abs(deviation), math.Abs(leftShoulder.X-rightShoulder.X))
	r.Metrics.HeadDeviation = metric(round(headDeviation, 3))

	r.annotate(Annotation{
		Type:      Line,
		Points:    verticalLine(midX, height),
		Color:     colorPlumb,
		LineWidth: 2,
		Label:     "身体中轴线",
	})

	if headDeviation > midlineShiftThreshold {
		toward := "右"
		if deviation < 0 {
			toward = "左"
		}
		r.addIssue(Issue{
			ID:             "midline-shift",
			Type:           "alignment",
			Severity:       Moderate,
			Title:          "身体中线偏移",
			Description:    fmt.Sprintf("身体重心向%s侧偏移。", toward),
			Recommendation: "建议进行核心稳定性训练和本体感觉训练。",
			Points:         []geom.Vec2{nose, {X: midX, Y: nose.Y}},
		})
		r.annotate(Annotation{
			Type:   Point,
			Points: []geom.Vec2{nose},
			Color:  colorAlert,
			Label:  "重心偏移",
		})
	}
}
