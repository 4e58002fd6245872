package posture

import (
	"fmt"
	"math"

	"github.com/ayusman/vision3/internal/geom"
	"github.com/ayusman/vision3/internal/pose"
)

// analyzeSide measures forward head carriage and rounded shoulders from the left side
// of the body.
func analyzeSide(r *Result, p *pose.PixelSet, height float64) {
	ear := p[pose.LeftEar]
	shoulder := p[pose.LeftShoulder]
	hip := p[pose.LeftHip]

	headForward := ratio(math.Abs(ear.X-shoulder.X), math.Abs(shoulder.Y-ear.Y))
	r.Metrics.HeadForward = metric(round(headForward, 3))

	r.annotate(Annotation{
		Type:   Line,
		Points: []geom.Vec2{{X: shoulder.X, Y: 0}, {X: shoulder.X, Y: height}},
		Color:  colorReference,
		Dashed: true,
		Label:  "肩峰垂线",
	})

	if headForward > headForwardThreshold {
		severity := Moderate
		if headForward > headForwardSevereThreshold {
			severity = Severe
		}
		r.addIssue(Issue{
			ID:             "head-forward",
			Type:           "head-forward",
			Severity:       severity,
			Title:          "头前倾",
			Description:    fmt.Sprintf("耳垂位于肩峰前方 (偏移指数: %.2f)", headForward),
			Recommendation: "建议进行颈部收缩训练（Chin Tucks），放松胸锁乳突肌和上斜方肌。",
			Points:         []geom.Vec2{ear, shoulder},
		})
		r.annotate(Annotation{
			Type:   Line,
			Points: []geom.Vec2{ear, {X: shoulder.X, Y: ear.Y}},
			Color:  colorAlert,
			Label:  fmt.Sprintf("前倾: %.2f", headForward),
		})
	}

	shoulderRounded := ratio(math.Abs(shoulder.X-hip.X), math.Abs(hip.Y-shoulder.Y))
	r.Metrics.ShoulderRounded = metric(round(shoulderRounded, 3))

	// Plumb line through whichever ankle was detected, left first.
	anchor := p[pose.LeftAnkle].X
	if anchor <= 0 {
		anchor = p[pose.RightAnkle].X
	}
	r.annotate(Annotation{
		Type:      Line,
		Points:    verticalLine(anchor, height),
		Color:     colorPlumb,
		Label:     "垂直参考线",
		LineWidth: 2,
	})

	if shoulderRounded > roundedShoulderThreshold {
		r.addIssue(Issue{
			ID:             "rounded-shoulders",
			Type:           "posture",
			Severity:       Mild,
			Title:          "圆肩/含胸",
			Description:    "肩关节相对于髋关节前移，可能伴随胸椎后凸。",
			Recommendation: "建议加强背部肌群（菱形肌、中下斜方肌），伸展胸大肌。",
			Points:         []geom.Vec2{shoulder, hip},
		})
		r.annotate(Annotation{
			Type:   Line,
			Points: []geom.Vec2{shoulder, {X: hip.X, Y: shoulder.Y}},
			Color:  colorWarning,
			Label:  fmt.Sprintf("肩髋偏移: %.2f", shoulderRounded),
		})
	}
}
