package joint

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Measure computes every measurement against the same frame. Measurements run
// concurrently; each result carries its measurement's ID and sits at the measurement's
// index. A measurement that cannot be computed yields a nil angle and never affects the
// others.
func (c *Calculator) Measure(ctx context.Context, in Input, measurements []Measurement) []Result {
	results := make([]Result, len(measurements))
	for i, m := range measurements {
		results[i] = Result{ID: m.ID}
	}

	f, err := NewFrame(in)
	if err != nil {
		c.logger.Warn("could not prepare frame for joint analysis",
			zap.Int("measurements", len(measurements)),
			zap.Error(err))
		return results
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)

	for i, m := range measurements {
		i, m := i, m
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}

			angle, err := c.measure(f, m)
			if err != nil {
				c.logger.Warn("could not compute joint angle",
					zap.String("id", m.ID),
					zap.String("reason", failureReason(err)),
					zap.String("joint", m.JointType),
					zap.String("direction", m.Direction),
					zap.String("side", m.Side),
					zap.Error(err))
				return nil
			}

			results[i].Angle = &angle
			return nil
		})
	}

	// Workers never return errors; failures are recorded as nil angles.
	_ = g.Wait()
	return results
}

func (c *Calculator) measure(f *Frame, m Measurement) (float64, error) {
	req, err := m.Request()
	if err != nil {
		return 0, err
	}
	return c.Angle(f, req)
}

// failureReason tells a request the calculator cannot serve apart from geometry that
// could not be measured.
func failureReason(err error) string {
	if IsUnsupported(err) {
		return "unsupported"
	}
	return "degenerate"
}
