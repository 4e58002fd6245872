package pose

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestNewSet(t *testing.T) {
	t.Run("empty input returns ErrNoLandmarks", func(t *testing.T) {
		s, err := NewSet(nil)
		if !errors.Is(err, ErrNoLandmarks) {
			t.Errorf("expected ErrNoLandmarks, got %v", err)
		}
		if s != nil {
			t.Error("expected nil set")
		}
	})

	t.Run("short input returns ErrIncompleteLandmarks", func(t *testing.T) {
		_, err := NewSet(Uniform(0.5, 0.5)[:20])
		if !errors.Is(err, ErrIncompleteLandmarks) {
			t.Errorf("expected ErrIncompleteLandmarks, got %v", err)
		}
	})

	t.Run("full input is copied by index", func(t *testing.T) {
		landmarks := Uniform(0.5, 0.5)
		landmarks[LeftKnee] = Landmark{X: 0.1, Y: 0.9}

		s, err := NewSet(landmarks)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if s[LeftKnee].X != 0.1 || s[LeftKnee].Y != 0.9 {
			t.Errorf("expected left knee (0.1, 0.9), got (%f, %f)", s[LeftKnee].X, s[LeftKnee].Y)
		}

		// The set must not alias the caller's slice.
		landmarks[LeftKnee].X = 0.7
		if s[LeftKnee].X != 0.1 {
			t.Error("set should not alias the input slice")
		}
	})

	t.Run("extra entries are ignored", func(t *testing.T) {
		landmarks := append(Uniform(0.5, 0.5), Landmark{X: 9, Y: 9})
		if _, err := NewSet(landmarks); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

func TestPadSet(t *testing.T) {
	s := PadSet([]Landmark{{X: 0.3, Y: 0.4}})

	if s[Nose].X != 0.3 {
		t.Errorf("expected nose X 0.3, got %f", s[Nose].X)
	}
	if s[RightFootIndex] != (Landmark{}) {
		t.Errorf("expected missing slots to be zero, got %+v", s[RightFootIndex])
	}
}

func TestSet_Pixels(t *testing.T) {
	s := PadSet([]Landmark{{X: 0.25, Y: 0.5}})
	p := s.Pixels(640, 480)

	if p[Nose].X != 160 || p[Nose].Y != 240 {
		t.Errorf("expected (160, 240), got (%f, %f)", p[Nose].X, p[Nose].Y)
	}
}

func TestLandmark_JSON(t *testing.T) {
	t.Run("depth is optional", func(t *testing.T) {
		var l Landmark
		if err := json.Unmarshal([]byte(`{"x":0.1,"y":0.2}`), &l); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if _, ok := l.Depth(); ok {
			t.Error("expected no depth")
		}
		if l.Point3D().Z != 0 {
			t.Error("missing depth should read as 0")
		}
	})

	t.Run("depth is read when present", func(t *testing.T) {
		var l Landmark
		if err := json.Unmarshal([]byte(`{"x":0.1,"y":0.2,"z":-0.4,"visibility":0.9}`), &l); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		z, ok := l.Depth()
		if !ok || z != -0.4 {
			t.Errorf("expected depth -0.4, got %f (ok=%v)", z, ok)
		}
	})
}

func TestNames(t *testing.T) {
	if Names[Nose] != "NOSE" || Names[LeftShoulder] != "LEFT_SHOULDER" || Names[RightFootIndex] != "RIGHT_FOOT_INDEX" {
		t.Error("landmark names out of order")
	}
	for i, name := range Names {
		if name == "" {
			t.Errorf("landmark %d has no name", i)
		}
	}
}

func TestFixtures(t *testing.T) {
	for name, landmarks := range map[string][]Landmark{
		"standing": NeutralStandingLandmarks(),
		"world":    NeutralStandingWorldLandmarks(),
	} {
		if len(landmarks) != Count {
			t.Errorf("%s: expected %d landmarks, got %d", name, Count, len(landmarks))
		}
		for i, l := range landmarks {
			if _, ok := l.Depth(); !ok {
				t.Errorf("%s: landmark %d has no depth", name, i)
			}
		}
	}
}
