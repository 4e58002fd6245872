package pose

// Float returns a pointer to v, for building landmarks with depth or visibility.
func Float(v float64) *float64 {
	return &v
}

// Uniform returns Count landmarks all placed at (x, y).
func Uniform(x, y float64) []Landmark {
	landmarks := make([]Landmark, Count)
	for i := range landmarks {
		landmarks[i] = Landmark{X: x, Y: y}
	}
	return landmarks
}

// NeutralStandingLandmarks returns a preset frame of a person standing upright, facing the
// camera, arms relaxed at the sides. Depth is supplied for every landmark.
func NeutralStandingLandmarks() []Landmark {
	points := [Count][3]float64{
		Nose:           {0.50, 0.15, -0.30},
		LeftEyeInner:   {0.51, 0.13, -0.28},
		LeftEye:        {0.52, 0.13, -0.28},
		LeftEyeOuter:   {0.53, 0.13, -0.28},
		RightEyeInner:  {0.49, 0.13, -0.28},
		RightEye:       {0.48, 0.13, -0.28},
		RightEyeOuter:  {0.47, 0.13, -0.28},
		LeftEar:        {0.55, 0.14, -0.15},
		RightEar:       {0.45, 0.14, -0.15},
		MouthLeft:      {0.52, 0.17, -0.27},
		MouthRight:     {0.48, 0.17, -0.27},
		LeftShoulder:   {0.60, 0.25, -0.05},
		RightShoulder:  {0.40, 0.25, -0.05},
		LeftElbow:      {0.62, 0.40, -0.03},
		RightElbow:     {0.38, 0.40, -0.03},
		LeftWrist:      {0.63, 0.53, -0.05},
		RightWrist:     {0.37, 0.53, -0.05},
		LeftPinky:      {0.64, 0.56, -0.06},
		RightPinky:     {0.36, 0.56, -0.06},
		LeftIndex:      {0.63, 0.57, -0.07},
		RightIndex:     {0.37, 0.57, -0.07},
		LeftThumb:      {0.62, 0.55, -0.07},
		RightThumb:     {0.38, 0.55, -0.07},
		LeftHip:        {0.56, 0.55, 0.00},
		RightHip:       {0.44, 0.55, 0.00},
		LeftKnee:       {0.56, 0.73, 0.01},
		RightKnee:      {0.44, 0.73, 0.01},
		LeftAnkle:      {0.56, 0.90, 0.05},
		RightAnkle:     {0.44, 0.90, 0.05},
		LeftHeel:       {0.56, 0.92, 0.07},
		RightHeel:      {0.44, 0.92, 0.07},
		LeftFootIndex:  {0.57, 0.94, -0.05},
		RightFootIndex: {0.43, 0.94, -0.05},
	}

	landmarks := make([]Landmark, Count)
	for i, p := range points {
		landmarks[i] = Landmark{X: p[0], Y: p[1], Z: Float(p[2]), Visibility: Float(0.99)}
	}
	return landmarks
}

// NeutralStandingWorldLandmarks returns a preset frame of world landmarks in meters, hip
// centered, for the same upright pose. MediaPipe world coordinates have y pointing down
// and z pointing away from the camera.
func NeutralStandingWorldLandmarks() []Landmark {
	points := [Count][3]float64{
		Nose:           {0.00, -0.62, -0.10},
		LeftEyeInner:   {0.02, -0.66, -0.08},
		LeftEye:        {0.03, -0.66, -0.08},
		LeftEyeOuter:   {0.04, -0.66, -0.08},
		RightEyeInner:  {-0.02, -0.66, -0.08},
		RightEye:       {-0.03, -0.66, -0.08},
		RightEyeOuter:  {-0.04, -0.66, -0.08},
		LeftEar:        {0.08, -0.62, 0.00},
		RightEar:       {-0.08, -0.62, 0.00},
		MouthLeft:      {0.02, -0.58, -0.09},
		MouthRight:     {-0.02, -0.58, -0.09},
		LeftShoulder:   {0.18, -0.45, 0.00},
		RightShoulder:  {-0.18, -0.45, 0.00},
		LeftElbow:      {0.21, -0.18, 0.02},
		RightElbow:     {-0.21, -0.18, 0.02},
		LeftWrist:      {0.22, 0.05, 0.00},
		RightWrist:     {-0.22, 0.05, 0.00},
		LeftPinky:      {0.23, 0.10, -0.01},
		RightPinky:     {-0.23, 0.10, -0.01},
		LeftIndex:      {0.22, 0.11, -0.02},
		RightIndex:     {-0.22, 0.11, -0.02},
		LeftThumb:      {0.21, 0.09, -0.03},
		RightThumb:     {-0.21, 0.09, -0.03},
		LeftHip:        {0.10, 0.00, 0.00},
		RightHip:       {-0.10, 0.00, 0.00},
		LeftKnee:       {0.10, 0.42, 0.01},
		RightKnee:      {-0.10, 0.42, 0.01},
		LeftAnkle:      {0.10, 0.82, 0.05},
		RightAnkle:     {-0.10, 0.82, 0.05},
		LeftHeel:       {0.10, 0.86, 0.08},
		RightHeel:      {-0.10, 0.86, 0.08},
		LeftFootIndex:  {0.11, 0.88, -0.08},
		RightFootIndex: {-0.11, 0.88, -0.08},
	}

	landmarks := make([]Landmark, Count)
	for i, p := range points {
		landmarks[i] = Landmark{X: p[0], Y: p[1], Z: Float(p[2]), Visibility: Float(0.99)}
	}
	return landmarks
}
