package joint

// Range is a clinical normal range of motion in degrees.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// normalRanges are the reference ranges shown next to live measurements.
var normalRanges = map[Type]map[Direction]Range{
	Cervical: {
		Flexion:             {Min: 80, Max: 90},
		Extension:           {Min: 50, Max: 70},
		LeftRotation:        {Min: 70, Max: 90},
		RightRotation:       {Min: 70, Max: 90},
		LeftLateralFlexion:  {Min: 20, Max: 45},
		RightLateralFlexion: {Min: 20, Max: 45},
	},
	Shoulder: {
		Flexion:          {Min: 0, Max: 180},
		Extension:        {Min: 0, Max: 60},
		Abduction:        {Min: 0, Max: 180},
		Adduction:        {Min: 0, Max: 50},
		InternalRotation: {Min: 0, Max: 70},
		ExternalRotation: {Min: 0, Max: 90},
	},
	Elbow: {
		Flexion:   {Min: 0, Max: 150},
		Extension: {Min: 0, Max: 0},
	},
	Wrist: {
		Flexion:         {Min: 0, Max: 80},
		Extension:       {Min: 0, Max: 70},
		UlnarDeviation:  {Min: 0, Max: 30},
		RadialDeviation: {Min: 0, Max: 20},
	},
	Thoracolumbar: {
		Flexion:             {Min: 0, Max: 80},
		Extension:           {Min: 0, Max: 25},
		LeftLateralFlexion:  {Min: 0, Max: 35},
		RightLateralFlexion: {Min: 0, Max: 35},
		LeftRotation:        {Min: 0, Max: 45},
		RightRotation:       {Min: 0, Max: 45},
	},
	Hip: {
		Flexion:          {Min: 0, Max: 120},
		Extension:        {Min: 0, Max: 30},
		Abduction:        {Min: 0, Max: 45},
		Adduction:        {Min: 0, Max: 30},
		InternalRotation: {Min: 0, Max: 45},
		ExternalRotation: {Min: 0, Max: 45},
	},
	Knee: {
		Flexion:   {Min: 0, Max: 135},
		Extension: {Min: 0, Max: 0},
	},
	Ankle: {
		Dorsiflexion:   {Min: 0, Max: 20},
		Plantarflexion: {Min: 0, Max: 50},
	},
}

// NormalRange returns the clinical normal range for a joint direction.
func NormalRange(t Type, d Direction) (Range, bool) {
	r, ok := normalRanges[t][d]
	return r, ok
}

// Motion describes one measurable direction of a joint.
type Motion struct {
	Direction Direction `json:"direction"`
	Normal    *Range    `json:"normal,omitempty"`
}

// Entry describes a measurable joint.
type Entry struct {
	Joint     Type     `json:"jointType"`
	Bilateral bool     `json:"bilateral"`
	Motions   []Motion `json:"motions"`
}

// Catalog lists every supported joint with its measurable directions and normal ranges.
func Catalog() []Entry {
	entries := make([]Entry, 0, len(Types))
	for _, t := range Types {
		e := Entry{Joint: t, Bilateral: t.Bilateral()}
		for _, d := range Directions(t) {
			m := Motion{Direction: d}
			if r, ok := NormalRange(t, d); ok {
				m.Normal = &r
			}
			e.Motions = append(e.Motions, m)
		}
		entries = append(entries, e)
	}
	return entries
}
