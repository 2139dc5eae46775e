package material

import (
	"astmd/domain/core"
)

// Standard designates the ASTM test method a Material was computed under.
type Standard string

const (
	StandardD790  Standard = "D790"
	StandardD3039 Standard = "D3039"
	StandardD5868 Standard = "D5868"
)

// Geometry holds specimen dimensions in mm (area in mm^2). Each standard
// reads the fields it defines and leaves the rest zero.
type Geometry struct {
	Width       float64 `json:"width,omitempty"`
	Depth       float64 `json:"depth,omitempty"`
	Thickness   float64 `json:"thickness,omitempty"`
	Length      float64 `json:"length,omitempty"`
	Span        float64 `json:"span,omitempty"`
	Area        float64 `json:"area,omitempty"`
	GaugeLength float64 `json:"gauge_length,omitempty"`
}

// Sample is one physical specimen: its source file, geometry, derived
// curve and scalar results. A Sample lives for exactly one invocation.
type Sample struct {
	File     string   `json:"file"`
	Geometry Geometry `json:"geometry"`

	// Curve is stress against strain (D790, D3039) or stress against
	// time (D5868), trimmed at the peak where the standard calls for it.
	Curve Series `json:"curve"`

	Ultimate   float64 `json:"ultimate_mpa"`
	XAtPeak    float64 `json:"x_at_peak"`
	Modulus    float64 `json:"modulus_mpa,omitempty"`
	HasModulus bool    `json:"has_modulus"`

	// Err marks a sample whose computation failed; such a sample carries
	// no results and is excluded from every aggregate.
	Err error `json:"-"`

	// ModulusErr marks a sample whose strength is valid but whose modulus
	// sub-range was not reached; excluded from the modulus aggregate only.
	ModulusErr error `json:"-"`
}

// OK reports whether the sample's computation succeeded.
func (s *Sample) OK() bool { return s.Err == nil }

// Aggregate is a cross-sample summary of one scalar result. N records how
// many samples contributed.
type Aggregate struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	N      int     `json:"n"`
}

// Material aggregates the sample set of one standard invocation.
// Invariant: Strength and Modulus cover only samples that succeeded, and
// every sample was tested under Standard with consistent units.
type Material struct {
	Name     string     `json:"name"`
	Standard Standard   `json:"standard"`
	RunID    core.RunID `json:"run_id"`

	Samples []*Sample `json:"samples"`

	Strength Aggregate  `json:"strength"`
	Modulus  *Aggregate `json:"modulus,omitempty"` // nil where the standard defines none

	// AvgCurve is the pointwise average of the successful samples' curves,
	// used for the average overlay on charts.
	AvgCurve Series `json:"avg_curve"`
}

// New creates an empty Material for one invocation of a standard.
func New(std Standard, name string) *Material {
	return &Material{
		Name:     name,
		Standard: std,
		RunID:    core.NewRunID(),
	}
}

// Add appends a sample, failed or not.
func (m *Material) Add(s *Sample) {
	m.Samples = append(m.Samples, s)
}

// Succeeded returns the samples whose computation succeeded.
func (m *Material) Succeeded() []*Sample {
	out := make([]*Sample, 0, len(m.Samples))
	for _, s := range m.Samples {
		if s.OK() {
			out = append(out, s)
		}
	}
	return out
}

// Failed returns the samples excluded from aggregates.
func (m *Material) Failed() []*Sample {
	out := make([]*Sample, 0)
	for _, s := range m.Samples {
		if !s.OK() {
			out = append(out, s)
		}
	}
	return out
}

// Strengths collects ultimate stresses of successful samples.
func (m *Material) Strengths() []float64 {
	out := make([]float64, 0, len(m.Samples))
	for _, s := range m.Succeeded() {
		out = append(out, s.Ultimate)
	}
	return out
}

// Moduli collects moduli of successful samples that have one.
func (m *Material) Moduli() []float64 {
	out := make([]float64, 0, len(m.Samples))
	for _, s := range m.Succeeded() {
		if s.HasModulus {
			out = append(out, s.Modulus)
		}
	}
	return out
}

// Curves collects the curves of successful samples.
func (m *Material) Curves() []Series {
	out := make([]Series, 0, len(m.Samples))
	for _, s := range m.Succeeded() {
		out = append(out, s.Curve)
	}
	return out
}
