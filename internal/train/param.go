// Package train holds trainable parameters and the visitors that operate on
// them between backward and optimizer steps.
package train

// Param is a named trainable tensor, flattened. Grad is nil until a
// backward pass has produced a gradient for it.
type Param struct {
	Name  string
	Value []float32
	Grad  []float32
}

// Module exposes its parameters to a visitor.
type Module interface {
	VisitParams(fn func(p *Param))
}

// Params is a flat list of parameters that implements Module.
type Params []*Param

func (ps Params) VisitParams(fn func(p *Param)) {
	for _, p := range ps {
		fn(p)
	}
}

// GradientMultiplier scales every gradient it visits. It is typically run
// over a sub-module (a feature encoder, say) to slow its learning relative to
// the rest of the model.
type GradientMultiplier struct {
	Multiplier float32
}

// Visit scales p's gradient in place. Parameters without a gradient are left
// alone.
func (g GradientMultiplier) Visit(p *Param) {
	if p.Grad == nil {
		return
	}
	for i := range p.Grad {
		p.Grad[i] *= g.Multiplier
	}
}

// MultiplyGradients runs a GradientMultiplier over every parameter of m.
func MultiplyGradients(m Module, multiplier float32) {
	m.VisitParams(GradientMultiplier{Multiplier: multiplier}.Visit)
}
