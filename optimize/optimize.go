// Package optimize minimizes molecular energies over nuclear
// coordinates using analytic gradients.
package optimize

import (
	"math"

	"github.com/op/go-logging"
	"gonum.org/v1/gonum/floats"
	gopt "gonum.org/v1/gonum/optimize"
)

var log = logging.MustGetLogger("optimize")

// Problem is an objective over nuclear coordinates: one evaluation
// returns the energy and its gradient at x.
type Problem interface {
	Evaluate(x []float64) (energy float64, grad []float64, err error)
}

// Method selects the minimization algorithm.
type Method int

const (
	// MethodLBFGS is limited-memory BFGS, the default.
	MethodLBFGS Method = iota
	// MethodGradientDescent is plain gradient descent with a
	// backtracking line search; slower but useful far from a
	// minimum.
	MethodGradientDescent
)

// Settings holds the termination criteria of a minimization.
type Settings struct {
	Method            Method
	MaxIterations     int
	GradientTolerance float64
}

// NewSettings returns Settings with the default criteria.
func NewSettings() Settings {
	return Settings{
		Method:            MethodLBFGS,
		MaxIterations:     100,
		GradientTolerance: 1e-4,
	}
}

// Result is the outcome of a minimization.
type Result struct {
	X          []float64
	Energy     float64
	Gradient   []float64
	Iterations int
	Converged  bool
}

// cache holds the last evaluation so that the separate Func and Grad
// callbacks at the same point cost one Problem evaluation.
type cache struct {
	p    Problem
	x    []float64
	e    float64
	grad []float64
	err  error
}

func (c *cache) at(x []float64) {
	if c.x != nil && floats.Equal(c.x, x) {
		return
	}
	c.x = append(c.x[:0], x...)
	c.e, c.grad, c.err = c.p.Evaluate(x)
	if c.err != nil {
		log.Warningf("evaluation failed at %v: %v", x, c.err)
		c.e = math.Inf(1)
		c.grad = make([]float64, len(x))
	}
}

// Minimize runs the selected method from x0 until the gradient norm
// falls below the tolerance or the iteration cap is reached.
func Minimize(p Problem, x0 []float64, s Settings) (*Result, error) {
	c := &cache{p: p}
	gp := gopt.Problem{
		Func: func(x []float64) float64 {
			c.at(x)
			return c.e
		},
		Grad: func(grad, x []float64) {
			c.at(x)
			copy(grad, c.grad)
		},
	}

	var method gopt.Method
	switch s.Method {
	case MethodGradientDescent:
		method = &gopt.GradientDescent{}
	default:
		method = &gopt.LBFGS{}
	}

	settings := gopt.Settings{
		MajorIterations:   s.MaxIterations,
		GradientThreshold: s.GradientTolerance,
	}

	r, err := gopt.Minimize(gp, x0, &settings, method)
	if c.err != nil {
		return nil, c.err
	}
	if err != nil {
		if r == nil {
			return nil, err
		}
		log.Warningf("minimization stopped: %v", err)
	}

	res := &Result{
		X:          r.X,
		Energy:     r.F,
		Gradient:   append([]float64{}, r.Gradient...),
		Iterations: r.Stats.MajorIterations,
		Converged:  r.Status == gopt.GradientThreshold,
	}
	if !res.Converged {
		log.Warningf("minimization did not reach the gradient tolerance: status %v", r.Status)
		return res, nil
	}
	log.Noticef("minimum found after %d iterations, E = %.10f", res.Iterations, res.Energy)
	return res, nil
}
