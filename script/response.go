// Package script runs collision responses written in tengo. A script
// defines respond(event) and returns the next velocity as [x, y], as
// {x: .., y: ..}, or as the name of a built-in response.
package script

import (
	"errors"
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/sweep/collision"
	"go.uber.org/zap"
)

const dispatchScript = `
__result = respond(__event)
`

var errBadResult = errors.New("script: respond must return [x, y], {x, y} or a response name")

// Policy is a compiled response script.
type Policy struct {
	path     string
	compiled *tengo.Compiled
	logger   *zap.Logger
	fallback collision.Response
}

type Option func(*Policy)

func WithLogger(logger *zap.Logger) Option {
	return func(p *Policy) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithFallback sets the response used when the script fails. The default
// is collision.Slide.
func WithFallback(r collision.Response) Option {
	return func(p *Policy) {
		if r != nil {
			p.fallback = r
		}
	}
}

// Load reads and compiles the script at path.
func Load(path string, opts ...Option) (*Policy, error) {
	src, err := LoadSource(path)
	if err != nil {
		return nil, fmt.Errorf("script: load %s: %w", path, err)
	}
	p, err := Compile(src, opts...)
	if err != nil {
		return nil, fmt.Errorf("script: load %s: %w", path, err)
	}
	p.path = path
	return p, nil
}

// Compile builds a policy from source.
func Compile(src []byte, opts ...Option) (*Policy, error) {
	p := &Policy{
		logger:   zap.NewNop(),
		fallback: collision.Slide,
	}
	for _, opt := range opts {
		opt(p)
	}
	compiled, err := compile(src)
	if err != nil {
		return nil, err
	}
	p.compiled = compiled
	return p, nil
}

func compile(src []byte) (*tengo.Compiled, error) {
	full := string(src) + "\n" + dispatchScript
	s := tengo.NewScript([]byte(full))
	_ = s.Add("__event", map[string]any{})
	_ = s.Add("__result", nil)
	s.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := s.Compile()
	if err != nil {
		return nil, err
	}
	return compiled, nil
}

// Path is the file the policy was loaded from, if any.
func (p *Policy) Path() string {
	return p.path
}

// Reload recompiles the policy from its path. On failure the previous
// script stays active.
func (p *Policy) Reload() error {
	if p.path == "" {
		return nil
	}
	src, err := LoadSource(p.path)
	if err != nil {
		return fmt.Errorf("script: reload %s: %w", p.path, err)
	}
	compiled, err := compile(src)
	if err != nil {
		return fmt.Errorf("script: reload %s: %w", p.path, err)
	}
	p.compiled = compiled
	return nil
}

// Response adapts the policy for collision.Resolver.
func (p *Policy) Response() collision.Response {
	return p.Respond
}

// Respond runs the script for one contact. Script errors are logged and the
// fallback response is used instead.
func (p *Policy) Respond(e collision.CollisionEvent) cp.Vector {
	v, err := p.run(e)
	if err != nil {
		p.logger.Warn("script response failed",
			zap.String("path", p.path),
			zap.Error(err),
		)
		return p.fallback(e)
	}
	return v
}

func (p *Policy) run(e collision.CollisionEvent) (cp.Vector, error) {
	if err := p.compiled.Set("__event", eventObject(e)); err != nil {
		return cp.Vector{}, err
	}
	if err := p.compiled.Run(); err != nil {
		return cp.Vector{}, err
	}
	return p.result(e, p.compiled.Get("__result").Object())
}

func (p *Policy) result(e collision.CollisionEvent, obj tengo.Object) (cp.Vector, error) {
	switch v := obj.(type) {
	case *tengo.String:
		r, ok := collision.ResponseByName(strings.TrimSpace(v.Value))
		if !ok {
			return cp.Vector{}, fmt.Errorf("script: unknown response %q", v.Value)
		}
		return r(e), nil
	case *tengo.Array:
		if len(v.Value) != 2 {
			return cp.Vector{}, errBadResult
		}
		return pair(v.Value[0], v.Value[1])
	case *tengo.ImmutableArray:
		if len(v.Value) != 2 {
			return cp.Vector{}, errBadResult
		}
		return pair(v.Value[0], v.Value[1])
	case *tengo.Map:
		return pair(v.Value["x"], v.Value["y"])
	case *tengo.ImmutableMap:
		return pair(v.Value["x"], v.Value["y"])
	}
	return cp.Vector{}, errBadResult
}

func pair(x, y tengo.Object) (cp.Vector, error) {
	fx, ok := number(x)
	if !ok {
		return cp.Vector{}, errBadResult
	}
	fy, ok := number(y)
	if !ok {
		return cp.Vector{}, errBadResult
	}
	return cp.Vector{X: fx, Y: fy}, nil
}

func number(obj tengo.Object) (float64, bool) {
	switch v := obj.(type) {
	case *tengo.Float:
		return v.Value, true
	case *tengo.Int:
		return float64(v.Value), true
	}
	return 0, false
}

func eventObject(e collision.CollisionEvent) *tengo.ImmutableMap {
	values := map[string]tengo.Object{
		"velocity":    vectorObject(e.Velocity),
		"remaining":   vectorObject(e.Remaining()),
		"normal":      vectorObject(e.Normal),
		"position":    vectorObject(e.Position),
		"time":        &tengo.Float{Value: e.Time},
		"slide":       vectorObject(collision.Slide(e)),
		"bounce":      vectorObject(collision.Bounce(e)),
		"ignore":      vectorObject(collision.Ignore(e)),
		"other_tag":   &tengo.String{Value: ""},
		"other_layer": &tengo.Int{Value: 0},
	}
	if e.Other != nil {
		values["other_tag"] = &tengo.String{Value: e.Other.Tag}
		values["other_layer"] = &tengo.Int{Value: int64(e.Other.Layer)}
	}
	return &tengo.ImmutableMap{Value: values}
}

func vectorObject(v cp.Vector) *tengo.ImmutableArray {
	return &tengo.ImmutableArray{Value: []tengo.Object{
		&tengo.Float{Value: v.X},
		&tengo.Float{Value: v.Y},
	}}
}
