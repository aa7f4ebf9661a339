package ops

import (
	"errors"
	"fmt"
	"image"
	"math"
	"sort"
)

// ErrUnknownOperation is returned when an operation name is not registered.
var ErrUnknownOperation = errors.New("unknown operation")

// ErrInvalidParameter is returned when a parameter is missing, has the wrong
// type, or falls outside its declared range. Out-of-range values are rejected
// rather than clamped so that results stay reproducible.
var ErrInvalidParameter = errors.New("invalid parameter")

// ParamKind is the declared type of an operation parameter.
type ParamKind int

const (
	// Float is a floating point parameter bounded by Min and Max.
	Float ParamKind = iota
	// Int is an integer parameter bounded by Min and Max. Fractional values
	// are rejected.
	Int
	// String is a text parameter, optionally restricted to Enum values.
	String
)

func (k ParamKind) String() string {
	switch k {
	case Float:
		return "float"
	case Int:
		return "int"
	case String:
		return "string"
	default:
		return "unknown"
	}
}

// ParamSpec declares one parameter of an operation: its type, its valid
// range, and its default. A nil Default marks the parameter as required.
// There are no hidden defaults; everything an operation accepts is declared
// here and surfaced through registry introspection.
type ParamSpec struct {
	Name    string      `json:"name"`
	Kind    ParamKind   `json:"-"`
	Type    string      `json:"type"`
	Min     float64     `json:"min,omitempty"`
	Max     float64     `json:"max,omitempty"`
	Enum    []string    `json:"enum,omitempty"`
	Default interface{} `json:"default,omitempty"`
	Usage   string      `json:"usage,omitempty"`
}

// Params carries operation arguments by parameter name. Values decoded from
// JSON arrive as float64 or string; validation normalizes them before an
// operation runs.
type Params map[string]interface{}

// Float returns a validated float parameter. Only meaningful after
// Registry.Apply has validated and defaulted the map.
func (p Params) Float(name string) float64 {
	return p[name].(float64)
}

// Int returns a validated integer parameter.
func (p Params) Int(name string) int {
	return p[name].(int)
}

// String returns a validated string parameter.
func (p Params) String(name string) string {
	return p[name].(string)
}

// ApplyFunc transforms an image. Implementations never mutate their input;
// they return a newly allocated image.
type ApplyFunc func(img image.Image, p Params) (image.Image, error)

// Operation is a named, parameterized pure transform on an image.
type Operation struct {
	Name    string      `json:"name"`
	Summary string      `json:"summary"`
	Params  []ParamSpec `json:"params,omitempty"`

	apply ApplyFunc
}

// Registry maps operation names to their implementations.
//
// The registry is immutable after construction and safe for concurrent
// lookups.
type Registry struct {
	ops map[string]*Operation
}

// NewRegistry builds a registry containing every built-in operation.
func NewRegistry() *Registry {
	r := &Registry{ops: make(map[string]*Operation)}

	registerAdjust(r)
	registerFilters(r)
	registerEffects(r)
	registerTransforms(r)
	registerAnnotate(r)

	return r
}

func (r *Registry) register(op *Operation) {
	if _, dup := r.ops[op.Name]; dup {
		panic(fmt.Sprintf("ops: duplicate registration of %q", op.Name))
	}
	r.ops[op.Name] = op
}

// Lookup returns the operation registered under name, or ErrUnknownOperation.
func (r *Registry) Lookup(name string) (*Operation, error) {
	op, ok := r.ops[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownOperation, name)
	}
	return op, nil
}

// Names returns all registered operation names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.ops))
	for name := range r.ops {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Operations returns all registered operations sorted by name, for
// introspection by the server's tool listing.
func (r *Registry) Operations() []*Operation {
	list := make([]*Operation, 0, len(r.ops))
	for _, op := range r.ops {
		list = append(list, op)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list
}

// Apply looks up name, validates params against the operation's declared
// specs, and runs the operation on img.
//
// Validation errors wrap ErrInvalidParameter and name the offending
// parameter. The input image is never modified; on any error the caller's
// image is untouched.
func (r *Registry) Apply(name string, img image.Image, params Params) (image.Image, error) {
	op, err := r.Lookup(name)
	if err != nil {
		return nil, err
	}

	validated, err := op.validate(params)
	if err != nil {
		return nil, err
	}

	out, err := op.apply(img, validated)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return out, nil
}

// Validate checks name and params without running the operation. It returns
// the same errors Apply would for an unknown operation or bad parameters.
func (r *Registry) Validate(name string, params Params) error {
	op, err := r.Lookup(name)
	if err != nil {
		return err
	}
	_, err = op.validate(params)
	return err
}

// validate checks params against the operation's specs and returns a copy
// with defaults filled in and numeric values normalized (float64 for Float,
// int for Int).
func (op *Operation) validate(params Params) (Params, error) {
	specs := make(map[string]*ParamSpec, len(op.Params))
	for i := range op.Params {
		specs[op.Params[i].Name] = &op.Params[i]
	}

	for name := range params {
		if _, ok := specs[name]; !ok {
			return nil, fmt.Errorf("%w: %s does not accept %q", ErrInvalidParameter, op.Name, name)
		}
	}

	validated := make(Params, len(op.Params))
	for i := range op.Params {
		spec := &op.Params[i]

		raw, present := params[spec.Name]
		if !present {
			if spec.Default == nil {
				return nil, fmt.Errorf("%w: %s requires %q", ErrInvalidParameter, op.Name, spec.Name)
			}
			raw = spec.Default
		}

		value, err := spec.normalize(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %s %q %v", ErrInvalidParameter, op.Name, spec.Name, err)
		}
		validated[spec.Name] = value
	}

	return validated, nil
}

// normalize coerces raw to the spec's kind and checks its bounds.
func (spec *ParamSpec) normalize(raw interface{}) (interface{}, error) {
	switch spec.Kind {
	case Float:
		f, ok := toFloat(raw)
		if !ok {
			return nil, fmt.Errorf("must be a number, got %T", raw)
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, errors.New("must be a finite number")
		}
		if f < spec.Min || f > spec.Max {
			return nil, fmt.Errorf("must be in [%v, %v], got %v", spec.Min, spec.Max, f)
		}
		return f, nil

	case Int:
		f, ok := toFloat(raw)
		if !ok {
			return nil, fmt.Errorf("must be an integer, got %T", raw)
		}
		if f != math.Trunc(f) || math.IsInf(f, 0) {
			return nil, fmt.Errorf("must be a whole number, got %v", f)
		}
		if f < spec.Min || f > spec.Max {
			return nil, fmt.Errorf("must be in [%v, %v], got %v", spec.Min, spec.Max, int(f))
		}
		return int(f), nil

	case String:
		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("must be a string, got %T", raw)
		}
		if len(spec.Enum) > 0 {
			for _, allowed := range spec.Enum {
				if s == allowed {
					return s, nil
				}
			}
			return nil, fmt.Errorf("must be one of %v, got %q", spec.Enum, s)
		}
		return s, nil

	default:
		return nil, fmt.Errorf("unsupported parameter kind %d", spec.Kind)
	}
}

// toFloat accepts the numeric types that JSON decoding and Go callers produce.
func toFloat(raw interface{}) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}

// floatSpec is a shorthand constructor for required float parameters.
func floatSpec(name string, min, max float64, usage string) ParamSpec {
	return ParamSpec{Name: name, Kind: Float, Type: "float", Min: min, Max: max, Usage: usage}
}

// floatSpecDefault declares an optional float parameter with a default.
func floatSpecDefault(name string, min, max, def float64, usage string) ParamSpec {
	return ParamSpec{Name: name, Kind: Float, Type: "float", Min: min, Max: max, Default: def, Usage: usage}
}

// intSpec is a shorthand constructor for required integer parameters.
func intSpec(name string, min, max float64, usage string) ParamSpec {
	return ParamSpec{Name: name, Kind: Int, Type: "int", Min: min, Max: max, Usage: usage}
}

// intSpecDefault declares an optional integer parameter with a default.
func intSpecDefault(name string, min, max, def float64, usage string) ParamSpec {
	return ParamSpec{Name: name, Kind: Int, Type: "int", Min: min, Max: max, Default: def, Usage: usage}
}
