package juice

import (
	"errors"
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

var ErrNoHandler = errors.New("juice: script does not define on_event")

const dispatchScript = `
if !is_undefined(__event) {
	on_event(__engine, __event)
}
`

// ScriptReactor runs a tengo script's on_event(engine, event) for every
// event. The script sees:
//
//	engine.emit(kind, scale)  request an effect at the event position
//	engine.fall_ratio()       landing impact in [0,1]
//	engine.grounded()         whether the body is running
//	engine.facing()           1 or -1
//	event                     the event kind string
type ScriptReactor struct {
	name     string
	compiled *tengo.Compiled
}

// CompileScript compiles src. name is only used in errors.
func CompileScript(name string, src []byte) (*ScriptReactor, error) {
	// the dispatch snippet does not compile without a handler, so look for
	// one in the bare script first
	bare := tengo.NewScript(src)
	bare.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
	defined, err := bare.Compile()
	if err != nil {
		return nil, fmt.Errorf("juice: compile %s: %w", name, err)
	}
	if err := defined.Run(); err != nil {
		return nil, fmt.Errorf("juice: run %s: %w", name, err)
	}
	if !defined.IsDefined("on_event") {
		return nil, fmt.Errorf("%s: %w", name, ErrNoHandler)
	}

	script := tengo.NewScript(append(append([]byte(nil), src...), dispatchScript...))
	_ = script.Add("__engine", map[string]any{})
	_ = script.Add("__event", nil)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("juice: compile %s: %w", name, err)
	}
	return &ScriptReactor{name: name, compiled: compiled}, nil
}

func (r *ScriptReactor) Name() string { return r.name }

func (r *ScriptReactor) React(ev Event, s *State) ([]Effect, error) {
	var effects []Effect
	engine := &tengo.ImmutableMap{Value: map[string]tengo.Object{
		"emit": &tengo.UserFunction{Name: "emit", Value: func(args ...tengo.Object) (tengo.Object, error) {
			if len(args) < 1 {
				return tengo.FalseValue, nil
			}
			kind, _ := tengo.ToString(args[0])
			kind = strings.TrimSpace(kind)
			if kind == "" {
				return tengo.FalseValue, nil
			}
			scale := 1.0
			if len(args) > 1 {
				if v, ok := tengo.ToFloat64(args[1]); ok {
					scale = v
				}
			}
			effects = append(effects, Effect{Kind: kind, Pos: ev.Pos, Scale: scale})
			return tengo.TrueValue, nil
		}},
		"fall_ratio": &tengo.UserFunction{Name: "fall_ratio", Value: func(...tengo.Object) (tengo.Object, error) {
			return &tengo.Float{Value: ev.FallRatio}, nil
		}},
		"grounded": &tengo.UserFunction{Name: "grounded", Value: func(...tengo.Object) (tengo.Object, error) {
			if s != nil && s.Running {
				return tengo.TrueValue, nil
			}
			return tengo.FalseValue, nil
		}},
		"facing": &tengo.UserFunction{Name: "facing", Value: func(...tengo.Object) (tengo.Object, error) {
			facing := 1.0
			if s != nil {
				facing = s.Facing
			}
			return &tengo.Float{Value: facing}, nil
		}},
	}}

	if err := r.compiled.Set("__engine", engine); err != nil {
		return nil, err
	}
	if err := r.compiled.Set("__event", string(ev.Kind)); err != nil {
		return nil, err
	}
	if err := r.compiled.Run(); err != nil {
		return nil, fmt.Errorf("juice: %s on_event(%s): %w", r.name, ev.Kind, err)
	}
	return effects, nil
}
