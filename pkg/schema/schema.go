package schema

import (
	"fmt"
	"io/fs"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/formkit/pkg/forms"
	"github.com/dmitrymomot/formkit/pkg/validators"
)

// Definition is the declarative description of one control.
type Definition struct {
	Kind       string                 `yaml:"kind"`
	Value      any                    `yaml:"value"`
	Disabled   bool                   `yaml:"disabled"`
	UpdateOn   string                 `yaml:"updateOn"`
	Validators []ValidatorSpec        `yaml:"validators"`
	Children   map[string]*Definition `yaml:"children"`
	Items      []*Definition          `yaml:"items"`
}

// ValidatorSpec references a validator by name, optionally with an
// argument. In YAML it is written either as a bare scalar ("required") or
// as a mapping ({name: minLength, arg: 8}).
type ValidatorSpec struct {
	Name string `yaml:"name"`
	Arg  any    `yaml:"arg"`
}

// UnmarshalYAML accepts both the scalar and the mapping form.
func (s *ValidatorSpec) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		return node.Decode(&s.Name)
	case yaml.MappingNode:
		var raw struct {
			Name string `yaml:"name"`
			Arg  any    `yaml:"arg"`
		}
		if err := node.Decode(&raw); err != nil {
			return err
		}
		s.Name = raw.Name
		s.Arg = raw.Arg
		return nil
	default:
		return fmt.Errorf("%w: validator spec must be a name or a {name, arg} mapping", ErrInvalidDefinition)
	}
}

// Factory produces a validator from the (possibly nil) argument given in
// the definition.
type Factory func(arg any) (forms.ValidatorFunc, error)

// Builder compiles definitions into control trees.
type Builder struct {
	factories map[string]Factory
}

// Option configures the builder during construction.
type Option func(*Builder)

// WithValidator registers a custom validator factory under the given
// name, overriding a built-in of the same name.
func WithValidator(name string, factory Factory) Option {
	return func(b *Builder) {
		b.factories[name] = factory
	}
}

// NewBuilder creates a builder preloaded with the built-in validator set.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{factories: builtinFactories()}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Parse decodes a YAML definition without building it.
func Parse(data []byte) (*Definition, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDefinition, err)
	}
	return &def, nil
}

// Load parses a YAML definition and builds the control tree.
func (b *Builder) Load(data []byte) (forms.Control, error) {
	def, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return b.Build(def)
}

// LoadFile reads a YAML definition from an fs.FS and builds the control
// tree.
func (b *Builder) LoadFile(fsys fs.FS, path string) (forms.Control, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("schema: reading %q: %w", path, err)
	}
	return b.Load(data)
}

// Build compiles a definition into a control tree.
func (b *Builder) Build(def *Definition) (forms.Control, error) {
	if def == nil {
		return nil, fmt.Errorf("%w: nil definition", ErrInvalidDefinition)
	}

	opts, err := b.controlOptions(def)
	if err != nil {
		return nil, err
	}

	switch def.Kind {
	case "control", "":
		return forms.NewControl(def.Value, opts...), nil

	case "group":
		children := make(map[string]forms.Control, len(def.Children))
		for name, childDef := range def.Children {
			child, err := b.Build(childDef)
			if err != nil {
				return nil, fmt.Errorf("child %q: %w", name, err)
			}
			children[name] = child
		}
		return forms.NewGroup(children, opts...), nil

	case "array":
		items := make([]forms.Control, 0, len(def.Items))
		for i, itemDef := range def.Items {
			item, err := b.Build(itemDef)
			if err != nil {
				return nil, fmt.Errorf("item %d: %w", i, err)
			}
			items = append(items, item)
		}
		return forms.NewArray(items, opts...), nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, def.Kind)
	}
}

func (b *Builder) controlOptions(def *Definition) ([]forms.Option, error) {
	var opts []forms.Option

	if len(def.Validators) > 0 {
		fns := make([]forms.ValidatorFunc, 0, len(def.Validators))
		for _, spec := range def.Validators {
			factory, ok := b.factories[spec.Name]
			if !ok {
				return nil, fmt.Errorf("%w: %q", ErrUnknownValidator, spec.Name)
			}
			fn, err := factory(spec.Arg)
			if err != nil {
				return nil, err
			}
			fns = append(fns, fn)
		}
		opts = append(opts, forms.WithValidators(fns...))
	}

	if def.UpdateOn != "" {
		switch updateOn := forms.UpdateOn(def.UpdateOn); updateOn {
		case forms.UpdateOnChange, forms.UpdateOnBlur, forms.UpdateOnSubmit:
			opts = append(opts, forms.WithUpdateOn(updateOn))
		default:
			return nil, fmt.Errorf("%w: %q", ErrInvalidUpdateOn, def.UpdateOn)
		}
	}

	if def.Disabled {
		opts = append(opts, forms.WithDisabled())
	}

	return opts, nil
}

func builtinFactories() map[string]Factory {
	return map[string]Factory{
		"required":     noArg("required", validators.Required),
		"requiredTrue": noArg("requiredTrue", validators.RequiredTrue),
		"email":        noArg("email", validators.Email),
		"safeHTML":     noArg("safeHTML", validators.SafeHTML),
		"min": func(arg any) (forms.ValidatorFunc, error) {
			n, ok := toFloat(arg)
			if !ok {
				return nil, fmt.Errorf("%w: min requires a number, got %v", ErrInvalidArgument, arg)
			}
			return validators.Min(n), nil
		},
		"max": func(arg any) (forms.ValidatorFunc, error) {
			n, ok := toFloat(arg)
			if !ok {
				return nil, fmt.Errorf("%w: max requires a number, got %v", ErrInvalidArgument, arg)
			}
			return validators.Max(n), nil
		},
		"minLength": func(arg any) (forms.ValidatorFunc, error) {
			n, ok := toInt(arg)
			if !ok || n < 0 {
				return nil, fmt.Errorf("%w: minLength requires a non-negative integer, got %v", ErrInvalidArgument, arg)
			}
			return validators.MinLength(n), nil
		},
		"maxLength": func(arg any) (forms.ValidatorFunc, error) {
			n, ok := toInt(arg)
			if !ok || n < 0 {
				return nil, fmt.Errorf("%w: maxLength requires a non-negative integer, got %v", ErrInvalidArgument, arg)
			}
			return validators.MaxLength(n), nil
		},
		"pattern": func(arg any) (forms.ValidatorFunc, error) {
			expr, ok := arg.(string)
			if !ok {
				return nil, fmt.Errorf("%w: pattern requires a string, got %v", ErrInvalidArgument, arg)
			}
			re, err := regexp.Compile(expr)
			if err != nil {
				return nil, fmt.Errorf("%w: pattern %q: %s", ErrInvalidArgument, expr, err)
			}
			return validators.Pattern(re), nil
		},
	}
}

func noArg(name string, fn forms.ValidatorFunc) Factory {
	return func(arg any) (forms.ValidatorFunc, error) {
		if arg != nil {
			return nil, fmt.Errorf("%w: %s takes no argument", ErrInvalidArgument, name)
		}
		return fn, nil
	}
}

func toInt(arg any) (int, bool) {
	switch v := arg.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		if v != float64(int(v)) {
			return 0, false
		}
		return int(v), true
	default:
		return 0, false
	}
}

func toFloat(arg any) (float64, bool) {
	switch v := arg.(type) {
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case float64:
		return v, true
	default:
		return 0, false
	}
}
