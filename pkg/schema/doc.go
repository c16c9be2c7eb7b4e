// Package schema builds form control trees from declarative YAML
// definitions.
//
// A definition describes a control's kind, initial value, validators, and
// children; the builder compiles it into a live forms tree:
//
//	kind: group
//	children:
//	  email:
//	    kind: control
//	    value: ""
//	    validators: [required, email]
//	  password:
//	    kind: control
//	    validators:
//	      - required
//	      - name: minLength
//	        arg: 8
//	  tags:
//	    kind: array
//	    items:
//	      - kind: control
//	        value: go
//
//	form, err := schema.NewBuilder().Load(data)
//
// Validators are referenced by name. The builder knows the built-in set
// (required, requiredTrue, email, safeHTML, min, max, minLength,
// maxLength, pattern); custom validators register through
// [WithValidator]:
//
//	b := schema.NewBuilder(
//	    schema.WithValidator("username", func(arg any) (forms.ValidatorFunc, error) {
//	        return validators.Pattern(usernameRe), nil
//	    }),
//	)
//
// Unknown kinds and validator names are structural errors reported at
// build time, not at validation time.
package schema
