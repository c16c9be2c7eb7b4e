package messages

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/language"

	"github.com/dmitrymomot/formkit/pkg/forms"
)

// ErrInvalidLanguage is returned when a language tag cannot be parsed.
var ErrInvalidLanguage = errors.New("messages: invalid language tag")

// defaultTemplates are the English fallbacks for the built-in validator
// error codes, used when no registered language carries the code.
var defaultTemplates = map[string]string{
	"required":  "This field is required.",
	"email":     "Enter a valid email address.",
	"minlength": "Must be at least {{requiredLength}} characters, got {{actualLength}}.",
	"maxlength": "Must be at most {{requiredLength}} characters, got {{actualLength}}.",
	"min":       "Must be at least {{min}}.",
	"max":       "Must be at most {{max}}.",
	"pattern":   "Does not match the required format.",
	"safehtml":  "Contains markup that is not allowed.",
	"async":     "Validation failed: {{value}}.",
}

// Catalog resolves validation error codes to localized messages. It is
// immutable after creation, making it safe for concurrent use.
type Catalog struct {
	templates  map[language.Tag]map[string]string
	tags       []language.Tag
	matcher    language.Matcher
	defaultTag language.Tag
}

// Option configures the catalog during construction.
type Option func(*Catalog) error

// New creates a catalog with the given options. The default language is
// English unless overridden.
func New(opts ...Option) (*Catalog, error) {
	c := &Catalog{
		templates:  make(map[language.Tag]map[string]string),
		defaultTag: language.English,
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	// The matcher prefers earlier tags; the default language goes first
	// so unmatched requests land there.
	c.tags = []language.Tag{c.defaultTag}
	for tag := range c.templates {
		if tag != c.defaultTag {
			c.tags = append(c.tags, tag)
		}
	}
	sort.Slice(c.tags[1:], func(i, j int) bool {
		return c.tags[i+1].String() < c.tags[j+1].String()
	})
	c.matcher = language.NewMatcher(c.tags)

	return c, nil
}

// WithDefaultLanguage sets the fallback language.
func WithDefaultLanguage(lang string) Option {
	return func(c *Catalog) error {
		tag, err := language.Parse(lang)
		if err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidLanguage, lang)
		}
		c.defaultTag = tag
		return nil
	}
}

// WithMessages registers message templates for a language. Templates use
// {{placeholder}} markers filled from the error payload; scalar payloads
// are available as {{value}}.
func WithMessages(lang string, templates map[string]string) Option {
	return func(c *Catalog) error {
		tag, err := language.Parse(lang)
		if err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidLanguage, lang)
		}
		existing, ok := c.templates[tag]
		if !ok {
			existing = make(map[string]string, len(templates))
			c.templates[tag] = existing
		}
		for code, tmpl := range templates {
			existing[code] = tmpl
		}
		return nil
	}
}

// DefaultLanguage returns the catalog's fallback language tag.
func (c *Catalog) DefaultLanguage() language.Tag { return c.defaultTag }

// Message resolves a single error code for the given language. When no
// registered language carries the code, the built-in English template is
// used; when that is missing too, the code itself is returned.
func (c *Catalog) Message(lang, code string, payload any) string {
	tag := c.match(lang)
	tmpl, ok := c.templates[tag][code]
	if !ok {
		tmpl, ok = c.templates[c.defaultTag][code]
	}
	if !ok {
		tmpl, ok = defaultTemplates[code]
	}
	if !ok {
		return code
	}
	return replacePlaceholders(tmpl, payload)
}

// Resolve returns the messages for every error in the map, ordered by
// error code for deterministic output.
func (c *Catalog) Resolve(lang string, errs forms.ValidationErrors) []string {
	if len(errs) == 0 {
		return nil
	}
	codes := make([]string, 0, len(errs))
	for code := range errs {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	out := make([]string, 0, len(codes))
	for _, code := range codes {
		out = append(out, c.Message(lang, code, errs[code]))
	}
	return out
}

// Describe walks a control tree and returns resolved messages keyed by
// dot-delimited control path. The root control's own errors appear under
// the empty key.
func (c *Catalog) Describe(lang string, ctrl forms.Control) map[string][]string {
	out := make(map[string][]string)
	c.describe(lang, "", ctrl, out)
	return out
}

func (c *Catalog) describe(lang, path string, ctrl forms.Control, out map[string][]string) {
	if msgs := c.Resolve(lang, ctrl.Errors()); len(msgs) > 0 {
		out[path] = msgs
	}
	switch v := ctrl.(type) {
	case *forms.FormGroup:
		for _, name := range v.Keys() {
			c.describe(lang, childPath(path, name), v.Get(name), out)
		}
	case *forms.FormArray:
		for i := 0; i < v.Len(); i++ {
			c.describe(lang, childPath(path, strconv.Itoa(i)), v.At(i), out)
		}
	}
}

func childPath(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "." + name
}

// match maps a requested language to the closest registered tag,
// defaulting when the request does not parse.
func (c *Catalog) match(lang string) language.Tag {
	tag, err := language.Parse(lang)
	if err != nil {
		return c.defaultTag
	}
	_, index, _ := c.matcher.Match(tag)
	return c.tags[index]
}

func replacePlaceholders(tmpl string, payload any) string {
	switch values := payload.(type) {
	case map[string]any:
		for key, value := range values {
			tmpl = strings.ReplaceAll(tmpl, "{{"+key+"}}", formatValue(value))
		}
	default:
		tmpl = strings.ReplaceAll(tmpl, "{{value}}", formatValue(payload))
	}
	return tmpl
}

func formatValue(v any) string {
	switch value := v.(type) {
	case string:
		return value
	case float64:
		// Whole-number floats read better without the trailing zero.
		if value == float64(int64(value)) {
			return strconv.FormatInt(int64(value), 10)
		}
		return strconv.FormatFloat(value, 'g', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}
