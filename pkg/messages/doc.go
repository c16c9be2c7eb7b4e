// Package messages turns validation errors into human-readable text.
//
// A catalog maps error codes to message templates per language, with
// placeholder substitution from the error payload and locale fallback
// (exact tag, then base language, then the default language) resolved via
// golang.org/x/text/language matching. English templates for the built-in
// validator codes ship as a last resort, so an empty catalog is already
// usable.
//
//	catalog, err := messages.New(
//	    messages.WithDefaultLanguage("en"),
//	    messages.WithMessages("de", map[string]string{
//	        "required":  "Dieses Feld ist erforderlich.",
//	        "minlength": "Mindestens {{requiredLength}} Zeichen erforderlich.",
//	    }),
//	)
//
//	msgs := catalog.Resolve("de-AT", ctrl.Errors())
//	// ["Mindestens 8 Zeichen erforderlich."]
//
// Describe walks a whole control tree and returns messages keyed by
// control path, ready to render next to each field.
package messages
