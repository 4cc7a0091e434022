package sitecontent

import "sort"

// DefaultLocale is the fallback locale for resolution and the representative
// locale used in response envelopes.
const DefaultLocale = "en"

// LocalizedText maps a locale code (e.g. "es", "en", "ca") to a display
// string. Not every locale need be populated on a given instance.
type LocalizedText map[string]string

// Resolve returns the display string for locale, falling back to the default
// locale, then to the first populated locale in sorted order. It never fails;
// it returns "" only when no locale holds a value at all.
func (t LocalizedText) Resolve(locale string) string {
	if t == nil {
		return ""
	}
	if v, ok := t[locale]; ok && v != "" {
		return v
	}
	return t.Representative()
}

// Representative returns the value used in response envelopes: the default
// locale's value if present, else the first populated locale in sorted order.
func (t LocalizedText) Representative() string {
	if v, ok := t[DefaultLocale]; ok && v != "" {
		return v
	}
	locales := make([]string, 0, len(t))
	for l := range t {
		locales = append(locales, l)
	}
	sort.Strings(locales)
	for _, l := range locales {
		if t[l] != "" {
			return t[l]
		}
	}
	return ""
}

// Merge returns a copy of t with the locales present in patch overlaid.
// Locales absent from patch are preserved, so a single-locale update never
// erases sibling translations.
func (t LocalizedText) Merge(patch LocalizedText) LocalizedText {
	merged := make(LocalizedText, len(t)+len(patch))
	for l, v := range t {
		merged[l] = v
	}
	for l, v := range patch {
		merged[l] = v
	}
	return merged
}

// Clone returns an independent copy of t. A nil map clones to nil.
func (t LocalizedText) Clone() LocalizedText {
	if t == nil {
		return nil
	}
	c := make(LocalizedText, len(t))
	for l, v := range t {
		c[l] = v
	}
	return c
}

// ResolveValue resolves a value that is either a plain string (legacy simple
// content), a LocalizedText, or a generic map decoded from JSON. Plain
// strings are returned unchanged; anything else degrades to "".
func ResolveValue(v interface{}, locale string) string {
	switch val := v.(type) {
	case string:
		return val
	case LocalizedText:
		return val.Resolve(locale)
	case map[string]string:
		return LocalizedText(val).Resolve(locale)
	case map[string]interface{}:
		t := make(LocalizedText, len(val))
		for l, raw := range val {
			if s, ok := raw.(string); ok {
				t[l] = s
			}
		}
		return t.Resolve(locale)
	default:
		return ""
	}
}
