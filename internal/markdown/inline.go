// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package markdown

import "regexp"

// InlineRule is one text-level substitution applied to paragraph lines.
// Pattern matches are replaced with Replacement, which may reference
// capture groups.
type InlineRule struct {
	Name        string
	Pattern     *regexp.Regexp
	Replacement string
}

// Apply replaces every match of the rule in text.
func (r InlineRule) Apply(text string) string {
	return r.Pattern.ReplaceAllString(text, r.Replacement)
}

// inlineRules is applied in order. Bold runs before italic so that double
// delimiters are consumed before single ones are considered. The two
// alternatives of bold and italic never both match, so the unused group
// expands to the empty string.
var inlineRules = []InlineRule{
	{
		Name:        "bold",
		Pattern:     regexp.MustCompile(`\*\*(.*?)\*\*|__(.*?)__`),
		Replacement: "<b>${1}${2}</b>",
	},
	{
		Name:        "italic",
		Pattern:     regexp.MustCompile(`\*(.*?)\*|_(.*?)_`),
		Replacement: "<i>${1}${2}</i>",
	},
	{
		Name:        "code",
		Pattern:     regexp.MustCompile("`(.*?)`"),
		Replacement: "<code>${1}</code>",
	},
	{
		Name:        "strikethrough",
		Pattern:     regexp.MustCompile(`~~(.*?)~~`),
		Replacement: "<s>${1}</s>",
	},
}

// InlineRules returns a copy of the ordered inline rule list.
func InlineRules() []InlineRule {
	rules := make([]InlineRule, len(inlineRules))
	copy(rules, inlineRules)
	return rules
}

// ApplyInline runs every inline rule over text in order.
func ApplyInline(text string) string {
	for _, r := range inlineRules {
		text = r.Apply(text)
	}
	return text
}
