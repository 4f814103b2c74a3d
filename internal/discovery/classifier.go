package discovery

import "regexp"

const (
	// DocumentPrivacyPolicy identifies privacy policy and privacy notice pages
	DocumentPrivacyPolicy = "privacy_policy"
	// DocumentCookiePolicy identifies cookie policy pages
	DocumentCookiePolicy = "cookie_policy"
	// DocumentDataPolicy identifies data policy and data protection pages
	DocumentDataPolicy = "data_policy"
	// DocumentTermsOfService identifies terms of service pages
	DocumentTermsOfService = "terms_of_service"
	// DocumentLegal identifies generic legal hubs that link to several documents
	DocumentLegal = "legal"
)

// classifyBodyLimit bounds how much of a document body is scanned by the body patterns
const classifyBodyLimit = 32 * 1024

// documentRule defines regex patterns for a single document type
type documentRule struct {
	documentType  string
	urlPatterns   []*regexp.Regexp
	titlePatterns []*regexp.Regexp
	bodyPatterns  []*regexp.Regexp
}

// documentRules is the ordered list of rules; within a pass the first match wins
var documentRules = []documentRule{
	{
		documentType: DocumentPrivacyPolicy,
		urlPatterns: compileAll(
			`(?i)/privac(y|y-policy|y-notice|y-statement)`,
			`(?i)/legal/privac`,
		),
		titlePatterns: compileAll(
			`(?i)privacy\s+(policy|notice|statement)`,
		),
		bodyPatterns: compileAll(
			`(?i)this\s+privacy\s+(policy|notice|statement)`,
			`(?i)we\s+collect\s+.{0,40}(personal|information)`,
			`(?i)personal\s+(data|information).{0,80}collect`,
		),
	},
	{
		documentType: DocumentCookiePolicy,
		urlPatterns: compileAll(
			`(?i)/(cookie-?policy|cookies)(/|$)`,
		),
		titlePatterns: compileAll(
			`(?i)cookie\s+(policy|notice|statement)`,
		),
		bodyPatterns: compileAll(
			`(?i)strictly\s+necessary\s+cookies`,
			`(?i)this\s+cookie\s+(policy|notice)`,
		),
	},
	{
		documentType: DocumentDataPolicy,
		urlPatterns: compileAll(
			`(?i)/data-(policy|protection|use)`,
		),
		titlePatterns: compileAll(
			`(?i)data\s+(policy|protection\s+(policy|notice))`,
		),
		bodyPatterns: compileAll(
			`(?i)this\s+data\s+(policy|protection\s+policy)`,
		),
	},
	{
		documentType: DocumentTermsOfService,
		urlPatterns: compileAll(
			`(?i)/(terms|tos)(/|$)`,
			`(?i)/terms-of-(service|use)`,
			`(?i)/legal/terms`,
		),
		titlePatterns: compileAll(
			`(?i)terms\s+(of\s+service|of\s+use|&\s+conditions|and\s+conditions)`,
		),
		bodyPatterns: compileAll(
			`(?i)(binding\s+agreement|user\s+agreement|these\s+terms\s+govern)`,
			`(?i)by\s+(using|accessing).{0,40}you\s+agree`,
		),
	},
	{
		documentType: DocumentLegal,
		urlPatterns: compileAll(
			`(?i)/legal(/|$)`,
		),
		titlePatterns: compileAll(
			`(?i)^legal(\s+(center|information|notices?))?$`,
		),
	},
}

// ClassifyDocument determines the document type of a fetched page from its URL,
// title and text. All URL patterns are checked before any title pattern, and all
// title patterns before any body pattern, so a URL match always beats a body
// match from a higher-priority rule. Returns an empty string when nothing matches.
func ClassifyDocument(pageURL, title, body string) string {
	for _, rule := range documentRules {
		if matchesAny(rule.urlPatterns, pageURL) {
			return rule.documentType
		}
	}

	for _, rule := range documentRules {
		if matchesAny(rule.titlePatterns, title) {
			return rule.documentType
		}
	}

	if len(body) > classifyBodyLimit {
		body = body[:classifyBodyLimit]
	}

	for _, rule := range documentRules {
		if matchesAny(rule.bodyPatterns, body) {
			return rule.documentType
		}
	}

	return ""
}

// compileAll compiles multiple regex patterns, panicking on invalid patterns
func compileAll(patterns ...string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, 0, len(patterns))

	for _, p := range patterns {
		compiled = append(compiled, regexp.MustCompile(p))
	}

	return compiled
}

// matchesAny returns true if the input matches any of the compiled patterns
func matchesAny(patterns []*regexp.Regexp, input string) bool {
	for _, p := range patterns {
		if p.MatchString(input) {
			return true
		}
	}

	return false
}
