package discovery

import (
	"cmp"
	"fmt"
	"net/url"
	"regexp"
	"slices"
	"strings"

	"github.com/samber/lo"
)

var (
	// privacyPattern marks candidates that most likely host the privacy policy itself
	privacyPattern = regexp.MustCompile(`(?i)privacy|policy`)
	// termsPattern marks candidates that may embed privacy terms in a broader legal document
	termsPattern = regexp.MustCompile(`(?i)terms`)
)

// fallbackPaths are tried on the bare host when no candidates were supplied
var fallbackPaths = []string{
	"/privacy",
	"/privacy-policy",
	"/terms",
	"/terms-of-service",
}

// wwwFallbackPaths are tried on the www host when no candidates were supplied
var wwwFallbackPaths = []string{
	"/privacy",
	"/privacy-policy",
}

// alternatePaths are retried on the bare host when the selected URL yields too little text
var alternatePaths = []string{
	"/terms",
	"/legal",
	"/data-policy",
}

// wwwAlternatePaths are retried on the www host when the selected URL yields too little text
var wwwAlternatePaths = []string{
	"/terms",
	"/legal",
}

// SelectURL picks the candidate most likely to host the privacy policy for domain.
// Candidates are deduplicated in first-seen order; when none are supplied the
// fixed fallback set is ranked instead. Ranking prefers privacy/policy URLs, then
// terms URLs, then shorter URLs.
func SelectURL(domain string, candidates []string) (string, error) {
	ranked := RankCandidates(domain, candidates)
	if len(ranked) == 0 {
		return "", ErrNoCandidateURL
	}

	return ranked[0], nil
}

// RankCandidates returns the deduplicated candidate set ordered best first
func RankCandidates(domain string, candidates []string) []string {
	set := dedupeCandidates(domain, candidates)
	if len(set) == 0 {
		set = FallbackURLs(domain)
	}

	slices.SortStableFunc(set, compareCandidates)

	return set
}

// FallbackURLs returns the deterministic candidate set used when none were supplied
func FallbackURLs(domain string) []string {
	return hostURLs(domain, fallbackPaths, wwwFallbackPaths)
}

// AlternateURLs returns the URLs retried in order when the selected page has no usable policy text
func AlternateURLs(domain string) []string {
	return hostURLs(domain, alternatePaths, wwwAlternatePaths)
}

// NormalizeURL resolves a candidate against the domain, turning relative paths into absolute https URLs
func NormalizeURL(rawURL, domain string) string {
	rawURL = strings.TrimSpace(rawURL)

	if strings.HasPrefix(rawURL, "//") {
		return "https:" + rawURL
	}

	if strings.HasPrefix(rawURL, "/") {
		return fmt.Sprintf("https://%s%s", domain, rawURL)
	}

	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Scheme == "" {
		return fmt.Sprintf("https://%s/%s", domain, strings.TrimPrefix(rawURL, "/"))
	}

	return rawURL
}

// compareCandidates orders candidates by the (no privacy match, no terms match, length) tuple
func compareCandidates(a, b string) int {
	return cmp.Or(
		cmp.Compare(missRank(privacyPattern, a), missRank(privacyPattern, b)),
		cmp.Compare(missRank(termsPattern, a), missRank(termsPattern, b)),
		cmp.Compare(len(a), len(b)),
	)
}

// missRank is 0 when the pattern matches and 1 otherwise so matches sort first
func missRank(pattern *regexp.Regexp, candidate string) int {
	if pattern.MatchString(candidate) {
		return 0
	}

	return 1
}

// dedupeCandidates drops blanks, resolves relative candidates and removes duplicates keeping first-seen order
func dedupeCandidates(domain string, candidates []string) []string {
	cleaned := lo.FilterMap(candidates, func(c string, _ int) (string, bool) {
		c = strings.TrimSpace(c)
		if c == "" {
			return "", false
		}

		if domain == "" {
			return c, true
		}

		return NormalizeURL(c, domain), true
	})

	return lo.Uniq(cleaned)
}

// hostURLs builds https URLs for the bare host paths followed by the www host paths
func hostURLs(domain string, paths, wwwPaths []string) []string {
	if domain == "" {
		return nil
	}

	urls := make([]string, 0, len(paths)+len(wwwPaths))

	for _, p := range paths {
		urls = append(urls, fmt.Sprintf("https://%s%s", domain, p))
	}

	for _, p := range wwwPaths {
		urls = append(urls, fmt.Sprintf("https://www.%s%s", domain, p))
	}

	return urls
}
