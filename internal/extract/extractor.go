package extract

import (
	"slices"
	"strings"

	"github.com/samber/lo"

	"github.com/amish-gaur/DataPriv/internal/types"
)

const (
	// SharingNotSold is reported when the policy explicitly disclaims selling or sharing
	SharingNotSold = "not sold/shared"
	// SharingSoldOrShared is reported when the policy mentions selling or sharing with others
	SharingSoldOrShared = "sold/shared with advertisers/partners"
	// SharingUnspecified is reported when the policy says nothing about sharing
	SharingUnspecified = "limited/unspecified"

	// RetentionAutomaticDeletion is reported when data is deleted automatically
	RetentionAutomaticDeletion = "automatic deletion"
	// RetentionPermanent is reported when data is kept indefinitely
	RetentionPermanent = "permanent"
	// RetentionThirtyDays is reported for a thirty day retention window
	RetentionThirtyDays = "30 days"
	// RetentionTwelveMonths is reported for a twelve month retention window
	RetentionTwelveMonths = "12 months"
	// RetentionUnspecified is reported when no retention signal is present
	RetentionUnspecified = "unspecified"
)

// dataTags are the categories of collected data, matched as substrings
var dataTags = []string{
	"name", "email", "address", "phone", "location", "ip", "device", "browser",
	"cookie", "personal", "demographic", "financial", "health", "biometric",
	"behavioral", "preference", "purchase", "browsing", "search", "social",
	"payment",
}

// purposeTags are the processing purposes, reported in this order when present
var purposeTags = []string{
	"advertising", "marketing", "personalization", "analytics", "security",
	"support", "legal", "research", "improvement", "communication",
}

// sharingSignals indicate data leaves the company
var sharingSignals = []string{
	"third party", "partner", "advertiser", "vendor", "service provider",
	"affiliate", "subsidiary", "sell", "sold", "shared", "disclosed",
}

// noSharingPhrases disclaim selling or sharing and take priority over sharingSignals
var noSharingPhrases = []string{
	"do not sell", "does not sell", "never sell", "not sold", "not shared", "not disclosed",
}

// rightsTags are the data-subject rights reported in userRights
var rightsTags = []string{
	"access", "delete", "correct", "update", "opt out", "opt-out",
	"withdraw", "consent", "portability", "restrict", "object",
}

// retentionRule maps a group of phrases to a retention label
type retentionRule struct {
	label   string
	phrases []string
}

// retentionRules are checked in order; the first rule with a matching phrase wins
var retentionRules = []retentionRule{
	{label: RetentionAutomaticDeletion, phrases: []string{"automatic deletion", "auto delete", "auto-delete", "automatically delete", "automatically remove"}},
	{label: RetentionPermanent, phrases: []string{"permanent", "indefinite", "forever"}},
	{label: RetentionThirtyDays, phrases: []string{"30 days", "thirty days"}},
	{label: RetentionTwelveMonths, phrases: []string{"12 months", "twelve months"}},
}

// Extract derives a policy summary from policy text using substring keyword
// tests. Matching is case-insensitive with no word boundaries, so partial words
// count. Empty text yields the default summary.
func Extract(text string) types.PolicySummary {
	lower := strings.ToLower(text)

	return types.PolicySummary{
		DataCollected: DataCollected(lower),
		Purposes:      Purposes(lower),
		Sharing:       Sharing(lower),
		Retention:     Retention(lower),
		UserRights:    UserRights(lower),
	}
}

// DataCollected returns the sorted set of data categories mentioned in lowercased text
func DataCollected(lower string) []string {
	found := matching(lower, dataTags)
	slices.Sort(found)

	return found
}

// Purposes returns the processing purposes mentioned in lowercased text in discovery order
func Purposes(lower string) []string {
	return matching(lower, purposeTags)
}

// Sharing resolves the sharing label: an explicit disclaimer wins over any sharing signal
func Sharing(lower string) string {
	switch {
	case containsAny(lower, noSharingPhrases):
		return SharingNotSold
	case containsAny(lower, sharingSignals):
		return SharingSoldOrShared
	default:
		return SharingUnspecified
	}
}

// Retention returns the label of the first retention rule with a phrase present in lowercased text
func Retention(lower string) string {
	for _, rule := range retentionRules {
		if containsAny(lower, rule.phrases) {
			return rule.label
		}
	}

	return RetentionUnspecified
}

// UserRights returns the sorted rights tags joined with ", ", or an empty string when none are present
func UserRights(lower string) string {
	rights := lo.Uniq(matching(lower, rightsTags))
	slices.Sort(rights)

	return strings.Join(rights, ", ")
}

// matching returns the tags that occur in lowercased text, preserving tag order
func matching(lower string, tags []string) []string {
	found := lo.Filter(tags, func(tag string, _ int) bool {
		return strings.Contains(lower, tag)
	})

	if found == nil {
		return []string{}
	}

	return found
}

// containsAny reports whether any phrase occurs in lowercased text
func containsAny(lower string, phrases []string) bool {
	return lo.SomeBy(phrases, func(p string) bool {
		return strings.Contains(lower, p)
	})
}
