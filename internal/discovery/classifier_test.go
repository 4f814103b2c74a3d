package discovery

import (
	"strings"
	"testing"
)

func TestClassifyDocument_URLMatch(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		expected string
	}{
		{"privacy path", "https://example.com/privacy", DocumentPrivacyPolicy},
		{"privacy policy hyphenated", "https://example.com/privacy-policy", DocumentPrivacyPolicy},
		{"privacy notice", "https://example.com/privacy-notice", DocumentPrivacyPolicy},
		{"legal privacy", "https://example.com/legal/privacy", DocumentPrivacyPolicy},
		{"cookie policy", "https://example.com/cookie-policy", DocumentCookiePolicy},
		{"cookies path", "https://example.com/cookies", DocumentCookiePolicy},
		{"data policy", "https://example.com/data-policy", DocumentDataPolicy},
		{"data protection", "https://example.com/data-protection", DocumentDataPolicy},
		{"terms path", "https://example.com/terms", DocumentTermsOfService},
		{"terms of use", "https://example.com/terms-of-use", DocumentTermsOfService},
		{"tos path", "https://example.com/tos", DocumentTermsOfService},
		{"legal hub", "https://example.com/legal", DocumentLegal},
		{"no match", "https://example.com/about", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := ClassifyDocument(tc.url, "", "")
			if result != tc.expected {
				t.Errorf("ClassifyDocument(%q, \"\", \"\"): expected %q, got %q", tc.url, tc.expected, result)
			}
		})
	}
}

func TestClassifyDocument_TitleMatch(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		expected string
	}{
		{"privacy policy", "Privacy Policy | Acme", DocumentPrivacyPolicy},
		{"privacy statement", "Acme Privacy Statement", DocumentPrivacyPolicy},
		{"cookie notice", "Cookie Notice", DocumentCookiePolicy},
		{"data policy", "Data Policy", DocumentDataPolicy},
		{"terms and conditions", "Terms and Conditions", DocumentTermsOfService},
		{"legal center", "Legal Center", DocumentLegal},
		{"unrelated", "Acme - Home", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := ClassifyDocument("https://example.com/page", tc.title, "")
			if result != tc.expected {
				t.Errorf("expected %q, got %q", tc.expected, result)
			}
		})
	}
}

func TestClassifyDocument_BodyMatch(t *testing.T) {
	body := "Welcome. This Privacy Notice explains how we collect and use your personal information."

	if got := ClassifyDocument("https://example.com/page", "Acme", body); got != DocumentPrivacyPolicy {
		t.Errorf("expected %q, got %q", DocumentPrivacyPolicy, got)
	}
}

func TestClassifyDocument_URLBeatsBody(t *testing.T) {
	body := "This privacy policy describes what we collect."

	if got := ClassifyDocument("https://example.com/terms", "", body); got != DocumentTermsOfService {
		t.Errorf("expected URL match %q to win, got %q", DocumentTermsOfService, got)
	}
}

func TestClassifyDocument_BodyLimit(t *testing.T) {
	body := strings.Repeat("x", classifyBodyLimit) + " this privacy policy"

	if got := ClassifyDocument("https://example.com/page", "", body); got != "" {
		t.Errorf("expected match beyond the scan limit to be ignored, got %q", got)
	}
}
