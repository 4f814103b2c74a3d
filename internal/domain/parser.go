package domain

import (
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// wwwPrefix is stripped once from normalized hostnames
const wwwPrefix = "www."

// Info contains parsed domain information
type Info struct {
	Domain    string `json:"domain"`
	Subdomain string `json:"subdomain,omitempty"`
	TLD       string `json:"tld"`
	SLD       string `json:"sld"`
}

// Registrable returns the registrable domain (eTLD+1) for the parsed host
func (i *Info) Registrable() string {
	return i.SLD + "." + i.TLD
}

// Normalize reduces user input to the canonical hostname used as the analysis key:
// lowercase, no scheme, path, port or credentials, and no leading www.
// An email address is reduced to its domain part.
func Normalize(input string) (string, error) {
	host, err := hostOf(input)
	if err != nil {
		return "", err
	}

	host = strings.TrimPrefix(host, wwwPrefix)
	if host == "" {
		return "", ErrEmptyDomain
	}

	return host, nil
}

// Parse extracts domain information from an email or domain string
func Parse(input string) (*Info, error) {
	host, err := hostOf(input)
	if err != nil {
		return nil, err
	}

	if host == "" || !strings.Contains(host, ".") {
		return nil, ErrInvalidDomainFormat
	}

	etld1, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDomainFormat, err)
	}

	tld, _ := publicsuffix.PublicSuffix(host)
	sld := strings.TrimSuffix(etld1, "."+tld)

	subdomain := ""
	if etld1 != host {
		subdomain = strings.TrimSuffix(host, "."+etld1)
	}

	return &Info{
		Domain:    host,
		Subdomain: subdomain,
		TLD:       tld,
		SLD:       sld,
	}, nil
}

// hostOf strips everything but the lowercase hostname from the input
func hostOf(input string) (string, error) {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" {
		return "", ErrEmptyDomain
	}

	if strings.Contains(input, "@") && !strings.Contains(input, "://") {
		parts := strings.Split(input, "@")
		if len(parts) != 2 || parts[1] == "" {
			return "", ErrInvalidEmailFormat
		}

		input = parts[1]
	}

	if strings.Contains(input, "://") {
		u, err := url.Parse(input)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrInvalidURLFormat, err)
		}

		input = u.Host
	}

	if idx := strings.IndexAny(input, "/?#"); idx != -1 {
		input = input[:idx]
	}

	if idx := strings.LastIndex(input, "@"); idx != -1 {
		input = input[idx+1:]
	}

	if idx := strings.LastIndex(input, ":"); idx != -1 {
		input = input[:idx]
	}

	return strings.TrimSuffix(input, "."), nil
}
