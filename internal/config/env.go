package config

import "strings"

// EmailSet is a case-insensitive set of email addresses, parsed once at load.
type EmailSet map[string]struct{}

// ParseEmailSet splits a comma-separated list of addresses.
func ParseEmailSet(raw string) EmailSet {
	set := EmailSet{}
	for _, email := range splitList(raw) {
		set[strings.ToLower(email)] = struct{}{}
	}
	return set
}

func (s EmailSet) Contains(email string) bool {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return false
	}
	_, ok := s[email]
	return ok
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
