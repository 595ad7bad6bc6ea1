package utils

import (
	"regexp"
	"strings"
)

var (
	slugInvalid = regexp.MustCompile("[^a-z0-9-]")
	slugHyphens = regexp.MustCompile("-+")
)

// Slugify converts a string to a URL-friendly slug usable as a tenant
// subdomain.
func Slugify(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "-")
	s = slugInvalid.ReplaceAllString(s, "")
	s = slugHyphens.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
