// Package security holds URL safety checks, alias and name validation, and
// privacy helpers shared by the link lifecycle and click recording paths.
package security

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"
)

// ValidationError reports which input field was rejected and why. It is always
// produced before any store mutation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

var (
	aliasPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,50}$`)
	htmlTags     = regexp.MustCompile(`<[^>]*>`)

	// Aliases that collide with application routes.
	reservedAliases = map[string]struct{}{
		"api": {}, "admin": {}, "dashboard": {}, "auth": {}, "login": {},
		"signup": {}, "www": {}, "app": {}, "about": {},
	}
)

// ValidateURL checks that raw parses as an absolute http(s) URL. In production
// mode, destinations on loopback or private networks are rejected so the
// service cannot be used to probe internal hosts.
func ValidateURL(raw string, production bool) error {
	parsed, err := url.Parse(raw)
	if err != nil {
		return &ValidationError{Field: "url", Reason: "not a valid URL"}
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return &ValidationError{Field: "url", Reason: "only http and https URLs are allowed"}
	}
	if parsed.Hostname() == "" {
		return &ValidationError{Field: "url", Reason: "missing host"}
	}

	if production && isInternalHost(parsed.Hostname()) {
		return &ValidationError{Field: "url", Reason: "URL resolves to an internal network"}
	}
	return nil
}

func isInternalHost(hostname string) bool {
	hostname = strings.ToLower(hostname)
	if hostname == "localhost" {
		return true
	}

	ip := net.ParseIP(hostname)
	if ip == nil {
		return false
	}
	// The whole 169/8 literal range is refused, not just link-local: cloud
	// metadata endpoints live behind 169.254.169.254 and lookalikes.
	if ip.To4() != nil && strings.HasPrefix(hostname, "169.") {
		return true
	}
	return ip.IsLoopback() || ip.IsPrivate() || ip.IsLinkLocalUnicast()
}

// ValidateAlias enforces the alias character set and the reserved-word list.
func ValidateAlias(alias string) error {
	if alias == "" {
		return &ValidationError{Field: "alias", Reason: "cannot be empty"}
	}
	if !aliasPattern.MatchString(alias) {
		return &ValidationError{Field: "alias", Reason: "only letters, numbers, hyphens and underscores, up to 50 characters"}
	}
	if _, reserved := reservedAliases[strings.ToLower(alias)]; reserved {
		return &ValidationError{Field: "alias", Reason: "this alias is reserved"}
	}
	return nil
}

// SanitizeName strips HTML tags and enforces the 1..100 length bound. The
// cleaned name is returned.
func SanitizeName(name string) (string, error) {
	cleaned := strings.TrimSpace(htmlTags.ReplaceAllString(name, ""))
	if length := utf8.RuneCountInString(cleaned); length < 1 || length > 100 {
		return "", &ValidationError{Field: "name", Reason: "must be between 1 and 100 characters"}
	}
	return cleaned, nil
}

// HashIP returns a one-way sha256 hex digest of the requester address. The raw
// address is never persisted.
func HashIP(ip string) string {
	if ip == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(ip))
	return hex.EncodeToString(sum[:])
}
