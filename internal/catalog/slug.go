package catalog

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var (
	whitespaceRunRe = regexp.MustCompile(`\s+`)
	invalidSlugRe   = regexp.MustCompile(`[^a-z0-9-]`)
	hyphenRunRe     = regexp.MustCompile(`-{2,}`)
	explicitSlugRe  = regexp.MustCompile(`^[a-z0-9-]+$`)
)

// slugify normalizes a title into its base slug: lowercase, whitespace runs
// collapsed to single hyphens, anything outside [a-z0-9-] stripped, repeated
// hyphens collapsed, leading/trailing hyphens trimmed. An empty result falls
// back to a random unique token.
func slugify(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = whitespaceRunRe.ReplaceAllString(slug, "-")
	slug = invalidSlugRe.ReplaceAllString(slug, "")
	slug = hyphenRunRe.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		return randomSlugToken()
	}
	return slug
}

// isValidSlug reports whether a caller-supplied slug is already in canonical
// URL-safe form; slugs are stored verbatim, so anything else is rejected.
func isValidSlug(slug string) bool {
	return explicitSlugRe.MatchString(slug)
}

func randomSlugToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// slugCandidate returns the probe value for the given counter:
// base for 0, base-1, base-2, ... afterwards.
func slugCandidate(base string, counter int) string {
	if counter == 0 {
		return base
	}
	return fmt.Sprintf("%s-%d", base, counter)
}
