package slug

import (
	"crypto/rand"
	"regexp"
	"strings"
	"unicode"
)

// MaxLength is the maximum slug length. Slugs double as DNS labels for
// subdomain routing, so the DNS label limit applies.
const MaxLength = 63

// pattern matches a valid slug: lowercase alphanumeric start and end,
// hyphens allowed inside. Same shape as a DNS label.
var pattern = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]*[a-z0-9])?$`)

// IsValid reports whether s is a well-formed slug usable as a subdomain
// label.
func IsValid(s string) bool {
	if s == "" || len(s) > MaxLength {
		return false
	}
	return pattern.MatchString(s)
}

// Make creates a DNS-safe slug from an arbitrary name: diacritics folded to
// ASCII, everything else collapsed to single hyphens, truncated to MaxLength.
// Returns an empty string when nothing usable remains.
func Make(name string) string {
	var b strings.Builder
	b.Grow(len(name))

	lastWasHyphen := true // suppress leading hyphen
	for _, r := range name {
		r = unicode.ToLower(r)
		if folded, ok := diacritics[r]; ok {
			r = folded
		}
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastWasHyphen = false
			continue
		}
		if !lastWasHyphen {
			b.WriteByte('-')
			lastWasHyphen = true
		}
	}

	s := strings.Trim(b.String(), "-")
	if len(s) > MaxLength {
		s = strings.Trim(s[:MaxLength], "-")
	}
	return s
}

// MakeUnique works like Make but appends a short random suffix to reduce
// collision probability when names repeat across organizations.
func MakeUnique(name string, suffixLen int) string {
	if suffixLen <= 0 {
		return Make(name)
	}
	s := Make(name)
	suffix := randomSuffix(suffixLen)
	if s == "" {
		return suffix
	}
	if len(s)+1+suffixLen > MaxLength {
		s = strings.Trim(s[:MaxLength-1-suffixLen], "-")
	}
	return s + "-" + suffix
}

const suffixAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

func randomSuffix(n int) string {
	buf := make([]byte, n)
	// rand.Read never fails on supported platforms.
	_, _ = rand.Read(buf)
	for i, b := range buf {
		buf[i] = suffixAlphabet[int(b)%len(suffixAlphabet)]
	}
	return string(buf)
}

// diacritics folds common Latin diacritics to ASCII. Covers the European
// languages the product ships in; anything unmapped becomes a hyphen.
var diacritics = map[rune]rune{
	'à': 'a', 'á': 'a', 'â': 'a', 'ã': 'a', 'ä': 'a', 'å': 'a', 'ā': 'a',
	'ç': 'c', 'ć': 'c', 'č': 'c',
	'è': 'e', 'é': 'e', 'ê': 'e', 'ë': 'e', 'ē': 'e', 'ę': 'e',
	'ì': 'i', 'í': 'i', 'î': 'i', 'ï': 'i', 'ī': 'i',
	'ñ': 'n', 'ń': 'n',
	'ò': 'o', 'ó': 'o', 'ô': 'o', 'õ': 'o', 'ö': 'o', 'ō': 'o', 'ø': 'o',
	'ù': 'u', 'ú': 'u', 'û': 'u', 'ü': 'u', 'ū': 'u',
	'ý': 'y', 'ÿ': 'y',
	'ß': 's',
	'ž': 'z', 'ź': 'z', 'ż': 'z',
	'š': 's', 'ś': 's',
	'ł': 'l',
	'đ': 'd',
}
