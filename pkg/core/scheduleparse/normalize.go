package scheduleparse

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// line is one retained, normalized line of recognized text
type line struct {
	// index counts retained lines only; it drives the pairing lookahead
	index int
	// number is the 1-based line number in the raw text
	number int
	raw    string
	text   string
}

var (
	dashVariants    = strings.NewReplacer("–", "-", "—", "-", "−", "-", "‐", "-", "‑", "-", "‒", "-", "―", "-", "﹣", "-")
	horizontalSpace = regexp.MustCompile(`[\t\f\v\p{Zs}]+`)

	// 11h00, 9H30
	hourLetterTime = regexp.MustCompile(`(\d{1,2})[hH](\d{2})`)

	// time-shaped tokens where OCR may have read 0 as O and 1 as I, l or |
	ocrTime = regexp.MustCompile(`[0-9OoIl|]{1,2}:[0-9OoIl|]{2}`)

	connectorRange = regexp.MustCompile(`(?i)(\d{1,2}:\d{2})\s+(?:a|to|hasta|till|until)\s+(\d{1,2}:\d{2})`)
	spacedRange    = regexp.MustCompile(`(\d{1,2}:\d{2})\s*-\s*(\d{1,2}:\d{2})`)
	trailingDash   = regexp.MustCompile(`(\d{1,2}:\d{2})\s*-\s*$`)

	ocrDigits = strings.NewReplacer("O", "0", "o", "0", "I", "1", "l", "1", "|", "1")
)

// normalizeText splits recognized text into retained, normalized lines
func normalizeText(text string) []line {
	text = strings.ToValidUTF8(text, "")
	text = width.Fold.String(text)
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	var lines []line
	for i, raw := range strings.Split(text, "\n") {
		normalized := normalizeLine(raw)
		if normalized == "" {
			continue
		}
		lines = append(lines, line{
			index:  len(lines),
			number: i + 1,
			raw:    strings.TrimSpace(raw),
			text:   normalized,
		})
	}
	return lines
}

// normalizeLine rewrites one line into the canonical shapes the tokenizer expects
func normalizeLine(s string) string {
	s = dashVariants.Replace(s)
	s = horizontalSpace.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	s = replaceBounded(hourLetterTime, s, func(m string) (string, bool) {
		sub := hourLetterTime.FindStringSubmatch(m)
		return sub[1] + ":" + sub[2], true
	})

	s = replaceBounded(ocrTime, s, func(m string) (string, bool) {
		if !strings.ContainsAny(m, "0123456789") {
			return m, false
		}
		return ocrDigits.Replace(m), true
	})

	s = connectorRange.ReplaceAllString(s, "$1-$2")
	s = spacedRange.ReplaceAllString(s, "$1-$2")
	s = trailingDash.ReplaceAllString(s, "$1-")
	return s
}

// replaceBounded rewrites matches of re that are not glued to a letter or digit
// on either side. Boundaries are checked by hand so that adjacent matches such
// as "11h00-17h00" are both seen.
func replaceBounded(re *regexp.Regexp, s string, rewrite func(string) (string, bool)) string {
	matches := re.FindAllStringIndex(s, -1)
	if len(matches) == 0 {
		return s
	}

	var b strings.Builder
	last := 0
	for _, m := range matches {
		if !isBoundary(s, m[0]-1) || !isBoundary(s, m[1]) {
			continue
		}
		replacement, ok := rewrite(s[m[0]:m[1]])
		if !ok {
			continue
		}
		b.WriteString(s[last:m[0]])
		b.WriteString(replacement)
		last = m[1]
	}
	b.WriteString(s[last:])
	return b.String()
}

// isBoundary reports whether the byte at i is outside s or not alphanumeric
func isBoundary(s string, i int) bool {
	if i < 0 || i >= len(s) {
		return true
	}
	c := s[i]
	return !(c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z')
}

// foldKeywords lowercases s and strips diacritics so "Día LIBRE" matches "dia libre".
// Transformers carry state, so each call builds its own chain.
func foldKeywords(s string) string {
	folder := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(folder, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(folded)
}
