package format

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	seqPadRe = regexp.MustCompile(`\{SEQ(\d+)\}`)
)

// FormatNumber renders a document number template for a prefix, issue time
// and sequence.
//
// Tokens: {PREFIX} {YYYY} {YY} {MM} {DD} {SEQ} {SEQn}. {SEQn} pads to at
// least n digits; larger sequences are printed in full.
func FormatNumber(
	template string,
	prefix string,
	issuedAt time.Time,
	seq int64,
) (string, error) {

	if template == "" {
		return "", fmt.Errorf("document number template is empty")
	}

	if seq <= 0 {
		return "", fmt.Errorf("invalid document sequence: %d", seq)
	}

	if strings.ContainsAny(prefix, "{}") {
		return "", fmt.Errorf("invalid document prefix: %q", prefix)
	}

	out := template

	out = strings.ReplaceAll(out, "{PREFIX}", prefix)

	// Date tokens
	out = strings.ReplaceAll(out, "{YYYY}", issuedAt.Format("2006"))
	out = strings.ReplaceAll(out, "{YY}", issuedAt.Format("06"))
	out = strings.ReplaceAll(out, "{MM}", issuedAt.Format("01"))
	out = strings.ReplaceAll(out, "{DD}", issuedAt.Format("02"))

	out = strings.ReplaceAll(out, "{SEQ}", strconv.FormatInt(seq, 10))

	out = seqPadRe.ReplaceAllStringFunc(out, func(m string) string {
		match := seqPadRe.FindStringSubmatch(m)
		if len(match) != 2 {
			return m
		}

		width, err := strconv.Atoi(match[1])
		if err != nil || width <= 0 {
			return m
		}

		return fmt.Sprintf("%0*d", width, seq)
	})

	if strings.Contains(out, "{") || strings.Contains(out, "}") {
		return "", fmt.Errorf("unresolved token in document number format: %s", out)
	}

	return out, nil
}

var fallbackRe = regexp.MustCompile(`^.+-\d{10,}$`)

// FormatFallback renders the non-sequential PREFIX-<epoch millis> form.
func FormatFallback(prefix string, at time.Time) string {
	return fmt.Sprintf("%s-%d", prefix, at.UnixMilli())
}

// IsFallback reports whether number was minted in the non-sequential form.
func IsFallback(number string) bool {
	return fallbackRe.MatchString(number)
}
