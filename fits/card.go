package fits

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/robert-malhotra/go-fits/internal/block"
)

// Pseudo-keys with dedicated handling in the header card store.
const (
	KeyComment = "COMMENT"
	KeyHistory = "HISTORY"

	keyEnd = "END"
)

const (
	valueFieldWidth  = 20 // fixed width of the value field in a card image
	maxStringContent = 68 // string content cap before quoting
	maxCommentaryLen = 72 // text cap for COMMENT/HISTORY cards
)

// Card is one header record: a keyword, an optional value and an optional
// comment. Value is one of int, float64, string, bool, or nil for an absent
// value. COMMENT and HISTORY cards carry only Comment text.
type Card struct {
	Key     string
	Value   any
	Comment string
}

// IsCommentary reports whether the card is a COMMENT or HISTORY card.
func (c Card) IsCommentary() bool {
	return c.Key == KeyComment || c.Key == KeyHistory
}

// Record renders the card as one 80-character card image.
func (c Card) Record() string {
	if c.IsCommentary() {
		text := c.Comment
		if len(text) > maxCommentaryLen {
			text = text[:maxCommentaryLen]
		}
		return padRecord(c.Key + " " + text)
	}

	s := fmt.Sprintf("%-8s= %s", c.Key, formatValue(c.Value))
	if c.Comment != "" {
		s += " / " + c.Comment
	}
	return padRecord(s)
}

// padRecord space-pads or truncates a string to exactly one card image.
func padRecord(s string) string {
	if len(s) > block.CardSize {
		return s[:block.CardSize]
	}
	return s + strings.Repeat(" ", block.CardSize-len(s))
}

// endRecord is the terminal card image appended during serialization.
func endRecord() string {
	return padRecord(keyEnd)
}

// blankRecord is the all-space card image used to fill the last header block.
func blankRecord() string {
	return strings.Repeat(" ", block.CardSize)
}

// formatValue renders a card value into the fixed 20-character value field.
// Integers and booleans are right-justified, strings left-justified; absent
// values render as spaces. Non-integer numbers use 6-digit exponential
// notation.
func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return strings.Repeat(" ", valueFieldWidth)
	case int:
		return fmt.Sprintf("%*d", valueFieldWidth, x)
	case int64:
		return fmt.Sprintf("%*d", valueFieldWidth, x)
	case float64:
		return fmt.Sprintf("%*.6E", valueFieldWidth, x)
	case bool:
		if x {
			return fmt.Sprintf("%*s", valueFieldWidth, "T")
		}
		return fmt.Sprintf("%*s", valueFieldWidth, "F")
	case string:
		return fmt.Sprintf("%-*s", valueFieldWidth, quoteString(x))
	default:
		// Unknown value types render like strings of their text form.
		return fmt.Sprintf("%-*s", valueFieldWidth, quoteString(fmt.Sprint(x)))
	}
}

// quoteString wraps a string value in single quotes, doubling embedded
// quotes. Content is capped at 68 characters before quoting.
func quoteString(s string) string {
	if len(s) > maxStringContent {
		s = s[:maxStringContent]
	}
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// normalizeKey applies the keyword conventions: trimmed, uppercase, at most
// eight significant characters.
func normalizeKey(key string) string {
	key = strings.ToUpper(strings.TrimSpace(key))
	if len(key) > 8 {
		key = key[:8]
	}
	return key
}

// parseValueText interprets the raw text of a card value field. Empty text
// is an absent value; quoted text is a string taken up to the last quote
// with doubled quotes unescaped; T/F are booleans; everything else parses
// as a number, substituting a Fortran D exponent marker with E. Text that
// fails numeric parsing is kept verbatim as a string.
func parseValueText(field string) (value any, comment string) {
	trimmed := strings.TrimSpace(field)
	if trimmed == "" {
		return nil, ""
	}

	if trimmed[0] == '\'' {
		return parseQuoted(field)
	}

	text := field
	if j := strings.IndexByte(text, '/'); j >= 0 {
		comment = strings.TrimSpace(text[j+1:])
		text = text[:j]
	}
	text = strings.TrimSpace(text)

	switch text {
	case "":
		return nil, comment
	case "T":
		return true, comment
	case "F":
		return false, comment
	}

	numeric := strings.Replace(text, "D", "E", 1)
	if strings.ContainsAny(numeric, ".eE") {
		if x, err := strconv.ParseFloat(numeric, 64); err == nil {
			return x, comment
		}
	} else if x, err := strconv.ParseInt(numeric, 10, 64); err == nil {
		return int(x), comment
	}

	// Not a recognizable number; keep the raw text.
	return text, comment
}

// parseQuoted extracts a quoted string value, taking content up to the last
// quote in the field and unescaping doubled quotes. A comment may follow
// the closing quote after a slash.
func parseQuoted(field string) (value any, comment string) {
	first := strings.IndexByte(field, '\'')
	last := strings.LastIndexByte(field, '\'')
	if last <= first {
		// Unterminated string; fall back to the raw text.
		return strings.TrimSpace(field), ""
	}

	content := field[first+1 : last]
	content = strings.ReplaceAll(content, "''", "'")
	value = strings.TrimRight(content, " ")

	rest := field[last+1:]
	if j := strings.IndexByte(rest, '/'); j >= 0 {
		comment = strings.TrimSpace(rest[j+1:])
	}
	return value, comment
}
