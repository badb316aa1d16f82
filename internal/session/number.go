package session

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// parseNumber reads a decimal number the way the shop's answers are written:
// surrounding space is ignored, single underscores may group digits, and
// values too large for a float64 become ±Inf. Hexadecimal floats are not
// accepted.
func parseNumber(text string) (float64, error) {
	text = strings.TrimSpace(text)

	digits := strings.TrimLeft(text, "+-")
	if len(digits) > 1 && digits[0] == '0' && (digits[1] == 'x' || digits[1] == 'X') {
		return 0, fmt.Errorf("%w: %q: hexadecimal", ErrInvalidNumber, text)
	}

	clean, err := stripDigitSeparators(text)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %w", ErrInvalidNumber, text, err)
	}

	v, err := strconv.ParseFloat(clean, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, fmt.Errorf("%w: %q: %w", ErrInvalidNumber, text, err)
	}
	return v, nil
}

// stripDigitSeparators removes underscores that sit between two digits.
func stripDigitSeparators(text string) (string, error) {
	if !strings.Contains(text, "_") {
		return text, nil
	}

	var b strings.Builder
	for i := 0; i < len(text); i++ {
		if text[i] != '_' {
			b.WriteByte(text[i])
			continue
		}
		if i == 0 || i == len(text)-1 || !isDigit(text[i-1]) || !isDigit(text[i+1]) {
			return "", errors.New("misplaced underscore")
		}
	}
	return b.String(), nil
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
