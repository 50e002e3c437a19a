package recipemd

import (
	"math/big"
	"regexp"
	"strings"
)

// vulgarFractions maps Unicode vulgar fraction glyphs (U+00BC..U+00BE and
// U+2150..U+215E) to their numeric values.
var vulgarFractions = map[rune]*big.Rat{
	'¼': big.NewRat(1, 4),
	'½': big.NewRat(1, 2),
	'¾': big.NewRat(3, 4),
	'⅐': big.NewRat(1, 7),
	'⅑': big.NewRat(1, 9),
	'⅒': big.NewRat(1, 10),
	'⅓': big.NewRat(1, 3),
	'⅔': big.NewRat(2, 3),
	'⅕': big.NewRat(1, 5),
	'⅖': big.NewRat(2, 5),
	'⅗': big.NewRat(3, 5),
	'⅘': big.NewRat(4, 5),
	'⅙': big.NewRat(1, 6),
	'⅚': big.NewRat(5, 6),
	'⅛': big.NewRat(1, 8),
	'⅜': big.NewRat(3, 8),
	'⅝': big.NewRat(5, 8),
	'⅞': big.NewRat(7, 8),
}

const vulgarClass = `[\x{00BC}-\x{00BE}\x{2150}-\x{215E}]`

// valueFormats are tried in order against the start of an amount string. The
// first group of every pattern is the optional sign.
var valueFormats = []struct {
	re    *regexp.Regexp
	value func(m []string) (*big.Rat, bool)
}{
	{
		// improper fraction (1 1/2)
		regexp.MustCompile(`^\s*(-?)\s*(\d+)\s+(\d+)\s*/\s*(\d+)`),
		func(m []string) (*big.Rat, bool) {
			whole, ok1 := ratFromDecimalString(m[2])
			frac, ok2 := ratFromFraction(m[3], m[4])
			if !ok1 || !ok2 {
				return nil, false
			}
			return whole.Add(whole, frac), true
		},
	},
	{
		// improper fraction with a vulgar fraction glyph (1 ½)
		regexp.MustCompile(`^\s*(-?)\s*(\d+)\s+(` + vulgarClass + `)`),
		func(m []string) (*big.Rat, bool) {
			whole, ok := ratFromDecimalString(m[2])
			if !ok {
				return nil, false
			}
			return whole.Add(whole, vulgarFractions[[]rune(m[3])[0]]), true
		},
	},
	{
		// proper fraction (5/6)
		regexp.MustCompile(`^\s*(-?)\s*(\d+)\s*/\s*(\d+)`),
		func(m []string) (*big.Rat, bool) {
			return ratFromFraction(m[2], m[3])
		},
	},
	{
		// bare vulgar fraction glyph (⅚)
		regexp.MustCompile(`^\s*(-?)\s*(` + vulgarClass + `)`),
		func(m []string) (*big.Rat, bool) {
			return new(big.Rat).Set(vulgarFractions[[]rune(m[2])[0]]), true
		},
	},
	{
		// decimal with point or comma separator (5.4 or 5,4)
		regexp.MustCompile(`^\s*(-?)\s*(\d*)[.,](\d+)`),
		func(m []string) (*big.Rat, bool) {
			whole := m[2]
			if whole == "" {
				whole = "0"
			}
			return ratFromDecimalString(whole + "." + m[3])
		},
	},
	{
		// bare integer (4)
		regexp.MustCompile(`^\s*(-?)\s*(\d+)`),
		func(m []string) (*big.Rat, bool) {
			return ratFromDecimalString(m[2])
		},
	},
}

// ParseAmount parses a numeric amount with an optional unit from the start of
// text. When the text carries no numeric prefix at all it is not an amount
// and (nil, nil) is returned; callers that require an amount use
// parseRequiredAmount so a bare unit surfaces as ErrMalformedAmount.
func ParseAmount(text string) (*Amount, error) {
	for _, format := range valueFormats {
		m := format.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		factor, ok := format.value(m)
		if !ok {
			return nil, &MalformedAmountError{Input: text}
		}
		if m[1] == "-" {
			factor.Neg(factor)
		}
		unit := strings.TrimSpace(text[len(m[0]):])
		return &Amount{Factor: factor, Unit: unit}, nil
	}
	return nil, nil
}

// parseRequiredAmount parses text that occupies an amount position, where a
// unit without a numeric value is malformed.
func parseRequiredAmount(text string, line int) (*Amount, error) {
	amount, err := ParseAmount(text)
	if err != nil {
		if malformed, ok := err.(*MalformedAmountError); ok && malformed.Line == 0 {
			malformed.Line = line
		}
		return nil, err
	}
	if amount == nil && strings.TrimSpace(text) != "" {
		return nil, &MalformedAmountError{Input: text, Line: line}
	}
	return amount, nil
}

// SplitAmountList splits a comma separated list of amounts or tags. A comma
// acts as a decimal separator, not a list separator, exactly when the
// characters on both sides are ASCII digits.
func SplitAmountList(text string) []string {
	var parts []string
	runes := []rune(text)
	start := 0
	for i, r := range runes {
		if r != ',' {
			continue
		}
		if i > 0 && i+1 < len(runes) && isASCIIDigit(runes[i-1]) && isASCIIDigit(runes[i+1]) {
			continue
		}
		parts = append(parts, string(runes[start:i]))
		start = i + 1
	}
	parts = append(parts, string(runes[start:]))
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func isASCIIDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func ratFromDecimalString(s string) (*big.Rat, bool) {
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		return nil, false
	}
	return r, true
}

func ratFromFraction(num, den string) (*big.Rat, bool) {
	n, ok := new(big.Rat).SetString(num)
	if !ok {
		return nil, false
	}
	d, ok := new(big.Rat).SetString(den)
	if !ok || d.Sign() == 0 {
		return nil, false
	}
	return n.Quo(n, d), true
}

// formatFactor renders a rational in canonical text form. Terminating
// decimals render exactly; non-terminating values fall back to "a/b" fraction
// notation so the value still round-trips through the amount grammar. When
// rounding is set the value renders as a decimal with at most that many
// places, trailing zeros stripped.
func formatFactor(r *big.Rat, rounding *int) string {
	if rounding != nil {
		return trimTrailingZeros(r.FloatString(*rounding))
	}
	if r.IsInt() {
		return r.Num().String()
	}
	if digits, ok := terminatingDigits(r); ok {
		return trimTrailingZeros(r.FloatString(digits))
	}
	return r.RatString()
}

// terminatingDigits reports how many decimal places are needed to render r
// exactly, when its reduced denominator has only factors of two and five.
func terminatingDigits(r *big.Rat) (int, bool) {
	den := new(big.Int).Set(r.Denom())
	two := big.NewInt(2)
	five := big.NewInt(5)
	one := big.NewInt(1)
	rem := new(big.Int)
	twos, fives := 0, 0
	for {
		q, m := new(big.Int).QuoRem(den, two, rem)
		if m.Sign() != 0 {
			break
		}
		den = q
		twos++
	}
	for {
		q, m := new(big.Int).QuoRem(den, five, rem)
		if m.Sign() != 0 {
			break
		}
		den = q
		fives++
	}
	if den.Cmp(one) != 0 {
		return 0, false
	}
	digits := twos
	if fives > digits {
		digits = fives
	}
	return digits, true
}

func trimTrailingZeros(s string) string {
	if !strings.Contains(s, ".") {
		return s
	}
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}
