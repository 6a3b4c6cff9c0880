// Package coerce приводит сырые JSON-значения к числам так же снисходительно,
// как это делали браузерные клиенты: "3abc" -> 3, "abc" -> 0.
package coerce

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Числа хранятся без раскрытия экспоненты, поэтому "1e2000000000" разбирается мгновенно,
// а String или Truncate на таком значении выделят гигабайты. Все, что выходит за эти
// границы, до раскрытия не доходит.
const (
	maxIntegerDigits  = 28
	maxFractionDigits = 28
)

// InRange сообщает, укладывается ли значение в maxIntegerDigits целых
// и maxFractionDigits дробных разрядов.
func InRange(d decimal.Decimal) bool {
	if d.IsZero() {
		return true
	}
	top := magnitude(d)
	return top <= maxIntegerDigits && top > -maxFractionDigits
}

// magnitude - позиция старшего разряда: 123 -> 3, 0.05 -> -1.
func magnitude(d decimal.Decimal) int {
	return d.NumDigits() + int(d.Exponent())
}

func decode(raw json.RawMessage) any {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()
	var value any
	if err := decoder.Decode(&value); err != nil {
		return nil
	}
	return value
}

// Identifier принимает непустую строку или ненулевое число и возвращает его текстом.
func Identifier(raw json.RawMessage) (string, bool) {
	switch v := decode(raw).(type) {
	case string:
		return v, v != ""
	case json.Number:
		n, err := decimal.NewFromString(v.String())
		if err != nil || n.IsZero() {
			return "", false
		}
		return v.String(), true
	default:
		return "", false
	}
}

// String возвращает строковое значение или "" для любого другого JSON-типа.
func String(raw json.RawMessage) string {
	if name, ok := decode(raw).(string); ok {
		return name
	}
	return ""
}

// Int приводит значение к целому: число обрезается, строка разбирается по ведущему
// целому префиксу, остальное дает 0. false возвращается только при переполнении int64.
func Int(raw json.RawMessage) (int64, bool) {
	var digits string
	switch v := decode(raw).(type) {
	case json.Number:
		n, err := decimal.NewFromString(v.String())
		if err != nil {
			return 0, true
		}
		switch {
		case n.IsZero() || magnitude(n) <= 0:
			return 0, true
		case magnitude(n) > 19:
			return 0, false
		}
		digits = n.Truncate(0).String()
	case string:
		digits = integerPrefix(v)
	default:
		return 0, true
	}
	if digits == "" || digits == "-" || digits == "+" {
		return 0, true
	}

	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Decimal приводит значение к десятичному: число берется как есть, строка разбирается
// по ведущему десятичному префиксу, остальное дает 0. Значения вне InRange
// считаются нечисловыми, как "Infinity", и тоже дают 0.
func Decimal(raw json.RawMessage) decimal.Decimal {
	var text string
	switch v := decode(raw).(type) {
	case json.Number:
		text = v.String()
	case string:
		text = decimalPrefix(v)
	default:
		return decimal.Zero
	}

	price, err := decimal.NewFromString(text)
	if err != nil || !InRange(price) {
		return decimal.Zero
	}
	return price
}

// integerPrefix возвращает знак и ведущие цифры: "  3abc" -> "3", "-2x" -> "-2".
func integerPrefix(s string) string {
	s = strings.TrimLeft(s, " \t\n\r\v\f")
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	start := end
	for end < len(s) && isDigit(s[end]) {
		end++
	}
	if end == start {
		return ""
	}
	return s[:end]
}

// decimalPrefix возвращает самый длинный префикс вида [+-]digits[.digits][e[+-]digits].
func decimalPrefix(s string) string {
	s = strings.TrimLeft(s, " \t\n\r\v\f")
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	intStart := end
	for end < len(s) && isDigit(s[end]) {
		end++
	}
	digits := end - intStart
	if end < len(s) && s[end] == '.' {
		fracStart := end + 1
		fracEnd := fracStart
		for fracEnd < len(s) && isDigit(s[fracEnd]) {
			fracEnd++
		}
		if fracEnd > fracStart {
			digits += fracEnd - fracStart
			end = fracEnd
		}
	}
	if digits == 0 {
		return ""
	}

	if end < len(s) && (s[end] == 'e' || s[end] == 'E') {
		expEnd := end + 1
		if expEnd < len(s) && (s[expEnd] == '+' || s[expEnd] == '-') {
			expEnd++
		}
		expStart := expEnd
		for expEnd < len(s) && isDigit(s[expEnd]) {
			expEnd++
		}
		if expEnd > expStart {
			end = expEnd
		}
	}

	prefix := strings.TrimPrefix(s[:end], "+")
	// decimal не разбирает ".5" без целой части.
	if strings.HasPrefix(prefix, ".") {
		prefix = "0" + prefix
	} else if strings.HasPrefix(prefix, "-.") {
		prefix = "-0" + prefix[1:]
	}
	return prefix
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
