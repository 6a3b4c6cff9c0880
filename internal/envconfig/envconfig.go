// Package envconfig разбирает переменные окружения сервисов: некорректные значения
// не останавливают запуск, а заменяются значениями по умолчанию с предупреждением.
package envconfig

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Lookup совместим с os.LookupEnv; в тестах подменяется картой.
type Lookup func(key string) (string, bool)

// MapLookup строит Lookup поверх фиксированного набора значений.
func MapLookup(values map[string]string) Lookup {
	return func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	}
}

// WithFallback подставляет fallback() для key, если переменная не задана или пуста.
// Ошибка fallback оставляет ключ незаданным.
func WithFallback(lookup Lookup, key string, fallback func() (string, error)) Lookup {
	return func(k string) (string, bool) {
		v, ok := lookup(k)
		if k != key || (ok && strings.TrimSpace(v) != "") {
			return v, ok
		}
		fv, err := fallback()
		if err != nil || fv == "" {
			return v, ok
		}
		return fv, true
	}
}

// Reader читает значения и копит предупреждения о проигнорированных настройках.
type Reader struct {
	lookup   Lookup
	warnings []string
}

// NewReader создаёт Reader поверх lookup.
func NewReader(lookup Lookup) *Reader {
	return &Reader{lookup: lookup}
}

// Warnings возвращает накопленные предупреждения.
func (r *Reader) Warnings() []string {
	return r.warnings
}

func (r *Reader) value(key string) (string, bool) {
	raw, ok := r.lookup(key)
	if !ok {
		return "", false
	}
	raw = strings.TrimSpace(raw)
	return raw, raw != ""
}

func (r *Reader) warn(key, raw string, err error) {
	r.warnings = append(r.warnings, fmt.Sprintf("invalid %s=%q: %v, using default", key, raw, err))
}

// String перезаписывает dst непустым значением.
func (r *Reader) String(key string, dst *string) {
	if raw, ok := r.value(key); ok {
		*dst = raw
	}
}

// List разбирает список через запятую, пустые элементы пропускаются.
func (r *Reader) List(key string, dst *[]string) {
	raw, ok := r.value(key)
	if !ok {
		return
	}
	var items []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			items = append(items, part)
		}
	}
	*dst = items
}

// Port превращает номер порта в адрес прослушивания вида ":3003".
func (r *Reader) Port(key string, dst *string) {
	raw, ok := r.value(key)
	if !ok {
		return
	}
	port, err := ParseInt(raw, validPort, "must be in 1..65535")
	if err != nil {
		r.warn(key, raw, err)
		return
	}
	*dst = ":" + strconv.Itoa(port)
}

func validPort(v int) bool { return v > 0 && v <= 65535 }

// Bool разбирает булево значение.
func (r *Reader) Bool(key string, dst *bool) {
	raw, ok := r.value(key)
	if !ok {
		return
	}
	v, err := ParseBool(raw)
	if err != nil {
		r.warn(key, raw, err)
		return
	}
	*dst = v
}

// Int разбирает целое и проверяет его validator'ом.
func (r *Reader) Int(key string, dst *int, validator func(int) bool, rule string) {
	raw, ok := r.value(key)
	if !ok {
		return
	}
	v, err := ParseInt(raw, validator, rule)
	if err != nil {
		r.warn(key, raw, err)
		return
	}
	*dst = v
}

// Duration разбирает длительность в формате time.ParseDuration.
func (r *Reader) Duration(key string, dst *time.Duration, validator func(time.Duration) bool, rule string) {
	raw, ok := r.value(key)
	if !ok {
		return
	}
	v, err := ParseDuration(raw, validator, rule)
	if err != nil {
		r.warn(key, raw, err)
		return
	}
	*dst = v
}

// OneOf принимает только перечисленные значения (без учёта регистра).
func (r *Reader) OneOf(key string, dst *string, allowed ...string) {
	raw, ok := r.value(key)
	if !ok {
		return
	}
	normalized := strings.ToLower(raw)
	for _, candidate := range allowed {
		if normalized == candidate {
			*dst = candidate
			return
		}
	}
	r.warn(key, raw, fmt.Errorf("must be one of %s", strings.Join(allowed, ", ")))
}

// ParseBool понимает true/false, 1/0, yes/no, on/off.
func ParseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "y", "on":
		return true, nil
	case "0", "false", "no", "n", "off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean value %q", s)
	}
}

// ParseInt разбирает целое; validator == nil означает отсутствие ограничений.
func ParseInt(s string, validator func(int) bool, rule string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid integer value %q", s)
	}
	if validator != nil && !validator(v) {
		return 0, fmt.Errorf("value %d %s", v, rule)
	}
	return v, nil
}

// ParseDuration разбирает длительность; validator == nil означает отсутствие ограничений.
func ParseDuration(s string, validator func(time.Duration) bool, rule string) (time.Duration, error) {
	v, err := time.ParseDuration(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid duration value %q", s)
	}
	if validator != nil && !validator(v) {
		return 0, fmt.Errorf("value %s %s", v, rule)
	}
	return v, nil
}

// Positive и NonNegative - типовые validator'ы.
func Positive(v int) bool { return v > 0 }

func NonNegative(v int) bool { return v >= 0 }

// PositiveDuration требует длительность больше нуля.
func PositiveDuration(v time.Duration) bool { return v > 0 }
