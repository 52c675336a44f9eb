package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrInvalidPeriodToken возвращается при токене вне словаря периодов
	ErrInvalidPeriodToken = errors.New("domain: invalid period token")

	// ErrInvalidPeriodExpression возвращается при некорректном выражении периодов
	ErrInvalidPeriodExpression = errors.New("domain: invalid period expression")
)

// IsValidPeriodToken проверяет, что токен входит в словарь периодов
func IsValidPeriodToken(token string) bool {
	_, ok := periodIndex[token]
	return ok
}

// PeriodIndex возвращает позицию токена в фиксированном порядке периодов
func PeriodIndex(token string) (int, bool) {
	i, ok := periodIndex[token]
	return i, ok
}

// PeriodExpressionKind вид выражения периодов
type PeriodExpressionKind int

const (
	// PeriodSingle одиночный токен: "3"
	PeriodSingle PeriodExpressionKind = iota
	// PeriodList список токенов: "1,3,lunch"
	PeriodList
	// PeriodRange непрерывный диапазон по порядку периодов: "2-5"
	PeriodRange
)

// PeriodExpression размеченное объединение трех форм выражения периодов.
// Нормализуется в упорядоченный набор атомарных токенов один раз на границе;
// вся остальная логика работает только с нормализованным набором.
type PeriodExpression struct {
	Kind   PeriodExpressionKind
	Single string   // для PeriodSingle
	Tokens []string // для PeriodList
	From   string   // для PeriodRange
	To     string   // для PeriodRange
}

// ParsePeriodExpression разбирает строковое выражение периодов.
// Поддерживаются формы "3", "1,3,lunch" и "2-5".
func ParsePeriodExpression(expr string) (PeriodExpression, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return PeriodExpression{}, fmt.Errorf("%w: empty expression", ErrInvalidPeriodExpression)
	}

	switch {
	case strings.Contains(expr, ","):
		parts := strings.Split(expr, ",")
		tokens := make([]string, 0, len(parts))
		for _, p := range parts {
			token := strings.TrimSpace(p)
			if !IsValidPeriodToken(token) {
				return PeriodExpression{}, fmt.Errorf("%w: %q", ErrInvalidPeriodToken, token)
			}
			tokens = append(tokens, token)
		}
		return PeriodExpression{Kind: PeriodList, Tokens: tokens}, nil

	case strings.Contains(expr, "-"):
		parts := strings.SplitN(expr, "-", 2)
		from := strings.TrimSpace(parts[0])
		to := strings.TrimSpace(parts[1])
		if !IsValidPeriodToken(from) {
			return PeriodExpression{}, fmt.Errorf("%w: %q", ErrInvalidPeriodToken, from)
		}
		if !IsValidPeriodToken(to) {
			return PeriodExpression{}, fmt.Errorf("%w: %q", ErrInvalidPeriodToken, to)
		}
		fromIdx, _ := PeriodIndex(from)
		toIdx, _ := PeriodIndex(to)
		if fromIdx > toIdx {
			return PeriodExpression{}, fmt.Errorf("%w: range %q-%q is reversed", ErrInvalidPeriodExpression, from, to)
		}
		return PeriodExpression{Kind: PeriodRange, From: from, To: to}, nil

	default:
		if !IsValidPeriodToken(expr) {
			return PeriodExpression{}, fmt.Errorf("%w: %q", ErrInvalidPeriodToken, expr)
		}
		return PeriodExpression{Kind: PeriodSingle, Single: expr}, nil
	}
}

// Normalize приводит выражение к упорядоченному набору атомарных токенов
// без дубликатов. Порядок соответствует PeriodOrder.
func (e PeriodExpression) Normalize() ([]string, error) {
	switch e.Kind {
	case PeriodSingle:
		if !IsValidPeriodToken(e.Single) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidPeriodToken, e.Single)
		}
		return []string{e.Single}, nil

	case PeriodList:
		if len(e.Tokens) == 0 {
			return nil, fmt.Errorf("%w: empty token list", ErrInvalidPeriodExpression)
		}
		seen := make(map[string]bool, len(e.Tokens))
		tokens := make([]string, 0, len(e.Tokens))
		for _, token := range e.Tokens {
			if !IsValidPeriodToken(token) {
				return nil, fmt.Errorf("%w: %q", ErrInvalidPeriodToken, token)
			}
			if seen[token] {
				continue
			}
			seen[token] = true
			tokens = append(tokens, token)
		}
		SortPeriods(tokens)
		return tokens, nil

	case PeriodRange:
		fromIdx, ok := PeriodIndex(e.From)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrInvalidPeriodToken, e.From)
		}
		toIdx, ok := PeriodIndex(e.To)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrInvalidPeriodToken, e.To)
		}
		if fromIdx > toIdx {
			return nil, fmt.Errorf("%w: range %q-%q is reversed", ErrInvalidPeriodExpression, e.From, e.To)
		}
		tokens := make([]string, 0, toIdx-fromIdx+1)
		for i := fromIdx; i <= toIdx; i++ {
			tokens = append(tokens, PeriodOrder[i])
		}
		return tokens, nil

	default:
		return nil, fmt.Errorf("%w: unknown expression kind %d", ErrInvalidPeriodExpression, e.Kind)
	}
}

// NormalizePeriodExpression разбирает и нормализует выражение за один вызов
func NormalizePeriodExpression(expr string) ([]string, error) {
	parsed, err := ParsePeriodExpression(expr)
	if err != nil {
		return nil, err
	}
	return parsed.Normalize()
}

// SortPeriods сортирует токены по фиксированному порядку периодов
func SortPeriods(tokens []string) {
	sort.Slice(tokens, func(i, j int) bool {
		a, _ := periodIndex[tokens[i]]
		b, _ := periodIndex[tokens[j]]
		return a < b
	})
}

// ArePeriodsContiguous возвращает true, если упорядоченный набор токенов
// образует непрерывный диапазон по порядку периодов
func ArePeriodsContiguous(tokens []string) bool {
	if len(tokens) < 2 {
		return true
	}
	prev, ok := periodIndex[tokens[0]]
	if !ok {
		return false
	}
	for _, token := range tokens[1:] {
		idx, ok := periodIndex[token]
		if !ok || idx != prev+1 {
			return false
		}
		prev = idx
	}
	return true
}

// ValidatePeriods проверяет непустой набор токенов на принадлежность
// словарю и отсутствие дубликатов
func ValidatePeriods(tokens []string) error {
	if len(tokens) == 0 {
		return fmt.Errorf("%w: at least one period is required", ErrInvalidPeriodExpression)
	}
	seen := make(map[string]struct{}, len(tokens))
	for _, token := range tokens {
		if !IsValidPeriodToken(token) {
			return fmt.Errorf("%w: %q", ErrInvalidPeriodToken, token)
		}
		if _, ok := seen[token]; ok {
			return fmt.Errorf("%w: duplicate period %q", ErrInvalidPeriodExpression, token)
		}
		seen[token] = struct{}{}
	}
	return nil
}
