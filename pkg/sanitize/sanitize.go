// Package sanitize очищает свободный текст (описания, заметки, имена) от разметки.
package sanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// maxPasses ограничивает число кругов для многократно экранированного ввода.
const maxPasses = 5

// TextSanitizer удаляет все HTML-теги и возвращает обычный текст.
// Значения хранятся как текст, поэтому сущности раскрываются, но результат
// очищается повторно, пока не перестанет меняться: "&lt;script&gt;" не превращается в тег.
type TextSanitizer struct {
	policy *bluemonday.Policy
}

func NewTextSanitizer() *TextSanitizer {
	return &TextSanitizer{policy: bluemonday.StrictPolicy()}
}

func (s *TextSanitizer) Text(raw string) string {
	if raw == "" {
		return raw
	}
	current := raw
	for i := 0; i < maxPasses; i++ {
		next := html.UnescapeString(s.policy.Sanitize(current))
		if next == current {
			return strings.TrimSpace(next)
		}
		current = next
	}
	// Не сошлось: отдаём экранированный вариант, он безопасен как HTML.
	return strings.TrimSpace(s.policy.Sanitize(current))
}

// Ptr - то же для необязательного поля.
func (s *TextSanitizer) Ptr(raw *string) *string {
	if raw == nil {
		return nil
	}
	clean := s.Text(*raw)
	return &clean
}
