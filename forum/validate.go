package forum

import (
	"strings"
	"unicode/utf8"
)

const (
	MinTitleLength   = 10
	MinContentLength = 20
)

// ValidateDraft checks a question submission field by field and returns
// a *ValidationError listing every failure, or nil.
func ValidateDraft(d Draft) error {
	fields := make(map[string]string)

	switch {
	case strings.TrimSpace(d.Title) == "":
		fields["title"] = "Título é obrigatório"
	case utf8.RuneCountInString(d.Title) < MinTitleLength:
		fields["title"] = "Título deve ter pelo menos 10 caracteres"
	}

	switch {
	case strings.TrimSpace(d.Content) == "":
		fields["content"] = "Descrição é obrigatória"
	case utf8.RuneCountInString(d.Content) < MinContentLength:
		fields["content"] = "Descrição deve ter pelo menos 20 caracteres"
	}

	tags := 0
	for _, t := range d.Tags {
		if NormalizeTag(t) != "" {
			tags++
		}
	}
	if tags == 0 {
		fields["tags"] = "Adicione pelo menos uma tag"
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func validateComment(content string) error {
	if strings.TrimSpace(content) == "" {
		return &ValidationError{Fields: map[string]string{"content": "Resposta não pode ficar vazia"}}
	}
	return nil
}
