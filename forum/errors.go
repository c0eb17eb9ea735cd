package forum

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// APIError is the uniform error shape handed to the presentation layer.
type APIError struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Category string `json:"category"` // auth, validation, content, system
	Action   string `json:"action,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

const (
	ErrCodeQuestionNotFound = "QUESTION_NOT_FOUND"
	ErrCodeCommentNotFound  = "COMMENT_NOT_FOUND"
	ErrCodeInvalidFilter    = "INVALID_FILTER"
	ErrCodeValidation       = "VALIDATION_FAILED"
	ErrCodeUnauthenticated  = "UNAUTHENTICATED"
)

func NewQuestionNotFoundError(id int64) *APIError {
	return &APIError{
		Code:     ErrCodeQuestionNotFound,
		Message:  fmt.Sprintf("pergunta não encontrada: %d", id),
		Category: "content",
		Action:   "Volte para a lista de perguntas.",
	}
}

func NewCommentNotFoundError(questionID, commentID int64) *APIError {
	return &APIError{
		Code:     ErrCodeCommentNotFound,
		Message:  fmt.Sprintf("resposta %d não encontrada na pergunta %d", commentID, questionID),
		Category: "content",
	}
}

func NewInvalidFilterError(field, value string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidFilter,
		Message:  fmt.Sprintf("filtro inválido %s=%q", field, value),
		Category: "validation",
		Action:   "Use status all|resolved|unresolved e sort recent|likes|answers.",
	}
}

func NewUnauthenticatedError() *APIError {
	return &APIError{
		Code:     ErrCodeUnauthenticated,
		Message:  "é preciso entrar para continuar",
		Category: "auth",
		Action:   "Faça login e tente novamente.",
	}
}

// IsNotFound reports whether err is a question or comment lookup failure.
func IsNotFound(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Code == ErrCodeQuestionNotFound || apiErr.Code == ErrCodeCommentNotFound
}

// ValidationError carries one message per rejected field. Nothing is saved when it is returned.
type ValidationError struct {
	Fields map[string]string `json:"fields"`
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
