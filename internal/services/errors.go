package services

import (
	"errors"
	"net/http"
	"sort"
	"strings"
)

// GateKind classifies why a request was stopped before reaching persistence.
type GateKind int

const (
	KindMethodNotAllowed GateKind = iota + 1
	KindUnauthenticated
	KindForbidden
	KindUnknownAction
	KindInvalidInput
)

// User-facing messages.
const (
	MsgMethodNotAllowed = "Método não permitido"
	MsgUnauthenticated  = "Não autenticado"
	MsgAdminOnly        = "Acesso negado. Apenas empresas podem acessar o painel admin."
	MsgEmpresaOnly      = "Somente empresas."
	MsgInvalidToken     = "Token de segurança inválido"
	MsgUnknownAction    = "Ação desconhecida"
	MsgInvalidID        = "ID inválido"
	MsgInvalidData      = "Dados inválidos"
	MsgInvalidEmail     = "Informe um e-mail válido."
	MsgInvalidRole      = "Perfil inválido."
	MsgUnavailable      = "Banco de dados indisponível"
	MsgWriteFailed      = "Falha ao gravar no banco de dados"
	MsgPlaceNotFound    = "Local não encontrado."
)

var (
	ErrInvalidEmail  = errors.New("invalid email")
	ErrPlaceNotFound = errors.New("place not found")
)

// GateError is a security, protocol or payload failure. It always terminates the request.
type GateError struct {
	Kind    GateKind
	Message string
}

func (e *GateError) Error() string { return e.Message }

// Status is the HTTP status code the failure is reported with.
func (e *GateError) Status() int {
	switch e.Kind {
	case KindMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusBadRequest
	}
}

func gateError(kind GateKind, msg string) error {
	return &GateError{Kind: kind, Message: msg}
}

// ValidationErrors maps each invalid field to its message.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return "invalid fields: " + strings.Join(fields, ", ")
}

// Result is the envelope returned after a persistence call.
type Result struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// OK reports whether the persistence call succeeded.
func (r Result) OK() bool { return r.Status == "ok" }
