package dto

// ErrorResponse cuerpo de error HTTP.
// Details solo se rellena en errores no clasificados (500) para diagnóstico.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}
