package dto

// ErrorResponse cuerpo estándar de error de la API.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Pagination parámetros comunes de listado.
type Pagination struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}
