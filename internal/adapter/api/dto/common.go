package dto

// ErrorResponse representa a estrutura de resposta para erros
type ErrorResponse struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Details string      `json:"details,omitempty"`
	Fields  interface{} `json:"fields,omitempty"`
}

// SuccessResponse representa uma resposta genérica de sucesso
type SuccessResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// PageResponse é o envelope paginado usado pelas listagens de usuários
type PageResponse struct {
	Content       interface{} `json:"content"`
	TotalElements int         `json:"totalElements"`
	TotalPages    int         `json:"totalPages"`
	Page          int         `json:"page"`
	Size          int         `json:"size"`
}

// Pagination representa os parâmetros de paginação (page começa em 0)
type Pagination struct {
	Page int
	Size int
}

// Offset retorna o deslocamento correspondente à página
func (p Pagination) Offset() int {
	return p.Page * p.Size
}

// GetPagination retorna parâmetros de paginação com valores padrão
func GetPagination(page, size int) Pagination {
	if page < 0 {
		page = 0
	}

	if size <= 0 {
		size = 10
	} else if size > 100 {
		size = 100 // Limitar a 100 itens por página
	}

	return Pagination{Page: page, Size: size}
}

// NewPageResponse monta o envelope paginado
func NewPageResponse(content interface{}, total int, p Pagination) PageResponse {
	return PageResponse{
		Content:       content,
		TotalElements: total,
		TotalPages:    calculateTotalPages(total, p.Size),
		Page:          p.Page,
		Size:          p.Size,
	}
}

// NewErrorResponse cria uma nova resposta de erro
func NewErrorResponse(code int, message, details string) ErrorResponse {
	return ErrorResponse{
		Code:    code,
		Message: message,
		Details: details,
	}
}

// NewSuccessResponse cria uma nova resposta de sucesso
func NewSuccessResponse(message string, data interface{}) SuccessResponse {
	return SuccessResponse{
		Success: true,
		Message: message,
		Data:    data,
	}
}

// calculateTotalPages calcula o número total de páginas com base no total de registros e no tamanho da página
func calculateTotalPages(totalCount, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}

	totalPages := (totalCount + pageSize - 1) / pageSize
	if totalPages == 0 {
		totalPages = 1
	}

	return totalPages
}
