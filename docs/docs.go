// Package docs registra o documento OpenAPI servido em /swagger.
// Regenerar com: swag init -g cmd/api/docs.go -o docs
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "Suporte",
            "email": "suporte@erp-condominio.ro"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Autentica um usuário",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "login", "required": true, "schema": {"$ref": "#/definitions/dto.LoginRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.AuthResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/payments": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["payments"],
                "summary": "Registra um pagamento",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "in": "header", "name": "Idempotency-Key", "description": "Chave de idempotência"},
                    {"in": "body", "name": "payment", "required": true, "schema": {"$ref": "#/definitions/dto.PaymentRequest"}}
                ],
                "responses": {
                    "200": {"description": "Repetição", "schema": {"$ref": "#/definitions/dto.PaymentResponse"}},
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.PaymentResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "dto.LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {"email": {"type": "string"}, "password": {"type": "string"}}
        },
        "dto.AuthResponse": {
            "type": "object",
            "properties": {"token": {"type": "string"}, "expiresAt": {"type": "string"}, "user": {"type": "object"}}
        },
        "dto.PaymentRequest": {
            "type": "object",
            "required": ["method"],
            "properties": {
                "apartmentExpenseId": {"type": "string"},
                "apartmentId": {"type": "string"},
                "expenseId": {"type": "string"},
                "amount": {"type": "number"},
                "method": {"type": "string", "enum": ["CASH", "CARD", "TRANSFER"]},
                "reference": {"type": "string"}
            }
        },
        "dto.PaymentResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "apartmentId": {"type": "string"},
                "apartmentExpenseId": {"type": "string"},
                "expenseId": {"type": "string"},
                "amount": {"type": "number"},
                "paymentDate": {"type": "string"},
                "method": {"type": "string"},
                "reference": {"type": "string"}
            }
        },
        "dto.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "integer"},
                "message": {"type": "string"},
                "details": {"type": "string"},
                "fields": {"type": "object"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Cabeçalho de autenticação JWT usando o esquema Bearer. Exemplo: \"Bearer {token}\"",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo guarda as informações exportadas do documento
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Condomínio API",
	Description:      "API de gestão de associações de proprietários: blocos, apartamentos, despesas, cotas e pagamentos",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
