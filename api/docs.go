// Package api holds the OpenAPI description of the fintrack API.
//
// The document is maintained by hand and lists the paths with their main
// responses. The swag annotations on the handlers in pkg/controllers are
// complete, running "swag init" replaces this file with the full document.
package api

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "paths": {
        "/": {"get": {"tags": ["General"], "summary": "API root", "responses": {"200": {"description": "OK"}}}},
        "/healthz": {"get": {"tags": ["General"], "summary": "Get health", "responses": {"204": {"description": "No Content"}, "500": {"description": "Internal Server Error"}}}},
        "/version": {"get": {"tags": ["General"], "summary": "API version", "responses": {"200": {"description": "OK"}}}},
        "/v1": {"get": {"tags": ["v1"], "summary": "v1 API", "responses": {"200": {"description": "OK"}}}},
        "/v1/auth/register": {"post": {"tags": ["Authentication"], "summary": "Register", "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}}},
        "/v1/auth/login": {"post": {"tags": ["Authentication"], "summary": "Log in", "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "401": {"description": "Unauthorized"}, "500": {"description": "Internal Server Error"}}}},
        "/v1/auth/me": {"get": {"tags": ["Authentication"], "summary": "Current user", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}, "403": {"description": "Forbidden"}}}},
        "/v1/transactions": {
            "get": {"tags": ["Transactions"], "summary": "Get transactions", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}},
            "post": {"tags": ["Transactions"], "summary": "Create transactions", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}}
        },
        "/v1/transactions/{id}": {
            "get": {"tags": ["Transactions"], "summary": "Get transaction", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}, "404": {"description": "Not Found"}}},
            "delete": {"tags": ["Transactions"], "summary": "Delete transaction", "security": [{"BearerAuth": []}], "responses": {"204": {"description": "No Content"}, "403": {"description": "Forbidden"}, "404": {"description": "Not Found"}}}
        },
        "/v1/bank-accounts": {
            "get": {"tags": ["Bank Accounts"], "summary": "List bank accounts", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["Bank Accounts"], "summary": "Create bank accounts", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}}
        },
        "/v1/bank-accounts/{id}": {
            "get": {"tags": ["Bank Accounts"], "summary": "Get bank account", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}, "404": {"description": "Not Found"}}},
            "patch": {"tags": ["Bank Accounts"], "summary": "Update bank account", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}},
            "delete": {"tags": ["Bank Accounts"], "summary": "Delete bank account", "security": [{"BearerAuth": []}], "responses": {"204": {"description": "No Content"}}}
        },
        "/v1/budgets": {
            "get": {"tags": ["Budgets"], "summary": "List budgets", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["Budgets"], "summary": "Create budgets", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}}
        },
        "/v1/budgets/{id}": {
            "get": {"tags": ["Budgets"], "summary": "Get budget", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}, "404": {"description": "Not Found"}}},
            "delete": {"tags": ["Budgets"], "summary": "Delete budget", "security": [{"BearerAuth": []}], "responses": {"204": {"description": "No Content"}}}
        },
        "/v1/budgets/{id}/progress": {
            "get": {"tags": ["Budgets"], "summary": "Get budget progress", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}, "404": {"description": "Not Found"}}}
        },
        "/v1/categories": {
            "get": {"tags": ["Categories"], "summary": "List categories", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["Categories"], "summary": "Create category", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}, "201": {"description": "Created"}, "400": {"description": "Bad Request"}}}
        },
        "/v1/categories/{id}": {
            "patch": {"tags": ["Categories"], "summary": "Rename category", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}},
            "delete": {"tags": ["Categories"], "summary": "Delete category", "security": [{"BearerAuth": []}], "responses": {"204": {"description": "No Content"}}}
        },
        "/v1/dashboard": {
            "get": {"tags": ["Dashboard"], "summary": "Get dashboard", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}
        },
        "/v1/reports/pdf": {
            "get": {"tags": ["Reports"], "summary": "Get PDF report", "produces": ["application/pdf"], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}
        },
        "/v1/reports/send": {
            "post": {"tags": ["Reports"], "summary": "Send report", "consumes": ["multipart/form-data"], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "500": {"description": "Internal Server Error"}, "503": {"description": "Service Unavailable"}}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "",
	Host:             "",
	BasePath:         "",
	Schemes:          []string{},
	Title:            "",
	Description:      "",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
