// Package docs holds the OpenAPI description served under /swagger.
// Regenerate the full path list with: swag init -g cmd/api/main.go -o internal/docs
package docs

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
    "paths": {
        "/auth/register": {
            "post": {
                "tags": ["auth"],
                "summary": "Register a new user",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "responses": {
                    "201": {"description": "User registered and token generated"},
                    "400": {"description": "Invalid input"},
                    "409": {"description": "Login already taken"}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Login user",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "User authenticated and token generated"},
                    "401": {"description": "Invalid credentials"},
                    "423": {"description": "Account locked"}
                }
            }
        },
        "/movements": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["movements"],
                "summary": "List movements",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "integer", "name": "accountId", "in": "query"},
                    {"type": "string", "name": "type", "in": "query"},
                    {"type": "string", "name": "from", "in": "query"},
                    {"type": "string", "name": "to", "in": "query"},
                    {"type": "integer", "name": "page", "in": "query"},
                    {"type": "integer", "name": "pageSize", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "204": {"description": "No movements"}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["movements"],
                "summary": "Post a movement",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Missing fields, invalid amount or date"},
                    "403": {"description": "Account not owned"},
                    "409": {"description": "Invalid type"}
                }
            }
        },
        "/transfers": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["transfers"],
                "summary": "List transfers",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK"},
                    "204": {"description": "No transfers"}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["transfers"],
                "summary": "Post a transfer",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Missing fields, invalid amount or date"},
                    "403": {"description": "A leg is not owned"},
                    "409": {"description": "Same account on both legs"}
                }
            }
        }
    },
    "securityDefinitions": {
        "ApiKeyAuth": {
            "type": "apiKey",
            "name": "X-API-Key",
            "in": "header"
        },
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and the token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Haybank API",
	Description:      "Personal bookkeeping API: accounts, categories, counterparties, movements and transfers.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
