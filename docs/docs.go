// Package docs holds the OpenAPI description served at /api/swagger.
// Regenerate with: swag init -g cmd/server/main.go -o docs
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "termsOfService": "http://swagger.io/terms/",
        "contact": {
            "name": "API Support",
            "email": "support@face2geek.dev"
        },
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/badges": {
            "get": {
                "produces": ["application/json"],
                "tags": ["badges"],
                "summary": "List the badge catalog",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Badge"}}}
                }
            }
        },
        "/conversations": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["conversations"],
                "summary": "List the caller's conversations",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.ConversationSummary"}}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["conversations"],
                "summary": "Find or create the direct conversation with a user",
                "parameters": [
                    {"description": "Recipient", "name": "request", "in": "body", "required": true, "schema": {"type": "object", "properties": {"recipient_id": {"type": "integer"}}}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "properties": {"id": {"type": "integer"}}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/feed": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["feed"],
                "summary": "Snippets from followed users, newest first",
                "parameters": [
                    {"type": "integer", "description": "Page size", "name": "limit", "in": "query"},
                    {"type": "integer", "description": "Offset", "name": "offset", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Snippet"}}}
                }
            }
        },
        "/leaderboard": {
            "get": {
                "produces": ["application/json"],
                "tags": ["leaderboard"],
                "summary": "Top users by reputation score",
                "parameters": [
                    {"type": "integer", "description": "Number of entries", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.LeaderboardEntry"}}}
                }
            }
        },
        "/notifications": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["notifications"],
                "summary": "Latest notifications of the caller",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Notification"}}}
                }
            },
            "patch": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["notifications"],
                "summary": "Mark one or all notifications as read",
                "parameters": [
                    {"description": "Target", "name": "request", "in": "body", "required": true, "schema": {"type": "object", "properties": {"id": {"type": "integer"}, "all": {"type": "boolean"}}}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "properties": {"success": {"type": "boolean"}}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/snippets/{id}/like": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["snippets"],
                "summary": "Toggle the caller's like on a snippet",
                "parameters": [
                    {"type": "integer", "description": "Snippet ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "properties": {"liked": {"type": "boolean"}, "likes_count": {"type": "integer"}}}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/snippets/{id}/rate": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["snippets"],
                "summary": "Set the caller's 1-5 rating on a snippet",
                "parameters": [
                    {"type": "integer", "description": "Snippet ID", "name": "id", "in": "path", "required": true},
                    {"description": "Score", "name": "request", "in": "body", "required": true, "schema": {"type": "object", "properties": {"score": {"type": "integer"}}}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Rating"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "models.Badge": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "description": {"type": "string"},
                "icon": {"type": "string"},
                "criteria": {"type": "string"},
                "threshold": {"type": "integer"}
            }
        },
        "models.ConversationSummary": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "updated_at": {"type": "string"},
                "other_user": {"type": "object"}
            }
        },
        "models.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "code": {"type": "string"},
                "details": {"type": "object"}
            }
        },
        "models.LeaderboardEntry": {
            "type": "object",
            "properties": {
                "user_id": {"type": "integer"},
                "username": {"type": "string"},
                "full_name": {"type": "string"},
                "snippet_count": {"type": "integer"},
                "total_likes": {"type": "integer"},
                "avg_rating": {"type": "number"},
                "total_views": {"type": "integer"},
                "score": {"type": "integer"}
            }
        },
        "models.Notification": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "user_id": {"type": "integer"},
                "type": {"type": "string"},
                "is_read": {"type": "boolean"},
                "actor_id": {"type": "integer"},
                "snippet_id": {"type": "integer"},
                "created_at": {"type": "string"}
            }
        },
        "models.Rating": {
            "type": "object",
            "properties": {
                "user_id": {"type": "integer"},
                "snippet_id": {"type": "integer"},
                "score": {"type": "integer"}
            }
        },
        "models.Snippet": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "title": {"type": "string"},
                "description": {"type": "string"},
                "code": {"type": "string"},
                "language": {"type": "string"},
                "tags": {"type": "array", "items": {"type": "string"}},
                "views": {"type": "integer"},
                "user_id": {"type": "integer"},
                "created_at": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and JWT token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8375",
	BasePath:         "/api",
	Schemes:          []string{"http", "https"},
	Title:            "face2geek API",
	Description:      "Social engagement and reputation API for code snippets: follows, likes, ratings, comments, badges, leaderboard, feed and direct conversations.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
