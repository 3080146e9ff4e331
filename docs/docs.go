// Package docs registers the OpenAPI document of the portal API with swag.
// The paths mirror the @Router annotations on the HTTP handlers.
package docs

import "github.com/swaggo/swag/v2"

const docTemplate = `{
    "openapi": "3.1.0",
    "info": {
        "title": "{{.Title}}",
        "description": "{{escape .Description}}",
        "version": "{{.Version}}"
    },
    "servers": [
        {
            "url": "{{.BasePath}}"
        }
    ],
    "paths": {
        "/": {
            "get": {
                "tags": [
                    "system"
                ],
                "summary": "Service banner",
                "responses": {
                    "default": {
                        "$ref": "#/components/responses/Envelope"
                    }
                }
            }
        },
        "/health": {
            "get": {
                "tags": [
                    "system"
                ],
                "summary": "Liveness with a database ping",
                "responses": {
                    "default": {
                        "$ref": "#/components/responses/Envelope"
                    }
                }
            }
        },
        "/api/v1/system/info": {
            "get": {
                "tags": [
                    "system"
                ],
                "summary": "Get system information",
                "responses": {
                    "default": {
                        "$ref": "#/components/responses/Envelope"
                    }
                }
            }
        },
        "/auth/token": {
            "post": {
                "tags": [
                    "auth"
                ],
                "summary": "Issue an access token",
                "responses": {
                    "default": {
                        "$ref": "#/components/responses/Envelope"
                    }
                }
            }
        },
        "/auth/protected-resource": {
            "get": {
                "tags": [
                    "auth"
                ],
                "summary": "Describe the authenticated caller",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "default": {
                        "$ref": "#/components/responses/Envelope"
                    }
                }
            }
        },
        "/auth/logout": {
            "post": {
                "tags": [
                    "auth"
                ],
                "summary": "Revoke the presented token",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "default": {
                        "$ref": "#/components/responses/Envelope"
                    }
                }
            }
        },
        "/users": {
            "post": {
                "tags": [
                    "users"
                ],
                "summary": "Register a user",
                "responses": {
                    "default": {
                        "$ref": "#/components/responses/Envelope"
                    }
                }
            },
            "get": {
                "tags": [
                    "users"
                ],
                "summary": "List all users",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "default": {
                        "$ref": "#/components/responses/Envelope"
                    }
                }
            }
        },
        "/users/active": {
            "get": {
                "tags": [
                    "users"
                ],
                "summary": "List active users",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "default": {
                        "$ref": "#/components/responses/Envelope"
                    }
                }
            }
        },
        "/users/{id}": {
            "get": {
                "tags": [
                    "users"
                ],
                "summary": "Get an active user",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "schema": {
                            "type": "string",
                            "format": "uuid"
                        }
                    }
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "default": {
                        "$ref": "#/components/responses/Envelope"
                    }
                }
            },
            "put": {
                "tags": [
                    "users"
                ],
                "summary": "Edit a user",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "schema": {
                            "type": "string",
                            "format": "uuid"
                        }
                    }
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "default": {
                        "$ref": "#/components/responses/Envelope"
                    }
                }
            },
            "delete": {
                "tags": [
                    "users"
                ],
                "summary": "Soft delete a user",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "schema": {
                            "type": "string",
                            "format": "uuid"
                        }
                    }
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "default": {
                        "$ref": "#/components/responses/Envelope"
                    }
                }
            }
        },
        "/users/{id}/disable": {
            "post": {
                "tags": [
                    "users"
                ],
                "summary": "Deactivate a user",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "schema": {
                            "type": "string",
                            "format": "uuid"
                        }
                    }
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "default": {
                        "$ref": "#/components/responses/Envelope"
                    }
                }
            }
        },
        "/users/{id}/reset-password": {
            "post": {
                "tags": [
                    "users"
                ],
                "summary": "Set a new password",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "schema": {
                            "type": "string",
                            "format": "uuid"
                        }
                    }
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "default": {
                        "$ref": "#/components/responses/Envelope"
                    }
                }
            }
        },
        "/users/{id}/history": {
            "get": {
                "tags": [
                    "users"
                ],
                "summary": "Audit trail of a user",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "schema": {
                            "type": "string",
                            "format": "uuid"
                        }
                    }
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "default": {
                        "$ref": "#/components/responses/Envelope"
                    }
                }
            }
        },
        "/admin/users/{id}/privilege": {
            "patch": {
                "tags": [
                    "admin"
                ],
                "summary": "Grant ROLE_PORTAL_ADMIN",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "schema": {
                            "type": "string",
                            "format": "uuid"
                        }
                    }
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "default": {
                        "$ref": "#/components/responses/Envelope"
                    }
                }
            },
            "delete": {
                "tags": [
                    "admin"
                ],
                "summary": "Revoke ROLE_PORTAL_ADMIN",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "schema": {
                            "type": "string",
                            "format": "uuid"
                        }
                    }
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "default": {
                        "$ref": "#/components/responses/Envelope"
                    }
                }
            }
        },
        "/regions": {
            "post": {
                "tags": [
                    "directory"
                ],
                "summary": "Create a directory entry",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "default": {
                        "$ref": "#/components/responses/Envelope"
                    }
                }
            }
        },
        "/departments": {
            "post": {
                "tags": [
                    "directory"
                ],
                "summary": "Create a directory entry",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "default": {
                        "$ref": "#/components/responses/Envelope"
                    }
                }
            }
        },
        "/exam/categories": {
            "post": {
                "tags": [
                    "exam"
                ],
                "summary": "Create a question category",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "default": {
                        "$ref": "#/components/responses/Envelope"
                    }
                }
            }
        },
        "/exam/type-selections": {
            "post": {
                "tags": [
                    "exam"
                ],
                "summary": "Create a question type selection",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "default": {
                        "$ref": "#/components/responses/Envelope"
                    }
                }
            }
        },
        "/exam/questions": {
            "post": {
                "tags": [
                    "exam"
                ],
                "summary": "Create a question with its answers",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "default": {
                        "$ref": "#/components/responses/Envelope"
                    }
                }
            },
            "get": {
                "tags": [
                    "exam"
                ],
                "summary": "List questions",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "default": {
                        "$ref": "#/components/responses/Envelope"
                    }
                }
            }
        },
        "/exam/questions/{id}": {
            "put": {
                "tags": [
                    "exam"
                ],
                "summary": "Replace a question and diff its answers",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "schema": {
                            "type": "string",
                            "format": "uuid"
                        }
                    }
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "default": {
                        "$ref": "#/components/responses/Envelope"
                    }
                }
            }
        },
        "/exam/questions/check": {
            "post": {
                "tags": [
                    "exam"
                ],
                "summary": "Grade an attempt",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "default": {
                        "$ref": "#/components/responses/Envelope"
                    }
                }
            }
        },
        "/license/items": {
            "post": {
                "tags": [
                    "license"
                ],
                "summary": "Register a license",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "default": {
                        "$ref": "#/components/responses/Envelope"
                    }
                }
            },
            "get": {
                "tags": [
                    "license"
                ],
                "summary": "Page through the registry",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "default": {
                        "$ref": "#/components/responses/Envelope"
                    }
                }
            }
        },
        "/license/items/{id}/files": {
            "post": {
                "tags": [
                    "license"
                ],
                "summary": "Attach a file to a license",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "schema": {
                            "type": "string",
                            "format": "uuid"
                        }
                    }
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "default": {
                        "$ref": "#/components/responses/Envelope"
                    }
                }
            }
        },
        "/chat/chats": {
            "post": {
                "tags": [
                    "chat"
                ],
                "summary": "Create a chat room",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "default": {
                        "$ref": "#/components/responses/Envelope"
                    }
                }
            },
            "get": {
                "tags": [
                    "chat"
                ],
                "summary": "List chat rooms",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "default": {
                        "$ref": "#/components/responses/Envelope"
                    }
                }
            }
        },
        "/chat/chats/{id}/messages": {
            "post": {
                "tags": [
                    "chat"
                ],
                "summary": "Post a message as the authenticated user",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "schema": {
                            "type": "string",
                            "format": "uuid"
                        }
                    }
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "default": {
                        "$ref": "#/components/responses/Envelope"
                    }
                }
            },
            "get": {
                "tags": [
                    "chat"
                ],
                "summary": "Messages of a chat, oldest first",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "schema": {
                            "type": "string",
                            "format": "uuid"
                        }
                    }
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "default": {
                        "$ref": "#/components/responses/Envelope"
                    }
                }
            }
        },
        "/chat/messages/{id}": {
            "put": {
                "tags": [
                    "chat"
                ],
                "summary": "Edit own message",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "schema": {
                            "type": "string",
                            "format": "uuid"
                        }
                    }
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "default": {
                        "$ref": "#/components/responses/Envelope"
                    }
                }
            },
            "delete": {
                "tags": [
                    "chat"
                ],
                "summary": "Delete own message",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "schema": {
                            "type": "string",
                            "format": "uuid"
                        }
                    }
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "default": {
                        "$ref": "#/components/responses/Envelope"
                    }
                }
            }
        },
        "/chat/upload": {
            "post": {
                "tags": [
                    "chat"
                ],
                "summary": "Upload chat attachments",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "default": {
                        "$ref": "#/components/responses/Envelope"
                    }
                }
            }
        },
        "/chat/users": {
            "get": {
                "tags": [
                    "chat"
                ],
                "summary": "Recipient candidates",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "default": {
                        "$ref": "#/components/responses/Envelope"
                    }
                }
            }
        },
        "/chat/ws": {
            "get": {
                "tags": [
                    "chat"
                ],
                "summary": "Realtime message feed over WebSocket",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "default": {
                        "$ref": "#/components/responses/Envelope"
                    }
                }
            }
        }
    },
    "components": {
        "securitySchemes": {
            "BearerAuth": {
                "type": "http",
                "scheme": "bearer",
                "bearerFormat": "JWT"
            }
        },
        "schemas": {
            "Error": {
                "type": "object",
                "properties": {
                    "code": {
                        "type": "string"
                    },
                    "message": {
                        "type": "string"
                    },
                    "request_id": {
                        "type": "string"
                    }
                }
            },
            "Envelope": {
                "type": "object",
                "properties": {
                    "success": {
                        "type": "boolean"
                    },
                    "data": {},
                    "error": {
                        "$ref": "#/components/schemas/Error"
                    }
                }
            }
        },
        "responses": {
            "Envelope": {
                "description": "Response envelope",
                "content": {
                    "application/json": {
                        "schema": {
                            "$ref": "#/components/schemas/Envelope"
                        }
                    }
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "TSVS Portal API",
	Description:      "Identity, directories, exam bank, license registry and chat of the TSVS portal.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
