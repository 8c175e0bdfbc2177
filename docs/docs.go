// Package docs registers the OpenAPI description served under /swagger/.
// Regenerate with `swag init -g cmd/server/main.go` after changing handler
// annotations.
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
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Liveness probe",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/health/ready": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Readiness probe",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.readinessResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/handler.readinessResponse"}}
                }
            }
        },
        "/v1/clients": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["clients"],
                "summary": "List clients",
                "parameters": [
                    {"type": "string", "description": "Search by name or tax ID", "name": "q", "in": "query"},
                    {"type": "integer", "description": "Page number (default 1)", "name": "page", "in": "query"},
                    {"type": "integer", "description": "Page size (default 20, max 100)", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.listClientsResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["clients"],
                "summary": "Register a client",
                "parameters": [
                    {"description": "Client details", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.createClientRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.clientResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/v1/clients/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["clients"],
                "summary": "Get a client by ID",
                "parameters": [
                    {"type": "string", "description": "Client ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.clientResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/v1/totals": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["totals"],
                "summary": "Compute document totals",
                "parameters": [
                    {"description": "Items and adjustments", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.totalsRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.totalsResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/v1/{kind}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["documents"],
                "summary": "List documents",
                "parameters": [
                    {"$ref": "#/parameters/kind"},
                    {"type": "string", "description": "Filter by status", "name": "status", "in": "query"},
                    {"type": "string", "description": "Filter by client", "name": "client_id", "in": "query"},
                    {"type": "string", "description": "Search number or notes", "name": "q", "in": "query"},
                    {"type": "string", "description": "Issue date lower bound (YYYY-MM-DD)", "name": "issued_from", "in": "query"},
                    {"type": "string", "description": "Issue date upper bound (YYYY-MM-DD)", "name": "issued_to", "in": "query"},
                    {"type": "integer", "description": "Page number (default 1)", "name": "page", "in": "query"},
                    {"type": "integer", "description": "Page size (default 20, max 100)", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.listDocumentsResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["documents"],
                "summary": "Create a draft document",
                "parameters": [
                    {"$ref": "#/parameters/kind"},
                    {"type": "string", "description": "Idempotency key to prevent duplicate submissions", "name": "Idempotency-Key", "in": "header"},
                    {"description": "Document details", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.createDocumentRequest"}}
                ],
                "responses": {
                    "200": {"description": "Replayed", "schema": {"$ref": "#/definitions/handler.documentResponse"}},
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.documentResponse"}},
                    "404": {"description": "Client not found", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/v1/{kind}/transitions/batch": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["documents"],
                "summary": "Queue a batch of status transitions",
                "parameters": [
                    {"$ref": "#/parameters/kind"},
                    {"description": "Transitions", "name": "body", "in": "body", "required": true, "schema": {"type": "array", "items": {"$ref": "#/definitions/handler.batchTransitionRequest"}}}
                ],
                "responses": {
                    "202": {"description": "Accepted", "schema": {"$ref": "#/definitions/handler.acceptedResponse"}},
                    "503": {"description": "Queue full", "schema": {"$ref": "#/definitions/handler.acceptedResponse"}}
                }
            }
        },
        "/v1/{kind}/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["documents"],
                "summary": "Get a document by ID",
                "parameters": [{"$ref": "#/parameters/kind"}, {"$ref": "#/parameters/id"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.documentResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["documents"],
                "summary": "Edit a draft document",
                "parameters": [
                    {"$ref": "#/parameters/kind"},
                    {"$ref": "#/parameters/id"},
                    {"description": "Fields to change", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.updateDocumentRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.documentResponse"}},
                    "409": {"description": "Not a draft", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["documents"],
                "summary": "Delete a draft document",
                "parameters": [{"$ref": "#/parameters/kind"}, {"$ref": "#/parameters/id"}],
                "responses": {
                    "204": {"description": "No Content"},
                    "409": {"description": "Not a draft", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/v1/{kind}/{id}/transitions": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["documents"],
                "summary": "Move a document to a new status",
                "parameters": [
                    {"$ref": "#/parameters/kind"},
                    {"$ref": "#/parameters/id"},
                    {"description": "Target status", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.transitionRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.documentResponse"}},
                    "409": {"description": "Concurrent update", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "422": {"description": "Invalid transition", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        }
    },
    "parameters": {
        "kind": {"type": "string", "enum": ["invoices", "proforma-invoices", "quotations"], "name": "kind", "in": "path", "required": true},
        "id": {"type": "string", "description": "Document ID", "name": "id", "in": "path", "required": true}
    },
    "definitions": {
        "handler.errorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}, "field": {"type": "string"}}
        },
        "handler.acceptedResponse": {
            "type": "object",
            "properties": {"message": {"type": "string"}, "count": {"type": "integer"}}
        },
        "handler.dependencyStatus": {
            "type": "object",
            "properties": {"status": {"type": "string"}, "error": {"type": "string"}}
        },
        "handler.readinessResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "dependencies": {"type": "object", "additionalProperties": {"$ref": "#/definitions/handler.dependencyStatus"}}
            }
        },
        "handler.lineItemRequest": {
            "type": "object",
            "required": ["description", "quantity", "unit_price"],
            "properties": {
                "description": {"type": "string", "maxLength": 500},
                "quantity": {"type": "integer", "minimum": 1},
                "unit_price": {"type": "string", "example": "19.99"}
            }
        },
        "handler.adjustmentRequest": {
            "type": "object",
            "properties": {
                "rate": {"type": "string", "example": "16"},
                "amount": {"type": "string", "example": "5.00"}
            }
        },
        "handler.createDocumentRequest": {
            "type": "object",
            "required": ["client_id", "items", "issue_date", "due_date"],
            "properties": {
                "client_id": {"type": "string"},
                "bill_of_lading_ref": {"type": "string"},
                "items": {"type": "array", "items": {"$ref": "#/definitions/handler.lineItemRequest"}},
                "tax": {"$ref": "#/definitions/handler.adjustmentRequest"},
                "discount": {"$ref": "#/definitions/handler.adjustmentRequest"},
                "currency": {"type": "string", "example": "USD"},
                "issue_date": {"type": "string", "example": "2026-05-01"},
                "due_date": {"type": "string", "example": "2026-05-31"},
                "notes": {"type": "string", "maxLength": 1000}
            }
        },
        "handler.updateDocumentRequest": {
            "type": "object",
            "properties": {
                "items": {"type": "array", "items": {"$ref": "#/definitions/handler.lineItemRequest"}},
                "tax": {"$ref": "#/definitions/handler.adjustmentRequest"},
                "discount": {"$ref": "#/definitions/handler.adjustmentRequest"},
                "due_date": {"type": "string"},
                "notes": {"type": "string"}
            }
        },
        "handler.transitionRequest": {
            "type": "object",
            "required": ["status"],
            "properties": {
                "status": {"type": "string", "enum": ["sent", "paid", "overdue", "canceled", "accepted", "rejected", "expired"]},
                "note": {"type": "string"}
            }
        },
        "handler.batchTransitionRequest": {
            "type": "object",
            "required": ["id", "status", "timestamp", "source"],
            "properties": {
                "id": {"type": "string"},
                "status": {"type": "string"},
                "timestamp": {"type": "string", "format": "date-time"},
                "source": {"type": "string"}
            }
        },
        "handler.totalsRequest": {
            "type": "object",
            "required": ["items"],
            "properties": {
                "items": {"type": "array", "items": {"$ref": "#/definitions/handler.lineItemRequest"}},
                "tax": {"$ref": "#/definitions/handler.adjustmentRequest"},
                "discount": {"$ref": "#/definitions/handler.adjustmentRequest"}
            }
        },
        "handler.lineItemResponse": {
            "type": "object",
            "properties": {
                "description": {"type": "string"},
                "quantity": {"type": "integer"},
                "unit_price": {"type": "string"},
                "total": {"type": "string"}
            }
        },
        "handler.adjustmentResponse": {
            "type": "object",
            "properties": {
                "rate": {"type": "string"},
                "amount": {"type": "string"},
                "fixed": {"type": "boolean"}
            }
        },
        "handler.statusHistoryResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "timestamp": {"type": "string", "format": "date-time"},
                "note": {"type": "string"}
            }
        },
        "handler.documentLinks": {
            "type": "object",
            "properties": {
                "self": {"type": "string"},
                "transitions": {"type": "string"},
                "client": {"type": "string"}
            }
        },
        "handler.documentResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "kind": {"type": "string"},
                "number": {"type": "string", "example": "INV-20260501-0001"},
                "client_id": {"type": "string"},
                "bill_of_lading_ref": {"type": "string"},
                "items": {"type": "array", "items": {"$ref": "#/definitions/handler.lineItemResponse"}},
                "subtotal": {"type": "string"},
                "tax": {"$ref": "#/definitions/handler.adjustmentResponse"},
                "discount": {"$ref": "#/definitions/handler.adjustmentResponse"},
                "total_amount": {"type": "string"},
                "currency": {"type": "string"},
                "issue_date": {"type": "string"},
                "due_date": {"type": "string"},
                "status": {"type": "string"},
                "status_history": {"type": "array", "items": {"$ref": "#/definitions/handler.statusHistoryResponse"}},
                "notes": {"type": "string"},
                "created_at": {"type": "string", "format": "date-time"},
                "updated_at": {"type": "string", "format": "date-time"},
                "_links": {"$ref": "#/definitions/handler.documentLinks"}
            }
        },
        "handler.listDocumentsResponse": {
            "type": "object",
            "properties": {
                "items": {"type": "array", "items": {"$ref": "#/definitions/handler.documentResponse"}},
                "total": {"type": "integer"},
                "page": {"type": "integer"},
                "limit": {"type": "integer"},
                "total_pages": {"type": "integer"}
            }
        },
        "handler.totalsResponse": {
            "type": "object",
            "properties": {
                "items": {"type": "array", "items": {"$ref": "#/definitions/handler.lineItemResponse"}},
                "subtotal": {"type": "string"},
                "tax": {"$ref": "#/definitions/handler.adjustmentResponse"},
                "discount": {"$ref": "#/definitions/handler.adjustmentResponse"},
                "total_amount": {"type": "string"}
            }
        },
        "handler.createClientRequest": {
            "type": "object",
            "required": ["name"],
            "properties": {
                "name": {"type": "string"},
                "email": {"type": "string"},
                "phone": {"type": "string"},
                "address": {"type": "string"},
                "tax_id": {"type": "string"}
            }
        },
        "handler.clientResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "email": {"type": "string"},
                "phone": {"type": "string"},
                "address": {"type": "string"},
                "tax_id": {"type": "string"},
                "created_at": {"type": "string", "format": "date-time"},
                "updated_at": {"type": "string", "format": "date-time"}
            }
        },
        "handler.listClientsResponse": {
            "type": "object",
            "properties": {
                "items": {"type": "array", "items": {"$ref": "#/definitions/handler.clientResponse"}},
                "total": {"type": "integer"},
                "page": {"type": "integer"},
                "limit": {"type": "integer"},
                "total_pages": {"type": "integer"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and the JWT.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Freight Back-Office API",
	Description:      "Invoices, proforma invoices and quotations for a freight forwarder.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
