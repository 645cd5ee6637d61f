package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Task Scheduler API",
        "description": "Builds weekly schedules of recurring tasks inside availability windows.",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "in": "header", "name": "Authorization"}
    },
    "tags": [
        {"name": "Schedule", "description": "Schedule generation and stored results"},
        {"name": "Exports", "description": "CSV and PDF exports of the stored schedule"}
    ],
    "paths": {
        "/schedule": {
            "post": {
                "tags": ["Schedule"],
                "summary": "Build a weekly schedule",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/CreateScheduleRequest"}}
                ],
                "responses": {
                    "200": {"description": "Schedule built", "schema": {"$ref": "#/definitions/ScheduleEnvelope"}},
                    "400": {"description": "Invalid payload or time format", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "429": {"description": "Rate limited", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/schedule/tasks": {
            "get": {
                "tags": ["Schedule"],
                "summary": "List stored tasks",
                "parameters": [
                    {"in": "query", "name": "page", "type": "integer"},
                    {"in": "query", "name": "page_size", "type": "integer"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/schedule/tasks/{id}": {
            "delete": {
                "tags": ["Schedule"],
                "summary": "Delete a task and its schedule rows",
                "security": [{"BearerAuth": []}],
                "parameters": [{"in": "path", "name": "id", "required": true, "type": "string"}],
                "responses": {
                    "204": {"description": "Deleted"},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/schedule/schedules": {
            "get": {
                "tags": ["Schedule"],
                "summary": "List stored schedule rows",
                "parameters": [
                    {"in": "query", "name": "day", "type": "string"},
                    {"in": "query", "name": "page", "type": "integer"},
                    {"in": "query", "name": "page_size", "type": "integer"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/schedule/schedules/{id}": {
            "delete": {
                "tags": ["Schedule"],
                "summary": "Delete a schedule row",
                "security": [{"BearerAuth": []}],
                "parameters": [{"in": "path", "name": "id", "required": true, "type": "string"}],
                "responses": {
                    "204": {"description": "Deleted"},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/schedule/exports": {
            "post": {
                "tags": ["Exports"],
                "summary": "Export the stored schedule",
                "parameters": [
                    {"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/CreateExportRequest"}}
                ],
                "responses": {"202": {"description": "Queued", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/schedule/exports/{id}": {
            "get": {
                "tags": ["Exports"],
                "summary": "Export job status",
                "parameters": [{"in": "path", "name": "id", "required": true, "type": "string"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/export/{token}": {
            "get": {
                "tags": ["Exports"],
                "summary": "Download a finished export",
                "produces": ["text/csv", "application/pdf"],
                "parameters": [{"in": "path", "name": "token", "required": true, "type": "string"}],
                "responses": {
                    "200": {"description": "File"},
                    "403": {"description": "Invalid or expired token", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "TaskRequest": {
            "type": "object",
            "required": ["task_name", "hours_per_day"],
            "properties": {
                "task_name": {"type": "string"},
                "hours_per_day": {"type": "number"},
                "deadline": {"type": "string", "example": "2026-10-20"}
            }
        },
        "TimeWindow": {
            "type": "object",
            "properties": {
                "start": {"type": "string", "example": "09:00"},
                "end": {"type": "string", "example": "17:00"}
            }
        },
        "CreateScheduleRequest": {
            "type": "object",
            "required": ["tasks", "available_time"],
            "properties": {
                "tasks": {"type": "array", "items": {"$ref": "#/definitions/TaskRequest"}},
                "available_time": {
                    "type": "object",
                    "additionalProperties": {"type": "array", "items": {"$ref": "#/definitions/TimeWindow"}}
                }
            }
        },
        "ScheduledTask": {
            "type": "object",
            "properties": {
                "task_name": {"type": "string"},
                "start_time": {"type": "string"},
                "end_time": {"type": "string"},
                "duration": {"type": "integer"},
                "priority": {"type": "number"}
            }
        },
        "DaySchedule": {
            "type": "object",
            "properties": {
                "day": {"type": "string"},
                "tasks": {"type": "array", "items": {"$ref": "#/definitions/ScheduledTask"}}
            }
        },
        "ScheduleResponse": {
            "type": "object",
            "properties": {
                "schedule": {"type": "array", "items": {"$ref": "#/definitions/DaySchedule"}},
                "status": {"type": "string", "enum": ["success", "fallback"]},
                "message": {"type": "string"},
                "reduced_hours": {"type": "object", "additionalProperties": {"type": "number"}}
            }
        },
        "CreateExportRequest": {
            "type": "object",
            "required": ["format"],
            "properties": {
                "format": {"type": "string", "enum": ["csv", "pdf"]},
                "day": {"type": "string"}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"$ref": "#/definitions/Pagination"},
                "meta": {"type": "object"}
            }
        },
        "ScheduleEnvelope": {
            "type": "object",
            "properties": {
                "data": {"$ref": "#/definitions/ScheduleResponse"},
                "error": {"$ref": "#/definitions/APIError"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
