// Package docs registers the OpenAPI description served under /swagger.
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
        "/appointments": {
            "post": {
                "description": "Validates the ten booking fields and stores an active appointment with a new confirmation code.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["appointments"],
                "summary": "Book an appointment",
                "parameters": [
                    {
                        "description": "Booking data, fecha_cita as YYYY-MM-DD and hora_cita as HH:MM",
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/service.CreateInput"}
                    }
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.createdAppointment"}},
                    "400": {"description": "campos_faltantes / campos_invalidos", "schema": {"$ref": "#/definitions/utils.errorBody"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/utils.errorBody"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/utils.errorBody"}}
                }
            }
        },
        "/appointments/search": {
            "get": {
                "description": "Returns every appointment matching both the email and the confirmation code, latest date first.",
                "produces": ["application/json"],
                "tags": ["appointments"],
                "summary": "Find appointments by credential",
                "parameters": [
                    {"type": "string", "description": "Client email (alias: correo)", "name": "email", "in": "query", "required": true},
                    {"type": "string", "description": "Confirmation code (alias: codigo)", "name": "code", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Appointment"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.errorBody"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/utils.errorBody"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/utils.errorBody"}}
                }
            }
        },
        "/appointments/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["appointments"],
                "summary": "Get an appointment",
                "parameters": [
                    {"type": "integer", "description": "Appointment ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Appointment"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/utils.errorBody"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/utils.errorBody"}}
                }
            },
            "put": {
                "description": "Overwrites date, time, reason, notes and pet data. Contact data, code and state are kept.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["appointments"],
                "summary": "Reschedule an appointment",
                "parameters": [
                    {"type": "integer", "description": "Appointment ID", "name": "id", "in": "path", "required": true},
                    {
                        "description": "Editable fields",
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/service.UpdateInput"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.messageBody"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.errorBody"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/utils.errorBody"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/utils.errorBody"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["appointments"],
                "summary": "Delete an appointment",
                "parameters": [
                    {"type": "integer", "description": "Appointment ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.messageBody"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/utils.errorBody"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/utils.errorBody"}}
                }
            }
        },
        "/appointments/{id}/cancel": {
            "patch": {
                "description": "Sets estado to cancelada. Cancelling an already cancelled appointment also succeeds.",
                "produces": ["application/json"],
                "tags": ["appointments"],
                "summary": "Cancel an appointment",
                "parameters": [
                    {"type": "integer", "description": "Appointment ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.messageBody"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/utils.errorBody"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/utils.errorBody"}}
                }
            }
        },
        "/appointments/{id}/history": {
            "get": {
                "produces": ["application/json"],
                "tags": ["appointments"],
                "summary": "Appointment audit trail",
                "parameters": [
                    {"type": "integer", "description": "Appointment ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.AuditLog"}}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/utils.errorBody"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/utils.errorBody"}}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Service health",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}},
                    "503": {"description": "Service Unavailable", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        }
    },
    "definitions": {
        "handler.createdAppointment": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "codigo_confirmacion": {"type": "string", "example": "K7Q2M9XA"}
            }
        },
        "models.Appointment": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "nombre": {"type": "string"},
                "telefono": {"type": "string", "example": "6000-1234"},
                "correo": {"type": "string"},
                "descripcion": {"type": "string"},
                "tipo_animal": {"type": "string"},
                "nombre_mascota": {"type": "string"},
                "razon_consulta": {"type": "string"},
                "mensaje": {"type": "string"},
                "fecha_cita": {"type": "string", "example": "2025-03-10"},
                "hora_cita": {"type": "string", "example": "09:00"},
                "codigo_confirmacion": {"type": "string"},
                "estado": {"type": "string", "enum": ["activa", "cancelada"]},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "models.AuditLog": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "appointment_id": {"type": "integer"},
                "action": {"type": "string"},
                "details": {"type": "string"},
                "created_at": {"type": "string"}
            }
        },
        "service.CreateInput": {
            "type": "object",
            "required": ["nombre", "telefono", "correo", "descripcion", "tipo_animal", "nombre_mascota", "razon_consulta", "mensaje", "fecha_cita", "hora_cita"],
            "properties": {
                "nombre": {"type": "string", "maxLength": 100},
                "telefono": {"type": "string", "example": "6000-1234"},
                "correo": {"type": "string", "maxLength": 255},
                "descripcion": {"type": "string", "maxLength": 255},
                "tipo_animal": {"type": "string", "maxLength": 50},
                "nombre_mascota": {"type": "string", "maxLength": 100},
                "razon_consulta": {"type": "string", "maxLength": 255},
                "mensaje": {"type": "string"},
                "fecha_cita": {"type": "string", "example": "2025-03-10"},
                "hora_cita": {"type": "string", "example": "09:00"}
            }
        },
        "service.UpdateInput": {
            "type": "object",
            "required": ["fecha_cita", "hora_cita", "razon_consulta", "mensaje", "tipo_animal", "nombre_mascota"],
            "properties": {
                "fecha_cita": {"type": "string", "example": "2025-03-12"},
                "hora_cita": {"type": "string", "example": "10:30"},
                "razon_consulta": {"type": "string", "maxLength": 255},
                "mensaje": {"type": "string"},
                "tipo_animal": {"type": "string", "maxLength": 50},
                "nombre_mascota": {"type": "string", "maxLength": 100}
            }
        },
        "utils.errorBody": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean", "example": false},
                "error": {"type": "string"},
                "campos_faltantes": {"type": "array", "items": {"type": "string"}},
                "campos_invalidos": {"type": "object", "additionalProperties": {"type": "string"}}
            }
        },
        "utils.messageBody": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean", "example": true},
                "message": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Vet Appointments API",
	Description:      "Booking, lookup and management of veterinary clinic appointments.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
