// Package docs registers the Swagger document served at /swagger/index.html.
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
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "paths": {
        "/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Log in to the back office",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/auth.LoginRequest"}}],
                "responses": {"200": {"description": "OK"}, "401": {"description": "Wrong username or password"}, "403": {"description": "No back office role"}}
            }
        },
        "/auth/forgot": {
            "post": {
                "tags": ["auth"],
                "summary": "Reset a password and mail it",
                "responses": {"200": {"description": "OK"}, "404": {"description": "Unknown e-mail"}}
            }
        },
        "/trips/search": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["search"],
                "summary": "Search trips by route and travel date",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/seats/map": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["seats"],
                "summary": "Seat map of a trip on a travel date",
                "parameters": [{"in": "query", "name": "tripId", "type": "integer", "required": true}, {"in": "query", "name": "date", "type": "string", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Trip not found"}}
            }
        },
        "/bookings": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["bookings"],
                "summary": "Create a booking",
                "responses": {"201": {"description": "Created"}, "400": {"description": "Validation error"}, "409": {"description": "Seats already ordered"}}
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["bookings"],
                "summary": "Update a booking",
                "responses": {"200": {"description": "OK"}, "409": {"description": "Seats already ordered"}}
            }
        },
        "/bookings/{id}/ticket": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/pdf"],
                "tags": ["bookings"],
                "summary": "Printable ticket",
                "responses": {"200": {"description": "PDF"}}
            }
        },
        "/wizard": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["wizard"],
                "summary": "Start a booking wizard",
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/reports/revenues/{start}/{end}/{timeOption}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["reports"],
                "summary": "Revenue per day, month or year",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/dashboard/summary": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["reports"],
                "summary": "Dashboard counters",
                "responses": {"200": {"description": "OK"}}
            }
        }
    },
    "definitions": {
        "auth.LoginRequest": {
            "type": "object",
            "required": ["username", "password"],
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Bus Ticket Admin API",
	Description:      "Back office API for coaches, trips, seat bookings and reports.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
