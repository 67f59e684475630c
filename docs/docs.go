// Package docs holds the OpenAPI description served at /swagger. Regenerate
// with `swag init -g cmd/main.go` after changing handler annotations.
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
        "/evaluation": {
            "get": {"tags": ["evaluation"], "summary": "Get submitted evaluation", "security": [{"BearerAuth": []}], "produces": ["application/json"], "responses": {"200": {"description": "Evaluation retrieved successfully"}, "401": {"description": "Unauthorized"}, "404": {"description": "Evaluation not found"}}}
        },
        "/evaluation/draft": {
            "get": {"tags": ["evaluation"], "summary": "Get the evaluation draft", "security": [{"BearerAuth": []}], "produces": ["application/json"], "responses": {"200": {"description": "Draft retrieved successfully"}, "404": {"description": "Draft not found"}}},
            "post": {"tags": ["evaluation"], "summary": "Start or resume the evaluation", "security": [{"BearerAuth": []}], "produces": ["application/json"], "responses": {"200": {"description": "Draft resumed"}, "201": {"description": "Draft created"}, "403": {"description": "Not on waitlist"}, "409": {"description": "Evaluation already submitted"}}},
            "patch": {"tags": ["evaluation"], "summary": "Set evaluation answers", "security": [{"BearerAuth": []}], "consumes": ["application/json"], "produces": ["application/json"], "parameters": [{"in": "body", "name": "changes", "required": true, "schema": {"type": "object"}}], "responses": {"200": {"description": "Draft updated"}, "400": {"description": "Unknown field"}, "409": {"description": "Evaluation already submitted"}, "422": {"description": "Invalid values"}}}
        },
        "/evaluation/draft/advance": {
            "post": {"tags": ["evaluation"], "summary": "Go to the next step", "security": [{"BearerAuth": []}], "produces": ["application/json"], "responses": {"200": {"description": "Moved to next step"}, "409": {"description": "Already on the last step"}, "422": {"description": "Step has invalid fields"}}}
        },
        "/evaluation/draft/retreat": {
            "post": {"tags": ["evaluation"], "summary": "Go to the previous step", "security": [{"BearerAuth": []}], "produces": ["application/json"], "responses": {"200": {"description": "Moved to previous step"}}}
        },
        "/evaluation/draft/subsections/{name}/clear": {
            "post": {"tags": ["evaluation"], "summary": "Answer no to a whole medical history subsection", "security": [{"BearerAuth": []}], "produces": ["application/json"], "parameters": [{"in": "path", "name": "name", "type": "string", "required": true, "enum": ["neurological", "cardiovascular", "pulmonary", "hepatic_gastric", "hematological", "other"]}], "responses": {"200": {"description": "Subsection cleared"}, "404": {"description": "Unknown subsection"}}}
        },
        "/evaluation/draft/submit": {
            "post": {"tags": ["evaluation"], "summary": "Submit the evaluation", "security": [{"BearerAuth": []}], "produces": ["application/json"], "responses": {"201": {"description": "Evaluation submitted"}, "409": {"description": "Not on the last step or submission in progress"}, "422": {"description": "Evaluation has invalid fields"}, "502": {"description": "Evaluation could not be saved"}}}
        },
        "/profile": {
            "get": {"tags": ["profile"], "summary": "Get user profile", "security": [{"BearerAuth": []}], "produces": ["application/json"], "responses": {"200": {"description": "User profile retrieved successfully"}, "401": {"description": "Unauthorized"}}},
            "put": {"tags": ["profile"], "summary": "Update user profile", "security": [{"BearerAuth": []}], "consumes": ["application/json"], "produces": ["application/json"], "parameters": [{"in": "body", "name": "profile", "required": true, "schema": {"$ref": "#/definitions/controllers.UpdateProfileRequest"}}], "responses": {"200": {"description": "Profile updated successfully"}, "400": {"description": "Invalid request data"}}}
        },
        "/waitlist": {
            "post": {"tags": ["waitlist"], "summary": "Join the waitlist", "consumes": ["application/json"], "produces": ["application/json"], "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/controllers.WaitlistRequest"}}], "responses": {"201": {"description": "Registered"}, "400": {"description": "Invalid request data"}, "409": {"description": "Email already registered"}}}
        },
        "/api/webhooks/bitmanager": {
            "post": {"tags": ["webhooks"], "summary": "Booking status webhook", "consumes": ["application/json"], "produces": ["application/json"], "parameters": [{"in": "header", "name": "x-api-key", "type": "string", "required": true}, {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/controllers.BookingWebhookRequest"}}], "responses": {"200": {"description": "Booking status updated"}, "400": {"description": "Invalid request"}, "401": {"description": "Unauthorized"}, "404": {"description": "Waitlist entry not found"}, "500": {"description": "Failed to update booking status"}}}
        },
        "/health": {
            "get": {"tags": ["system"], "summary": "Dependency health", "produces": ["application/json"], "responses": {"200": {"description": "All dependencies reachable"}, "503": {"description": "A dependency is down"}}}
        }
    },
    "definitions": {
        "controllers.BookingWebhookRequest": {
            "type": "object",
            "properties": {"email": {"type": "string", "example": "ana@example.com"}, "confirmed": {"type": "boolean", "example": true}}
        },
        "controllers.UpdateProfileRequest": {
            "type": "object",
            "properties": {"first_name": {"type": "string"}, "last_name": {"type": "string"}, "phone": {"type": "string"}, "county": {"type": "string"}, "city": {"type": "string"}}
        },
        "controllers.WaitlistRequest": {
            "type": "object",
            "required": ["firstName", "lastName", "email", "ageInterval", "preferredMonth", "selectedOffers", "gdprConsent"],
            "properties": {"firstName": {"type": "string"}, "lastName": {"type": "string"}, "email": {"type": "string"}, "phone": {"type": "string"}, "ageInterval": {"type": "string"}, "preferredMonth": {"type": "string"}, "selectedOffers": {"type": "array", "items": {"type": "string"}}, "gdprConsent": {"type": "boolean"}}
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Vraja Marii API",
	Description:      "Waitlist, profile and initial evaluation API of the Vraja Marii wellness programme.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
