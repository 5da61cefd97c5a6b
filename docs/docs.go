// Package docs registers the OpenAPI document served at /swagger/doc.json.
// Keep it in sync with the godoc annotations in internal/httpapi.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/predict": {
            "post": {
                "description": "Classifies six tumor measurements. Model outcomes (including an unavailable model) are returned with 200.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["predict"],
                "summary": "Predict a diagnosis",
                "parameters": [
                    {
                        "description": "Feature values",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/types.PredictRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.PredictResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "415": {"description": "Unsupported Media Type", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            }
        },
        "/status": {
            "get": {
                "produces": ["application/json"],
                "tags": ["status"],
                "summary": "Service status",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.StatusResponse"}}
                }
            }
        }
    },
    "definitions": {
        "types.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "integer", "example": 400},
                "error": {"type": "string", "example": "invalid JSON body"}
            }
        },
        "types.ModelInfo": {
            "type": "object",
            "properties": {
                "classes": {"type": "array", "items": {"type": "string"}},
                "features": {"type": "array", "items": {"type": "string"}},
                "path": {"type": "string", "example": "/srv/diagnosd/cancermodel.json"},
                "trained_at_unix": {"type": "integer", "example": 1700000000},
                "trees": {"type": "integer", "example": 100}
            }
        },
        "types.PredictRequest": {
            "type": "object",
            "properties": {
                "mean_area": {"type": "number", "example": 600},
                "mean_compactness": {"type": "number", "example": 0.1},
                "mean_perimeter": {"type": "number", "example": 90},
                "mean_radius": {"type": "number", "example": 14},
                "mean_smoothness": {"type": "number", "example": 0.1},
                "mean_texture": {"type": "number", "example": 20}
            }
        },
        "types.PredictResponse": {
            "type": "object",
            "properties": {
                "kind": {"type": "string", "example": "success"},
                "label": {"type": "string", "example": "benign"},
                "message": {"type": "string"},
                "text": {"type": "string", "example": "Prediction: Benign (Non-Cancerous)"}
            }
        },
        "types.StatusResponse": {
            "type": "object",
            "properties": {
                "failures_total": {"type": "integer", "example": 0},
                "model": {"$ref": "#/definitions/types.ModelInfo"},
                "predictions_total": {"type": "integer", "example": 12},
                "reason": {"type": "string"},
                "server_time_unix": {"type": "integer", "example": 1700000000},
                "state": {"type": "string", "example": "ready"},
                "unavailable_total": {"type": "integer", "example": 0},
                "uptime_seconds": {"type": "integer", "example": 3600}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "diagnosd API",
	Description:      "Breast tumor diagnosis predictions from a pre-trained random forest.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
