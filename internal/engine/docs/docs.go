// Package docs registers the Swagger spec served at /swagger/*.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/posts/score": {
            "post": {
                "tags": ["posts"],
                "summary": "Score post text",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/posts/generate": {
            "post": {
                "tags": ["posts"],
                "summary": "Generate a post",
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/posts/generate-batch": {
            "post": {
                "tags": ["posts"],
                "summary": "Generate a review batch",
                "responses": {"201": {"description": "Created"}, "409": {"description": "Conflict"}}
            }
        },
        "/posts/pending": {
            "get": {
                "tags": ["posts"],
                "summary": "List posts awaiting review",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/posts/{id}": {
            "get": {
                "tags": ["posts"],
                "summary": "Get a post by ID",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/posts/{id}/approval": {
            "post": {
                "tags": ["posts"],
                "summary": "Approve or reject a post",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/feedback": {
            "post": {
                "tags": ["feedback"],
                "summary": "Record post feedback",
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/feedback/tags": {
            "get": {
                "tags": ["feedback"],
                "summary": "List the feedback tag vocabulary",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/feedback/history": {
            "get": {
                "tags": ["feedback"],
                "summary": "List feedback history",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/batches/current": {
            "get": {
                "tags": ["batches"],
                "summary": "Get the pending batch",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/batches/{id}": {
            "get": {
                "tags": ["batches"],
                "summary": "Get a batch by ID",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/batches/{id}/posts": {
            "get": {
                "tags": ["batches"],
                "summary": "List the posts of a batch",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/recommendations": {
            "get": {
                "tags": ["recommendations"],
                "summary": "Get story recommendations",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/stats": {
            "get": {
                "tags": ["stats"],
                "summary": "Get engine statistics",
                "responses": {"200": {"description": "OK"}}
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
	Title:            "LinkedIn Content Engine API",
	Description:      "Generates, scores and ranks LinkedIn posts and learns from review feedback.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
