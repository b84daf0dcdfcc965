// Package docs holds the OpenAPI document served by swaggerkit
// regenerate with swag init after changing handler annotations
package docs

import "github.com/swaggo/swag/v2"

const docTemplate = `{
    "openapi": "3.1.0",
    "info": {
        "title": "{{.Title}}",
        "description": "{{escape .Description}}",
        "version": "{{.Version}}"
    },
    "paths": {
        "/search": {
            "get": {
                "tags": ["Search"],
                "summary": "Keyword search over rulings",
                "parameters": [
                    {"name": "q", "in": "query", "schema": {"type": "string"}},
                    {"name": "limit", "in": "query", "schema": {"type": "integer", "default": 10, "minimum": 1, "maximum": 100}},
                    {"name": "offset", "in": "query", "schema": {"type": "integer", "default": 0, "minimum": 0, "maximum": 10000}}
                ],
                "responses": {
                    "200": {"description": "ok", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/domain.Result"}}}}
                }
            },
            "post": {
                "tags": ["Search"],
                "summary": "Keyword search over rulings",
                "requestBody": {"required": true, "content": {"application/json": {"schema": {"$ref": "#/components/schemas/domain.SearchBody"}}}},
                "responses": {
                    "200": {"description": "ok", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/domain.Result"}}}}
                }
            }
        },
        "/search/index": {
            "post": {
                "tags": ["Search"],
                "summary": "Rebuild the search index from the ruling store",
                "parameters": [
                    {"name": "batch_size", "in": "query", "schema": {"type": "integer", "default": 1000}}
                ],
                "responses": {
                    "200": {"description": "ok", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/domain.ReindexResult"}}}}
                }
            }
        },
        "/search/index/count": {
            "get": {
                "tags": ["Search"],
                "summary": "Number of indexed documents",
                "responses": {
                    "200": {"description": "ok", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/domain.CountResult"}}}}
                }
            }
        },
        "/search/index/{id}": {
            "post": {
                "tags": ["Search"],
                "summary": "Index one ruling by id",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "schema": {"type": "string"}}
                ],
                "responses": {
                    "200": {"description": "ok", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/domain.IndexOneResult"}}}}
                }
            }
        },
        "/rulings": {
            "put": {
                "tags": ["Rulings"],
                "summary": "Insert or update a ruling by case number and date",
                "requestBody": {"required": true, "content": {"application/json": {"schema": {"$ref": "#/components/schemas/domain.UpsertInput"}}}},
                "responses": {
                    "200": {"description": "updated", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/domain.UpsertResult"}}}},
                    "201": {"description": "created", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/domain.UpsertResult"}}}}
                }
            }
        },
        "/rulings/{case_number}": {
            "get": {
                "tags": ["Rulings"],
                "summary": "Newest ruling for a case number",
                "parameters": [
                    {"name": "case_number", "in": "path", "required": true, "schema": {"type": "string"}, "example": "2020다12345"}
                ],
                "responses": {
                    "200": {"description": "ok", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/domain.Ruling"}}}},
                    "404": {"description": "not found", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/ErrorResponse"}}}}
                }
            }
        },
        "/meta/health": {
            "get": {"tags": ["Meta"], "summary": "Liveness and uptime", "responses": {"200": {"description": "ok"}}}
        },
        "/meta/ready": {
            "get": {"tags": ["Meta"], "summary": "Readiness probe with dependency checks", "responses": {"200": {"description": "ok"}}}
        },
        "/meta/version": {
            "get": {"tags": ["Meta"], "summary": "Build and version info", "responses": {"200": {"description": "ok"}}}
        }
    },
    "components": {
        "schemas": {
            "domain.SearchBody": {
                "type": "object",
                "properties": {
                    "q": {"type": "string", "example": "손해배상 판결"},
                    "limit": {"type": "integer", "minimum": 1, "maximum": 100, "default": 10, "example": 10},
                    "offset": {"type": "integer", "minimum": 0, "maximum": 10000, "default": 0, "example": 0}
                }
            },
            "domain.Hit": {
                "type": "object",
                "properties": {
                    "id": {"type": "string"},
                    "case_number": {"type": "string"},
                    "case_date": {"type": "string", "format": "date"},
                    "case_name": {"type": "string"},
                    "case_result": {"type": "string", "nullable": true},
                    "case_court": {"type": "string", "nullable": true},
                    "case_court_code": {"type": "integer", "nullable": true},
                    "case_type": {"type": "string", "nullable": true},
                    "case_type_code": {"type": "integer", "nullable": true},
                    "case_result_type": {"type": "string", "nullable": true},
                    "case_result_decision": {"type": "string", "nullable": true},
                    "case_result_summary": {"type": "string", "nullable": true},
                    "reference": {"type": "string", "nullable": true},
                    "reference_case": {"type": "string", "nullable": true},
                    "case_precedent": {"type": "string", "nullable": true},
                    "score": {"type": "number", "nullable": true}
                }
            },
            "domain.Result": {
                "type": "object",
                "properties": {
                    "query": {"type": "string"},
                    "limit": {"type": "integer"},
                    "offset": {"type": "integer"},
                    "total": {"type": "integer"},
                    "items": {"type": "array", "items": {"$ref": "#/components/schemas/domain.Hit"}}
                }
            },
            "domain.Failure": {
                "type": "object",
                "properties": {"id": {"type": "string"}, "reason": {"type": "string"}}
            },
            "domain.ReindexResult": {
                "type": "object",
                "properties": {
                    "indexed": {"type": "integer"},
                    "failed": {"type": "integer"},
                    "index": {"type": "string", "example": "law"},
                    "batches": {"type": "integer"},
                    "failures": {"type": "array", "items": {"$ref": "#/components/schemas/domain.Failure"}}
                }
            },
            "domain.IndexOneResult": {
                "type": "object",
                "properties": {
                    "indexed": {"type": "integer"},
                    "id": {"type": "string"},
                    "detail": {"type": "string", "enum": ["not_found", "rejected"]},
                    "reason": {"type": "string"}
                }
            },
            "domain.CountResult": {
                "type": "object",
                "properties": {"index": {"type": "string"}, "count": {"type": "integer"}}
            },
            "domain.UpsertInput": {
                "type": "object",
                "required": ["case_number", "case_date", "case_name"],
                "properties": {
                    "case_number": {"type": "string", "maxLength": 100, "example": "2020다12345"},
                    "case_date": {"type": "string", "example": "2021-03-04"},
                    "case_name": {"type": "string", "maxLength": 255, "example": "손해배상(기)"},
                    "case_result": {"type": "string"},
                    "case_court": {"type": "string", "example": "대법원"},
                    "case_court_code": {"type": "integer", "example": 400201},
                    "case_type": {"type": "string", "example": "민사"},
                    "case_type_code": {"type": "integer", "example": 400101},
                    "case_result_type": {"type": "string", "example": "판결"},
                    "case_result_decision": {"type": "string"},
                    "case_result_summary": {"type": "string"},
                    "reference": {"type": "string"},
                    "reference_case": {"type": "string"},
                    "case_precedent": {"type": "string"}
                }
            },
            "domain.UpsertResult": {
                "type": "object",
                "properties": {"id": {"type": "string"}, "created": {"type": "boolean"}}
            },
            "domain.Ruling": {
                "type": "object",
                "properties": {
                    "id": {"type": "string"},
                    "case_number": {"type": "string"},
                    "case_date": {"type": "string", "format": "date-time"},
                    "case_name": {"type": "string"},
                    "case_court": {"type": "string"},
                    "case_result_summary": {"type": "string"},
                    "case_precedent": {"type": "string"},
                    "created_at": {"type": "string", "format": "date-time"},
                    "updated_at": {"type": "string", "format": "date-time"}
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Title:            "lawsearch API",
	Description:      "Korean court ruling search: index maintenance, keyword retrieval and ruling upserts.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
