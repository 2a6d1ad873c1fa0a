// Package docs AI News Aggregator API
//
// AI News Aggregator collects AI-related news from RSS feeds and ArXiv,
// classifies each article with an LLM, and serves the results through a
// filterable JSON API with an RSS re-export.
//
//	Schemes: http, https
//	Host: localhost:8080
//	BasePath: /api/v1
//	Version: 1.0.0
//
//	Consumes:
//	- application/json
//
//	Produces:
//	- application/json
//
// swagger:meta
package docs

import "github.com/swaggo/swag"

// @title AI News Aggregator API
// @version 1.0
// @description Aggregates AI news from RSS feeds and ArXiv with LLM classification

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

func init() {
	swag.Register(swag.Name, &swag.Spec{
		InfoInstanceName: "swagger",
		SwaggerTemplate:  docTemplate,
	})
}

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "AI News Aggregator API",
        "description": "Aggregates AI news from RSS feeds and ArXiv with LLM classification",
        "version": "1.0.0",
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        }
    },
    "host": "localhost:8080",
    "basePath": "/api/v1",
    "schemes": ["http", "https"],
    "consumes": ["application/json"],
    "produces": ["application/json"],
    "paths": {
        "/health": {
            "get": {
                "description": "Health check endpoint",
                "summary": "Health Check",
                "operationId": "healthCheck",
                "responses": {
                    "200": {
                        "description": "Service is healthy",
                        "schema": {
                            "type": "object",
                            "properties": {
                                "status": {
                                    "type": "string",
                                    "example": "healthy"
                                },
                                "service": {
                                    "type": "string"
                                },
                                "poller_active": {
                                    "type": "boolean"
                                }
                            }
                        }
                    }
                }
            }
        },
        "/articles": {
            "get": {
                "description": "List aggregated articles ordered by relevance and recency",
                "summary": "List Articles",
                "operationId": "listArticles",
                "parameters": [
                    {
                        "name": "category",
                        "in": "query",
                        "required": false,
                        "type": "string",
                        "description": "Filter by category (breakthrough, company_announcement, policy, funding, research, other)"
                    },
                    {
                        "name": "industry",
                        "in": "query",
                        "required": false,
                        "type": "string",
                        "description": "Filter by industry tag"
                    },
                    {
                        "name": "search",
                        "in": "query",
                        "required": false,
                        "type": "string",
                        "description": "Substring search over title and description"
                    },
                    {
                        "name": "timeRange",
                        "in": "query",
                        "required": false,
                        "type": "string",
                        "description": "One of 24h, 7d, 30d, all (default 24h)"
                    },
                    {
                        "name": "limit",
                        "in": "query",
                        "required": false,
                        "type": "integer",
                        "description": "Maximum number of results (1-100, default 50)"
                    },
                    {
                        "name": "offset",
                        "in": "query",
                        "required": false,
                        "type": "integer",
                        "description": "Number of results to skip"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Article list with total count",
                        "schema": {
                            "type": "object",
                            "properties": {
                                "articles": {
                                    "type": "array",
                                    "items": {
                                        "$ref": "#/definitions/Article"
                                    }
                                },
                                "total": {
                                    "type": "integer"
                                }
                            }
                        }
                    },
                    "400": {
                        "description": "Invalid query parameters"
                    },
                    "500": {
                        "description": "Internal server error"
                    }
                }
            }
        },
        "/articles/{id}": {
            "get": {
                "description": "Get a single article by its ID",
                "summary": "Get Article",
                "operationId": "getArticle",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "integer",
                        "description": "Article ID"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Article",
                        "schema": {
                            "$ref": "#/definitions/Article"
                        }
                    },
                    "404": {
                        "description": "Article not found"
                    }
                }
            }
        },
        "/articles/{id}/summary": {
            "post": {
                "description": "Generate an LLM summary for an article, stored once and reused",
                "summary": "Generate Summary",
                "operationId": "generateSummary",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "integer",
                        "description": "Article ID"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Article summary",
                        "schema": {
                            "type": "object",
                            "properties": {
                                "summary": {
                                    "type": "string"
                                }
                            }
                        }
                    },
                    "404": {
                        "description": "Article not found"
                    },
                    "502": {
                        "description": "Summary generation failed"
                    }
                }
            }
        },
        "/reader": {
            "get": {
                "description": "Extract readable article content from a URL",
                "summary": "Reader Mode",
                "operationId": "readerMode",
                "parameters": [
                    {
                        "name": "url",
                        "in": "query",
                        "required": true,
                        "type": "string",
                        "description": "Article URL"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Extracted content",
                        "schema": {
                            "type": "object",
                            "properties": {
                                "success": {
                                    "type": "boolean"
                                },
                                "data": {
                                    "$ref": "#/definitions/ReadableContent"
                                }
                            }
                        }
                    },
                    "400": {
                        "description": "Missing url parameter"
                    },
                    "502": {
                        "description": "Extraction failed"
                    }
                }
            }
        },
        "/rss": {
            "get": {
                "description": "Re-export stored articles as an RSS 2.0 feed",
                "summary": "Export RSS",
                "operationId": "exportRSS",
                "produces": ["application/rss+xml"],
                "parameters": [
                    {
                        "name": "category",
                        "in": "query",
                        "required": false,
                        "type": "string",
                        "description": "Filter by category"
                    },
                    {
                        "name": "limit",
                        "in": "query",
                        "required": false,
                        "type": "integer",
                        "description": "Maximum number of items (1-100, default 50)"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "RSS 2.0 feed"
                    }
                }
            }
        },
        "/aggregate": {
            "post": {
                "description": "Trigger an aggregation run (admin only, X-Admin-Token header)",
                "summary": "Trigger Aggregation",
                "operationId": "triggerAggregation",
                "responses": {
                    "200": {
                        "description": "Aggregation summary",
                        "schema": {
                            "type": "object",
                            "properties": {
                                "total": {
                                    "type": "integer"
                                },
                                "new": {
                                    "type": "integer"
                                },
                                "errors": {
                                    "type": "integer"
                                }
                            }
                        }
                    },
                    "403": {
                        "description": "Missing or invalid admin token"
                    },
                    "503": {
                        "description": "Storage unavailable"
                    }
                }
            }
        },
        "/aggregate/last": {
            "get": {
                "description": "When aggregation last stored an article",
                "summary": "Last Aggregation",
                "operationId": "lastAggregation",
                "responses": {
                    "200": {
                        "description": "Timestamp of the last aggregation, null if never run"
                    }
                }
            }
        },
        "/poller/status": {
            "get": {
                "description": "Get background poller status",
                "summary": "Get Poller Status",
                "operationId": "getPollerStatus",
                "responses": {
                    "200": {
                        "description": "Poller status",
                        "schema": {
                            "type": "object",
                            "properties": {
                                "is_polling": {
                                    "type": "boolean"
                                },
                                "last_run": {
                                    "type": "string",
                                    "format": "date-time"
                                }
                            }
                        }
                    }
                }
            }
        },
        "/bookmarks": {
            "get": {
                "description": "List the caller's bookmarked articles (X-User-ID header)",
                "summary": "List Bookmarks",
                "operationId": "listBookmarks",
                "responses": {
                    "200": {
                        "description": "Bookmarked articles"
                    },
                    "400": {
                        "description": "Missing X-User-ID header"
                    }
                }
            }
        },
        "/bookmarks/{articleId}": {
            "get": {
                "description": "Check whether an article is bookmarked",
                "summary": "Is Bookmarked",
                "operationId": "isBookmarked",
                "parameters": [
                    {
                        "name": "articleId",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Bookmark state"
                    }
                }
            },
            "post": {
                "description": "Bookmark an article (idempotent)",
                "summary": "Add Bookmark",
                "operationId": "addBookmark",
                "parameters": [
                    {
                        "name": "articleId",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Bookmark added"
                    }
                }
            },
            "delete": {
                "description": "Remove a bookmark",
                "summary": "Remove Bookmark",
                "operationId": "removeBookmark",
                "parameters": [
                    {
                        "name": "articleId",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Bookmark removed"
                    }
                }
            }
        }
    },
    "definitions": {
        "Article": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "integer",
                    "description": "Article ID"
                },
                "source_id": {
                    "type": "string",
                    "description": "Deduplication key from the upstream source"
                },
                "title": {
                    "type": "string",
                    "description": "Article title"
                },
                "description": {
                    "type": "string",
                    "description": "Article excerpt"
                },
                "content": {
                    "type": "string",
                    "description": "Article content"
                },
                "summary": {
                    "type": "string",
                    "description": "Generated summary, if any"
                },
                "url": {
                    "type": "string",
                    "description": "Article URL"
                },
                "image_url": {
                    "type": "string",
                    "description": "Lead image URL"
                },
                "source": {
                    "type": "string",
                    "description": "Feed source name"
                },
                "author": {
                    "type": "string",
                    "description": "Article author"
                },
                "category": {
                    "type": "string",
                    "description": "Classification category"
                },
                "relevance_score": {
                    "type": "integer",
                    "description": "AI relevance score, 0-100"
                },
                "industries": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    },
                    "description": "Relevant industry tags"
                },
                "published_at": {
                    "type": "string",
                    "format": "date-time",
                    "description": "Publication date"
                },
                "created_at": {
                    "type": "string",
                    "format": "date-time",
                    "description": "Ingestion date"
                }
            }
        },
        "ReadableContent": {
            "type": "object",
            "properties": {
                "title": {
                    "type": "string"
                },
                "byline": {
                    "type": "string"
                },
                "excerpt": {
                    "type": "string"
                },
                "content": {
                    "type": "string",
                    "description": "Cleaned article HTML"
                },
                "text_content": {
                    "type": "string",
                    "description": "Plain text content"
                },
                "length": {
                    "type": "integer"
                }
            }
        }
    },
    "tags": [
        {
            "name": "Health",
            "description": "Health check endpoints"
        },
        {
            "name": "Articles",
            "description": "Aggregated article endpoints"
        },
        {
            "name": "Aggregation",
            "description": "Aggregation control endpoints"
        },
        {
            "name": "User Lists",
            "description": "Bookmarks, reading list and read history"
        }
    ]
}`
