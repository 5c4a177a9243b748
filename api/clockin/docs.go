// Package clockin holds the generated OpenAPI document served at /swagger/.
// Regenerate with: swag init -g internal/clockin/http/router.go -o api/clockin
package clockin

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "AussieBroadWAN Team",
            "url": "https://github.com/aussiebroadwan/clockin"
        },
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/v1/login/qr": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Login"
                ],
                "summary": "Badge login",
                "responses": {
                    "200": {
                        "description": "One-time token to redeem"
                    },
                    "400": {
                        "description": "QR token is required",
                        "schema": {
                            "$ref": "#/definitions/clocksdk.ErrorResponse"
                        }
                    },
                    "401": {
                        "description": "Invalid QR code",
                        "schema": {
                            "$ref": "#/definitions/clocksdk.ErrorResponse"
                        }
                    },
                    "403": {
                        "description": "Your account is pending approval",
                        "schema": {
                            "$ref": "#/definitions/clocksdk.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/v1/login/staff-number": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Login"
                ],
                "summary": "Staff number login",
                "responses": {
                    "200": {
                        "description": "One-time token to redeem, with user_id"
                    },
                    "400": {
                        "description": "Staff number is required",
                        "schema": {
                            "$ref": "#/definitions/clocksdk.ErrorResponse"
                        }
                    },
                    "401": {
                        "description": "Invalid staff number",
                        "schema": {
                            "$ref": "#/definitions/clocksdk.ErrorResponse"
                        }
                    },
                    "403": {
                        "description": "Your account is pending approval",
                        "schema": {
                            "$ref": "#/definitions/clocksdk.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/v1/login/verify": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Login"
                ],
                "summary": "Redeem a one-time login token",
                "responses": {
                    "200": {
                        "description": "Session tokens and client route"
                    },
                    "401": {
                        "description": "Verification failed",
                        "schema": {
                            "$ref": "#/definitions/clocksdk.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/v1/login/password": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Login"
                ],
                "summary": "Password login",
                "responses": {
                    "200": {
                        "description": "Session tokens and client route"
                    },
                    "401": {
                        "description": "Invalid email or password",
                        "schema": {
                            "$ref": "#/definitions/clocksdk.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/v1/register": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Account"
                ],
                "summary": "Register a staff account",
                "responses": {
                    "201": {
                        "description": "user_id, qr_code"
                    },
                    "400": {
                        "description": "Validation failed",
                        "schema": {
                            "$ref": "#/definitions/clocksdk.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Email or staff number already registered",
                        "schema": {
                            "$ref": "#/definitions/clocksdk.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/v1/token/refresh": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Account"
                ],
                "summary": "Refresh a session",
                "responses": {
                    "200": {
                        "description": "New token pair"
                    },
                    "401": {
                        "description": "Invalid refresh token",
                        "schema": {
                            "$ref": "#/definitions/clocksdk.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/v1/logout": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Account"
                ],
                "summary": "Sign out",
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/clocksdk.ErrorResponse"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/v1/me": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Profile"
                ],
                "summary": "Get own profile",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            },
            "patch": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Profile"
                ],
                "summary": "Update own profile",
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "409": {
                        "description": "Staff number already taken",
                        "schema": {
                            "$ref": "#/definitions/clocksdk.ErrorResponse"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/v1/me/badge.png": {
            "get": {
                "produces": [
                    "image/png"
                ],
                "tags": [
                    "Profile"
                ],
                "summary": "Get own badge",
                "responses": {
                    "200": {
                        "description": "QR code PNG"
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/v1/attendance/status": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Attendance"
                ],
                "summary": "Current clock status",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/v1/attendance/clock-in": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Attendance"
                ],
                "summary": "Clock in",
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Invalid activity",
                        "schema": {
                            "$ref": "#/definitions/clocksdk.ErrorResponse"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/v1/attendance/clock-out": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Attendance"
                ],
                "summary": "Clock out",
                "responses": {
                    "200": {
                        "description": "The closed record"
                    },
                    "409": {
                        "description": "You are not clocked in",
                        "schema": {
                            "$ref": "#/definitions/clocksdk.ErrorResponse"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/v1/attendance/history": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Attendance"
                ],
                "summary": "Attendance history",
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Invalid date range",
                        "schema": {
                            "$ref": "#/definitions/clocksdk.ErrorResponse"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/v1/password-requests": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Password requests"
                ],
                "summary": "Ask for a password reset",
                "responses": {
                    "201": {
                        "description": "Created"
                    },
                    "409": {
                        "description": "You already have a pending request",
                        "schema": {
                            "$ref": "#/definitions/clocksdk.ErrorResponse"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            },
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Password requests"
                ],
                "summary": "List own password requests",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/v1/password/reset": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Password requests"
                ],
                "summary": "Reset a password",
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "401": {
                        "description": "Invalid or expired reset link",
                        "schema": {
                            "$ref": "#/definitions/clocksdk.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/v1/departments": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Departments"
                ],
                "summary": "List departments",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/v1/admin/departments": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Admin"
                ],
                "summary": "Create a department",
                "responses": {
                    "201": {
                        "description": "Created"
                    },
                    "409": {
                        "description": "A department with this name already exists",
                        "schema": {
                            "$ref": "#/definitions/clocksdk.ErrorResponse"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/v1/admin/departments/{id}": {
            "put": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Admin"
                ],
                "summary": "Rename a department",
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "404": {
                        "description": "Department not found",
                        "schema": {
                            "$ref": "#/definitions/clocksdk.ErrorResponse"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ]
            },
            "delete": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Admin"
                ],
                "summary": "Delete a department",
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "404": {
                        "description": "Department not found",
                        "schema": {
                            "$ref": "#/definitions/clocksdk.ErrorResponse"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        },
        "/v1/admin/staff": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Admin"
                ],
                "summary": "List staff",
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/clocksdk.ErrorResponse"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/v1/admin/staff/{id}/approve": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Admin"
                ],
                "summary": "Approve a registration",
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "404": {
                        "description": "Profile not found",
                        "schema": {
                            "$ref": "#/definitions/clocksdk.ErrorResponse"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        },
        "/v1/admin/staff/{id}/work-status": {
            "put": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Admin"
                ],
                "summary": "Set work status",
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Invalid work status",
                        "schema": {
                            "$ref": "#/definitions/clocksdk.ErrorResponse"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        },
        "/v1/admin/staff/{id}/role": {
            "put": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Admin"
                ],
                "summary": "Set role",
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Invalid role",
                        "schema": {
                            "$ref": "#/definitions/clocksdk.ErrorResponse"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        },
        "/v1/admin/staff/{id}": {
            "patch": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Admin"
                ],
                "summary": "Edit staff details",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ]
            },
            "delete": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Admin"
                ],
                "summary": "Delete a staff member",
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "404": {
                        "description": "Profile not found",
                        "schema": {
                            "$ref": "#/definitions/clocksdk.ErrorResponse"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        },
        "/v1/admin/staff/{id}/qr/rotate": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Admin"
                ],
                "summary": "Issue a new badge",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        },
        "/v1/admin/staff/{id}/attendance": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Admin"
                ],
                "summary": "Staff attendance history",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        },
        "/v1/admin/password-requests": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Admin"
                ],
                "summary": "List password requests",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/v1/admin/password-requests/process": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Admin"
                ],
                "summary": "Approve or reject a password request",
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Any failure",
                        "schema": {
                            "$ref": "#/definitions/clocksdk.ErrorResponse"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/v1/admin/login-activity": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Admin"
                ],
                "summary": "Login audit trail",
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Invalid login method or range",
                        "schema": {
                            "$ref": "#/definitions/clocksdk.ErrorResponse"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/v1/bootstrap": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Bootstrap"
                ],
                "summary": "Create the first admin",
                "responses": {
                    "201": {
                        "description": "Created"
                    },
                    "401": {
                        "description": "Invalid bootstrap token",
                        "schema": {
                            "$ref": "#/definitions/clocksdk.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Bootstrap not enabled",
                        "schema": {
                            "$ref": "#/definitions/clocksdk.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Already bootstrapped",
                        "schema": {
                            "$ref": "#/definitions/clocksdk.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/.well-known/jwks.json": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "well-known"
                ],
                "summary": "Get JWKS",
                "responses": {
                    "200": {
                        "description": "The JSON Web Key Set"
                    }
                }
            }
        },
        "/livez": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Health"
                ],
                "summary": "Liveness probe",
                "responses": {
                    "200": {
                        "description": "status, uptime, version"
                    }
                }
            }
        },
        "/readyz": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Health"
                ],
                "summary": "Readiness probe",
                "responses": {
                    "200": {
                        "description": "status, uptime, version, checks"
                    },
                    "503": {
                        "description": "a dependency is down",
                        "schema": {
                            "$ref": "#/definitions/clocksdk.ErrorResponse"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "clocksdk.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {
                    "type": "string"
                }
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "JWT access token. Format: \"Bearer {token}\".",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "0.1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "Clockin Staff Attendance API",
	Description:      "Staff sign in with a badge QR code, a staff number or a password, clock in and out\nof activities, and ask admins for password resets.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
