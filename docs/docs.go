// Package docs регистрирует описание API для /swagger. Генерируется swag init; при изменении
// аннотаций хендлеров перегенерировать: swag init -g cmd/main.go -o docs
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
        "/healthz": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Проверка доступности базы",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.envelope"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/handlers.envelope"}}
                }
            }
        },
        "/matches/addMatch": {
            "post": {
                "description": "В одной транзакции создаются матч, расписание в состоянии \"Pendiente\" и результат 0:0.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["matches"],
                "summary": "Создать матч",
                "parameters": [
                    {
                        "description": "Данные матча",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/services.CreateMatchInput"}
                    }
                ],
                "responses": {
                    "201": {"description": "Матч создан", "schema": {"$ref": "#/definitions/handlers.envelope"}},
                    "400": {"description": "Ошибка валидации или ссылка не найдена", "schema": {"$ref": "#/definitions/handlers.envelope"}},
                    "500": {"description": "Внутренняя ошибка сервера", "schema": {"$ref": "#/definitions/handlers.envelope"}}
                }
            }
        },
        "/goals/topScorers": {
            "get": {
                "description": "Голы сгруппированы по игроку, по убыванию. Без голов - 200 и data: null.",
                "produces": ["application/json"],
                "tags": ["goals"],
                "summary": "Бомбардиры",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.envelope"}}
                }
            }
        },
        "/sanctions/type/{typeId}": {
            "get": {
                "description": "Санкции сгруппированы по игроку: количество и список матчей.",
                "produces": ["application/json"],
                "tags": ["sanctions"],
                "summary": "Наказанные игроки по типу санкции",
                "parameters": [
                    {"type": "string", "description": "Sanction type ID", "name": "typeId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.envelope"}}
                }
            }
        },
        "/players/addMultiplePlayers": {
            "post": {
                "description": "Команда указывается по имени. Если хотя бы одно имя не найдено, ничего не вставляется.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["players"],
                "summary": "Создать игроков пачкой",
                "parameters": [
                    {
                        "description": "Список игроков",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {"type": "array", "items": {"$ref": "#/definitions/services.BulkPlayerInput"}}
                    }
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handlers.envelope"}},
                    "400": {"description": "item <i>: team not found: <name>", "schema": {"$ref": "#/definitions/handlers.envelope"}}
                }
            }
        }
    },
    "definitions": {
        "handlers.envelope": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "data": {}
            }
        },
        "services.CreateMatchInput": {
            "type": "object",
            "required": ["home_team_id", "away_team_id", "competition_id", "roundCode", "match_date", "start_time", "field_name"],
            "properties": {
                "home_team_id": {"type": "string"},
                "away_team_id": {"type": "string"},
                "competition_id": {"type": "string"},
                "roundCode": {"type": "string", "example": "ED64"},
                "match_date": {"type": "string", "example": "2024-08-31"},
                "start_time": {"type": "string", "example": "12:30"},
                "field_name": {"type": "string", "example": "Campo A"}
            }
        },
        "services.BulkPlayerInput": {
            "type": "object",
            "required": ["team_name", "name"],
            "properties": {
                "team_name": {"type": "string"},
                "name": {"type": "string"},
                "document": {"type": "string"},
                "birthdate": {"type": "string", "example": "2001-05-14"},
                "number": {"type": "string", "example": "10"},
                "photo": {"type": "string"},
                "active": {"type": "boolean"}
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
	Title:            "Tournament Admin API",
	Description:      "Администрирование турнира: команды, игроки, матчи, голы и санкции.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
