// Package docs описание API в формате Swagger 2.0.
// Пересобирается командой swag init -g cmd/meetoutdoors/main.go.
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
		"/chat/{tourId}": {
			"get": {
				"responses": {
					"200": {
						"description": "сообщения",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					},
					"401": {
						"description": "нет токена",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					},
					"403": {
						"description": "не участник",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					},
					"500": {
						"description": "внутренняя ошибка",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"summary": "Сообщения чата",
				"description": "Возвращает последние сообщения чата тура. Доступно только участникам.",
				"tags": [
					"Chat"
				],
				"produces": [
					"application/json"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"description": "ID тура",
						"name": "tourId",
						"in": "path",
						"type": "string",
						"required": true
					},
					{
						"description": "количество сообщений",
						"name": "limit",
						"in": "query",
						"type": "integer",
						"required": false
					}
				]
			},
			"post": {
				"responses": {
					"201": {
						"description": "сообщение",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					},
					"400": {
						"description": "некорректный запрос",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					},
					"401": {
						"description": "нет токена",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					},
					"403": {
						"description": "не участник",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					},
					"422": {
						"description": "ошибка валидации",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					},
					"500": {
						"description": "внутренняя ошибка",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"summary": "Отправить сообщение",
				"description": "Публикует сообщение в чат тура.",
				"tags": [
					"Chat"
				],
				"consumes": [
					"application/json"
				],
				"produces": [
					"application/json"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"description": "ID тура",
						"name": "tourId",
						"in": "path",
						"type": "string",
						"required": true
					},
					{
						"description": "текст сообщения",
						"name": "request",
						"in": "body",
						"schema": {
							"$ref": "#/definitions/models.SendMessageRequest"
						},
						"required": true
					}
				]
			}
		},
		"/hooks/changes": {
			"post": {
				"responses": {
					"202": {
						"description": "принято",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					},
					"400": {
						"description": "некорректное событие",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					},
					"401": {
						"description": "неверный секрет",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					},
					"503": {
						"description": "брокер недоступен",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"summary": "Уведомление об изменении",
				"description": "Принимает событие изменения строки и публикует его в брокер. Проверяет общий секрет.",
				"tags": [
					"Hooks"
				],
				"consumes": [
					"application/json"
				],
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"description": "общий секрет",
						"name": "X-Webhook-Secret",
						"in": "header",
						"type": "string",
						"required": true
					},
					{
						"description": "событие",
						"name": "request",
						"in": "body",
						"schema": {
							"$ref": "#/definitions/models.ChangeEvent"
						},
						"required": true
					}
				]
			}
		},
		"/payments/webhook": {
			"post": {
				"responses": {
					"200": {
						"description": "ok",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					},
					"400": {
						"description": "некорректное событие",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					},
					"401": {
						"description": "неверная подпись",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					},
					"422": {
						"description": "неизвестный пользователь",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					},
					"500": {
						"description": "внутренняя ошибка",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"summary": "Вебхук платёжной системы",
				"description": "Принимает события подписки и обновляет премиум-статус. Проверяет подпись тела.",
				"tags": [
					"Hooks"
				],
				"consumes": [
					"application/json"
				],
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"description": "HMAC-SHA256 подпись тела",
						"name": "X-Api-Signature",
						"in": "header",
						"type": "string",
						"required": true
					}
				]
			}
		},
		"/profile": {
			"post": {
				"responses": {
					"200": {
						"description": "профиль уже есть",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					},
					"201": {
						"description": "профиль создан",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					},
					"400": {
						"description": "некорректный запрос",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					},
					"401": {
						"description": "нет токена",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					},
					"422": {
						"description": "ошибка валидации",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					},
					"500": {
						"description": "внутренняя ошибка",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"summary": "Регистрация профиля",
				"description": "Создаёт профиль при первом входе. Повторный вызов возвращает существующий профиль.",
				"tags": [
					"Profile"
				],
				"consumes": [
					"application/json"
				],
				"produces": [
					"application/json"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"description": "данные профиля",
						"name": "request",
						"in": "body",
						"schema": {
							"$ref": "#/definitions/models.RegisterProfileRequest"
						},
						"required": true
					}
				]
			}
		},
		"/profile/me": {
			"get": {
				"responses": {
					"200": {
						"description": "профиль",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					},
					"401": {
						"description": "нет токена",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					},
					"404": {
						"description": "профиль не найден",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					},
					"500": {
						"description": "внутренняя ошибка",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"summary": "Мой профиль",
				"description": "Возвращает профиль и текущее состояние доступа.",
				"tags": [
					"Profile"
				],
				"produces": [
					"application/json"
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/profiles/{id}/rating": {
			"put": {
				"responses": {
					"200": {
						"description": "сводка оценок",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					},
					"400": {
						"description": "некорректный запрос",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					},
					"401": {
						"description": "нет токена",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					},
					"422": {
						"description": "ошибка валидации",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					},
					"500": {
						"description": "внутренняя ошибка",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"summary": "Оценить пользователя",
				"description": "Ставит или обновляет оценку другого пользователя.",
				"tags": [
					"Ratings"
				],
				"consumes": [
					"application/json"
				],
				"produces": [
					"application/json"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"description": "ID оцениваемого",
						"name": "id",
						"in": "path",
						"type": "string",
						"required": true
					},
					{
						"description": "оценка",
						"name": "request",
						"in": "body",
						"schema": {
							"$ref": "#/definitions/models.RateRequest"
						},
						"required": true
					}
				]
			},
			"get": {
				"responses": {
					"200": {
						"description": "сводка оценок",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					},
					"400": {
						"description": "некорректный запрос",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					},
					"500": {
						"description": "внутренняя ошибка",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"summary": "Сводка оценок",
				"description": "Возвращает среднюю оценку и число оценок пользователя.",
				"tags": [
					"Ratings"
				],
				"produces": [
					"application/json"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"description": "ID пользователя",
						"name": "id",
						"in": "path",
						"type": "string",
						"required": true
					}
				]
			}
		},
		"/tours": {
			"post": {
				"responses": {
					"201": {
						"description": "созданный тур",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					},
					"400": {
						"description": "некорректный запрос",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					},
					"401": {
						"description": "нет токена",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					},
					"403": {
						"description": "нет доступа",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					},
					"422": {
						"description": "ошибка валидации",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					},
					"500": {
						"description": "внутренняя ошибка",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"summary": "Создать тур",
				"description": "Создаёт тур от имени текущего пользователя. Требует премиум или активный пробный период.",
				"tags": [
					"Tours"
				],
				"consumes": [
					"application/json"
				],
				"produces": [
					"application/json"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"description": "параметры тура",
						"name": "request",
						"in": "body",
						"schema": {
							"$ref": "#/definitions/models.CreateTourRequest"
						},
						"required": true
					}
				]
			},
			"get": {
				"responses": {
					"200": {
						"description": "туры",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					},
					"401": {
						"description": "нет токена",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					},
					"500": {
						"description": "внутренняя ошибка",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"summary": "Список туров",
				"description": "Возвращает туры со статусом, вычисленным на момент запроса.",
				"tags": [
					"Tours"
				],
				"produces": [
					"application/json"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"description": "размер страницы",
						"name": "limit",
						"in": "query",
						"type": "integer",
						"required": false
					},
					{
						"description": "смещение",
						"name": "offset",
						"in": "query",
						"type": "integer",
						"required": false
					}
				]
			}
		},
		"/tours/{id}": {
			"get": {
				"responses": {
					"200": {
						"description": "тур",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					},
					"401": {
						"description": "нет токена",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					},
					"404": {
						"description": "тур не найден",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					},
					"500": {
						"description": "внутренняя ошибка",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"summary": "Получить тур",
				"description": "Возвращает тур по ID вместе со статусом.",
				"tags": [
					"Tours"
				],
				"produces": [
					"application/json"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"description": "ID тура",
						"name": "id",
						"in": "path",
						"type": "string",
						"required": true
					}
				]
			}
		},
		"/tours/{id}/join": {
			"post": {
				"responses": {
					"200": {
						"description": "тур после записи",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					},
					"401": {
						"description": "нет токена",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					},
					"403": {
						"description": "нет доступа",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					},
					"404": {
						"description": "тур не найден",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					},
					"409": {
						"description": "мест нет или уже записан",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					},
					"500": {
						"description": "внутренняя ошибка",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"summary": "Записаться в тур",
				"description": "Добавляет текущего пользователя в участники тура, если есть свободные места.",
				"tags": [
					"Tours"
				],
				"produces": [
					"application/json"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"description": "ID тура",
						"name": "id",
						"in": "path",
						"type": "string",
						"required": true
					}
				]
			},
			"delete": {
				"responses": {
					"200": {
						"description": "ok",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					},
					"401": {
						"description": "нет токена",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					},
					"404": {
						"description": "участие не найдено",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					},
					"500": {
						"description": "внутренняя ошибка",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"summary": "Покинуть тур",
				"description": "Удаляет текущего пользователя из участников тура.",
				"tags": [
					"Tours"
				],
				"produces": [
					"application/json"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"description": "ID тура",
						"name": "id",
						"in": "path",
						"type": "string",
						"required": true
					}
				]
			}
		},
		"/tours/{id}/participants": {
			"get": {
				"responses": {
					"200": {
						"description": "участники",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					},
					"401": {
						"description": "нет токена",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					},
					"404": {
						"description": "тур не найден",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					},
					"500": {
						"description": "внутренняя ошибка",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"summary": "Участники тура",
				"description": "Возвращает участников тура.",
				"tags": [
					"Tours"
				],
				"produces": [
					"application/json"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"description": "ID тура",
						"name": "id",
						"in": "path",
						"type": "string",
						"required": true
					}
				]
			}
		}
	},
	"definitions": {
		"models.ChangeEvent": {
			"type": "object",
			"properties": {
				"type": {
					"type": "string",
					"enum": [
						"INSERT",
						"UPDATE",
						"DELETE"
					]
				},
				"table": {
					"type": "string"
				},
				"schema": {
					"type": "string"
				},
				"record": {
					"type": "object"
				},
				"old_record": {
					"type": "object"
				}
			}
		},
		"models.CreateTourRequest": {
			"type": "object",
			"required": [
				"title"
			],
			"properties": {
				"title": {
					"type": "string",
					"maxLength": 200
				},
				"description": {
					"type": "string",
					"maxLength": 5000
				},
				"location": {
					"type": "string",
					"maxLength": 200
				},
				"start": {
					"type": "string",
					"format": "date-time"
				},
				"end": {
					"type": "string",
					"format": "date-time"
				},
				"max_people": {
					"type": "integer",
					"minimum": 1,
					"maximum": 10000
				},
				"application_deadline": {
					"type": "string",
					"format": "date-time"
				}
			}
		},
		"models.RateRequest": {
			"type": "object",
			"required": [
				"score"
			],
			"properties": {
				"score": {
					"type": "integer",
					"minimum": 1,
					"maximum": 5
				},
				"comment": {
					"type": "string",
					"maxLength": 1000
				}
			}
		},
		"models.RegisterProfileRequest": {
			"type": "object",
			"required": [
				"full_name"
			],
			"properties": {
				"full_name": {
					"type": "string",
					"maxLength": 120
				}
			}
		},
		"models.SendMessageRequest": {
			"type": "object",
			"required": [
				"body"
			],
			"properties": {
				"body": {
					"type": "string",
					"maxLength": 2000
				}
			}
		},
		"response.Response": {
			"type": "object",
			"properties": {
				"status": {
					"type": "string"
				},
				"error": {
					"type": "string"
				},
				"reason": {
					"type": "string"
				},
				"data": {}
			}
		}
	},
	"securityDefinitions": {
		"BearerAuth": {
			"description": "Type \"Bearer\" followed by a space and JWT token.",
			"type": "apiKey",
			"name": "Authorization",
			"in": "header"
		}
	}
}`

// SwaggerInfo метаданные API, подставляемые в шаблон.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "MeetOutdoors API",
	Description:      "API для совместных походов: туры, участники, чат, оценки и премиум-доступ",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
