// Package docs registers the OpenAPI document served under /swagger.
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
        "/api/order": {
            "post": {
                "tags": ["orders"],
                "summary": "Регистрация заказа",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"name": "order", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CreateOrderRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.OrderResponse"}},
                    "400": {"description": "Неверные данные или адрес не найден", "schema": {"$ref": "#/definitions/dto.BaseError"}},
                    "404": {"description": "Товар не найден", "schema": {"$ref": "#/definitions/dto.BaseError"}},
                    "500": {"description": "Внутренняя ошибка", "schema": {"$ref": "#/definitions/dto.BaseError"}}
                }
            }
        },
        "/api/orders": {
            "get": {
                "tags": ["orders"],
                "summary": "Список заказов",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "status", "in": "query"},
                    {"type": "integer", "name": "limit", "in": "query"},
                    {"type": "integer", "name": "offset", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.OrderListResponse"}}
                }
            }
        },
        "/api/orders/{id}": {
            "get": {
                "tags": ["orders"],
                "summary": "Заказ по id",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.OrderResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.BaseError"}}
                }
            }
        },
        "/api/orders/{id}/address": {
            "patch": {
                "tags": ["orders"],
                "summary": "Смена адреса доставки",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.UpdateAddressRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.OrderResponse"}},
                    "400": {"description": "Адрес не найден", "schema": {"$ref": "#/definitions/dto.BaseError"}}
                }
            }
        },
        "/api/orders/{id}/candidates": {
            "get": {
                "tags": ["orders"],
                "summary": "Рестораны, способные приготовить заказ",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.CandidateResponse"}}}
                }
            }
        },
        "/api/orders/{id}/candidates/recompute": {
            "post": {
                "tags": ["orders"],
                "summary": "Пересчёт расстояний до ресторанов",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.CandidateResponse"}}}
                }
            }
        },
        "/api/orders/{id}/restaurant": {
            "put": {
                "tags": ["orders"],
                "summary": "Назначение готовящего ресторана",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.AssignRestaurantRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.OrderResponse"}},
                    "409": {"description": "Ресторан не может приготовить заказ", "schema": {"$ref": "#/definitions/dto.BaseError"}}
                }
            }
        },
        "/api/orders/{id}/status": {
            "post": {
                "tags": ["orders"],
                "summary": "Перевод заказа в следующий статус",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.AdvanceStatusRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.OrderResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/dto.BaseError"}}
                }
            }
        },
        "/api/products": {
            "get": {
                "tags": ["catalog"],
                "summary": "Товары, доступные хотя бы в одном ресторане",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.ProductResponse"}}}
                }
            },
            "post": {
                "tags": ["catalog"],
                "summary": "Создание товара",
                "parameters": [{"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CreateProductRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.ProductResponse"}}
                }
            }
        },
        "/api/products/{id}": {
            "patch": {
                "tags": ["catalog"],
                "summary": "Изменение цены товара",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.UpdatePriceRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.ProductResponse"}}
                }
            }
        },
        "/api/categories": {
            "post": {
                "tags": ["catalog"],
                "summary": "Создание категории",
                "parameters": [{"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CreateCategoryRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.CategoryResponse"}}
                }
            }
        },
        "/api/restaurants": {
            "get": {
                "tags": ["restaurants"],
                "summary": "Список ресторанов",
                "parameters": [{"type": "array", "items": {"type": "string"}, "collectionFormat": "multi", "name": "products", "in": "query"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.RestaurantResponse"}}}
                }
            },
            "post": {
                "tags": ["restaurants"],
                "summary": "Создание ресторана",
                "parameters": [{"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.RestaurantRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.RestaurantResponse"}}
                }
            }
        },
        "/api/restaurants/{id}": {
            "patch": {
                "tags": ["restaurants"],
                "summary": "Изменение ресторана",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.RestaurantPatchRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.RestaurantResponse"}}
                }
            }
        },
        "/api/restaurants/{id}/menu": {
            "get": {
                "tags": ["restaurants"],
                "summary": "Меню ресторана",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.MenuItemResponse"}}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.BaseError"}}
                }
            }
        },
        "/api/restaurants/{id}/menu/{product_id}": {
            "put": {
                "tags": ["restaurants"],
                "summary": "Доступность товара в ресторане",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"type": "string", "name": "product_id", "in": "path", "required": true},
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.MenuAvailabilityRequest"}}
                ],
                "responses": {"204": {"description": "No Content"}}
            }
        }
    },
    "definitions": {
        "dto.BaseError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "details": {"type": "string"},
                "fields": {"type": "array", "items": {"$ref": "#/definitions/dto.FieldError"}}
            }
        },
        "dto.FieldError": {
            "type": "object",
            "properties": {"field": {"type": "string"}, "message": {"type": "string"}, "tag": {"type": "string"}}
        },
        "dto.OrderProductRequest": {
            "type": "object",
            "required": ["product", "quantity"],
            "properties": {"product": {"type": "string"}, "quantity": {"type": "integer"}}
        },
        "dto.CreateOrderRequest": {
            "type": "object",
            "required": ["firstname", "lastname", "phonenumber", "address", "products"],
            "properties": {
                "firstname": {"type": "string"},
                "lastname": {"type": "string"},
                "phonenumber": {"type": "string"},
                "address": {"type": "string"},
                "payment": {"type": "string", "enum": ["cash", "card", "online"]},
                "comment": {"type": "string"},
                "products": {"type": "array", "items": {"$ref": "#/definitions/dto.OrderProductRequest"}}
            }
        },
        "dto.UpdateAddressRequest": {
            "type": "object", "required": ["address"], "properties": {"address": {"type": "string"}}
        },
        "dto.AssignRestaurantRequest": {
            "type": "object", "required": ["restaurant_id"], "properties": {"restaurant_id": {"type": "string"}}
        },
        "dto.AdvanceStatusRequest": {
            "type": "object",
            "required": ["status"],
            "properties": {"status": {"type": "string", "enum": ["not_processed", "cooking", "on_way", "delivered"]}}
        },
        "dto.OrderItemResponse": {
            "type": "object",
            "properties": {
                "product_id": {"type": "string"},
                "product_name": {"type": "string"},
                "quantity": {"type": "integer"},
                "unit_price": {"type": "string"},
                "line_total": {"type": "string"}
            }
        },
        "dto.OrderResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "firstname": {"type": "string"},
                "lastname": {"type": "string"},
                "phonenumber": {"type": "string"},
                "address": {"type": "string"},
                "status": {"type": "string"},
                "payment": {"type": "string"},
                "comment": {"type": "string"},
                "preparing_restaurant_id": {"type": "string"},
                "price": {"type": "string"},
                "registered_at": {"type": "string"},
                "processed_at": {"type": "string"},
                "delivered_at": {"type": "string"},
                "items": {"type": "array", "items": {"$ref": "#/definitions/dto.OrderItemResponse"}}
            }
        },
        "dto.OrderListResponse": {
            "type": "object",
            "properties": {
                "orders": {"type": "array", "items": {"$ref": "#/definitions/dto.OrderResponse"}},
                "total": {"type": "integer"}
            }
        },
        "dto.CandidateResponse": {
            "type": "object",
            "properties": {
                "restaurant_id": {"type": "string"},
                "restaurant_name": {"type": "string"},
                "address": {"type": "string"},
                "distance_meters": {"type": "number"},
                "within_radius": {"type": "boolean"}
            }
        },
        "dto.CreateCategoryRequest": {
            "type": "object", "required": ["name"], "properties": {"name": {"type": "string"}}
        },
        "dto.CategoryResponse": {
            "type": "object", "properties": {"id": {"type": "string"}, "name": {"type": "string"}}
        },
        "dto.CreateProductRequest": {
            "type": "object",
            "required": ["name"],
            "properties": {
                "name": {"type": "string"},
                "category_id": {"type": "string"},
                "price": {"type": "string"},
                "image": {"type": "string"},
                "special_status": {"type": "boolean"},
                "description": {"type": "string"}
            }
        },
        "dto.UpdatePriceRequest": {
            "type": "object", "properties": {"price": {"type": "string"}}
        },
        "dto.ProductResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "price": {"type": "string"},
                "special_status": {"type": "boolean"},
                "description": {"type": "string"},
                "image": {"type": "string"},
                "category": {"$ref": "#/definitions/dto.CategoryResponse"}
            }
        },
        "dto.RestaurantRequest": {
            "type": "object",
            "required": ["name"],
            "properties": {"name": {"type": "string"}, "address": {"type": "string"}, "contact_phone": {"type": "string"}}
        },
        "dto.RestaurantPatchRequest": {
            "type": "object",
            "properties": {"name": {"type": "string"}, "address": {"type": "string"}, "contact_phone": {"type": "string"}}
        },
        "dto.MenuAvailabilityRequest": {
            "type": "object", "required": ["availability"], "properties": {"availability": {"type": "boolean"}}
        },
        "dto.MenuItemResponse": {
            "type": "object",
            "properties": {
                "product": {"$ref": "#/definitions/dto.ProductResponse"},
                "availability": {"type": "boolean"}
            }
        },
        "dto.RestaurantResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "address": {"type": "string"},
                "contact_phone": {"type": "string"},
                "lon": {"type": "number"},
                "lat": {"type": "number"}
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
	Title:            "FoodCart API",
	Description:      "API для управления заказами доставки еды",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
