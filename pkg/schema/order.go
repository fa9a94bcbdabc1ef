package schema

import (
	"time"

	"github.com/hamba/avro/v2"
)

// Money amounts travel as decimal strings to keep them exact.
const OrderSchemaTextV1 = `{
	"type": "record",
	"namespace": "storefront.orders",
	"name": "order",
	"fields": [
		{"name": "order_id", "type": "string"},
		{"name": "placed_at", "type": {"type": "long", "logicalType": "timestamp-millis"}},
		{"name": "payment_method", "type": "string"},
		{"name": "country", "type": "string"},
		{"name": "items", "type": {
			"type": "array",
			"items": {
				"type": "record",
				"name": "order_item",
				"fields": [
					{"name": "product_id", "type": "int"},
					{"name": "name", "type": "string"},
					{"name": "size", "type": "string"},
					{"name": "color", "type": "string"},
					{"name": "price", "type": "double"},
					{"name": "quantity", "type": "int"}
				]
			}
		}},
		{"name": "subtotal", "type": "string"},
		{"name": "shipping", "type": "string"},
		{"name": "tax", "type": "string"},
		{"name": "total", "type": "string"}
	]
}`

const OrderStatsSchemaTextV1 = `{
	"type": "record",
	"namespace": "storefront.orders",
	"name": "order_stats",
	"fields": [
		{"name": "orders", "type": "long"},
		{"name": "items", "type": "long"},
		{"name": "revenue", "type": "string"}
	]
}`

type (
	OrderV1 struct {
		OrderID       string        `avro:"order_id"`
		PlacedAt      time.Time     `avro:"placed_at"`
		PaymentMethod string        `avro:"payment_method"`
		Country       string        `avro:"country"`
		Items         []OrderItemV1 `avro:"items"`
		Subtotal      string        `avro:"subtotal"`
		Shipping      string        `avro:"shipping"`
		Tax           string        `avro:"tax"`
		Total         string        `avro:"total"`
	}

	OrderItemV1 struct {
		ProductID int     `avro:"product_id"`
		Name      string  `avro:"name"`
		Size      string  `avro:"size"`
		Color     string  `avro:"color"`
		Price     float64 `avro:"price"`
		Quantity  int     `avro:"quantity"`
	}

	OrderStatsV1 struct {
		Orders  int64  `avro:"orders"`
		Items   int64  `avro:"items"`
		Revenue string `avro:"revenue"`
	}
)

func OrderV1Avro() avro.Schema {
	return avro.MustParse(OrderSchemaTextV1)
}

func OrderStatsV1Avro() avro.Schema {
	return avro.MustParse(OrderStatsSchemaTextV1)
}
