package avro

// OrderEventSchema describes the records published to the order-events topic.
// Total is carried as a string to keep decimal precision across the wire.
const OrderEventSchema = `{
	"type": "record",
	"name": "OrderEvent",
	"namespace": "com.razorpedidos.order",
	"fields": [
		{"name": "id", "type": "string"},
		{"name": "type", "type": "string"},
		{"name": "order_id", "type": "long"},
		{"name": "user_id", "type": "long"},
		{"name": "status", "type": "string"},
		{"name": "total", "type": "string"},
		{"name": "occurred_at", "type": "string"}
	]
}`
