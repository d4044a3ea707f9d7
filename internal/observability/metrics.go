package observability

const (
	MUsecaseRequests     MetricKey = "usecase_requests_total"
	MUsecaseDuration     MetricKey = "usecase_duration_seconds"
	MOrdersPlaced        MetricKey = "checkout_orders_total"
	MOrderAmount         MetricKey = "checkout_order_amount"
	MAuditWrites         MetricKey = "audit_log_writes_total"
	MInvalidInput        MetricKey = "console_invalid_input_total"
	MHTTPRequests        MetricKey = "http_requests_total"
	MHTTPRequestDuration MetricKey = "http_request_duration_seconds"
)
