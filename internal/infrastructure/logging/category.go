package logging

type Category string
type SubCategory string
type ExtraKey string

const (
	General         Category = "General"
	IO              Category = "IO"
	Internal        Category = "Internal"
	MongoDB         Category = "MongoDB"
	Redis           Category = "Redis"
	RabbitMQ        Category = "RabbitMQ"
	Validation      Category = "Validation"
	RequestResponse Category = "RequestResponse"
	Prometheus      Category = "Prometheus"
	Audit           Category = "Audit"
	WebSocket       Category = "WebSocket"
)

const (
	// General
	Startup         SubCategory = "Startup"
	Shutdown        SubCategory = "Shutdown"
	RateLimiting    SubCategory = "RateLimiting"
	ExternalService SubCategory = "ExternalService"

	// Audit
	HistoryWrite   SubCategory = "HistoryWrite"
	HistoryNotify  SubCategory = "HistoryNotify"
	Reconciliation SubCategory = "Reconciliation"

	// Persistence
	Migration SubCategory = "Migration"
	Query     SubCategory = "Query"
)

const (
	AppName      ExtraKey = "AppName"
	LoggerName   ExtraKey = "Logger"
	ClientIp     ExtraKey = "ClientIp"
	HostIp       ExtraKey = "HostIp"
	Method       ExtraKey = "Method"
	StatusCode   ExtraKey = "StatusCode"
	BodySize     ExtraKey = "BodySize"
	Path         ExtraKey = "Path"
	Latency      ExtraKey = "Latency"
	RequestID    ExtraKey = "RequestId"
	ErrorMessage ExtraKey = "ErrorMessage"
	EmployeeID   ExtraKey = "EmployeeId"
	HistoryID    ExtraKey = "HistoryId"
	Operation    ExtraKey = "Operation"
)
