package consts

const (
	COMPONENT_LOGGING     = "logging"
	COMPONENT_HTTP_SERVER = "http_server"
	COMPONENT_PROMETHEUS  = "prometheus"
	COMPONENT_TELEMETRY   = "telemetry"
	COMPONENT_DATABASE    = "database"
	COMPONENT_TASK_DAO    = "task_dao"
	COMPONENT_TASK_API    = "task_api"
)
