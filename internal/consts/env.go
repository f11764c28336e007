package consts

const (
	ENV_PRODUCTION  = "production"
	ENV_DEVELOPMENT = "development"
	ENV_TEST        = "test"

	DEFAULT_CONFIG_PATH = "configs/config.yaml"

	KEY_TraceID   = "trace_id"
	KEY_RequestID = "request_id"

	HEADER_AuthToken = "X-Auth-Token"
	HEADER_RequestID = "X-Request-Id"
)
