package config

import (
	"github.com/grand-thief-cash/chaos/app/projects/taskboard/internal/bootstrap"
	"github.com/grand-thief-cash/chaos/app/projects/taskboard/internal/infra/httpserver"
	"github.com/grand-thief-cash/chaos/app/projects/taskboard/internal/infra/logging"
	"github.com/grand-thief-cash/chaos/app/projects/taskboard/internal/infra/prometheus"
	"github.com/grand-thief-cash/chaos/app/projects/taskboard/internal/infra/telemetry"
)

// AppConfig is the root of the configuration file.
type AppConfig struct {
	APPInfo    *APPInfo               `yaml:"app_info" json:"app_info"`
	Logging    *logging.LoggingConfig `yaml:"logging" json:"logging"`
	Telemetry  *telemetry.Config      `yaml:"telemetry" json:"telemetry"`
	Prometheus *prometheus.Config     `yaml:"prometheus" json:"prometheus"`
	HTTPServer *httpserver.Config     `yaml:"http_server" json:"http_server"`
	Database   *bootstrap.Config      `yaml:"database" json:"database"`
	BizConfig  *BizConfig             `yaml:"biz_config" json:"biz_config"`
}

type APPInfo struct {
	APPName string `yaml:"app_name" json:"app_name"`
	ENV     string `yaml:"env" json:"env"`
}

// BizConfig holds the task service settings.
type BizConfig struct {
	TenantID     int64  `yaml:"tenant_id" json:"tenant_id"`
	DefaultTitle string `yaml:"default_title" json:"default_title"`
	WebFolder    string `yaml:"web_folder" json:"web_folder"`
}
