package observability

import (
	"context"
	"strings"

	"github.com/uptrace/uptrace-go/uptrace"
	"go.opentelemetry.io/otel/attribute"

	"github.com/mikekeda/athletes/internal/config"
	"github.com/mikekeda/athletes/internal/platform/logging"
)

// uptraceOff explains why export stays off, or returns "" when it is on.
func uptraceOff(cfg config.Config) string {
	switch {
	case !cfg.UptraceEnabled:
		return "UPTRACE_ENABLED=false"
	case strings.TrimSpace(cfg.UptraceDSN) == "":
		return "UPTRACE_DSN empty"
	default:
		return ""
	}
}

func uptraceOptions(cfg config.Config) []uptrace.Option {
	return []uptrace.Option{
		uptrace.WithDSN(strings.TrimSpace(cfg.UptraceDSN)),
		uptrace.WithServiceName(cfg.ServiceName),
		uptrace.WithServiceVersion(cfg.ServiceVersion),
		uptrace.WithDeploymentEnvironment(cfg.AppEnv),
		uptrace.WithResourceAttributes(attribute.String("athletes.crawler_user_agent", cfg.WikiUserAgent)),
		uptrace.WithLoggingEnabled(cfg.UptraceLogsEnabled),
	}
}

// InitUptrace installs the global OpenTelemetry providers. With log export
// on, the returned logger tees every entry into OTel log records; otherwise
// it is logger itself.
func InitUptrace(cfg config.Config, logger *logging.Logger) (*logging.Logger, func(context.Context) error, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if reason := uptraceOff(cfg); reason != "" {
		logger.Info("uptrace disabled", "reason", reason)
		return logger, func(context.Context) error { return nil }, nil
	}

	uptrace.ConfigureOpentelemetry(uptraceOptions(cfg)...)
	if cfg.UptraceLogsEnabled {
		logger = logger.Tee(newOTelLogCore(cfg.ServiceVersion, cfg.LogLevel))
	}
	logger.Info("uptrace enabled", "service", cfg.ServiceName, "version", cfg.ServiceVersion, "env", cfg.AppEnv, "logs", cfg.UptraceLogsEnabled)
	return logger, uptrace.Shutdown, nil
}
