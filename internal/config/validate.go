package config

import "fmt"

// Issue is a single configuration problem found by Validate.
type Issue struct {
	Severity string // "error" or "warning"
	Path     string // dotted config path, e.g. "warehouse.host"
	Message  string
}

func (i Issue) String() string {
	return fmt.Sprintf("%s %s: %s", i.Severity, i.Path, i.Message)
}

// Validate checks the configuration for problems that would make a run
// fail or behave surprisingly. Errors block a run; warnings do not.
func Validate(cfg *Config) []Issue {
	var issues []Issue

	errf := func(path, format string, args ...any) {
		issues = append(issues, Issue{Severity: "error", Path: path, Message: fmt.Sprintf(format, args...)})
	}
	warnf := func(path, format string, args ...any) {
		issues = append(issues, Issue{Severity: "warning", Path: path, Message: fmt.Sprintf(format, args...)})
	}

	switch cfg.Source.Kind {
	case "s3":
		if cfg.Source.Bucket == "" {
			errf("source.bucket", "required for the s3 source")
		}
		if cfg.Source.Key == "" {
			errf("source.key", "required for the s3 source")
		}
	case "file":
		if cfg.Source.Path == "" {
			errf("source.path", "required for the file source")
		}
	default:
		errf("source.kind", "unknown kind %q, want s3 or file", cfg.Source.Kind)
	}

	if cfg.Warehouse.Table == "" {
		errf("warehouse.table", "required")
	}

	switch cfg.Warehouse.Kind {
	case "postgres":
		if cfg.Warehouse.Host == "" {
			errf("warehouse.host", "required for postgres")
		}
		if cfg.Warehouse.Database == "" {
			errf("warehouse.database", "required for postgres")
		}
		if cfg.Warehouse.User == "" {
			errf("warehouse.user", "required for postgres")
		}
		if cfg.Warehouse.Password == "" {
			warnf("warehouse.password", "empty, relying on externally supplied credentials")
		}
	case "sqlite":
		if cfg.Warehouse.DSN == "" {
			errf("warehouse.dsn", "required for sqlite")
		}
	default:
		errf("warehouse.kind", "unknown kind %q, want postgres or sqlite", cfg.Warehouse.Kind)
	}

	switch cfg.Metrics.Backend {
	case "none":
	case "pushgateway":
		if cfg.Metrics.GatewayURL == "" {
			errf("metrics.gateway_url", "required for the pushgateway backend")
		}
	default:
		errf("metrics.backend", "unknown backend %q, want pushgateway or none", cfg.Metrics.Backend)
	}

	switch cfg.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		warnf("log.level", "unknown level %q, falling back to info", cfg.Log.Level)
	}

	return issues
}

// Errors reports whether any issue is severity error.
func Errors(issues []Issue) bool {
	for _, i := range issues {
		if i.Severity == "error" {
			return true
		}
	}
	return false
}
