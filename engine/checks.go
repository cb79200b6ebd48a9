package engine

import (
	"context"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/giantswarm/authfile/instrumentation"
	"github.com/giantswarm/authfile/security"
)

// procStatusPath is the process status file used for debugger detection.
// Overridable in tests.
var procStatusPath = "/proc/self/status"

// runSecurityChecks performs the auxiliary runtime checks enabled by
// Config.EnableSecurityChecks: debugger detection, privilege warning, and
// credential store permissions. A failed check is audited, counted, and
// aborts engine construction.
func runSecurityChecks(config *Config, auditor *security.Auditor, metrics *instrumentation.Metrics, logger *slog.Logger) error {
	if tracerAttached() {
		logger.Error("security check failed: debugger attached to process")
		auditor.LogSecurityCheckFailed("debugger", "tracer attached to process")
		metrics.SecurityChecksFailed.Add(context.Background(), 1)
		return ErrSecurityCheck
	}

	if os.Geteuid() == 0 {
		logger.Warn("running with root privileges")
	}

	if err := checkStorePermissions(config.StorePath, logger); err != nil {
		auditor.LogSecurityCheckFailed("store_permissions", config.StorePath)
		metrics.SecurityChecksFailed.Add(context.Background(), 1)
		return err
	}

	return nil
}

// tracerAttached reports whether a debugger is traced to this process, based
// on the TracerPid field of /proc/self/status. Platforms without procfs are
// treated as untraced.
func tracerAttached() bool {
	data, err := os.ReadFile(procStatusPath)
	if err != nil {
		return false
	}

	for _, line := range strings.Split(string(data), "\n") {
		field, rest, ok := strings.Cut(line, ":")
		if !ok || field != "TracerPid" {
			continue
		}
		pid, err := strconv.Atoi(strings.TrimSpace(rest))
		return err == nil && pid != 0
	}
	return false
}

// checkStorePermissions fails if the credential file is writable by group or
// other. A store that does not exist yet is not a check failure; validation
// will surface that condition on its own.
func checkStorePermissions(path string, logger *slog.Logger) error {
	info, err := os.Stat(path)
	if err != nil {
		return nil
	}

	if perm := info.Mode().Perm(); perm&0o022 != 0 {
		logger.Error("security check failed: credential store is group or world writable",
			"path", path,
			"mode", perm.String())
		return ErrSecurityCheck
	}
	return nil
}
