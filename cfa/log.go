package cfa

import (
	"github.com/sirupsen/logrus"

	"github.com/m4rs-mt/ILGPU-sub005/cfa/cfaapi"
)

// logger is the package-level sink for the debug traces gated by
// cfaapi's *LoggingEnabled switches. Hosts embedding this analysis core into
// a larger pipeline can redirect it with SetLogger.
var logger logrus.FieldLogger = logrus.StandardLogger()

// SetLogger overrides the logger used for cfa's debug traces.
func SetLogger(l logrus.FieldLogger) {
	if l != nil {
		logger = l
	}
}

func cfaLoggingEnabled() bool {
	return cfaapi.DominatorLoggingEnabled || cfaapi.FixpointLoggingEnabled || cfaapi.MovementLoggingEnabled
}
