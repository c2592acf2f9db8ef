package logger

import (
	"go.uber.org/zap"

	"github.com/pageza/recipebox/backend/config"
)

// New builds the application logger for the given environment.
// Production gets JSON output at info level, everything else the
// development console encoder at debug level.
func New(env config.Environment) (*zap.Logger, error) {
	if env == config.Production {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// Sync flushes buffered entries. Errors from syncing stderr/stdout are ignored.
func Sync(l *zap.Logger) {
	_ = l.Sync()
}
