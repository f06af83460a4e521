package logger

import (
	"go.uber.org/zap"
)

var log, _ = zap.NewProduction()

func Info(msg string, fields ...zap.Field) {
	log.Info(msg, fields...)
}

func Warn(msg string, fields ...zap.Field) {
	log.Warn(msg, fields...)
}

func Error(msg string, fields ...zap.Field) {
	log.Error(msg, fields...)
}

// LogAdminAction records an administrative override in the audit trail.
func LogAdminAction(adminID string, action, params string) {
	log.Info("admin_action", zap.String("admin_id", adminID), zap.String("action", action), zap.String("params", params))
}
