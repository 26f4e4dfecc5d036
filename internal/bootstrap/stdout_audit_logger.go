package bootstrap

import "go.uber.org/zap"

type stdoutAuditLogger struct {
	logger *zap.Logger
}

func NewStdoutAuditLogger(logger ...*zap.Logger) AuditLogger {
	l := zap.L().Named("audit")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("audit")
	}
	return &stdoutAuditLogger{logger: l}
}

func (s *stdoutAuditLogger) Log(entry AuditLog) {
	fields := make([]zap.Field, 0, len(entry.Meta)+1)
	fields = append(fields, zap.String("action", entry.Action))
	for k, v := range entry.Meta {
		fields = append(fields, zap.Any(k, v))
	}
	s.logger.Info(entry.Message, fields...)
}
