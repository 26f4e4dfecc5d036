package bootstrap

// AuditLog captures operator-relevant lifecycle moments (startup,
// shutdown, forced exits) separately from request logging.
type AuditLog struct {
	Action  string
	Message string
	Meta    map[string]any
}

type AuditLogger interface {
	Log(entry AuditLog)
}
