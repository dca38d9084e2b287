package publishers

// Logger is the structured logging surface sinks write delivery results to.
// internal/logger.ZapLogger satisfies it.
type Logger interface {
	InfoObj(msg, key string, obj interface{})
	DebugObj(msg, key string, obj interface{})
	WarnObj(msg, key string, obj interface{})
	ErrorObj(msg, key string, obj interface{})
}

type noopLogger struct{}

func (noopLogger) InfoObj(string, string, interface{})  {}
func (noopLogger) DebugObj(string, string, interface{}) {}
func (noopLogger) WarnObj(string, string, interface{})  {}
func (noopLogger) ErrorObj(string, string, interface{}) {}

func ensureLogger(log Logger) Logger {
	if log == nil {
		return noopLogger{}
	}
	return log
}

// deliveryFields is the common log payload for a single event delivery.
// A non-nil err adds an "error" entry; extra keys are copied over last.
func deliveryFields(publisherID string, evt Event, err error, extra map[string]any) map[string]any {
	fields := map[string]any{
		"publisher_id": publisherID,
		"server_id":    evt.ServerID,
		"fingerprint":  evt.Fingerprint,
	}
	if err != nil {
		fields["error"] = err.Error()
	}
	for k, v := range extra {
		fields[k] = v
	}
	return fields
}
