package bridge

import (
	"github.com/jt828/observation/pkg/observability"
	"github.com/jt828/observation/pkg/observation"
)

// LoggingHandler writes one structured log line per lifecycle point:
// start and events at debug, errors at error, stop at info with the
// duration and every key-value as a field.
type LoggingHandler struct {
	log observability.Logger
}

func NewLoggingHandler(log observability.Logger) *LoggingHandler {
	return &LoggingHandler{log: log}
}

func (h *LoggingHandler) Supports(c *observation.Context) bool {
	return h.log != nil
}

func (h *LoggingHandler) OnStart(c *observation.Context) {
	h.log.Debug("observation started",
		observability.String("observation", c.Name()))
}

func (h *LoggingHandler) OnEvent(e observation.Event, c *observation.Context) {
	h.log.Debug("observation event",
		observability.String("observation", c.Name()),
		observability.String("event", e.String()))
}

func (h *LoggingHandler) OnError(c *observation.Context) {
	h.log.Error("observation error",
		observability.String("observation", c.Name()),
		observability.Err(c.Error()))
}

func (h *LoggingHandler) OnStop(c *observation.Context) {
	fields := make([]observability.Field, 0, len(c.AllKeyValues())+3)
	fields = append(fields,
		observability.String("observation", c.Name()),
		observability.String("name", c.ContextualName()),
		observability.Duration("duration", c.Duration()))
	for _, kv := range c.AllKeyValues() {
		fields = append(fields, observability.String(kv.Key, kv.Value))
	}
	if err := c.Error(); err != nil {
		fields = append(fields, observability.Err(err))
	}
	h.log.Info("observation stopped", fields...)
}
