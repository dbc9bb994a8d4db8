package leave

// Metrics contador de transiciones de solicitudes. Lo implementa *metrics.Recorder.
type Metrics interface {
	LeaveEvent(status string)
}

type noopMetrics struct{}

func (noopMetrics) LeaveEvent(string) {}
