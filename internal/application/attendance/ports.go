package attendance

// Metrics contador de fichajes. Lo implementa *metrics.Recorder.
type Metrics interface {
	ClockEvent(event string)
}

type noopMetrics struct{}

func (noopMetrics) ClockEvent(string) {}
