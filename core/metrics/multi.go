package metrics

import "errors"

// MultiSink fans observations out to several sinks. Record errors are
// collected and joined so one failing sink does not hide the others.
type MultiSink struct {
	sinks []Sink
}

// NewMultiSink combines the given sinks into one.
func NewMultiSink(sinks ...Sink) *MultiSink {
	return &MultiSink{sinks: sinks}
}

func (m *MultiSink) RecordIteration(obs IterationObservation) error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.RecordIteration(obs); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m *MultiSink) RecordRun(obs RunObservation) error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.RecordRun(obs); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
