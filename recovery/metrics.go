package recovery

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/lixenwraith/vehicle-sim/recovery"

type instruments struct {
	started   metric.Int64Counter
	completed metric.Int64Counter
	cancelled metric.Int64Counter
}

func newInstruments() (*instruments, error) {
	m := otel.Meter(instrumentationName)
	in := &instruments{}

	counters := []struct {
		dst  *metric.Int64Counter
		name string
		desc string
	}{
		{&in.started, "recovery.sequences.started", "Lift and roll sequences begun"},
		{&in.completed, "recovery.sequences.completed", "Sequences that rolled back upright"},
		{&in.cancelled, "recovery.sequences.cancelled", "Sequences aborted before completing"},
	}
	for _, c := range counters {
		var err error
		*c.dst, err = m.Int64Counter(c.name, metric.WithDescription(c.desc))
		if err != nil {
			return nil, fmt.Errorf("creating %s counter: %w", c.name, err)
		}
	}
	return in, nil
}

func inc(c metric.Int64Counter) {
	c.Add(context.Background(), 1)
}
