package vehicle

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/lixenwraith/vehicle-sim/vehicle"

type instruments struct {
	ticks metric.Int64Counter
	skids metric.Int64Counter

	modeAttrs [len(modeNames)]metric.AddOption
}

// newInstruments binds to the global meter, a no-op unless a provider is installed
func newInstruments() (*instruments, error) {
	m := otel.Meter(instrumentationName)
	in := &instruments{}

	var err error
	in.ticks, err = m.Int64Counter(
		"vehicle.ticks",
		metric.WithDescription("Physics ticks processed, by force mode"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating tick counter: %w", err)
	}

	in.skids, err = m.Int64Counter(
		"vehicle.wheel.skids",
		metric.WithDescription("Wheel ticks spent above the skid threshold"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating skid counter: %w", err)
	}

	for i, name := range modeNames {
		in.modeAttrs[i] = metric.WithAttributes(attribute.String("mode", name))
	}
	return in, nil
}

func (in *instruments) recordTick(mode Mode, skids int) {
	ctx := context.Background()
	in.ticks.Add(ctx, 1, in.modeAttrs[mode])
	if skids > 0 {
		in.skids.Add(ctx, int64(skids))
	}
}
