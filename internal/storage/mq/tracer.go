package mq

import (
	"github.com/twmb/franz-go/pkg/kgo"
	"github.com/twmb/franz-go/plugin/kotel"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("internal/storage/mq")

// kafkaHooks injects the current trace context into produced record headers.
// The global provider is read at call time, so call it after the tracer is set up.
func kafkaHooks() []kgo.Hook {
	t := kotel.NewTracer(
		kotel.TracerProvider(otel.GetTracerProvider()),
		kotel.TracerPropagator(otel.GetTextMapPropagator()),
	)
	return kotel.NewKotel(kotel.WithTracer(t)).Hooks()
}
