package trace

import "context"

// frame is what a context carries for tracing: the tracer, the innermost
// open span and the file being checked.
type frame struct {
	tracer Tracer
	span   uint64
	file   string
}

type frameKey struct{}

func frameOf(ctx context.Context) frame {
	if ctx != nil {
		if f, ok := ctx.Value(frameKey{}).(frame); ok {
			return f
		}
	}
	return frame{tracer: Nop}
}

func withFrame(ctx context.Context, f frame) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, frameKey{}, f)
}

// FromContext extracts the Tracer from context, or Nop.
func FromContext(ctx context.Context) Tracer {
	return frameOf(ctx).tracer
}

// WithTracer attaches t to ctx and starts a fresh span tree.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	return withFrame(ctx, frame{tracer: t})
}

// WithFile tags events of spans opened under ctx with path.
func WithFile(ctx context.Context, path string) context.Context {
	f := frameOf(ctx)
	f.file = path
	return withFrame(ctx, f)
}

// ParentSpan returns the ID of the innermost span opened in ctx, or 0.
func ParentSpan(ctx context.Context) uint64 {
	return frameOf(ctx).span
}
