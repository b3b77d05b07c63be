package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sjavac/internal/project"
	"sjavac/internal/trace"
)

// traceSession owns the tracer of one invocation.
type traceSession struct {
	tracer   trace.Tracer
	stopBeat func()
	ring     *trace.RingTracer
	dumpPath string
	format   trace.Format
}

// setupTracing inspects trace-related flags, falling back to cfg for flags
// the user did not set, and attaches the tracer to the returned context.
func setupTracing(ctx context.Context, cmd *cobra.Command, cfg project.TraceConfig) (context.Context, *traceSession, error) {
	flags := cmd.Root().PersistentFlags()

	traceOutput, err := flags.GetString("trace")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get trace flag: %w", err)
	}
	if !flags.Changed("trace") && cfg.Output != "" {
		traceOutput = cfg.Output
	}

	levelStr, err := flags.GetString("trace-level")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get trace-level flag: %w", err)
	}
	if !flags.Changed("trace-level") && cfg.Level != "" {
		levelStr = cfg.Level
	}

	modeStr, err := flags.GetString("trace-mode")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get trace-mode flag: %w", err)
	}
	if !flags.Changed("trace-mode") && cfg.Mode != "" {
		modeStr = cfg.Mode
	}

	formatStr, err := flags.GetString("trace-format")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get trace-format flag: %w", err)
	}
	if !flags.Changed("trace-format") && cfg.Format != "" {
		formatStr = cfg.Format
	}

	ringSize, err := flags.GetInt("trace-ring-size")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get trace-ring-size flag: %w", err)
	}

	heartbeatInterval, err := flags.GetDuration("trace-heartbeat")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get trace-heartbeat flag: %w", err)
	}

	level, err := trace.ParseLevel(levelStr)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid trace level: %w", err)
	}
	// --trace без уровня включает фазовую трассировку
	if level == trace.LevelOff && traceOutput != "" {
		level = trace.LevelPhase
	}
	if level == trace.LevelOff {
		return trace.WithTracer(ctx, trace.Nop), &traceSession{tracer: trace.Nop}, nil
	}

	mode, err := trace.ParseMode(modeStr)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid trace mode: %w", err)
	}
	// уровень error хранит события только в кольце до первой ошибки
	if level == trace.LevelError {
		mode = trace.ModeRing
	}

	format, err := trace.ParseFormat(formatStr)
	if err != nil {
		return nil, nil, err
	}

	tracer, err := trace.New(trace.Config{
		Level:      level,
		Mode:       mode,
		Format:     format,
		OutputPath: traceOutput,
		RingSize:   ringSize,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create tracer: %w", err)
	}

	s := &traceSession{tracer: tracer, dumpPath: traceOutput, format: format}
	switch t := tracer.(type) {
	case *trace.RingTracer:
		s.ring = t
	case *trace.MultiTracer:
		s.ring = t.Ring()
	}
	s.stopBeat = trace.StartHeartbeat(tracer, heartbeatInterval)
	return trace.WithTracer(ctx, tracer), s, nil
}

// close stops the heartbeat, dumps the ring when the run failed and
// releases the output.
func (s *traceSession) close(cmd *cobra.Command, failed bool) {
	if s == nil {
		return
	}
	if s.stopBeat != nil {
		s.stopBeat()
	}
	if failed && s.ring != nil {
		if err := s.dumpRing(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: dump error: %v\n", err)
		}
	}
	if err := s.tracer.Flush(); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "trace: flush error: %v\n", err)
	}
	if err := s.tracer.Close(); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "trace: close error: %v\n", err)
	}
}

func (s *traceSession) dumpRing() error {
	// в режиме both поток уже записал все события
	if _, ringOnly := s.tracer.(*trace.RingTracer); !ringOnly {
		return nil
	}
	if s.dumpPath == "" || s.dumpPath == "-" {
		return s.ring.Dump(os.Stderr, trace.FormatText)
	}
	f, err := os.Create(s.dumpPath)
	if err != nil {
		return err
	}
	format := s.format
	if format == trace.FormatAuto {
		format = trace.FormatFor(s.dumpPath)
	}
	if err := s.ring.Dump(f, format); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
