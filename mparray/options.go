// SPDX-License-Identifier: MIT

// Package mparray: functional configuration.
//
// Three option families, one per entry point:
//   - Option         : construction (New, FromArray, Random): known
//     normalization extent and the logger.
//   - NormalizeOption: Normalize targets (Left, Right).
//   - CompressOption : Compress method and sweep direction.
//
// Option constructors panic on values no caller could mean (negative sites,
// nil logger); the algorithms themselves never panic on user input.
package mparray

import (
	"io"
	"log/slog"
)

// Method selects the compression algorithm.
type Method string

// Direction selects the compression sweep.
type Direction int

const (
	// MethodSVD truncates singular values site by site [Sch11, Sec. 4.5.1].
	MethodSVD Method = "svd"

	// DefaultMethod is used when WithMethod is not given.
	DefaultMethod = MethodSVD
)

const (
	// DirectionAuto picks the sweep needing fewer sites to be normalized first.
	DirectionAuto Direction = iota

	// DirectionRight sweeps left to right and leaves the chain left-canonical.
	DirectionRight

	// DirectionLeft sweeps right to left and leaves the chain right-canonical.
	DirectionLeft

	// DefaultDirection is used when WithDirection is not given.
	DefaultDirection = DirectionAuto
)

// String implements fmt.Stringer.
func (d Direction) String() string {
	switch d {
	case DirectionAuto:
		return "auto"
	case DirectionRight:
		return "right"
	case DirectionLeft:
		return "left"
	default:
		return "unknown"
	}
}

// ---------- construction ----------

// Option configures a newly built MPArray.
type Option func(*options)

// options is the explicit normalization metadata plus ambient settings.
// Unset fields default to "nothing known": leftNormalizedUpTo = 0 and
// rightNormalizedFrom = len(ltens).
type options struct {
	leftNormalizedUpTo  int
	rightNormalizedFrom int
	hasLeft, hasRight   bool
	logger              *slog.Logger
}

// WithLeftNormalized declares that sites 0..m-1 are already left-normalized.
// It panics if m is negative.
func WithLeftNormalized(m int) Option {
	if m < 0 {
		panic("mparray: WithLeftNormalized: negative site")
	}
	return func(o *options) {
		o.leftNormalizedUpTo = m
		o.hasLeft = true
	}
}

// WithRightNormalized declares that sites n..L-1 are already right-normalized.
// It panics if n is negative.
func WithRightNormalized(n int) Option {
	if n < 0 {
		panic("mparray: WithRightNormalized: negative site")
	}
	return func(o *options) {
		o.rightNormalizedFrom = n
		o.hasRight = true
	}
}

// WithLogger routes sweep diagnostics (Debug level) to l. It panics on nil.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic("mparray: WithLogger(nil)")
	}
	return func(o *options) { o.logger = l }
}

// discardLogger drops every record; it is the default logger.
var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func gatherOptions(opts []Option) options {
	o := options{logger: discardLogger}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// ---------- normalization ----------

// NormalizeOption selects a Normalize target.
type NormalizeOption func(*normalizeConfig)

type normalizeConfig struct {
	left, right       int
	hasLeft, hasRight bool
}

// Left requests that sites 0..m-1 become left-normalized.
func Left(m int) NormalizeOption {
	return func(c *normalizeConfig) {
		c.left = m
		c.hasLeft = true
	}
}

// Right requests that sites n..L-1 become right-normalized.
func Right(n int) NormalizeOption {
	return func(c *normalizeConfig) {
		c.right = n
		c.hasRight = true
	}
}

// ---------- compression ----------

// CompressOption configures Compress.
type CompressOption func(*compressConfig)

type compressConfig struct {
	method    Method
	direction Direction
}

// WithMethod selects the compression method (default MethodSVD).
func WithMethod(m Method) CompressOption {
	return func(c *compressConfig) { c.method = m }
}

// WithDirection forces the sweep direction (default DirectionAuto).
func WithDirection(d Direction) CompressOption {
	return func(c *compressConfig) { c.direction = d }
}
