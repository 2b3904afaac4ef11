// Package effect describes particle bursts and hands them to the client-side confetti capability.
package effect

import "context"

// DefaultColors is the palette bursts use unless overridden.
var DefaultColors = []string{"#ff8fb1", "#ffe0f0", "#fdd3d5", "#f2a7b8"}

type Origin struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Burst holds the options the confetti capability recognises.
type Burst struct {
	ParticleCount int      `json:"particleCount"`
	Spread        float64  `json:"spread"`
	Origin        Origin   `json:"origin"`
	Colors        []string `json:"colors"`
	Scalar        float64  `json:"scalar"`
}

type Option func(*Burst)

func WithParticleCount(n int) Option {
	return func(b *Burst) { b.ParticleCount = n }
}

func WithSpread(degrees float64) Option {
	return func(b *Burst) { b.Spread = degrees }
}

// WithOrigin sets the origin as fractions of the viewport width and height.
func WithOrigin(x, y float64) Option {
	return func(b *Burst) { b.Origin = Origin{X: x, Y: y} }
}

func WithColors(colors ...string) Option {
	return func(b *Burst) { b.Colors = colors }
}

func WithScalar(scalar float64) Option {
	return func(b *Burst) { b.Scalar = scalar }
}

// NewBurst returns the default burst with opts applied.
//
//nolint:mnd // the defaults are the tuning of the effect
func NewBurst(opts ...Option) Burst {
	b := Burst{
		ParticleCount: 90,
		Spread:        65,
		Origin:        Origin{X: 0.5, Y: 0.6},
		Colors:        DefaultColors,
		Scalar:        0.85,
	}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

// Trigger hands bursts to the visual effect capability. Implementations must not block and must silently drop
// bursts when the capability is unavailable.
type Trigger interface {
	Fire(ctx context.Context, b Burst)
}

// TriggerFunc adapts a function to [Trigger].
type TriggerFunc func(ctx context.Context, b Burst)

func (f TriggerFunc) Fire(ctx context.Context, b Burst) {
	f(ctx, b)
}

// Nop drops every burst.
var Nop Trigger = TriggerFunc(func(context.Context, Burst) {})
