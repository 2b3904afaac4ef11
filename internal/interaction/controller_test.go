package interaction_test

import (
	"context"
	"github.com/myrjola/constellation/internal/content"
	"github.com/myrjola/constellation/internal/effect"
	"github.com/myrjola/constellation/internal/interaction"
	"github.com/myrjola/constellation/internal/schedule"
	"github.com/myrjola/constellation/internal/testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"io"
	"sync"
	"testing"
	"time"
)

type recorder struct {
	mu     sync.Mutex
	bursts []effect.Burst
}

func (r *recorder) Fire(_ context.Context, b effect.Burst) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bursts = append(r.bursts, b)
}

func (r *recorder) fired() []effect.Burst {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]effect.Burst(nil), r.bursts...)
}

func documentWithMemories(n int) *content.Document {
	doc := &content.Document{
		Name:           "Ann",
		Constellations: &content.Constellations{Title: "Stars"},
		Quiz: &content.Quiz{Questions: []content.QuizQuestion{
			{Prompt: "Favourite colour?", Answer: "Pink"},
			{Prompt: "Favourite song?", Answer: "All of them"},
		}},
	}
	for i := range n {
		doc.Memories = append(doc.Memories, content.Memory{Type: "photo", Title: "Memory " + string(rune('A'+i))})
	}
	return doc
}

type fixture struct {
	clock      *testhelpers.ManualTimers
	controller *interaction.Controller
	session    *interaction.Session
	effects    *recorder
	actions    []interaction.Action
}

func newFixture(t *testing.T, doc *content.Document) *fixture {
	t.Helper()
	f := &fixture{
		clock:   &testhelpers.ManualTimers{},
		effects: &recorder{},
	}
	tasks := schedule.NewWithAfterFunc(f.clock.AfterFunc)
	t.Cleanup(tasks.Stop)
	f.controller = interaction.NewController(tasks, testhelpers.NewLogger(io.Discard), func(a interaction.Action) {
		f.actions = append(f.actions, a)
	})
	f.session = &interaction.Session{
		ViewerID: "viewer",
		Content:  doc,
		State:    &interaction.State{},
		Effects:  f.effects,
	}
	return f
}

func TestController_Finale(t *testing.T) {
	tests := []struct {
		name       string
		memories   int
		wantBursts int
	}{
		{name: "caps at five bursts", memories: 7, wantBursts: 5},
		{name: "one burst per memory", memories: 2, wantBursts: 2},
		{name: "no memories", memories: 0, wantBursts: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, documentWithMemories(tt.memories))
			ctx := t.Context()

			got := f.controller.Finale(ctx, f.session)
			require.Equal(t, tt.wantBursts, got)
			require.True(t, f.controller.View(f.session).FinaleRunning)

			f.clock.Advance(interaction.FinaleWindow - time.Millisecond)
			bursts := f.effects.fired()
			require.Len(t, bursts, tt.wantBursts)
			for i, b := range bursts {
				assert.Equal(t, interaction.FinaleBurst(i), b)
			}
			require.True(t, f.controller.View(f.session).FinaleRunning)

			f.clock.Advance(time.Millisecond)
			require.False(t, f.controller.View(f.session).FinaleRunning)
			require.Equal(t, 0, f.clock.Pending())
		})
	}
}

func TestController_FinaleStagger(t *testing.T) {
	f := newFixture(t, documentWithMemories(3))
	f.controller.Finale(t.Context(), f.session)

	f.clock.Advance(0)
	require.Len(t, f.effects.fired(), 1)
	f.clock.Advance(interaction.FinaleStagger - time.Millisecond)
	require.Len(t, f.effects.fired(), 1)
	f.clock.Advance(time.Millisecond)
	require.Len(t, f.effects.fired(), 2)
	f.clock.Advance(interaction.FinaleStagger)
	require.Len(t, f.effects.fired(), 3)
}

func TestController_FinaleReactivation(t *testing.T) {
	f := newFixture(t, documentWithMemories(5))
	ctx := t.Context()

	f.controller.Finale(ctx, f.session)
	f.clock.Advance(interaction.FinaleStagger)
	require.Len(t, f.effects.fired(), 2)

	// The second activation replaces the three pending bursts and restarts the window.
	f.controller.Finale(ctx, f.session)
	f.clock.Advance(interaction.FinaleWindow - interaction.FinaleStagger)
	require.True(t, f.controller.View(f.session).FinaleRunning)
	require.Len(t, f.effects.fired(), 7)

	f.clock.Advance(interaction.FinaleStagger)
	require.False(t, f.controller.View(f.session).FinaleRunning)
	require.Len(t, f.effects.fired(), 7)
}

func TestController_FinaleWithoutContent(t *testing.T) {
	f := newFixture(t, nil)
	require.Equal(t, 0, f.controller.Finale(t.Context(), f.session))
	require.False(t, f.controller.View(f.session).FinaleRunning)
	require.Empty(t, f.actions)
}

func TestController_WithoutContent(t *testing.T) {
	f := newFixture(t, nil)
	ctx := t.Context()
	index := 0
	f.session.State.ActiveIndex = &index

	f.controller.Wish(ctx, f.session)
	require.False(t, f.controller.TogglePlaylist(ctx, f.session))
	f.controller.CloseMemory(ctx, f.session)
	require.False(t, f.controller.OpenMemory(ctx, f.session, 0))
	_, ok := f.controller.ToggleAnswer(ctx, f.session, 0)
	require.False(t, ok)

	require.Empty(t, f.effects.fired())
	require.Empty(t, f.actions)
	require.Equal(t, interaction.View{State: interaction.State{ActiveIndex: &index}}, f.controller.View(f.session),
		"the state is left as it was and no feedback is pending")
	require.Zero(t, f.clock.Pending())
}

func TestFinaleBurst(t *testing.T) {
	b := interaction.FinaleBurst(2)
	assert.InDelta(t, 70, b.Spread, 1e-9)
	assert.Equal(t, 120, b.ParticleCount)
	assert.InDelta(t, 0.49, b.Origin.X, 1e-9)
	assert.InDelta(t, 0.3, b.Origin.Y, 1e-9)
	assert.InDelta(t, 0.9, b.Scalar, 1e-9)
	assert.Equal(t, effect.DefaultColors, b.Colors)
}

func TestController_Memory(t *testing.T) {
	f := newFixture(t, documentWithMemories(3))
	ctx := t.Context()

	require.True(t, f.controller.OpenMemory(ctx, f.session, 0))
	require.True(t, f.controller.OpenMemory(ctx, f.session, 2))
	active, ok := f.session.State.Active()
	require.True(t, ok)
	require.Equal(t, 2, active)

	bursts := f.effects.fired()
	require.Len(t, bursts, 2)
	assert.InDelta(t, 45, bursts[0].Spread, 1e-9)
	assert.Equal(t, 110, bursts[0].ParticleCount)
	assert.InDelta(t, 0.95, bursts[0].Scalar, 1e-9)

	f.controller.CloseMemory(ctx, f.session)
	_, ok = f.session.State.Active()
	require.False(t, ok)
}

func TestController_OpenMissingMemory(t *testing.T) {
	f := newFixture(t, documentWithMemories(2))
	ctx := t.Context()

	require.True(t, f.controller.OpenMemory(ctx, f.session, 1))
	for _, index := range []int{-1, 2, 99} {
		require.False(t, f.controller.OpenMemory(ctx, f.session, index))
	}
	active, ok := f.session.State.Active()
	require.True(t, ok)
	require.Equal(t, 1, active)
	require.Len(t, f.effects.fired(), 1)
}

func TestController_ToggleAnswer(t *testing.T) {
	f := newFixture(t, documentWithMemories(1))
	ctx := t.Context()

	revealed, ok := f.controller.ToggleAnswer(ctx, f.session, 0)
	require.True(t, ok)
	require.True(t, revealed)
	require.False(t, f.session.State.IsRevealed(1), "cards are independent")

	revealed, ok = f.controller.ToggleAnswer(ctx, f.session, 0)
	require.True(t, ok)
	require.False(t, revealed)
	require.Equal(t, interaction.State{Revealed: map[int]bool{}}, *f.session.State)

	_, ok = f.controller.ToggleAnswer(ctx, f.session, 2)
	require.False(t, ok)
}

func TestController_TogglePlaylist(t *testing.T) {
	f := newFixture(t, documentWithMemories(1))
	ctx := t.Context()

	require.True(t, f.controller.TogglePlaylist(ctx, f.session))
	require.False(t, f.controller.TogglePlaylist(ctx, f.session))
	require.Equal(t, []interaction.Action{interaction.ActionTogglePlaylist, interaction.ActionTogglePlaylist}, f.actions)
}

func TestController_Wish(t *testing.T) {
	f := newFixture(t, documentWithMemories(1))
	ctx := t.Context()

	f.controller.Wish(ctx, f.session)
	require.Equal(t, []effect.Burst{effect.NewBurst()}, f.effects.fired())
	require.True(t, f.controller.View(f.session).WishActive)

	f.clock.Advance(interaction.WishWindow / 2)
	f.controller.Wish(ctx, f.session)
	f.clock.Advance(interaction.WishWindow / 2)
	require.True(t, f.controller.View(f.session).WishActive, "the latest activation owns the window")

	f.clock.Advance(interaction.WishWindow / 2)
	require.False(t, f.controller.View(f.session).WishActive)
}

func TestController_ViewersAreIndependent(t *testing.T) {
	f := newFixture(t, documentWithMemories(1))
	other := &interaction.Session{
		ViewerID: "other",
		Content:  f.session.Content,
		State:    &interaction.State{},
		Effects:  effect.Nop,
	}

	f.controller.Wish(t.Context(), f.session)
	require.True(t, f.controller.View(f.session).WishActive)
	require.False(t, f.controller.View(other).WishActive)
}
