// Package interaction implements the state transitions behind the page controls.
package interaction

import (
	"context"
	"github.com/myrjola/constellation/internal/effect"
	"github.com/myrjola/constellation/internal/schedule"
	"log/slog"
	"strconv"
	"time"
)

const (
	// WishWindow is how long the wish button shows its active style.
	WishWindow = 800 * time.Millisecond
	// FinaleStagger separates the bursts of the finale.
	FinaleStagger = 280 * time.Millisecond
	// FinaleWindow is how long the finale button stays disabled.
	FinaleWindow = 3600 * time.Millisecond
	// MaxFinaleBursts caps the bursts of one finale.
	MaxFinaleBursts = 5
)

// Action names an interaction for logging and metrics.
type Action string

const (
	ActionOpenMemory     Action = "open_memory"
	ActionCloseMemory    Action = "close_memory"
	ActionToggleAnswer   Action = "toggle_answer"
	ActionTogglePlaylist Action = "toggle_playlist"
	ActionWish           Action = "wish"
	ActionFinale         Action = "finale"
)

// Controller applies interactions to a [Session]. Transient feedback (wish button, finale) is tracked with
// cancellable tasks keyed by viewer and control, so overlapping activations never race.
type Controller struct {
	tasks    *schedule.Scheduler
	logger   *slog.Logger
	observer func(Action)
}

// NewController creates a Controller. observe is called for every applied interaction, it may be nil.
func NewController(tasks *schedule.Scheduler, logger *slog.Logger, observe func(Action)) *Controller {
	if observe == nil {
		observe = func(Action) {}
	}
	return &Controller{
		tasks:    tasks,
		logger:   logger,
		observer: observe,
	}
}

func (c *Controller) applied(ctx context.Context, s *Session, action Action, attrs ...slog.Attr) {
	c.observer(action)
	attrs = append(attrs, slog.String("action", string(action)), slog.String("viewer_id", s.ViewerID))
	c.logger.LogAttrs(ctx, slog.LevelDebug, "applied interaction", attrs...)
}

func wishKey(viewerID string) string {
	return viewerID + "/wish"
}

func finaleKey(viewerID string) string {
	return viewerID + "/finale"
}

func finaleBurstKey(viewerID string, i int) string {
	return viewerID + "/finale/burst/" + strconv.Itoa(i)
}

// OpenMemory opens the memory at index, closing any open one. Nothing happens when there is no such memory.
func (c *Controller) OpenMemory(ctx context.Context, s *Session, index int) bool {
	if _, ok := s.Content.Memory(index); !ok {
		return false
	}
	s.State.ActiveIndex = &index
	s.Effects.Fire(ctx, effect.NewBurst(
		effect.WithSpread(45),        //nolint:mnd // stronger than the default
		effect.WithParticleCount(110), //nolint:mnd // stronger than the default
		effect.WithScalar(0.95),       //nolint:mnd // stronger than the default
	))
	c.applied(ctx, s, ActionOpenMemory, slog.Int("index", index))
	return true
}

// CloseMemory closes the memory panel. Nothing happens when the content has not been loaded.
func (c *Controller) CloseMemory(ctx context.Context, s *Session) {
	if s.Content == nil {
		return
	}
	s.State.ActiveIndex = nil
	c.applied(ctx, s, ActionCloseMemory)
}

// ToggleAnswer flips the answer visibility of quiz card index and returns whether it is now revealed. ok is false
// when there is no such card.
func (c *Controller) ToggleAnswer(ctx context.Context, s *Session, index int) (revealed bool, ok bool) {
	if index < 0 || index >= len(s.Content.Questions()) {
		return false, false
	}
	if s.State.Revealed == nil {
		s.State.Revealed = map[int]bool{}
	}
	revealed = !s.State.Revealed[index]
	if revealed {
		s.State.Revealed[index] = true
	} else {
		delete(s.State.Revealed, index)
	}
	c.applied(ctx, s, ActionToggleAnswer, slog.Int("index", index), slog.Bool("revealed", revealed))
	return revealed, true
}

// TogglePlaylist flips the playlist panel and returns whether it is now expanded. The panel stays as it is when the
// content has not been loaded.
func (c *Controller) TogglePlaylist(ctx context.Context, s *Session) bool {
	if s.Content == nil {
		return s.State.PlaylistExpanded
	}
	s.State.PlaylistExpanded = !s.State.PlaylistExpanded
	c.applied(ctx, s, ActionTogglePlaylist, slog.Bool("expanded", s.State.PlaylistExpanded))
	return s.State.PlaylistExpanded
}

// Wish fires the default burst and marks the wish button active for [WishWindow]. Nothing happens when the content
// has not been loaded.
func (c *Controller) Wish(ctx context.Context, s *Session) {
	if s.Content == nil {
		return
	}
	s.Effects.Fire(ctx, effect.NewBurst())
	c.tasks.Schedule(wishKey(s.ViewerID), WishWindow, nil)
	c.applied(ctx, s, ActionWish)
}

// Finale schedules one burst per memory, at most [MaxFinaleBursts], [FinaleStagger] apart and disables the
// finale button for [FinaleWindow]. It returns the number of scheduled bursts. Nothing happens when the content
// has not been loaded.
//
// A finale started while another is running supersedes its pending bursts and restarts the window.
func (c *Controller) Finale(ctx context.Context, s *Session) int {
	if s.Content == nil {
		return 0
	}
	bursts := min(MaxFinaleBursts, len(s.Content.Memories))
	// The bursts outlive the request that started them.
	ctx = context.WithoutCancel(ctx)
	for i := range bursts {
		b := FinaleBurst(i)
		trigger := s.Effects
		c.tasks.Schedule(finaleBurstKey(s.ViewerID, i), time.Duration(i)*FinaleStagger, func() {
			trigger.Fire(ctx, b)
		})
	}
	c.tasks.Schedule(finaleKey(s.ViewerID), FinaleWindow, nil)
	c.applied(ctx, s, ActionFinale, slog.Int("bursts", bursts))
	return bursts
}

// FinaleBurst returns burst i of the finale. The spread widens and the origin moves right with every step.
//
//nolint:mnd // the numbers are the choreography of the finale
func FinaleBurst(i int) effect.Burst {
	step := float64(i)
	return effect.NewBurst(
		effect.WithSpread(60+step*5),
		effect.WithParticleCount(120),
		effect.WithOrigin(0.15+step*0.17, 0.3),
		effect.WithScalar(0.9),
	)
}

// View combines the session state with the transient feedback of the viewer's controls.
func (c *Controller) View(s *Session) View {
	return View{
		State:         *s.State,
		WishActive:    c.tasks.Pending(wishKey(s.ViewerID)),
		FinaleRunning: c.tasks.Pending(finaleKey(s.ViewerID)),
	}
}
