package agent

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"github.com/pokertown/holdem/internal/game"
)

// Gateway drives automated seats. It rate-limits calls to the remote
// decision source, enforces a per-call deadline, and substitutes the
// fallback policy whenever the source times out, errors, or answers
// with something illegal. Decide never fails.
type Gateway struct {
	provider Provider
	fallback Provider
	limiter  *rate.Limiter
	timeout  time.Duration

	// thinkDelay is an intentional pause before deciding so automated
	// turns read naturally at the table.
	thinkDelay time.Duration
}

// GatewayConfig tunes a Gateway.
type GatewayConfig struct {
	Provider          Provider
	Timeout           time.Duration
	RequestsPerMinute float64
	Burst             int
	ThinkDelay        time.Duration
}

// NewGateway builds a gateway. A nil provider means every decision
// comes from the fallback policy.
func NewGateway(cfg GatewayConfig) *Gateway {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.RequestsPerMinute <= 0 {
		cfg.RequestsPerMinute = 10
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 1
	}
	return &Gateway{
		provider:   cfg.Provider,
		fallback:   FallbackPolicy{},
		limiter:    rate.NewLimiter(rate.Limit(cfg.RequestsPerMinute/60.0), cfg.Burst),
		timeout:    cfg.Timeout,
		thinkDelay: cfg.ThinkDelay,
	}
}

// Decide returns exactly one legal decision for the prompt. The caller
// must not hold the table lock: the call may suspend on the rate
// limiter, the think delay, and the remote round trip.
func (gw *Gateway) Decide(ctx context.Context, prompt Prompt) Decision {
	if gw.thinkDelay > 0 {
		select {
		case <-time.After(gw.thinkDelay):
		case <-ctx.Done():
		}
	}

	decision, err := gw.remoteDecision(ctx, prompt)
	if err != nil {
		if gw.provider != nil {
			slog.Warn("agent provider failed, using fallback",
				"player_id", prompt.PlayerID, "error", err)
		}
		decision, _ = gw.fallback.NextAction(ctx, prompt)
	}
	return sanitize(decision, prompt.LegalActions)
}

// remoteDecision waits for a rate-limit slot and calls the provider
// under the configured deadline. The wait suspends the caller rather
// than dropping the turn.
func (gw *Gateway) remoteDecision(ctx context.Context, prompt Prompt) (Decision, error) {
	if gw.provider == nil {
		return Decision{}, ErrEndpointNotConfigured
	}
	if err := gw.limiter.Wait(ctx); err != nil {
		return Decision{}, err
	}
	callCtx, cancel := context.WithTimeout(ctx, gw.timeout)
	defer cancel()
	return gw.provider.NextAction(callCtx, prompt)
}

// sanitize forces a decision into the legal action set, downgrading
// to the safest available action when it does not fit.
func sanitize(decision Decision, legal game.LegalActions) Decision {
	if !hasAction(legal, decision.Action) {
		if hasAction(legal, game.ActionCheck) {
			return Decision{Action: game.ActionCheck, Rationale: decision.Rationale}
		}
		return Decision{Action: game.ActionFold, Rationale: decision.Rationale}
	}
	switch decision.Action {
	case game.ActionBet, game.ActionRaise:
		decision.Amount = clamp(decision.Amount, legal.MinRaiseTo, legal.MaxRaiseTo)
	default:
		decision.Amount = 0
	}
	return decision
}
