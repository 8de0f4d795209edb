package advisor

import (
	"context"
	"fmt"
	"log/slog"
)

// Advisor evaluates one item. Implementations may fail.
type Advisor interface {
	Evaluate(ctx context.Context, item Item) (Result, error)
}

// Service is the boundary used by checkout: it always yields a usable result.
type Service interface {
	Evaluate(ctx context.Context, item Item) Result
}

type service struct {
	cfg    Config
	remote Advisor
	logger *slog.Logger
}

// NewService wraps remote with the heuristic fallback. A nil remote means no
// credentials were configured and every call is answered by the heuristic.
func NewService(cfg Config, remote Advisor, logger *slog.Logger) Service {
	return &service{
		cfg:    cfg,
		remote: remote,
		logger: logger.With("component", "advisor.service"),
	}
}

func (s *service) Evaluate(ctx context.Context, item Item) Result {
	if s.remote == nil {
		return Heuristic(item)
	}
	res, err := s.tryRemote(ctx, item)
	if err != nil {
		s.logger.Warn("advisor unavailable, using heuristic", "product", item.ProductID, "error", err)
		return Heuristic(item)
	}
	return res
}

func (s *service) tryRemote(ctx context.Context, item Item) (res Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("advisor panicked: %v", r)
		}
	}()
	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}
	res, err = s.remote.Evaluate(ctx, item)
	if err != nil {
		return Result{}, err
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	return res, nil
}
