package checkout

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/yanqian/ethix-logistics/internal/domain/advisor"
	"github.com/yanqian/ethix-logistics/internal/domain/catalog"
	"github.com/yanqian/ethix-logistics/internal/domain/routing"
	"github.com/yanqian/ethix-logistics/internal/domain/storefront"
	apperrors "github.com/yanqian/ethix-logistics/pkg/errors"
	"github.com/yanqian/ethix-logistics/pkg/util"
)

// Service turns the current cart into an order with one routed shipment per line.
type Service interface {
	Checkout(ctx context.Context) (storefront.Order, error)
}

// Store is the slice of the storefront container checkout depends on.
type Store interface {
	CurrentUser() (storefront.User, bool)
	Cart() []storefront.CartItem
	CompleteCheckout(ctx context.Context, order storefront.Order) error
}

type service struct {
	// mu serializes checkouts so one cart cannot become two orders.
	mu sync.Mutex

	cfg     Config
	origin  catalog.Hub
	engine  *routing.Engine
	advisor advisor.Service
	store   Store
	logger  *slog.Logger

	sample DestinationSampler
	now    func() time.Time
	newID  func(prefix string) string
}

// NewService is a wire provider for the checkout domain.
func NewService(cfg Config, engine *routing.Engine, adv advisor.Service, store Store, logger *slog.Logger) (Service, error) {
	hub, ok := catalog.FindHub(cfg.HubID)
	if !ok {
		return nil, apperrors.Wrap(apperrors.CodeInvalidInput, fmt.Sprintf("unknown origin hub %q", cfg.HubID), nil)
	}
	if cfg.AdvisorConcurrency < 1 {
		cfg.AdvisorConcurrency = 1
	}
	return &service{
		cfg:     cfg,
		origin:  hub,
		engine:  engine,
		advisor: adv,
		store:   store,
		logger:  logger.With("component", "checkout.service"),
		sample:  UniformSampler(cfg.Region),
		now:     util.NowUTC,
		newID:   storefront.PrefixedID,
	}, nil
}

func (s *service) Checkout(ctx context.Context) (storefront.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.store.CurrentUser()
	if !ok {
		return storefront.Order{}, apperrors.Wrap(apperrors.CodeInvalidInput, "sign in before checking out", nil)
	}
	cart := s.store.Cart()
	if len(cart) == 0 {
		return storefront.Order{}, apperrors.Wrap(apperrors.CodeInvalidInput, "cart is empty", nil)
	}

	results := s.evaluate(ctx, cart)

	orderID := s.newID("ORD")
	shipments := make([]storefront.Shipment, len(cart))
	total := 0.0
	for i, line := range cart {
		shipments[i] = s.ship(orderID, line, results[i])
		total += line.Price * float64(line.Quantity)
	}

	order := storefront.Order{
		ID:         orderID,
		CustomerID: user.ID,
		Items:      cart,
		TotalPrice: total,
		Timestamp:  util.FormatISO(s.now()),
		Shipments:  shipments,
	}
	if err := s.store.CompleteCheckout(ctx, order); err != nil {
		return storefront.Order{}, err
	}
	s.logger.Info("order placed", "order", order.ID, "customer", user.ID, "shipments", len(shipments), "total", total)
	return order, nil
}

// evaluate asks the advisor about every line. The advisor never fails, so the
// group only bounds how many calls are in flight.
func (s *service) evaluate(ctx context.Context, cart []storefront.CartItem) []advisor.Result {
	results := make([]advisor.Result, len(cart))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.AdvisorConcurrency)
	for i, line := range cart {
		g.Go(func() error {
			results[i] = s.advisor.Evaluate(gctx, line.AdvisorItem(line.MedicalContext))
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func (s *service) ship(orderID string, line storefront.CartItem, res advisor.Result) storefront.Shipment {
	dest := s.sample()
	decision := s.engine.Decide(res.Signals, s.origin.Coords, dest)

	shipment := storefront.Shipment{
		ID:              s.newID("SHP"),
		OrderID:         orderID,
		ProductID:       line.ID,
		ItemName:        line.Name,
		Lane:            decision.Lane,
		Status:          storefront.StatusProcessing,
		PriorityScore:   decision.PriorityScore,
		MedicalUrgency:  res.MedicalUrgency,
		EthicalRisk:     res.EthicalRisk,
		BusinessValue:   res.BusinessRelevance,
		TimeSensitivity: res.TimeSensitivity,
		DelayRisk:       decision.DelayRisk,
		Coords:          dest,
		AIExplanation:   res.Explanation,
		IsAIFallback:    res.IsFallback,
		Timestamp:       util.FormatISO(s.now()),
	}
	if decision.Lane == routing.LaneEthicalExpress {
		shipment.ProfitImpact = s.cfg.ExpressProfitImpact
		shipment.SlackUsed = true
	}
	s.logger.Debug("shipment routed",
		"shipment", shipment.ID,
		"product", line.ID,
		"lane", decision.Lane,
		"branch", decision.Branch,
		"score", decision.PriorityScore,
		"distanceKm", decision.DistanceKm,
		"fallback", res.IsFallback,
	)
	return shipment
}
