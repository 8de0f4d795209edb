package checkout

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/yanqian/ethix-logistics/internal/domain/advisor"
	"github.com/yanqian/ethix-logistics/internal/domain/catalog"
	"github.com/yanqian/ethix-logistics/internal/domain/routing"
	"github.com/yanqian/ethix-logistics/internal/domain/storefront"
	apperrors "github.com/yanqian/ethix-logistics/pkg/errors"
	"github.com/yanqian/ethix-logistics/pkg/logger"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestCheckoutRoutesEveryLine(t *testing.T) {
	ctx := context.Background()
	container := signedInContainer(t, "p1", "p1", "p4")
	adv := advisorFunc(func(_ context.Context, item advisor.Item) advisor.Result {
		if item.ProductID == "p1" {
			return advisor.Result{
				Signals:     routing.Signals{MedicalUrgency: 1, TimeSensitivity: 1, EthicalRisk: 1, BusinessRelevance: 1},
				Explanation: "critical cold chain",
			}
		}
		return advisor.Heuristic(item)
	})
	svc := newTestService(t, DefaultConfig(), adv, container)

	order, err := svc.Checkout(ctx)
	require.NoError(t, err)

	require.Equal(t, "ORD-1", order.ID)
	require.Equal(t, "2024-07-01T09:30:00.000Z", order.Timestamp)
	require.InDelta(t, 450*2+380, order.TotalPrice, 1e-9)
	require.Len(t, order.Shipments, 2)

	express := order.Shipments[0]
	require.Equal(t, "SHP-2", express.ID)
	require.Equal(t, "ORD-1", express.OrderID)
	require.Equal(t, "p1", express.ProductID)
	require.Equal(t, routing.LaneEthicalExpress, express.Lane)
	require.Equal(t, storefront.StatusProcessing, express.Status)
	require.InDelta(t, 0.70, express.PriorityScore, 1e-9)
	require.Equal(t, 200.0, express.ProfitImpact)
	require.True(t, express.SlackUsed)
	require.False(t, express.IsAIFallback)
	require.Equal(t, "critical cold chain", express.AIExplanation)

	standard := order.Shipments[1]
	require.Equal(t, "SHP-3", standard.ID)
	require.Equal(t, routing.LaneStandard, standard.Lane)
	require.InDelta(t, 0.155, standard.PriorityScore, 1e-9)
	require.Zero(t, standard.ProfitImpact)
	require.False(t, standard.SlackUsed)
	require.True(t, standard.IsAIFallback)
	require.InDelta(t, 0.2, standard.BusinessValue, 1e-9)

	require.Empty(t, container.Cart())
	require.Len(t, container.Orders(), 1)
	require.Len(t, container.Shipments(), 2)
}

func TestCheckoutPassesMedicalContext(t *testing.T) {
	ctx := context.Background()
	container := signedInContainer(t, "p3")
	_, err := container.UpdateCartItem(ctx, "p3", storefront.CartUpdate{
		MedicalContext: &advisor.MedicalContext{IntendedUse: "sepsis", RecipientType: "Hospital"},
	})
	require.NoError(t, err)

	var seen *advisor.MedicalContext
	adv := advisorFunc(func(_ context.Context, item advisor.Item) advisor.Result {
		seen = item.MedicalContext
		return advisor.Heuristic(item)
	})
	_, err = newTestService(t, DefaultConfig(), adv, container).Checkout(ctx)
	require.NoError(t, err)
	require.NotNil(t, seen)
	require.Equal(t, "sepsis", seen.IntendedUse)
}

func TestCheckoutRequiresUser(t *testing.T) {
	container := storefront.NewContainer(newMemStore(), logger.Discard())
	svc := newTestService(t, DefaultConfig(), heuristicAdvisor(), container)

	_, err := svc.Checkout(context.Background())
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))
}

func TestCheckoutRequiresItems(t *testing.T) {
	container := signedInContainer(t)
	svc := newTestService(t, DefaultConfig(), heuristicAdvisor(), container)

	_, err := svc.Checkout(context.Background())
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))
	require.Empty(t, container.Orders())
}

func TestCheckoutBoundsAdvisorConcurrency(t *testing.T) {
	container := signedInContainer(t, "p1", "p2", "p3", "p4", "p5", "p6")
	var inFlight, peak atomic.Int32
	adv := advisorFunc(func(_ context.Context, item advisor.Item) advisor.Result {
		n := inFlight.Add(1)
		for {
			cur := peak.Load()
			if n <= cur || peak.CompareAndSwap(cur, n) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		inFlight.Add(-1)
		return advisor.Heuristic(item)
	})
	cfg := DefaultConfig()
	cfg.AdvisorConcurrency = 2

	order, err := newTestService(t, cfg, adv, container).Checkout(context.Background())
	require.NoError(t, err)
	require.Len(t, order.Shipments, 6)
	require.LessOrEqual(t, peak.Load(), int32(2))
	require.GreaterOrEqual(t, peak.Load(), int32(1))
}

func TestConcurrentCheckoutsPlaceOneOrder(t *testing.T) {
	container := signedInContainer(t, "p1", "p4")
	adv := advisorFunc(func(_ context.Context, item advisor.Item) advisor.Result {
		time.Sleep(20 * time.Millisecond)
		return advisor.Heuristic(item)
	})
	svc := newTestService(t, DefaultConfig(), adv, container)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = svc.Checkout(context.Background())
		}()
	}
	wg.Wait()

	var placed, rejected int
	for _, err := range errs {
		switch {
		case err == nil:
			placed++
		case apperrors.IsCode(err, apperrors.CodeInvalidInput):
			rejected++
		}
	}
	require.Equal(t, 1, placed)
	require.Equal(t, 1, rejected)
	require.Len(t, container.Orders(), 1)
	require.Len(t, container.Shipments(), 2)
	require.Empty(t, container.Cart())
}

func TestCheckoutKeepsLinesAddedWhileRouting(t *testing.T) {
	ctx := context.Background()
	container := signedInContainer(t, "p4")
	started := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	adv := advisorFunc(func(_ context.Context, item advisor.Item) advisor.Result {
		once.Do(func() { close(started) })
		<-release
		return advisor.Heuristic(item)
	})
	svc := newTestService(t, DefaultConfig(), adv, container)

	type outcome struct {
		order storefront.Order
		err   error
	}
	done := make(chan outcome, 1)
	go func() {
		order, err := svc.Checkout(ctx)
		done <- outcome{order, err}
	}()

	<-started
	phone, _ := catalog.FindProduct("p6")
	atta, _ := catalog.FindProduct("p4")
	_, err := container.AddToCart(ctx, phone)
	require.NoError(t, err)
	_, err = container.AddToCart(ctx, atta)
	require.NoError(t, err)
	close(release)

	res := <-done
	require.NoError(t, res.err)
	require.Len(t, res.order.Items, 1)
	require.Equal(t, 1, res.order.Items[0].Quantity)

	cart := container.Cart()
	require.Len(t, cart, 2)
	require.Equal(t, "p4", cart[0].ID)
	require.Equal(t, 1, cart[0].Quantity)
	require.Equal(t, "p6", cart[1].ID)
}

func TestNewServiceRejectsUnknownHub(t *testing.T) {
	cfg := DefaultConfig()
	cfg.HubID = "h9"
	_, err := NewService(cfg, routing.NewEngine(routing.DefaultConfig()), heuristicAdvisor(), nil, logger.Discard())
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))
}

func TestUniformSamplerStaysInRegion(t *testing.T) {
	sample := UniformSampler(TamilNadu)
	for range 500 {
		c := sample()
		require.GreaterOrEqual(t, c.Lat, 8.5)
		require.Less(t, c.Lat, 14.0)
		require.GreaterOrEqual(t, c.Lon, 76.5)
		require.Less(t, c.Lon, 80.0)
	}
}

func newTestService(t *testing.T, cfg Config, adv advisor.Service, store Store) *service {
	t.Helper()
	built, err := NewService(cfg, routing.NewEngine(routing.DefaultConfig()), adv, store, logger.Discard())
	require.NoError(t, err)
	svc := built.(*service)

	hub, _ := catalog.FindHub(cfg.HubID)
	svc.sample = func() routing.Coordinate { return hub.Coords }
	svc.now = func() time.Time { return time.Date(2024, 7, 1, 9, 30, 0, 0, time.UTC) }
	var seq int
	svc.newID = func(prefix string) string {
		seq++
		return fmt.Sprintf("%s-%d", prefix, seq)
	}
	return svc
}

func signedInContainer(t *testing.T, productIDs ...string) *storefront.Container {
	t.Helper()
	ctx := context.Background()
	c := storefront.NewContainer(newMemStore(), logger.Discard())
	_, err := c.Login(ctx, "meena@ethix.in", storefront.RoleCustomer)
	require.NoError(t, err)
	for _, id := range productIDs {
		p, ok := catalog.FindProduct(id)
		require.True(t, ok, id)
		_, err := c.AddToCart(ctx, p)
		require.NoError(t, err)
	}
	return c
}

type advisorFunc func(ctx context.Context, item advisor.Item) advisor.Result

func (f advisorFunc) Evaluate(ctx context.Context, item advisor.Item) advisor.Result {
	return f(ctx, item)
}

func heuristicAdvisor() advisor.Service {
	return advisorFunc(func(_ context.Context, item advisor.Item) advisor.Result {
		return advisor.Heuristic(item)
	})
}

type memStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemStore() *memStore {
	return &memStore{data: make(map[string][]byte)}
}

func (s *memStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *memStore) Put(_ context.Context, key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = data
	return nil
}

func (s *memStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}
