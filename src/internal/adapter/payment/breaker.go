package payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/api-sage/cfc-rewards/src/internal/logger"
	"github.com/sony/gobreaker"
)

var ErrGatewayUnavailable = errors.New("payment gateway unavailable")

type Charger interface {
	Charge(ctx context.Context, req ChargeRequest) (Receipt, error)
	Refund(ctx context.Context, receipt Receipt) error
}

// BreakerGateway stops calling a failing gateway until its cool-down expires.
// Rejected requests and caller cancellations do not count as gateway failures.
type BreakerGateway struct {
	next    Charger
	breaker *gobreaker.CircuitBreaker
}

type BreakerSettings struct {
	MaxConsecutiveFailures uint32
	OpenTimeout            time.Duration
	HalfOpenRequests       uint32
}

func NewBreakerGateway(next Charger, settings BreakerSettings) *BreakerGateway {
	if settings.MaxConsecutiveFailures == 0 {
		settings.MaxConsecutiveFailures = 5
	}
	if settings.OpenTimeout <= 0 {
		settings.OpenTimeout = 30 * time.Second
	}
	if settings.HalfOpenRequests == 0 {
		settings.HalfOpenRequests = 1
	}

	return &BreakerGateway{
		next: next,
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "payment-gateway",
			MaxRequests: settings.HalfOpenRequests,
			Interval:    time.Minute,
			Timeout:     settings.OpenTimeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= settings.MaxConsecutiveFailures
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				logger.Warn("payment gateway breaker state change", logger.Fields{
					"breaker": name,
					"from":    from.String(),
					"to":      to.String(),
				})
			},
			IsSuccessful: func(err error) bool {
				return err == nil ||
					errors.Is(err, ErrInvalidCharge) ||
					errors.Is(err, context.Canceled)
			},
		}),
	}
}

func (g *BreakerGateway) Charge(ctx context.Context, req ChargeRequest) (Receipt, error) {
	result, err := g.breaker.Execute(func() (interface{}, error) {
		return g.next.Charge(ctx, req)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return Receipt{}, fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}
	if err != nil {
		return Receipt{}, err
	}

	return result.(Receipt), nil
}

func (g *BreakerGateway) Refund(ctx context.Context, receipt Receipt) error {
	_, err := g.breaker.Execute(func() (interface{}, error) {
		return nil, g.next.Refund(ctx, receipt)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}
	return err
}

func (g *BreakerGateway) State() string {
	return g.breaker.State().String()
}
