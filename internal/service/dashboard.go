package service

import (
	"context"
	"time"

	"github.com/financeflow/financeflow/internal/api/dto"
	"github.com/financeflow/financeflow/internal/domain/snapshot"
	ierr "github.com/financeflow/financeflow/internal/errors"
	"github.com/financeflow/financeflow/internal/types"
	"github.com/sourcegraph/conc/pool"
)

type DashboardService interface {
	// GetDashboard never fails for an authenticated owner: when the ledger
	// store is unavailable it serves the last cached snapshot, else demo values
	GetDashboard(ctx context.Context) (*dto.DashboardResponse, error)
	// ComputeSnapshot recomputes the owner's snapshot from the ledger store
	ComputeSnapshot(ctx context.Context, ownerID string) (*snapshot.Snapshot, error)
}

type dashboardService struct {
	ServiceParams
}

func NewDashboardService(params ServiceParams) DashboardService {
	return &dashboardService{
		ServiceParams: params,
	}
}

func (s *dashboardService) GetDashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	ownerID, err := types.ValidateOwnerContext(ctx)
	if err != nil {
		return nil, err
	}

	unlock := s.Snapshots.Lock(ownerID)
	defer unlock()

	if cached, ok := s.Snapshots.Fresh(ctx, ownerID); ok {
		return dto.NewDashboardResponse(cached), nil
	}

	snap, err := s.ComputeSnapshot(ctx, ownerID)
	if err != nil {
		s.Logger.Errorw("failed to compute snapshot, serving fallback",
			"owner_id", ownerID,
			"error", err,
		)
		s.Sentry.CaptureException(err)
		if fallback, ok := s.Snapshots.Fallback(ctx, ownerID); ok {
			return dto.NewDashboardResponse(fallback.WithSource(types.SnapshotSourceCache)), nil
		}
		return dto.NewDashboardResponse(snapshot.Demo(ownerID, time.Now())), nil
	}

	s.Snapshots.Store(ctx, snap)
	return dto.NewDashboardResponse(snap), nil
}

// ComputeSnapshot reads the owner's expenses, clients and invoices concurrently,
// each bounded by the store timeout. Callers hold the owner's snapshot lock.
func (s *dashboardService) ComputeSnapshot(ctx context.Context, ownerID string) (*snapshot.Snapshot, error) {
	var (
		ledger        snapshot.Ledger
		providerCount = -1
	)

	p := pool.New().WithContext(ctx).WithCancelOnError().WithFirstError()

	p.Go(func(ctx context.Context) error {
		ctx, cancel := s.storeContext(ctx)
		defer cancel()
		expenses, err := s.ExpenseRepo.List(ctx, ownerID)
		if err != nil {
			return storeUnavailable(err, "expenses")
		}
		ledger.Expenses = expenses
		return nil
	})

	p.Go(func(ctx context.Context) error {
		ctx, cancel := s.storeContext(ctx)
		defer cancel()
		clients, err := s.ClientRepo.List(ctx, ownerID)
		if err != nil {
			return storeUnavailable(err, "clients")
		}
		ledger.Clients = clients
		return nil
	})

	p.Go(func(ctx context.Context) error {
		ctx, cancel := s.storeContext(ctx)
		defer cancel()
		invoices, err := s.InvoiceRepo.List(ctx, ownerID)
		if err != nil {
			return storeUnavailable(err, "invoices")
		}
		ledger.Invoices = invoices
		return nil
	})

	if s.useProviderSubscriptions() {
		p.Go(func(ctx context.Context) error {
			count, err := s.Provider.CountActiveSubscriptions(ctx, ownerID)
			if err != nil {
				// the ledger figures are still worth serving
				s.Logger.Warnw("failed to pull active subscriptions",
					"owner_id", ownerID,
					"error", err,
				)
				return nil
			}
			providerCount = count
			return nil
		})
	}

	if err := p.Wait(); err != nil {
		return nil, err
	}

	activeSubscriptions := snapshot.CountActiveClients(ownerID, ledger.Clients)
	if s.useProviderSubscriptions() {
		activeSubscriptions = providerCount
		if providerCount < 0 {
			activeSubscriptions = s.lastKnownSubscriptions(ctx, ownerID)
		}
	}

	return snapshot.Compute(ownerID, ledger, activeSubscriptions, time.Now()), nil
}

// useProviderSubscriptions reports whether the active subscription count comes
// from the payment provider rather than the ledger proxy
func (s *dashboardService) useProviderSubscriptions() bool {
	return s.Provider != nil && s.Config.Stripe.HasStripe()
}

func (s *dashboardService) lastKnownSubscriptions(ctx context.Context, ownerID string) int {
	if fallback, ok := s.Snapshots.Fallback(ctx, ownerID); ok {
		return fallback.ActiveSubscriptions
	}
	return 0
}

func (s *dashboardService) storeContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if timeout := s.Config.Dashboard.StoreTimeout; timeout > 0 {
		return context.WithTimeout(ctx, timeout)
	}
	return context.WithCancel(ctx)
}

func storeUnavailable(err error, collection string) error {
	if ierr.IsStoreUnavailable(err) {
		return err
	}
	return ierr.WithError(err).
		WithHintf("Could not read %s", collection).
		WithReportableDetails(map[string]any{
			"collection": collection,
		}).
		Mark(ierr.ErrStoreUnavailable)
}
