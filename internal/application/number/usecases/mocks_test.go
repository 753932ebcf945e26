package usecases

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"numbers/internal/domain/account"
	"numbers/internal/domain/number"
	vo "numbers/internal/domain/number/valueobjects"
)

// mockPublisher records published lifecycle events.
type mockPublisher struct {
	mu     sync.Mutex
	events []LifecycleEvent
	err    error
}

func (m *mockPublisher) Publish(ctx context.Context, event LifecycleEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.events = append(m.events, event)
	return nil
}

func (m *mockPublisher) published() []LifecycleEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]LifecycleEvent, len(m.events))
	copy(out, m.events)
	return out
}

// waitFor polls until cond holds or the deadline passes, for asserting on
// fire-and-forget side effects.
func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not reached in time")
}

// mockTollFreeNotifier records toll-free notifications.
type mockTollFreeNotifier struct {
	mu            sync.Mutex
	assigned      []string
	statusChanges []string
}

func (m *mockTollFreeNotifier) NotifyTollFreeAssigned(ctx context.Context, phoneNumber string, owner account.VendorAccountID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.assigned = append(m.assigned, phoneNumber)
	return nil
}

func (m *mockTollFreeNotifier) NotifyTollFreeStatusChanged(ctx context.Context, phoneNumber string, status *string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.statusChanges = append(m.statusChanges, phoneNumber)
	return nil
}

func (m *mockTollFreeNotifier) assignedCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.assigned)
}

// allowAll authorizes every reassignment.
type allowAll struct{}

func (allowAll) Verify(ctx context.Context, newOwner, currentOwner account.VendorAccountID) (bool, error) {
	return true, nil
}

// denyAll rejects every reassignment.
type denyAll struct{}

func (denyAll) Verify(ctx context.Context, newOwner, currentOwner account.VendorAccountID) (bool, error) {
	return false, nil
}

// staticGraceChecker returns a fixed claimability decision.
type staticGraceChecker struct {
	claimable bool
	err       error
}

func (s staticGraceChecker) IsClaimable(ctx context.Context, n *number.Number, candidate account.VendorAccountID) (bool, error) {
	return s.claimable, s.err
}

func newPoolNumber(t *testing.T, country string, numberType vo.NumberType) *number.Number {
	t.Helper()
	n, err := number.NewNumber(
		"+61491570113",
		uuid.New(),
		country,
		numberType,
		vo.ClassificationBronze,
		vo.NewCapabilities(vo.CapabilitySMS, vo.CapabilityMMS),
		false,
	)
	require.NoError(t, err)
	return n
}

func newActiveAssignment(t *testing.T, numberID uuid.UUID, vendorID, accountID string) *number.Assignment {
	t.Helper()
	a, err := number.NewAssignment(numberID, account.NewVendorAccountID(vendorID, accountID), nil, nil, nil)
	require.NoError(t, err)
	return a
}
