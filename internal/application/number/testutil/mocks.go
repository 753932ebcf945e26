// Package testutil provides mock implementations for testing the number
// application layer.
package testutil

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"numbers/internal/domain/account"
	"numbers/internal/domain/audit"
	"numbers/internal/domain/number"
	"numbers/internal/shared/logger"
)

// MockNumberRepository is an in-memory implementation of number.Repository.
type MockNumberRepository struct {
	mu      sync.RWMutex
	numbers map[uuid.UUID]*number.Number

	// Error injection for testing
	createError error
	getError    error
	updateError error
	deleteError error
	listError   error
}

// NewMockNumberRepository creates a new mock number repository.
func NewMockNumberRepository() *MockNumberRepository {
	return &MockNumberRepository{numbers: make(map[uuid.UUID]*number.Number)}
}

// SetCreateError injects an error returned by Create.
func (m *MockNumberRepository) SetCreateError(err error) { m.createError = err }

// SetGetError injects an error returned by GetByID and GetByIDForUpdate.
func (m *MockNumberRepository) SetGetError(err error) { m.getError = err }

// SetUpdateError injects an error returned by Update.
func (m *MockNumberRepository) SetUpdateError(err error) { m.updateError = err }

// AddNumber seeds a number.
func (m *MockNumberRepository) AddNumber(n *number.Number) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.numbers[n.ID()] = n
}

func (m *MockNumberRepository) Create(ctx context.Context, n *number.Number) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createError != nil {
		return m.createError
	}
	m.numbers[n.ID()] = n
	return nil
}

func (m *MockNumberRepository) GetByID(ctx context.Context, id uuid.UUID) (*number.Number, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.getError != nil {
		return nil, m.getError
	}
	return m.numbers[id], nil
}

func (m *MockNumberRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*number.Number, error) {
	return m.GetByID(ctx, id)
}

func (m *MockNumberRepository) Update(ctx context.Context, n *number.Number) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.updateError != nil {
		return m.updateError
	}
	m.numbers[n.ID()] = n
	return nil
}

func (m *MockNumberRepository) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.deleteError != nil {
		return m.deleteError
	}
	delete(m.numbers, id)
	return nil
}

func (m *MockNumberRepository) List(ctx context.Context, filter number.ListFilter) ([]*number.Number, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.listError != nil {
		return nil, m.listError
	}

	all := make([]*number.Number, 0, len(m.numbers))
	for _, n := range m.numbers {
		all = append(all, n)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].ID().String() < all[j].ID().String()
	})

	matched := make([]*number.Number, 0, len(all))
	for _, n := range all {
		if filter.Token != nil && n.ID().String() < filter.Token.String() {
			continue
		}
		if filter.Country != "" && n.Country() != filter.Country {
			continue
		}
		if filter.Classification != "" && n.Classification() != filter.Classification {
			continue
		}
		if filter.Capability != "" && !n.Capabilities().Contains(filter.Capability) {
			continue
		}
		if filter.Matching != "" && !strings.HasPrefix(n.PhoneNumber(), filter.Matching) {
			continue
		}
		if filter.Assigned != nil && (n.AvailableAfter() == nil) != *filter.Assigned {
			continue
		}
		if filter.AvailableBy != nil && !n.IsAvailableAt(*filter.AvailableBy) {
			continue
		}
		matched = append(matched, n)
		if filter.PageSize > 0 && len(matched) == filter.PageSize+1 {
			break
		}
	}
	return matched, nil
}

// MockAssignmentRepository is an in-memory implementation of
// number.AssignmentRepository. When a revision log is attached via
// WithRevisionLog, every mutation appends a revision the way the real
// repository does.
type MockAssignmentRepository struct {
	mu          sync.RWMutex
	byNumberID  map[uuid.UUID]*number.Assignment
	revisionLog *MockRevisionRepository

	createError error
	updateError error
	deleteError error
	getError    error
}

// NewMockAssignmentRepository creates a new mock assignment repository.
func NewMockAssignmentRepository() *MockAssignmentRepository {
	return &MockAssignmentRepository{byNumberID: make(map[uuid.UUID]*number.Assignment)}
}

// WithRevisionLog attaches a revision log recording every mutation.
func (m *MockAssignmentRepository) WithRevisionLog(log *MockRevisionRepository) *MockAssignmentRepository {
	m.revisionLog = log
	return m
}

// SetCreateError injects an error returned by Create.
func (m *MockAssignmentRepository) SetCreateError(err error) { m.createError = err }

// SetDeleteError injects an error returned by Delete.
func (m *MockAssignmentRepository) SetDeleteError(err error) { m.deleteError = err }

// AddAssignment seeds an active assignment.
func (m *MockAssignmentRepository) AddAssignment(a *number.Assignment) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byNumberID[a.NumberID()] = a
}

func (m *MockAssignmentRepository) Create(ctx context.Context, a *number.Assignment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createError != nil {
		return m.createError
	}
	if _, exists := m.byNumberID[a.NumberID()]; exists {
		return number.ErrNumberAlreadyAssigned
	}
	m.byNumberID[a.NumberID()] = a
	m.record(a, audit.RevisionAdd)
	return nil
}

func (m *MockAssignmentRepository) Update(ctx context.Context, a *number.Assignment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.updateError != nil {
		return m.updateError
	}
	m.byNumberID[a.NumberID()] = a
	m.record(a, audit.RevisionModify)
	return nil
}

func (m *MockAssignmentRepository) Delete(ctx context.Context, a *number.Assignment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.deleteError != nil {
		return m.deleteError
	}
	delete(m.byNumberID, a.NumberID())
	m.record(a, audit.RevisionDelete)
	return nil
}

func (m *MockAssignmentRepository) GetByNumberID(ctx context.Context, numberID uuid.UUID) (*number.Assignment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.getError != nil {
		return nil, m.getError
	}
	return m.byNumberID[numberID], nil
}

func (m *MockAssignmentRepository) GetByNumberIDs(ctx context.Context, numberIDs []uuid.UUID) (map[uuid.UUID]*number.Assignment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.getError != nil {
		return nil, m.getError
	}
	out := make(map[uuid.UUID]*number.Assignment, len(numberIDs))
	for _, id := range numberIDs {
		if a, ok := m.byNumberID[id]; ok {
			out[id] = a
		}
	}
	return out, nil
}

func (m *MockAssignmentRepository) record(a *number.Assignment, rt audit.RevisionType) {
	if m.revisionLog == nil {
		return
	}
	m.revisionLog.Append(audit.Revision{
		RevisionType: rt,
		Timestamp:    time.Now().UTC(),
		AssignmentID: a.ID(),
		NumberID:     a.NumberID(),
		VendorID:     a.VendorID(),
		AccountID:    a.AccountID(),
		CallbackURL:  a.CallbackURL(),
		Metadata:     a.Metadata(),
		Label:        a.Label(),
		Created:      a.CreatedAt(),
	})
}

// MockRevisionRepository is an in-memory implementation of
// audit.RevisionRepository.
type MockRevisionRepository struct {
	mu        sync.RWMutex
	revisions []audit.Revision
	nextRev   int64

	listError error
}

// NewMockRevisionRepository creates a new mock revision repository.
func NewMockRevisionRepository() *MockRevisionRepository {
	return &MockRevisionRepository{}
}

// SetListError injects an error returned by List and LatestAddByNumberID.
func (m *MockRevisionRepository) SetListError(err error) { m.listError = err }

// Append records a revision, assigning the next revision number.
func (m *MockRevisionRepository) Append(rev audit.Revision) audit.Revision {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextRev++
	rev.RevisionNumber = m.nextRev
	m.revisions = append(m.revisions, rev)
	return rev
}

// Revisions returns a copy of the recorded revisions in append order.
func (m *MockRevisionRepository) Revisions() []audit.Revision {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]audit.Revision, len(m.revisions))
	copy(out, m.revisions)
	return out
}

func (m *MockRevisionRepository) List(ctx context.Context, filter audit.ListFilter) ([]audit.Revision, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.listError != nil {
		return nil, m.listError
	}

	matched := make([]audit.Revision, 0, len(m.revisions))
	for _, rev := range m.revisions {
		if !matchRevision(rev, filter) {
			continue
		}
		matched = append(matched, rev)
	}
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].AssignmentID != matched[j].AssignmentID {
			return matched[i].AssignmentID.String() > matched[j].AssignmentID.String()
		}
		return matched[i].RevisionNumber > matched[j].RevisionNumber
	})

	if c := filter.Cursor; c != nil {
		cut := 0
		for cut < len(matched) {
			rev := matched[cut]
			if rev.AssignmentID.String() < c.LastAssignmentID.String() ||
				(rev.AssignmentID == c.LastAssignmentID && rev.RevisionNumber <= c.LastRevisionNumber) {
				break
			}
			cut++
		}
		matched = matched[cut:]
	}

	if filter.PageSize > 0 && len(matched) > filter.PageSize+1 {
		matched = matched[:filter.PageSize+1]
	}
	return matched, nil
}

func (m *MockRevisionRepository) LatestAddByNumberID(ctx context.Context, numberID uuid.UUID) (*audit.Revision, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.listError != nil {
		return nil, m.listError
	}
	for i := len(m.revisions) - 1; i >= 0; i-- {
		rev := m.revisions[i]
		if rev.NumberID == numberID && rev.RevisionType == audit.RevisionAdd {
			return &rev, nil
		}
	}
	return nil, nil
}

func matchRevision(rev audit.Revision, filter audit.ListFilter) bool {
	if filter.AssignmentID != nil && rev.AssignmentID != *filter.AssignmentID {
		return false
	}
	if filter.NumberID != nil && rev.NumberID != *filter.NumberID {
		return false
	}
	if filter.VendorID != "" && rev.VendorID != filter.VendorID {
		return false
	}
	if filter.AccountID != "" && rev.AccountID != filter.AccountID {
		return false
	}
	if filter.CreatedBefore != nil && !rev.Created.Before(*filter.CreatedBefore) {
		return false
	}
	if filter.CreatedAfter != nil && !rev.Created.After(*filter.CreatedAfter) {
		return false
	}
	if filter.DeletedBefore != nil || filter.DeletedAfter != nil {
		if rev.RevisionType != audit.RevisionDelete {
			return false
		}
		if filter.DeletedBefore != nil && !rev.Timestamp.Before(*filter.DeletedBefore) {
			return false
		}
		if filter.DeletedAfter != nil && !rev.Timestamp.After(*filter.DeletedAfter) {
			return false
		}
	}
	return true
}

// FakeDirectory is an in-memory implementation of account.Directory.
type FakeDirectory struct {
	mu       sync.RWMutex
	accounts map[account.VendorAccountID]account.Account
	calls    int

	lookupError error
}

// NewFakeDirectory creates an empty directory.
func NewFakeDirectory() *FakeDirectory {
	return &FakeDirectory{accounts: make(map[account.VendorAccountID]account.Account)}
}

// SetLookupError injects an error returned by every GetAccount call.
func (f *FakeDirectory) SetLookupError(err error) { f.lookupError = err }

// AddAccount seeds a directory entry. parentAccountID may be empty.
func (f *FakeDirectory) AddAccount(vendorID, accountID, parentAccountID string, typ account.Type) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := account.NewVendorAccountID(vendorID, accountID)
	f.accounts[id] = account.Account{ID: id, ParentAccountID: parentAccountID, Type: typ}
}

// Calls returns the number of GetAccount invocations.
func (f *FakeDirectory) Calls() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.calls
}

func (f *FakeDirectory) GetAccount(ctx context.Context, id account.VendorAccountID) (account.Account, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()

	if f.lookupError != nil {
		return account.Account{}, f.lookupError
	}

	f.mu.RLock()
	defer f.mu.RUnlock()
	acct, ok := f.accounts[id]
	if !ok {
		return account.Account{}, account.ErrAccountNotFound
	}
	return acct, nil
}

// MockLogger is a logger.Interface implementation that records entries.
type MockLogger struct {
	mu      sync.RWMutex
	entries []LogEntry
}

// LogEntry records a log call.
type LogEntry struct {
	Level   string
	Message string
}

// NewMockLogger creates a new mock logger.
func NewMockLogger() *MockLogger {
	return &MockLogger{}
}

// Entries returns a copy of the recorded entries.
func (m *MockLogger) Entries() []LogEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]LogEntry, len(m.entries))
	copy(out, m.entries)
	return out
}

func (m *MockLogger) log(level, msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, LogEntry{Level: level, Message: msg})
}

func (m *MockLogger) Debug(msg string, args ...any) { m.log("DEBUG", msg) }
func (m *MockLogger) Info(msg string, args ...any)  { m.log("INFO", msg) }
func (m *MockLogger) Warn(msg string, args ...any)  { m.log("WARN", msg) }
func (m *MockLogger) Error(msg string, args ...any) { m.log("ERROR", msg) }

func (m *MockLogger) With(args ...any) logger.Interface  { return m }
func (m *MockLogger) Named(name string) logger.Interface { return m }

func (m *MockLogger) Debugw(msg string, keysAndValues ...interface{}) { m.log("DEBUG", msg) }
func (m *MockLogger) Infow(msg string, keysAndValues ...interface{})  { m.log("INFO", msg) }
func (m *MockLogger) Warnw(msg string, keysAndValues ...interface{})  { m.log("WARN", msg) }
func (m *MockLogger) Errorw(msg string, keysAndValues ...interface{}) { m.log("ERROR", msg) }
