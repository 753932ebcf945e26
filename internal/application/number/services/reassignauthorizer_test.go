package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"numbers/internal/application/number/testutil"
	"numbers/internal/domain/account"
)

// buildDirectory seeds the vendor "V1" tree used across the tests:
//
//	V1 (internal root)
//	├── AccountM1
//	├── AccountM2
//	├── AccountM          ── AccountM11, AccountM12
//	├── AccountC          ── I1 (internal) ── AccountD1, AccountD2
//	└── I2 (internal)     ── AccountE1, AccountE2
func buildDirectory() *testutil.FakeDirectory {
	dir := testutil.NewFakeDirectory()
	dir.AddAccount("V1", "V1", "", account.TypeInternal)
	dir.AddAccount("V1", "AccountM1", "V1", account.TypeCustomer)
	dir.AddAccount("V1", "AccountM2", "V1", account.TypeCustomer)
	dir.AddAccount("V1", "AccountM", "V1", account.TypeCustomer)
	dir.AddAccount("V1", "AccountM11", "AccountM", account.TypeCustomer)
	dir.AddAccount("V1", "AccountM12", "AccountM", account.TypeCustomer)
	dir.AddAccount("V1", "AccountC", "V1", account.TypeCustomer)
	dir.AddAccount("V1", "I1", "AccountC", account.TypeInternal)
	dir.AddAccount("V1", "AccountD1", "I1", account.TypeCustomer)
	dir.AddAccount("V1", "AccountD2", "I1", account.TypeCustomer)
	dir.AddAccount("V1", "I2", "V1", account.TypeInternal)
	dir.AddAccount("V1", "AccountE1", "I2", account.TypeCustomer)
	dir.AddAccount("V1", "AccountE2", "I2", account.TypeCustomer)

	dir.AddAccount("V2", "V2", "", account.TypeInternal)
	dir.AddAccount("V2", "AccountM11", "V2", account.TypeCustomer)
	return dir
}

func vid(accountID string) account.VendorAccountID {
	return account.NewVendorAccountID("V1", accountID)
}

func TestReassignAuthorizer_Verify(t *testing.T) {
	cases := []struct {
		name         string
		newOwner     account.VendorAccountID
		currentOwner account.VendorAccountID
		authorized   bool
	}{
		{
			name:         "siblings under customer ancestor",
			newOwner:     vid("AccountM11"),
			currentOwner: vid("AccountM12"),
			authorized:   true,
		},
		{
			name:         "parent and child",
			newOwner:     vid("AccountM"),
			currentOwner: vid("AccountM11"),
			authorized:   true,
		},
		{
			name:         "chains meet only at the internal root",
			newOwner:     vid("AccountM1"),
			currentOwner: vid("AccountM2"),
			authorized:   false,
		},
		{
			name:         "internal ancestor below a customer account",
			newOwner:     vid("AccountD1"),
			currentOwner: vid("AccountD2"),
			authorized:   true,
		},
		{
			name:         "internal ancestor directly below the root",
			newOwner:     vid("AccountE1"),
			currentOwner: vid("AccountE2"),
			authorized:   false,
		},
		{
			name:         "chains of different depth",
			newOwner:     vid("AccountD1"),
			currentOwner: vid("AccountM11"),
			authorized:   false,
		},
		{
			name:         "same account",
			newOwner:     vid("AccountM11"),
			currentOwner: vid("AccountM11"),
			authorized:   false,
		},
		{
			name:         "cross vendor",
			newOwner:     account.NewVendorAccountID("V2", "AccountM11"),
			currentOwner: vid("AccountM11"),
			authorized:   false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			auth := NewReassignAuthorizer(buildDirectory(), nil, testutil.NewMockLogger())
			ok, err := auth.Verify(context.Background(), tc.newOwner, tc.currentOwner)
			require.NoError(t, err)
			assert.Equal(t, tc.authorized, ok)
		})
	}
}

func TestReassignAuthorizer_UnknownAccountAborts(t *testing.T) {
	auth := NewReassignAuthorizer(buildDirectory(), nil, testutil.NewMockLogger())

	ok, err := auth.Verify(context.Background(), vid("AccountZ"), vid("AccountM11"))
	assert.False(t, ok)
	assert.ErrorIs(t, err, account.ErrAccountNotFound)
}

func TestReassignAuthorizer_DirectoryFailureAborts(t *testing.T) {
	dir := buildDirectory()
	dir.SetLookupError(errors.New("directory timeout"))
	auth := NewReassignAuthorizer(dir, nil, testutil.NewMockLogger())

	ok, err := auth.Verify(context.Background(), vid("AccountM11"), vid("AccountM12"))
	assert.False(t, ok)
	assert.Error(t, err)
}

func TestReassignAuthorizer_CachesDirectoryFetches(t *testing.T) {
	dir := buildDirectory()
	auth := NewReassignAuthorizer(dir, nil, testutil.NewMockLogger())

	ok, err := auth.Verify(context.Background(), vid("AccountD1"), vid("AccountD2"))
	require.NoError(t, err)
	require.True(t, ok)

	// AccountD1, AccountD2, the shared ancestor I1 and its parent AccountC
	// each resolve exactly once.
	assert.LessOrEqual(t, dir.Calls(), 4)
}

func TestReassignAuthorizer_CustomRootPredicate(t *testing.T) {
	dir := testutil.NewFakeDirectory()
	dir.AddAccount("V1", "platform-root", "", account.TypeInternal)
	dir.AddAccount("V1", "AccountA", "platform-root", account.TypeCustomer)
	dir.AddAccount("V1", "AccountB", "platform-root", account.TypeCustomer)

	isRoot := func(a account.Account) bool { return a.ID.AccountID == "platform-root" }
	auth := NewReassignAuthorizer(dir, isRoot, testutil.NewMockLogger())

	ok, err := auth.Verify(context.Background(), vid("AccountA"), vid("AccountB"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestReassignAuthorizer_CyclicDirectoryTerminates(t *testing.T) {
	dir := testutil.NewFakeDirectory()
	dir.AddAccount("V1", "AccountA", "AccountB", account.TypeCustomer)
	dir.AddAccount("V1", "AccountB", "AccountA", account.TypeCustomer)
	dir.AddAccount("V1", "AccountX", "AccountY", account.TypeCustomer)
	dir.AddAccount("V1", "AccountY", "AccountX", account.TypeCustomer)

	auth := NewReassignAuthorizer(dir, nil, testutil.NewMockLogger())

	ok, err := auth.Verify(context.Background(), vid("AccountA"), vid("AccountX"))
	require.NoError(t, err)
	assert.False(t, ok)
}
