// Package services holds the permission components consulted by the
// number lifecycle usecases.
package services

import (
	"context"

	"numbers/internal/domain/account"
	"numbers/internal/shared/logger"
)

// ReassignAuthorizer decides whether a number may move between two
// accounts of the same vendor by walking both accounts' ancestor chains
// until they meet. Directory failures abort the check; the authorizer
// never defaults to permit.
type ReassignAuthorizer struct {
	directory account.Directory
	isRoot    account.RootPredicate
	logger    logger.Interface
}

// NewReassignAuthorizer creates an authorizer backed by the given
// directory. Pass nil for isRoot to use account.DefaultRootPredicate.
func NewReassignAuthorizer(
	directory account.Directory,
	isRoot account.RootPredicate,
	logger logger.Interface,
) *ReassignAuthorizer {
	if isRoot == nil {
		isRoot = account.DefaultRootPredicate
	}
	return &ReassignAuthorizer{
		directory: directory,
		isRoot:    isRoot,
		logger:    logger,
	}
}

// chain is one account's ancestor path, oldest element last. Membership
// is tracked in a set so intersection checks stay constant-time.
type chain struct {
	last      account.VendorAccountID
	members   map[account.VendorAccountID]struct{}
	exhausted bool
}

func newChain(start account.VendorAccountID) *chain {
	return &chain{
		last:    start,
		members: map[account.VendorAccountID]struct{}{start: {}},
	}
}

func (c *chain) contains(id account.VendorAccountID) bool {
	_, ok := c.members[id]
	return ok
}

// extend appends the last element's parent. A parent already present in
// the chain marks the chain exhausted, guarding against directory data
// that forms a cycle instead of a tree.
func (c *chain) extend(parent account.VendorAccountID) {
	if c.contains(parent) {
		c.exhausted = true
		return
	}
	c.members[parent] = struct{}{}
	c.last = parent
}

// Verify reports whether newOwner is permitted to take over a number
// currently held by currentOwner. The two accounts must belong to the
// same vendor and must share a non-internal ancestor; when the chains
// only meet at an internal account, authorization depends on whether a
// non-internal ancestor sits between that account and the vendor root.
func (a *ReassignAuthorizer) Verify(ctx context.Context, newOwner, currentOwner account.VendorAccountID) (bool, error) {
	if newOwner.VendorID != currentOwner.VendorID {
		return false, nil
	}
	if newOwner == currentOwner {
		return false, nil
	}

	cache := make(map[account.VendorAccountID]account.Account)
	fetch := func(id account.VendorAccountID) (account.Account, error) {
		if acct, ok := cache[id]; ok {
			return acct, nil
		}
		acct, err := a.directory.GetAccount(ctx, id)
		if err != nil {
			return account.Account{}, err
		}
		cache[id] = acct
		return acct, nil
	}

	chainNew := newChain(newOwner)
	chainCur := newChain(currentOwner)

	for !chainNew.exhausted || !chainCur.exhausted {
		meet, err := a.extendOne(chainNew, chainCur, fetch)
		if err != nil {
			return false, err
		}
		if meet == nil {
			meet, err = a.extendOne(chainCur, chainNew, fetch)
			if err != nil {
				return false, err
			}
		}
		if meet != nil {
			return a.verifyAncestor(*meet, fetch)
		}
	}

	a.logger.Debugw("ancestor chains never met",
		"new_owner", newOwner.String(),
		"current_owner", currentOwner.String(),
	)
	return false, nil
}

// extendOne grows c by one parent and reports the parent when it also
// appears in the other chain.
func (a *ReassignAuthorizer) extendOne(
	c, other *chain,
	fetch func(account.VendorAccountID) (account.Account, error),
) (*account.VendorAccountID, error) {
	if c.exhausted {
		return nil, nil
	}
	acct, err := fetch(c.last)
	if err != nil {
		return nil, err
	}
	if !acct.HasParent() {
		c.exhausted = true
		return nil, nil
	}
	parent := acct.ParentID()
	c.extend(parent)
	if other.contains(parent) {
		return &parent, nil
	}
	return nil, nil
}

// verifyAncestor decides authorization once the chains meet. A
// non-internal meeting account authorizes directly; an internal one only
// authorizes when a non-internal ancestor exists below the vendor root.
func (a *ReassignAuthorizer) verifyAncestor(
	meet account.VendorAccountID,
	fetch func(account.VendorAccountID) (account.Account, error),
) (bool, error) {
	acct, err := fetch(meet)
	if err != nil {
		return false, err
	}
	if !acct.Type.IsInternal() {
		return true, nil
	}

	seen := map[account.VendorAccountID]struct{}{acct.ID: {}}
	for {
		if a.isRoot(acct) {
			return false, nil
		}
		if !acct.HasParent() {
			return false, nil
		}
		parentID := acct.ParentID()
		if _, ok := seen[parentID]; ok {
			return false, nil
		}
		seen[parentID] = struct{}{}

		parent, err := fetch(parentID)
		if err != nil {
			return false, err
		}
		if !parent.Type.IsInternal() {
			return true, nil
		}
		acct = parent
	}
}
