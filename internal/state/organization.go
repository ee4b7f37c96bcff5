package state

import (
	"context"
	"slices"

	"github.com/mathenaangeles/socialite/internal/api"
	"github.com/mathenaangeles/socialite/internal/models"
)

const (
	opOrgCreate        = "organization/create"
	opOrgGet           = "organization/get"
	opOrgUpdate        = "organization/update"
	opOrgDelete        = "organization/delete"
	opOrgList          = "organization/list"
	opOrgAddMembers    = "organization/addMembers"
	opOrgRemoveMembers = "organization/removeMembers"
)

type orgAction struct {
	op    string
	phase Phase
	seq   uint64
	err   string
	org   *models.Organization
	orgs  []models.Organization
	id    string
}

// reduceOrganization folds one settlement into the organization cache.
// Fulfilled merge policies:
//
//	create          set current, append to list
//	get             set current only
//	update/members  set current, replace matching list entry
//	delete          remove matching list entry, current untouched
//	list            replace the list wholesale
func reduceOrganization(cache OrganizationCache, a orgAction) OrganizationCache {
	switch a.phase {
	case Pending:
		cache.Loading = true
		cache.Error = ""
	case Rejected:
		cache.Loading = false
		cache.Error = a.err
	case Fulfilled:
		cache.Loading = false
		cache.Error = ""
		switch a.op {
		case opOrgCreate:
			cache.Organization = a.org
			cache.Organizations = append(slices.Clone(cache.Organizations), *a.org)
		case opOrgGet:
			cache.Organization = a.org
		case opOrgUpdate, opOrgAddMembers, opOrgRemoveMembers:
			cache.Organization = a.org
			cache.Organizations = replaceOrganization(cache.Organizations, *a.org)
		case opOrgDelete:
			cache.Organizations = removeOrganization(cache.Organizations, a.id)
		case opOrgList:
			cache.Organizations = a.orgs
		}
	}
	return cache
}

func replaceOrganization(list []models.Organization, org models.Organization) []models.Organization {
	out := slices.Clone(list)
	for i := range out {
		if out[i].ID == org.ID {
			out[i] = org
			break
		}
	}
	return out
}

func removeOrganization(list []models.Organization, id string) []models.Organization {
	out := make([]models.Organization, 0, len(list))
	for _, o := range list {
		if o.ID != id {
			out = append(out, o)
		}
	}
	return out
}

func (s *Store) dispatchOrgPending(op string) uint64 {
	s.mu.Lock()
	seq := s.beginLocked(op)
	s.state.Organization = reduceOrganization(s.state.Organization, orgAction{op: op, phase: Pending, seq: seq})
	s.finishLocked()
	return seq
}

func (s *Store) dispatchOrg(a orgAction) {
	s.mu.Lock()
	if s.staleLocked(a.op, a.seq) {
		s.mu.Unlock()
		dropStale(a.op)
		return
	}
	s.state.Organization = reduceOrganization(s.state.Organization, a)
	s.finishLocked()
}

func (s *Store) runOrg(ctx context.Context, op string, call func(context.Context) (*models.Organization, error)) (*models.Organization, error) {
	seq := s.dispatchOrgPending(op)
	org, err := call(ctx)
	if err != nil {
		s.dispatchOrg(orgAction{op: op, phase: Rejected, seq: seq, err: err.Error()})
		return nil, err
	}
	s.dispatchOrg(orgAction{op: op, phase: Fulfilled, seq: seq, org: org})
	return org, nil
}

// CreateOrganization creates an organization and caches it.
func (s *Store) CreateOrganization(ctx context.Context, params api.OrganizationParams) (*models.Organization, error) {
	return s.runOrg(ctx, opOrgCreate, func(ctx context.Context) (*models.Organization, error) {
		return s.api.CreateOrganization(ctx, params)
	})
}

// GetOrganization fetches one organization into the current slot.
func (s *Store) GetOrganization(ctx context.Context, id string) (*models.Organization, error) {
	return s.runOrg(ctx, opOrgGet, func(ctx context.Context) (*models.Organization, error) {
		return s.api.Organization(ctx, id)
	})
}

// UpdateOrganization updates an organization and refreshes both the current
// slot and the list entry.
func (s *Store) UpdateOrganization(ctx context.Context, id string, params api.OrganizationParams) (*models.Organization, error) {
	return s.runOrg(ctx, opOrgUpdate, func(ctx context.Context) (*models.Organization, error) {
		return s.api.UpdateOrganization(ctx, id, params)
	})
}

// AddMembers adds members by email; the roster committed to the cache is the
// server's settled response, never the request input.
func (s *Store) AddMembers(ctx context.Context, id string, emails []string) (*models.Organization, error) {
	return s.runOrg(ctx, opOrgAddMembers, func(ctx context.Context) (*models.Organization, error) {
		return s.api.AddMembers(ctx, id, emails)
	})
}

// RemoveMembers removes members by email, mirroring AddMembers.
func (s *Store) RemoveMembers(ctx context.Context, id string, emails []string) (*models.Organization, error) {
	return s.runOrg(ctx, opOrgRemoveMembers, func(ctx context.Context) (*models.Organization, error) {
		return s.api.RemoveMembers(ctx, id, emails)
	})
}

// DeleteOrganization deletes an organization and drops it from the list.
func (s *Store) DeleteOrganization(ctx context.Context, id string) error {
	seq := s.dispatchOrgPending(opOrgDelete)
	deletedID, err := s.api.DeleteOrganization(ctx, id)
	if err != nil {
		s.dispatchOrg(orgAction{op: opOrgDelete, phase: Rejected, seq: seq, err: err.Error()})
		return err
	}
	s.dispatchOrg(orgAction{op: opOrgDelete, phase: Fulfilled, seq: seq, id: deletedID})
	return nil
}

// ListOrganizations replaces the cached list with the server's.
func (s *Store) ListOrganizations(ctx context.Context) ([]models.Organization, error) {
	seq := s.dispatchOrgPending(opOrgList)
	orgs, err := s.api.Organizations(ctx)
	if err != nil {
		s.dispatchOrg(orgAction{op: opOrgList, phase: Rejected, seq: seq, err: err.Error()})
		return nil, err
	}
	s.dispatchOrg(orgAction{op: opOrgList, phase: Fulfilled, seq: seq, orgs: orgs})
	return orgs, nil
}
