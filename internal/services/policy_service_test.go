package services

import (
	"errors"
	"testing"

	"github.com/Uguee/accessvc/domain"
	"github.com/Uguee/accessvc/internal/mocks"
)

func TestPolicyService_AddPolicy(t *testing.T) {
	enforcer := mocks.NewMockCasbinEnforcer()
	var added []interface{}
	enforcer.AddPolicyFunc = func(params ...interface{}) (bool, error) {
		added = params
		return true, nil
	}
	saved := false
	enforcer.SavePolicyFunc = func() error {
		saved = true
		return nil
	}

	svc := NewPolicyServiceWithEnforcer(enforcer)
	if err := svc.AddPolicy(domain.RoleDriver, domain.ViewTripCreate); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(added) != 2 || added[0] != "driver" || added[1] != "trip_create" {
		t.Errorf("unexpected policy params: %v", added)
	}
	if !saved {
		t.Error("expected the policy to be persisted")
	}
}

func TestPolicyService_CheckPermission(t *testing.T) {
	enforcer := mocks.NewMockCasbinEnforcer()
	enforcer.EnforceFunc = func(rvals ...interface{}) (bool, error) {
		return rvals[0] == "driver" && rvals[1] == "trip_create", nil
	}
	svc := NewPolicyServiceWithEnforcer(enforcer)

	granted, err := svc.CheckPermission(domain.RoleDriver, domain.ViewTripCreate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !granted {
		t.Error("expected a grant for the matching rule")
	}

	granted, _ = svc.CheckPermission(domain.RolePassenger, domain.ViewTripCreate)
	if granted {
		t.Error("expected no grant without a matching rule")
	}
}

func TestPolicyService_HasPolicyForView(t *testing.T) {
	enforcer := mocks.NewMockCasbinEnforcer()
	enforcer.GetPolicyFunc = func() ([][]string, error) {
		return [][]string{{"driver", "trip_create"}}, nil
	}
	svc := NewPolicyServiceWithEnforcer(enforcer)

	if !svc.HasPolicyForView(domain.ViewTripCreate) {
		t.Error("expected a declared view to be gated")
	}
	if svc.HasPolicyForView(domain.ViewProfile) {
		t.Error("expected an undeclared view to be open")
	}
}

func TestPolicyService_HasPolicyForViewFailsClosed(t *testing.T) {
	enforcer := mocks.NewMockCasbinEnforcer()
	enforcer.GetPolicyFunc = func() ([][]string, error) {
		return nil, errors.New("store unavailable")
	}
	svc := NewPolicyServiceWithEnforcer(enforcer)

	if !svc.HasPolicyForView(domain.ViewProfile) {
		t.Error("an unreadable policy set must be treated as gated")
	}
}
