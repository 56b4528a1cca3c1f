package rbac

import (
	"consulat-service/internal/app/contracts"
	"consulat-service/internal/pkg/exceptions"
	"fmt"
	"strings"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

type rbacEnforcer struct {
	Enforcer *casbin.Enforcer
	BasePath string
}

// NewRBACEnforcer builds an in-memory casbin enforcer whose route policies are mounted under basePath.
func NewRBACEnforcer(basePath string) (contracts.RBACEnforcer, error) {
	m, err := model.NewModelFromString(modelDefinition)
	if err != nil {
		return nil, fmt.Errorf("failed to load rbac model: %w", err)
	}

	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("failed to create rbac enforcer: %w", err)
	}

	basePath = strings.TrimRight(basePath, "/")
	policies := make([][]string, 0, len(routePolicies))
	for _, policy := range routePolicies {
		policies = append(policies, []string{policy[0], basePath + policy[1], policy[2]})
	}
	if _, err := enforcer.AddPolicies(policies); err != nil {
		return nil, fmt.Errorf("failed to add rbac policies: %w", err)
	}
	if _, err := enforcer.AddGroupingPolicies(roleHierarchy); err != nil {
		return nil, fmt.Errorf("failed to add rbac role hierarchy: %w", err)
	}

	return &rbacEnforcer{
		Enforcer: enforcer,
		BasePath: basePath,
	}, nil
}

func (r *rbacEnforcer) Enforce(role, path, method string) (bool, error) {
	allowed, err := r.Enforcer.Enforce(role, path, method)
	if err != nil {
		return false, exceptions.ErrRBACEnforce(err)
	}
	return allowed, nil
}
