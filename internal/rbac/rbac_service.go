package rbac

import (
	"github.com/abbie-leigh/hr-portal/internal/domain"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

// The portal has exactly two fixed roles, so the policy ships in code
// instead of a policy store. hr inherits everything employee can do.
const modelText = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`

var policies = [][]string{
	{"employee", "leave", "create"},
	{"employee", "leave", "read"},
	{"employee", "leave", "cancel"},
	{"employee", "user", "read_self"},
	{"employee", "user", "update_self"},
	{"hr", "leave", "approve"},
	{"hr", "user", "read"},
	{"hr", "user", "create"},
	{"hr", "user", "update"},
	{"hr", "user", "delete"},
	{"hr", "department", "manage"},
	{"hr", "role", "manage"},
}

var groupings = [][]string{
	{"hr", "employee"},
}

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	Enforce(req domain.EnforceRequest) (bool, error)
}

type service struct {
	enforcer *casbin.Enforcer
}

func NewService() (Service, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}

	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}

	for _, p := range policies {
		if _, err := enforcer.AddPolicy(p[0], p[1], p[2]); err != nil {
			return nil, err
		}
	}
	for _, g := range groupings {
		if _, err := enforcer.AddGroupingPolicy(g[0], g[1]); err != nil {
			return nil, err
		}
	}

	return &service{enforcer: enforcer}, nil
}

func (s *service) Enforce(req domain.EnforceRequest) (bool, error) {
	return s.enforcer.Enforce(req.Role, req.Resource, req.Action)
}
