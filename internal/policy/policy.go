package policy

import (
	"fmt"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"github.com/unionmaster/crm-console/internal/domain"
)

// Action names every permission-gated operation in the client. Views ask
// the authorizer instead of re-deriving role rules locally.
type Action string

const (
	ActionLeadCreate     Action = "lead.create"
	ActionLeadEdit       Action = "lead.edit"
	ActionLeadDelete     Action = "lead.delete"
	ActionUserView       Action = "user.view"
	ActionUserCreate     Action = "user.create"
	ActionUserDelete     Action = "user.delete"
	ActionActivityCreate Action = "activity.create"
)

// anyTarget matches rules that do not discriminate on the target's role.
const anyTarget = "*"

const modelText = `
[request_definition]
r = sub, act, tgt

[policy_definition]
p = sub, act, tgt

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && r.act == p.act && (p.tgt == "*" || r.tgt == p.tgt)
`

// The full permission matrix. Deny is the default; every allowed
// combination is listed.
var rules = [][]string{
	{"admin", string(ActionLeadCreate), anyTarget},
	{"admin", string(ActionLeadEdit), anyTarget},
	{"admin", string(ActionLeadDelete), anyTarget},
	{"admin", string(ActionUserView), anyTarget},
	{"admin", string(ActionUserCreate), anyTarget},
	{"admin", string(ActionUserDelete), anyTarget},
	{"admin", string(ActionActivityCreate), anyTarget},

	{"manager", string(ActionLeadCreate), anyTarget},
	{"manager", string(ActionLeadEdit), anyTarget},
	{"manager", string(ActionLeadDelete), anyTarget},
	{"manager", string(ActionUserView), anyTarget},
	{"manager", string(ActionUserDelete), "sales"},
	{"manager", string(ActionActivityCreate), anyTarget},

	{"sales", string(ActionActivityCreate), anyTarget},
}

// Authorizer evaluates (actor role, action, target role) requests against
// the compiled-in policy.
type Authorizer struct {
	enforcer *casbin.Enforcer
}

// NewAuthorizer builds the enforcer from the embedded model and rules.
func NewAuthorizer() (*Authorizer, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, fmt.Errorf("policy: parse model: %w", err)
	}
	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("policy: build enforcer: %w", err)
	}
	if _, err := enforcer.AddPolicies(rules); err != nil {
		return nil, fmt.Errorf("policy: load rules: %w", err)
	}
	return &Authorizer{enforcer: enforcer}, nil
}

// Can reports whether the actor may perform the action against a target of
// the given role. Actions that have no target (lead edits, user listing)
// ignore the target argument.
func (a *Authorizer) Can(actor domain.Role, action Action, target domain.Role) bool {
	tgt := string(target)
	if tgt == "" {
		tgt = anyTarget
	}
	allowed, err := a.enforcer.Enforce(string(actor), string(action), tgt)
	if err != nil {
		return false
	}
	return allowed
}

// CanDo is Can without a target.
func (a *Authorizer) CanDo(actor domain.Role, action Action) bool {
	return a.Can(actor, action, "")
}
