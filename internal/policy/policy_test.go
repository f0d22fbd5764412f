package policy

import (
	"testing"

	"github.com/unionmaster/crm-console/internal/domain"
)

func newTestAuthorizer(t *testing.T) *Authorizer {
	t.Helper()
	authz, err := NewAuthorizer()
	if err != nil {
		t.Fatalf("unexpected authorizer error: %v", err)
	}
	return authz
}

func TestAdminMayDoEverything(t *testing.T) {
	authz := newTestAuthorizer(t)

	actions := []Action{
		ActionLeadCreate, ActionLeadEdit, ActionLeadDelete,
		ActionUserView, ActionUserCreate, ActionUserDelete,
		ActionActivityCreate,
	}
	for _, action := range actions {
		if !authz.CanDo(domain.RoleAdmin, action) {
			t.Fatalf("expected admin to be allowed %s", action)
		}
	}
	for _, target := range []domain.Role{domain.RoleAdmin, domain.RoleManager, domain.RoleSales} {
		if !authz.Can(domain.RoleAdmin, ActionUserDelete, target) {
			t.Fatalf("expected admin to delete %s accounts", target)
		}
	}
}

func TestManagerPermissions(t *testing.T) {
	authz := newTestAuthorizer(t)

	allowed := []Action{
		ActionLeadCreate, ActionLeadEdit, ActionLeadDelete,
		ActionUserView, ActionActivityCreate,
	}
	for _, action := range allowed {
		if !authz.CanDo(domain.RoleManager, action) {
			t.Fatalf("expected manager to be allowed %s", action)
		}
	}

	if authz.CanDo(domain.RoleManager, ActionUserCreate) {
		t.Fatal("expected manager to be denied user creation")
	}
}

func TestManagerDeletesSalesAccountsOnly(t *testing.T) {
	authz := newTestAuthorizer(t)

	if !authz.Can(domain.RoleManager, ActionUserDelete, domain.RoleSales) {
		t.Fatal("expected manager to delete sales accounts")
	}
	if authz.Can(domain.RoleManager, ActionUserDelete, domain.RoleManager) {
		t.Fatal("expected manager to be denied deleting manager accounts")
	}
	if authz.Can(domain.RoleManager, ActionUserDelete, domain.RoleAdmin) {
		t.Fatal("expected manager to be denied deleting admin accounts")
	}
}

func TestSalesMayOnlyLogActivities(t *testing.T) {
	authz := newTestAuthorizer(t)

	if !authz.CanDo(domain.RoleSales, ActionActivityCreate) {
		t.Fatal("expected sales to log activities")
	}

	denied := []Action{
		ActionLeadCreate, ActionLeadEdit, ActionLeadDelete,
		ActionUserView, ActionUserCreate, ActionUserDelete,
	}
	for _, action := range denied {
		if authz.CanDo(domain.RoleSales, action) {
			t.Fatalf("expected sales to be denied %s", action)
		}
	}
}

func TestUnknownRoleIsDeniedEverything(t *testing.T) {
	authz := newTestAuthorizer(t)

	if authz.CanDo(domain.Role("intern"), ActionActivityCreate) {
		t.Fatal("expected unknown role to be denied")
	}
	if authz.CanDo("", ActionLeadCreate) {
		t.Fatal("expected empty role to be denied")
	}
}
