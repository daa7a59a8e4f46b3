package entity

import "testing"

func TestUserFullName(t *testing.T) {
	u := User{FirstName: "Ana", LastName: "Souza"}
	if got := u.FullName(); got != "Ana Souza" {
		t.Errorf("expected %q, got %q", "Ana Souza", got)
	}

	u = User{FirstName: "Ana"}
	if got := u.FullName(); got != "Ana" {
		t.Errorf("expected %q, got %q", "Ana", got)
	}
}

func TestUserIsAdmin(t *testing.T) {
	if !(&User{Role: RoleAdmin}).IsAdmin() {
		t.Error("admin role must report IsAdmin")
	}
	if (&User{Role: RoleOperator}).IsAdmin() {
		t.Error("operator role must not report IsAdmin")
	}
}

func TestUserTenantBackReference(t *testing.T) {
	tenant := &Tenant{Name: "Minha Loja", Slug: "minha-loja"}
	u := User{FirstName: "Ana", Tenant: tenant}

	if u.Tenant == nil || u.Tenant.Slug != "minha-loja" {
		t.Errorf("expected tenant back-reference, got %+v", u.Tenant)
	}

	// The reverse side holds the owner by value.
	tenant.Owner = User{FirstName: "Ana"}
	if tenant.Owner.FirstName != "Ana" {
		t.Errorf("expected owner set, got %+v", tenant.Owner)
	}
}
