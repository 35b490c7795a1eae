package domain

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		in      string
		want    Role
		wantErr bool
	}{
		{"ADMIN", RoleAdmin, false},
		{"admin", RoleAdmin, false},
		{"Desk", RoleDesk, false},
		{"  patrol ", RolePatrol, false},
		{"investigating", RoleInvestigating, false},
		{"FIELD", RoleField, false},
		{"", "", true},
		{"SUPERVISOR", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRole(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownRole) {
					t.Fatalf("expected ErrUnknownRole, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestRole_Valid(t *testing.T) {
	for _, r := range Roles {
		if !r.Valid() {
			t.Errorf("expected %s to be valid", r)
		}
	}
	if Role("admin").Valid() {
		t.Error("lower-case literal must not be valid without parsing")
	}
	if Role("").Valid() {
		t.Error("empty role must not be valid")
	}
}

func TestRole_UnmarshalJSONNormalisesCase(t *testing.T) {
	var id Identity
	if err := json.Unmarshal([]byte(`{"username":"k.singh","role":"desk"}`), &id); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id.Role != RoleDesk {
		t.Errorf("expected DESK, got %s", id.Role)
	}

	if err := json.Unmarshal([]byte(`{"username":"x","role":"janitor"}`), &id); err == nil {
		t.Error("expected error for unknown role")
	}
}

func TestRequirement_Admits(t *testing.T) {
	req := RequireAnyRole(RoleDesk, RoleAdmin)
	if !req.Admits(RoleDesk) || !req.Admits(RoleAdmin) {
		t.Error("expected DESK and ADMIN to be admitted")
	}
	if req.Admits(RolePatrol) {
		t.Error("expected PATROL to be refused")
	}
	if !req.Admits(Role("desk")) {
		t.Error("expected case-insensitive match for hand-built role")
	}
}

func TestParseRequirement(t *testing.T) {
	req, err := ParseRequirement("Desk", "admin")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	roles := req.Roles()
	if len(roles) != 2 || roles[0] != RoleDesk || roles[1] != RoleAdmin {
		t.Errorf("unexpected roles %v", roles)
	}

	if _, err := ParseRequirement("ADMIN", "chief"); !errors.Is(err, ErrUnknownRole) {
		t.Errorf("expected ErrUnknownRole, got %v", err)
	}
}

func TestNewIdentity(t *testing.T) {
	id, err := NewIdentity(" r.mehta ", "investigating")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id.Username != "r.mehta" || id.Role != RoleInvestigating {
		t.Errorf("unexpected identity %+v", id)
	}
}
