package model

import "testing"

func TestRoleAtLeast(t *testing.T) {
	tests := []struct {
		role, minimum string
		want          bool
	}{
		{RoleAdmin, RoleAdmin, true},
		{RoleAdmin, RoleOperator, true},
		{RoleOperator, RoleAdmin, false},
		{RoleOperator, RoleOperator, true},
		{"unknown", RoleOperator, false},
	}

	for _, tt := range tests {
		if got := RoleAtLeast(tt.role, tt.minimum); got != tt.want {
			t.Errorf("RoleAtLeast(%q, %q) = %v, want %v", tt.role, tt.minimum, got, tt.want)
		}
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		password string
		wantErr  bool
	}{
		{"", true},
		{"short", true},
		{"1234567", true},
		{"12345678", false},
		{"a-valid-password", false},
	}

	for _, tt := range tests {
		err := ValidatePassword(tt.password)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidatePassword(%q) error = %v, wantErr %v", tt.password, err, tt.wantErr)
		}
	}
}

func TestBoxStatus(t *testing.T) {
	tests := []struct {
		remaining int
		want      string
	}{
		{10, StatusStocked},
		{0, StatusDepleted},
		{-1, StatusAnomalous},
	}

	for _, tt := range tests {
		b := Box{RemainingQuantity: tt.remaining}
		if got := b.Status(); got != tt.want {
			t.Errorf("Status() with remaining %d = %q, want %q", tt.remaining, got, tt.want)
		}
	}
}
