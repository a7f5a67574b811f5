package model

import (
	"testing"

	"theracare_server/pkg/enum/user_info/role_enum"
)

func TestDisplayName(t *testing.T) {
	tests := []struct {
		name string
		user UserInfo
		want string
	}{
		{"therapist gets title", UserInfo{Role: role_enum.THERAPIST, FirstName: "Thera", LastName: "Pist"}, "Dr. Pist"},
		{"patient full name", UserInfo{Role: role_enum.PATIENT, FirstName: "Pat", LastName: "Ient"}, "Pat Ient"},
		{"patient without last name", UserInfo{Role: role_enum.PATIENT, FirstName: "Pat"}, "Pat"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.user.DisplayName(); got != tt.want {
				t.Errorf("DisplayName() = %q, want %q", got, tt.want)
			}
		})
	}
}
