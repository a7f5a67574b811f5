// Package role_enum defines the account roles.
package role_enum

const (
	PATIENT   = "patient"
	THERAPIST = "therapist"
)

// IsValid reports whether role is a known account role.
func IsValid(role string) bool {
	return role == PATIENT || role == THERAPIST
}

// Opposite returns the counterpart role for a therapy pairing.
func Opposite(role string) string {
	if role == PATIENT {
		return THERAPIST
	}
	return PATIENT
}
