// Package user_status_enum defines account states.
package user_status_enum

const (
	NORMAL  = int8(0) // active account
	DISABLE = int8(1) // disabled by an administrator
)
