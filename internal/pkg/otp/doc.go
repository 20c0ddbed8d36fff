// Package otp generates and validates time-based one-time passwords.
//
// A secret is provisioned once per principal and shared with an
// authenticator app; codes derived from it are then validated during the
// second step of login. Validation is strict: only the current time step
// counts unless a skew is configured.
package otp
