// Package clock abstracts the wall clock.
//
// Code that needs the current time should take a Clocker instead of calling
// time.Now directly, so tests can pin time to a known instant. Expiry checks
// on verification grants and one-time codes depend on this.
package clock
