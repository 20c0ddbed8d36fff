// Package jwt issues and verifies the signed session tokens handed out
// after a successful password login.
//
// It includes a typed Claims wrapper, a symmetric HS512 implementation, and
// context helpers for carrying authenticated claims through a request.
package jwt
