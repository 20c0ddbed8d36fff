// Package validator validates request structs.
//
// Handlers and use cases depend on the Validator interface; the concrete
// implementation is go-playground/validator v10 with English messages and
// rules for passwords and one-time codes.
package validator
