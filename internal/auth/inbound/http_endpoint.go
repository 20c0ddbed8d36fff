package inbound

import (
	"github.com/sentraid/sentra/internal/auth/usecase"
	"github.com/sentraid/sentra/internal/pkg/router"
)

// HTTPEndpoint exposes HTTP handlers for the two-step login workflow.
type HTTPEndpoint struct {
	uc uc
}

// Login verifies the password and opens a session pending OTP verification.
func (h *HTTPEndpoint) Login(r *router.Request) (any, error) {
	var req LoginRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Login(r.Context(), usecase.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		return nil, err
	}

	return LoginResponse{
		Token:       resp.Token,
		OtpRequired: resp.OtpRequired,
		OtpKeyRef:   resp.OtpKeyRef,
		DebugOTP:    resp.DebugOTP,
	}, nil
}

// OTPLogin verifies the one-time code for the current session.
func (h *HTTPEndpoint) OTPLogin(r *router.Request) (any, error) {
	var req OTPLoginRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.OTPLogin(r.Context(), usecase.OTPLoginInput{
		Code: req.Code,
	})
	if err != nil {
		return nil, err
	}

	return OTPLoginResponse{
		Verified:  resp.Verified,
		ExpiresAt: resp.ExpiresAt,
	}, nil
}

// OTPStatus reports whether the current session passed OTP verification.
func (h *HTTPEndpoint) OTPStatus(r *router.Request) (any, error) {
	resp, err := h.uc.OTPStatus(r.Context())
	if err != nil {
		return nil, err
	}

	return OTPStatusResponse{Verified: resp.Verified}, nil
}

// Info returns the authenticated principal's profile.
func (h *HTTPEndpoint) Info(r *router.Request) (any, error) {
	resp, err := h.uc.Info(r.Context())
	if err != nil {
		return nil, err
	}

	return InfoResponse{
		ID:          resp.ID,
		Username:    resp.Username,
		IsSuperuser: resp.IsSuperuser,
		CreatedAt:   resp.CreatedAt,
		LastLoginAt: resp.LastLoginAt,
		OtpVerified: resp.OtpVerified,
	}, nil
}

// Logout ends the current session.
func (h *HTTPEndpoint) Logout(r *router.Request) (any, error) {
	if _, err := h.uc.Logout(r.Context()); err != nil {
		return nil, err
	}

	return LogoutResponse{}, nil
}

// ResetOTP replaces the principal's authenticator secret.
func (h *HTTPEndpoint) ResetOTP(r *router.Request) (any, error) {
	resp, err := h.uc.ResetOTP(r.Context())
	if err != nil {
		return nil, err
	}

	return ResetOTPResponse{
		NewSecretRef:    resp.NewSecretRef,
		ProvisioningURI: resp.ProvisioningURI,
		DebugOTP:        resp.DebugOTP,
	}, nil
}

// CheckLogin reports the session state without requiring authentication.
func (h *HTTPEndpoint) CheckLogin(r *router.Request) (any, error) {
	resp, err := h.uc.CheckLogin(r.Context())
	if err != nil {
		return nil, err
	}

	return CheckLoginResponse{
		LoggedIn:    resp.LoggedIn,
		OtpVerified: resp.OtpVerified,
	}, nil
}
