package inbound

import "time"

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token       string `json:"token"`
	OtpRequired bool   `json:"otp_required"`
	OtpKeyRef   string `json:"otp_key_ref"`
	DebugOTP    string `json:"debug_otp,omitempty"`
}

func (LoginResponse) Message() string {
	return "Password accepted. Verify your one-time code to finish signing in."
}

type OTPLoginRequest struct {
	Code string `json:"code"`
}

type OTPLoginResponse struct {
	Verified  bool      `json:"verified"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (OTPLoginResponse) Message() string {
	return "One-time code verified."
}

type OTPStatusResponse struct {
	Verified bool `json:"verified"`
}

type InfoResponse struct {
	ID          uint64     `json:"id,string"`
	Username    string     `json:"username"`
	IsSuperuser bool       `json:"is_superuser"`
	CreatedAt   time.Time  `json:"created_at"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	OtpVerified bool       `json:"otp_verified"`
}

type LogoutResponse struct{}

func (LogoutResponse) Message() string {
	return "You have been signed out."
}

type ResetOTPResponse struct {
	NewSecretRef    string `json:"new_secret_ref"`
	ProvisioningURI string `json:"provisioning_uri"`
	DebugOTP        string `json:"debug_otp,omitempty"`
}

func (ResetOTPResponse) Message() string {
	return "Authenticator reset. Scan the new provisioning URI before your next login."
}

type CheckLoginResponse struct {
	LoggedIn    bool `json:"logged_in"`
	OtpVerified bool `json:"otp_verified"`
}
