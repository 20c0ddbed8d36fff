package event

const OTPVerifiedDestination string = "otp_verified"

// OTPVerifiedMessage is published after a successful second-factor check.
type OTPVerifiedMessage struct {
	EventID     uint64 `json:"event_id,string"`
	PrincipalID uint64 `json:"principal_id"`
	Username    string `json:"username"`
}
