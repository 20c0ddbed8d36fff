package event

const OTPSecretEnrolledDestination string = "otp_secret_enrolled"

// OTPSecretEnrolledMessage is published when a principal receives a fresh
// TOTP secret. The provisioning URI lets a downstream delivery channel hand
// the secret to the principal out of band.
type OTPSecretEnrolledMessage struct {
	EventID         uint64 `json:"event_id,string"`
	PrincipalID     uint64 `json:"principal_id"`
	Username        string `json:"username"`
	SecretRef       string `json:"secret_ref"`
	ProvisioningURI string `json:"provisioning_uri"`
}
