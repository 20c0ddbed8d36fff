package event

const OTPSecretRotatedDestination string = "otp_secret_rotated"

// OTPSecretRotatedMessage is published when a principal's TOTP secret is
// replaced. Old codes and any standing verification are void from this point.
type OTPSecretRotatedMessage struct {
	EventID         uint64 `json:"event_id,string"`
	PrincipalID     uint64 `json:"principal_id"`
	Username        string `json:"username"`
	SecretRef       string `json:"secret_ref"`
	ProvisioningURI string `json:"provisioning_uri"`
}
