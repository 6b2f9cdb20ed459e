package domain

// MFAChallenge is returned by login when the account has an active TOTP
// factor. The client completes authentication with the ticket plus a code.
type MFAChallenge struct {
	MFARequired bool   `json:"mfa_required"` // always true
	MFAToken    string `json:"mfa_token"`    // short-lived signed ticket
}

// TOTPEnrollment carries the material a client needs to provision an
// authenticator app. The secret is only ever returned here, once.
type TOTPEnrollment struct {
	Secret  string `json:"secret"`  // base32 encoded
	URL     string `json:"url"`     // otpauth:// URL for QR code generation
	Issuer  string `json:"issuer"`  // service name shown in the app
	Account string `json:"account"` // username shown in the app
}
