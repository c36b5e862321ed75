package constants

// Redis key formats
const (
	KeyMemberSession = "member:session:%s" // Format: member:session:{token}

	// Rate Limiting
	KeyRateLimit = "rate:limit:%s:%s" // Format: rate:limit:{resource}:{ip}
)
