package domain

// Session is the client-side authentication state. There is at most one.
type Session struct {
	Token string `json:"token"`
}

// IsAuthenticated is derived from token presence only; validity is
// established by a remote token check.
func (s Session) IsAuthenticated() bool {
	return s.Token != ""
}
