package bcrypt

// DummyHash exposes the hash compared against for unknown users.
func DummyHash(a *Authenticator) []byte {
	return a.dummy
}
