package engine

// validateUsername enforces the username length bound and the
// [A-Za-z0-9_-] charset. Any other byte fails the whole input; there is no
// partial truncation.
func validateUsername(username string) error {
	if username == "" {
		return ErrMissingInput
	}
	if len(username) > MaxUsernameLength {
		return ErrInvalidInput
	}
	for i := 0; i < len(username); i++ {
		if !isUsernameByte(username[i]) {
			return ErrInvalidInput
		}
	}
	return nil
}

// validatePassword enforces the password length bound. Passwords carry no
// charset restriction; they are hashed, never parsed.
func validatePassword(password string) error {
	if len(password) > MaxPasswordLength {
		return ErrInvalidInput
	}
	return nil
}

func isUsernameByte(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z':
		return true
	case c >= 'A' && c <= 'Z':
		return true
	case c >= '0' && c <= '9':
		return true
	case c == '_' || c == '-':
		return true
	}
	return false
}
