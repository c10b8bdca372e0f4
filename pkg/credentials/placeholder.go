package credentials

import "strings"

const (
	minEmailXRun = 3
	// base64 bodies contain "x" naturally; only a long run is a marker
	minKeyXRun = 8
)

var placeholderTokens = []string{"...", "…", "YOUR_", "REPLACE_ME", "<", ">"}

func containsPlaceholderToken(s string) bool {
	for _, tok := range placeholderTokens {
		if strings.Contains(s, tok) {
			return true
		}
	}
	return false
}

// hasEmailPlaceholder reports whether the account name has a segment made of
// x characters only, as in "firebase-adminsdk-xxxxx@...".
func hasEmailPlaceholder(email string) bool {
	local, _, _ := strings.Cut(email, "@")
	if containsPlaceholderToken(local) {
		return true
	}
	for _, seg := range strings.FieldsFunc(local, func(r rune) bool { return r == '-' || r == '.' || r == '_' }) {
		if len(seg) >= minEmailXRun && strings.Trim(seg, "xX") == "" {
			return true
		}
	}
	return false
}

func hasKeyPlaceholder(body string) bool {
	return containsPlaceholderToken(body) || strings.Contains(body, strings.Repeat("x", minKeyXRun))
}
