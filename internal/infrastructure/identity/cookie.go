package identity

import (
	"encoding/base64"
	"encoding/json"
	"strings"

	"github.com/inkwell/publishing-platform/internal/core/ports"
)

// storedSession is the token pair persisted in the session cookie. The cookie
// is convenience state only: nothing in it is trusted until the access token
// has been re-validated against the provider.
type storedSession struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

const cookieValuePrefix = "base64-"

// encodeCookie serializes the token pair for cookie transport.
func encodeCookie(s storedSession) string {
	raw, _ := json.Marshal(s)
	return cookieValuePrefix + base64.RawURLEncoding.EncodeToString(raw)
}

// decodeCookie parses a cookie value written by encodeCookie. Bare JSON is
// accepted too, for sessions minted by other provider SDKs.
func decodeCookie(value string) (storedSession, bool) {
	var s storedSession

	payload := value
	if strings.HasPrefix(value, cookieValuePrefix) {
		raw, err := base64.RawURLEncoding.DecodeString(strings.TrimPrefix(value, cookieValuePrefix))
		if err != nil {
			return s, false
		}
		payload = string(raw)
	}

	if err := json.Unmarshal([]byte(payload), &s); err != nil {
		return s, false
	}
	return s, s.AccessToken != "" && s.RefreshToken != ""
}

// readSessionCookie extracts the stored session from the request cookies.
func readSessionCookie(r ports.CookieReader, name string) (storedSession, bool) {
	if r == nil {
		return storedSession{}, false
	}
	for _, ck := range r.GetAll() {
		if ck.Name == name {
			return decodeCookie(ck.Value)
		}
	}
	return storedSession{}, false
}
