package listener

import (
	"encoding/base64"
	"strings"

	"golang.org/x/crypto/ssh"
)

// Authorizer decides whether a presented public key may open a session. The
// allow-list holds base64-encoded key blobs, the same text that appears as
// the second field of an authorized_keys entry. Only public-key auth exists;
// password and none attempts are rejected by the server config.
type Authorizer struct {
	allowed []string
}

func NewAuthorizer(allowed []string) *Authorizer {
	return &Authorizer{allowed: allowed}
}

// Authorize accepts the key iff its wire encoding matches an allow-list
// entry, ignoring case. The transport has already verified possession of the
// private key by this point.
func (a *Authorizer) Authorize(key ssh.PublicKey) bool {
	encoded := base64.StdEncoding.EncodeToString(key.Marshal())
	for _, allowed := range a.allowed {
		if strings.EqualFold(allowed, encoded) {
			return true
		}
	}
	return false
}

// Len returns the number of allow-list entries.
func (a *Authorizer) Len() int {
	return len(a.allowed)
}
