package resource

import (
	"crypto/md5"
	"encoding/hex"
	"net/url"
	"strconv"
	"time"

	"github.com/s0up4200/outsidein/query"
)

// DigestFunc hashes the signing material into the sig parameter value
type DigestFunc func(material string) string

// MD5Digest is the digest the hyperlocal API expects
func MD5Digest(material string) string {
	sum := md5.Sum([]byte(material))
	return hex.EncodeToString(sum[:])
}

// Signer binds a developer key and shared secret to request URLs. The
// signature covers the current Unix time in whole seconds, so it is only
// valid around the second the request is issued.
type Signer struct {
	Key    string
	Secret string
	Now    func() time.Time
	Digest DigestFunc
}

// Signature returns the sig value at time t
func (s Signer) Signature(t time.Time) string {
	digest := s.Digest
	if digest == nil {
		digest = MD5Digest
	}
	return digest(s.Key + s.Secret + strconv.FormatInt(t.Unix(), 10))
}

// Sign appends dev_key and sig parameters to rawURL
func (s Signer) Sign(rawURL string) (string, error) {
	if s.Key == "" {
		return "", &SignatureError{Reason: "key not set"}
	}
	if s.Secret == "" {
		return "", &SignatureError{Reason: "secret not set"}
	}

	now := time.Now
	if s.Now != nil {
		now = s.Now
	}

	return query.Append(rawURL,
		"dev_key="+url.QueryEscape(s.Key),
		"sig="+s.Signature(now()),
	), nil
}
