package line

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
)

const SignatureHeader = "X-Line-Signature"

// Sign returns base64(HMAC-SHA256(channelSecret, body)).
func Sign(channelSecret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(channelSecret))
	mac.Write(body)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// VerifySignature compares in constant time. An empty signature never matches.
func VerifySignature(channelSecret string, body []byte, signature string) bool {
	if signature == "" {
		return false
	}
	expected := Sign(channelSecret, body)
	return hmac.Equal([]byte(expected), []byte(signature))
}
