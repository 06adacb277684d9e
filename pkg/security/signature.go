package security

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// PaymentSignatureVerifier checks a gateway callback signature against the
// order and payment references it covers.
type PaymentSignatureVerifier struct {
	secret []byte
}

// NewPaymentSignatureVerifier builds a verifier keyed with the gateway
// webhook secret.
func NewPaymentSignatureVerifier(secret string) (*PaymentSignatureVerifier, error) {
	if secret == "" {
		return nil, fmt.Errorf("payment signature secret is required")
	}
	return &PaymentSignatureVerifier{secret: []byte(secret)}, nil
}

// Verify reports whether signature matches HMAC-SHA256(orderRef|paymentRef).
func (v *PaymentSignatureVerifier) Verify(orderRef, paymentRef, signature string) bool {
	if orderRef == "" || paymentRef == "" || signature == "" {
		return false
	}
	mac := hmac.New(sha256.New, v.secret)
	mac.Write([]byte(orderRef + "|" + paymentRef))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
