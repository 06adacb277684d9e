package security_test

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/sapradeep123/do-good-hub-backend/pkg/security"
)

func sign(t *testing.T, secret, payload string) string {
	t.Helper()
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestPaymentSignatureVerify(t *testing.T) {
	verifier, err := security.NewPaymentSignatureVerifier("webhook-secret")
	if err != nil {
		t.Fatalf("NewPaymentSignatureVerifier returned error: %v", err)
	}

	good := sign(t, "webhook-secret", "order_123|pay_456")
	if !verifier.Verify("order_123", "pay_456", good) {
		t.Fatal("expected valid signature to verify")
	}

	if verifier.Verify("order_123", "pay_456", sign(t, "other-secret", "order_123|pay_456")) {
		t.Fatal("signature from wrong secret should fail")
	}
	if verifier.Verify("order_999", "pay_456", good) {
		t.Fatal("signature over different order should fail")
	}
	if verifier.Verify("", "pay_456", good) {
		t.Fatal("empty order ref should fail")
	}
}

func TestNewPaymentSignatureVerifierRequiresSecret(t *testing.T) {
	if _, err := security.NewPaymentSignatureVerifier(""); err == nil {
		t.Fatal("expected error for empty secret")
	}
}
