package service

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
)

// answerSigner issues and verifies the per-question answer tokens attached to
// demo-mode sessions. With no durable answer store, a submission would
// otherwise have to be scored against a client-echoed "correct answer", an
// honesty-dependent scheme. The token is an HMAC over the question id and the
// correct answer, issued at session start; at submission time the echoed
// answer is only trusted if it reproduces the token. The bare-hint path still
// exists for old clients, but it is logged as untrusted.
type answerSigner struct {
	key []byte
}

// newAnswerSigner builds a signer from the configured secret, or a random
// per-process key when none is configured. A random key still binds tokens to
// this process lifetime, which matches how long demo sessions can live.
func newAnswerSigner(secret string) *answerSigner {
	if secret != "" {
		return &answerSigner{key: []byte(secret)}
	}
	key := make([]byte, 32)
	_, _ = rand.Read(key)
	return &answerSigner{key: key}
}

// Sign returns the token for one question/answer pair.
func (s *answerSigner) Sign(questionID, correctAnswer string) string {
	mac := hmac.New(sha256.New, s.key)
	mac.Write([]byte(questionID))
	mac.Write([]byte{0})
	mac.Write([]byte(correctAnswer))
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify reports whether token was issued by this signer for the given
// question/answer pair.
func (s *answerSigner) Verify(questionID, correctAnswer, token string) bool {
	expected := s.Sign(questionID, correctAnswer)
	return hmac.Equal([]byte(expected), []byte(token))
}
