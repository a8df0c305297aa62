package crypto

import (
	"bytes"
	"encoding/hex"
	"errors"
	"testing"
)

func testKey() string {
	key := make([]byte, 32)
	for i := range key {
		key[i] = byte(i)
	}
	return hex.EncodeToString(key)
}

func TestEncryptor_EncryptDecrypt(t *testing.T) {
	enc, err := NewEncryptor(testKey())
	if err != nil {
		t.Fatalf("NewEncryptor failed: %v", err)
	}

	plaintext := []byte(`{"version":1,"tasks":[{"text":"Buy milk"}]}`)

	ciphertext, err := enc.Encrypt(plaintext)
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}

	if bytes.Contains(ciphertext, []byte("Buy milk")) {
		t.Error("Ciphertext leaks plaintext")
	}
	if len(ciphertext) <= len(plaintext) {
		t.Error("Ciphertext should be longer than plaintext")
	}

	decrypted, err := enc.Decrypt(ciphertext)
	if err != nil {
		t.Fatalf("Decrypt failed: %v", err)
	}
	if !bytes.Equal(decrypted, plaintext) {
		t.Errorf("Decrypted text mismatch: got %q, want %q", decrypted, plaintext)
	}
}

func TestEncryptor_RepeatedPlaintextIsStable(t *testing.T) {
	enc, err := NewEncryptor(testKey())
	if err != nil {
		t.Fatalf("NewEncryptor failed: %v", err)
	}

	a, _ := enc.Encrypt([]byte("same"))
	b, _ := enc.Encrypt([]byte("same"))
	c, _ := enc.Encrypt([]byte("different"))

	if !bytes.Equal(a, b) {
		t.Error("Same plaintext in a row should produce same ciphertext")
	}
	if bytes.Equal(a, c) {
		t.Error("Different plaintext should produce different ciphertext")
	}
}

func TestNewEncryptor_InvalidKey(t *testing.T) {
	tests := []struct {
		name string
		key  string
	}{
		{"empty", ""},
		{"too short", "0011"},
		{"not hex", "zz" + testKey()[2:]},
		{"too long", testKey() + "00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewEncryptor(tt.key); !errors.Is(err, ErrInvalidKey) {
				t.Errorf("NewEncryptor(%q) error = %v, want ErrInvalidKey", tt.key, err)
			}
		})
	}
}

func TestEncryptor_DecryptErrors(t *testing.T) {
	enc, _ := NewEncryptor(testKey())

	if _, err := enc.Decrypt([]byte("short")); !errors.Is(err, ErrCiphertextTooShort) {
		t.Errorf("Decrypt(short) error = %v", err)
	}

	ciphertext, _ := enc.Encrypt([]byte("payload"))
	ciphertext[len(ciphertext)-1] ^= 0xff
	if _, err := enc.Decrypt(ciphertext); !errors.Is(err, ErrDecryptionFailed) {
		t.Errorf("Decrypt(tampered) error = %v", err)
	}

	otherKey, _ := GenerateKey()
	other, _ := NewEncryptor(otherKey)
	good, _ := enc.Encrypt([]byte("payload2"))
	if _, err := other.Decrypt(good); !errors.Is(err, ErrDecryptionFailed) {
		t.Errorf("Decrypt(wrong key) error = %v", err)
	}
}

func TestGenerateKey(t *testing.T) {
	a, err := GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey failed: %v", err)
	}
	b, _ := GenerateKey()

	if len(a) != 64 {
		t.Errorf("key length = %d, want 64", len(a))
	}
	if a == b {
		t.Error("keys should differ")
	}
	if _, err := NewEncryptor(a); err != nil {
		t.Errorf("generated key rejected: %v", err)
	}
}
