package password

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/melbooking/melbooking_backend/config"
)

// fastParams keeps the test suite quick.
var fastParams = &Params{Memory: 8 * 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32}

func TestHashAndVerify(t *testing.T) {
	h := NewHasher(fastParams)

	hash, err := h.Hash("s3cret-pass")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$v=19$m=8192,t=1,p=1$") {
		t.Errorf("Hash() = %q, unexpected prefix", hash)
	}

	tests := []struct {
		name     string
		password string
		wantErr  error
	}{
		{"correct password", "s3cret-pass", nil},
		{"wrong password", "s3cret-pasS", ErrMismatch},
		{"empty password", "", ErrMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := h.Verify(hash, tt.password); !errors.Is(err, tt.wantErr) {
				t.Errorf("Verify() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestHashUniqueness(t *testing.T) {
	a, _ := HashWithParams("same", fastParams)
	b, _ := HashWithParams("same", fastParams)
	if a == b {
		t.Error("two hashes of the same password are identical")
	}
}

func TestVerifyBcrypt(t *testing.T) {
	legacy, err := bcrypt.GenerateFromPassword([]byte("legacy-pass"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}

	if err := Verify(string(legacy), "legacy-pass"); err != nil {
		t.Errorf("Verify(bcrypt) error = %v", err)
	}
	if err := Verify(string(legacy), "nope"); !errors.Is(err, ErrMismatch) {
		t.Errorf("Verify(bcrypt, wrong) error = %v, want ErrMismatch", err)
	}
	if !NewHasher(fastParams).NeedsRehash(string(legacy)) {
		t.Error("NeedsRehash(bcrypt) = false, want true")
	}
}

func TestNeedsRehash(t *testing.T) {
	h := NewHasher(fastParams)
	current, _ := h.Hash("pw")
	if h.NeedsRehash(current) {
		t.Error("NeedsRehash() = true for current params")
	}

	other, _ := HashWithParams("pw", &Params{Memory: 16 * 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32})
	if !h.NeedsRehash(other) {
		t.Error("NeedsRehash() = false for different params")
	}
}

func TestVerifyInvalidHash(t *testing.T) {
	tests := []struct {
		name    string
		hash    string
		wantErr error
	}{
		{"empty string", "", ErrInvalidHash},
		{"random string", "randomgarbage", ErrInvalidHash},
		{"wrong algorithm", "$argon2i$v=19$m=65536,t=3,p=2$c29tZXNhbHQ$c29tZWhhc2g", ErrInvalidHash},
		{"malformed params", "$argon2id$v=19$invalid$c29tZXNhbHQ$c29tZWhhc2g", ErrInvalidHash},
		{"wrong version", "$argon2id$v=16$m=65536,t=3,p=2$c29tZXNhbHQ$c29tZWhhc2g", ErrIncompatibleVersion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := Verify(tt.hash, "anypassword"); !errors.Is(err, tt.wantErr) {
				t.Errorf("Verify() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestGenerate(t *testing.T) {
	for _, tt := range []struct{ length, want int }{{0, 16}, {8, 8}, {32, 32}, {-5, 16}} {
		if got := Generate(tt.length); len(got) != tt.want {
			t.Errorf("Generate(%d) length = %d, want %d", tt.length, len(got), tt.want)
		}
	}
}

func TestFromCentralConfig(t *testing.T) {
	p := FromCentralConfig(config.PasswordConfig{Iterations: 5})
	if p.Iterations != 5 {
		t.Errorf("Iterations = %d, want 5", p.Iterations)
	}
	if p.Memory != DefaultParams().Memory {
		t.Errorf("Memory = %d, want default", p.Memory)
	}
}
