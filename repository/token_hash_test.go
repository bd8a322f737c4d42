package repository

import "testing"

func TestHashToken(t *testing.T) {
	h1 := HashToken("token-a")
	h2 := HashToken("token-a")
	h3 := HashToken("token-b")

	if h1 != h2 {
		t.Error("HashToken is not deterministic for the same input")
	}
	if h1 == h3 {
		t.Error("HashToken produced the same hash for different inputs")
	}
	if len(h1) != 64 {
		t.Errorf("hash length = %d, expected 64 hex chars (sha256)", len(h1))
	}
	if h1 == "token-a" {
		t.Error("plain token must never equal its stored hash")
	}
}
