package storage

import "testing"

func TestPublicID(t *testing.T) {
	cases := map[string]string{
		"invoice-123.pdf":  "invoice-123",
		"dir/photo.tar.gz":  "photo.tar",
		"logo":             "logo",
	}
	for in, want := range cases {
		if got := publicID(in); got != want {
			t.Fatalf("publicID(%q) = %q, want %q", in, got, want)
		}
	}
}
