package upload

import "testing"

func TestSanitizeFilename(t *testing.T) {
	cases := map[string]string{
		"poster.png":             "poster.png",
		"../../etc/passwd":       "passwd",
		"C:\\temp\\My Photo.JPG": "My_Photo.JPG",
		"acara (final)!.jpeg":    "acara_final_.jpeg",
		".hidden.gif":            "hidden.gif",
		"café_sémarang.png":      "cafe_semarang.png",
	}
	for in, want := range cases {
		if got := SanitizeFilename(in); got != want {
			t.Errorf("SanitizeFilename(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestAllowedImage(t *testing.T) {
	for _, ok := range []string{"a.png", "a.JPG", "a.jpeg", "a.gif", "a.webp"} {
		if !AllowedImage(ok) {
			t.Errorf("expected %q to be allowed", ok)
		}
	}
	for _, bad := range []string{"a.svg", "a.exe", "noext"} {
		if AllowedImage(bad) {
			t.Errorf("expected %q to be rejected", bad)
		}
	}
}
