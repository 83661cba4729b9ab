package download

import "testing"

func TestIsYouTubeURL(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", true},
		{"http://youtube.com/watch?v=dQw4w9WgXcQ", true},
		{"youtube.com/watch?v=dQw4w9WgXcQ", true},
		{"https://youtu.be/dQw4w9WgXcQ", true},
		{"https://www.youtube.com/embed/dQw4w9WgXcQ", true},
		{"https://m.youtube.com/watch?v=dQw4w9WgXcQ", true},
		{"https://www.youtube.com/shorts/dQw4w9WgXcQ", true},
		{"HTTPS://WWW.YOUTUBE.COM/WATCH?V=dQw4w9WgXcQ", true},
		{"https://vimeo.com/123456", false},
		{"/home/user/videos/input.mp4", false},
		{"input.mp4", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsYouTubeURL(tt.input); got != tt.want {
			t.Errorf("IsYouTubeURL(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestSanitizeTitle(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Plain Title", "Plain Title"},
		{`What? A "quoted" title/with\slashes`, "What_ A _quoted_ title_with_slashes"},
		{"a<b>c:d|e*f", "a_b_c_d_e_f"},
		{"", "video"},
		{"   ", "video"},
	}

	for _, tt := range tests {
		if got := SanitizeTitle(tt.title); got != tt.want {
			t.Errorf("SanitizeTitle(%q) = %q, want %q", tt.title, got, tt.want)
		}
	}
}

func TestNewYouTubeDownloader_DefaultDir(t *testing.T) {
	d := NewYouTubeDownloader("")
	if d.outputDir == "" {
		t.Error("outputDir should fall back to a temp directory")
	}
}
