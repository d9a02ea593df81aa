package common

import "testing"

func TestObjectKey(t *testing.T) {
	cases := []struct {
		prefix string
		jobID  string
		path   string
		want   string
	}{
		{"", "abc123", "/tmp/out/video.mp4", "videos/abc123/video.mp4"},
		{"shorts/", "abc123", "video.mp4", "shorts/videos/abc123/video.mp4"},
		{"", "abc123", "output/Un_Titulo_abc123.timeline.json", "videos/abc123/Un_Titulo_abc123.timeline.json"},
	}
	for _, c := range cases {
		store := &ArtifactStore{prefix: c.prefix}
		if got := store.ObjectKey(c.jobID, c.path); got != c.want {
			t.Errorf("ObjectKey(%q, %q) with prefix %q = %q, want %q", c.jobID, c.path, c.prefix, got, c.want)
		}
	}
}
