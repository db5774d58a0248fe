package main

import (
	"testing"

	"go.uber.org/zap"

	"github.com/Amanjarngal/localfix-client/internal/session"
)

func TestPromptWhenLoggedOut(t *testing.T) {
	a := &app{session: session.New(nil, zap.NewNop())}
	if got := a.prompt(); got != "localfix> " {
		t.Errorf("got prompt %q", got)
	}
}

func TestMimeFromExt(t *testing.T) {
	cases := map[string]string{
		"photo.PNG": "image/png",
		"me.jpeg":   "image/jpeg",
		"doc.pdf":   "application/pdf",
		"blob":      "application/octet-stream",
	}
	for path, want := range cases {
		if got := mimeFromExt(path); got != want {
			t.Errorf("mimeFromExt(%q) = %q, want %q", path, got, want)
		}
	}
}
