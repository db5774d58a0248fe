package api

import (
	"context"
	"testing"

	"github.com/Amanjarngal/localfix-client/internal/apitest"
)

func TestEnrollProviderSetsFileContentTypes(t *testing.T) {
	srv, err := apitest.NewServer()
	if err != nil {
		t.Fatalf("failed to start fake api: %v", err)
	}
	defer srv.Close()

	form := EnrollmentForm{
		Fields: map[string]string{
			"ownerName":    "Ravi Kumar",
			"email":        "ravi@fixit.in",
			"businessName": "FixIt Services",
		},
		Files: []FileAttachment{
			{Field: "profilePhoto", Name: "me.png", MIME: "image/png", Data: []byte{1, 2}},
			{Field: "idImage", Name: "id.bin", Data: []byte{3}},
		},
	}
	if err := newTestClient(srv.URL).EnrollProvider(context.Background(), form); err != nil {
		t.Fatalf("enroll failed: %v", err)
	}

	capture, ok := srv.LastEnrollment()
	if !ok {
		t.Fatal("no enrollment captured")
	}
	if got := capture.Files["profilePhoto"]; got != "me.png" {
		t.Errorf("profilePhoto filename = %q", got)
	}
	if got := capture.FileTypes["profilePhoto"]; got != "image/png" {
		t.Errorf("profilePhoto content type = %q, want image/png", got)
	}
	// A missing MIME falls back to the generic type instead of an empty
	// header.
	if got := capture.FileTypes["idImage"]; got != "application/octet-stream" {
		t.Errorf("idImage content type = %q, want application/octet-stream", got)
	}
}
