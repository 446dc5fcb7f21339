package config

import "testing"

func TestResumeIdentitySameAndDifferent(t *testing.T) {
	a := New("/videos/a.mkv")
	b := New("/videos/a.mkv")

	if !a.ResumeIdentity().SameIdentity(b.ResumeIdentity()) {
		t.Fatalf("expected identical args to share a resume identity")
	}

	b.Model = "realesr-animevideov3"
	b.Scale = 3
	if a.ResumeIdentity().SameIdentity(b.ResumeIdentity()) {
		t.Fatalf("expected differing scale to produce a different resume identity")
	}

	c := New("/videos/b.mkv")
	if a.ResumeIdentity().SameIdentity(c.ResumeIdentity()) {
		t.Fatalf("expected differing input path to produce a different resume identity")
	}
}

func TestValidateDefaults(t *testing.T) {
	a := New("/videos/a.mkv")
	if err := a.Validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
}

func TestValidateRejectsBadScale(t *testing.T) {
	a := New("/videos/a.mkv")
	a.Scale = 5
	if err := a.Validate(); err == nil {
		t.Fatalf("expected scale=5 to be rejected")
	}
}

func TestValidateRejectsBadCRF(t *testing.T) {
	a := New("/videos/a.mkv")
	a.CRF = 52
	if err := a.Validate(); err == nil {
		t.Fatalf("expected crf=52 to be rejected")
	}
}

func TestUpscalerModelName(t *testing.T) {
	a := New("/videos/a.mkv")
	a.Scale = 3
	if got, want := a.UpscalerModelName(), "realesr-animevideov3-x3"; got != want {
		t.Fatalf("UpscalerModelName() = %q, want %q", got, want)
	}
}
