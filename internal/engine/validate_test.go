package engine

import "testing"

func TestValidate_CurlPipe(t *testing.T) {
	result := Validate("FROM alpine:3.19\nRUN curl | bash\nUSER app\n")

	if result.Valid() {
		t.Fatal("expected validation to fail for curl | bash")
	}
	if !hasString(result.Critical, "Insecure pipe installation detected") {
		t.Errorf("expected pipe installation issue, got %+v", result.Critical)
	}
}

func TestValidate_RootWithoutUser(t *testing.T) {
	result := Validate("FROM alpine:3.19\nRUN chown root:root /app\n")

	if result.Valid() {
		t.Fatal("expected validation to fail for root without USER")
	}
	if !hasString(result.Critical, "Running as root user detected") {
		t.Errorf("expected root user issue, got %+v", result.Critical)
	}

	// A USER instruction quiets the root mention.
	withUser := Validate("FROM alpine:3.19\nRUN chown root:root /app\nUSER app\n")
	if !withUser.Valid() {
		t.Errorf("expected validation to pass with USER present, got %+v", withUser.Critical)
	}
}

func TestValidate_Warnings(t *testing.T) {
	result := Validate("FROM ubuntu:latest\nRUN apt-get upgrade\nUSER app\n")

	if !result.Valid() {
		t.Fatalf("expected only warnings, got critical %+v", result.Critical)
	}
	if !hasString(result.Warnings, "Using 'latest' tag is not recommended for production") {
		t.Error("expected latest tag warning")
	}
	if !hasString(result.Warnings, "Avoid 'apt-get upgrade' without pinning versions") {
		t.Error("expected apt-get upgrade warning")
	}
	if !hasString(result.Warnings, "Missing --no-cache in apt-get commands") {
		t.Error("expected --no-cache warning")
	}
}

func TestValidate_Clean(t *testing.T) {
	result := Validate("FROM alpine:3.19\nUSER app\nCMD [\"/run\"]\n")

	if !result.Valid() {
		t.Errorf("expected valid, got critical %+v", result.Critical)
	}
	if len(result.Warnings) != 0 {
		t.Errorf("expected no warnings, got %+v", result.Warnings)
	}
}
