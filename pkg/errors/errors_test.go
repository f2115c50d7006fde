package errors

import (
	stdErrors "errors"
	"testing"
)

func TestMetadataForKnownCodes(t *testing.T) {
	tests := []struct {
		code      Code
		showAlert bool
		retryable bool
	}{
		{code: CodeValidation, showAlert: false},
		{code: CodeForbidden, showAlert: true},
		{code: CodeNotFound, showAlert: true},
		{code: CodeConflict, showAlert: true},
		{code: CodeStateConflict, showAlert: true},
		{code: CodeInternal, showAlert: true, retryable: true},
		{code: CodeDependency, showAlert: true, retryable: true},
	}

	for _, tt := range tests {
		meta := MetadataFor(tt.code)
		if meta.AlertText == "" {
			t.Fatalf("code %s has no alert text", tt.code)
		}
		if meta.ShowAlert != tt.showAlert {
			t.Fatalf("code %s expected show alert %v got %v", tt.code, tt.showAlert, meta.ShowAlert)
		}
		if meta.Retryable != tt.retryable {
			t.Fatalf("code %s expected retryable %v got %v", tt.code, tt.retryable, meta.Retryable)
		}
	}
}

func TestMetadataForUnknownCodeDefaultsToInternal(t *testing.T) {
	meta := MetadataFor("SOMETHING_UNKNOWN")
	if meta != metadataByCode[CodeInternal] {
		t.Fatalf("expected internal metadata, got %+v", meta)
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := stdErrors.New("boom")
	err := Wrap(CodeDependency, cause, "sending notification")

	if !stdErrors.Is(err, cause) {
		t.Fatal("expected wrapped error to match cause")
	}
	if err.Code() != CodeDependency {
		t.Fatalf("expected dependency code, got %s", err.Code())
	}
}

func TestCodeOf(t *testing.T) {
	if CodeOf(New(CodeNotFound, "missing")) != CodeNotFound {
		t.Fatal("expected NOT_FOUND")
	}
	if CodeOf(stdErrors.New("plain")) != CodeInternal {
		t.Fatal("expected plain errors to map to INTERNAL_ERROR")
	}
}

func TestAsNil(t *testing.T) {
	if As(nil) != nil {
		t.Fatal("expected nil for nil error")
	}
}
