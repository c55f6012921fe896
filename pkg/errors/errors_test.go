package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestNewAndWrap(t *testing.T) {
	code := MustNewCode("storage.query_failed")

	err := New(code, "query failed")
	if err.Error() != "query failed" {
		t.Errorf("unexpected message: %q", err.Error())
	}
	if !err.Code.Equals(code) {
		t.Errorf("expected code %s, got %s", code, err.Code)
	}

	cause := stderrors.New("disk I/O error")
	wrapped := Wrap(code, cause, "query failed")
	if wrapped.Error() != "query failed: disk I/O error" {
		t.Errorf("unexpected wrapped message: %q", wrapped.Error())
	}
	if !stderrors.Is(wrapped, cause) {
		t.Error("expected errors.Is to find the cause")
	}
}

func TestAddContext(t *testing.T) {
	err := New(CommonInternal, "boom").
		AddContext("table", "roads").
		AddContext("srs_id", "4326")

	if err.Context["table"] != "roads" {
		t.Errorf("expected table context, got %v", err.Context)
	}
	if err.Context["srs_id"] != "4326" {
		t.Errorf("expected srs_id context, got %v", err.Context)
	}
}

func TestHasCode(t *testing.T) {
	inner := MustNewCode("catalog.row_missing")
	outer := MustNewCode("feature.refresh_failed")

	err := Wrap(outer, New(inner, "no such row"), "refresh failed")

	if !HasCode(err, outer) {
		t.Error("expected outer code in chain")
	}
	if !HasCode(err, inner) {
		t.Error("expected inner code in chain")
	}
	if HasCode(err, CommonNotFound) {
		t.Error("did not expect unrelated code in chain")
	}
	if HasCode(nil, outer) {
		t.Error("nil error should carry no code")
	}

	// Wrapping with fmt should still expose the outermost code.
	plain := fmt.Errorf("cli: %w", err)
	if !CodeOf(plain).Equals(outer) {
		t.Errorf("expected CodeOf to see %s, got %s", outer, CodeOf(plain))
	}
}

func TestCodeValidation(t *testing.T) {
	valid := []string{"feature.srs_not_defined", "catalog.sqlite.row_missing", "a.b_c"}
	for _, s := range valid {
		if _, err := NewCode(s); err != nil {
			t.Errorf("expected %q to be valid: %v", s, err)
		}
	}

	invalid := []string{"", "nodot", "Upper.case", "trailing.", ".leading", "mid..dot"}
	for _, s := range invalid {
		if _, err := NewCode(s); err == nil {
			t.Errorf("expected %q to be invalid", s)
		}
	}
}

func TestCodeParts(t *testing.T) {
	code := MustNewCode("schema.invalid_geometry_type")
	if code.Package() != "schema" {
		t.Errorf("unexpected package: %s", code.Package())
	}
	if code.Name() != "invalid_geometry_type" {
		t.Errorf("unexpected name: %s", code.Name())
	}
	if !code.IsValid() {
		t.Error("expected code to be valid")
	}
}
