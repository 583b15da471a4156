// internal/funnel/orchestrator_test.go
package funnel

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

type fakeSubmitter struct {
	got    Payload
	result Result
	err    error
	calls  int
}

func (f *fakeSubmitter) Submit(ctx context.Context, p Payload) (Result, error) {
	f.calls++
	f.got = p
	return f.result, f.err
}

type fixedCert string

func (c fixedCert) Collect(ctx context.Context) string { return string(c) }

func fillValid(o *Orchestrator) {
	o.Set(FieldFirstName, "Jane")
	o.Set(FieldLastName, "Doe")
	o.Set(FieldGender, "female")
	o.SetZip("11102")
	o.Set(FieldDOB, "1990-04-12")
	o.Set(FieldPhone, "(212) 555 - 0100")
	o.Set(FieldEmail, "jane@example.com")
}

func TestSubmitHappyPath(t *testing.T) {
	sub := &fakeSubmitter{result: Result{Success: true, Redirect: "/thankyou"}}
	o := New(sub, &MemZipStore{}, fixedCert("https://cert.trustedform.com/abc"))
	fillValid(o)

	if err := o.Submit(context.Background()); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if o.State() != StateSucceeded {
		t.Fatalf("state = %v, want succeeded", o.State())
	}
	if o.RedirectTarget() != "/thankyou" {
		t.Errorf("redirect = %q", o.RedirectTarget())
	}
	if sub.got.PhoneNumber != "2125550100" {
		t.Errorf("phone should be digits only, got %q", sub.got.PhoneNumber)
	}
	if sub.got.TrustedFormCertURL != "https://cert.trustedform.com/abc" {
		t.Errorf("certificate not forwarded: %q", sub.got.TrustedFormCertURL)
	}
}

func TestSubmitStopsAtFirstInvalidField(t *testing.T) {
	sub := &fakeSubmitter{result: Result{Success: true}}
	o := New(sub, nil, nil)
	fillValid(o)
	o.Set(FieldLastName, "")
	o.Set(FieldEmail, "not-an-email")

	err := o.Submit(context.Background())
	var fe *FieldError
	if !errors.As(err, &fe) {
		t.Fatalf("want FieldError, got %v", err)
	}
	if fe.Field != FieldLastName {
		t.Errorf("first failure should be lastName, got %s", fe.Field)
	}
	if o.State() != StateIdle {
		t.Errorf("state = %v, want idle after validation failure", o.State())
	}
	if sub.calls != 0 {
		t.Error("submitter must not be called on validation failure")
	}
	if _, hasEmailErr := o.ErrorFor(FieldEmail); hasEmailErr {
		t.Error("validation must short-circuit before reaching email")
	}
}

func TestSubmitValidationOrder(t *testing.T) {
	o := New(&fakeSubmitter{}, nil, nil)
	fe, ok := o.Validate()
	if ok {
		t.Fatal("empty form should fail validation")
	}
	if fe.Field != FieldFirstName {
		t.Errorf("empty form fails at firstName first, got %s", fe.Field)
	}
}

func TestSubmitBuyerRejectionLandsInEmailSlot(t *testing.T) {
	sub := &fakeSubmitter{result: Result{Success: false, Message: "Lead submission failed"}}
	o := New(sub, nil, nil)
	fillValid(o)

	err := o.Submit(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if o.State() != StateIdle {
		t.Errorf("state = %v, want idle for correction", o.State())
	}
	fe, ok := o.ErrorFor(FieldEmail)
	if !ok || fe.Message != "Lead submission failed" {
		t.Errorf("email slot error = %+v, ok=%v", fe, ok)
	}
}

func TestSubmitTransportErrorUsesGenericMessage(t *testing.T) {
	sub := &fakeSubmitter{err: errors.New("connection refused")}
	o := New(sub, nil, nil)
	fillValid(o)

	if err := o.Submit(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if o.State() != StateIdle {
		t.Errorf("state = %v, want idle after transport failure", o.State())
	}
	fe, _ := o.ErrorFor(FieldEmail)
	if fe.Message != "Submission failed. Please try again." {
		t.Errorf("message = %q", fe.Message)
	}
}

func TestSetZipGatesInput(t *testing.T) {
	store := &MemZipStore{}
	o := New(&fakeSubmitter{}, store, nil)

	o.SetZip("111")
	if o.Get(FieldZipCode) != "111" || store.Load() != "111" {
		t.Errorf("partial zip should be held and stored, got %q / %q", o.Get(FieldZipCode), store.Load())
	}
	o.SetZip("111a2")
	if o.Get(FieldZipCode) != "111" {
		t.Error("non-digit input must be rejected")
	}
	o.SetZip("123456")
	if o.Get(FieldZipCode) != "111" {
		t.Error("six digits must be rejected")
	}
}

func TestZipPrefillFromStore(t *testing.T) {
	store := &MemZipStore{}
	store.Save("90210")
	o := New(&fakeSubmitter{}, store, nil)
	if o.Get(FieldZipCode) != "90210" {
		t.Errorf("prefill = %q", o.Get(FieldZipCode))
	}
}

func TestSetClearsStaleError(t *testing.T) {
	o := New(&fakeSubmitter{}, nil, nil)
	o.Validate()
	if _, ok := o.ErrorFor(FieldFirstName); !ok {
		t.Fatal("expected error on firstName")
	}
	o.Set(FieldFirstName, "Jane")
	if _, ok := o.ErrorFor(FieldFirstName); ok {
		t.Error("setting a field must clear its error")
	}
}

func TestFileZipStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "zips.json")

	a := NewFileZipStore(path, "visitor-a")
	b := NewFileZipStore(path, "visitor-b")

	a.Save("11102")
	b.Save("90210")

	if got := a.Load(); got != "11102" {
		t.Errorf("a.Load() = %q", got)
	}
	if got := b.Load(); got != "90210" {
		t.Errorf("b.Load() = %q", got)
	}

	a.Save("")
	if got := a.Load(); got != "" {
		t.Errorf("cleared zip should be gone, got %q", got)
	}
	if got := b.Load(); got != "90210" {
		t.Errorf("b must survive a's clear, got %q", got)
	}
}

func TestFileZipStoreMissingFile(t *testing.T) {
	s := NewFileZipStore(filepath.Join(t.TempDir(), "nope.json"), "v")
	if got := s.Load(); got != "" {
		t.Errorf("Load on missing file = %q", got)
	}
}

func TestStateString(t *testing.T) {
	if StateIdle.String() != "idle" || StateSucceeded.String() != "succeeded" {
		t.Error("state names drifted")
	}
}
