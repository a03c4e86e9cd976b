package site

import (
	"errors"
	"testing"
)

func validForm() *ContactForm {
	return &ContactForm{Data: FormData{
		Name:    "Ada",
		Email:   "ada@example.com",
		Message: "Hello",
	}}
}

func TestFormValidate(t *testing.T) {
	tests := []struct {
		name   string
		data   FormData
		fields map[string]error
	}{
		{"valid", FormData{Name: "Ada", Email: "ada@example.com", Message: "Hi"}, nil},
		{"empty", FormData{}, map[string]error{
			FieldName: ErrRequired, FieldEmail: ErrRequired, FieldMessage: ErrRequired,
		}},
		{"blank name", FormData{Name: "   ", Email: "a@b.co", Message: "Hi"}, map[string]error{FieldName: ErrRequired}},
		{"bad email", FormData{Name: "Ada", Email: "not an email", Message: "Hi"}, map[string]error{FieldEmail: ErrInvalidEmail}},
		{"display name email", FormData{Name: "Ada", Email: "Ada <ada@example.com>", Message: "Hi"}, map[string]error{FieldEmail: ErrInvalidEmail}},
		{"company optional", FormData{Name: "Ada", Email: "ada@example.com", Message: "Hi", Company: ""}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &ContactForm{Data: tt.data}
			err := f.Validate()
			if len(tt.fields) == 0 {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			got := map[string]error{}
			for _, e := range unjoin(err) {
				var fe *FieldError
				if !errors.As(e, &fe) {
					t.Fatalf("error %v is not a *FieldError", e)
				}
				got[fe.Field] = fe.Err
			}
			if len(got) != len(tt.fields) {
				t.Errorf("got %d field errors %v, want %d", len(got), got, len(tt.fields))
			}
			for field, want := range tt.fields {
				if !errors.Is(got[field], want) {
					t.Errorf("%s error = %v, want %v", field, got[field], want)
				}
				if !errors.Is(err, want) {
					t.Errorf("errors.Is(err, %v) = false", want)
				}
			}
		})
	}
}

func TestFormSubmitCycle(t *testing.T) {
	f := validForm()
	var statuses []FormStatus
	var sent []FormData
	f.OnStatus = func(s FormStatus) { statuses = append(statuses, s) }
	f.OnSent = func(d FormData) { sent = append(sent, d) }

	if err := f.Submit(); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if f.Status() != FormSubmitting {
		t.Fatalf("Status = %v, want submitting", f.Status())
	}

	f.Update(1.0)
	if f.Status() != FormSubmitting {
		t.Errorf("Status after 1s = %v, want submitting", f.Status())
	}
	f.Update(0.5)
	if f.Status() != FormSubmitted {
		t.Fatalf("Status after 1.5s = %v, want submitted", f.Status())
	}
	if len(sent) != 1 || sent[0].Name != "Ada" {
		t.Errorf("sent = %+v, want one submission from Ada", sent)
	}
	if f.Data.Name != "Ada" {
		t.Error("data should be kept while the confirmation shows")
	}

	f.Update(2.9)
	if f.Status() != FormSubmitted {
		t.Errorf("Status after 4.4s = %v, want submitted", f.Status())
	}
	f.Update(0.2)
	if f.Status() != FormIdle {
		t.Fatalf("Status after 4.6s = %v, want idle", f.Status())
	}
	if f.Data != (FormData{}) {
		t.Errorf("Data = %+v, want cleared", f.Data)
	}

	want := []FormStatus{FormSubmitting, FormSubmitted, FormIdle}
	if len(statuses) != len(want) {
		t.Fatalf("statuses = %v, want %v", statuses, want)
	}
	for i := range want {
		if statuses[i] != want[i] {
			t.Errorf("statuses[%d] = %v, want %v", i, statuses[i], want[i])
		}
	}
}

func TestFormSubmitWhilePendingIgnored(t *testing.T) {
	f := validForm()
	calls := 0
	f.OnStatus = func(FormStatus) { calls++ }
	if err := f.Submit(); err != nil {
		t.Fatal(err)
	}
	f.Update(0.5)
	f.Data.Name = ""
	if err := f.Submit(); err != nil {
		t.Errorf("Submit while pending = %v, want nil", err)
	}
	if calls != 1 {
		t.Errorf("status changes = %d, want 1", calls)
	}
	f.Update(1.0)
	if f.Status() != FormSubmitted {
		t.Errorf("Status = %v, want submitted", f.Status())
	}
}

func TestFormSubmitInvalidStaysIdle(t *testing.T) {
	f := &ContactForm{}
	if err := f.Submit(); !errors.Is(err, ErrRequired) {
		t.Fatalf("Submit = %v, want ErrRequired", err)
	}
	if f.Status() != FormIdle {
		t.Errorf("Status = %v, want idle", f.Status())
	}
	f.Update(10)
	if f.Status() != FormIdle {
		t.Errorf("Update should not move an idle form, got %v", f.Status())
	}
}

func TestFormReset(t *testing.T) {
	f := validForm()
	f.Submit()
	f.Reset()
	if f.Status() != FormIdle || f.Data != (FormData{}) {
		t.Errorf("after Reset: status %v, data %+v", f.Status(), f.Data)
	}
}

func TestFormField(t *testing.T) {
	f := &ContactForm{}
	for _, name := range fieldOrder {
		p := f.Field(name)
		if p == nil {
			t.Fatalf("Field(%q) = nil", name)
		}
		*p = name
	}
	want := FormData{Name: FieldName, Email: FieldEmail, Company: FieldCompany, Service: FieldService, Message: FieldMessage}
	if f.Data != want {
		t.Errorf("Data = %+v, want %+v", f.Data, want)
	}
	if f.Field("phone") != nil {
		t.Error("unknown field should be nil")
	}
}

func TestFormStatusString(t *testing.T) {
	if FormSubmitting.String() != "submitting" || FormStatus(9).String() != "unknown" {
		t.Error("unexpected FormStatus strings")
	}
}
