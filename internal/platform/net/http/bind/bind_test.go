package bind

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	perr "telejoin/internal/platform/errors"
)

type runForm struct {
	Date  *string `form:"date,trim" validate:"omitempty,dmy"`
	Owner *string `form:"owner" validate:"omitempty,max=10"`
	Mode  string  `form:"mode" validate:"omitempty,oneof=full summary"`
}

func multipartRequest(t *testing.T, fields map[string]string, file []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatal(err)
		}
	}
	if file != nil {
		fw, err := mw.CreateFormFile("file", "visits.xlsx")
		if err != nil {
			t.Fatal(err)
		}
		_, _ = fw.Write(file)
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestParseForm_Multipart(t *testing.T) {
	req := multipartRequest(t, map[string]string{"date": " 05/01/2024 ", "owner": "João"}, []byte("x"))
	got, err := ParseForm[runForm](req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Date == nil || *got.Date != "05/01/2024" {
		t.Fatalf("date = %v", got.Date)
	}
	if got.Owner == nil || *got.Owner != "João" {
		t.Fatalf("owner = %v", got.Owner)
	}
	if got.Mode != "" {
		t.Fatalf("mode = %q", got.Mode)
	}
}

func TestParseForm_BlankOptionalStaysNil(t *testing.T) {
	req := multipartRequest(t, map[string]string{"date": "  ", "owner": ""}, nil)
	got, err := ParseForm[runForm](req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Date != nil || got.Owner != nil {
		t.Fatalf("expected nil optionals, got %+v", got)
	}
}

func TestParseForm_KeepsUntrimmedValues(t *testing.T) {
	req := multipartRequest(t, map[string]string{"owner": "Ana ", "mode": "summary"}, nil)
	got, err := ParseForm[runForm](req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Owner == nil || *got.Owner != "Ana " {
		t.Fatalf("owner = %q, want trailing space kept", deref(got.Owner))
	}
}

func deref(p *string) string {
	if p == nil {
		return "<nil>"
	}
	return *p
}

func TestParseForm_URLEncoded(t *testing.T) {
	body := url.Values{"mode": {"summary"}}.Encode()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	got, err := ParseForm[runForm](req)
	if err != nil || got.Mode != "summary" {
		t.Fatalf("got %+v, %v", got, err)
	}
}

func TestParseForm_ValidationMessages(t *testing.T) {
	cases := []struct {
		name   string
		fields map[string]string
		field  string
		msg    string
	}{
		{"bad date", map[string]string{"date": "2024-01-05"}, "date", "date must be a date in DD/MM/YYYY format"},
		{"impossible date", map[string]string{"date": "31/02/2024"}, "date", "DD/MM/YYYY"},
		{"long owner", map[string]string{"owner": strings.Repeat("a", 11)}, "owner", "owner must be at most 10 characters"},
		{"bad mode", map[string]string{"mode": "x"}, "mode", "mode"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseForm[runForm](multipartRequest(t, tc.fields, nil))
			if !perr.IsCode(err, perr.ErrorCodeValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
			e, _ := perr.As(err)
			if e.Field() != tc.field {
				t.Fatalf("field got %q want %q", e.Field(), tc.field)
			}
			if !strings.Contains(err.Error(), tc.msg) {
				t.Fatalf("message %q does not contain %q", err.Error(), tc.msg)
			}
		})
	}
}

func TestParseForm_TooLarge(t *testing.T) {
	req := multipartRequest(t, nil, bytes.Repeat([]byte("z"), 16<<10))
	rr := httptest.NewRecorder()
	req.Body = http.MaxBytesReader(rr, req.Body, 1024)
	_, err := ParseForm[runForm](req)
	if !perr.IsCode(err, perr.ErrorCodeTooLarge) {
		t.Fatalf("expected too large, got %v", err)
	}
}

func TestParseForm_NonStruct(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if _, err := ParseForm[string](req); err == nil {
		t.Fatalf("expected error for non struct target")
	}
}

func TestFile(t *testing.T) {
	req := multipartRequest(t, nil, []byte("payload"))
	b, name, err := File(req, "file", 0)
	if err != nil {
		t.Fatalf("File: %v", err)
	}
	if string(b) != "payload" || name != "visits.xlsx" {
		t.Fatalf("got %q %q", b, name)
	}
}

func TestFile_Missing(t *testing.T) {
	_, _, err := File(multipartRequest(t, map[string]string{"owner": "x"}, nil), "file", 0)
	if !perr.IsCode(err, perr.ErrorCodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if e, _ := perr.As(err); e.Field() != "file" {
		t.Fatalf("field = %q", e.Field())
	}
}

func TestFile_OverLimit(t *testing.T) {
	_, _, err := File(multipartRequest(t, nil, bytes.Repeat([]byte("z"), 100)), "file", 10)
	if !perr.IsCode(err, perr.ErrorCodeTooLarge) {
		t.Fatalf("expected too large, got %v", err)
	}
}

func TestValidate_Direct(t *testing.T) {
	type in struct {
		Name string `json:"name" validate:"required"`
	}
	err := Validate(in{})
	if !perr.IsCode(err, perr.ErrorCodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if e, _ := perr.As(err); e.Field() != "name" {
		t.Fatalf("json tag should name the field, got %q", e.Field())
	}
	if Validate(in{Name: "x"}) != nil {
		t.Fatalf("valid struct rejected")
	}
}
