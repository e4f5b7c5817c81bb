package domain

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"
)

func TestBook_InputRoundTrip(t *testing.T) {
	in := BookInput{Title: "T", Author: "A", Year: 2020, Category: "C", PageCount: 100}
	b := in.WithCode("L42")

	if b.Code != "L42" {
		t.Errorf("Code = %q, want L42", b.Code)
	}
	if b.Input() != in {
		t.Errorf("Input() = %+v, want %+v", b.Input(), in)
	}
}

func TestValidateCode(t *testing.T) {
	for _, code := range []string{"", "   ", "\t"} {
		err := ValidateCode(code)
		if !errors.Is(err, ErrMissingArgument) {
			t.Errorf("ValidateCode(%q) = %v, want ErrMissingArgument", code, err)
		}
	}
	if err := ValidateCode("Z9"); err != nil {
		t.Errorf("ValidateCode(Z9) = %v", err)
	}
}

func TestValidateCategory(t *testing.T) {
	if err := ValidateCategory(""); !errors.Is(err, ErrMissingArgument) {
		t.Errorf("ValidateCategory(\"\") = %v", err)
	}
	if err := ValidateCategory("novela"); err != nil {
		t.Errorf("ValidateCategory(novela) = %v", err)
	}
}

func TestCredentials_HidePassword(t *testing.T) {
	c := Credentials{Email: "a@b.com", Password: "x-secret"}

	if s := fmt.Sprint(c); strings.Contains(s, "x-secret") {
		t.Errorf("String() leaks password: %s", s)
	}

	v := c.LogValue()
	if v.Kind() != slog.KindGroup {
		t.Fatalf("LogValue kind = %v, want group", v.Kind())
	}
	for _, a := range v.Group() {
		if a.Key == "password" {
			t.Error("LogValue must not include password")
		}
	}
}
