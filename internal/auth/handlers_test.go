package auth

import "testing"

func TestRegisterFormValidate(t *testing.T) {
	valid := RegisterForm{
		Nome:     "Maria",
		Cognome:  "Bianchi",
		Email:    "maria@example.com",
		Password: "segreto",
	}
	if errs := valid.Validate(); len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}

	cases := []struct {
		name   string
		mutate func(*RegisterForm)
		field  string
	}{
		{"missing nome", func(f *RegisterForm) { f.Nome = " " }, "nome"},
		{"missing cognome", func(f *RegisterForm) { f.Cognome = "" }, "cognome"},
		{"bad email", func(f *RegisterForm) { f.Email = "not-an-email" }, "email"},
		{"short password", func(f *RegisterForm) { f.Password = "abc12" }, "password"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := valid
			tc.mutate(&f)
			errs := f.Validate()
			if len(errs) != 1 {
				t.Fatalf("expected exactly one error, got %v", errs)
			}
			if errs[0].Field != tc.field {
				t.Fatalf("expected error on %q, got %q", tc.field, errs[0].Field)
			}
		})
	}
}
