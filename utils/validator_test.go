package utils

import "testing"

type registerForm struct {
	Name                 string `validate:"required,nameok"`
	Email                string `validate:"required,email"`
	Password             string `validate:"required,pwdmin"`
	PasswordConfirmation string `validate:"required,eqfield=Password"`
	Role                 string `validate:"required,role"`
}

func validForm() registerForm {
	return registerForm{
		Name:                 "Asha Rao",
		Email:                "asha@example.com",
		Password:             "secret123",
		PasswordConfirmation: "secret123",
		Role:                 "creator",
	}
}

func TestValidateStructAccepts(t *testing.T) {
	f := validForm()
	if err := ValidateStruct(&f); err != nil {
		t.Fatalf("expected valid form, got %v", err)
	}
	f.Role = "investor"
	if err := ValidateStruct(&f); err != nil {
		t.Fatalf("expected investor role to pass, got %v", err)
	}
}

func TestValidateStructRejects(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*registerForm)
	}{
		{"empty name", func(f *registerForm) { f.Name = "  " }},
		{"bad email", func(f *registerForm) { f.Email = "not-an-email" }},
		{"short password", func(f *registerForm) { f.Password = "abc"; f.PasswordConfirmation = "abc" }},
		{"mismatched confirmation", func(f *registerForm) { f.PasswordConfirmation = "different" }},
		{"unknown role", func(f *registerForm) { f.Role = "admin" }},
	}
	for _, c := range cases {
		f := validForm()
		c.mutate(&f)
		if err := ValidateStruct(&f); err == nil {
			t.Errorf("%s: expected validation error", c.name)
		}
	}
}
