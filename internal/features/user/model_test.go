package user

import "testing"

func TestDisplayName(t *testing.T) {
	tests := []struct {
		name string
		user User
		want string
	}{
		{"full name", User{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"}, "Ada Lovelace"},
		{"first only", User{FirstName: "Ada", Email: "ada@example.com"}, "Ada"},
		{"last only", User{LastName: "Lovelace", Email: "ada@example.com"}, "Lovelace"},
		{"email fallback", User{Email: "ada@example.com"}, "ada@example.com"},
		{"whitespace names", User{FirstName: " ", LastName: " ", Email: "ada@example.com"}, "ada@example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.user.DisplayName(); got != tt.want {
				t.Errorf("DisplayName() = %q, want %q", got, tt.want)
			}
		})
	}
}
