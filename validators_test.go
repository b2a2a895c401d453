package blog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	blog "github.com/ronnmabunga/blogging-website-app-api-demo"
)

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		name  string
		email string
		want  bool
	}{
		{"simple address", "user@example.com", true},
		{"subdomain", "user@mail.example.co", true},
		{"plus tag", "user+tag@example.com", true},
		{"missing at", "userexample.com", false},
		{"missing domain", "user@", false},
		{"missing local part", "@example.com", false},
		{"whitespace", "us er@example.com", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, blog.IsValidEmail(tt.email))
		})
	}
}

func TestIsValidUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		want     bool
	}{
		{"simple handle", "ronnm", true},
		{"with separators", "ron.m-123", true},
		{"minimum length", "abc", true},
		{"maximum length", "abcdefghij12345", true},
		{"too short", "ab", false},
		{"too long", "abcdefghij123456", false},
		{"starts with digit", "1ronn", false},
		{"contains space", "ron m", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, blog.IsValidUsername(tt.username))
		})
	}
}

func TestIsValidPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     bool
	}{
		{"meets policy", "Password1!", true},
		{"all character classes", `Str0ng~Pass`, true},
		{"no uppercase", "password1!", false},
		{"no lowercase", "PASSWORD1!", false},
		{"no digit", "Password!!", false},
		{"no symbol", "Password11", false},
		{"too short", "Pa1!", false},
		{"too long", "Aa1!Aa1!Aa1!Aa1!Aa1!Aa1!Aa1!Aa1!!", false},
		{"contains space", "Pass word1!", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, blog.IsValidPassword(tt.password))
		})
	}
}
