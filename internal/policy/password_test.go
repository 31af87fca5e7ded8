package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate_AcceptsStrongPassword(t *testing.T) {
	v := NewValidator(13)
	assert.Empty(t, v.Validate("Str0ng!Passw0rd"))
}

func TestValidate_RuleOrder(t *testing.T) {
	v := NewValidator(13)

	tests := []struct {
		name     string
		password string
		want     string
	}{
		{
			name:     "too short",
			password: "Ab1!",
			want:     "Password must be at least 13 characters",
		},
		{
			name:     "missing uppercase",
			password: "str0ng!passw0rd",
			want:     "Password must include at least one uppercase letter",
		},
		{
			name:     "missing lowercase",
			password: "STR0NG!PASSW0RD",
			want:     "Password must include at least one lowercase letter",
		},
		{
			name:     "missing digit",
			password: "Strong!Password",
			want:     "Password must include at least one number",
		},
		{
			name:     "missing special",
			password: "Str0ngPassw0rd1",
			want:     "Password must include at least one special character",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, v.Validate(tt.password))
		})
	}
}

func TestValidate_ShortRuleWinsFirst(t *testing.T) {
	// A password failing several rules reports the length rule, since it
	// is evaluated first.
	v := NewValidator(13)
	assert.Equal(t, "Password must be at least 13 characters", v.Validate("abc"))
}

func TestValidate_LegacyProfileLength(t *testing.T) {
	v := NewValidator(8)
	assert.Empty(t, v.Validate("Sh0rt!aB"))
	assert.Equal(t, "Password must be at least 8 characters", v.Validate("Sh0rt!a"))
}

func TestValidate_LengthCountsCharactersNotBytes(t *testing.T) {
	v := NewValidator(8)

	// 7 characters but 10 bytes; every character class present. The
	// length floor must still reject it.
	assert.Equal(t, "Password must be at least 8 characters", v.Validate("ЇЇЇ1!aB"))

	// 8 characters, multibyte included, all classes present
	assert.Empty(t, v.Validate("ЇЇЇ1!aBc"))
}
