package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStringValidation(t *testing.T) {
	tests := []struct {
		name string
		v    *StringValidation
		want bool
	}{
		{"empty", NewStringValidation(""), false},
		{"valid email", NewStringValidation("priya@example.com").WithPattern(CompiledPatterns.Email), true},
		{"invalid email", NewStringValidation("priya@").WithPattern(CompiledPatterns.Email), false},
		{"valid mobile", NewStringValidation("9876543210").WithPattern(CompiledPatterns.Mobile), true},
		{"short mobile", NewStringValidation("98765").WithPattern(CompiledPatterns.Mobile), false},
		{"too long", NewStringValidation("abcdef").WithMaxLength(3), false},
		{"multibyte within max", NewStringValidation("தமிழ்").WithMaxLength(5), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.v.Validate())
		})
	}
}

func TestNumericValidation(t *testing.T) {
	assert.True(t, NewNumericValidation(17).WithMin(AgeMin).WithMax(AgeMax).Validate())
	assert.False(t, NewNumericValidation(0).WithMin(AgeMin).WithMax(AgeMax).Validate())
	assert.False(t, NewNumericValidation(121).WithMin(AgeMin).WithMax(AgeMax).Validate())
}

func TestParseDate(t *testing.T) {
	d, ok := ParseDate("2008-05-14")
	assert.True(t, ok)
	assert.Equal(t, 2008, d.Year())

	_, ok = ParseDate("14/05/2008")
	assert.False(t, ok)
}
