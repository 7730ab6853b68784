package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFirstErrorWins(t *testing.T) {
	v := New()
	v.AddError("text", "first")
	v.AddError("text", "second")

	assert.Equal(t, "first", v.Errors["text"])
	assert.False(t, v.IsValid())
}

func TestCheckNotBlank(t *testing.T) {
	v := New()
	v.CheckNotBlank("   ", "text", "must be provided")
	assert.Equal(t, "must be provided", v.Errors["text"])

	v = New()
	v.CheckNotBlank("hello", "text", "must be provided")
	assert.True(t, v.IsValid())
}

func TestCheckEmail(t *testing.T) {
	v := New()
	v.CheckEmail("not-an-email", "must be a valid email address")
	assert.Equal(t, "must be a valid email address", v.Errors["email"])

	v = New()
	v.CheckEmail("anna@example.com", "must be a valid email address")
	assert.True(t, v.IsValid())
}
