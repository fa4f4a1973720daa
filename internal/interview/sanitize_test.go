package interview

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeInput(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "scriptalert(1)/script", SanitizeInput(" <script>alert(1)</script> "))
	assert.Equal(t, "Robert DROP TABLE x", SanitizeInput("Robert'; DROP TABLE x;--"))
	assert.Equal(t, "a  c  b", SanitizeInput("a /* c */ b"))
	assert.Equal(t, "", SanitizeInput(`"';`))
}

func TestMaskEmail(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "j***h@***", MaskEmail("john.smith@example.com"))
	assert.Equal(t, "a***@***", MaskEmail("ab@example.com"))
	assert.Equal(t, "***@***", MaskEmail("@example.com"))
	assert.Equal(t, "***@***.com", MaskEmail("not-an-email"))
	assert.Equal(t, "***@***.com", MaskEmail(""))
}

func TestMaskPhone(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "***-***-4567", MaskPhone("+1 555 123 4567"))
	assert.Equal(t, "***-***-****", MaskPhone("123"))
}
