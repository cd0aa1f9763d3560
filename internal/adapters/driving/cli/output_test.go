package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewStyles_PlainWhenNotTerminal(t *testing.T) {
	var buf bytes.Buffer
	assert.False(t, isTerminal(&buf))

	st := newStyles(&buf)
	assert.Equal(t, "Results:", st.title.Render("Results:"))
	assert.Equal(t, "(0.5000)", st.score.Render("(0.5000)"))
}
