package helper

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTopic(t *testing.T) {
	cases := map[string]string{
		"Machine Learning":           "machine_learning",
		"machine-learning":           "machine_learning",
		"  Machine Learning in ML  ": "machine_learning_in_ml",
		"colors":                     "colors",
		"Deep-Learning Survey":       "deep_learning_survey",
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizeTopic(in), "input %q", in)
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 300))
	long := strings.Repeat("x", 400)
	got := Truncate(long, 300)
	assert.Len(t, []rune(got), 303)
	assert.True(t, strings.HasSuffix(got, "..."))
	// rune-based, not byte-based
	assert.Equal(t, "héllo", Truncate("héllo", 5))
}
