package tools

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mcplsp/bridge/internal/symbol"
)

func TestExpandRange_CommentAndBraceBalance(t *testing.T) {
	lines := []string{
		"// doc",
		"function f() {",
		"  return 1;",
		"}",
	}
	start := expandStartUpward(lines, 1)
	end := expandEndByBraceBalance(lines, 1, 1)

	assert.Equal(t, 0, start)
	assert.Equal(t, 3, end)
}

func TestExpandEndByBraceBalance_NeverClosesKeepsOriginal(t *testing.T) {
	lines := []string{"function f() {", "  return 1;"}
	end := expandEndByBraceBalance(lines, 0, 0)
	assert.Equal(t, 0, end)
}

func TestExpandEndByBraceBalance_IgnoresBracesInStrings(t *testing.T) {
	lines := []string{
		`x := "{not a brace"`,
		`y()`,
	}
	end := expandEndByBraceBalance(lines, 0, 0)
	assert.Equal(t, 0, end)
}

func TestDefinitionMatches(t *testing.T) {
	method := symbol.Symbol{Name: "Foo", Kind: 6}
	qualifiedColon := symbol.Symbol{Name: "Bar::Foo", Kind: 6}
	qualifiedDot := symbol.Symbol{Name: "other.Foo", Kind: 6}

	assert.True(t, definitionMatches("Foo", method))
	assert.True(t, definitionMatches("Foo", qualifiedColon))
	assert.True(t, definitionMatches("Foo", qualifiedDot))

	assert.False(t, definitionMatches("Bar.Foo", method))
	barFoo := symbol.Symbol{Name: "Bar.Foo", Kind: 6}
	assert.True(t, definitionMatches("Bar.Foo", barFoo))
}
