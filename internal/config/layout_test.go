package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultLayout_Valid(t *testing.T) {
	require.NoError(t, DefaultLayout().Validate())
}

func TestLayout_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Layout)
	}{
		{"negative column", func(l *Layout) { l.SizeCol = -1 }},
		{"column outside guaranteed range", func(l *Layout) { l.JANCol = 30 }},
		{"store region overlaps descriptive columns", func(l *Layout) { l.StoreStartCol = 20 }},
		{"data row before store info row", func(l *Layout) { l.DataStartRow = 0 }},
		{"empty stop keyword", func(l *Layout) { l.StopKeyword = "" }},
		{"empty size order", func(l *Layout) { l.SizeOrder = nil }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := DefaultLayout()
			tt.mutate(&l)
			assert.Error(t, l.Validate())
		})
	}
}

func TestLayout_IsZero(t *testing.T) {
	assert.True(t, Layout{}.isZero())
	assert.False(t, DefaultLayout().isZero())

	partial := Layout{StopKeyword: "伝票枝番"}
	assert.False(t, partial.isZero())
}
