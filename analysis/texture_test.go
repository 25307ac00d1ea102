package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalyzeBoard(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		board     string
		texture   Texture
		connected int
		paired    bool
		rainbow   bool
		monotone  bool
	}{
		{name: "dry rainbow", board: "Ks7d2c", texture: TextureDry, connected: 1, rainbow: true},
		{name: "two tone", board: "Kh9h4c", texture: TextureSemiWet, connected: 1},
		{name: "paired", board: "8s8d3c", texture: TextureSemiWet, connected: 1, paired: true, rainbow: true},
		{name: "wheel cards", board: "As2d3c", texture: TextureSemiWet, connected: 3, rainbow: true},
		{name: "connected two tone", board: "9s8s7d", texture: TextureWet, connected: 3},
		{name: "broadway", board: "AsKdQc", texture: TextureWet, connected: 3, rainbow: true},
		{name: "monotone straight", board: "JhTh9h", texture: TextureVeryWet, connected: 3, monotone: true},
		{name: "turn four straight", board: "9c8d7h6s", texture: TextureWet, connected: 4, rainbow: true},
		{name: "two cards", board: "AhKh", texture: TextureDry, connected: 2},
		{name: "empty", board: "", texture: TextureDry},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := AnalyzeBoard(board(tt.board))
			assert.Equal(t, tt.texture, info.Texture)
			assert.Equal(t, tt.connected, info.Connected)
			assert.Equal(t, tt.paired, info.Paired)
			assert.Equal(t, tt.rainbow, info.Rainbow)
			assert.Equal(t, tt.monotone, info.Monotone)
		})
	}
}

func TestAnalyzeBoardCounts(t *testing.T) {
	info := AnalyzeBoard(board("AhKhQh2h"))
	assert.Equal(t, 4, info.MaxSuit)
	assert.Equal(t, 3, info.Broadway)
	assert.True(t, info.Monotone)
	assert.Equal(t, TextureVeryWet, info.Texture)
}

func TestDetectDraws(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		hero  string
		board string
		draws []Draw
		outs  int
	}{
		{name: "nut flush draw", hero: "AhKh", board: "Qh7h2c", draws: []Draw{DrawNutFlush}, outs: 9},
		{name: "open ended", hero: "9s8d", board: "7c6h2s", draws: []Draw{DrawOpenEnded}, outs: 8},
		{name: "gutshot with overcard", hero: "Jc9c", board: "Td7h2s", draws: []Draw{DrawGutshot, DrawOvercards}, outs: 7},
		{name: "wheel gutshot", hero: "As2d", board: "3c4h9s", draws: []Draw{DrawGutshot, DrawOvercards}, outs: 7},
		{name: "backdoor flush", hero: "AhKh", board: "Qh7c2d", draws: []Draw{DrawBackdoorFlush, DrawOvercards}, outs: 6},
		{name: "combo draw", hero: "JhTh", board: "9h8c2h", draws: []Draw{DrawFlush, DrawOpenEnded}, outs: 15},
		{name: "turn flush draw", hero: "Ks9s", board: "As5s7d2c", draws: []Draw{DrawFlush}, outs: 9},
		{name: "pocket pair", hero: "QcQd", board: "8s5h2c", draws: nil, outs: 0},
		{name: "made straight", hero: "9s8d", board: "7c6h5s", draws: nil, outs: 0},
		{name: "made flush", hero: "AhKh", board: "Qh7h2h", draws: nil, outs: 0},
		{name: "preflop", hero: "AhKh", board: "", draws: nil, outs: 0},
		{name: "river", hero: "AhKh", board: "Qh7h2c3d4s", draws: nil, outs: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := DetectDraws(combo(tt.hero), board(tt.board))
			assert.Equal(t, tt.draws, info.Draws)
			assert.Equal(t, tt.outs, info.Outs)
		})
	}
}

func TestDrawInfoCombo(t *testing.T) {
	info := DetectDraws(combo("JhTh"), board("9h8c2h"))
	assert.True(t, info.Combo())
	assert.True(t, info.Has(DrawOpenEnded))
	assert.False(t, info.Has(DrawGutshot))

	info = DetectDraws(combo("AhKh"), board("Qh7h2c"))
	assert.False(t, info.Combo())
}

func TestTextureAndDrawStrings(t *testing.T) {
	assert.Equal(t, "very wet", TextureVeryWet.String())
	assert.Equal(t, "unknown", Texture(9).String())
	assert.Equal(t, "open-ended straight draw", DrawOpenEnded.String())
	assert.Equal(t, "unknown", Draw(42).String())
}
