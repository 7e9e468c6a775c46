package renderapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsURL(t *testing.T) {
	testCases := []struct {
		input    string
		expected bool
	}{
		{"https://example.com", true},
		{"http://example.com/a/b.png?x=1", true},
		{"ftp://example.com", false},
		{"not-a-url", false},
		{"", false},
		{"https://", false},
		{"//example.com", false},
		{"mailto:someone@example.com", false},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			assert.EqualValues(t, tc.expected, IsURL(tc.input), "IsURL(%q)", tc.input)
		})
	}
}

func TestMapURLFields(t *testing.T) {
	testCases := []struct {
		name     string
		declared []ModificationField
		input    map[string]any
		expected map[string]any
		moves    map[string]string
	}{
		{
			name:     "url moved to image-like field",
			declared: []ModificationField{{Key: "productImage", Description: "product photo"}},
			input:    map[string]any{"img": "https://x.com/a.jpg"},
			expected: map[string]any{"productImage": "https://x.com/a.jpg"},
			moves:    map[string]string{"img": "productImage"},
		},
		{
			name:     "no url values pass through",
			declared: []ModificationField{{Key: "productImage", Description: "product photo"}},
			input:    map[string]any{"title": "Hello", "count": float64(3)},
			expected: map[string]any{"title": "Hello", "count": float64(3)},
			moves:    map[string]string{},
		},
		{
			name:     "value already on matching key stays put",
			declared: []ModificationField{{Key: "imageUrl", Description: "main visual"}},
			input:    map[string]any{"imageUrl": "https://x.com/a.jpg"},
			expected: map[string]any{"imageUrl": "https://x.com/a.jpg"},
			moves:    map[string]string{},
		},
		{
			name:     "non image fields left alone",
			declared: []ModificationField{{Key: "headline", Description: "main text"}},
			input:    map[string]any{"link": "https://x.com/a.jpg"},
			expected: map[string]any{"link": "https://x.com/a.jpg"},
			moves:    map[string]string{},
		},
		{
			name: "description match when key is opaque",
			declared: []ModificationField{
				{Key: "field_12", Description: "background picture of the banner"},
			},
			input:    map[string]any{"img": "https://x.com/bg.png"},
			expected: map[string]any{"field_12": "https://x.com/bg.png"},
			moves:    map[string]string{"img": "field_12"},
		},
		{
			name: "populated target not clobbered",
			declared: []ModificationField{
				{Key: "photo", Description: "portrait"},
			},
			input: map[string]any{
				"photo": "https://x.com/first.jpg",
				"extra": "https://x.com/second.jpg",
			},
			expected: map[string]any{
				"photo": "https://x.com/first.jpg",
				"extra": "https://x.com/second.jpg",
			},
			moves: map[string]string{},
		},
		{
			name: "helpText drives the match",
			declared: []ModificationField{
				{ID: "slot_a", HelpText: "drop the media here"},
			},
			input:    map[string]any{"asset": "https://x.com/v.mp4"},
			expected: map[string]any{"slot_a": "https://x.com/v.mp4"},
			moves:    map[string]string{"asset": "slot_a"},
		},
		{
			name:     "mixed url and text inputs",
			declared: []ModificationField{{Key: "heroImage", Description: "hero"}, {Key: "headline"}},
			input: map[string]any{
				"headline": "Big Sale",
				"visual":   "https://x.com/hero.jpg",
			},
			expected: map[string]any{
				"headline":  "Big Sale",
				"heroImage": "https://x.com/hero.jpg",
			},
			moves: map[string]string{"visual": "heroImage"},
		},
		{
			name: "tokened input key maps onto first image slot",
			declared: []ModificationField{
				{Key: "mainImage", Description: "primary visual"},
				{Key: "logoImage", Description: "brand logo"},
			},
			input:    map[string]any{"photoUrl": "https://x.com/p.jpg"},
			expected: map[string]any{"mainImage": "https://x.com/p.jpg"},
			moves:    map[string]string{"photoUrl": "mainImage"},
		},
		{
			name: "ambiguous fallback declined with two vacant slots",
			declared: []ModificationField{
				{Key: "mainImage", Description: "primary visual"},
				{Key: "logoImage", Description: "brand logo"},
			},
			input:    map[string]any{"attachment": "https://x.com/p.jpg"},
			expected: map[string]any{"attachment": "https://x.com/p.jpg"},
			moves:    map[string]string{},
		},
		{
			name:     "no declared image slot leaves url unmapped",
			declared: []ModificationField{{Key: "headline", Description: "text"}, {Key: "subtitle", Description: "text"}},
			input:    map[string]any{"thing": "https://x.com/a.jpg"},
			expected: map[string]any{"thing": "https://x.com/a.jpg"},
			moves:    map[string]string{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mapped, moves := mapURLFields(tc.declared, tc.input)
			assert.EqualValues(t, tc.expected, mapped)
			assert.EqualValues(t, tc.moves, moves)
		})
	}
}

func TestMapURLFieldsDoesNotMutateInput(t *testing.T) {
	declared := []ModificationField{{Key: "image", Description: "visual"}}
	input := map[string]any{"img": "https://x.com/a.jpg"}
	mapped, _ := mapURLFields(declared, input)

	assert.EqualValues(t, map[string]any{"img": "https://x.com/a.jpg"}, input)
	assert.EqualValues(t, map[string]any{"image": "https://x.com/a.jpg"}, mapped)
}
