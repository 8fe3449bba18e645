package entity

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectStyle(t *testing.T) {
	testCases := []struct {
		text     string
		expected PhotoStyle
	}{
		{"a cup of coffee on the table", StyleStillLife},
		{"sunset over the mountain", StyleLandscape},
		{"busy city street at night", StyleUrban},
		{"birthday party with friends", StyleParty},
		{"a couple walking on the beach", StyleCouple},
		{"a woman smiling", StylePortrait},
		{"海边的日落", StyleLandscape},
		{"Romantic Dinner", StyleCouple},
		{"", StylePortrait},
		{"zzz", StylePortrait},
	}

	for _, tc := range testCases {
		t.Run(tc.text, func(t *testing.T) {
			assert.Equal(t, tc.expected, DetectStyle(tc.text))
		})
	}
}

func TestClassicPolaroidPrompt(t *testing.T) {
	t.Run("Text substitutes content", func(t *testing.T) {
		prompt := ClassicPolaroidPrompt(InputTypeText, "a red bicycle", "en")

		assert.Contains(t, prompt, "The image should capture: a red bicycle")
		assert.NotContains(t, prompt, "{content}")
		assert.NotContains(t, prompt, "locale and culture")
	})

	t.Run("Text adds locale hint", func(t *testing.T) {
		prompt := ClassicPolaroidPrompt(InputTypeText, "a red bicycle", "ja")

		assert.True(t, strings.HasSuffix(prompt, "\nGenerate content appropriate for ja locale and culture."))
	})

	t.Run("Image uses transform template", func(t *testing.T) {
		prompt := ClassicPolaroidPrompt(InputTypeImage, "ignored", "ja")

		assert.True(t, strings.HasPrefix(prompt, "Transform this image"))
		assert.NotContains(t, prompt, "ignored")
	})
}

func TestBuildStylePrompt(t *testing.T) {
	prompt := BuildStylePrompt("two friends laughing", StyleParty)

	assert.True(t, strings.HasPrefix(prompt, "A vintage instant camera party photograph"))
	assert.Contains(t, prompt, " of two friends laughing. 4K HD vintage instant camera photograph")
	assert.True(t, strings.HasSuffix(prompt, "Clean image without any text or letters visible."))

	assert.Equal(t, StyleTemplate(StylePortrait), StyleTemplate("unknown"))
}
