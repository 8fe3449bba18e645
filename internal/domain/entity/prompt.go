package entity

import (
	"fmt"
	"strings"
)

// PhotoStyle is the scene style used to shape a prompt
type PhotoStyle string

const (
	StylePortrait  PhotoStyle = "portrait"
	StyleCouple    PhotoStyle = "couple"
	StyleLandscape PhotoStyle = "landscape"
	StyleStillLife PhotoStyle = "stillLife"
	StyleUrban     PhotoStyle = "urban"
	StyleParty     PhotoStyle = "party"
)

// ReferenceImagesPrompt describes a request that only carries reference images
const ReferenceImagesPrompt = "Generate a polaroid-style image based on the provided reference images"

const classicTextPrompt = `Create a vintage Polaroid-style photograph with the following characteristics:
- Classic white border frame (ratio 1:1.2)
- Warm, slightly faded vintage colors with reduced saturation
- Film grain texture and slight imperfections
- Subtle light leaks or chemical processing marks
- Soft, dreamy quality typical of instant film
- Slightly overexposed or underexposed areas for authenticity
- The image should capture: {content}
- Style: nostalgic, authentic instant film aesthetic`

const classicImagePrompt = `Transform this image into an authentic vintage Polaroid photograph:
- Add classic white border frame (ratio 1:1.2)
- Apply warm, vintage color grading with reduced saturation
- Add film grain texture and subtle imperfections
- Include slight light leaks or chemical processing artifacts
- Create soft, dreamy quality of instant film
- Adjust exposure for authentic Polaroid look
- Maintain the original subject while enhancing the vintage aesthetic`

const basePromptTemplate = "4K HD vintage instant camera photograph, film aesthetic, white border frame, soft grain film texture, soft focus edges, nostalgic retro aesthetic, candid moment, vintage color palette, slightly faded colors, authentic film photography, no text, no writing, no labels, no watermarks"

// NegativePrompt lists elements the vendor should avoid
const NegativePrompt = "digital art, modern photography, oversaturated colors, perfect sharp focus, professional studio lighting, digital filters, anime, cartoon, painting, drawing, artificial, fake, unrealistic, text, writing, words, labels, watermarks, signatures, logos"

var styleTemplates = map[PhotoStyle]string{
	StylePortrait:  "vintage instant camera portrait photograph of a person, candid expression, soft natural lighting, keep facial features exact, nostalgic mood, film grain texture, white border frame, retro aesthetic, instant camera shot",
	StyleCouple:    "vintage instant camera photograph of people together, candid romantic moment, soft dreamy lighting, nostalgic atmosphere, film grain, white border frame, retro aesthetic, instant camera photography",
	StyleLandscape: "vintage instant camera landscape photograph, dreamy scenery, soft focus background, golden hour lighting, film grain texture, muted vintage colors, nostalgic mood, white border frame, instant camera aesthetic",
	StyleStillLife: "vintage instant camera photograph of objects, minimalist composition, soft lighting, film grain texture, nostalgic mood, white border frame, retro color palette, instant camera shot, candid arrangement",
	StyleUrban:     "vintage instant camera street photography, urban background, candid city moment, soft grain film texture, nostalgic atmosphere, white border frame, retro aesthetic, instant camera shot",
	StyleParty:     "vintage instant camera party photograph, retro party scene, candid fun moment, soft lighting, film grain texture, nostalgic 80s-90s vibe, white border frame, instant camera photography",
}

// styleKeywords is checked in order; the first style with a matching keyword wins
var styleKeywords = []struct {
	style    PhotoStyle
	keywords []string
}{
	{StyleCouple, []string{"couple", "two people", "together", "romantic", "boyfriend", "girlfriend", "love", "kiss", "hug", "情侣", "两人", "一起", "浪漫", "男朋友", "女朋友", "恋人", "拥抱", "亲吻"}},
	{StyleParty, []string{"party", "celebration", "birthday", "friends", "fun", "dance", "music", "club", "bar", "派对", "聚会", "生日", "朋友", "庆祝", "跳舞", "音乐"}},
	{StyleUrban, []string{"city", "street", "building", "urban", "downtown", "road", "traffic", "metro", "subway", "城市", "街道", "建筑", "市区", "地铁", "交通"}},
	{StylePortrait, []string{"person", "man", "woman", "boy", "girl", "face", "smile", "portrait", "selfie", "人", "男", "女", "脸", "笑", "肖像", "人物", "自拍"}},
	{StyleLandscape, []string{"landscape", "scenery", "mountain", "beach", "forest", "sky", "sunset", "sunrise", "nature", "ocean", "lake", "风景", "山", "海", "森林", "天空", "日落", "自然", "湖泊"}},
	{StyleStillLife, []string{"object", "thing", "food", "flower", "book", "coffee", "table", "cup", "plate", "物品", "食物", "花", "书", "咖啡", "桌子", "杯子", "盘子"}},
}

// ClassicPolaroidPrompt renders the classic template for the input type
func ClassicPolaroidPrompt(inputType InputType, content, locale string) string {
	if inputType == InputTypeImage {
		return classicImagePrompt
	}

	prompt := strings.Replace(classicTextPrompt, "{content}", content, 1)
	if locale != "" && locale != DefaultLocale {
		prompt += fmt.Sprintf("\nGenerate content appropriate for %s locale and culture.", locale)
	}
	return prompt
}

// DetectStyle picks a scene style from keywords in the text
func DetectStyle(text string) PhotoStyle {
	lower := strings.ToLower(text)
	for _, group := range styleKeywords {
		for _, keyword := range group.keywords {
			if strings.Contains(lower, keyword) {
				return group.style
			}
		}
	}
	return StylePortrait
}

// StyleTemplate returns the prompt fragment of a style, falling back to portrait
func StyleTemplate(style PhotoStyle) string {
	if tmpl, ok := styleTemplates[style]; ok {
		return tmpl
	}
	return styleTemplates[StylePortrait]
}

// BuildStylePrompt assembles the full vendor prompt for a description and style
func BuildStylePrompt(description string, style PhotoStyle) string {
	return fmt.Sprintf(
		"A %s of %s. %s. Keep original essence and details accurate. Clean image without any text or letters visible.",
		StyleTemplate(style), description, basePromptTemplate,
	)
}
