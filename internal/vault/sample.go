package vault

import (
	"fmt"

	"github.com/nikbrunner/linkvault/internal/model"
)

func pexels(photoID int) *string {
	u := fmt.Sprintf("https://images.pexels.com/photos/%d/pexels-photo-%d.jpeg?auto=compress&cs=tinysrgb&w=600", photoID, photoID)
	return &u
}

// SampleBookmarks returns the starter collection added by SeedIfEmpty:
// a few AI tools and developer sites followed by web icon sets and UI kits.
func SampleBookmarks() []model.BookmarkInput {
	return []model.BookmarkInput{
		{Name: "OpenAI", URL: "https://openai.com", Category: model.CategoryAI,
			Description: "Leading AI research lab creating powerful language models and tools.", ThumbnailURL: pexels(1519088)},
		{Name: "Google Bard", URL: "https://bard.google.com", Category: model.CategoryAI,
			Description: "Google's experimental conversational AI service powered by LaMDA.", ThumbnailURL: pexels(2599244)},
		{Name: "Hugging Face", URL: "https://huggingface.co", Category: model.CategoryAI,
			Description: "Community platform for sharing machine learning models and datasets.", ThumbnailURL: pexels(2599245)},
		{Name: "Anthropic Claude", URL: "https://claude.ai", Category: model.CategoryAI,
			Description: "Advanced AI assistant focused on being helpful, harmless, and honest.", ThumbnailURL: pexels(8294554)},
		{Name: "Instagram", URL: "https://instagram.com", Category: model.CategoryOthers,
			Description: "Photo and video sharing social networking service owned by Meta Platforms.", ThumbnailURL: pexels(607812)},
		{Name: "GitHub", URL: "https://github.com", Category: model.CategoryHacks,
			Description: "World's leading software development platform using Git version control.", ThumbnailURL: pexels(11035386)},
		{Name: "Stack Overflow", URL: "https://stackoverflow.com", Category: model.CategoryHacks,
			Description: "Community for developers to learn, share knowledge, and build careers.", ThumbnailURL: pexels(169573)},
		{Name: "CodePen", URL: "https://codepen.io", Category: model.CategoryHacks,
			Description: "Social development environment for front-end designers and developers.", ThumbnailURL: pexels(4709289)},
		{Name: "Replit", URL: "https://replit.com", Category: model.CategoryHacks,
			Description: "Collaborative browser-based IDE supporting 50+ programming languages.", ThumbnailURL: pexels(270348)},

		// icon sets
		{Name: "Noticons", URL: "https://www.noticons.com/", Category: model.CategoryWeb,
			Description: "Beautiful icon collection for web design", ThumbnailURL: pexels(196644)},
		{Name: "FLATICON", URL: "https://www.flaticon.com/", Category: model.CategoryWeb,
			Description: "Free vector icons and stickers", ThumbnailURL: pexels(5473955)},
		{Name: "PHOSPHOR", URL: "https://phosphoricons.com/", Category: model.CategoryWeb,
			Description: "Flexible icon family for interfaces", ThumbnailURL: pexels(5474295)},
		{Name: "THE NOUN PROJECT", URL: "https://getcustomblocks.com/", Category: model.CategoryWeb,
			Description: "Custom blocks for designing websites", ThumbnailURL: pexels(5935794)},
		{Name: "SUPER", URL: "https://super.so/icons", Category: model.CategoryWeb,
			Description: "Super icons collection for websites", ThumbnailURL: pexels(5926389)},
		{Name: "SIMPLE", URL: "https://notionicons.simple.ink/", Category: model.CategoryWeb,
			Description: "Simple icons for Notion pages", ThumbnailURL: pexels(5926382)},
		{Name: "FEATHER ICONS", URL: "https://feathericons.com/", Category: model.CategoryWeb,
			Description: "Beautiful, customizable icons", ThumbnailURL: pexels(5926395)},

		// UI kits
		{Name: "Chakra UI", URL: "https://chakra-ui.com/", Category: model.CategoryWeb,
			Description: "Simple, modular component library", ThumbnailURL: pexels(11035380)},
		{Name: "Daisy UI", URL: "https://daisyui.com/", Category: model.CategoryWeb,
			Description: "Tailwind CSS component library", ThumbnailURL: pexels(11035471)},
		{Name: "Mantine", URL: "https://mantine.dev/", Category: model.CategoryWeb,
			Description: "React components and hooks library", ThumbnailURL: pexels(11035516)},
		{Name: "Headless UI", URL: "https://headlessui.com/", Category: model.CategoryWeb,
			Description: "Unstyled UI components for React", ThumbnailURL: pexels(11035381)},
		{Name: "Hero UI", URL: "https://www.heroui.com/", Category: model.CategoryWeb,
			Description: "Customizable UI component library", ThumbnailURL: pexels(11035382)},
		{Name: "UI Shadcn", URL: "https://ui.shadcn.com/", Category: model.CategoryWeb,
			Description: "Shadcn beautiful UI components", ThumbnailURL: pexels(11035384)},
		{Name: "Material UI", URL: "https://mui.com/material-ui/getting-started/", Category: model.CategoryWeb,
			Description: "React components for faster development", ThumbnailURL: pexels(11035385)},
		{Name: "Universe.io", URL: "https://universe.io/elements", Category: model.CategoryWeb,
			Description: "UI elements for creative websites", ThumbnailURL: pexels(11035383)},
	}
}
