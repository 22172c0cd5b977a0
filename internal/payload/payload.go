// Package payload assembles provider-standard chat message lists from
// prompt text and converted PDF pages.
package payload

import (
	"strings"

	"github.com/stevennight/ai-debug-tool/internal/models"
)

// Build emits at most one system message (omitted when systemText is blank)
// followed by exactly one user message. With images attached the user content
// becomes a part sequence: the text part first, then one image part per page
// in page order.
func Build(systemText, userText string, images []models.PageImage) []models.ChatMessage {
	messages := make([]models.ChatMessage, 0, 2)

	if strings.TrimSpace(systemText) != "" {
		messages = append(messages, models.ChatMessage{
			Role: models.RoleSystem,
			Text: systemText,
		})
	}

	if len(images) == 0 {
		return append(messages, models.ChatMessage{
			Role: models.RoleUser,
			Text: userText,
		})
	}

	parts := make([]models.ContentPart, 0, len(images)+1)
	parts = append(parts, models.TextPart(userText))
	for _, img := range images {
		parts = append(parts, models.ImagePart(img.DataURI()))
	}
	return append(messages, models.ChatMessage{
		Role:  models.RoleUser,
		Parts: parts,
	})
}
