package models

import "github.com/bytedance/sonic"

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ContentPart is one element of a multimodal user message: either a text
// part or an image part referencing a data URI.
type ContentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *ImageURL `json:"image_url,omitempty"`
}

type ImageURL struct {
	URL string `json:"url"`
}

func TextPart(text string) ContentPart {
	return ContentPart{Type: "text", Text: text}
}

func ImagePart(dataURI string) ContentPart {
	return ContentPart{Type: "image_url", ImageURL: &ImageURL{URL: dataURI}}
}

// ChatMessage carries either plain string content or a sequence of content
// parts. Parts take precedence when non-empty; system messages are always
// plain text.
type ChatMessage struct {
	Role  Role
	Text  string
	Parts []ContentPart
}

type wireMessage struct {
	Role    Role `json:"role"`
	Content any  `json:"content"`
}

func (m ChatMessage) MarshalJSON() ([]byte, error) {
	var content any = m.Text
	if len(m.Parts) > 0 {
		content = m.Parts
	}
	return sonic.Marshal(wireMessage{Role: m.Role, Content: content})
}
