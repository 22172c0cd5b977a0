package payload

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stevennight/ai-debug-tool/internal/models"
)

func TestBuild_PlainUserOnly(t *testing.T) {
	messages := Build("", "hi", nil)

	require.Len(t, messages, 1)
	assert.Equal(t, models.RoleUser, messages[0].Role)
	assert.Equal(t, "hi", messages[0].Text)
	assert.Empty(t, messages[0].Parts)
}

func TestBuild_BlankSystemOmitted(t *testing.T) {
	messages := Build("   \n\t", "hi", nil)

	require.Len(t, messages, 1)
	assert.Equal(t, models.RoleUser, messages[0].Role)
}

func TestBuild_SystemThenUser(t *testing.T) {
	messages := Build("S", "U", nil)

	require.Len(t, messages, 2)
	assert.Equal(t, models.RoleSystem, messages[0].Role)
	assert.Equal(t, "S", messages[0].Text)
	assert.Equal(t, models.RoleUser, messages[1].Role)
	assert.Equal(t, "U", messages[1].Text)
}

func TestBuild_WithImages(t *testing.T) {
	img0 := models.PageImage{Index: 0, Data: []byte{0x01}, MIME: "image/jpeg"}
	img1 := models.PageImage{Index: 1, Data: []byte{0x02}, MIME: "image/jpeg"}

	messages := Build("S", "U", []models.PageImage{img0, img1})

	require.Len(t, messages, 2)
	assert.Equal(t, models.RoleSystem, messages[0].Role)

	user := messages[1]
	assert.Equal(t, models.RoleUser, user.Role)
	require.Len(t, user.Parts, 3)

	assert.Equal(t, "text", user.Parts[0].Type)
	assert.Equal(t, "U", user.Parts[0].Text)

	require.NotNil(t, user.Parts[1].ImageURL)
	assert.Equal(t, img0.DataURI(), user.Parts[1].ImageURL.URL)
	require.NotNil(t, user.Parts[2].ImageURL)
	assert.Equal(t, img1.DataURI(), user.Parts[2].ImageURL.URL)
}
