package stringsutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTitleFromBase(t *testing.T) {
	assert.Equal(t, "city skyline", TitleFromBase("city-skyline"))
	assert.Equal(t, "old town square", TitleFromBase("old_town_square"))
	assert.Equal(t, "mixed sep name", TitleFromBase("mixed-sep_name"))
	assert.Equal(t, "plain", TitleFromBase("plain"))
}

func TestStripExtension(t *testing.T) {
	assert.Equal(t, "photo", StripExtension("photo.png"))
	assert.Equal(t, "photo", StripExtension("photo.PNG"))
	assert.Equal(t, "archive.tar", StripExtension("archive.tar.gz"))
	assert.Equal(t, "noext", StripExtension("noext"))
	assert.Equal(t, ".hidden", StripExtension(".hidden"))
}

func TestRemoveEmptyStrings(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, RemoveEmptyStrings([]string{"", "a", "", "b", ""}))
	assert.Nil(t, RemoveEmptyStrings([]string{"", ""}))
}
