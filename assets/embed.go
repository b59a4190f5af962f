package assets

import (
	"embed"
	"io/fs"
)

//go:embed answers.txt
var FS embed.FS

// DictionaryName is the embedded default word list.
const DictionaryName = "answers.txt"

// Dictionary opens the embedded default word list.
func Dictionary() (fs.File, error) {
	return FS.Open(DictionaryName)
}
