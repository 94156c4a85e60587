package scaffold

import _ "embed"

// Static template resources copied verbatim into new projects.
// README.md is the only computed file, see ReadmeContent.

//go:embed templates/Makefile
var makefileTemplate []byte

//go:embed templates/main.c
var mainTemplate []byte

//go:embed templates/gitignore
var gitignoreTemplate []byte
