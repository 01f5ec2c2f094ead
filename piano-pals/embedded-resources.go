package main

import (
	"embed"
	"io/fs"
	"path"
	"strings"
)

//go:embed assets/*
var content embed.FS

// embed paths always use forward slashes, even on windows
func readEmbeddedResourceFile(elem ...string) ([]byte, error) {
	return content.ReadFile(path.Join(append([]string{"assets"}, elem...)...))
}

func readEmbeddedResourceDir(dirPath string) ([]fs.DirEntry, error) {
	return content.ReadDir(path.Join("assets", dirPath))
}

var asciiArtCache = map[string]string{}

func getAsciiArt(fileName string) string {
	if _, ok := asciiArtCache[fileName]; !ok {
		asciiArtCache[fileName], _ = loadAsciiArt(fileName)
	}
	return asciiArtCache[fileName]
}

func loadAsciiArt(fileName string) (string, error) {
	file, err := readEmbeddedResourceFile("ascii-art", fileName)
	if err != nil {
		return "Art failed to load -- " + err.Error(), err
	}
	// \r characters mess up the lipgloss styles, such as borders
	return strings.ReplaceAll(string(file), "\r", ""), nil
}
