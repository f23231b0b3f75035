package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

var (
	createFileRegex = regexp.MustCompile(`(?i)create file\s+(\S+)\s+with\s+(.+)`)
	readFileRegex   = regexp.MustCompile(`(?i)read file\s+(\S+)`)
)

// resolveManagedFile confines filename to the assistant's files directory.
// Names carrying path separators or traversal are rejected.
func (e *Engine) resolveManagedFile(filename string) (string, bool) {
	if filename != filepath.Base(filename) || filename == "." || filename == ".." {
		return "", false
	}
	return filepath.Join(e.filesDir, filename), true
}

func (e *Engine) handleCreateFile(command string) Response {
	m := createFileRegex.FindStringSubmatch(command)
	if m == nil {
		return Response{Text: "Usage: create file <filename> with <content>"}
	}
	filename, content := m[1], m[2]

	path, ok := e.resolveManagedFile(filename)
	if !ok {
		return Response{Text: "Invalid file name."}
	}

	if err := os.MkdirAll(e.filesDir, 0o755); err != nil {
		e.log.Error("Failed to create files directory", "dir", e.filesDir, "error", err)
		return Response{Text: "Error creating file. Please try again."}
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		e.log.Error("Failed to write file", "file", path, "error", err)
		return Response{Text: "Error creating file. Please try again."}
	}

	return Response{Text: "File created successfully: " + path}
}

func (e *Engine) handleReadFile(command string) Response {
	m := readFileRegex.FindStringSubmatch(command)
	if m == nil {
		return Response{Text: "Usage: read file <filename>"}
	}
	filename := m[1]

	path, ok := e.resolveManagedFile(filename)
	if !ok {
		return Response{Text: "Invalid file name."}
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Response{Text: "File not found: " + filename}
		}
		e.log.Error("Failed to read file", "file", path, "error", err)
		return Response{Text: "Error reading file. Please try again."}
	}

	return Response{Text: fmt.Sprintf("Content of %s:\n%s", filename, content)}
}
