// Command ragforge crawls documentation sites and turns them into
// RAG-ready Markdown chunks.
package main

import cmd "github.com/dociq/ragforge/internal/cli"

func main() {
	cmd.Execute()
}
