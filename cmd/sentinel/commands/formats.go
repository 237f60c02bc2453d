/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: formats.go
Description: Formats command implementation for Akaylee Sentinel. Lists the recognized
input file extensions and the loader each one is dispatched to.
*/

package commands

import (
	"fmt"
	"sort"

	"github.com/kleascm/akaylee-sentinel/pkg/loader"
	"github.com/spf13/cobra"
)

// ListFormats prints the recognized input formats
func ListFormats(cmd *cobra.Command, args []string) {
	fmt.Println("📄 Recognized input formats")
	fmt.Println("===========================")
	fmt.Println()

	extensions := make([]string, 0, len(loader.Extensions))
	for ext := range loader.Extensions {
		extensions = append(extensions, ext)
	}
	sort.Strings(extensions)

	for _, ext := range extensions {
		fmt.Printf("  %-6s -> %s\n", ext, loader.Extensions[ext])
	}

	fmt.Println("\nAny other extension is rejected before partitioning.")
}
