package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/thebyteslayer/sodium/pkg/client"
)

var (
	// Version information (set via ldflags during build)
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "sodium-cli",
	Short: "Interactive prompt for a Sodium server",
	Long: `sodium-cli reads lines of the form "<address> <verb> [args...]",
opens a one-shot TCP connection to <address> for each, and prints the
single response line.

Supported verbs: set <key> <value>, get <key>, del <key>, keys.`,
	Version: Version,
	Run: func(cmd *cobra.Command, args []string) {
		runPrompt()
	},
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"sodium-cli version %s\nCommit: %s\nBuilt: %s\n",
		Version, Commit, BuildTime,
	))
}

func runPrompt() {
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("sodium-cli> ")
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				fmt.Fprintf(os.Stderr, "Error reading input: %v\n", err)
			}
			return
		}

		line := parseLine(scanner.Text())
		if line == nil {
			continue
		}
		if line.errMsg != "" {
			fmt.Println(line.errMsg)
			continue
		}

		execute(line)
	}
}

// execute forwards one parsed line as a wire command. The set value is
// always quoted on the wire so values with spaces survive the round trip.
func execute(line *parsedLine) {
	var command string
	switch line.verb {
	case "set":
		command = fmt.Sprintf("SET %s \"%s\"", line.key, line.value)
	case "get":
		command = fmt.Sprintf("GET %s", line.key)
	case "del":
		command = fmt.Sprintf("DEL %s", line.key)
	case "keys":
		command = "KEYS"
	}

	response, err := client.Call(line.address, command)
	if err != nil {
		fmt.Println(err)
		return
	}
	if response != "" {
		fmt.Println(response)
	}
}
