package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/avlin/browsercraft-go/internal/model"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Printf prints data as JSON in json mode, or the formatted message otherwise
func (o *Output) Printf(data any, format string, args ...any) {
	if o.format == "json" {
		o.printJSON(data)
		return
	}
	fmt.Printf(format, args...)
}

// PrintSnapshot prints a lobby snapshot
func (o *Output) PrintSnapshot(snapshot model.LobbySnapshot) {
	if o.format == "json" {
		o.printJSON(snapshot)
		return
	}

	fmt.Printf("Players (%d):\n", len(snapshot.Players))
	for _, p := range snapshot.Players {
		fmt.Printf("  %-23s %s\n", p.Username, p.Status)
	}

	fmt.Printf("Rooms (%d):\n", len(snapshot.Rooms))
	for _, room := range snapshot.Rooms {
		fmt.Printf("  %s\n", room.Name)
		for _, m := range room.Members {
			marker := " "
			if m.IsOwner {
				marker = "*"
			}
			ready := "not ready"
			if m.Ready {
				ready = "ready"
			}
			fmt.Printf("    %s %-23s %s\n", marker, m.Username, ready)
		}
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}
