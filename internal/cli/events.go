package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
)

func newEventsCmd() *cobra.Command {
	var kinds []string

	cmd := &cobra.Command{
		Use:   "events",
		Short: "Stream enforcement reports as they happen",
		Long: `Connect to the server's event stream and print each enforcement report
as it is emitted. With --output json every report is printed as one JSON line.

Use --kind to only show some report kinds, e.g. --kind switch_mismatched.

Press Ctrl+C to disconnect.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return streamEvents(ctx, kinds)
		},
	}

	cmd.Flags().StringSliceVar(&kinds, "kind", nil, "Only show these report kinds")

	return cmd
}

// sseEvent is one dispatched event from a text/event-stream body
type sseEvent struct {
	Name string
	Data string
}

// readEvents parses an event stream, calling fn for each complete event.
// Comment lines (keepalives) are skipped.
func readEvents(scanner *bufio.Scanner, fn func(sseEvent)) error {
	var (
		name string
		data []string
	)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case line == "":
			if name != "" || len(data) > 0 {
				fn(sseEvent{Name: name, Data: strings.Join(data, "\n")})
			}
			name, data = "", nil
		case strings.HasPrefix(line, ":"):
		case strings.HasPrefix(line, "event:"):
			name = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
		case strings.HasPrefix(line, "data:"):
			data = append(data, strings.TrimPrefix(strings.TrimPrefix(line, "data:"), " "))
		}
	}
	return scanner.Err()
}

func streamEvents(ctx context.Context, kinds []string) error {
	req, err := client.newRequest(http.MethodGet, "/api/v1/events", nil)
	if err != nil {
		return err
	}
	req = req.WithContext(ctx)
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")

	// No timeout for the stream
	resp, err := (&http.Client{}).Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("connection failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		var body [512]byte
		n, _ := resp.Body.Read(body[:])
		return decodeAPIError(resp.StatusCode, body[:n])
	}

	wanted := make(map[string]bool, len(kinds))
	for _, k := range kinds {
		wanted[k] = true
	}

	out := NewOutput(cfg.Output)
	err = readEvents(bufio.NewScanner(resp.Body), func(evt sseEvent) {
		switch evt.Name {
		case "connected":
			if cfg.Output != "json" {
				fmt.Printf("Connected to %s\n", cfg.ServerURL)
			}
		case "report":
			var r Report
			if err := json.Unmarshal([]byte(evt.Data), &r); err != nil {
				out.PrintError(fmt.Errorf("bad report event: %w", err))
				return
			}
			if len(wanted) > 0 && !wanted[r.Kind] {
				return
			}
			if cfg.Output == "json" {
				data, _ := json.Marshal(r)
				fmt.Println(string(data))
				return
			}
			out.printReport(r)
		}
	})
	if err != nil && ctx.Err() == nil {
		return fmt.Errorf("stream error: %w", err)
	}

	if cfg.Output != "json" {
		fmt.Println("Disconnected")
	}
	return nil
}
