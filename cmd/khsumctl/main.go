package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"khsumd/pkg/types"
)

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// buildRootCmd constructs the khsumctl command tree.
func buildRootCmd() *cobra.Command {
	var addr string

	root := &cobra.Command{
		Use:           "khsumctl",
		Short:         "Client for a running khsumd server",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&addr, "addr", envOr("KHSUMCTL_ADDR", "http://127.0.0.1:8080"),
		"Base URL of the khsumd server (defaults KHSUMCTL_ADDR)")

	health := &cobra.Command{
		Use:     "health",
		Short:   "Query /api/health",
		Example: "  khsumctl health",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := &http.Client{Timeout: 10 * time.Second}
			resp, err := client.Get(addr + "/api/health")
			if err != nil {
				return err
			}
			defer resp.Body.Close()
			var h types.HealthResponse
			if err := json.NewDecoder(resp.Body).Decode(&h); err != nil {
				return fmt.Errorf("decode health response: %w", err)
			}
			fmt.Printf("status=%s model_loaded=%v tokenizer_loaded=%v\n", h.Status, h.ModelLoaded, h.TokenizerLoaded)
			return nil
		},
	}

	var maxLen, minLen int
	summarize := &cobra.Command{
		Use:     "summarize [file]",
		Short:   "Summarize Khmer text from a file or stdin",
		Example: "  khsumctl summarize article.txt --max-length 150\n  cat article.txt | khsumctl summarize -",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var text []byte
			var err error
			if len(args) == 0 || args[0] == "-" {
				text, err = io.ReadAll(cmd.InOrStdin())
			} else {
				text, err = os.ReadFile(args[0])
			}
			if err != nil {
				return err
			}
			body, err := json.Marshal(types.SummarizeRequest{
				Text:      string(text),
				MaxLength: maxLen,
				MinLength: minLen,
			})
			if err != nil {
				return err
			}
			client := &http.Client{Timeout: 5 * time.Minute}
			resp, err := client.Post(addr+"/api/summarize", "application/json", bytes.NewReader(body))
			if err != nil {
				return err
			}
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				var e types.ErrorResponse
				if err := json.NewDecoder(resp.Body).Decode(&e); err == nil && e.Error != "" {
					return fmt.Errorf("server error (%d): %s", resp.StatusCode, e.Error)
				}
				return fmt.Errorf("server error: %s", resp.Status)
			}
			var s types.SummarizeResponse
			if err := json.NewDecoder(resp.Body).Decode(&s); err != nil {
				return fmt.Errorf("decode summarize response: %w", err)
			}
			fmt.Println(s.Summary)
			return nil
		},
	}
	summarize.Flags().IntVar(&maxLen, "max-length", 0, "Maximum summary length (0=server default)")
	summarize.Flags().IntVar(&minLen, "min-length", 0, "Minimum summary length (0=server default)")

	root.AddCommand(health, summarize)
	return root
}

func main() {
	if err := buildRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
