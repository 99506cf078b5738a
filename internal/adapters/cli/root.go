package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var Version = "dev"

// client talks to a running API.
type client struct {
	base string
	hc   *http.Client
}

type problem struct {
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail"`
}

// do sends body (if any) as JSON and decodes a 2xx response into out. Problem responses become errors.
func (c *client) do(ctx context.Context, method, path string, body, out any) error {
	var rd io.Reader
	switch b := body.(type) {
	case nil:
	case json.RawMessage:
		rd = bytes.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			return err
		}
		rd = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, rd)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if rd != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		var p problem
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if json.Unmarshal(b, &p) == nil && p.Title != "" {
			if p.Detail != "" {
				return fmt.Errorf("%s (%d): %s", p.Title, resp.StatusCode, p.Detail)
			}
			return fmt.Errorf("%s (%d)", p.Title, resp.StatusCode)
		}
		return fmt.Errorf("bad status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func NewRootCmd() *cobra.Command {
	var (
		api     string
		timeout time.Duration
	)
	cl := &client{}

	root := &cobra.Command{
		Use:           "hotelctl",
		Short:         "Operate a hotel booking API: call functions, book and cancel stays, import catalogs",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cl.base = strings.TrimRight(api, "/")
			cl.hc = &http.Client{Timeout: timeout}
		},
	}

	def := os.Getenv("HOTEL_API")
	if def == "" {
		def = "http://localhost:8080"
	}
	root.PersistentFlags().StringVar(&api, "api", def, "API base URL (env HOTEL_API)")
	root.PersistentFlags().DurationVar(&timeout, "timeout", 15*time.Second, "request timeout")

	root.AddCommand(newFunctionsCmd(cl))
	root.AddCommand(newReserveCmd(cl))
	root.AddCommand(newCancelCmd(cl))
	root.AddCommand(newCatalogCmd())

	return root
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
