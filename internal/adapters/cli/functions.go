package cli

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"hotel_booking/internal/adapters/functions"
)

func newFunctionsCmd(cl *client) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "functions",
		Short: "List and call the named functions exposed by the API",
	}
	cmd.AddCommand(newFunctionsListCmd(cl))
	cmd.AddCommand(newFunctionsCallCmd(cl))
	return cmd
}

func newFunctionsListCmd(cl *client) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List function names, parameters and descriptions",
		RunE: func(cmd *cobra.Command, args []string) error {
			var defs []functions.Definition
			if err := cl.do(cmd.Context(), "GET", "/v1/functions", nil, &defs); err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, d := range defs {
				ps := make([]string, 0, len(d.Parameters))
				for _, p := range d.Parameters {
					n := p.Name
					if !p.Required {
						n += "?"
					}
					ps = append(ps, n)
				}
				fmt.Fprintf(tw, "%s\t(%s)\t%s\n", d.Name, strings.Join(ps, ", "), d.Description)
			}
			return tw.Flush()
		},
	}
}

func newFunctionsCallCmd(cl *client) *cobra.Command {
	var rawArgs string

	c := &cobra.Command{
		Use:   "call <name>",
		Short: "Call one function with a JSON argument object",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !json.Valid([]byte(rawArgs)) {
				return fmt.Errorf("invalid --args: not a JSON document")
			}
			var out struct {
				Result json.RawMessage `json:"result"`
			}
			path := "/v1/functions/" + url.PathEscape(args[0])
			if err := cl.do(cmd.Context(), "POST", path, json.RawMessage(rawArgs), &out); err != nil {
				return err
			}
			var v any
			if err := json.Unmarshal(out.Result, &v); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), v)
		},
	}
	c.Flags().StringVar(&rawArgs, "args", "{}", "JSON argument object, e.g. '{\"city\":\"Istanbul\"}'")
	return c
}
