// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/reservation-engine/internal/client"
	"github.com/pdiddy/reservation-engine/internal/engine"
	"github.com/pdiddy/reservation-engine/internal/history"
	"github.com/pdiddy/reservation-engine/internal/markup"
	"github.com/pdiddy/reservation-engine/pkg/logger"
	"github.com/pdiddy/reservation-engine/pkg/types"
)

// errNotFound is returned under --strict when nothing qualified.
var errNotFound = errors.New("no structured reservation found")

var extractCmd = &cobra.Command{
	Use:   "extract [file]",
	Short: "Normalize the reservation in an HTML email or candidate file",
	Long: `Extract reads an HTML confirmation email (from a file, or stdin when the
file is omitted or "-"), finds its JSON-LD and microdata items, and prints the
result envelope for the requested reservation type.

With --candidates the input is instead a JSON or YAML document of the form
{jsonld: [...], microdata: [...]} holding already-parsed items.

With --remote the HTML is sent to a running reservation-engine service.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExtract,
}

func runExtract(cmd *cobra.Command, args []string) error {
	typeFlag, _ := cmd.Flags().GetString("type")
	candidatesMode, _ := cmd.Flags().GetBool("candidates")
	format, _ := cmd.Flags().GetString("format")
	record, _ := cmd.Flags().GetBool("record")
	remote, _ := cmd.Flags().GetString("remote")
	strict, _ := cmd.Flags().GetBool("strict")

	rt, ok := types.ParseReservationType(typeFlag)
	if !ok {
		return fmt.Errorf("unsupported reservation type %q: use one of %s", typeFlag, typeList())
	}
	if format != "json" && format != "yaml" {
		return fmt.Errorf("unsupported format %q: use json or yaml", format)
	}
	if candidatesMode && remote != "" {
		return fmt.Errorf("--candidates and --remote cannot be combined")
	}

	input, err := readInput(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	start := time.Now()
	var (
		res   types.Result
		count int
	)
	switch {
	case remote != "":
		res, err = extractRemote(ctx, remote, string(input), rt)
		if err != nil {
			return err
		}
	case candidatesMode:
		c, err := parseCandidates(input)
		if err != nil {
			return err
		}
		count = c.Len()
		res = engine.New(appLog).Normalize(c, rt)
	default:
		c := markup.Parse(string(input))
		count = c.Len()
		res = engine.New(appLog).Normalize(c, rt)
	}
	elapsed := time.Since(start)

	if record {
		if err := recordAttempt(ctx, history.NewAttempt("cli", rt, res, count, elapsed)); err != nil {
			appLog.Warn("recording attempt failed", logger.Error(err))
		}
	}

	if err := writeResult(cmd.OutOrStdout(), res, format); err != nil {
		return err
	}
	if strict && !res.Success {
		return errNotFound
	}
	return nil
}

func readInput(stdin io.Reader, args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", args[0], err)
	}
	return data, nil
}

// parseCandidates decodes a JSON or YAML candidates document. YAML is
// decoded generically and re-encoded as JSON so items become Nodes.
func parseCandidates(data []byte) (engine.Candidates, error) {
	var generic any
	if err := yaml.Unmarshal(data, &generic); err != nil {
		return engine.Candidates{}, fmt.Errorf("parsing candidates: %w", err)
	}
	if generic == nil {
		return engine.Candidates{}, nil
	}
	if _, ok := generic.(map[string]any); !ok {
		return engine.Candidates{}, fmt.Errorf("parsing candidates: expected a mapping with jsonld and microdata lists")
	}

	asJSON, err := json.Marshal(generic)
	if err != nil {
		return engine.Candidates{}, fmt.Errorf("converting candidates: %w", err)
	}
	var c engine.Candidates
	if err := json.Unmarshal(asJSON, &c); err != nil {
		return engine.Candidates{}, fmt.Errorf("decoding candidates: %w", err)
	}
	return c, nil
}

func extractRemote(ctx context.Context, baseURL, html string, rt types.ReservationType) (types.Result, error) {
	cc := cfg.Client
	cc.BaseURL = baseURL
	c, err := client.New(cc)
	if err != nil {
		return types.Result{}, err
	}
	return c.Extract(ctx, html, rt)
}

func recordAttempt(ctx context.Context, a history.Attempt) error {
	store, err := history.NewStore(cfg.History)
	if err != nil {
		return err
	}
	defer store.Close()
	return store.Record(ctx, a)
}

func writeResult(w io.Writer, res types.Result, format string) error {
	if format == "yaml" {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(res); err != nil {
			return fmt.Errorf("encoding YAML: %w", err)
		}
		return enc.Close()
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

func typeList() string {
	names := make([]string, 0, len(types.RequestTypes()))
	for _, rt := range types.RequestTypes() {
		names = append(names, string(rt))
	}
	return strings.Join(names, ", ")
}

func init() {
	extractCmd.Flags().StringP("type", "t", "", "reservation type: "+typeList())
	extractCmd.Flags().Bool("candidates", false, "treat input as a JSON/YAML candidates document instead of HTML")
	extractCmd.Flags().String("format", "json", "output format: json or yaml")
	extractCmd.Flags().Bool("record", false, "log the attempt to the history database")
	extractCmd.Flags().String("remote", "", "base URL of a reservation-engine service to call instead of extracting locally")
	extractCmd.Flags().Bool("strict", false, "exit non-zero when no reservation is found")
	_ = extractCmd.MarkFlagRequired("type")

	rootCmd.AddCommand(extractCmd)
}
