// Copyright (c) 2026 RPKIDeck All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"context"
	"fmt"
	"net/netip"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/rpkideck/rpki-tree-explorer/src/internal/rpki/tree"
	"github.com/rpkideck/rpki-tree-explorer/src/logger"
)

var (
	archiveFile string
	typeFilter  string
)

// archiveEnvVar names the environment variable consulted when the
// --archive flag is not given.
const archiveEnvVar = "RPKI_TREE_ARCHIVE"

// Execute runs the root command with its subcommands, returning any error
// that occurs during execution. Arguments default to os.Args; an explicit
// args list overrides them, which is how tests drive the commands.
func Execute(ctx context.Context, version string, log logger.Logger, args ...string) error {
	rootCmd := &cobra.Command{
		Use:          "rpki-tree-explorer",
		Short:        "RPKI certificate tree explorer",
		Version:      version,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&archiveFile, "archive", "a", "",
		fmt.Sprintf("archive snapshot file, NDJSON optionally gzipped (default: $%s)", archiveEnvVar))
	rootCmd.PersistentFlags().StringVarP(&typeFilter, "type", "t", "all",
		"filter results by record type: all, ca_cert, roa")

	rootCmd.AddCommand(
		rootsCmd(log),
		pathCmd(log),
		searchCmd(log),
		infoCmd(log),
	)

	if len(args) > 0 {
		rootCmd.SetArgs(args)
	}
	return rootCmd.ExecuteContext(ctx)
}

// loadTree builds the tree from the configured archive snapshot.
func loadTree(log logger.Logger) (*tree.Tree, error) {
	path := archiveFile
	if path == "" {
		path = os.Getenv(archiveEnvVar)
	}
	if path == "" {
		return nil, fmt.Errorf("no archive given: pass --archive or set $%s", archiveEnvVar)
	}
	return tree.Build(path, log)
}

// parseFilter validates the --type flag.
func parseFilter() (tree.Filter, error) {
	switch f := tree.Filter(typeFilter); f {
	case tree.FilterAll, tree.FilterCACert, tree.FilterROA:
		return f, nil
	default:
		return "", fmt.Errorf("invalid --type %q: want all, ca_cert or roa", typeFilter)
	}
}

// rootsCmd lists the trust anchors, one root per TAL.
func rootsCmd(log logger.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "roots",
		Short: "List trust anchor roots by TAL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := loadTree(log)
			if err != nil {
				return err
			}

			roots := t.RootsByTAL()
			tals := make([]string, 0, len(roots))
			for tal := range roots {
				tals = append(tals, tal)
			}
			sort.Strings(tals)

			skis := make([]string, 0, len(tals))
			for _, tal := range tals {
				log.Printf("%s: %s", tal, roots[tal])
				skis = append(skis, roots[tal])
			}
			log.Println(t.RenderTable(skis))

			printStats(log, t)
			return nil
		},
	}
}

// pathCmd renders the path from a node up to its trust anchor.
func pathCmd(log logger.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "path SKI",
		Short: "Show the path from a node to its root",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := loadTree(log)
			if err != nil {
				return err
			}

			path, err := t.PathToRoot(args[0])
			if err != nil {
				return err
			}
			if len(path) == 0 {
				return fmt.Errorf("unknown SKI %s", args[0])
			}
			log.Println(t.RenderPathTree(path))
			return nil
		},
	}
}

// searchCmd searches the per-node resource indices for a prefix or an ASN.
// The query form is auto-detected: anything parseable as a CIDR prefix is a
// prefix search, anything parseable as "AS<n>" or a plain integer is an ASN
// search.
func searchCmd(log logger.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "search QUERY",
		Short: "Find certificates covering a prefix or ASN",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := parseFilter()
			if err != nil {
				return err
			}
			t, err := loadTree(log)
			if err != nil {
				return err
			}

			var matches []string
			query := strings.TrimSpace(args[0])
			if pfx, perr := netip.ParsePrefix(query); perr == nil {
				matches = t.SearchPrefix(pfx, filter)
			} else if asn, aerr := tree.ParseASN(query); aerr == nil {
				matches = t.SearchASN(asn, filter)
			} else {
				return fmt.Errorf("query %q is neither a CIDR prefix nor an ASN", query)
			}

			log.Println(t.RenderTable(matches))
			return nil
		},
	}
}

// infoCmd shows one node in detail.
func infoCmd(log logger.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "info SKI",
		Short: "Show details for a single node",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := loadTree(log)
			if err != nil {
				return err
			}

			ski := args[0]
			rec, ok := t.DataOf(ski)
			if !ok {
				return fmt.Errorf("unknown SKI %s", ski)
			}

			log.Printf("SKI:    %s", ski)
			log.Printf("Kind:   %s", rec.Kind)
			if rec.IsRoot() {
				log.Printf("TAL:    %s", strings.ToUpper(rec.TAL))
			}
			if parent, ok := t.ParentOf(ski); ok && parent != "" {
				log.Printf("Parent: %s", parent)
			}
			if children, ok := t.ChildrenOf(ski); ok {
				log.Printf("Children: %d", len(children))
			}
			if url, ok := t.URLFor(ski); ok {
				log.Printf("URL:    %s", url)
			}
			if domain, ok := t.CADomainOf(ski); ok {
				log.Printf("CA domain: %s", domain)
			}
			if end, ok := t.IsEndNode(ski); ok {
				log.Printf("End node: %t", end)
			}
			if issued, ok := t.HasIssuedROAs(ski); ok {
				log.Printf("Has issued ROAs: %t", issued)
			}
			log.Println(t.RenderTable([]string{ski}))
			return nil
		},
	}
}

// printStats reports tree-wide counts with thousands separators.
func printStats(log logger.Logger, t *tree.Tree) {
	p := message.NewPrinter(language.English)
	s := t.Stats()
	log.Println(p.Sprintf("%d nodes (%d CA certificates, %d ROAs), %d roots, %d indexed",
		s.Nodes, s.CACerts, s.ROAs, s.Roots, s.Indexed))
}
