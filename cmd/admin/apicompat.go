package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	_ "face2geek/docs" // registers the served API description

	"github.com/spf13/cobra"
	"github.com/swaggo/swag"
	"gopkg.in/yaml.v3"
)

var httpMethods = map[string]bool{
	"get": true, "put": true, "post": true, "delete": true,
	"patch": true, "head": true, "options": true,
}

// apiSurface maps path -> method -> response codes.
type apiSurface map[string]map[string]map[string]bool

func newAPICompatCmd() *cobra.Command {
	var basePath, revisionPath string
	cmd := &cobra.Command{
		Use:   "api-compat",
		Short: "Fail when the API drops a path, operation or response code",
		Long: `Compares a previously published swagger document against a revision.
Without --revision the document compiled into this binary is used.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// #nosec G304: paths come from CLI flags in an operator tool
			baseRaw, err := os.ReadFile(basePath)
			if err != nil {
				return fmt.Errorf("read base: %w", err)
			}
			var revRaw []byte
			if revisionPath != "" {
				// #nosec G304
				if revRaw, err = os.ReadFile(revisionPath); err != nil {
					return fmt.Errorf("read revision: %w", err)
				}
			} else {
				doc, err := swag.ReadDoc()
				if err != nil {
					return fmt.Errorf("read compiled doc: %w", err)
				}
				revRaw = []byte(doc)
			}

			base, err := parseSurface(baseRaw)
			if err != nil {
				return fmt.Errorf("parse base: %w", err)
			}
			rev, err := parseSurface(revRaw)
			if err != nil {
				return fmt.Errorf("parse revision: %w", err)
			}

			issues := breakingChanges(base, rev)
			if len(issues) > 0 {
				for _, issue := range issues {
					fmt.Fprintf(cmd.ErrOrStderr(), "- %s\n", issue)
				}
				return fmt.Errorf("%d breaking API changes", len(issues))
			}
			fmt.Fprintln(cmd.OutOrStdout(), "api compatibility check passed")
			return nil
		},
	}
	cmd.Flags().StringVar(&basePath, "base", "", "published swagger document (yaml or json)")
	cmd.Flags().StringVar(&revisionPath, "revision", "", "revised swagger document")
	_ = cmd.MarkFlagRequired("base")
	return cmd
}

// parseSurface reads the paths section of a swagger document. JSON input is
// accepted since it is valid YAML.
func parseSurface(raw []byte) (apiSurface, error) {
	var doc struct {
		Paths map[string]map[string]yaml.Node `yaml:"paths"`
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	if doc.Paths == nil {
		return nil, fmt.Errorf("missing top-level paths field")
	}

	surface := make(apiSurface, len(doc.Paths))
	for path, item := range doc.Paths {
		ops := make(map[string]map[string]bool)
		for method, node := range item {
			method = strings.ToLower(strings.TrimSpace(method))
			if !httpMethods[method] {
				continue
			}
			var op struct {
				Responses map[string]yaml.Node `yaml:"responses"`
			}
			if err := node.Decode(&op); err != nil {
				return nil, fmt.Errorf("%s %s: %w", strings.ToUpper(method), path, err)
			}
			codes := make(map[string]bool, len(op.Responses))
			for code := range op.Responses {
				codes[strings.ToLower(strings.TrimSpace(code))] = true
			}
			ops[method] = codes
		}
		if len(ops) > 0 {
			surface[path] = ops
		}
	}
	return surface, nil
}

func breakingChanges(base, rev apiSurface) []string {
	var issues []string
	for path, ops := range base {
		revOps, ok := rev[path]
		if !ok {
			issues = append(issues, "removed path: "+path)
			continue
		}
		for method, codes := range ops {
			revCodes, ok := revOps[method]
			if !ok {
				issues = append(issues, fmt.Sprintf("removed operation: %s %s", strings.ToUpper(method), path))
				continue
			}
			for code := range codes {
				if !revCodes[code] {
					issues = append(issues, fmt.Sprintf("removed response code: %s %s -> %s", strings.ToUpper(method), path, code))
				}
			}
		}
	}
	sort.Strings(issues)
	return issues
}
