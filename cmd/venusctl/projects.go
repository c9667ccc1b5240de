package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/42tr/venus/client"
)

func newProjectsCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "Manage drawing projects",
	}
	cmd.AddCommand(newListProjectsCmd(opts))
	cmd.AddCommand(newGetProjectCmd(opts))
	cmd.AddCommand(newCreateProjectCmd(opts))
	cmd.AddCommand(newUpdateProjectCmd(opts))
	cmd.AddCommand(newDeleteProjectCmd(opts))
	return cmd
}

// readContent returns scene JSON from --content or --content-file, or nil
// when neither is set.
func readContent(inline, path string) (json.RawMessage, error) {
	if inline != "" && path != "" {
		return nil, errors.New("use either --content or --content-file, not both")
	}
	raw := []byte(inline)
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrap(err, "read content file")
		}
		raw = b
	}
	if len(raw) == 0 {
		return nil, nil
	}
	if !json.Valid(raw) {
		return nil, errors.New("content is not valid JSON")
	}
	return json.RawMessage(raw), nil
}

func newListProjectsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, release, err := opts.newClient()
			if err != nil {
				return err
			}
			defer release()
			ctx, cancel := opts.callContext(cmd)
			defer cancel()

			projects, err := c.ListProjects(ctx)
			if err != nil {
				return err
			}
			log.Debug().Int("count", len(projects)).Msg("list projects completed")

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME")
			for _, p := range projects {
				fmt.Fprintf(tw, "%s\t%s\n", p.ID, p.Name)
			}
			return tw.Flush()
		},
	}
}

func newGetProjectCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get <project-id>",
		Short: "Print a project with its scene as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, release, err := opts.newClient()
			if err != nil {
				return err
			}
			defer release()
			ctx, cancel := opts.callContext(cmd)
			defer cancel()

			p, err := c.GetProject(ctx, args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), p)
		},
	}
}

func newCreateProjectCmd(opts *rootOptions) *cobra.Command {
	var name, content, contentFile string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readContent(content, contentFile)
			if err != nil {
				return err
			}
			c, release, err := opts.newClient()
			if err != nil {
				return err
			}
			defer release()
			ctx, cancel := opts.callContext(cmd)
			defer cancel()

			p, err := c.CreateProject(ctx, client.CreateProjectRequest{Name: name, Content: raw})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Project created: %s - %s\n", p.ID, p.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Project name (required)")
	cmd.Flags().StringVar(&content, "content", "", "Initial scene JSON (optional)")
	cmd.Flags().StringVar(&contentFile, "content-file", "", "Read the initial scene from a file (optional)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newUpdateProjectCmd(opts *rootOptions) *cobra.Command {
	var name, content, contentFile string

	cmd := &cobra.Command{
		Use:   "update <project-id>",
		Short: "Replace a project's scene, optionally renaming it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readContent(content, contentFile)
			if err != nil {
				return err
			}
			// The scene is replaced as a whole, so there is no partial update.
			if raw == nil {
				return errors.New("one of --content or --content-file is required")
			}
			c, release, err := opts.newClient()
			if err != nil {
				return err
			}
			defer release()
			ctx, cancel := opts.callContext(cmd)
			defer cancel()

			resp, err := c.UpdateProject(ctx, args[0], client.UpdateProjectRequest{Name: name, Content: raw})
			if err != nil {
				return err
			}
			status := resp.Status
			if status == "" {
				status = "ok"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Project updated: %s (%s)\n", args[0], status)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New project name (optional)")
	cmd.Flags().StringVar(&content, "content", "", "Scene JSON")
	cmd.Flags().StringVar(&contentFile, "content-file", "", "Read the scene from a file")

	return cmd
}

func newDeleteProjectCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <project-id>",
		Short: "Delete a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, release, err := opts.newClient()
			if err != nil {
				return err
			}
			defer release()
			ctx, cancel := opts.callContext(cmd)
			defer cancel()

			if err := c.DeleteProject(ctx, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Project deleted: %s\n", args[0])
			return nil
		},
	}
}
