package main

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/42tr/venus/client"
)

func newImagesCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "images",
		Short: "Upload and manage images",
	}
	cmd.AddCommand(newUploadImageCmd(opts))
	cmd.AddCommand(newListImagesCmd(opts))
	cmd.AddCommand(newDeleteImageCmd(opts))
	cmd.AddCommand(newImageURLCmd(opts))
	return cmd
}

func newUploadImageCmd(opts *rootOptions) *cobra.Command {
	var projectID string

	cmd := &cobra.Command{
		Use:   "upload <file>",
		Short: "Upload an image, optionally attached to a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer func() { _ = f.Close() }()

			c, release, err := opts.newClient()
			if err != nil {
				return err
			}
			defer release()
			ctx, cancel := opts.callContext(cmd)
			defer cancel()

			img, err := c.UploadImage(ctx, client.ImageUpload{
				Filename:    filepath.Base(args[0]),
				ContentType: mime.TypeByExtension(filepath.Ext(args[0])),
				Content:     f,
				ProjectID:   projectID,
			})
			if err != nil {
				return err
			}
			log.Debug().Str("image_id", img.ID).Int64("size", img.Size).Msg("upload completed")
			fmt.Fprintf(cmd.OutOrStdout(), "Image uploaded: %s\n%s\n", img.ID, c.ImageURL(img.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&projectID, "project-id", "", "Attach the image to this project (optional)")
	return cmd
}

func newListImagesCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your uploaded images",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, release, err := opts.newClient()
			if err != nil {
				return err
			}
			defer release()
			ctx, cancel := opts.callContext(cmd)
			defer cancel()

			images, err := c.ListImages(ctx)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tTYPE\tSIZE")
			for _, img := range images {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n", img.ID, img.OriginalName, img.MimeType, img.Size)
			}
			return tw.Flush()
		},
	}
}

func newDeleteImageCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <image-id>",
		Short: "Delete an image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, release, err := opts.newClient()
			if err != nil {
				return err
			}
			defer release()
			ctx, cancel := opts.callContext(cmd)
			defer cancel()

			if err := c.DeleteImage(ctx, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Image deleted: %s\n", args[0])
			return nil
		},
	}
}

func newImageURLCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "url <image-id>",
		Short: "Print the direct URL of an image (no network call)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ep, err := opts.endpoints()
			if err != nil {
				return err
			}
			c, err := client.New(ep)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), c.ImageURL(args[0]))
			return nil
		},
	}
}
