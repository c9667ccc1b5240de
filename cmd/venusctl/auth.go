package main

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/42tr/venus/client"
)

func newRegisterCmd(opts *rootOptions) *cobra.Command {
	var username, email, password string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and keep its session",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, release, err := opts.newClient()
			if err != nil {
				return err
			}
			defer release()
			ctx, cancel := opts.callContext(cmd)
			defer cancel()

			start := time.Now()
			resp, err := c.Register(ctx, client.RegisterRequest{Username: username, Email: email, Password: password})
			if err != nil {
				return errors.Wrapf(err, "register %s", username)
			}
			log.Debug().Str("username", resp.User.Username).Dur("elapsed", time.Since(start)).Msg("register completed")
			fmt.Fprintf(cmd.OutOrStdout(), "Registered %s (id %d)\n", resp.User.Username, resp.User.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Username (required)")
	cmd.Flags().StringVar(&email, "email", "", "Email (required)")
	cmd.Flags().StringVar(&password, "password", "", "Password (required)")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func newLoginCmd(opts *rootOptions) *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and keep the session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, release, err := opts.newClient()
			if err != nil {
				return err
			}
			defer release()
			ctx, cancel := opts.callContext(cmd)
			defer cancel()

			start := time.Now()
			resp, err := c.Login(ctx, client.LoginRequest{Username: username, Password: password})
			if err != nil {
				return errors.Wrapf(err, "login %s", username)
			}
			log.Debug().Str("username", resp.User.Username).Dur("elapsed", time.Since(start)).Msg("login completed")
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", resp.User.Username)
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Username (required)")
	cmd.Flags().StringVar(&password, "password", "", "Password (required)")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func newWhoamiCmd(opts *rootOptions) *cobra.Command {
	var cached bool

	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, release, err := opts.newClient()
			if err != nil {
				return err
			}
			defer release()

			var u *client.User
			if cached {
				var ok bool
				if u, ok = c.Session().User(); !ok {
					return errors.New("not logged in")
				}
			} else {
				ctx, cancel := opts.callContext(cmd)
				defer cancel()
				if u, err = c.CurrentUser(ctx); err != nil {
					if client.IsUnauthorized(err) {
						return errors.New("not logged in or session expired; run venusctl login")
					}
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s <%s> (id %d)\n", u.Username, u.Email, u.ID)
			return nil
		},
	}

	cmd.Flags().BoolVar(&cached, "cached", false, "Print the stored user without calling the API")
	return cmd
}

func newLogoutCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session (no network call)",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, release, err := opts.newClient()
			if err != nil {
				return err
			}
			defer release()
			if err := c.Logout(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}
