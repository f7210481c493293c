package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/synapt/synapt/internal/server"
)

// serveCmd is built eagerly so the root command can share its flags.
var serveCmd = newServeCmd()

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP question server",
		RunE:  runServe,
	}
	f := cmd.Flags()
	f.StringP("addr", "a", ":7000", "HTTP listen address")
	f.StringSlice("cors-origins", []string{"*"}, "Allowed CORS origins (repeatable, * allows any)")
	f.Int64("max-body-bytes", 1<<20, "Maximum request body size")
	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	v := viperForCmd(cmd)
	if err := setupLogging(cmd, v); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc, closeRepo, err := newService(ctx, v, "question-gen")
	if err != nil {
		return fmt.Errorf("create question service: %w", err)
	}
	defer closeRepo()

	opts := server.DefaultOptions()
	opts.AllowedOrigins = v.GetStringSlice("cors-origins")
	opts.MaxBodyBytes = v.GetInt64("max-body-bytes")

	addr := v.GetString("addr")
	logrus.WithFields(logrus.Fields{
		"addr":  addr,
		"model": svc.ModelID(),
		"cors":  opts.AllowedOrigins,
	}).Info("serving questions")

	return server.Run(ctx, addr, server.New(svc, opts), opts)
}
