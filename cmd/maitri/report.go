package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/easeaico/maitri/internal/config"
	"github.com/easeaico/maitri/internal/report"
)

var reportCmd = &cobra.Command{
	Use:   "report <astronaut_id>",
	Short: "Print the crisis report for an astronaut as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runReport,
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfigWith(config.Config.ValidateStore)
	if err != nil {
		return err
	}

	ctx := context.Background()
	d, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer d.close()

	rep, err := d.reporter.CrisisReport(ctx, args[0])
	if errors.Is(err, report.ErrUserNotFound) {
		return fmt.Errorf("astronaut %s not found", args[0])
	}
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}
