package main

import (
	"github.com/hyperjump/shirabe/internal/cli"
	"github.com/hyperjump/shirabe/internal/models"
)

// Run executes the scan command.
func (c *ScanCmd) Run(deps *Dependencies) error {
	query := &models.ScanQuery{Directory: c.Dir, Mode: models.Mode(c.Mode)}
	if query.Mode == "" {
		query.Mode = models.Mode(deps.Config.Scan.Mode)
	}
	if err := query.Validate(); err != nil {
		return err
	}
	units, report, err := deps.Engine.Scan(deps.Ctx, query.Directory, query.Mode)
	if err != nil {
		return err
	}
	return cli.WriteScanResults(deps.Stdout, &models.ScanResponse{Units: units, Scan: report}, cli.OutputFormat(c.Output))
}
