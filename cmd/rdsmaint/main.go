package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"github.com/younsl/rdsmaint/internal/config"
	"github.com/younsl/rdsmaint/internal/models"
	"github.com/younsl/rdsmaint/internal/version"
	"github.com/younsl/rdsmaint/pkg/aws"
	"github.com/younsl/rdsmaint/pkg/formatter"
	"github.com/younsl/rdsmaint/pkg/logger"
	"github.com/younsl/rdsmaint/pkg/notify"
	"github.com/younsl/rdsmaint/pkg/utils"
)

var (
	configPath  string
	regions     []string
	channel     string
	bestEffort  bool
	dryRun      bool
	showVersion bool
)

// startScanSpinner creates and starts a spinner for the scan phase
func startScanSpinner() *spinner.Spinner {
	s := spinner.New(spinner.CharSets[9], 200*time.Millisecond)
	s.Suffix = " Scanning RDS instances for pending maintenance ..."
	s.Start()
	return s
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "rdsmaint",
		Short: "CLI tool to report pending RDS maintenance to Slack",
		Long: `rdsmaint scans RDS instances for pending maintenance actions,
classifies their urgency, and posts one message per action to a
Slack channel.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if showVersion {
				fmt.Println(version.Get())
				return nil
			}
			return run()
		},
	}

	rootCmd.Flags().BoolVarP(&showVersion, "version", "v", false, "Show version information")
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to YAML config file")
	rootCmd.Flags().StringSliceVarP(&regions, "regions", "r", nil,
		fmt.Sprintf("AWS regions to scan (comma separated, default: %s)", utils.GetDefaultRegion()))
	rootCmd.Flags().StringVar(&channel, "channel", "", "Slack channel to notify (or SLACK_CHANNEL)")
	rootCmd.Flags().BoolVar(&bestEffort, "best-effort", false,
		"Keep delivering remaining messages when one send fails")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the scan result instead of posting to Slack")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	log := logger.New(logger.DefaultConfig())
	ctx := context.Background()

	cfg, err := config.Resolve(config.Options{
		ConfigPath: configPath,
		Regions:    regions,
		Channel:    channel,
		BestEffort: bestEffort,
		DryRun:     dryRun,
	})
	if err != nil {
		log.Error().Err(err).Msg("invalid configuration")
		return err
	}

	if len(cfg.Regions) == 0 {
		cfg.Regions = []string{utils.GetDefaultRegion()}
	}

	var validRegions []string
	for _, region := range cfg.Regions {
		if utils.IsValidRegion(region) {
			validRegions = append(validRegions, region)
		} else {
			fmt.Printf("Warning: Skipping invalid region '%s'\n", region)
		}
	}
	if len(validRegions) == 0 {
		err := fmt.Errorf("no valid regions specified")
		log.Error().Err(err).Msg("nothing to scan")
		return err
	}

	fmt.Println("Starting RDS maintenance scan ...")
	scanStartTime := time.Now()
	s := startScanSpinner()

	// Regions are scanned sequentially and the run is fail-fast: the
	// first scan error aborts everything before any message is sent.
	var records []models.MaintenanceRecord
	for _, region := range validRegions {
		scanner, err := aws.NewRDSScanner(ctx, region)
		if err != nil {
			s.FinalMSG = fmt.Sprintf("✗ Scan aborted in region %s\n", region)
			s.Stop()
			log.Error().Err(err).Str("region", region).Msg("scan failed")
			return err
		}

		regionRecords, err := scanner.ScanPendingMaintenance(ctx)
		if err != nil {
			s.FinalMSG = fmt.Sprintf("✗ Scan aborted in region %s\n", region)
			s.Stop()
			log.Error().Err(err).Str("region", region).Msg("scan failed")
			return err
		}
		records = append(records, regionRecords...)
	}

	scanDuration := time.Since(scanStartTime)
	s.FinalMSG = fmt.Sprintf("✓ [%d pending actions found] RDS maintenance analyzed - Completed in %.2f seconds\n",
		len(records), scanDuration.Seconds())
	s.Stop()

	if cfg.DryRun {
		formatter.PrintMaintenanceTable(os.Stdout, records, scanStartTime, scanDuration)
		formatter.PrintMaintenanceSummary(os.Stdout, records)
		return nil
	}

	notifier := notify.NewNotifier(cfg.SlackToken, cfg.SlackChannel, cfg.BestEffort, log)
	if err := notifier.Notify(ctx, records); err != nil {
		log.Error().Err(err).Str("channel", cfg.SlackChannel).Msg("notification failed")
		return err
	}

	log.Info().
		Int("messages", len(records)).
		Str("channel", cfg.SlackChannel).
		Msg("maintenance notifications delivered")

	return nil
}
