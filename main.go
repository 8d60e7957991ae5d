package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/TeddyRux/marathon/app"
	"github.com/TeddyRux/marathon/config"
	"github.com/TeddyRux/marathon/domain"
	"github.com/TeddyRux/marathon/pkg/logger"
	"github.com/TeddyRux/marathon/service"
)

var (
	configName string
	configPath string
)

func main() {
	root := &cobra.Command{
		Use:          "marathon",
		Short:        "Offer-to-placement compiler for pod workloads",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&configName, "config-name", "", "config file name without extension")
	root.PersistentFlags().StringVar(&configPath, "config-path", "", "extra config search path")

	root.AddCommand(serveCmd(), compileCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the placement compiler REST service",
		RunE: func(cmd *cobra.Command, args []string) error {
			restApp, err := app.NewRestApp(configName, configPath)
			if err != nil {
				return err
			}
			restApp.Run()
			return nil
		},
	}
}

func compileCmd() *cobra.Command {
	var podFile, offerFile string
	cmd := &cobra.Command{
		Use:   "compile",
		Short: "Compile one pod against one offer and print the placement",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.InitConfig(configName, configPath)
			if err != nil {
				return err
			}
			logger.InitLogger(cfg.Logging.Level, cfg.Logging.Console)

			var pod domain.PodSpec
			if err := readJSONFile(podFile, &pod); err != nil {
				return fmt.Errorf("read pod spec: %w", err)
			}
			var offer domain.ResourceOffer
			if err := readJSONFile(offerFile, &offer); err != nil {
				return fmt.Errorf("read offer: %w", err)
			}

			svc, err := service.NewService(service.Params{Config: cfg})
			if err != nil {
				return err
			}

			result, matched := svc.PlaceWorkload(context.Background(), &pod, &offer)
			if !matched {
				fmt.Fprintln(cmd.OutOrStdout(), "no match")
				return nil
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		},
	}
	cmd.Flags().StringVar(&podFile, "pod", "pod.json", "pod spec JSON file")
	cmd.Flags().StringVar(&offerFile, "offer", "offer.json", "resource offer JSON file")
	return cmd
}

func readJSONFile(path string, dst any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dst)
}
