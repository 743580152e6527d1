package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/shenikar/rescue_dashboard/internal/models"
	"github.com/shenikar/rescue_dashboard/internal/service"
	"github.com/spf13/cobra"
)

func healthCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check backend reachability",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !a.newGateway().Health(cmd.Context()) {
				fmt.Fprintln(cmd.OutOrStdout(), "backend: down")
				return fmt.Errorf("backend %s is unreachable", a.cfg.APIURL)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "backend: up")
			return nil
		},
	}
}

func chatCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "chat <message>",
		Short: "Ask the assistant a question",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			answer, err := service.NewAnalysisService(a.newGateway(), a.log).Chat(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), answer)
			return nil
		},
	}
}

func queryCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "query <text>",
		Short: "Semantic search over incidents",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results, err := service.NewAnalysisService(a.newGateway(), a.log).Query(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), results)
		},
	}
}

func socialCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "social <post text>",
		Short: "Analyze a social media post",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			analysis, err := service.NewAnalysisService(a.newGateway(), a.log).AnalyzeSocialPost(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), analysis)
		},
	}
}

func satelliteCommand(a *app) *cobra.Command {
	req := models.SatelliteRequest{}
	var analysisType string

	cmd := &cobra.Command{
		Use:   "satellite",
		Short: "Analyze satellite imagery around a point",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req.AnalysisType = models.AnalysisType(analysisType)
			analysis, err := service.NewAnalysisService(a.newGateway(), a.log).AnalyzeSatellite(cmd.Context(), req)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), analysis)
		},
	}

	cmd.Flags().Float64Var(&req.Latitude, "lat", 0, "Latitude of the area center")
	cmd.Flags().Float64Var(&req.Longitude, "lon", 0, "Longitude of the area center")
	cmd.Flags().Float64Var(&req.RadiusKM, "radius", 10, "Radius in kilometers (1-50)")
	cmd.Flags().StringVar(&analysisType, "type", string(models.AnalysisAll), "Analysis type: all, fire, flood or damage")
	_ = cmd.MarkFlagRequired("lat")
	_ = cmd.MarkFlagRequired("lon")
	return cmd
}

func uploadCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "upload <file>...",
		Short: "Upload images or documents for analysis",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files := make([]models.Upload, 0, len(args))
			for _, path := range args {
				data, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("failed to read %s: %w", path, err)
				}
				files = append(files, models.Upload{Filename: filepath.Base(path), Data: data})
			}

			c, err := a.buildCore(cmd.Context())
			if err != nil {
				return err
			}
			defer c.close()

			report, err := c.incidents.Upload(cmd.Context(), files)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), report)
		},
	}
}

func resolveCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <incident id>",
		Short: "Mark an incident resolved and verified",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.buildCore(cmd.Context())
			if err != nil {
				return err
			}
			defer c.close()

			if err := c.incidents.Resolve(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "incident %s resolved\n", args[0])
			return nil
		},
	}
}
