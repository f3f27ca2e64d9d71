package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/p-blackswan/arkide-viewer/internal/requestid"
	"github.com/p-blackswan/arkide-viewer/internal/viewer"
)

var loadProjectID string

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Print the viewer page data for a project",
	Long: `Runs the viewer loader once and prints the page data as JSON, including
the Cache-Control header the page would be served with.`,
	Example: "  viewer load --id 42",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, _ := requestid.Ensure(cmd.Context(), "")
		loader := viewer.NewLoader(newAPIClient(), viewer.Options{CacheControl: cfg.PageCacheControl}, logger)

		req := viewer.NewStaticRequest(loadProjectID)
		res := loader.Load(ctx, req)

		out, err := json.MarshalIndent(struct {
			Outcome      viewer.Outcome     `json:"outcome"`
			CacheControl string             `json:"cacheControl,omitempty"`
			Page         *viewer.LoadResult `json:"page"`
		}{res.Outcome, req.Header.Get("Cache-Control"), res}, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		if res.Err != nil {
			return fmt.Errorf("load %s: %s (%s)", res.Err.ProjectID, res.Err.Message, res.Err.Kind)
		}
		return nil
	},
}

func init() {
	loadCmd.Flags().StringVar(&loadProjectID, "id", "", "project ID")
}
