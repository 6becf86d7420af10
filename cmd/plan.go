package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kilianp07/studyplan/app"
	"github.com/kilianp07/studyplan/core/model"
	"github.com/kilianp07/studyplan/core/planner"
	"github.com/kilianp07/studyplan/infra/logger"
	"github.com/kilianp07/studyplan/pkg/export"
)

var (
	planFile   string
	planLocal  bool
	planFormat string
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Generate one plan from a JSON request and print it",
	RunE:  runPlan,
}

func init() {
	planCmd.Flags().StringVarP(&planFile, "file", "f", "-", "request file, - for stdin")
	planCmd.Flags().BoolVar(&planLocal, "local", false, "skip the remote planner")
	planCmd.Flags().StringVarP(&planFormat, "format", "o", "json", "output format: "+strings.Join(export.Formats, ", "))
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	// keep stdout for the plan itself
	logger.SetOutput(cmd.ErrOrStderr())
	if err := logger.Configure(cfg.Logging); err != nil {
		return err
	}

	req, err := readRequest(cmd.InOrStdin(), planFile)
	if err != nil {
		return err
	}
	if err := req.Validate(); err != nil {
		return fmt.Errorf("invalid request: %w", err)
	}

	var res model.PlanResult
	if planLocal {
		res = planner.GenerateLocal(req.Subjects, req.Budget(), req.Focus)
	} else {
		remote, err := app.NewRemotePlanner(cfg.Remote, logger.New("plan"))
		if err != nil {
			return err
		}
		m, err := planner.NewManager(remote, nil, nil, logger.New("planner"))
		if err != nil {
			return err
		}
		res = m.Generate(cmd.Context(), req)
	}
	return export.Write(cmd.OutOrStdout(), planFormat, res)
}

func readRequest(stdin io.Reader, path string) (model.PlanRequest, error) {
	var req model.PlanRequest
	r := stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return req, err
		}
		defer f.Close()
		r = f
	}
	if err := json.NewDecoder(r).Decode(&req); err != nil {
		return req, fmt.Errorf("decode request: %w", err)
	}
	return req, nil
}
