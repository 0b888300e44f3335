package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/singhbipin2117/gen-ai-project-generator/genloop"
)

var summaryFile string

var readmeCmd = &cobra.Command{
	Use:   "readme",
	Short: "Generate a README.md for an existing project",
	Long: `Generates a professional README.md in the output directory with a single
planner call.

When --summary points at a previously saved generation summary, its file and
directory lists are folded into the prompt so the README reflects the actual
project structure.`,
	RunE: runReadme,
}

func init() {
	readmeCmd.Flags().StringVarP(&projectType, "type", "t", "", "Project type (e.g., MERN Stack, Django+React)")
	readmeCmd.Flags().StringVarP(&projectName, "name", "n", "", "Project name")
	readmeCmd.Flags().StringVarP(&projectDesc, "description", "d", "", "Project description")
	readmeCmd.Flags().StringVar(&summaryFile, "summary", "", "Path to a *_generation_summary.json to include structure from")
}

func runReadme(cmd *cobra.Command, args []string) error {
	req, err := collectRequest()
	if err != nil {
		return err
	}

	var structure *genloop.Summary
	if summaryFile != "" {
		structure, err = loadSummary(summaryFile)
		if err != nil {
			return err
		}
	}

	client, err := buildClient()
	if err != nil {
		return err
	}

	ws, err := genloop.NewWorkspace(cfg.OutputDir,
		genloop.WithCommandTimeout(cfg.CommandTimeout),
		genloop.WithLogger(logger))
	if err != nil {
		return err
	}

	session := genloop.NewSession(ws, &genloop.SessionConfig{
		Model:    cfg.Model,
		Provider: cfg.Provider,
	})
	session.SetLogger(logger)
	session.SetClient(client)
	defer session.Close()

	fmt.Printf("Generating README.md for %s...\n", req.Name)
	result := session.GenerateReadme(cmd.Context(), req, structure)
	if !result.Success {
		return fmt.Errorf("README generation failed: %s", result.Error)
	}

	if result.ReadmeExisted {
		fmt.Println("Replaced the existing README.md.")
	}
	fmt.Printf("README.md written (%d bytes) in %.2f seconds.\n",
		len(result.Content), result.GenerationTimeSeconds)
	return nil
}

func loadSummary(path string) (*genloop.Summary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read summary: %w", err)
	}
	var summary genloop.Summary
	if err := json.Unmarshal(data, &summary); err != nil {
		return nil, fmt.Errorf("parse summary %s: %w", path, err)
	}
	return &summary, nil
}
