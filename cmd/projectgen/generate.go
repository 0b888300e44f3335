package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/singhbipin2117/gen-ai-project-generator/config"
	"github.com/singhbipin2117/gen-ai-project-generator/genloop"
	"github.com/singhbipin2117/gen-ai-project-generator/llm"
)

var (
	projectType string
	projectName string
	projectDesc string
	withReadme  bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a complete project structure",
	Long: `Generates a complete project structure in the output directory.

Project type, name, and description can be passed as flags; anything missing
is collected interactively. The description prompt accepts multiple lines,
terminated by a line containing only END.`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&projectType, "type", "t", "", "Project type (e.g., MERN Stack, Django+React)")
	generateCmd.Flags().StringVarP(&projectName, "name", "n", "", "Project name")
	generateCmd.Flags().StringVarP(&projectDesc, "description", "d", "", "Project description")
	generateCmd.Flags().BoolVar(&withReadme, "readme", false, "Also generate a README.md from the final structure")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	req, err := collectRequest()
	if err != nil {
		return err
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
		MaxSteps: cfg.MaxSteps,
		Model:    cfg.Model,
		Provider: cfg.Provider,
	})
	session.SetLogger(logger)
	session.SetClient(client)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("\nStarting project generation for %s...\n", req.Name)
	fmt.Printf("Type: %s\n", req.Type)
	fmt.Printf("Description: %s\n", req.Description)
	fmt.Println(strings.Repeat("=", 80))

	done := make(chan struct{})
	go func() {
		defer close(done)
		printProgress(session.Events())
	}()

	summary := session.GenerateProject(ctx, req)
	session.Close()
	<-done

	printSummary(summary)

	summaryPath := filepath.Join(ws.Root(), fmt.Sprintf("%s_generation_summary.json", req.Name))
	if err := summary.Save(summaryPath); err != nil {
		return err
	}
	fmt.Printf("\nDetailed generation summary saved to %s\n", summaryPath)

	if withReadme {
		result := session.GenerateReadme(ctx, req, summary)
		if !result.Success {
			return fmt.Errorf("README generation failed: %s", result.Error)
		}
		fmt.Println("\nREADME.md generated.")
	}
	return nil
}

// collectRequest assembles the project request from flags, prompting
// interactively for anything missing.
func collectRequest() (genloop.ProjectRequest, error) {
	req := genloop.ProjectRequest{
		Type:        strings.TrimSpace(projectType),
		Name:        strings.TrimSpace(projectName),
		Description: strings.TrimSpace(projectDesc),
	}
	if req.Type != "" && req.Name != "" && req.Description != "" {
		return req, nil
	}

	fmt.Println(strings.Repeat("=", 80))
	fmt.Printf("%s PROJECT GENERATOR\n", strings.ToUpper(cfg.Model))
	fmt.Println(strings.Repeat("=", 80))
	fmt.Println("This tool will generate a complete project structure based on your specifications.")
	fmt.Println("Please provide the following information:")
	fmt.Println()

	reader := bufio.NewReader(os.Stdin)
	var err error
	if req.Type == "" {
		req.Type, err = promptLine(reader, "Enter project type (e.g., MERN Stack, Django+React): ")
		if err != nil {
			return req, err
		}
	}
	if req.Name == "" {
		req.Name, err = promptLine(reader, "Enter project name: ")
		if err != nil {
			return req, err
		}
	}
	if req.Description == "" {
		fmt.Println("\nEnter project description (type 'END' on a new line when finished):")
		req.Description, err = readUntilEnd(reader)
		if err != nil {
			return req, err
		}
	}

	if req.Type == "" || req.Name == "" {
		return req, fmt.Errorf("project type and name must not be empty")
	}
	return req, nil
}

func promptLine(reader *bufio.Reader, prompt string) (string, error) {
	fmt.Print(prompt)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func readUntilEnd(reader *bufio.Reader) (string, error) {
	var lines []string
	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		line = strings.TrimRight(line, "\r\n")
		if strings.TrimSpace(line) == "END" {
			break
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n"), nil
}

// printProgress echoes generation events to the terminal until the event
// channel closes.
func printProgress(events <-chan genloop.GenerationEvent) {
	for event := range events {
		switch event.Kind {
		case genloop.EventPlanStep:
			fmt.Printf("\nStep %v of project generation process:\n", event.Data["step"])
		case genloop.EventToolBatch:
			fmt.Printf("- Processing %v tool calls...\n", event.Data["count"])
		case genloop.EventAssistantText:
			text, _ := event.Data["text"].(string)
			if r := []rune(text); len(r) > 100 {
				text = string(r[:100])
			}
			fmt.Printf("- Assistant message: %s...\n", text)
		case genloop.EventDirCreated:
			fmt.Printf("  Created directory: %v\n", event.Data["path"])
		case genloop.EventFileCreated:
			fmt.Printf("  Created file: %v\n", event.Data["path"])
		case genloop.EventCompletion:
			fmt.Println("\nProject generation marked as complete by the assistant.")
		case genloop.EventStepLimit:
			fmt.Printf("\nStopped after reaching the maximum of %v steps.\n", event.Data["steps"])
		case genloop.EventError:
			fmt.Printf("\nError during project generation: %v\n", event.Data["error"])
		}
	}
}

func printSummary(summary *genloop.Summary) {
	fmt.Println()
	fmt.Println(strings.Repeat("=", 80))
	fmt.Println("PROJECT GENERATION SUMMARY")
	fmt.Println(strings.Repeat("=", 80))
	fmt.Printf("Project Name: %s\n", summary.ProjectName)
	fmt.Printf("Project Type: %s\n", summary.ProjectType)
	fmt.Printf("Generation Time: %.2f seconds\n", summary.GenerationTimeSeconds)
	fmt.Printf("Total Steps: %d\n", summary.TotalSteps)
	fmt.Printf("Total Files Created: %d\n", summary.TotalFiles)
	fmt.Printf("Total Directories Created: %d\n", summary.TotalDirectories)

	fmt.Println("\nDIRECTORIES CREATED:")
	for _, directory := range summary.DirectoriesCreated {
		fmt.Printf("- %s\n", directory)
	}
	fmt.Println("\nFILES CREATED:")
	for _, file := range summary.FilesCreated {
		fmt.Printf("- %s\n", file)
	}
	fmt.Println("\nPROJECT SUMMARY:")
	fmt.Println(summary.Summary)
}

// buildClient constructs the LLM client for the configured provider.
// Transient provider failures are retried inside the client; the error
// that finally surfaces from Complete is terminal for the session.
func buildClient() (*llm.Client, error) {
	if cfg.APIKey == "" {
		if v := apiKeyEnvVar(cfg.Provider); v != "" && os.Getenv(v) == "" {
			return nil, fmt.Errorf(
				"%s not found in environment variables; set it or add api_key to %s",
				v, config.DefaultPath)
		}
	}
	adapter, err := llm.NewGollmAdapter(cfg.Provider, cfg.APIKey, llm.WithModel(cfg.Model))
	if err != nil {
		return nil, fmt.Errorf("initialize %s provider: %w", cfg.Provider, err)
	}
	return llm.NewClient(
		llm.WithProvider(cfg.Provider, adapter),
		llm.WithDefaultProvider(cfg.Provider),
		llm.WithMiddleware(llm.RetryMiddleware(llm.DefaultRetryPolicy())),
	), nil
}

func apiKeyEnvVar(provider string) string {
	switch provider {
	case "openai":
		return "OPENAI_API_KEY"
	case "anthropic":
		return "ANTHROPIC_API_KEY"
	case "gemini":
		return "GEMINI_API_KEY"
	}
	return ""
}
