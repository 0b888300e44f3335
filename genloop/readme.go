package genloop

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/singhbipin2117/gen-ai-project-generator/llm"
)

// ReadmeResult reports the outcome of a README generation.
type ReadmeResult struct {
	Success               bool    `json:"success"`
	ReadmeExisted         bool    `json:"readme_existed"`
	Content               string  `json:"content,omitempty"`
	GenerationTimeSeconds float64 `json:"generation_time_seconds"`
	Error                 string  `json:"error,omitempty"`
}

// GenerateReadme produces a README.md for the project in a single planner
// call, outside the generation loop. When structure is non-nil its file and
// directory lists are folded into the prompt so the document reflects what
// was actually generated. An existing README.md is overwritten; the result
// records whether one was there.
func (s *Session) GenerateReadme(ctx context.Context, req ProjectRequest, structure *Summary) *ReadmeResult {
	start := time.Now()
	existed := s.workspace.FileExists("README.md")

	s.logger.Info("generating README",
		zap.String("project_name", req.Name),
		zap.Bool("readme_existed", existed))

	result, err := llm.Generate(ctx, llm.GenerateOptions{
		Model:    s.config.Model,
		Provider: s.config.Provider,
		System:   readmeSystemPrompt,
		Prompt:   readmeUserPrompt(req.Type, req.Name, req.Description, structure),
		Client:   s.client,
	})
	if err != nil {
		s.logger.Error("README generation failed", zap.Error(err))
		return &ReadmeResult{
			ReadmeExisted:         existed,
			GenerationTimeSeconds: time.Since(start).Seconds(),
			Error:                 err.Error(),
		}
	}

	content := result.Text
	if err := s.workspace.WriteFile("README.md", content, "w"); err != nil {
		s.logger.Error("README write failed", zap.Error(err))
		return &ReadmeResult{
			ReadmeExisted:         existed,
			GenerationTimeSeconds: time.Since(start).Seconds(),
			Error:                 err.Error(),
		}
	}

	return &ReadmeResult{
		Success:               true,
		ReadmeExisted:         existed,
		Content:               content,
		GenerationTimeSeconds: time.Since(start).Seconds(),
	}
}
