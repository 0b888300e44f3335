package genloop

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// ActionRecord is one entry in the chronological action log. Successful
// dispatches carry the operation, its arguments, and the serialized result;
// a failed planner step carries only the error text.
type ActionRecord struct {
	Step   int                    `json:"step"`
	Action string                 `json:"action,omitempty"`
	Args   map[string]interface{} `json:"args,omitempty"`
	Result json.RawMessage        `json:"result,omitempty"`
	Error  string                 `json:"error,omitempty"`
}

// Summary is the final report of a generation session. It is created once,
// at loop termination, and holds everything the caller needs for audit.
type Summary struct {
	ProjectName           string         `json:"project_name"`
	ProjectType           string         `json:"project_type"`
	TotalSteps            int            `json:"total_steps"`
	TotalFiles            int            `json:"total_files"`
	TotalDirectories      int            `json:"total_directories"`
	FilesCreated          []string       `json:"files_created"`
	DirectoriesCreated    []string       `json:"directories_created"`
	GenerationTimeSeconds float64        `json:"generation_time_seconds"`
	Summary               string         `json:"summary"`
	Actions               []ActionRecord `json:"actions"`
}

// Save writes the summary as indented JSON to path.
func (s *Summary) Save(path string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal summary: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("save summary: %w", err)
	}
	return nil
}

// Recorder accumulates the action log and the created-file and
// created-directory lists over one generation session. It is owned by a
// single loop invocation and is not safe for concurrent use.
type Recorder struct {
	projectName string
	projectType string
	actions     []ActionRecord
	files       []string
	dirs        []string
}

// NewRecorder creates an empty Recorder for one session.
func NewRecorder(projectName, projectType string) *Recorder {
	return &Recorder{
		projectName: projectName,
		projectType: projectType,
		actions:     []ActionRecord{},
		files:       []string{},
		dirs:        []string{},
	}
}

// RecordOutcome logs one dispatched tool outcome. Write and mkdir
// invocations also append to the created-file and created-directory lists,
// whether or not the operation succeeded; the lists reflect what the planner
// asked for, duplicates included.
func (r *Recorder) RecordOutcome(step int, outcome ToolOutcome) {
	r.actions = append(r.actions, ActionRecord{
		Step:   step,
		Action: outcome.Name,
		Args:   outcome.Args,
		Result: outcome.Payload,
	})

	if outcome.Args == nil {
		return
	}
	switch outcome.Name {
	case "write_to_file":
		name, _ := outcome.Args["filename"].(string)
		r.files = append(r.files, name)
	case "create_directory":
		name, _ := outcome.Args["directory_name"].(string)
		r.dirs = append(r.dirs, name)
	}
}

// RecordError logs a failed planner step.
func (r *Recorder) RecordError(step int, err error) {
	r.actions = append(r.actions, ActionRecord{
		Step:  step,
		Error: err.Error(),
	})
}

// FilesCreated returns a copy of the created-file list so far.
func (r *Recorder) FilesCreated() []string {
	files := make([]string, len(r.files))
	copy(files, r.files)
	return files
}

// DirectoriesCreated returns a copy of the created-directory list so far.
func (r *Recorder) DirectoriesCreated() []string {
	dirs := make([]string, len(r.dirs))
	copy(dirs, r.dirs)
	return dirs
}

// Actions returns a copy of the action log so far.
func (r *Recorder) Actions() []ActionRecord {
	actions := make([]ActionRecord, len(r.actions))
	copy(actions, r.actions)
	return actions
}

// Summary assembles the final session report.
func (r *Recorder) Summary(totalSteps int, summaryText string, elapsed time.Duration) *Summary {
	return &Summary{
		ProjectName:           r.projectName,
		ProjectType:           r.projectType,
		TotalSteps:            totalSteps,
		TotalFiles:            len(r.files),
		TotalDirectories:      len(r.dirs),
		FilesCreated:          r.FilesCreated(),
		DirectoriesCreated:    r.DirectoriesCreated(),
		GenerationTimeSeconds: elapsed.Seconds(),
		Summary:               summaryText,
		Actions:               r.Actions(),
	}
}
