package genloop

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// ErrPathOutsideWorkspace is returned when a path resolves outside the
// sandbox root.
var ErrPathOutsideWorkspace = errors.New("path is outside the workspace")

// ErrSudoNotAllowed is returned when a command contains a sudo token.
var ErrSudoNotAllowed = errors.New("sudo commands are not allowed")

// FileMetadata describes a file or directory inside the workspace.
// Timestamps are ISO-8601 strings.
type FileMetadata struct {
	Name         string `json:"name"`
	Size         int64  `json:"size"`
	Created      string `json:"created"`
	Modified     string `json:"modified"`
	Accessed     string `json:"accessed"`
	Permissions  string `json:"permissions"`
	IsDirectory  bool   `json:"is_directory"`
	IsFile       bool   `json:"is_file"`
	AbsolutePath string `json:"absolute_path"`
}

// DirListing holds the immediate children of a directory, split into files
// and subdirectories.
type DirListing struct {
	Files            []string `json:"files"`
	Directories      []string `json:"directories"`
	TotalFiles       int      `json:"total_files"`
	TotalDirectories int      `json:"total_directories"`
}

// CommandResult captures the outcome of one shell command.
type CommandResult struct {
	Stdout     string `json:"stdout"`
	Stderr     string `json:"stderr"`
	ReturnCode int    `json:"returncode"`
}

// Workspace provides sandboxed filesystem and shell primitives rooted at a
// single directory. Every primitive validates its path or command against
// the sandbox before touching the filesystem, so the guard cannot be
// bypassed by callers.
type Workspace struct {
	sandbox        *Sandbox
	commandTimeout time.Duration // zero means no timeout
	logger         *zap.Logger
}

// WorkspaceOption configures a Workspace.
type WorkspaceOption func(*Workspace)

// WithCommandTimeout bounds each shell command's runtime. Zero disables the
// timeout.
func WithCommandTimeout(d time.Duration) WorkspaceOption {
	return func(w *Workspace) {
		w.commandTimeout = d
	}
}

// WithLogger sets the workspace logger.
func WithLogger(logger *zap.Logger) WorkspaceOption {
	return func(w *Workspace) {
		w.logger = logger
	}
}

// NewWorkspace creates a Workspace rooted at dir, creating the directory if
// it does not exist. An empty dir uses the process working directory.
func NewWorkspace(dir string, opts ...WorkspaceOption) (*Workspace, error) {
	sandbox, err := NewSandbox(dir)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(sandbox.Root(), 0755); err != nil {
		return nil, fmt.Errorf("workspace: cannot create root %s: %w", sandbox.Root(), err)
	}
	w := &Workspace{
		sandbox: sandbox,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Root returns the absolute workspace root.
func (w *Workspace) Root() string {
	return w.sandbox.Root()
}

// Sandbox returns the workspace's sandbox for direct validation checks.
func (w *Workspace) Sandbox() *Sandbox {
	return w.sandbox
}

// checkPath validates and resolves a path, logging refusals.
func (w *Workspace) checkPath(path string) (string, error) {
	if !w.sandbox.IsPathSafe(path) {
		w.logger.Warn("path rejected by sandbox", zap.String("path", path))
		return "", fmt.Errorf("%q: %w", path, ErrPathOutsideWorkspace)
	}
	return w.sandbox.Resolve(path), nil
}

// ReadFile returns the full contents of a file in the workspace.
func (w *Workspace) ReadFile(filename string) (string, error) {
	resolved, err := w.checkPath(filename)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(resolved)
	if err != nil {
		w.logger.Warn("read failed", zap.String("filename", filename), zap.Error(err))
		return "", fmt.Errorf("read %s: %w", filename, err)
	}
	return string(data), nil
}

// Stat returns metadata for a file or directory in the workspace.
func (w *Workspace) Stat(filename string) (*FileMetadata, error) {
	resolved, err := w.checkPath(filename)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(resolved)
	if err != nil {
		w.logger.Warn("stat failed", zap.String("filename", filename), zap.Error(err))
		return nil, fmt.Errorf("stat %s: %w", filename, err)
	}

	meta := &FileMetadata{
		Name:         info.Name(),
		Size:         info.Size(),
		Modified:     info.ModTime().Format(time.RFC3339),
		Permissions:  info.Mode().String(),
		IsDirectory:  info.IsDir(),
		IsFile:       info.Mode().IsRegular(),
		AbsolutePath: resolved,
	}
	meta.Created = meta.Modified
	meta.Accessed = meta.Modified
	if st, ok := info.Sys().(*syscall.Stat_t); ok {
		meta.Created = time.Unix(int64(st.Ctim.Sec), int64(st.Ctim.Nsec)).Format(time.RFC3339)
		meta.Accessed = time.Unix(int64(st.Atim.Sec), int64(st.Atim.Nsec)).Format(time.RFC3339)
	}
	return meta, nil
}

// ListDirectory returns the immediate children of a directory, split into
// files and subdirectories. Symlinks are followed; entries that are neither
// regular files nor directories are skipped.
func (w *Workspace) ListDirectory(directory string) (*DirListing, error) {
	resolved, err := w.checkPath(directory)
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(resolved)
	if err != nil {
		w.logger.Warn("list failed", zap.String("directory", directory), zap.Error(err))
		return nil, fmt.Errorf("list %s: %w", directory, err)
	}

	listing := &DirListing{
		Files:       []string{},
		Directories: []string{},
	}
	for _, entry := range entries {
		info, err := os.Stat(filepath.Join(resolved, entry.Name()))
		if err != nil {
			continue
		}
		if info.IsDir() {
			listing.Directories = append(listing.Directories, entry.Name())
		} else if info.Mode().IsRegular() {
			listing.Files = append(listing.Files, entry.Name())
		}
	}
	listing.TotalFiles = len(listing.Files)
	listing.TotalDirectories = len(listing.Directories)
	return listing, nil
}

// WriteFile writes content to a file, creating parent directories as needed.
// Mode "w" truncates, "a" appends; empty mode defaults to "w".
func (w *Workspace) WriteFile(filename, content, mode string) error {
	resolved, err := w.checkPath(filename)
	if err != nil {
		return err
	}
	if mode == "" {
		mode = "w"
	}
	if mode != "w" && mode != "a" {
		return fmt.Errorf("write %s: invalid mode %q", filename, mode)
	}

	if dir := filepath.Dir(resolved); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			w.logger.Warn("write failed", zap.String("filename", filename), zap.Error(err))
			return fmt.Errorf("write %s: %w", filename, err)
		}
	}

	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if mode == "a" {
		flags = os.O_WRONLY | os.O_CREATE | os.O_APPEND
	}
	f, err := os.OpenFile(resolved, flags, 0644)
	if err != nil {
		w.logger.Warn("write failed", zap.String("filename", filename), zap.Error(err))
		return fmt.Errorf("write %s: %w", filename, err)
	}
	defer f.Close()
	if _, err := f.WriteString(content); err != nil {
		w.logger.Warn("write failed", zap.String("filename", filename), zap.Error(err))
		return fmt.Errorf("write %s: %w", filename, err)
	}
	return nil
}

// FileExists reports whether a path exists inside the workspace.
func (w *Workspace) FileExists(path string) bool {
	resolved, err := w.checkPath(path)
	if err != nil {
		return false
	}
	_, err = os.Stat(resolved)
	return err == nil
}

// RunCommand executes a shell command in the workspace root, capturing
// stdout, stderr, and the exit code. The command blocks until the subprocess
// terminates, or until the configured timeout if one is set. A command killed
// by the timeout yields a result with exit code -1 rather than an error.
func (w *Workspace) RunCommand(ctx context.Context, command string) (*CommandResult, error) {
	if !w.sandbox.IsCommandSafe(command) {
		w.logger.Warn("command rejected by sandbox", zap.String("command", command))
		return nil, ErrSudoNotAllowed
	}

	if w.commandTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.commandTimeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, "/bin/bash", "-c", command)
	cmd.Dir = w.sandbox.Root()
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := &CommandResult{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			// Sweep the whole process group; CommandContext only kills bash.
			if cmd.Process != nil {
				_ = syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
			}
			w.logger.Warn("command timed out", zap.String("command", command))
			result.ReturnCode = -1
			return result, nil
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ReturnCode = exitErr.ExitCode()
			return result, nil
		}
		w.logger.Warn("command failed to start", zap.String("command", command), zap.Error(err))
		return nil, fmt.Errorf("run command: %w", err)
	}
	return result, nil
}

// CreateDirectory recursively creates a directory tree. Creating an existing
// directory succeeds.
func (w *Workspace) CreateDirectory(directoryName string) error {
	resolved, err := w.checkPath(directoryName)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(resolved, 0755); err != nil {
		w.logger.Warn("mkdir failed", zap.String("directory_name", directoryName), zap.Error(err))
		return fmt.Errorf("create directory %s: %w", directoryName, err)
	}
	return nil
}
