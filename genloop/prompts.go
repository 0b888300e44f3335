package genloop

import (
	"fmt"
	"strings"
)

// generationSystemPrompt frames the planner's role and constraints for the
// project generation loop.
const generationSystemPrompt = "You are an expert fullstack developer assistant capable of generating complete project structures. " +
	"You have access to tools that can create directories, write files, and run commands " +
	"to set up a complete project structure. " +
	"Focus on creating a well-organized, production-ready project structure with proper files and content. " +
	"You must work only within the current directory and cannot use sudo commands. " +
	"When creating files, include proper content that would be expected in a professional project. " +
	"Be systematic and thorough in your approach."

// continuationPrompt is appended as a synthetic user message when the
// planner replies with text that does not declare completion.
const continuationPrompt = "Please continue with the next steps to complete the project structure."

// summaryPrompt requests the closing synthesis after the loop terminates.
const summaryPrompt = "Provide a summary of what you've created including the project structure, files, and key features."

// completionPhrases mark a planner text reply as a completion declaration.
// Matching is a case-insensitive substring test.
var completionPhrases = []string{
	"project generation is complete",
	"project structure is now complete",
}

// initialUserPrompt builds the user instruction that seeds the conversation.
func initialUserPrompt(projectType, projectName, projectDescription string) string {
	return fmt.Sprintf(
		"Generate a complete %s project named '%s' with the following description: %s\n\n"+
			"Please create the directory structure, all necessary files with appropriate content, "+
			"and include configuration files, code files, and documentation. "+
			"Work step by step to build a production-ready project structure.",
		projectType, projectName, projectDescription)
}

// isCompletionMessage reports whether the planner's text declares the
// project finished.
func isCompletionMessage(text string) bool {
	lower := strings.ToLower(text)
	for _, phrase := range completionPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

// readmeSystemPrompt frames the planner's role for README synthesis.
const readmeSystemPrompt = "You are an expert technical writer specialized in creating comprehensive README.md files " +
	"for software projects. Your task is to generate a professional README.md that follows " +
	"best practices and includes all standard sections such as project description, features, " +
	"installation, usage, API documentation (if applicable), technologies used, and contributing guidelines."

// readmeUserPrompt builds the README generation request, optionally
// incorporating the generated project structure.
func readmeUserPrompt(projectType, projectName, projectDescription string, structure *Summary) string {
	prompt := fmt.Sprintf(
		"Generate a detailed README.md for a %s project named '%s' "+
			"with the following description:\n\n%s\n\n"+
			"Use proper Markdown formatting and follow industry best practices for "+
			"structuring a README file. Include sections for prerequisites, installation, "+
			"usage, API endpoints (if applicable), and contributing guidelines.",
		projectType, projectName, projectDescription)

	if structure != nil {
		var dirs, files []string
		for _, d := range structure.DirectoriesCreated {
			dirs = append(dirs, "- "+d)
		}
		for _, f := range structure.FilesCreated {
			files = append(files, "- "+f)
		}
		prompt += fmt.Sprintf(
			"\n\nThis project has the following structure:\n\nDirectories:\n%s\n\n"+
				"Files:\n%s\n\nPlease incorporate this structure information into "+
				"the README.md where appropriate, especially in the installation and usage sections.",
			strings.Join(dirs, "\n"), strings.Join(files, "\n"))
	}
	return prompt
}
